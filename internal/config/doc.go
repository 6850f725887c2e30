// Package config loads the idnad configuration from an optional YAML file
// and the environment.
//
// Environment variables override file values. Defaults apply to fields set
// by neither:
//
//	server:
//	  address: ":8080"
//	idna:
//	  ascii_deny_list: std3   # IDNA_ASCII_DENY_LIST
//	  hyphens: check          # IDNA_HYPHENS
//	  dns_length: verify      # IDNA_DNS_LENGTH
//	cache:
//	  backend: redis          # memory, redis or none
//	  redis_url: redis://localhost:6379/0
//	registry:
//	  store: auto             # auto, postgres, memory or none
//	database:
//	  url: postgres://localhost/idna
package config
