// Package api exposes the IDNA converter and the domain registry over HTTP.
//
// Conversion endpoints take the name in the input query parameter and the
// optional tokens ascii_deny_list, hyphens and dns_length. A parameter that
// is present, even with an empty value, is validated; an absent one takes
// the converter default. Successful responses are {"result": ...}; errors
// are {"error": {"code", "message", "request_id"}}:
//
//	GET /v1/to_ascii?input=straße.de            200 {"result":"xn--strae-oqa.de"}
//	GET /v1/to_ascii?input=a.de&hyphens=        400 invalid_configuration
//	GET /v1/to_ascii?input=example.com.         422 constraint_violation
//	GET /v1/to_unicode_lossy?input=xn--a!!.de   200 {"result":"�.de"}
package api
