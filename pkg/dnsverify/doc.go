// Package dnsverify checks domain ownership through DNS TXT records.
//
// The owner publishes a TXT record containing a token under a challenge
// label of the domain. Unicode domain names are converted to their ASCII
// form before the lookup:
//
//	v := dnsverify.New()
//	name, _ := v.RecordName("bücher.example")
//	// name == "_idnakit-challenge.xn--bcher-kva.example"
//	err := v.Verify(ctx, "bücher.example", token)
//
// Failures wrap ErrInvalidInput, ErrTXTRecordNotFound, ErrDNSLookupFailed
// or ErrDomainNotVerified.
package dnsverify
