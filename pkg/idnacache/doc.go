// Package idnacache memoizes domain name conversions.
//
// A [Converter] wraps an idna.Converter and a [Store]. Results are keyed by
// operation, the resolved settings and the input, so the same name converted
// under different options is cached separately:
//
//	store := idnacache.NewMemory(idnacache.WithMaxEntries(50000))
//	defer store.Close()
//
//	conv := idnacache.New(idna.New(), store, idnacache.WithTTL(10*time.Minute))
//	ascii, err := conv.ToASCII(ctx, "straße.de")
//
// Only successful conversions are stored. Lossy conversions always succeed
// for valid input and are stored too. Invalid tokens fail before the store
// is consulted.
//
// # Stores
//
//   - [Memory]: in-process LRU with expiration and a background janitor
//   - [Redis]: shared between instances, keys namespaced by a prefix
//
// Store failures are logged and the conversion proceeds uncached.
package idnacache
