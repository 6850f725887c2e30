// Package registry keeps a set of domain names normalized through the IDNA
// converter.
//
// Each [Domain] stores the ASCII form, which is unique, and the Unicode form
// derived from it. Lookups and deletes normalize their argument the same
// way, so "Bücher.example", "bücher.example" and "xn--bcher-kva.example"
// all address the same entry.
//
// [PostgresStore] persists to the domains table created by [Migrations];
// [MemoryStore] keeps everything in process.
package registry
