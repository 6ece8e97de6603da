// Package catalog builds the immutable status-code registry and serves
// lookups against it.
//
// # Building
//
// Build turns the declaring units of a config.Model into Groups and a
// flattened index keyed by the decimal form of each code number. A unit
// whose entries cannot be materialized into codes is logged as a
// DeclarationError and left out; the rest of the catalog is still built.
// When two codes share a number, the one flattened last wins the index slot.
//
// # Lookup
//
// Search accepts either a literal number ("404") or a wildcard pattern in
// which 'x' or 'X' stands for any single character ("4xx", "50x"). A
// wildcard pattern also matches keys longer than itself, so "2x" matches
// 200 and 2001 alike. Results are memoized per raw query string for the
// lifetime of the Registry.
//
// # Concurrency
//
// A Registry is read-only once Build returns. Groups, ByNumber, AllSorted
// and SerializedIndex take no locks. Search is safe for concurrent use:
// concurrent misses on the same query are coalesced and the first result
// installed in the cache is the one every later caller sees.
package catalog
