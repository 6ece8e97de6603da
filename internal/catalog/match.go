package catalog

import (
	"slices"
	"strings"
)

// wildcardMarkers are the characters that match any single character of a
// code key.
const wildcardMarkers = "xX"

// IsWildcard reports whether query is a wildcard pattern rather than a
// literal code.
func IsWildcard(query string) bool {
	return strings.ContainsAny(query, wildcardMarkers)
}

// match computes the uncached result of a search.
func (r *Registry) match(query string) []Code {
	if !IsWildcard(query) {
		if code, ok := r.index[query]; ok {
			return []Code{code}
		}
		return []Code{}
	}

	matches := []Code{}
	for _, key := range r.keys {
		if matchKey(query, key) {
			matches = append(matches, r.index[key])
		}
	}
	r.observer.IndexScanned(query, len(r.keys))

	slices.SortStableFunc(matches, compareCodes)
	return matches
}

// matchKey reports whether key matches the wildcard pattern. The key must be
// at least as long as the pattern, and every non-marker pattern character
// must equal the key character at the same position. Key characters past the
// end of the pattern are not compared.
func matchKey(pattern, key string) bool {
	if len(key) < len(pattern) {
		return false
	}
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == 'x' || c == 'X' {
			continue
		}
		if c != key[i] {
			return false
		}
	}
	return true
}
