package catalog

import (
	"slices"
	"strconv"
)

// Registry is the immutable status-code catalog together with its lookup
// cache. Slices returned by its methods are shared and must not be modified.
type Registry struct {
	groups     []Group
	index      map[string]Code
	keys       []string
	serialized string

	cache    *lookupCache
	observer Observer
}

// Groups returns every group in discovery order.
func (r *Registry) Groups() []Group {
	return r.groups
}

// Len returns the number of distinct code numbers in the index.
func (r *Registry) Len() int {
	return len(r.index)
}

// ByNumber returns the code indexed under n.
func (r *Registry) ByNumber(n int) (Code, bool) {
	code, ok := r.index[strconv.Itoa(n)]
	return code, ok
}

// AllSorted returns every indexed code ordered by number. Codes with equal
// numbers keep their index insertion order.
func (r *Registry) AllSorted() []Code {
	codes := make([]Code, 0, len(r.keys))
	for _, key := range r.keys {
		codes = append(codes, r.index[key])
	}
	slices.SortStableFunc(codes, compareCodes)
	return codes
}

// SerializedIndex returns the JSON object mapping each index key to its
// code, computed once at build time.
func (r *Registry) SerializedIndex() string {
	return r.serialized
}

// Search returns the codes matching query, which is either a literal number
// or a wildcard pattern. An empty query matches nothing. Results are cached
// per query string; repeated calls return the same slice.
func (r *Registry) Search(query string) []Code {
	if query == "" {
		return []Code{}
	}
	return r.cache.get(query)
}

// CachedQueries returns how many distinct queries have a memoized result.
func (r *Registry) CachedQueries() int {
	return r.cache.size()
}

func compareCodes(a, b Code) int {
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	default:
		return 0
	}
}
