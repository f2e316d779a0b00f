package config

import (
	"encoding/json"
	"slices"
	"strings"
)

// Resolved is the merged, read-only configuration.
//
// Keys are uppercase and lookups are case-insensitive. Composite values are
// copied on the way in and on the way out, so nothing a caller does to a
// returned value is visible to later reads.
type Resolved struct {
	id      string
	values  Mapping
	origins map[string]Source
}

// ID identifies this resolution.
func (r *Resolved) ID() string {
	return r.id
}

// Get returns the value for key and whether it is set.
func (r *Resolved) Get(key string) (any, bool) {
	v, ok := r.values[strings.ToUpper(key)]
	if !ok {
		return nil, false
	}
	return cloneValue(v), true
}

// Has reports whether key is set.
func (r *Resolved) Has(key string) bool {
	_, ok := r.values[strings.ToUpper(key)]
	return ok
}

// Origin returns the source that supplied the value of key.
func (r *Resolved) Origin(key string) (Source, bool) {
	s, ok := r.origins[strings.ToUpper(key)]
	return s, ok
}

// Keys returns all keys in sorted order.
func (r *Resolved) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of keys.
func (r *Resolved) Len() int {
	return len(r.values)
}

// All returns a detached copy of every key/value pair.
func (r *Resolved) All() Mapping {
	return cloneMapping(r.values)
}

// CountBySource returns how many keys each source won.
func (r *Resolved) CountBySource() map[Source]int {
	counts := make(map[Source]int, len(r.origins))
	for _, s := range r.origins {
		counts[s]++
	}
	return counts
}

// MarshalJSON encodes the resolved pairs as a JSON object.
func (r *Resolved) MarshalJSON() ([]byte, error) {
	if r.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.values)
}
