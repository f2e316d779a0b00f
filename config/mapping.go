package config

import (
	"slices"
	"strings"

	"github.com/mitchellh/copystructure"

	"github.com/kbukum/ssot/errors"
)

// Mapping is a flat key/value mapping produced by one source.
// Composite values (maps, slices) are opaque leaves.
type Mapping map[string]any

// Normalize returns a new mapping with every key uppercased and values unchanged.
// A nil or empty input yields an empty mapping.
//
// When two keys differ only by case, keys are applied in sorted order and the
// spelling that is already uppercase wins; otherwise the last spelling in
// sorted order wins.
func Normalize(m Mapping) Mapping {
	out, _ := normalize(m)
	return out
}

// NormalizeStrict behaves like Normalize but rejects mappings that define the
// same key in more than one spelling.
func NormalizeStrict(m Mapping) (Mapping, error) {
	out, collisions := normalize(m)
	if len(collisions) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(collisions))
	for k := range collisions {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	err := errors.KeyCollision(keys[0], collisions[keys[0]])
	if len(keys) > 1 {
		err.WithDetail("keys", keys)
	}
	return nil, err
}

// normalize uppercases keys and reports every collided key with its spellings.
func normalize(m Mapping) (Mapping, map[string][]string) {
	out := make(Mapping, len(m))
	if len(m) == 0 {
		return out, nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	winner := make(map[string]string, len(keys))
	var collisions map[string][]string

	for _, k := range keys {
		upper := strings.ToUpper(k)
		prev, seen := winner[upper]
		if seen {
			if collisions == nil {
				collisions = make(map[string][]string)
			}
			if len(collisions[upper]) == 0 {
				collisions[upper] = append(collisions[upper], prev)
			}
			collisions[upper] = append(collisions[upper], k)
			if prev == upper {
				continue
			}
		}
		winner[upper] = k
		out[upper] = m[k]
	}
	return out, collisions
}

// cloneMapping deep-copies every value of m.
func cloneMapping(m Mapping) Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue returns a detached copy of composite values; scalars are returned as is.
func cloneValue(v any) any {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v
	}
	c, err := copystructure.Copy(v)
	if err != nil {
		return v
	}
	return c
}
