package config

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
)

// Layer is one source mapping tagged with its origin.
type Layer struct {
	Source Source
	Values Mapping
}

// Resolve merges the four sources, given in ascending precedence, into one
// immutable configuration. Nil or empty sources contribute nothing.
func Resolve(staticFiles, dotEnv, processEnv, cliArgs Mapping) *Resolved {
	return ResolveLayers(
		Layer{Source: SourceStaticFile, Values: staticFiles},
		Layer{Source: SourceDotEnv, Values: dotEnv},
		Layer{Source: SourceProcessEnv, Values: processEnv},
		Layer{Source: SourceCLI, Values: cliArgs},
	)
}

// ResolveLayers overlays layers from the lowest to the highest precedence
// source. Argument order does not matter; layers sharing a source apply in
// the order given. The merge is shallow: a higher layer replaces a value
// wholesale. Layers are never modified.
func ResolveLayers(layers ...Layer) *Resolved {
	ordered := slices.Clone(layers)
	slices.SortStableFunc(ordered, func(a, b Layer) int {
		return cmp.Compare(a.Source, b.Source)
	})

	values := make(Mapping)
	origins := make(map[string]Source)
	for _, layer := range ordered {
		for key, value := range Normalize(layer.Values) {
			values[key] = cloneValue(value)
			origins[key] = layer.Source
		}
	}

	return &Resolved{
		id:      uuid.NewString(),
		values:  values,
		origins: origins,
	}
}
