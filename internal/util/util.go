// Package util contains small generic containers shared by the other packages
// in this module.
package util

import "sort"

// Ordered is the constraint for key types that OrderedKeys can sort.
type Ordered interface {
	~int | ~int64 | ~string
}

// OrderedKeys returns the keys of m, sorted ascending. Iterating a map via
// OrderedKeys gives a deterministic order where plain range would not.
func OrderedKeys[K Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})

	return keys
}
