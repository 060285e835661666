package generic

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// MapKeys returns the unique keys of all maps in no particular order.
func MapKeys[K comparable, V any](maps ...map[K]V) []K {
	uniqueKeys := make(map[K]struct{})

	for _, m := range maps {
		for k := range m {
			uniqueKeys[k] = struct{}{}
		}
	}

	keys := make([]K, 0, len(uniqueKeys))
	for k := range uniqueKeys {
		keys = append(keys, k)
	}

	return keys
}

// SortedValues returns the values of the map ordered by key.
func SortedValues[K constraints.Ordered, V any](m map[K]V) []V {
	keys := MapKeys(m)
	SortSlice(keys, false)

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}

	return values
}

func SortSlice[T constraints.Ordered](arr []T, reverse bool) {
	sort.Slice(arr, func(i, j int) bool {
		return (arr[i] < arr[j]) != reverse
	})
}
