package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeys(t *testing.T) {
	mapA := map[string]bool{"key1": true, "key2": true}
	mapB := map[string]bool{"key2": true, "key3": true}
	keys := MapKeys(mapA, mapB)
	assert.ElementsMatch(t, keys, []string{"key1", "key2", "key3"})
}

func TestSortedValues(t *testing.T) {
	m := map[string]int{"c": 3, "a": 1, "b": 2}
	assert.Equal(t, []int{1, 2, 3}, SortedValues(m))
}

func TestSortSlice(t *testing.T) {
	arr := []int{2, 3, 1}

	SortSlice(arr, true)
	assert.Equal(t, []int{3, 2, 1}, arr)

	SortSlice(arr, false)
	assert.Equal(t, []int{1, 2, 3}, arr)
}

func TestFilter(t *testing.T) {
	even := Filter([]int{1, 2, 3, 4}, func(v int) bool { return v%2 == 0 })
	assert.Equal(t, []int{2, 4}, even)
	assert.Empty(t, Filter([]int{1}, func(int) bool { return false }))
}
