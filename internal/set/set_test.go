package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_Insert(t *testing.T) {
	s := New[string]()

	assert.True(t, s.Insert("a"))
	assert.False(t, s.Insert("a"))
	assert.True(t, s.Has("a"))

	s.Remove("a")
	assert.False(t, s.Has("a"))
}

func TestSet_Values(t *testing.T) {
	s := New(1, 2, 2, 3)
	assert.ElementsMatch(t, []int{1, 2, 3}, s.Values())
}
