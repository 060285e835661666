package set

import "github.com/maxpoletaev/nodepool/internal/generic"

type Set[T comparable] map[T]struct{}

func New[T comparable](values ...T) Set[T] {
	s := make(Set[T], len(values))
	for _, v := range values {
		s.Add(v)
	}

	return s
}

func (s Set[T]) Add(val T) {
	s[val] = struct{}{}
}

// Insert adds the value and reports whether it was not in the set before.
func (s Set[T]) Insert(val T) bool {
	if s.Has(val) {
		return false
	}

	s.Add(val)

	return true
}

func (s Set[T]) Remove(val T) {
	delete(s, val)
}

func (s Set[T]) Values() []T {
	return generic.MapKeys(s)
}

func (s Set[T]) Has(val T) bool {
	_, ok := s[val]
	return ok
}
