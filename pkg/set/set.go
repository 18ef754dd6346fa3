// Package set provides a map backed set. It is not safe for concurrent use.
package set

import (
	"cmp"
	"slices"
)

type Set[T comparable] map[T]struct{}

// Of returns a set holding elems.
func Of[T comparable](elems ...T) Set[T] {
	s := make(Set[T], len(elems))
	s.Add(elems...)
	return s
}

func (s Set[T]) Add(elems ...T) {
	for _, elem := range elems {
		s[elem] = struct{}{}
	}
}

func (s Set[T]) Contains(elem T) bool {
	_, ok := s[elem]
	return ok
}

func (s Set[T]) Len() int {
	return len(s)
}

// Values returns the elements in no particular order.
func (s Set[T]) Values() []T {
	v := make([]T, 0, len(s))
	for elem := range s {
		v = append(v, elem)
	}
	return v
}

// Sorted returns the elements of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	v := s.Values()
	slices.Sort(v)
	return v
}
