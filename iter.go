package bimap

import (
	"iter"

	"github.com/Nomad192/bimap/pkg/slab"
)

// LeftIter is a position in the left index of a BiMap: it refers to the left value of one pair, or to the end of the
// left index. Positions are small values and are compared with ==.
//
// Dereferencing, advancing or flipping an invalid position is a caller error. A position becomes invalid when its
// pair is erased or the map is cleared; insertions do not invalidate positions.
type LeftIter[L, R any] struct {
	c *core[L, R]
	h slab.Handle
}

// IsEnd reports whether it is the end of the left index.
func (it LeftIter[L, R]) IsEnd() bool {
	return it.h == it.c.end
}

// Key returns the left value at it.
func (it LeftIter[L, R]) Key() L {
	return it.c.records.Get(it.h).left
}

// Value returns the right value paired with the left value at it.
func (it LeftIter[L, R]) Value() R {
	return it.c.records.Get(it.h).right
}

// Next returns the position of the next larger left value, or the end.
func (it LeftIter[L, R]) Next() LeftIter[L, R] {
	return LeftIter[L, R]{it.c, it.c.lefts.Next(it.h)}
}

// Prev returns the position of the next smaller left value. Prev of the end is the largest left value.
func (it LeftIter[L, R]) Prev() LeftIter[L, R] {
	return LeftIter[L, R]{it.c, it.c.lefts.Prev(it.h)}
}

// Flip returns the position of the right value in the same pair. The end of the left index flips to the end of the
// right index. Flip runs in O(1).
func (it LeftIter[L, R]) Flip() RightIter[L, R] {
	return RightIter[L, R](it)
}

// RightIter is a position in the right index of a BiMap. It mirrors LeftIter.
type RightIter[L, R any] struct {
	c *core[L, R]
	h slab.Handle
}

// IsEnd reports whether it is the end of the right index.
func (it RightIter[L, R]) IsEnd() bool {
	return it.h == it.c.end
}

// Key returns the right value at it.
func (it RightIter[L, R]) Key() R {
	return it.c.records.Get(it.h).right
}

// Value returns the left value paired with the right value at it.
func (it RightIter[L, R]) Value() L {
	return it.c.records.Get(it.h).left
}

// Next returns the position of the next larger right value, or the end.
func (it RightIter[L, R]) Next() RightIter[L, R] {
	return RightIter[L, R]{it.c, it.c.rights.Next(it.h)}
}

// Prev returns the position of the next smaller right value. Prev of the end is the largest right value.
func (it RightIter[L, R]) Prev() RightIter[L, R] {
	return RightIter[L, R]{it.c, it.c.rights.Prev(it.h)}
}

// Flip returns the position of the left value in the same pair. The end of the right index flips to the end of the
// left index. Flip runs in O(1).
func (it RightIter[L, R]) Flip() LeftIter[L, R] {
	return LeftIter[L, R](it)
}

// All returns an iterator over every pair in ascending left order.
func (m *BiMap[L, R]) All() iter.Seq2[L, R] {
	c := m.c
	return func(yield func(L, R) bool) {
		for h := range c.lefts.All() {
			rec := c.records.Get(h)
			if !yield(rec.left, rec.right) {
				return
			}
		}
	}
}

// Backward returns an iterator over every pair in descending left order.
func (m *BiMap[L, R]) Backward() iter.Seq2[L, R] {
	c := m.c
	return func(yield func(L, R) bool) {
		for h := range c.lefts.Backward() {
			rec := c.records.Get(h)
			if !yield(rec.left, rec.right) {
				return
			}
		}
	}
}

// ByRight returns an iterator over every pair in ascending right order, right value first.
func (m *BiMap[L, R]) ByRight() iter.Seq2[R, L] {
	c := m.c
	return func(yield func(R, L) bool) {
		for h := range c.rights.All() {
			rec := c.records.Get(h)
			if !yield(rec.right, rec.left) {
				return
			}
		}
	}
}

// Lefts returns an iterator over the left values in ascending order.
func (m *BiMap[L, R]) Lefts() iter.Seq[L] {
	c := m.c
	return func(yield func(L) bool) {
		for h := range c.lefts.All() {
			if !yield(c.records.Get(h).left) {
				return
			}
		}
	}
}

// Rights returns an iterator over the right values in ascending order.
func (m *BiMap[L, R]) Rights() iter.Seq[R] {
	c := m.c
	return func(yield func(R) bool) {
		for h := range c.rights.All() {
			if !yield(c.records.Get(h).right) {
				return
			}
		}
	}
}
