// Package slab provides an owning arena of records addressed by stable integer handles.
//
// A Slab never moves a record to a different handle. Freed handles are recycled in FIFO order, so a stale handle is
// reused as late as possible.
package slab

import (
	"fmt"
	"math"

	"github.com/Nomad192/bimap/pkg/fifo"
)

// Handle addresses a record in a Slab. The zero Handle is Nil and never refers to a record.
type Handle uint32

// Nil is the null handle.
const Nil Handle = 0

// MaxLen is the largest number of records a Slab can address.
const MaxLen = math.MaxUint32 - 1

type slot[T any] struct {
	val  T
	live bool
}

// Slab stores records of type T. It is not safe for concurrent use.
type Slab[T any] struct {
	slots []slot[T]
	free  *fifo.RingBuf[Handle]
	used  int
}

// New constructs an empty Slab with room for capacity records before growing.
func New[T any](capacity int) *Slab[T] {
	return &Slab[T]{
		slots: make([]slot[T], 0, max(capacity, 0)),
		free:  fifo.NewRingBuf[Handle](0),
	}
}

// Alloc stores v and returns its handle.
func (s *Slab[T]) Alloc(v T) Handle {
	if s.free.Len() > 0 {
		h := s.free.Remove()
		s.slots[h-1] = slot[T]{val: v, live: true}
		s.used++
		return h
	}
	if uint64(len(s.slots)) >= MaxLen {
		panic("slab: handle space exhausted")
	}
	s.slots = append(s.slots, slot[T]{val: v, live: true})
	s.used++
	return Handle(len(s.slots))
}

// Free releases the record at h. Panics if h is not live.
func (s *Slab[T]) Free(h Handle) {
	sl := s.slot(h)
	*sl = slot[T]{}
	s.used--
	s.free.Add(h)
}

// Get returns a pointer to the record at h. Panics if h is not live.
//
// The pointer is only valid until the next call to Alloc, which may grow the backing storage.
func (s *Slab[T]) Get(h Handle) *T {
	return &s.slot(h).val
}

// Live reports whether h refers to a record.
func (s *Slab[T]) Live(h Handle) bool {
	return h != Nil && int(h) <= len(s.slots) && s.slots[h-1].live
}

// Len returns the number of live records.
func (s *Slab[T]) Len() int {
	return s.used
}

// Reset frees every record. All previously returned handles become invalid.
func (s *Slab[T]) Reset() {
	clear(s.slots)
	s.slots = s.slots[:0]
	s.free.Reset()
	s.used = 0
}

// Clone returns an independent copy of s. Every live handle in s refers to a copy of the same record in the result.
// Records are copied by assignment.
func (s *Slab[T]) Clone() *Slab[T] {
	out := &Slab[T]{
		slots: make([]slot[T], len(s.slots), cap(s.slots)),
		free:  fifo.NewRingBuf[Handle](s.free.Len()),
		used:  s.used,
	}
	copy(out.slots, s.slots)
	for i := 0; i < s.free.Len(); i++ {
		out.free.Add(s.free.Get(i))
	}
	return out
}

func (s *Slab[T]) slot(h Handle) *slot[T] {
	if h == Nil || int(h) > len(s.slots) || !s.slots[h-1].live {
		panic(fmt.Sprintf("slab: access to dead handle %d", h))
	}
	return &s.slots[h-1]
}
