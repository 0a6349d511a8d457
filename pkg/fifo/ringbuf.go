/*
The MIT License (MIT)

Copyright (c) 2014 Evan Huus

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

// NOTICE: file copied from github.com/eapache/queue/v2 -- modifications have been made.

/*
Package fifo provides a ring-buffer queue based on the version suggested by Dariusz Górecki. Elements are stored
inline, so queueing small values such as slab handles does not allocate once the buffer has grown.

RingBuf is *not* thread-safe.
*/
package fifo

import "math/bits"

const minRingbufLen = 16

// RingBuf is a growable circular FIFO buffer. The zero value is not usable; construct one with NewRingBuf.
type RingBuf[V any] struct {
	buf               []V
	head, tail, count int
}

// NewRingBuf constructs a RingBuf with room for at least size elements. Capacity is always a power of two.
func NewRingBuf[V any](size int) *RingBuf[V] {
	return &RingBuf[V]{
		buf: make([]V, roundUp(max(minRingbufLen, size))),
	}
}

// roundUp returns the smallest power of two >= n.
func roundUp(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	return 1 << bits.Len(uint(n))
}

// Reset empties this ring buffer without reallocating.
func (q *RingBuf[V]) Reset() {
	clear(q.buf)
	q.head = 0
	q.tail = 0
	q.count = 0
}

// Len returns the number of elements currently stored.
func (q *RingBuf[V]) Len() int {
	return q.count
}

func (q *RingBuf[V]) Cap() int {
	return len(q.buf)
}

// resizes the buffer to fit exactly twice its current contents.
// this can result in shrinking if the buffer is less than half-full.
func (q *RingBuf[V]) resize() {
	newBuf := make([]V, q.count<<1)

	if q.tail > q.head {
		copy(newBuf, q.buf[q.head:q.tail])
	} else {
		n := copy(newBuf, q.buf[q.head:])
		copy(newBuf[n:], q.buf[:q.tail])
	}

	q.head = 0
	q.tail = q.count
	q.buf = newBuf
}

// Add puts an element on the end of the buffer.
func (q *RingBuf[V]) Add(elem V) {
	if q.count == len(q.buf) {
		q.resize()
	}

	q.buf[q.tail] = elem
	// bitwise modulus
	q.tail = (q.tail + 1) & (len(q.buf) - 1)
	q.count++
}

// Peek returns the element at the head of the buffer. Panics if the buffer is empty.
func (q *RingBuf[V]) Peek() V {
	if q.count <= 0 {
		panic("ringbuf: Peek() called on empty ringbuf")
	}
	return q.buf[q.head]
}

// Get returns the element at index i. Negative indexes count back from the tail, so -1 is the last element.
// Panics if the index is out of range.
func (q *RingBuf[V]) Get(i int) V {
	if i < 0 {
		i += q.count
	}
	if i < 0 || i >= q.count {
		panic("ringbuf: Get() called with index out of range")
	}
	// bitwise modulus
	return q.buf[(q.head+i)&(len(q.buf)-1)]
}

// Remove removes and returns the element at the head of the buffer. Panics if the buffer is empty.
func (q *RingBuf[V]) Remove() V {
	if q.count <= 0 {
		panic("ringbuf: Remove() called on empty ringbuf")
	}
	var zero V
	ret := q.buf[q.head]
	q.buf[q.head] = zero
	// bitwise modulus
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.count--
	// Resize down if buffer 1/4 full.
	if len(q.buf) > minRingbufLen && (q.count<<2) == len(q.buf) {
		q.resize()
	}
	return ret
}
