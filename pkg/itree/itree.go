// Package itree implements an intrusive ordered index: a red-black binary search tree whose nodes are records owned
// by someone else and addressed by slab handles.
//
// The tree never allocates or frees records. Each record embeds one Links value per tree it belongs to, and an
// Accessor tells the tree where to find that embedding and the record's key. Embedding two Links in one record lets
// the record sit in two independently-keyed trees at once.
//
// Every tree is anchored on a sentinel record supplied by the caller. The sentinel's left child is the root, so the
// sentinel is both the parent of the root and the past-the-end position: Next of the maximum is the sentinel, and Prev
// of the sentinel is the maximum.
package itree

import (
	"iter"

	"github.com/Nomad192/bimap/pkg/slab"
	"golang.org/x/exp/constraints"
)

// Handle addresses a record. See slab.Handle.
type Handle = slab.Handle

// Nil is the null link.
const Nil = slab.Nil

// Links holds the tree linkage embedded in a record. The zero value is an unlinked node.
type Links struct {
	parent, left, right Handle
	red                 bool
}

// Accessor resolves handles to the embedded Links and key of a record.
type Accessor[K any] interface {
	// Links returns the linkage this tree uses for h. The pointer must remain valid for the duration of a single tree
	// operation.
	Links(h Handle) *Links
	// Key returns the key h is ordered by.
	Key(h Handle) K
}

// LessFunc determines how to order keys. It must implement a strict weak ordering and return true if a < b.
type LessFunc[K any] func(a, b K) bool

// Less returns a LessFunc which uses the '<' operator.
func Less[K constraints.Ordered]() LessFunc[K] {
	return func(a, b K) bool { return a < b }
}

// Tree is an ordered index over records reachable through an Accessor. It is not safe for concurrent use.
type Tree[K any, A Accessor[K]] struct {
	acc      A
	less     LessFunc[K]
	sentinel Handle
	n        int
}

// New constructs an empty tree anchored on sentinel. The sentinel's Links are reset.
func New[K any, A Accessor[K]](sentinel Handle, acc A, less LessFunc[K]) *Tree[K, A] {
	t := &Tree[K, A]{acc: acc, less: less}
	t.Reset(sentinel)
	return t
}

// Reset forgets every node and re-anchors the tree on sentinel. Records are not touched.
func (t *Tree[K, A]) Reset(sentinel Handle) {
	t.sentinel = sentinel
	*t.links(sentinel) = Links{}
	t.n = 0
}

// Clone returns a tree over acc, which must expose a structural copy of the records reachable from this tree's
// accessor under the same handles.
func (t *Tree[K, A]) Clone(acc A) *Tree[K, A] {
	return &Tree[K, A]{acc: acc, less: t.less, sentinel: t.sentinel, n: t.n}
}

// Swap exchanges the contents of t and other in O(1).
func (t *Tree[K, A]) Swap(other *Tree[K, A]) {
	*t, *other = *other, *t
}

// Less returns the ordering used by this tree.
func (t *Tree[K, A]) Less() LessFunc[K] {
	return t.less
}

// Equivalent reports whether neither a < b nor b < a.
func (t *Tree[K, A]) Equivalent(a, b K) bool {
	return !t.less(a, b) && !t.less(b, a)
}

// Len returns the number of linked nodes.
func (t *Tree[K, A]) Len() int {
	return t.n
}

// Empty reports whether no nodes are linked.
func (t *Tree[K, A]) Empty() bool {
	return t.root() == Nil
}

// End returns the past-the-end position, which is always the sentinel.
func (t *Tree[K, A]) End() Handle {
	return t.sentinel
}

// Begin returns the minimum node, or End if the tree is empty.
func (t *Tree[K, A]) Begin() Handle {
	return t.leftmost(t.sentinel)
}

// Max returns the maximum node, or End if the tree is empty.
func (t *Tree[K, A]) Max() Handle {
	if t.Empty() {
		return t.sentinel
	}
	return t.Prev(t.sentinel)
}

// Next returns the in-order successor of h. Next of the maximum is End. Calling Next on End is a caller error.
func (t *Tree[K, A]) Next(h Handle) Handle {
	if r := t.links(h).right; r != Nil {
		return t.leftmost(r)
	}
	cur, p := h, t.links(h).parent
	for p != Nil && t.links(p).right == cur {
		cur, p = p, t.links(p).parent
	}
	return p
}

// Prev returns the in-order predecessor of h. Prev of End is the maximum. Calling Prev on Begin is a caller error.
func (t *Tree[K, A]) Prev(h Handle) Handle {
	if l := t.links(h).left; l != Nil {
		return t.rightmost(l)
	}
	cur, p := h, t.links(h).parent
	for p != Nil && t.links(p).left == cur {
		cur, p = p, t.links(p).parent
	}
	return p
}

type searchResult int

const (
	found searchResult = iota
	addLeft
	addRight
)

// search descends from the root towards key. It returns the equivalent node, or the node key would be attached
// under and on which side.
func (t *Tree[K, A]) search(key K) (Handle, searchResult) {
	cur := t.root()
	if cur == Nil {
		return t.sentinel, addLeft
	}
	for {
		l := t.links(cur)
		ck := t.acc.Key(cur)
		switch {
		case t.less(ck, key):
			if l.right == Nil {
				return cur, addRight
			}
			cur = l.right
		case t.less(key, ck):
			if l.left == Nil {
				return cur, addLeft
			}
			cur = l.left
		default:
			return cur, found
		}
	}
}

// Find returns the node equivalent to key, or End.
func (t *Tree[K, A]) Find(key K) Handle {
	if h, res := t.search(key); res == found {
		return h
	}
	return t.sentinel
}

// Contains reports whether a node equivalent to key is linked.
func (t *Tree[K, A]) Contains(key K) bool {
	_, res := t.search(key)
	return res == found
}

// FindNext returns the node equivalent to key if there is one, otherwise the node key would precede. It returns End
// if every key in the tree is less than key.
func (t *Tree[K, A]) FindNext(key K) Handle {
	h, res := t.search(key)
	if res == addRight {
		return t.Next(h)
	}
	return h
}

// LowerBound returns the first node whose key is not less than key, or End.
func (t *Tree[K, A]) LowerBound(key K) Handle {
	return t.FindNext(key)
}

// UpperBound returns the first node whose key is greater than key, or End.
func (t *Tree[K, A]) UpperBound(key K) Handle {
	h, res := t.search(key)
	if res == addLeft {
		return h
	}
	return t.Next(h)
}

// Insert links h into the tree by its key. If an equivalent key is already linked, the tree is unchanged and
// Insert returns (End, false).
func (t *Tree[K, A]) Insert(h Handle) (Handle, bool) {
	parent, res := t.search(t.acc.Key(h))
	if res == found {
		return t.sentinel, false
	}

	*t.links(h) = Links{parent: parent, red: true}
	if res == addLeft {
		t.links(parent).left = h
	} else {
		t.links(parent).right = h
	}
	t.n++
	t.insertFixup(h)
	return h, true
}

// Remove unlinks h and returns the node which followed it. h must be a linked node.
func (t *Tree[K, A]) Remove(h Handle) Handle {
	next := t.Next(h)
	t.unlink(h)
	t.n--
	return next
}

// All returns an iterator over every node in ascending order.
func (t *Tree[K, A]) All() iter.Seq[Handle] {
	return t.Ascend(t.Begin())
}

// Ascend returns an iterator over nodes in ascending order, starting at from and stopping at End.
func (t *Tree[K, A]) Ascend(from Handle) iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for h := from; h != t.sentinel; h = t.Next(h) {
			if !yield(h) {
				return
			}
		}
	}
}

// Backward returns an iterator over every node in descending order.
func (t *Tree[K, A]) Backward() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		if t.Empty() {
			return
		}
		first := t.Begin()
		for h := t.Max(); ; h = t.Prev(h) {
			if !yield(h) || h == first {
				return
			}
		}
	}
}

func (t *Tree[K, A]) links(h Handle) *Links {
	return t.acc.Links(h)
}

func (t *Tree[K, A]) root() Handle {
	return t.links(t.sentinel).left
}

func (t *Tree[K, A]) leftmost(h Handle) Handle {
	for l := t.links(h).left; l != Nil; l = t.links(h).left {
		h = l
	}
	return h
}

func (t *Tree[K, A]) rightmost(h Handle) Handle {
	for r := t.links(h).right; r != Nil; r = t.links(h).right {
		h = r
	}
	return h
}
