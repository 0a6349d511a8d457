// Package bimap provides an ordered bidirectional map.
//
// A BiMap holds pairs (left, right) where every left value is unique among lefts and every right value is unique
// among rights. Each pair is stored once, in a record linked into two ordered indexes at the same time: one keyed by
// left, one keyed by right. Lookup, insertion and removal from either side take O(log n), and a position on one side
// converts to the matching position on the other side in O(1) with Flip.
package bimap

import (
	"fmt"

	"github.com/Nomad192/bimap/pkg/itree"
	"github.com/Nomad192/bimap/pkg/slab"
	"golang.org/x/exp/constraints"
)

// node is a pair record. It is linked into the left index through byLeft and into the right index through byRight.
type node[L, R any] struct {
	left    L
	right   R
	byLeft  itree.Links
	byRight itree.Links
}

type leftSide[L, R any] struct{ records *slab.Slab[node[L, R]] }

func (a leftSide[L, R]) Links(h itree.Handle) *itree.Links { return &a.records.Get(h).byLeft }
func (a leftSide[L, R]) Key(h itree.Handle) L              { return a.records.Get(h).left }

type rightSide[L, R any] struct{ records *slab.Slab[node[L, R]] }

func (a rightSide[L, R]) Links(h itree.Handle) *itree.Links { return &a.records.Get(h).byRight }
func (a rightSide[L, R]) Key(h itree.Handle) R              { return a.records.Get(h).right }

// core owns the records and both indexes. Positions point at the core rather than at the BiMap, so they stay valid
// when contents move between maps via Move or Swap.
type core[L, R any] struct {
	records *slab.Slab[node[L, R]]
	// end is the sentinel record. Its byLeft and byRight links anchor the two indexes.
	end    slab.Handle
	lefts  *itree.Tree[L, leftSide[L, R]]
	rights *itree.Tree[R, rightSide[L, R]]
	n      int
}

func newCore[L, R any](lessL itree.LessFunc[L], lessR itree.LessFunc[R], capacity int) *core[L, R] {
	records := slab.New[node[L, R]](capacity + 1)
	end := records.Alloc(node[L, R]{})
	return &core[L, R]{
		records: records,
		end:     end,
		lefts:   itree.New[L](end, leftSide[L, R]{records}, lessL),
		rights:  itree.New[R](end, rightSide[L, R]{records}, lessR),
	}
}

func (c *core[L, R]) clone() *core[L, R] {
	records := c.records.Clone()
	return &core[L, R]{
		records: records,
		end:     c.end,
		lefts:   c.lefts.Clone(leftSide[L, R]{records}),
		rights:  c.rights.Clone(rightSide[L, R]{records}),
		n:       c.n,
	}
}

// erase unlinks h from both indexes and frees it.
func (c *core[L, R]) erase(h slab.Handle) {
	c.lefts.Remove(h)
	c.rights.Remove(h)
	c.records.Free(h)
	c.n--
}

func (c *core[L, R]) reset() {
	c.records.Reset()
	c.end = c.records.Alloc(node[L, R]{})
	c.lefts.Reset(c.end)
	c.rights.Reset(c.end)
	c.n = 0
}

// BiMap is an ordered bidirectional map between values of type L and values of type R. It must be constructed with
// New or NewOrdered. A BiMap is not safe for concurrent use.
type BiMap[L, R any] struct {
	mapShared
	c *core[L, R]
}

// New constructs an empty BiMap which orders lefts by lessL and rights by lessR. Both must be strict weak orderings;
// two values are considered the same when neither is less than the other.
func New[L, R any](lessL itree.LessFunc[L], lessR itree.LessFunc[R], opts ...Option) *BiMap[L, R] {
	shared := newMapShared(opts)
	return &BiMap[L, R]{
		mapShared: shared,
		c:         newCore(lessL, lessR, shared.capacity),
	}
}

// NewOrdered constructs an empty BiMap which orders both sides with the '<' operator.
func NewOrdered[L, R constraints.Ordered](opts ...Option) *BiMap[L, R] {
	return New(itree.Less[L](), itree.Less[R](), opts...)
}

// Len returns the number of pairs.
func (m *BiMap[L, R]) Len() int {
	return m.c.n
}

// Empty reports whether the map holds no pairs.
func (m *BiMap[L, R]) Empty() bool {
	return m.c.n == 0
}

// BeginLeft returns the position of the smallest left value, or EndLeft if the map is empty.
func (m *BiMap[L, R]) BeginLeft() LeftIter[L, R] {
	return LeftIter[L, R]{m.c, m.c.lefts.Begin()}
}

// EndLeft returns the position one past the largest left value.
func (m *BiMap[L, R]) EndLeft() LeftIter[L, R] {
	return LeftIter[L, R]{m.c, m.c.end}
}

// BeginRight returns the position of the smallest right value, or EndRight if the map is empty.
func (m *BiMap[L, R]) BeginRight() RightIter[L, R] {
	return RightIter[L, R]{m.c, m.c.rights.Begin()}
}

// EndRight returns the position one past the largest right value.
func (m *BiMap[L, R]) EndRight() RightIter[L, R] {
	return RightIter[L, R]{m.c, m.c.end}
}

// Insert adds the pair (l, r) and returns the position of l. If l is already present among lefts, or r among
// rights, the map is left unchanged and Insert returns EndLeft.
func (m *BiMap[L, R]) Insert(l L, r R) LeftIter[L, R] {
	c := m.c
	if c.lefts.Contains(l) || c.rights.Contains(r) {
		return m.EndLeft()
	}

	h := c.records.Alloc(node[L, R]{left: l, right: r})
	c.lefts.Insert(h)
	c.rights.Insert(h)
	c.n++

	m.verify("insert")
	return LeftIter[L, R]{c, h}
}

// EraseLeft removes the pair at it and returns the position of the next left value. it must be a valid position
// other than EndLeft. Positions referring to the removed pair, on either side, become invalid.
func (m *BiMap[L, R]) EraseLeft(it LeftIter[L, R]) LeftIter[L, R] {
	next := it.Next()
	m.c.erase(it.h)
	m.verify("erase left")
	return next
}

// EraseRight removes the pair at it and returns the position of the next right value. it must be a valid position
// other than EndRight. Positions referring to the removed pair, on either side, become invalid.
func (m *BiMap[L, R]) EraseRight(it RightIter[L, R]) RightIter[L, R] {
	next := it.Next()
	m.c.erase(it.h)
	m.verify("erase right")
	return next
}

// EraseLeftKey removes the pair whose left value is l. It reports whether such a pair existed.
func (m *BiMap[L, R]) EraseLeftKey(l L) bool {
	it := m.FindLeft(l)
	if it.IsEnd() {
		return false
	}
	m.EraseLeft(it)
	return true
}

// EraseRightKey removes the pair whose right value is r. It reports whether such a pair existed.
func (m *BiMap[L, R]) EraseRightKey(r R) bool {
	it := m.FindRight(r)
	if it.IsEnd() {
		return false
	}
	m.EraseRight(it)
	return true
}

// EraseLeftRange removes every pair in [first, last) in left order and returns last.
func (m *BiMap[L, R]) EraseLeftRange(first, last LeftIter[L, R]) LeftIter[L, R] {
	for first != last {
		first = m.EraseLeft(first)
	}
	return last
}

// EraseRightRange removes every pair in [first, last) in right order and returns last.
func (m *BiMap[L, R]) EraseRightRange(first, last RightIter[L, R]) RightIter[L, R] {
	for first != last {
		first = m.EraseRight(first)
	}
	return last
}

// FindLeft returns the position of l, or EndLeft.
func (m *BiMap[L, R]) FindLeft(l L) LeftIter[L, R] {
	return LeftIter[L, R]{m.c, m.c.lefts.Find(l)}
}

// FindRight returns the position of r, or EndRight.
func (m *BiMap[L, R]) FindRight(r R) RightIter[L, R] {
	return RightIter[L, R]{m.c, m.c.rights.Find(r)}
}

// ContainsLeft reports whether l is present.
func (m *BiMap[L, R]) ContainsLeft(l L) bool {
	return m.c.lefts.Contains(l)
}

// ContainsRight reports whether r is present.
func (m *BiMap[L, R]) ContainsRight(r R) bool {
	return m.c.rights.Contains(r)
}

// AtLeft returns the right value paired with l. It returns an error wrapping ErrNotFound if l is absent.
func (m *BiMap[L, R]) AtLeft(l L) (R, error) {
	it := m.FindLeft(l)
	if it.IsEnd() {
		var zero R
		return zero, fmt.Errorf("%w: left %v", ErrNotFound, l)
	}
	return it.Flip().Key(), nil
}

// AtRight returns the left value paired with r. It returns an error wrapping ErrNotFound if r is absent.
func (m *BiMap[L, R]) AtRight(r R) (L, error) {
	it := m.FindRight(r)
	if it.IsEnd() {
		var zero L
		return zero, fmt.Errorf("%w: right %v", ErrNotFound, r)
	}
	return it.Flip().Key(), nil
}

// AtLeftOrDefault returns the right value paired with l. If l is absent, the pair (l, zero) is inserted first, where
// zero is the zero value of R; if zero is already paired with another left value, that pair is removed to make room.
func (m *BiMap[L, R]) AtLeftOrDefault(l L) R {
	if it := m.FindLeft(l); !it.IsEnd() {
		return it.Value()
	}

	var zero R
	if holder := m.FindRight(zero); !holder.IsEnd() {
		m.logger().Debug("displacing pair holding the zero right value", "left", holder.Value())
		m.EraseRight(holder)
	}
	return m.Insert(l, zero).Value()
}

// AtRightOrDefault returns the left value paired with r. If r is absent, the pair (zero, r) is inserted first, where
// zero is the zero value of L; if zero is already paired with another right value, that pair is removed to make room.
func (m *BiMap[L, R]) AtRightOrDefault(r R) L {
	if it := m.FindRight(r); !it.IsEnd() {
		return it.Value()
	}

	var zero L
	if holder := m.FindLeft(zero); !holder.IsEnd() {
		m.logger().Debug("displacing pair holding the zero left value", "right", holder.Value())
		m.EraseLeft(holder)
	}
	return m.Insert(zero, r).Key()
}

// LowerBoundLeft returns the position of the first left value not less than l, or EndLeft.
func (m *BiMap[L, R]) LowerBoundLeft(l L) LeftIter[L, R] {
	return LeftIter[L, R]{m.c, m.c.lefts.LowerBound(l)}
}

// UpperBoundLeft returns the position of the first left value greater than l, or EndLeft.
func (m *BiMap[L, R]) UpperBoundLeft(l L) LeftIter[L, R] {
	return LeftIter[L, R]{m.c, m.c.lefts.UpperBound(l)}
}

// LowerBoundRight returns the position of the first right value not less than r, or EndRight.
func (m *BiMap[L, R]) LowerBoundRight(r R) RightIter[L, R] {
	return RightIter[L, R]{m.c, m.c.rights.LowerBound(r)}
}

// UpperBoundRight returns the position of the first right value greater than r, or EndRight.
func (m *BiMap[L, R]) UpperBoundRight(r R) RightIter[L, R] {
	return RightIter[L, R]{m.c, m.c.rights.UpperBound(r)}
}

// Clear removes every pair. All positions into the map, including the end positions, become invalid.
func (m *BiMap[L, R]) Clear() {
	n := m.c.n
	m.c.reset()
	m.logger().Debug("cleared", "pairs", n)
}

// Clone returns an independent copy of m with the same orderings and options. Values are copied by assignment.
func (m *BiMap[L, R]) Clone() *BiMap[L, R] {
	return &BiMap[L, R]{
		mapShared: m.mapShared.derive(),
		c:         m.c.clone(),
	}
}

// Move transfers the contents of m to a new BiMap in O(1) and leaves m empty. Positions obtained from m before the
// move, including the end positions, now belong to the returned map.
func (m *BiMap[L, R]) Move() *BiMap[L, R] {
	out := &BiMap[L, R]{
		mapShared: m.mapShared.derive(),
		c:         m.c,
	}
	m.c = newCore(m.c.lefts.Less(), m.c.rights.Less(), 0)
	return out
}

// Swap exchanges the contents and orderings of m and other in O(1). Positions follow their pairs into the other map.
// Options stay with their maps.
func (m *BiMap[L, R]) Swap(other *BiMap[L, R]) {
	m.c, other.c = other.c, m.c
}

// Equal reports whether m and other hold the same pairs. Walking both maps in left order, each left value and each
// right value must be equivalent under m's orderings.
func (m *BiMap[L, R]) Equal(other *BiMap[L, R]) bool {
	if m.Len() != other.Len() {
		return false
	}
	a, b := m.BeginLeft(), other.BeginLeft()
	for ; !a.IsEnd(); a, b = a.Next(), b.Next() {
		if !m.c.lefts.Equivalent(a.Key(), b.Key()) || !m.c.rights.Equivalent(a.Value(), b.Value()) {
			return false
		}
	}
	return true
}

// Check validates both indexes and verifies that they link exactly the same records. It is meant for tests and
// debugging.
func (m *BiMap[L, R]) Check() error {
	c := m.c
	if err := c.lefts.Check(); err != nil {
		return fmt.Errorf("left index: %w", err)
	}
	if err := c.rights.Check(); err != nil {
		return fmt.Errorf("right index: %w", err)
	}
	if c.lefts.Len() != c.n || c.rights.Len() != c.n || c.records.Len() != c.n+1 {
		return fmt.Errorf("%w: %d pairs, %d lefts, %d rights, %d records", itree.ErrCorrupt,
			c.n, c.lefts.Len(), c.rights.Len(), c.records.Len()-1)
	}
	for h := range c.lefts.All() {
		if found := c.rights.Find(c.records.Get(h).right); found != h {
			return fmt.Errorf("%w: record %d is not linked into the right index", itree.ErrCorrupt, h)
		}
	}
	return nil
}

func (m *BiMap[L, R]) verify(op string) {
	if !m.checkInvariants {
		return
	}
	if err := m.Check(); err != nil {
		m.logger().Error("invariant check failed", "op", op, "err", err)
		panic(err)
	}
}
