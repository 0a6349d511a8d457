package bimap_test

import (
	"slices"
	"testing"

	"github.com/Nomad192/bimap"
	"github.com/Nomad192/bimap/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair = testutils.Pair[int, string]

func newABC(t *testing.T) *bimap.BiMap[int, string] {
	t.Helper()
	m := bimap.NewOrdered[int, string](bimap.WithInvariantChecks())
	for _, p := range []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}, {Left: 3, Right: "c"}} {
		require.False(t, m.Insert(p.Left, p.Right).IsEnd())
	}
	return m
}

func TestScenario(t *testing.T) {
	m := newABC(t)

	r, err := m.AtLeft(2)
	require.NoError(t, err)
	assert.Equal(t, "b", r)

	assert.True(t, m.EraseLeftKey(2))
	assert.Equal(t, m.EndRight(), m.FindRight("b"))
	assert.Equal(t, 2, m.Len())
	testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}, {Left: 3, Right: "c"}}, m)
	testutils.AssertConsistent(t, m)
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name     string
		left     int
		right    string
		accepted bool
	}{
		{name: "new pair", left: 4, right: "d", accepted: true},
		{name: "duplicate left", left: 2, right: "z", accepted: false},
		{name: "duplicate right", left: 9, right: "b", accepted: false},
		{name: "duplicate pair", left: 3, right: "c", accepted: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newABC(t)
			it := m.Insert(tt.left, tt.right)
			if !tt.accepted {
				assert.Equal(t, m.EndLeft(), it)
				assert.Equal(t, 3, m.Len())
				testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}, {Left: 3, Right: "c"}}, m)
				return
			}
			require.False(t, it.IsEnd())
			assert.Equal(t, tt.left, it.Key())
			assert.Equal(t, tt.right, it.Value())
			assert.Equal(t, tt.right, it.Flip().Key())
			assert.Equal(t, 4, m.Len())
			testutils.AssertConsistent(t, m)
		})
	}
}

func TestEmpty(t *testing.T) {
	m := bimap.NewOrdered[int, int]()
	assert.True(t, m.Empty())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, m.EndLeft(), m.BeginLeft())
	assert.Equal(t, m.EndRight(), m.BeginRight())
	assert.Equal(t, m.EndRight(), m.EndLeft().Flip())
	assert.Equal(t, m.EndLeft(), m.EndRight().Flip())
	assert.True(t, m.EndLeft().IsEnd())
	assert.False(t, m.EraseLeftKey(1))
	assert.False(t, m.EraseRightKey(1))
	testutils.AssertConsistent(t, m)
}

func TestUniquenessAndOrder(t *testing.T) {
	m := bimap.NewOrdered[int, int](bimap.WithCapacity(512))
	lefts := testutils.Shuffled(500, 7)
	rights := testutils.Shuffled(500, 11)
	for i := range lefts {
		require.False(t, m.Insert(lefts[i], rights[i]).IsEnd())
	}
	// every further insert collides on one side or the other
	for i := 0; i < 500; i++ {
		assert.True(t, m.Insert(i, 1000+i).IsEnd())
		assert.True(t, m.Insert(1000+i, i).IsEnd())
	}
	assert.Equal(t, 500, m.Len())

	assert.True(t, slices.IsSorted(slices.Collect(m.Lefts())))
	assert.True(t, slices.IsSorted(slices.Collect(m.Rights())))
	for i := range lefts {
		r, err := m.AtLeft(lefts[i])
		require.NoError(t, err)
		assert.Equal(t, rights[i], r)
	}
	testutils.AssertConsistent(t, m)
}

func TestFlip(t *testing.T) {
	m := newABC(t)
	for it := m.BeginLeft(); !it.IsEnd(); it = it.Next() {
		f := it.Flip()
		assert.Equal(t, it.Key(), f.Value())
		assert.Equal(t, it.Value(), f.Key())
		assert.Equal(t, it, f.Flip())
	}
	for it := m.BeginRight(); !it.IsEnd(); it = it.Next() {
		assert.Equal(t, it, it.Flip().Flip())
	}
	assert.Equal(t, m.EndRight(), m.EndLeft().Flip())
	assert.Equal(t, m.EndLeft(), m.EndRight().Flip())
}

func TestNavigation(t *testing.T) {
	m := newABC(t)

	it := m.BeginLeft()
	assert.Equal(t, 1, it.Key())
	it = it.Next().Next()
	assert.Equal(t, 3, it.Key())
	assert.True(t, it.Next().IsEnd())
	assert.Equal(t, 3, m.EndLeft().Prev().Key())
	assert.Equal(t, 2, m.EndLeft().Prev().Prev().Key())

	rt := m.EndRight().Prev()
	assert.Equal(t, "c", rt.Key())
	assert.Equal(t, "b", rt.Prev().Key())
}

func TestErase(t *testing.T) {
	t.Run("erase left returns the successor", func(t *testing.T) {
		m := newABC(t)
		next := m.EraseLeft(m.FindLeft(2))
		assert.Equal(t, 3, next.Key())
		assert.Equal(t, m.EndRight(), m.FindRight("b"))
		next = m.EraseLeft(next)
		assert.True(t, next.IsEnd())
		testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}}, m)
		testutils.AssertConsistent(t, m)
	})

	t.Run("erase right returns the successor", func(t *testing.T) {
		m := newABC(t)
		next := m.EraseRight(m.FindRight("a"))
		assert.Equal(t, "b", next.Key())
		assert.Equal(t, m.EndLeft(), m.FindLeft(1))
		testutils.AssertPairs(t, []pair{{Left: 2, Right: "b"}, {Left: 3, Right: "c"}}, m)
		testutils.AssertConsistent(t, m)
	})

	t.Run("erase by key", func(t *testing.T) {
		m := newABC(t)
		assert.True(t, m.EraseRightKey("c"))
		assert.False(t, m.EraseRightKey("c"))
		assert.False(t, m.EraseLeftKey(3))
		assert.True(t, m.EraseLeftKey(1))
		testutils.AssertPairs(t, []pair{{Left: 2, Right: "b"}}, m)
	})

	t.Run("erase left range", func(t *testing.T) {
		m := bimap.NewOrdered[int, string]()
		for i, s := range []string{"a", "b", "c", "d", "e"} {
			m.Insert(i, s)
		}
		last := m.FindLeft(4)
		got := m.EraseLeftRange(m.FindLeft(1), last)
		assert.Equal(t, last, got)
		testutils.AssertPairs(t, []pair{{Left: 0, Right: "a"}, {Left: 4, Right: "e"}}, m)
		testutils.AssertConsistent(t, m)
	})

	t.Run("erase right range to the end", func(t *testing.T) {
		m := bimap.NewOrdered[int, string]()
		for i, s := range []string{"e", "d", "c", "b", "a"} {
			m.Insert(i, s)
		}
		got := m.EraseRightRange(m.FindRight("c"), m.EndRight())
		assert.True(t, got.IsEnd())
		testutils.AssertPairs(t, []pair{{Left: 3, Right: "b"}, {Left: 4, Right: "a"}}, m)
		testutils.AssertConsistent(t, m)
	})

	t.Run("empty range", func(t *testing.T) {
		m := newABC(t)
		it := m.FindLeft(2)
		assert.Equal(t, it, m.EraseLeftRange(it, it))
		assert.Equal(t, 3, m.Len())
	})

	t.Run("erasing everything", func(t *testing.T) {
		m := newABC(t)
		m.EraseLeftRange(m.BeginLeft(), m.EndLeft())
		assert.True(t, m.Empty())
		testutils.AssertConsistent(t, m)
	})

	t.Run("other positions survive an erase", func(t *testing.T) {
		m := newABC(t)
		keep := m.FindLeft(3)
		m.EraseLeftKey(1)
		m.EraseLeftKey(2)
		assert.Equal(t, 3, keep.Key())
		assert.Equal(t, "c", keep.Value())
	})
}

func TestAt(t *testing.T) {
	m := newABC(t)

	l, err := m.AtRight("c")
	require.NoError(t, err)
	assert.Equal(t, 3, l)

	_, err = m.AtLeft(7)
	assert.ErrorIs(t, err, bimap.ErrNotFound)
	assert.ErrorContains(t, err, "7")

	_, err = m.AtRight("z")
	assert.ErrorIs(t, err, bimap.ErrNotFound)
}

func TestAtOrDefault(t *testing.T) {
	t.Run("left side displaces the zero right value", func(t *testing.T) {
		tracker, logger := testutils.NewLogTracker(t)
		m := bimap.NewOrdered[int, int](bimap.WithLogger(logger), bimap.WithInvariantChecks())

		assert.Equal(t, 0, m.AtLeftOrDefault(5))
		testutils.AssertPairs(t, []testutils.Pair[int, int]{{Left: 5, Right: 0}}, m)
		tracker.Empty()

		assert.Equal(t, 0, m.AtLeftOrDefault(7))
		testutils.AssertPairs(t, []testutils.Pair[int, int]{{Left: 7, Right: 0}}, m)
		assert.Equal(t, []string{"displacing pair holding the zero right value"}, tracker.Messages())
	})

	t.Run("right side displaces the zero left value", func(t *testing.T) {
		m := bimap.NewOrdered[int, string]()
		m.Insert(0, "x")
		m.Insert(1, "y")

		assert.Equal(t, 0, m.AtRightOrDefault("z"))
		testutils.AssertPairs(t, []pair{{Left: 0, Right: "z"}, {Left: 1, Right: "y"}}, m)
		assert.False(t, m.ContainsRight("x"))
	})

	t.Run("present keys are returned unchanged", func(t *testing.T) {
		m := newABC(t)
		assert.Equal(t, "b", m.AtLeftOrDefault(2))
		assert.Equal(t, 3, m.AtRightOrDefault("c"))
		assert.Equal(t, 3, m.Len())
	})

	t.Run("no displacement when the zero value is free", func(t *testing.T) {
		m := newABC(t)
		assert.Equal(t, "", m.AtLeftOrDefault(4))
		testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}, {Left: 3, Right: "c"}, {Left: 4, Right: ""}}, m)
	})
}

func TestBounds(t *testing.T) {
	m := bimap.NewOrdered[int, string]()
	for i, s := range []string{"b", "d", "f"} {
		m.Insert((i+1)*10, s)
	}

	tests := []struct {
		name         string
		key          int
		lower, upper int // 0 means end
	}{
		{name: "before first", key: 5, lower: 10, upper: 10},
		{name: "exact", key: 20, lower: 20, upper: 30},
		{name: "between", key: 25, lower: 30, upper: 30},
		{name: "last", key: 30, lower: 30, upper: 0},
		{name: "past last", key: 35, lower: 0, upper: 0},
	}
	keyOf := func(it bimap.LeftIter[int, string]) int {
		if it.IsEnd() {
			return 0
		}
		return it.Key()
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lower, keyOf(m.LowerBoundLeft(tt.key)))
			assert.Equal(t, tt.upper, keyOf(m.UpperBoundLeft(tt.key)))
		})
	}

	assert.Equal(t, "d", m.LowerBoundRight("c").Key())
	assert.Equal(t, "d", m.LowerBoundRight("d").Key())
	assert.Equal(t, "f", m.UpperBoundRight("d").Key())
	assert.True(t, m.UpperBoundRight("f").IsEnd())
	assert.Equal(t, 30, m.LowerBoundRight("e").Flip().Key())
}

func TestEqual(t *testing.T) {
	build := func(pairs ...pair) *bimap.BiMap[int, string] {
		m := bimap.New[int, string](func(a, b int) bool { return a < b }, testutils.LessFold)
		for _, p := range pairs {
			m.Insert(p.Left, p.Right)
		}
		return m
	}

	tests := []struct {
		name  string
		a, b  []pair
		equal bool
	}{
		{name: "both empty", equal: true},
		{name: "same pairs", a: []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}}, b: []pair{{Left: 2, Right: "b"}, {Left: 1, Right: "a"}}, equal: true},
		{name: "equivalent under comparator", a: []pair{{Left: 1, Right: "a"}}, b: []pair{{Left: 1, Right: "A"}}, equal: true},
		{name: "different sizes", a: []pair{{Left: 1, Right: "a"}}, b: []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}}, equal: false},
		{name: "different left", a: []pair{{Left: 1, Right: "a"}}, b: []pair{{Left: 2, Right: "a"}}, equal: false},
		{name: "different right", a: []pair{{Left: 1, Right: "a"}}, b: []pair{{Left: 1, Right: "b"}}, equal: false},
		{name: "swapped pairing", a: []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}}, b: []pair{{Left: 1, Right: "b"}, {Left: 2, Right: "a"}}, equal: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := build(tt.a...), build(tt.b...)
			assert.Equal(t, tt.equal, a.Equal(b))
			assert.Equal(t, tt.equal, b.Equal(a))
		})
	}
}

func TestClone(t *testing.T) {
	m := newABC(t)
	cp := m.Clone()
	assert.True(t, m.Equal(cp))
	testutils.AssertConsistent(t, cp)

	cp.EraseLeftKey(1)
	cp.Insert(4, "d")
	cp.Insert(5, "a")
	testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}, {Left: 3, Right: "c"}}, m)
	testutils.AssertPairs(t, []pair{{Left: 2, Right: "b"}, {Left: 3, Right: "c"}, {Left: 4, Right: "d"}, {Left: 5, Right: "a"}}, cp)
	assert.False(t, m.Equal(cp))

	m.EraseRightKey("b")
	assert.True(t, cp.ContainsRight("b"))
	testutils.AssertConsistent(t, m)
	testutils.AssertConsistent(t, cp)
}

func TestMove(t *testing.T) {
	m := newABC(t)
	pos := m.FindLeft(2)
	end := m.EndLeft()

	moved := m.Move()
	assert.True(t, m.Empty())
	testutils.AssertConsistent(t, m)
	testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}, {Left: 3, Right: "c"}}, moved)

	// positions follow their pairs
	assert.Equal(t, "b", pos.Value())
	assert.Equal(t, end, moved.EndLeft())
	assert.Equal(t, 3, moved.EraseLeft(pos).Key())

	// the source is still usable
	m.Insert(9, "z")
	testutils.AssertPairs(t, []pair{{Left: 9, Right: "z"}}, m)
}

func TestSwap(t *testing.T) {
	a := newABC(t)
	b := bimap.NewOrdered[int, string]()
	b.Insert(7, "q")
	pos := a.FindLeft(1)

	a.Swap(b)
	testutils.AssertPairs(t, []pair{{Left: 7, Right: "q"}}, a)
	testutils.AssertPairs(t, []pair{{Left: 1, Right: "a"}, {Left: 2, Right: "b"}, {Left: 3, Right: "c"}}, b)
	assert.Equal(t, b.BeginLeft(), pos)
	testutils.AssertConsistent(t, a)
	testutils.AssertConsistent(t, b)
}

func TestClear(t *testing.T) {
	m := newABC(t)
	m.Clear()
	assert.True(t, m.Empty())
	assert.True(t, m.FindLeft(1).IsEnd())
	testutils.AssertConsistent(t, m)

	m.Insert(1, "x")
	testutils.AssertPairs(t, []pair{{Left: 1, Right: "x"}}, m)
}

func TestCustomOrderings(t *testing.T) {
	t.Run("struct keys", func(t *testing.T) {
		m := bimap.New[testutils.Named, int](testutils.LessNamed, testutils.LessDesc, bimap.WithInvariantChecks())
		m.Insert(testutils.Named{Namespace: "b", Name: "x"}, 1)
		m.Insert(testutils.Named{Namespace: "a", Name: "y"}, 2)
		m.Insert(testutils.Named{Namespace: "a", Name: "x"}, 3)
		assert.True(t, m.Insert(testutils.Named{Namespace: "a", Name: "x"}, 4).IsEnd())

		var keys []string
		for n := range m.Lefts() {
			keys = append(keys, n.Key())
		}
		assert.Equal(t, []string{"a/x", "a/y", "b/x"}, keys)
		assert.Equal(t, []int{3, 2, 1}, slices.Collect(m.Rights()))
	})

	t.Run("equivalence, not equality, decides uniqueness", func(t *testing.T) {
		m := bimap.New[string, int](testutils.LessFold, func(a, b int) bool { return a < b })
		m.Insert("Hello", 1)
		assert.True(t, m.Insert("hello", 2).IsEnd())
		assert.True(t, m.ContainsLeft("HELLO"))
		r, err := m.AtLeft("hELLo")
		require.NoError(t, err)
		assert.Equal(t, 1, r)
	})
}

func TestRandomizedAgainstMaps(t *testing.T) {
	m := bimap.NewOrdered[int, int]()
	l2r, r2l := map[int]int{}, map[int]int{}

	ops := testutils.Shuffled(4000, 3)
	for i, op := range ops {
		l, r := op%300, (op*7)%300
		switch i % 3 {
		case 0, 1:
			_, lok := l2r[l]
			_, rok := r2l[r]
			it := m.Insert(l, r)
			assert.Equal(t, lok || rok, it.IsEnd(), "insert (%d, %d)", l, r)
			if !lok && !rok {
				l2r[l], r2l[r] = r, l
			}
		case 2:
			_, ok := l2r[l]
			assert.Equal(t, ok, m.EraseLeftKey(l))
			if ok {
				delete(r2l, l2r[l])
				delete(l2r, l)
			}
		}
	}

	require.Equal(t, len(l2r), m.Len())
	for l, r := range l2r {
		got, err := m.AtLeft(l)
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	for r, l := range r2l {
		got, err := m.AtRight(r)
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}
	testutils.AssertConsistent(t, m)
}
