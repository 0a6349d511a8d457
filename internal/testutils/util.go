package testutils

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/Nomad192/bimap"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pair is one (left, right) association collected from a map.
type Pair[L, R any] struct {
	Left  L
	Right R
}

// Pairs lists the pairs of m in ascending left order.
func Pairs[L, R any](m *bimap.BiMap[L, R]) []Pair[L, R] {
	var out []Pair[L, R]
	for l, r := range m.All() {
		out = append(out, Pair[L, R]{l, r})
	}
	return out
}

// PairsByRight lists the pairs of m in ascending right order.
func PairsByRight[L, R any](m *bimap.BiMap[L, R]) []Pair[L, R] {
	var out []Pair[L, R]
	for r, l := range m.ByRight() {
		out = append(out, Pair[L, R]{l, r})
	}
	return out
}

// AssertPairs fails the test with a diff unless m holds exactly want, in left order.
func AssertPairs[L, R any](t testing.TB, want []Pair[L, R], m *bimap.BiMap[L, R]) {
	t.Helper()
	if diff := cmp.Diff(want, Pairs(m)); diff != "" {
		t.Errorf("pairs mismatch (-want +got):\n%s", diff)
	}
}

// AssertConsistent checks the structural invariants of m and that full traversals of both sides agree with Len.
func AssertConsistent[L, R any](t testing.TB, m *bimap.BiMap[L, R]) {
	t.Helper()
	require.NoError(t, m.Check())

	lefts, rights := 0, 0
	for it := m.BeginLeft(); !it.IsEnd(); it = it.Next() {
		lefts++
		assert.Equal(t, it, it.Flip().Flip(), "flip is not its own inverse")
	}
	for it := m.BeginRight(); !it.IsEnd(); it = it.Next() {
		rights++
	}
	assert.Equal(t, m.Len(), lefts, "left traversal")
	assert.Equal(t, m.Len(), rights, "right traversal")
	assert.Equal(t, m.EndRight(), m.EndLeft().Flip())
}

// Shuffled returns the integers [0, n) in a deterministic random order.
func Shuffled(n int, seed uint64) []int {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return rng.Perm(n)
}

// LogTracker records the messages logged through the logger it hands out.
type LogTracker struct {
	t *testing.T

	mut      *sync.Mutex
	messages []string
}

// NewLogTracker returns a tracker and a debug-level logger which feeds it.
func NewLogTracker(t *testing.T) (*LogTracker, *slog.Logger) {
	lt := &LogTracker{t: t, mut: &sync.Mutex{}}
	return lt, slog.New(trackingHandler{lt})
}

// Messages returns every message logged so far and forgets them.
func (lt *LogTracker) Messages() []string {
	lt.mut.Lock()
	defer lt.mut.Unlock()
	out := lt.messages
	lt.messages = nil
	return out
}

// Empty asserts that nothing has been logged since the last call to Messages.
func (lt *LogTracker) Empty() {
	lt.t.Helper()
	lt.mut.Lock()
	defer lt.mut.Unlock()
	assert.Empty(lt.t, lt.messages)
}

type trackingHandler struct {
	lt *LogTracker
}

func (h trackingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h trackingHandler) Handle(_ context.Context, r slog.Record) error {
	h.lt.mut.Lock()
	defer h.lt.mut.Unlock()
	h.lt.messages = append(h.lt.messages, r.Message)
	return nil
}

func (h trackingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h trackingHandler) WithGroup(string) slog.Handler { return h }
