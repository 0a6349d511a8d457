package itree

import (
	"errors"
	"fmt"
)

// ErrCorrupt is returned by Check when the tree violates one of its structural invariants.
var ErrCorrupt = errors.New("itree: corrupt tree")

// Check validates the tree: parent links agree with child links, keys are strictly ascending, the red-black
// properties hold, and the number of reachable nodes equals Len. It runs in O(n log n) without recursion and is meant
// for tests and debugging.
func (t *Tree[K, A]) Check() error {
	sl := t.links(t.sentinel)
	if sl.parent != Nil || sl.right != Nil || sl.red {
		return fmt.Errorf("%w: sentinel %d has links %+v", ErrCorrupt, t.sentinel, *sl)
	}
	root := sl.left
	if root == Nil {
		if t.n != 0 {
			return fmt.Errorf("%w: empty tree reports %d nodes", ErrCorrupt, t.n)
		}
		return nil
	}
	if t.links(root).parent != t.sentinel {
		return fmt.Errorf("%w: root %d is not parented by the sentinel", ErrCorrupt, root)
	}
	if t.links(root).red {
		return fmt.Errorf("%w: root %d is red", ErrCorrupt, root)
	}

	blackHeight := -1
	count := 0
	stack := []Handle{root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		if count > t.n {
			return fmt.Errorf("%w: more than %d reachable nodes", ErrCorrupt, t.n)
		}

		hl := t.links(h)
		for _, c := range []Handle{hl.left, hl.right} {
			if c == Nil {
				continue
			}
			if t.links(c).parent != h {
				return fmt.Errorf("%w: node %d does not point back to parent %d", ErrCorrupt, c, h)
			}
			if hl.red && t.links(c).red {
				return fmt.Errorf("%w: red node %d has red child %d", ErrCorrupt, h, c)
			}
			stack = append(stack, c)
		}

		if hl.left == Nil || hl.right == Nil {
			bh := 0
			for p := h; p != t.sentinel; p = t.links(p).parent {
				if !t.links(p).red {
					bh++
				}
			}
			if blackHeight == -1 {
				blackHeight = bh
			} else if bh != blackHeight {
				return fmt.Errorf("%w: black height %d at node %d, expected %d", ErrCorrupt, bh, h, blackHeight)
			}
		}
	}
	if count != t.n {
		return fmt.Errorf("%w: %d reachable nodes, expected %d", ErrCorrupt, count, t.n)
	}

	prev := Nil
	for h := range t.All() {
		if prev != Nil && !t.less(t.acc.Key(prev), t.acc.Key(h)) {
			return fmt.Errorf("%w: nodes %d and %d are out of order", ErrCorrupt, prev, h)
		}
		prev = h
	}
	return nil
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, A]) Depth() int {
	type frame struct {
		h     Handle
		depth int
	}
	deepest := 0
	stack := []frame{{t.root(), 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.h == Nil {
			continue
		}
		deepest = max(deepest, f.depth)
		l := t.links(f.h)
		stack = append(stack, frame{l.left, f.depth + 1}, frame{l.right, f.depth + 1})
	}
	return deepest
}
