package itree

// Red-black rebalancing. The root always hangs off the sentinel's left link, so replacing a child of the sentinel
// replaces the root and no special case is needed for it. The sentinel itself is never colored red.

func (t *Tree[K, A]) isRed(h Handle) bool {
	return h != Nil && t.links(h).red
}

// replaceChild makes v take u's place under parent.
func (t *Tree[K, A]) replaceChild(parent, u, v Handle) {
	pl := t.links(parent)
	if pl.left == u {
		pl.left = v
	} else {
		pl.right = v
	}
}

// transplant replaces the subtree rooted at u with the subtree rooted at v, which may be Nil.
func (t *Tree[K, A]) transplant(u, v Handle) {
	p := t.links(u).parent
	t.replaceChild(p, u, v)
	if v != Nil {
		t.links(v).parent = p
	}
}

func (t *Tree[K, A]) rotateLeft(x Handle) {
	xl := t.links(x)
	y := xl.right
	yl := t.links(y)

	xl.right = yl.left
	if yl.left != Nil {
		t.links(yl.left).parent = x
	}
	yl.parent = xl.parent
	t.replaceChild(xl.parent, x, y)
	yl.left = x
	xl.parent = y
}

func (t *Tree[K, A]) rotateRight(x Handle) {
	xl := t.links(x)
	y := xl.left
	yl := t.links(y)

	xl.left = yl.right
	if yl.right != Nil {
		t.links(yl.right).parent = x
	}
	yl.parent = xl.parent
	t.replaceChild(xl.parent, x, y)
	yl.right = x
	xl.parent = y
}

func (t *Tree[K, A]) insertFixup(z Handle) {
	for {
		p := t.links(z).parent
		if p == t.sentinel || !t.links(p).red {
			break
		}
		// p is red, so it is not the root and has a real parent.
		g := t.links(p).parent
		gl := t.links(g)
		if p == gl.left {
			if u := gl.right; t.isRed(u) {
				t.links(p).red = false
				t.links(u).red = false
				gl.red = true
				z = g
				continue
			}
			if z == t.links(p).right {
				z = p
				t.rotateLeft(z)
				p = t.links(z).parent
			}
			t.links(p).red = false
			gl.red = true
			t.rotateRight(g)
		} else {
			if u := gl.left; t.isRed(u) {
				t.links(p).red = false
				t.links(u).red = false
				gl.red = true
				z = g
				continue
			}
			if z == t.links(p).left {
				z = p
				t.rotateRight(z)
				p = t.links(z).parent
			}
			t.links(p).red = false
			gl.red = true
			t.rotateLeft(g)
		}
	}
	t.links(t.root()).red = false
}

// unlink removes z from the tree and clears its links. z's neighbours keep their handles; the node which takes z's
// place is relinked rather than having its record copied into z.
func (t *Tree[K, A]) unlink(z Handle) {
	zl := t.links(z)

	var x, xParent Handle
	removedBlack := !zl.red

	switch {
	case zl.left == Nil:
		x, xParent = zl.right, zl.parent
		t.transplant(z, x)
	case zl.right == Nil:
		x, xParent = zl.left, zl.parent
		t.transplant(z, x)
	default:
		y := t.leftmost(zl.right)
		yl := t.links(y)
		removedBlack = !yl.red
		x = yl.right
		if yl.parent == z {
			xParent = y
		} else {
			xParent = yl.parent
			t.transplant(y, x)
			yl.right = zl.right
			t.links(yl.right).parent = y
		}
		t.transplant(z, y)
		yl.left = zl.left
		t.links(yl.left).parent = y
		yl.red = zl.red
	}

	*zl = Links{}
	if removedBlack {
		t.deleteFixup(x, xParent)
	}
}

// deleteFixup restores the red-black properties after a black node was removed above x. x may be Nil, in which case
// xParent identifies its position.
func (t *Tree[K, A]) deleteFixup(x, xParent Handle) {
	for x != t.root() && !t.isRed(x) {
		pl := t.links(xParent)
		if x == pl.left {
			w := pl.right
			if t.isRed(w) {
				t.links(w).red = false
				pl.red = true
				t.rotateLeft(xParent)
				w = pl.right
			}
			wl := t.links(w)
			if !t.isRed(wl.left) && !t.isRed(wl.right) {
				wl.red = true
				x = xParent
				xParent = t.links(x).parent
				continue
			}
			if !t.isRed(wl.right) {
				t.links(wl.left).red = false
				wl.red = true
				t.rotateRight(w)
				w = pl.right
				wl = t.links(w)
			}
			wl.red = pl.red
			pl.red = false
			t.links(wl.right).red = false
			t.rotateLeft(xParent)
			x = t.root()
		} else {
			w := pl.left
			if t.isRed(w) {
				t.links(w).red = false
				pl.red = true
				t.rotateRight(xParent)
				w = pl.left
			}
			wl := t.links(w)
			if !t.isRed(wl.left) && !t.isRed(wl.right) {
				wl.red = true
				x = xParent
				xParent = t.links(x).parent
				continue
			}
			if !t.isRed(wl.left) {
				t.links(wl.right).red = false
				wl.red = true
				t.rotateLeft(w)
				w = pl.left
				wl = t.links(w)
			}
			wl.red = pl.red
			pl.red = false
			t.links(wl.left).red = false
			t.rotateRight(xParent)
			x = t.root()
		}
	}
	if x != Nil {
		t.links(x).red = false
	}
}
