// Package rbtree implements a red-black tree whose nodes live in a single
// growable arena and are addressed by int32 handles.
//
// Handles stay valid until the node is deleted, even when other nodes are
// inserted or removed, so callers can thread their own links (e.g. an
// insertion-order list) through tree items. Pointers returned by Item are only
// valid until the next Insert, which may grow the arena.
package rbtree

import (
	"fmt"

	"github.com/arloliu/vcell/errs"
	"github.com/arloliu/vcell/internal/pool"
)

// Nil is the handle of the sentinel node. It is never a valid item.
const Nil int32 = 0

// Color is a node color.
type Color uint8

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}

	return "black"
}

type node[T any] struct {
	item   T
	left   int32
	right  int32
	parent int32
	color  Color
}

// Tree is a red-black tree of T. The zero Tree is empty and ready to use.
//
// Tree does not know how to order items itself; every lookup takes a probe
// function that compares the searched key against an item.
type Tree[T any] struct {
	nodes pool.Buffer[node[T]]
	root  int32
	free  int32
	size  int
}

// SetLimit caps the arena at limit nodes, sentinel included.
func (t *Tree[T]) SetLimit(limit int) {
	t.nodes.SetLimit(limit)
}

// Len returns the number of items in the tree.
func (t *Tree[T]) Len() int {
	return t.size
}

// Item returns the item stored at handle i.
func (t *Tree[T]) Item(i int32) *T {
	return &t.nodes.At(int(i)).item
}

func (t *Tree[T]) n(i int32) *node[T] {
	return t.nodes.At(int(i))
}

// Find returns the handle of the item for which probe returns 0, or Nil.
//
// probe reports how the searched key orders against the given item: negative
// when the key sorts before it, positive when after.
func (t *Tree[T]) Find(probe func(item *T) int) int32 {
	if t.nodes.Len() == 0 {
		return Nil
	}

	cur := t.root
	for cur != Nil {
		n := t.n(cur)
		c := probe(&n.item)
		switch {
		case c < 0:
			cur = n.left
		case c > 0:
			cur = n.right
		default:
			return cur
		}
	}

	return Nil
}

// Insert finds the slot for the key described by probe.
//
// If an item already matches, its handle is returned with inserted set to
// false. Otherwise a zero item is linked in at the slot and returned with
// inserted set to true; the caller must fill it with a key that orders as
// probe described.
func (t *Tree[T]) Insert(probe func(item *T) int) (idx int32, inserted bool, err error) {
	if err := t.init(); err != nil {
		return Nil, false, err
	}

	parent := Nil
	cur := t.root
	c := 0
	for cur != Nil {
		parent = cur
		n := t.n(cur)
		c = probe(&n.item)
		switch {
		case c < 0:
			cur = n.left
		case c > 0:
			cur = n.right
		default:
			return cur, false, nil
		}
	}

	z, err := t.alloc()
	if err != nil {
		return Nil, false, err
	}

	zn := t.n(z)
	zn.parent = parent
	zn.left = Nil
	zn.right = Nil
	zn.color = Red

	switch {
	case parent == Nil:
		t.root = z
	case c < 0:
		t.n(parent).left = z
	default:
		t.n(parent).right = z
	}

	t.size++
	t.insertFixup(z)

	return z, true, nil
}

// Delete unlinks the node at handle z and releases its slot. The item is
// zeroed, so callers must read anything they need from it beforehand.
func (t *Tree[T]) Delete(z int32) {
	zn := t.n(z)
	y := z
	yColor := zn.color
	var x int32

	switch {
	case zn.left == Nil:
		x = zn.right
		t.transplant(z, zn.right)
	case zn.right == Nil:
		x = zn.left
		t.transplant(z, zn.left)
	default:
		y = t.minimum(zn.right)
		yn := t.n(y)
		yColor = yn.color
		x = yn.right
		if yn.parent == z {
			t.n(x).parent = y
		} else {
			t.transplant(y, yn.right)
			yn.right = zn.right
			t.n(yn.right).parent = y
		}
		t.transplant(z, y)
		yn.left = zn.left
		t.n(yn.left).parent = y
		yn.color = zn.color
	}

	if yColor == Black {
		t.deleteFixup(x)
	}

	// restore the sentinel, transplant may have pointed its parent elsewhere
	sentinel := t.n(Nil)
	sentinel.parent = Nil
	sentinel.color = Black

	*zn = node[T]{right: t.free}
	t.free = z
	t.size--
}

// Reset removes all items and releases the arena.
func (t *Tree[T]) Reset() {
	t.nodes.Reset()
	t.root = Nil
	t.free = Nil
	t.size = 0
}

// First returns the handle of the smallest item, or Nil.
func (t *Tree[T]) First() int32 {
	if t.root == Nil {
		return Nil
	}

	return t.minimum(t.root)
}

// Last returns the handle of the largest item, or Nil.
func (t *Tree[T]) Last() int32 {
	if t.root == Nil {
		return Nil
	}

	return t.maximum(t.root)
}

// Next returns the in-order successor of i, or Nil.
func (t *Tree[T]) Next(i int32) int32 {
	if r := t.n(i).right; r != Nil {
		return t.minimum(r)
	}

	p := t.n(i).parent
	for p != Nil && i == t.n(p).right {
		i = p
		p = t.n(p).parent
	}

	return p
}

// Prev returns the in-order predecessor of i, or Nil.
func (t *Tree[T]) Prev(i int32) int32 {
	if l := t.n(i).left; l != Nil {
		return t.maximum(l)
	}

	p := t.n(i).parent
	for p != Nil && i == t.n(p).left {
		i = p
		p = t.n(p).parent
	}

	return p
}

// Verify checks the red-black invariants and parent links. When cmp is not
// nil it also checks that in-order traversal is strictly increasing.
//
// It returns an error wrapping errs.ErrCorruptTree describing the first
// violation found.
func (t *Tree[T]) Verify(cmp func(a, b *T) int) error {
	if t.root == Nil {
		if t.size != 0 {
			return fmt.Errorf("%w: empty root with size %d", errs.ErrCorruptTree, t.size)
		}

		return nil
	}

	if t.n(Nil).color != Black {
		return fmt.Errorf("%w: red sentinel", errs.ErrCorruptTree)
	}
	if t.n(t.root).color != Black {
		return fmt.Errorf("%w: red root", errs.ErrCorruptTree)
	}
	if t.n(t.root).parent != Nil {
		return fmt.Errorf("%w: root has a parent", errs.ErrCorruptTree)
	}

	count := 0
	if _, err := t.verifyNode(t.root, &count); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: counted %d nodes, size %d", errs.ErrCorruptTree, count, t.size)
	}

	if cmp == nil {
		return nil
	}
	prev := t.First()
	for cur := t.Next(prev); cur != Nil; prev, cur = cur, t.Next(cur) {
		if cmp(t.Item(prev), t.Item(cur)) >= 0 {
			return fmt.Errorf("%w: nodes %d and %d out of order", errs.ErrCorruptTree, prev, cur)
		}
	}

	return nil
}

// verifyNode returns the black height of the subtree rooted at i.
func (t *Tree[T]) verifyNode(i int32, count *int) (int, error) {
	if i == Nil {
		return 1, nil
	}
	*count++

	n := t.n(i)
	if n.left != Nil && t.n(n.left).parent != i {
		return 0, fmt.Errorf("%w: node %d left child has wrong parent", errs.ErrCorruptTree, i)
	}
	if n.right != Nil && t.n(n.right).parent != i {
		return 0, fmt.Errorf("%w: node %d right child has wrong parent", errs.ErrCorruptTree, i)
	}
	if n.color == Red && (t.n(n.left).color == Red || t.n(n.right).color == Red) {
		return 0, fmt.Errorf("%w: red node %d has a red child", errs.ErrCorruptTree, i)
	}

	lh, err := t.verifyNode(n.left, count)
	if err != nil {
		return 0, err
	}
	rh, err := t.verifyNode(n.right, count)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("%w: node %d black height %d != %d", errs.ErrCorruptTree, i, lh, rh)
	}

	if n.color == Black {
		lh++
	}

	return lh, nil
}

func (t *Tree[T]) init() error {
	if t.nodes.Len() > 0 {
		return nil
	}
	if err := t.nodes.Append(1); err != nil {
		return err
	}
	t.root = Nil
	t.free = Nil

	return nil
}

func (t *Tree[T]) alloc() (int32, error) {
	if t.free != Nil {
		z := t.free
		n := t.n(z)
		t.free = n.right
		*n = node[T]{}

		return z, nil
	}

	if err := t.nodes.Append(1); err != nil {
		return Nil, err
	}

	return int32(t.nodes.Len() - 1), nil
}

func (t *Tree[T]) minimum(i int32) int32 {
	for l := t.n(i).left; l != Nil; l = t.n(i).left {
		i = l
	}

	return i
}

func (t *Tree[T]) maximum(i int32) int32 {
	for r := t.n(i).right; r != Nil; r = t.n(i).right {
		i = r
	}

	return i
}

func (t *Tree[T]) rotateLeft(x int32) {
	xn := t.n(x)
	y := xn.right
	yn := t.n(y)

	xn.right = yn.left
	if yn.left != Nil {
		t.n(yn.left).parent = x
	}
	yn.parent = xn.parent
	switch {
	case xn.parent == Nil:
		t.root = y
	case x == t.n(xn.parent).left:
		t.n(xn.parent).left = y
	default:
		t.n(xn.parent).right = y
	}
	yn.left = x
	xn.parent = y
}

func (t *Tree[T]) rotateRight(x int32) {
	xn := t.n(x)
	y := xn.left
	yn := t.n(y)

	xn.left = yn.right
	if yn.right != Nil {
		t.n(yn.right).parent = x
	}
	yn.parent = xn.parent
	switch {
	case xn.parent == Nil:
		t.root = y
	case x == t.n(xn.parent).right:
		t.n(xn.parent).right = y
	default:
		t.n(xn.parent).left = y
	}
	yn.right = x
	xn.parent = y
}

func (t *Tree[T]) insertFixup(z int32) {
	for t.n(t.n(z).parent).color == Red {
		p := t.n(z).parent
		g := t.n(p).parent
		if p == t.n(g).left {
			u := t.n(g).right
			if t.n(u).color == Red {
				t.n(p).color = Black
				t.n(u).color = Black
				t.n(g).color = Red
				z = g

				continue
			}
			if z == t.n(p).right {
				z = p
				t.rotateLeft(z)
				p = t.n(z).parent
				g = t.n(p).parent
			}
			t.n(p).color = Black
			t.n(g).color = Red
			t.rotateRight(g)
		} else {
			u := t.n(g).left
			if t.n(u).color == Red {
				t.n(p).color = Black
				t.n(u).color = Black
				t.n(g).color = Red
				z = g

				continue
			}
			if z == t.n(p).left {
				z = p
				t.rotateRight(z)
				p = t.n(z).parent
				g = t.n(p).parent
			}
			t.n(p).color = Black
			t.n(g).color = Red
			t.rotateLeft(g)
		}
	}
	t.n(t.root).color = Black
}

func (t *Tree[T]) transplant(u, v int32) {
	up := t.n(u).parent
	switch {
	case up == Nil:
		t.root = v
	case u == t.n(up).left:
		t.n(up).left = v
	default:
		t.n(up).right = v
	}
	t.n(v).parent = up
}

func (t *Tree[T]) deleteFixup(x int32) {
	for x != t.root && t.n(x).color == Black {
		p := t.n(x).parent
		if x == t.n(p).left {
			w := t.n(p).right
			if t.n(w).color == Red {
				t.n(w).color = Black
				t.n(p).color = Red
				t.rotateLeft(p)
				p = t.n(x).parent
				w = t.n(p).right
			}
			if t.n(t.n(w).left).color == Black && t.n(t.n(w).right).color == Black {
				t.n(w).color = Red
				x = p

				continue
			}
			if t.n(t.n(w).right).color == Black {
				t.n(t.n(w).left).color = Black
				t.n(w).color = Red
				t.rotateRight(w)
				p = t.n(x).parent
				w = t.n(p).right
			}
			t.n(w).color = t.n(p).color
			t.n(p).color = Black
			t.n(t.n(w).right).color = Black
			t.rotateLeft(p)
			x = t.root
		} else {
			w := t.n(p).left
			if t.n(w).color == Red {
				t.n(w).color = Black
				t.n(p).color = Red
				t.rotateRight(p)
				p = t.n(x).parent
				w = t.n(p).left
			}
			if t.n(t.n(w).right).color == Black && t.n(t.n(w).left).color == Black {
				t.n(w).color = Red
				x = p

				continue
			}
			if t.n(t.n(w).left).color == Black {
				t.n(t.n(w).right).color = Black
				t.n(w).color = Red
				t.rotateLeft(w)
				p = t.n(x).parent
				w = t.n(p).left
			}
			t.n(w).color = t.n(p).color
			t.n(p).color = Black
			t.n(t.n(w).left).color = Black
			t.rotateRight(p)
			x = t.root
		}
	}
	t.n(x).color = Black
}
