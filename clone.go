package vcell

import (
	"fmt"

	"github.com/arloliu/vcell/errs"
	"github.com/arloliu/vcell/internal/rbtree"
)

// Clone makes dst a deep copy of v.
//
// dst is finalized first, so it must not be v or lie inside v. Dictionaries
// keep their comparator, flags and insertion order. On failure dst is left
// Null.
func (v *Value) Clone(dst *Value) error {
	if dst == nil {
		return fmt.Errorf("%w: nil clone destination", errs.ErrNotFound)
	}
	dst.Fini()

	if err := v.cloneInto(dst); err != nil {
		dst.Fini()
		return err
	}

	return nil
}

func (v *Value) cloneInto(dst *Value) error {
	switch v.Type() {
	case TypeNull:
		dst.InitNull()
	case TypeString:
		return dst.InitBytes(v.Bytes())
	case TypeArray:
		return v.array().cloneInto(dst)
	case TypeDict:
		return v.dict().cloneInto(dst)
	default:
		// scalars live entirely in the cell
		dst.raw = v.raw
		dst.ref = nil
	}

	return nil
}

func (a *array) cloneInto(dst *Value) error {
	dst.InitArray()

	return a.cloneElements(dst.array())
}

// cloneElements appends deep copies of a's elements to out.
func (a *array) cloneElements(out *array) error {
	if err := out.buf.Reserve(a.buf.Len()); err != nil {
		return err
	}

	for i := range a.buf.Len() {
		elem, err := out.insert(out.buf.Len())
		if err != nil {
			return err
		}
		if err := a.buf.At(i).cloneInto(elem); err != nil {
			return err
		}
	}

	return nil
}

func (d *dict) cloneInto(dst *Value) error {
	if err := dst.InitDict(WithComparator(d.cmp), WithFlags(d.flags)); err != nil {
		return err
	}
	out := dst.dict()

	next := d.tree.Next
	first := d.tree.First()
	if d.flags&DictMaintainOrder != 0 {
		first = d.head
		next = func(idx int32) int32 { return d.tree.Item(idx).next }
	}

	for idx := first; idx != rbtree.Nil; idx = next(idx) {
		e := d.tree.Item(idx)
		val, err := out.add(string(e.key.Bytes()))
		if err != nil {
			return err
		}
		if err := e.val.cloneInto(val); err != nil {
			return err
		}
	}

	return nil
}
