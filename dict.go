package vcell

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/arloliu/vcell/errs"
	"github.com/arloliu/vcell/internal/options"
	"github.com/arloliu/vcell/internal/rbtree"
)

// entry is one key/value pair stored in the dictionary tree. prev and next
// thread the insertion-order chain when the dictionary maintains order.
type entry struct {
	key  Value
	val  Value
	prev int32
	next int32
}

// dict is the heap payload of a dictionary value.
type dict struct {
	tree  rbtree.Tree[entry]
	cmp   Comparator
	flags DictFlag
	head  int32
	tail  int32
}

func (v *Value) dict() *dict {
	if v.Type() != TypeDict {
		return nil
	}

	return (*dict)(v.ref)
}

// keyBytes views a lookup key as bytes without copying. Comparators never
// retain or modify their arguments.
func keyBytes(key string) []byte {
	return unsafe.Slice(unsafe.StringData(key), len(key))
}

// InitDict sets v to an empty dictionary.
//
// The comparator and flags chosen through opts are fixed for the lifetime of
// the dictionary. When an option fails, v is left as Null and the error is
// returned.
func (v *Value) InitDict(opts ...DictOption) error {
	cfg := newDictConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		v.reset(byte(TypeNull))
		return err
	}

	v.reset(byte(TypeDict) | tagHeap)
	v.ref = unsafe.Pointer(&dict{
		cmp:   cfg.cmp,
		flags: cfg.flags,
	})

	return nil
}

// DictFlags returns the flags the dictionary was created with.
func (v *Value) DictFlags() DictFlag {
	d := v.dict()
	if d == nil {
		return 0
	}

	return d.flags
}

// DictSize returns the number of entries, or 0 when v is not a dictionary.
func (v *Value) DictSize() int {
	d := v.dict()
	if d == nil {
		return 0
	}

	return d.tree.Len()
}

// DictFind returns the value stored under key, or nil when the key is absent
// or v is not a dictionary.
func (v *Value) DictFind(key string) *Value {
	d := v.dict()
	if d == nil {
		return nil
	}

	idx := d.find(key)
	if idx == rbtree.Nil {
		return nil
	}

	return &d.tree.Item(idx).val
}

// DictAdd inserts key with a new placeholder value and returns that value.
//
// It returns nil when the key already exists, v is not a dictionary or the
// entry cannot be stored.
func (v *Value) DictAdd(key string) *Value {
	d := v.dict()
	if d == nil {
		return nil
	}

	val, err := d.add(key)
	if err != nil {
		return nil
	}

	return val
}

// DictGetOrAdd returns the value stored under key, inserting a new placeholder
// value when the key is absent. IsNew tells the two cases apart until the
// caller initializes the value.
//
// It returns nil when v is not a dictionary or the entry cannot be stored.
func (v *Value) DictGetOrAdd(key string) *Value {
	d := v.dict()
	if d == nil {
		return nil
	}

	val, _, err := d.getOrAdd(key)
	if err != nil {
		return nil
	}

	return val
}

// DictRemove finalizes and removes the entry for key. It reports whether an
// entry was removed.
func (v *Value) DictRemove(key string) bool {
	d := v.dict()
	if d == nil {
		return false
	}

	idx := d.find(key)
	if idx == rbtree.Nil {
		return false
	}
	d.remove(idx)

	return true
}

// DictKeysSorted stores pointers to up to len(buf) keys in comparator order and
// returns how many were stored.
func (v *Value) DictKeysSorted(buf []*Value) int {
	d := v.dict()
	if d == nil {
		return 0
	}

	n := 0
	for idx := d.tree.First(); idx != rbtree.Nil && n < len(buf); idx = d.tree.Next(idx) {
		buf[n] = &d.tree.Item(idx).key
		n++
	}

	return n
}

// DictKeysOrdered stores pointers to up to len(buf) keys in insertion order
// and returns how many were stored. It returns 0 for dictionaries created
// without DictMaintainOrder.
func (v *Value) DictKeysOrdered(buf []*Value) int {
	d := v.dict()
	if d == nil || d.flags&DictMaintainOrder == 0 {
		return 0
	}

	n := 0
	for idx := d.head; idx != rbtree.Nil && n < len(buf); idx = d.tree.Item(idx).next {
		buf[n] = &d.tree.Item(idx).key
		n++
	}

	return n
}

// DictWalkSorted calls fn for every entry in comparator order. It stops at the
// first error returned by fn and returns it. fn must not add or remove
// entries of this dictionary.
func (v *Value) DictWalkSorted(fn func(key, val *Value) error) error {
	d := v.dict()
	if d == nil {
		return nil
	}

	for idx := d.tree.First(); idx != rbtree.Nil; idx = d.tree.Next(idx) {
		e := d.tree.Item(idx)
		if err := fn(&e.key, &e.val); err != nil {
			return err
		}
	}

	return nil
}

// DictWalkOrdered is DictWalkSorted in insertion order. It fails with
// errs.ErrOrderNotMaintained for dictionaries created without
// DictMaintainOrder.
func (v *Value) DictWalkOrdered(fn func(key, val *Value) error) error {
	d := v.dict()
	if d == nil {
		return nil
	}
	if d.flags&DictMaintainOrder == 0 {
		return fmt.Errorf("%w: walk in insertion order", errs.ErrOrderNotMaintained)
	}

	for idx := d.head; idx != rbtree.Nil; {
		e := d.tree.Item(idx)
		if err := fn(&e.key, &e.val); err != nil {
			return err
		}
		idx = e.next
	}

	return nil
}

// DictAll returns an iterator over key/value pairs in comparator order.
func (v *Value) DictAll() iter.Seq2[*Value, *Value] {
	return func(yield func(*Value, *Value) bool) {
		d := v.dict()
		if d == nil {
			return
		}
		for idx := d.tree.First(); idx != rbtree.Nil; idx = d.tree.Next(idx) {
			e := d.tree.Item(idx)
			if !yield(&e.key, &e.val) {
				return
			}
		}
	}
}

// DictAllReverse returns an iterator over key/value pairs in descending
// comparator order.
func (v *Value) DictAllReverse() iter.Seq2[*Value, *Value] {
	return func(yield func(*Value, *Value) bool) {
		d := v.dict()
		if d == nil {
			return
		}
		for idx := d.tree.Last(); idx != rbtree.Nil; idx = d.tree.Prev(idx) {
			e := d.tree.Item(idx)
			if !yield(&e.key, &e.val) {
				return
			}
		}
	}
}

// DictAllOrdered returns an iterator over key/value pairs in insertion order.
// It yields nothing for dictionaries created without DictMaintainOrder.
func (v *Value) DictAllOrdered() iter.Seq2[*Value, *Value] {
	return func(yield func(*Value, *Value) bool) {
		d := v.dict()
		if d == nil || d.flags&DictMaintainOrder == 0 {
			return
		}
		for idx := d.head; idx != rbtree.Nil; {
			e := d.tree.Item(idx)
			if !yield(&e.key, &e.val) {
				return
			}
			idx = e.next
		}
	}
}

// DictClean finalizes and removes every entry. v stays an empty dictionary
// with its comparator and flags.
func (v *Value) DictClean() {
	if d := v.dict(); d != nil {
		d.clean()
	}
}

// DictVerify checks the consistency of the dictionary index: red-black tree
// invariants, strict key order under the comparator and, when insertion order
// is maintained, the order chain. It returns nil for non-dictionaries.
func (v *Value) DictVerify() error {
	d := v.dict()
	if d == nil {
		return nil
	}

	return d.verify()
}

func (d *dict) find(key string) int32 {
	k := keyBytes(key)

	return d.tree.Find(func(e *entry) int {
		return d.cmp(k, e.key.Bytes())
	})
}

// getOrAdd returns the value for key and whether it was just added.
func (d *dict) getOrAdd(key string) (*Value, bool, error) {
	if err := checkStringLength(len(key)); err != nil {
		return nil, false, err
	}

	k := keyBytes(key)
	idx, inserted, err := d.tree.Insert(func(e *entry) int {
		return d.cmp(k, e.key.Bytes())
	})
	if err != nil {
		return nil, false, err
	}

	e := d.tree.Item(idx)
	if !inserted {
		return &e.val, false, nil
	}

	if err := e.key.InitString(key); err != nil {
		d.tree.Delete(idx)
		return nil, false, err
	}
	e.val.initNew()
	e.prev = rbtree.Nil
	e.next = rbtree.Nil

	if d.flags&DictMaintainOrder != 0 {
		e.prev = d.tail
		if d.tail != rbtree.Nil {
			d.tree.Item(d.tail).next = idx
		} else {
			d.head = idx
		}
		d.tail = idx
	}

	return &e.val, true, nil
}

// add inserts key and fails with errs.ErrDuplicateKey when it is present.
func (d *dict) add(key string) (*Value, error) {
	val, added, err := d.getOrAdd(key)
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
	}

	return val, nil
}

func (d *dict) remove(idx int32) {
	e := d.tree.Item(idx)

	if d.flags&DictMaintainOrder != 0 {
		if e.prev != rbtree.Nil {
			d.tree.Item(e.prev).next = e.next
		} else {
			d.head = e.next
		}
		if e.next != rbtree.Nil {
			d.tree.Item(e.next).prev = e.prev
		} else {
			d.tail = e.prev
		}
	}

	e.key.Fini()
	e.val.Fini()
	d.tree.Delete(idx)
}

func (d *dict) clean() {
	for idx := d.tree.First(); idx != rbtree.Nil; idx = d.tree.Next(idx) {
		e := d.tree.Item(idx)
		e.key.Fini()
		e.val.Fini()
	}
	d.tree.Reset()
	d.head = rbtree.Nil
	d.tail = rbtree.Nil
}

func (d *dict) verify() error {
	err := d.tree.Verify(func(a, b *entry) int {
		return d.cmp(a.key.Bytes(), b.key.Bytes())
	})
	if err != nil {
		return err
	}

	if d.flags&DictMaintainOrder == 0 {
		return nil
	}

	count := 0
	prev := rbtree.Nil
	for idx := d.head; idx != rbtree.Nil; idx = d.tree.Item(idx).next {
		if d.tree.Item(idx).prev != prev {
			return fmt.Errorf("%w: order chain broken at node %d", errs.ErrCorruptTree, idx)
		}
		prev = idx
		count++
		if count > d.tree.Len() {
			return fmt.Errorf("%w: order chain has a cycle", errs.ErrCorruptTree)
		}
	}
	if prev != d.tail {
		return fmt.Errorf("%w: order chain tail mismatch", errs.ErrCorruptTree)
	}
	if count != d.tree.Len() {
		return fmt.Errorf("%w: order chain has %d entries, tree %d", errs.ErrCorruptTree, count, d.tree.Len())
	}

	return nil
}
