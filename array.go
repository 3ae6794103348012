package vcell

import (
	"iter"
	"unsafe"

	"github.com/arloliu/vcell/internal/pool"
)

// array is the heap payload of an array value.
type array struct {
	buf pool.Buffer[Value]
}

func (v *Value) array() *array {
	if v.Type() != TypeArray {
		return nil
	}

	return (*array)(v.ref)
}

// InitArray sets v to an empty array.
func (v *Value) InitArray() {
	v.reset(byte(TypeArray) | tagHeap)
	v.ref = unsafe.Pointer(&array{})
}

// ArraySize returns the number of elements, or 0 when v is not an array.
func (v *Value) ArraySize() int {
	a := v.array()
	if a == nil {
		return 0
	}

	return a.buf.Len()
}

// ArrayGet returns element i, or nil when v is not an array or i is not in
// [0, ArraySize()).
func (v *Value) ArrayGet(i int) *Value {
	a := v.array()
	if a == nil || i < 0 || i >= a.buf.Len() {
		return nil
	}

	return a.buf.At(i)
}

// ArrayGetAll returns all elements as one contiguous slice, valid until the
// next mutation of the array. The elements must not be copied out of it.
func (v *Value) ArrayGetAll() []Value {
	a := v.array()
	if a == nil {
		return nil
	}

	return a.buf.Data()
}

// ArrayAppend adds a new placeholder element at the end of the array and
// returns it. The element is Null and IsNew reports true until it is
// initialized.
//
// It returns nil when v is not an array or the storage cannot grow.
func (v *Value) ArrayAppend() *Value {
	a := v.array()
	if a == nil {
		return nil
	}
	elem, err := a.insert(a.buf.Len())
	if err != nil {
		return nil
	}

	return elem
}

// ArrayInsert adds a new placeholder element at index i, shifting the
// elements from i onwards one position up. i may equal ArraySize().
//
// It returns nil when v is not an array, i is out of range or the storage
// cannot grow.
func (v *Value) ArrayInsert(i int) *Value {
	a := v.array()
	if a == nil {
		return nil
	}
	elem, err := a.insert(i)
	if err != nil {
		return nil
	}

	return elem
}

// ArrayRemove finalizes and removes element i. It returns the number of
// elements removed, 0 when i is out of range.
func (v *Value) ArrayRemove(i int) int {
	return v.ArrayRemoveRange(i, 1)
}

// ArrayRemoveRange finalizes and removes n elements starting at index i.
// The range is clamped to the array bounds and the number of elements actually
// removed is returned.
func (v *Value) ArrayRemoveRange(i, n int) int {
	a := v.array()
	if a == nil {
		return 0
	}

	return a.remove(i, n)
}

// ArrayClean finalizes and removes every element. v stays an empty array.
func (v *Value) ArrayClean() {
	if a := v.array(); a != nil {
		a.clean()
	}
}

// ArrayAll returns an iterator over the index and element of each array
// entry. The array must not be modified while iterating.
func (v *Value) ArrayAll() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		a := v.array()
		if a == nil {
			return
		}
		for i := range a.buf.Len() {
			if !yield(i, a.buf.At(i)) {
				return
			}
		}
	}
}

func (a *array) insert(i int) (*Value, error) {
	if err := a.buf.InsertAt(i, 1); err != nil {
		return nil, err
	}
	elem := a.buf.At(i)
	elem.initNew()

	return elem, nil
}

func (a *array) remove(i, n int) int {
	size := a.buf.Len()
	if i < 0 {
		n += i
		i = 0
	}
	if n <= 0 || i >= size {
		return 0
	}
	n = min(n, size-i)

	for j := i; j < i+n; j++ {
		a.buf.At(j).Fini()
	}

	return a.buf.RemoveAt(i, n)
}

func (a *array) clean() {
	for i := range a.buf.Len() {
		a.buf.At(i).Fini()
	}
	a.buf.Reset()
}
