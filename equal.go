package vcell

import (
	"bytes"
	"math"

	"github.com/arloliu/vcell/internal/hash"
	"github.com/arloliu/vcell/internal/rbtree"
)

// Equal reports whether a and b hold the same data.
//
// Values of different types are never equal, even when IsCompatible would
// accept the conversion. Floating point values compare by bit pattern, so NaN
// equals an identical NaN and 0 differs from -0. Arrays compare element-wise.
// Dictionaries are equal when they hold the same keys mapped to equal values,
// regardless of comparator, flags or insertion order. The new-flag of Null
// values is ignored.
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return a.Bool() == b.Bool()
	case TypeInt32, TypeUint32:
		return a.uint32At() == b.uint32At()
	case TypeInt64, TypeUint64, TypeDouble:
		return a.uint64At() == b.uint64At()
	case TypeFloat:
		return math.Float32bits(a.float32At()) == math.Float32bits(b.float32At())
	case TypeString:
		return bytes.Equal(a.Bytes(), b.Bytes())
	case TypeArray:
		return equalArrays(a.array(), b.array())
	case TypeDict:
		return equalDicts(a, b)
	default:
		return false
	}
}

func equalArrays(a, b *array) bool {
	if a.buf.Len() != b.buf.Len() {
		return false
	}
	for i := range a.buf.Len() {
		if !Equal(a.buf.At(i), b.buf.At(i)) {
			return false
		}
	}

	return true
}

func equalDicts(a, b *Value) bool {
	if a.DictSize() != b.DictSize() {
		return false
	}

	da := a.dict()
	for idx := da.tree.First(); idx != rbtree.Nil; idx = da.tree.Next(idx) {
		e := da.tree.Item(idx)
		other := b.DictFind(string(e.key.Bytes()))
		if other == nil || !Equal(&e.val, other) {
			return false
		}
	}

	return true
}

// Hash returns a structural xxHash64 of v. Values that are Equal hash to the
// same number; dictionary entries contribute independently of their order.
func Hash(v *Value) uint64 {
	h := hash.New()
	hashValue(h, v)

	return h.Sum64()
}

func hashValue(h *hash.Digest, v *Value) {
	t := v.Type()
	h.Tag(byte(t))

	switch t {
	case TypeBool:
		if v.Bool() {
			h.Tag(1)
		} else {
			h.Tag(0)
		}
	case TypeInt32, TypeUint32, TypeFloat:
		h.Uint64(uint64(v.uint32At()))
	case TypeInt64, TypeUint64, TypeDouble:
		h.Uint64(v.uint64At())
	case TypeString:
		h.Bytes(v.Bytes())
	case TypeArray:
		a := v.array()
		h.Uint64(uint64(a.buf.Len()))
		for i := range a.buf.Len() {
			hashValue(h, a.buf.At(i))
		}
	case TypeDict:
		d := v.dict()
		h.Uint64(uint64(d.tree.Len()))

		var sum uint64
		eh := hash.New()
		for idx := d.tree.First(); idx != rbtree.Nil; idx = d.tree.Next(idx) {
			e := d.tree.Item(idx)
			eh.Reset()
			eh.Bytes(e.key.Bytes())
			hashValue(eh, &e.val)
			sum += eh.Sum64()
		}
		h.Uint64(sum)
	}
}
