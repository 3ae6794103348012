package vcell

import (
	"unsafe"

	"github.com/arloliu/vcell/internal/endian"
)

const (
	// cellSize is the size of the tagged part of a Value.
	cellSize = 16
	// payloadOffset is where inline payloads start; byte 0 is the tag.
	payloadOffset = 1

	tagTypeMask = 0x0f
	tagNew      = 0x10 // only for TypeNull
	tagHeap     = 0x80 // ref owns a heap payload
)

var cellEngine = endian.Cell()

// Value is a fixed-size slot holding a dynamically-typed value.
//
// Byte 0 of the cell carries the type tag and flags. Scalars and short strings
// are encoded in the remaining 15 bytes; long strings, arrays and dictionaries
// store an exclusively-owned heap handle in ref.
//
// A Value occupies 24 bytes on 64-bit platforms, not 16: the heap handle lives
// in its own pointer-typed field because the garbage collector only traces
// references stored as real pointers, never ones packed into the byte cell.
//
// The zero Value is Null and ready to use. A Value that owns heap data must not
// be copied: both copies would share, and later finalize, the same payload. Use
// Clone to duplicate a tree.
type Value struct {
	raw [cellSize]byte
	ref unsafe.Pointer
}

// Type returns the type of v. A nil v reports TypeNull.
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}

	return Type(v.raw[0] & tagTypeMask)
}

// IsNew reports whether v is a placeholder created by a container (array
// append/insert, dictionary add, path building) that has not been initialized
// by any Init method yet.
func (v *Value) IsNew() bool {
	return v != nil && v.Type() == TypeNull && v.raw[0]&tagNew != 0
}

// reset rewrites the whole cell with the given tag byte and an empty payload.
func (v *Value) reset(tag byte) {
	v.raw = [cellSize]byte{tag}
	v.ref = nil
}

// initNew turns v into a Null placeholder carrying the new-flag.
func (v *Value) initNew() {
	v.reset(byte(TypeNull) | tagNew)
}

// InitNull sets v to an explicit Null.
//
// Like every Init method it overwrites the slot without releasing a previous
// payload; call Fini first when v may own an array, dictionary or string.
func (v *Value) InitNull() {
	v.reset(byte(TypeNull))
}

// InitBool sets v to a boolean.
func (v *Value) InitBool(b bool) {
	v.reset(byte(TypeBool))
	if b {
		v.raw[payloadOffset] = 1
	}
}

// InitInt32 sets v to a signed 32-bit integer.
func (v *Value) InitInt32(i int32) {
	v.reset(byte(TypeInt32))
	cellEngine.PutUint32(v.raw[payloadOffset:], uint32(i))
}

// InitUint32 sets v to an unsigned 32-bit integer.
func (v *Value) InitUint32(u uint32) {
	v.reset(byte(TypeUint32))
	cellEngine.PutUint32(v.raw[payloadOffset:], u)
}

// InitInt64 sets v to a signed 64-bit integer.
func (v *Value) InitInt64(i int64) {
	v.reset(byte(TypeInt64))
	cellEngine.PutUint64(v.raw[payloadOffset:], uint64(i))
}

// InitUint64 sets v to an unsigned 64-bit integer.
func (v *Value) InitUint64(u uint64) {
	v.reset(byte(TypeUint64))
	cellEngine.PutUint64(v.raw[payloadOffset:], u)
}

// InitFloat sets v to a single precision float.
func (v *Value) InitFloat(f float32) {
	v.reset(byte(TypeFloat))
	endian.PutFloat32(cellEngine, v.raw[payloadOffset:], f)
}

// InitDouble sets v to a double precision float.
func (v *Value) InitDouble(d float64) {
	v.reset(byte(TypeDouble))
	endian.PutFloat64(cellEngine, v.raw[payloadOffset:], d)
}

// Fini releases everything v owns, recursively for arrays and dictionaries,
// and leaves v as a plain Null. Calling Fini on a Null or nil value is a no-op.
func (v *Value) Fini() {
	if v == nil {
		return
	}

	switch v.Type() {
	case TypeArray:
		v.array().clean()
	case TypeDict:
		v.dict().clean()
	}

	v.reset(byte(TypeNull))
}

// String returns the content of a string value. For other types it returns a
// string of the form "<T Value>" where T is the type name, the same convention
// reflect.Value follows.
func (v *Value) String() string {
	if v.Type() == TypeString {
		return string(v.Bytes())
	}

	return "<" + v.Type().String() + " Value>"
}
