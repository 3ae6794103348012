package vcell

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"

	"github.com/arloliu/vcell/errs"
)

const (
	// MaxInlineString is the longest string stored inside the cell itself:
	// a one-byte length, the content and the terminating NUL fill the 15
	// payload bytes.
	MaxInlineString = cellSize - payloadOffset - 2

	// MaxStringLength is the longest string a Value accepts.
	MaxStringLength = math.MaxInt32 - 1
)

// InitString sets v to a copy of s. Strings up to MaxInlineString bytes are
// stored inline; longer strings are copied to a heap buffer.
//
// It fails with errs.ErrStringTooLong when s exceeds MaxStringLength, leaving
// v as Null.
func (v *Value) InitString(s string) error {
	dst, err := v.allocString(len(s))
	if err != nil {
		return err
	}
	copy(dst, s)

	return nil
}

// InitBytes is InitString for a byte slice. The content may contain NUL bytes;
// the length is kept explicitly.
func (v *Value) InitBytes(b []byte) error {
	dst, err := v.allocString(len(b))
	if err != nil {
		return err
	}
	copy(dst, b)

	return nil
}

// allocString turns v into a string of n bytes and returns the writable
// content. The byte following the content is always NUL.
func (v *Value) allocString(n int) ([]byte, error) {
	if err := checkStringLength(n); err != nil {
		v.reset(byte(TypeNull))
		return nil, err
	}

	if n <= MaxInlineString {
		v.reset(byte(TypeString))
		off := payloadOffset + binary.PutUvarint(v.raw[payloadOffset:], uint64(n))

		return v.raw[off : off+n], nil
	}

	buf := make([]byte, n+1)
	v.reset(byte(TypeString) | tagHeap)
	binary.PutUvarint(v.raw[payloadOffset:], uint64(n))
	v.ref = unsafe.Pointer(&buf[0])

	return buf[:n], nil
}

func checkStringLength(n int) error {
	if n < 0 || n > MaxStringLength {
		return fmt.Errorf("%w: %d bytes, max %d", errs.ErrStringTooLong, n, MaxStringLength)
	}

	return nil
}

// StringLength returns the number of bytes in a string value, embedded NULs
// included. It returns 0 for other types.
func (v *Value) StringLength() int {
	if v.Type() != TypeString {
		return 0
	}
	n, _ := binary.Uvarint(v.raw[payloadOffset:])

	return int(n)
}

// Bytes returns the content of a string value without copying, or nil for
// other types.
//
// The slice has capacity StringLength()+1 and the extra byte is a NUL
// terminator. It aliases the value's storage: treat it as read-only and do not
// keep it past the next Init or Fini of v, or past a mutation of the container
// v lives in.
func (v *Value) Bytes() []byte {
	if v.Type() != TypeString {
		return nil
	}

	n64, k := binary.Uvarint(v.raw[payloadOffset:])
	n := int(n64)
	if v.raw[0]&tagHeap != 0 {
		return unsafe.Slice((*byte)(v.ref), n+1)[:n]
	}

	off := payloadOffset + k

	return v.raw[off : off+n : off+n+1]
}
