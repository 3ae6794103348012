package pool

import (
	"fmt"
	"math"

	"github.com/arloliu/vcell/errs"
)

const (
	// DefaultBufferLimit is the element limit of a Buffer created without an explicit limit.
	DefaultBufferLimit = math.MaxInt32

	// bufferGrowthThreshold is the capacity where growth switches from 2x to 1.25x.
	bufferGrowthThreshold = 256
	// bufferMinCapacity is the capacity of the first allocation.
	bufferMinCapacity = 4
)

// Buffer is a growable contiguous buffer of T.
//
// It is the storage behind array values and the dictionary node arena. Any
// mutating call may reallocate the underlying storage, so pointers obtained
// from At or Data are only valid until the next Reserve, InsertAt or RemoveAt.
//
// The zero Buffer is empty and ready to use with DefaultBufferLimit.
type Buffer[T any] struct {
	data  []T
	limit int
}

// SetLimit changes the element limit. A non-positive limit selects DefaultBufferLimit.
func (b *Buffer[T]) SetLimit(limit int) {
	if limit <= 0 {
		limit = DefaultBufferLimit
	}
	b.limit = limit
}

// Limit returns the maximum number of elements the buffer may hold.
func (b *Buffer[T]) Limit() int {
	if b.limit <= 0 {
		return DefaultBufferLimit
	}

	return b.limit
}

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int {
	return len(b.data)
}

// Data returns the elements as a slice sharing the buffer storage.
func (b *Buffer[T]) Data() []T {
	return b.data
}

// At returns a pointer to element i. It panics if i is out of range.
func (b *Buffer[T]) At(i int) *T {
	return &b.data[i]
}

// Reserve makes sure extra more elements fit without reallocating.
//
// The growth strategy is as follows:
//   - For small buffers (< bufferGrowthThreshold elements), double the capacity.
//   - For larger buffers, grow by 25% to balance memory and reallocation cost.
//
// Reserve fails with errs.ErrBufferOverflow when the resulting length would
// exceed the buffer limit; the buffer is left untouched in that case.
func (b *Buffer[T]) Reserve(extra int) error {
	if extra <= 0 {
		return nil
	}

	limit := b.Limit()
	required := len(b.data) + extra
	if extra > limit || required > limit {
		return fmt.Errorf("%w: need %d elements, limit %d", errs.ErrBufferOverflow, required, limit)
	}
	if required <= cap(b.data) {
		return nil
	}

	oldCap := cap(b.data)
	newCap := bufferMinCapacity
	if oldCap >= bufferMinCapacity {
		if oldCap < bufferGrowthThreshold {
			newCap = oldCap * 2
		} else {
			newCap = oldCap + oldCap/4
		}
	}
	if newCap < required {
		newCap = required
	}
	if newCap > limit {
		newCap = limit
	}

	b.realloc(newCap)

	return nil
}

// InsertAt opens a gap of n zero elements at offset off, shifting the tail
// towards the end. off must be within [0, Len()].
func (b *Buffer[T]) InsertAt(off, n int) error {
	if off < 0 || off > len(b.data) {
		return fmt.Errorf("%w: insert offset %d, length %d", errs.ErrIndexOutOfRange, off, len(b.data))
	}
	if n <= 0 {
		return nil
	}
	if err := b.Reserve(n); err != nil {
		return err
	}

	oldLen := len(b.data)
	b.data = b.data[:oldLen+n]
	copy(b.data[off+n:], b.data[off:oldLen])
	clear(b.data[off : off+n])

	return nil
}

// Append opens n zero elements at the end of the buffer.
func (b *Buffer[T]) Append(n int) error {
	return b.InsertAt(len(b.data), n)
}

// RemoveAt drops n elements starting at offset off, shifting the tail towards
// the front. The range is clamped to the buffer length; RemoveAt returns the
// number of elements actually removed.
//
// Storage is halved once the buffer is less than a quarter full.
func (b *Buffer[T]) RemoveAt(off, n int) int {
	oldLen := len(b.data)
	if off < 0 {
		n += off
		off = 0
	}
	if n <= 0 || off >= oldLen {
		return 0
	}
	if n > oldLen-off {
		n = oldLen - off
	}

	copy(b.data[off:], b.data[off+n:])
	clear(b.data[oldLen-n : oldLen])
	b.data = b.data[:oldLen-n]

	if 4*len(b.data) < cap(b.data) {
		b.realloc(cap(b.data) / 2)
	}

	return n
}

// Reset drops all elements and releases the storage.
func (b *Buffer[T]) Reset() {
	clear(b.data)
	b.data = nil
}

func (b *Buffer[T]) realloc(newCap int) {
	if newCap == 0 {
		b.data = nil
		return
	}

	newData := make([]T, len(b.data), newCap)
	copy(newData, b.data)
	b.data = newData
}
