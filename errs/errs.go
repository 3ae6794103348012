// Package errs defines the sentinel errors returned by vcell.
//
// Callers should match them with errors.Is; operations wrap them with
// additional context (path segment, index, size) before returning.
package errs

import "errors"

// Lookup errors.
var (
	// ErrNotFound is returned when a key, index or path does not resolve to a value.
	ErrNotFound = errors.New("value not found")
	// ErrDuplicateKey is returned when inserting a dictionary key that is already
	// present where an overwrite is not allowed, e.g. while cloning.
	ErrDuplicateKey = errors.New("duplicate dictionary key")
	// ErrIndexOutOfRange is returned when an array index is outside [0, size).
	ErrIndexOutOfRange = errors.New("array index out of range")
)

// Type errors.
var (
	// ErrTypeMismatch is returned when a value has a type incompatible with the
	// requested operation, e.g. indexing into a dictionary.
	ErrTypeMismatch = errors.New("value type mismatch")
	// ErrOrderNotMaintained is returned by insertion-order operations on a
	// dictionary created without the maintain-order flag.
	ErrOrderNotMaintained = errors.New("dictionary does not maintain insertion order")
	// ErrUnsupportedType is returned when converting a Go value that has no
	// Value representation.
	ErrUnsupportedType = errors.New("unsupported Go type")
)

// Path errors.
var (
	// ErrInvalidPath is returned when a path string cannot be parsed.
	ErrInvalidPath = errors.New("invalid path")
)

// Storage errors.
var (
	// ErrStringTooLong is returned when a string payload exceeds the maximum length.
	ErrStringTooLong = errors.New("string too long")
	// ErrBufferOverflow is returned when a buffer cannot grow past its element limit.
	ErrBufferOverflow = errors.New("buffer size limit exceeded")
)

// Configuration errors.
var (
	// ErrNilComparator is returned when a nil key comparator is configured.
	ErrNilComparator = errors.New("nil key comparator")
)

// Integrity errors.
var (
	// ErrCorruptTree is returned by consistency checks when a dictionary tree
	// violates an ordering or balancing invariant.
	ErrCorruptTree = errors.New("corrupt dictionary tree")
)
