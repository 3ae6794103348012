package vcell

import (
	"bytes"
	"fmt"

	"github.com/arloliu/vcell/errs"
	"github.com/arloliu/vcell/internal/options"
)

// Comparator orders dictionary keys. It returns a negative number when a sorts
// before b, a positive number when after and 0 only when a and b are the same
// key.
//
// A comparator must impose a strict total order on the exact byte sequences,
// embedded NULs and length included. It must not retain or modify its
// arguments.
type Comparator func(a, b []byte) int

// CompareBytes is the default comparator: lexicographic byte order where a
// proper prefix sorts before the longer key.
func CompareBytes(a, b []byte) int {
	return bytes.Compare(a, b)
}

// CompareLengthFirst orders keys by length first and lexicographically among
// keys of the same length.
func CompareLengthFirst(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}

		return 1
	}

	return bytes.Compare(a, b)
}

// DictFlag selects optional dictionary behavior.
type DictFlag uint8

const (
	// DictMaintainOrder keeps a chain of entries in insertion order, enabling
	// DictKeysOrdered, DictWalkOrdered and DictAllOrdered.
	DictMaintainOrder DictFlag = 1 << iota
)

// dictConfig is captured by InitDict and never changes afterwards.
type dictConfig struct {
	cmp   Comparator
	flags DictFlag
}

func newDictConfig() *dictConfig {
	return &dictConfig{cmp: CompareBytes}
}

// DictOption configures a dictionary created by InitDict.
type DictOption = options.Option[*dictConfig]

// WithComparator sets the key comparator. A nil comparator is rejected with
// errs.ErrNilComparator.
//
// Default is CompareBytes.
func WithComparator(cmp Comparator) DictOption {
	return options.New(func(cfg *dictConfig) error {
		if cmp == nil {
			return fmt.Errorf("%w: WithComparator", errs.ErrNilComparator)
		}
		cfg.cmp = cmp

		return nil
	})
}

// WithMaintainOrder makes the dictionary remember insertion order.
func WithMaintainOrder() DictOption {
	return options.NoError(func(cfg *dictConfig) {
		cfg.flags |= DictMaintainOrder
	})
}

// WithFlags adds flags to the dictionary configuration.
func WithFlags(flags DictFlag) DictOption {
	return options.NoError(func(cfg *dictConfig) {
		cfg.flags |= flags
	})
}
