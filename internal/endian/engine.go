// Package endian provides the byte order used for inline cell payloads.
//
// Cell payloads are always little-endian regardless of the host, so a cell's
// raw bytes read the same on every platform:
//
//	engine := endian.Cell()
//	engine.PutUint32(raw[1:], 42)
//	v := engine.Uint32(raw[1:])
//
// All functions in this package are safe for concurrent use.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Cell returns the engine used for inline cell payloads.
func Cell() EndianEngine {
	return binary.LittleEndian
}

// PutFloat32 stores the IEEE-754 bits of v in b[:4].
func PutFloat32(e EndianEngine, b []byte, v float32) {
	e.PutUint32(b, math.Float32bits(v))
}

// Float32 reads a float32 stored by PutFloat32.
func Float32(e EndianEngine, b []byte) float32 {
	return math.Float32frombits(e.Uint32(b))
}

// PutFloat64 stores the IEEE-754 bits of v in b[:8].
func PutFloat64(e EndianEngine, b []byte, v float64) {
	e.PutUint64(b, math.Float64bits(v))
}

// Float64 reads a float64 stored by PutFloat64.
func Float64(e EndianEngine, b []byte) float64 {
	return math.Float64frombits(e.Uint64(b))
}
