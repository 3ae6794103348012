package vcell

import (
	"math"

	"github.com/arloliu/vcell/internal/endian"
)

func (v *Value) int32At() int32 { return int32(cellEngine.Uint32(v.raw[payloadOffset:])) }
func (v *Value) uint32At() uint32 { return cellEngine.Uint32(v.raw[payloadOffset:]) }
func (v *Value) int64At() int64 { return int64(cellEngine.Uint64(v.raw[payloadOffset:])) }
func (v *Value) uint64At() uint64 { return cellEngine.Uint64(v.raw[payloadOffset:]) }
func (v *Value) float32At() float32 { return endian.Float32(cellEngine, v.raw[payloadOffset:]) }
func (v *Value) float64At() float64 { return endian.Float64(cellEngine, v.raw[payloadOffset:]) }

// Bool returns the value of a boolean. It returns false for every other type.
func (v *Value) Bool() bool {
	return v.Type() == TypeBool && v.raw[payloadOffset] != 0
}

// Int32 converts a numeric value to int32.
//
// Integers are narrowed with two's complement wrap-around. Floating point
// values are rounded half away from zero first, so 0.5 gives 1 and -0.5 gives
// -1. The result is not checked against IsCompatible. Non-numeric values
// return 0.
func (v *Value) Int32() int32 {
	switch v.Type() {
	case TypeInt32:
		return v.int32At()
	case TypeUint32:
		return int32(v.uint32At())
	case TypeInt64:
		return int32(v.int64At())
	case TypeUint64:
		return int32(v.uint64At())
	case TypeFloat:
		return int32(roundToInt64(float64(v.float32At())))
	case TypeDouble:
		return int32(roundToInt64(v.float64At()))
	default:
		return 0
	}
}

// Uint32 converts a numeric value to uint32 following the rules of Int32.
func (v *Value) Uint32() uint32 {
	switch v.Type() {
	case TypeInt32:
		return uint32(v.int32At())
	case TypeUint32:
		return v.uint32At()
	case TypeInt64:
		return uint32(v.int64At())
	case TypeUint64:
		return uint32(v.uint64At())
	case TypeFloat:
		return uint32(roundToInt64(float64(v.float32At())))
	case TypeDouble:
		return uint32(roundToInt64(v.float64At()))
	default:
		return 0
	}
}

// Int64 converts a numeric value to int64 following the rules of Int32.
func (v *Value) Int64() int64 {
	switch v.Type() {
	case TypeInt32:
		return int64(v.int32At())
	case TypeUint32:
		return int64(v.uint32At())
	case TypeInt64:
		return v.int64At()
	case TypeUint64:
		return int64(v.uint64At())
	case TypeFloat:
		return roundToInt64(float64(v.float32At()))
	case TypeDouble:
		return roundToInt64(v.float64At())
	default:
		return 0
	}
}

// Uint64 converts a numeric value to uint64 following the rules of Int32.
func (v *Value) Uint64() uint64 {
	switch v.Type() {
	case TypeInt32:
		return uint64(v.int32At())
	case TypeUint32:
		return uint64(v.uint32At())
	case TypeInt64:
		return uint64(v.int64At())
	case TypeUint64:
		return v.uint64At()
	case TypeFloat:
		return roundToUint64(float64(v.float32At()))
	case TypeDouble:
		return roundToUint64(v.float64At())
	default:
		return 0
	}
}

// Float converts a numeric value to float32. Non-numeric values return 0.
func (v *Value) Float() float32 {
	switch v.Type() {
	case TypeInt32:
		return float32(v.int32At())
	case TypeUint32:
		return float32(v.uint32At())
	case TypeInt64:
		return float32(v.int64At())
	case TypeUint64:
		return float32(v.uint64At())
	case TypeFloat:
		return v.float32At()
	case TypeDouble:
		return float32(v.float64At())
	default:
		return 0
	}
}

// Double converts a numeric value to float64. Non-numeric values return 0.
func (v *Value) Double() float64 {
	switch v.Type() {
	case TypeInt32:
		return float64(v.int32At())
	case TypeUint32:
		return float64(v.uint32At())
	case TypeInt64:
		return float64(v.int64At())
	case TypeUint64:
		return float64(v.uint64At())
	case TypeFloat:
		return float64(v.float32At())
	case TypeDouble:
		return v.float64At()
	default:
		return 0
	}
}

// IsCompatible reports whether converting v to type t and back gives the
// original value.
//
// Every type is compatible with itself. Integers are compatible with another
// integer type when the value fits its range, and with Float or Double when
// the value is exactly representable there. Float is always compatible with
// Double; Double is compatible with Float when no precision is lost. Both are
// compatible with an integer type when the value has no fractional part and
// lies within range. Null, Bool, String, Array and Dict are only compatible
// with themselves.
func (v *Value) IsCompatible(t Type) bool {
	vt := v.Type()
	if vt == t {
		return true
	}

	switch vt {
	case TypeInt32:
		return signedFits(int64(v.int32At()), t)
	case TypeUint32:
		return unsignedFits(uint64(v.uint32At()), t)
	case TypeInt64:
		return signedFits(v.int64At(), t)
	case TypeUint64:
		return unsignedFits(v.uint64At(), t)
	case TypeFloat:
		return t == TypeDouble || floatFits(float64(v.float32At()), t)
	case TypeDouble:
		if t == TypeFloat {
			return doubleFitsFloat(v.float64At())
		}

		return floatFits(v.float64At(), t)
	default:
		return false
	}
}

func signedFits(x int64, t Type) bool {
	switch t {
	case TypeInt32:
		return x >= math.MinInt32 && x <= math.MaxInt32
	case TypeUint32:
		return x >= 0 && x <= math.MaxUint32
	case TypeInt64:
		return true
	case TypeUint64:
		return x >= 0
	case TypeFloat:
		return signedExact(float64(float32(x)), x)
	case TypeDouble:
		return signedExact(float64(x), x)
	default:
		return false
	}
}

// signedExact reports whether f, the float image of x, converts back to x.
func signedExact(f float64, x int64) bool {
	return f >= math.MinInt64 && f < math.MaxInt64 && int64(f) == x
}

func unsignedFits(x uint64, t Type) bool {
	switch t {
	case TypeInt32:
		return x <= math.MaxInt32
	case TypeUint32:
		return x <= math.MaxUint32
	case TypeInt64:
		return x <= math.MaxInt64
	case TypeUint64:
		return true
	case TypeFloat:
		return unsignedExact(float64(float32(x)), x)
	case TypeDouble:
		return unsignedExact(float64(x), x)
	default:
		return false
	}
}

func unsignedExact(f float64, x uint64) bool {
	return f < math.MaxUint64 && uint64(f) == x
}

// doubleFitsFloat reports whether d survives a round trip through float32.
// NaN and the infinities do.
func doubleFitsFloat(d float64) bool {
	return math.IsNaN(d) || float64(float32(d)) == d
}

// floatFits reports whether f is integral and within the range of integer type t.
func floatFits(f float64, t Type) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return false
	}

	switch t {
	case TypeInt32:
		return f >= math.MinInt32 && f <= math.MaxInt32
	case TypeUint32:
		return f >= 0 && f <= math.MaxUint32
	case TypeInt64:
		// 2^63 itself is out of range
		return f >= math.MinInt64 && f < math.MaxInt64
	case TypeUint64:
		return f >= 0 && f < math.MaxUint64
	default:
		return false
	}
}

// roundToInt64 rounds half away from zero before truncating to int64.
// Out-of-range input produces an implementation-specific result.
func roundToInt64(f float64) int64 {
	return int64(math.Round(f))
}

// roundToUint64 is roundToInt64 for unsigned targets. Negative input wraps
// around the way a signed-to-unsigned conversion does.
func roundToUint64(f float64) uint64 {
	r := math.Round(f)
	if r < 0 {
		return uint64(int64(r))
	}

	return uint64(r)
}
