package vcell

import (
	"fmt"
	"maps"
	"slices"

	"github.com/arloliu/vcell/errs"
)

// InitAny sets v from a Go value, recursively for slices and maps.
//
// Supported inputs and the resulting types:
//
//	nil                          Null
//	bool                         Bool
//	int8, int16, int32           Int32
//	int, int64                   Int64
//	uint8, uint16, uint32        Uint32
//	uint, uint64                 Uint64
//	float32                      Float
//	float64                      Double
//	string, []byte               String
//	[]any                        Array
//	map[string]any               Dict, keys added in CompareBytes order
//	*Value                       deep copy, like Clone; it must not be v or lie inside v
//
// Any other input fails with errs.ErrUnsupportedType. On failure v is left
// Null and nothing it would have owned is leaked.
func (v *Value) InitAny(x any) error {
	if err := v.initAny(x); err != nil {
		v.Fini()
		return err
	}

	return nil
}

func (v *Value) initAny(x any) error {
	switch x := x.(type) {
	case nil:
		v.InitNull()
	case bool:
		v.InitBool(x)
	case int8:
		v.InitInt32(int32(x))
	case int16:
		v.InitInt32(int32(x))
	case int32:
		v.InitInt32(x)
	case int:
		v.InitInt64(int64(x))
	case int64:
		v.InitInt64(x)
	case uint8:
		v.InitUint32(uint32(x))
	case uint16:
		v.InitUint32(uint32(x))
	case uint32:
		v.InitUint32(x)
	case uint:
		v.InitUint64(uint64(x))
	case uint64:
		v.InitUint64(x)
	case float32:
		v.InitFloat(x)
	case float64:
		v.InitDouble(x)
	case string:
		return v.InitString(x)
	case []byte:
		return v.InitBytes(x)
	case []any:
		v.InitArray()
		a := v.array()
		if err := a.buf.Reserve(len(x)); err != nil {
			return err
		}
		for _, item := range x {
			elem, err := a.insert(a.buf.Len())
			if err != nil {
				return err
			}
			if err := elem.initAny(item); err != nil {
				return err
			}
		}
	case map[string]any:
		if err := v.InitDict(); err != nil {
			return err
		}
		d := v.dict()
		for _, key := range slices.Sorted(maps.Keys(x)) {
			val, err := d.add(key)
			if err != nil {
				return err
			}
			if err := val.initAny(x[key]); err != nil {
				return err
			}
		}
	case *Value:
		return x.cloneInto(v)
	default:
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedType, x)
	}

	return nil
}

// Interface converts v to a plain Go value: nil, bool, int32, uint32, int64,
// uint64, float32, float64, string, []any or map[string]any. Strings are
// copied, so the result does not alias v.
func (v *Value) Interface() any {
	switch v.Type() {
	case TypeBool:
		return v.Bool()
	case TypeInt32:
		return v.int32At()
	case TypeUint32:
		return v.uint32At()
	case TypeInt64:
		return v.int64At()
	case TypeUint64:
		return v.uint64At()
	case TypeFloat:
		return v.float32At()
	case TypeDouble:
		return v.float64At()
	case TypeString:
		return string(v.Bytes())
	case TypeArray:
		out := make([]any, 0, v.ArraySize())
		for _, elem := range v.ArrayAll() {
			out = append(out, elem.Interface())
		}

		return out
	case TypeDict:
		out := make(map[string]any, v.DictSize())
		for key, val := range v.DictAll() {
			out[string(key.Bytes())] = val.Interface()
		}

		return out
	default:
		return nil
	}
}
