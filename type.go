package vcell

// Type identifies the kind of data held by a Value.
type Type uint8

const (
	TypeNull   Type = 0x0 // TypeNull is the type of the zero Value.
	TypeBool   Type = 0x1 // TypeBool holds true or false.
	TypeInt32  Type = 0x2 // TypeInt32 holds a signed 32-bit integer.
	TypeUint32 Type = 0x3 // TypeUint32 holds an unsigned 32-bit integer.
	TypeInt64  Type = 0x4 // TypeInt64 holds a signed 64-bit integer.
	TypeUint64 Type = 0x5 // TypeUint64 holds an unsigned 64-bit integer.
	TypeFloat  Type = 0x6 // TypeFloat holds an IEEE-754 single precision number.
	TypeDouble Type = 0x7 // TypeDouble holds an IEEE-754 double precision number.
	TypeString Type = 0x8 // TypeString holds a byte string.
	TypeArray  Type = 0x9 // TypeArray holds an ordered sequence of values.
	TypeDict   Type = 0xa // TypeDict holds values keyed by byte strings.
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "int32"
	case TypeUint32:
		return "uint32"
	case TypeInt64:
		return "int64"
	case TypeUint64:
		return "uint64"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeDict:
		return "dict"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether t is one of the integer or floating point types.
func (t Type) IsNumeric() bool {
	return t >= TypeInt32 && t <= TypeDouble
}
