package vcell

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/vcell/errs"
	"github.com/arloliu/vcell/internal/pool"
)

// SegmentKind tells how a path segment addresses a child value.
type SegmentKind uint8

const (
	SegmentKey    SegmentKind = iota // SegmentKey looks up a dictionary key.
	SegmentIndex                     // SegmentIndex addresses an array element; negative counts from the end.
	SegmentAppend                    // SegmentAppend appends a new array element; only valid when building.
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentKey:
		return "Key"
	case SegmentIndex:
		return "Index"
	case SegmentAppend:
		return "Append"
	default:
		return "Unknown"
	}
}

// Segment is one step of a compiled path.
type Segment struct {
	Kind  SegmentKind
	Key   string // set for SegmentKey
	Index int    // set for SegmentIndex
}

// PathExpr is a compiled path expression. It is immutable and can be resolved
// against any number of values.
type PathExpr struct {
	segments []Segment
}

// ParsePath compiles a path expression.
//
// A path is a sequence of segments separated by '/'. Each segment is an
// optional dictionary key followed by zero or more array subscripts:
//
//	users/alice/emails[0]
//	matrix[2][-1]
//	log/[]/message
//
// Subscripts hold a signed decimal index, where -1 is the last element, or are
// empty ("[]") to append a new element when building. Keys cannot contain
// '/', '[' or ']'. Empty segments are ignored, so "" and "/" address the root.
//
// Malformed paths fail with errs.ErrInvalidPath.
func ParsePath(path string) (PathExpr, error) {
	var segs []Segment

	for part := range strings.SplitSeq(path, "/") {
		if part == "" {
			continue
		}

		key := part
		rest := ""
		if i := strings.IndexByte(part, '['); i >= 0 {
			key, rest = part[:i], part[i:]
		}
		if strings.IndexByte(key, ']') >= 0 {
			return PathExpr{}, fmt.Errorf("%w: unexpected ']' in %q", errs.ErrInvalidPath, part)
		}
		if key != "" {
			segs = append(segs, Segment{Kind: SegmentKey, Key: key})
		}

		for rest != "" {
			if rest[0] != '[' {
				return PathExpr{}, fmt.Errorf("%w: expected '[' in %q", errs.ErrInvalidPath, part)
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return PathExpr{}, fmt.Errorf("%w: unterminated subscript in %q", errs.ErrInvalidPath, part)
			}

			seg, err := parseSubscript(rest[1:end])
			if err != nil {
				return PathExpr{}, fmt.Errorf("%w: %q: %w", errs.ErrInvalidPath, part, err)
			}
			segs = append(segs, seg)
			rest = rest[end+1:]
		}
	}

	return PathExpr{segments: segs}, nil
}

// MustParsePath is like ParsePath but panics on malformed paths. It is meant
// for package-level path variables.
func MustParsePath(path string) PathExpr {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}

	return p
}

func parseSubscript(s string) (Segment, error) {
	if s == "" {
		return Segment{Kind: SegmentAppend}, nil
	}

	digits := strings.TrimPrefix(s, "-")
	if digits == "" || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return Segment{}, fmt.Errorf("bad index %q", s)
	}

	idx, err := strconv.Atoi(s)
	if err != nil {
		return Segment{}, err
	}

	return Segment{Kind: SegmentIndex, Index: idx}, nil
}

// Segments returns a copy of the compiled segments.
func (p PathExpr) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)

	return out
}

// Len returns the number of segments.
func (p PathExpr) Len() int {
	return len(p.segments)
}

// String renders the canonical form of the path. Parsing it yields an
// equivalent PathExpr.
func (p PathExpr) String() string {
	bb := pool.GetScratch()
	defer pool.PutScratch(bb)

	for i, seg := range p.segments {
		switch seg.Kind {
		case SegmentKey:
			if i > 0 {
				_ = bb.WriteByte('/')
			}
			_, _ = bb.WriteString(seg.Key)
		case SegmentIndex:
			_ = bb.WriteByte('[')
			bb.B = strconv.AppendInt(bb.B, int64(seg.Index), 10)
			_ = bb.WriteByte(']')
		case SegmentAppend:
			_, _ = bb.WriteString("[]")
		}
	}

	return bb.String()
}

// Path returns the value addressed by path, or nil when the path is malformed,
// contains an append subscript, or does not resolve. The empty path returns
// v itself. Path never modifies v.
func (v *Value) Path(path string) *Value {
	p, err := ParsePath(path)
	if err != nil {
		return nil
	}

	return v.Resolve(p)
}

// Resolve is Path for a compiled expression.
func (v *Value) Resolve(p PathExpr) *Value {
	cur := v
	for _, seg := range p.segments {
		switch seg.Kind {
		case SegmentKey:
			cur = cur.DictFind(seg.Key)
		case SegmentIndex:
			i := seg.Index
			if i < 0 {
				i += cur.ArraySize()
			}
			cur = cur.ArrayGet(i)
		default:
			return nil
		}

		if cur == nil {
			return nil
		}
	}

	return cur
}

// BuildPath walks path like Path but creates what is missing, and returns the
// addressed value.
//
// A Null value met on the way becomes a dictionary when the next segment is a
// key, and an array when it is a subscript. Missing keys are added and "[]"
// always appends a new element. A newly created final value is Null with
// IsNew reporting true.
//
// BuildPath fails with errs.ErrInvalidPath for malformed paths,
// errs.ErrTypeMismatch when an existing non-Null value has the wrong container
// type, and errs.ErrIndexOutOfRange for an explicit index outside the array.
// Values created before the failing segment are kept.
func (v *Value) BuildPath(path string) (*Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	return v.Build(p)
}

// Build is BuildPath for a compiled expression.
func (v *Value) Build(p PathExpr) (*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil root", errs.ErrNotFound)
	}

	cur := v
	for n, seg := range p.segments {
		next, err := cur.buildStep(seg)
		if err != nil {
			return nil, fmt.Errorf("%w (segment %d of %q)", err, n, p.String())
		}
		cur = next
	}

	return cur, nil
}

func (v *Value) buildStep(seg Segment) (*Value, error) {
	switch seg.Kind {
	case SegmentKey:
		switch v.Type() {
		case TypeNull:
			if err := v.InitDict(); err != nil {
				return nil, err
			}
		case TypeDict:
		default:
			return nil, fmt.Errorf("%w: key %q on %s", errs.ErrTypeMismatch, seg.Key, v.Type())
		}

		val, _, err := v.dict().getOrAdd(seg.Key)

		return val, err

	case SegmentIndex, SegmentAppend:
		switch v.Type() {
		case TypeNull:
			v.InitArray()
		case TypeArray:
		default:
			return nil, fmt.Errorf("%w: subscript on %s", errs.ErrTypeMismatch, v.Type())
		}

		a := v.array()
		if seg.Kind == SegmentAppend {
			return a.insert(a.buf.Len())
		}

		i := seg.Index
		if i < 0 {
			i += a.buf.Len()
		}
		if i < 0 || i >= a.buf.Len() {
			return nil, fmt.Errorf("%w: index %d, size %d", errs.ErrIndexOutOfRange, seg.Index, a.buf.Len())
		}

		return a.buf.At(i), nil

	default:
		return nil, fmt.Errorf("%w: unknown segment kind %d", errs.ErrInvalidPath, seg.Kind)
	}
}
