package vcell

import (
	"math"
	"testing"

	"github.com/arloliu/vcell/errs"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAny(t *testing.T, x any) *Value {
	t.Helper()
	v := &Value{}
	require.NoError(t, v.InitAny(x))

	return v
}

func TestEqual(t *testing.T) {
	doc := map[string]any{
		"name": "gopher",
		"tags": []any{"a", "b", int32(3)},
		"meta": map[string]any{"ok": true, "ratio": 0.5},
	}

	tests := []struct {
		name  string
		a, b  any
		equal bool
	}{
		{"nulls", nil, nil, true},
		{"bools", true, true, true},
		{"bool mismatch", true, false, false},
		{"int32", int32(-4), int32(-4), true},
		{"int32 vs int64", int32(1), int64(1), false},
		{"uint64", uint64(math.MaxUint64), uint64(math.MaxUint64), true},
		{"float", float32(0.5), float32(0.5), true},
		{"double nan", math.NaN(), math.NaN(), true},
		{"double signed zero", 0.0, math.Copysign(0, -1), false},
		{"short strings", "abc", "abc", true},
		{"long strings", longText, longText, true},
		{"string mismatch", longText, longText[:len(longText)-1], false},
		{"arrays", []any{int32(1), "x"}, []any{int32(1), "x"}, true},
		{"array length", []any{int32(1)}, []any{int32(1), int32(2)}, false},
		{"array order", []any{int32(1), int32(2)}, []any{int32(2), int32(1)}, false},
		{"documents", doc, doc, true},
		{"dict values", map[string]any{"k": int32(1)}, map[string]any{"k": int32(2)}, false},
		{"dict keys", map[string]any{"k": int32(1)}, map[string]any{"j": int32(1)}, false},
		{"dict size", map[string]any{"k": nil}, map[string]any{"k": nil, "j": nil}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustAny(t, tt.a)
			b := mustAny(t, tt.b)
			defer a.Fini()
			defer b.Fini()

			assert.Equal(t, tt.equal, Equal(a, b))
			assert.Equal(t, tt.equal, Equal(b, a))
			if tt.equal {
				assert.Equal(t, Hash(a), Hash(b))
			}
		})
	}
}

func TestEqual_Nil(t *testing.T) {
	var null Value
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, &null))
	assert.False(t, Equal(&null, nil))
}

func TestEqual_IgnoresNewFlag(t *testing.T) {
	var a Value
	a.InitArray()
	defer a.Fini()

	placeholder := a.ArrayAppend()
	var null Value
	assert.True(t, Equal(placeholder, &null))
	assert.Equal(t, Hash(placeholder), Hash(&null))
}

func TestEqual_DictIgnoresOrderAndComparator(t *testing.T) {
	var a, b Value
	require.NoError(t, a.InitDict(WithMaintainOrder()))
	require.NoError(t, b.InitDict(WithComparator(CompareLengthFirst)))
	defer a.Fini()
	defer b.Fini()

	for _, k := range []string{"one", "three", "seventeen"} {
		a.DictAdd(k).InitInt32(int32(len(k)))
	}
	for _, k := range []string{"seventeen", "one", "three"} {
		b.DictAdd(k).InitInt32(int32(len(k)))
	}

	assert.True(t, Equal(&a, &b))
	assert.Equal(t, Hash(&a), Hash(&b))
}

func TestHash_Distinguishes(t *testing.T) {
	values := []any{
		nil,
		false,
		true,
		int32(1),
		uint32(1),
		int64(1),
		uint64(1),
		float32(1),
		1.0,
		"1",
		[]any{},
		[]any{nil},
		map[string]any{},
		map[string]any{"": nil},
		[]any{"a", "bc"},
		[]any{"ab", "c"},
	}

	seen := make(map[uint64]int)
	for i, x := range values {
		v := mustAny(t, x)
		h := Hash(v)
		if j, dup := seen[h]; dup {
			t.Errorf("values %d and %d share hash %#x", j, i, h)
		}
		seen[h] = i
		v.Fini()
	}
}

// =============================================================================
// Clone
// =============================================================================

func TestClone(t *testing.T) {
	src := mustAny(t, map[string]any{
		"name": longText,
		"list": []any{int64(1), "two", []any{3.0}},
		"nested": map[string]any{
			"flag": true,
		},
	})
	defer src.Fini()

	var dst Value
	require.NoError(t, src.Clone(&dst))
	defer dst.Fini()

	assert.True(t, Equal(src, &dst))
	if diff := cmp.Diff(src.Interface(), dst.Interface()); diff != "" {
		t.Errorf("clone mismatch (-src +dst):\n%s", diff)
	}

	// deep: mutating the clone leaves the source alone
	require.NoError(t, dst.Path("list[1]").InitString("changed"))
	dst.Path("nested").DictRemove("flag")
	assert.Equal(t, "two", src.Path("list[1]").String())
	assert.True(t, src.Path("nested/flag").Bool())
	assert.NotSame(t, &src.Path("name").Bytes()[0], &dst.Path("name").Bytes()[0])
}

func TestClone_PreservesDictConfiguration(t *testing.T) {
	var src Value
	require.NoError(t, src.InitDict(WithComparator(CompareLengthFirst), WithMaintainOrder()))
	defer src.Fini()
	for _, k := range []string{"ccc", "a", "bb"} {
		src.DictAdd(k).InitBool(true)
	}

	var dst Value
	require.NoError(t, src.Clone(&dst))
	defer dst.Fini()

	assert.Equal(t, DictMaintainOrder, dst.DictFlags())
	assert.Equal(t, []string{"ccc", "a", "bb"}, orderedKeys(&dst))
	assert.Equal(t, []string{"a", "bb", "ccc"}, sortedKeys(&dst))
	require.NoError(t, dst.DictVerify())
}

func TestClone_Scalars(t *testing.T) {
	for _, x := range []any{nil, true, int32(-1), uint64(7), float32(2.5), 1e100, "short"} {
		src := mustAny(t, x)
		var dst Value
		require.NoError(t, src.Clone(&dst))
		assert.True(t, Equal(src, &dst), "%v", x)
	}
}

func TestClone_FinalizesDestination(t *testing.T) {
	src := mustAny(t, int32(3))
	dst := mustAny(t, []any{"old", "data"})

	require.NoError(t, src.Clone(dst))
	assert.Equal(t, TypeInt32, dst.Type())
	assert.Equal(t, int32(3), dst.Int32())
}

func TestClone_NilDestination(t *testing.T) {
	src := mustAny(t, []any{map[string]any{"k": int32(1)}})
	defer src.Fini()

	require.ErrorIs(t, src.Clone(nil), errs.ErrNotFound)
}

func TestClone_StorageFailure(t *testing.T) {
	src := mustAny(t, []any{int32(1), int32(2), int32(3)})
	defer src.Fini()

	// Clone finalizes dst, so the limit goes on the element copy directly.
	var dst Value
	dst.InitArray()
	dst.array().buf.SetLimit(2)
	err := src.array().cloneElements(dst.array())
	require.ErrorIs(t, err, errs.ErrBufferOverflow)
	dst.Fini()
}

func BenchmarkHash(b *testing.B) {
	var v Value
	for range 32 {
		d, _ := v.BuildPath("items/[]")
		_ = d.InitAny(map[string]any{"id": int64(1), "name": "item", "price": 9.99})
	}

	for b.Loop() {
		_ = Hash(&v)
	}
}
