package vcell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Array(t *testing.T, xs ...int32) *Value {
	t.Helper()
	v := &Value{}
	v.InitArray()
	for _, x := range xs {
		elem := v.ArrayAppend()
		require.NotNil(t, elem)
		elem.InitInt32(x)
	}

	return v
}

func int32Elements(v *Value) []int32 {
	out := make([]int32, 0, v.ArraySize())
	for _, elem := range v.ArrayAll() {
		out = append(out, elem.Int32())
	}

	return out
}

func TestArray_Basic(t *testing.T) {
	var v Value
	v.InitArray()
	defer v.Fini()

	assert.Equal(t, TypeArray, v.Type())
	assert.Equal(t, 0, v.ArraySize())
	assert.Nil(t, v.ArrayGet(0))
	assert.Empty(t, v.ArrayGetAll())

	elem := v.ArrayAppend()
	require.NotNil(t, elem)
	assert.True(t, elem.IsNew())
	require.NoError(t, elem.InitString("first"))

	assert.Equal(t, 1, v.ArraySize())
	assert.Equal(t, "first", v.ArrayGet(0).String())
	assert.Nil(t, v.ArrayGet(1))
	assert.Nil(t, v.ArrayGet(-1))
	assert.Len(t, v.ArrayGetAll(), 1)
}

func TestArray_InsertRemove(t *testing.T) {
	v := int32Array(t, 1, 2, 3)
	defer v.Fini()

	elem := v.ArrayInsert(0)
	require.NotNil(t, elem)
	assert.True(t, elem.IsNew())
	elem.InitInt32(0)
	assert.Equal(t, []int32{0, 1, 2, 3}, int32Elements(v))

	assert.Equal(t, 1, v.ArrayRemove(1))
	assert.Equal(t, []int32{0, 2, 3}, int32Elements(v))
}

func TestArray_InsertBounds(t *testing.T) {
	v := int32Array(t, 1, 2)
	defer v.Fini()

	assert.Nil(t, v.ArrayInsert(3), "index beyond size")
	assert.Nil(t, v.ArrayInsert(-1))

	elem := v.ArrayInsert(2)
	require.NotNil(t, elem, "index equal to size appends")
	elem.InitInt32(3)
	assert.Equal(t, []int32{1, 2, 3}, int32Elements(v))

	elem = v.ArrayInsert(1)
	require.NotNil(t, elem)
	elem.InitInt32(9)
	assert.Equal(t, []int32{1, 9, 2, 3}, int32Elements(v))
}

func TestArray_RemoveRange(t *testing.T) {
	tests := []struct {
		name    string
		i, n    int
		removed int
		want    []int32
	}{
		{"middle", 1, 2, 2, []int32{0, 3, 4}},
		{"clamped to size", 3, 100, 2, []int32{0, 1, 2}},
		{"start beyond size", 5, 1, 0, []int32{0, 1, 2, 3, 4}},
		{"empty range", 0, 0, 0, []int32{0, 1, 2, 3, 4}},
		{"negative start", -2, 3, 1, []int32{1, 2, 3, 4}},
		{"everything", 0, 5, 5, []int32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := int32Array(t, 0, 1, 2, 3, 4)
			defer v.Fini()

			assert.Equal(t, tt.removed, v.ArrayRemoveRange(tt.i, tt.n))
			assert.Equal(t, tt.want, int32Elements(v))
		})
	}
}

func TestArray_RemoveFinalizesChildren(t *testing.T) {
	var v Value
	v.InitArray()
	defer v.Fini()

	child := v.ArrayAppend()
	child.InitArray()
	child.ArrayAppend().InitInt32(1)
	inner := child.array()

	require.Equal(t, 1, v.ArrayRemove(0))
	assert.Equal(t, 0, inner.buf.Len(), "removed children are finalized")
}

func TestArray_Clean(t *testing.T) {
	v := int32Array(t, 1, 2, 3)
	defer v.Fini()

	v.ArrayClean()
	assert.Equal(t, TypeArray, v.Type())
	assert.Equal(t, 0, v.ArraySize())

	v.ArrayAppend().InitInt32(4)
	assert.Equal(t, []int32{4}, int32Elements(v))
}

func TestArray_AllStopsEarly(t *testing.T) {
	v := int32Array(t, 1, 2, 3, 4)
	defer v.Fini()

	var seen []int
	for i := range v.ArrayAll() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	assert.Equal(t, []int{0, 1}, seen)
}

func TestArray_OperationsOnOtherTypes(t *testing.T) {
	var v Value
	v.InitInt32(5)

	assert.Nil(t, v.ArrayAppend())
	assert.Nil(t, v.ArrayInsert(0))
	assert.Nil(t, v.ArrayGetAll())
	assert.Equal(t, 0, v.ArrayRemove(0))
	v.ArrayClean()
	assert.Equal(t, int32(5), v.Int32())

	for range v.ArrayAll() {
		t.Fatal("non-arrays have no elements")
	}
}

func TestArray_StorageLimit(t *testing.T) {
	var v Value
	v.InitArray()
	defer v.Fini()
	v.array().buf.SetLimit(2)

	require.NotNil(t, v.ArrayAppend())
	require.NotNil(t, v.ArrayAppend())
	assert.Nil(t, v.ArrayAppend(), "growth failure is reported as nil")
	assert.Nil(t, v.ArrayInsert(0))
	assert.Equal(t, 2, v.ArraySize())
}

func TestArray_Large(t *testing.T) {
	const count = 100000

	var v Value
	v.InitArray()
	defer v.Fini()

	for i := range count {
		v.ArrayAppend().InitInt64(int64(i))
	}
	require.Equal(t, count, v.ArraySize())
	for i := range count {
		require.Equal(t, int64(i), v.ArrayGet(i).Int64())
	}

	// insert at the front shifts everything
	for i := range 1000 {
		v.ArrayInsert(0).InitInt64(int64(-i - 1))
	}
	require.Equal(t, count+1000, v.ArraySize())
	assert.Equal(t, int64(-1000), v.ArrayGet(0).Int64())
	assert.Equal(t, int64(0), v.ArrayGet(1000).Int64())

	assert.Equal(t, count, v.ArrayRemoveRange(500, count))
	assert.Equal(t, 1000, v.ArraySize())
}

func BenchmarkArray_Append(b *testing.B) {
	for b.Loop() {
		var v Value
		v.InitArray()
		for i := range 1024 {
			v.ArrayAppend().InitInt32(int32(i))
		}
		v.Fini()
	}
}
