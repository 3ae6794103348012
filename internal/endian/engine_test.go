package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCell_IsLittleEndian(t *testing.T) {
	require := require.New(t)

	engine := Cell()
	require.Equal(binary.LittleEndian, engine)

	buf := make([]byte, 4)
	engine.PutUint32(buf, 0x01020304)
	require.Equal([]byte{0x04, 0x03, 0x02, 0x01}, buf)
}

func TestFloatRoundTrip(t *testing.T) {
	engine := Cell()

	f32 := []float32{0, -0, 1.5, -3.25, math.MaxFloat32, math.SmallestNonzeroFloat32, float32(math.Inf(-1))}
	for _, v := range f32 {
		buf := make([]byte, 4)
		PutFloat32(engine, buf, v)
		require.Equal(t, math.Float32bits(v), math.Float32bits(Float32(engine, buf)))
	}

	f64 := []float64{0, 1.5, -3.25, math.MaxFloat64, math.SmallestNonzeroFloat64, math.Inf(1)}
	for _, v := range f64 {
		buf := make([]byte, 8)
		PutFloat64(engine, buf, v)
		require.Equal(t, math.Float64bits(v), math.Float64bits(Float64(engine, buf)))
	}

	buf := make([]byte, 8)
	PutFloat64(engine, buf, math.NaN())
	require.True(t, math.IsNaN(Float64(engine, buf)))
}

func TestFloat_Offset(t *testing.T) {
	engine := Cell()
	raw := make([]byte, 16)

	PutFloat64(engine, raw[1:], 2.5)
	require.Equal(t, byte(0), raw[0], "writes must not touch bytes before the offset")
	require.Equal(t, 2.5, Float64(engine, raw[1:]))
}
