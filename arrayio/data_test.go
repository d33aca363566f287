package arrayio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSliceRoundTrip(t *testing.T) {
	a, err := FromSlice([]float64{1.5, -2.5, 3.25, 0, 4, 5}, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, TypeFloat64, a.ElementType())
	assert.Equal(t, []int{2, 3}, a.Shape())

	got, err := Data[float64](a)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, -2.5, 3.25, 0, 4, 5}, got)
}

func TestFromSliceComplex(t *testing.T) {
	vals := []complex64{1 + 2i, 3 - 4i}
	a, err := FromSlice(vals, 2)
	require.NoError(t, err)
	assert.Equal(t, TypeComplex64, a.ElementType())

	got, err := Data[complex64](a)
	require.NoError(t, err)
	assert.Equal(t, vals, got)
}

func TestFromSliceCountMismatch(t *testing.T) {
	_, err := FromSlice([]int32{1, 2, 3}, 2, 3)
	require.Error(t, err)
}

func TestFromSliceBadShape(t *testing.T) {
	_, err := FromSlice([]int32{1}, 1, 1, 1, 1, 1)
	var de *DimensionError
	require.ErrorAs(t, err, &de)
}

func TestDataTypeMismatch(t *testing.T) {
	a, err := FromSlice([]float64{1, 2}, 2)
	require.NoError(t, err)

	_, err = Data[int32](a)
	var te *TypeError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, TypeFloat64, te.Got)
	assert.Equal(t, TypeInt32, te.Want)
}

func TestDataLoadsExternalHandle(t *testing.T) {
	c := newMemCodec(t, ".mem", TypeUint16, []byte{1, 0, 2, 0}, 2)
	reg := NewRegistry()
	require.NoError(t, reg.Register(c))

	a, err := Open("data.mem", reg)
	require.NoError(t, err)
	require.False(t, a.Loaded())

	got, err := Data[uint16](a)
	require.NoError(t, err)
	assert.Equal(t, []uint16{1, 2}, got)
	assert.True(t, a.Loaded(), "reading data transitions the handle to loaded")
}

func TestDataReturnsCopy(t *testing.T) {
	a, err := FromSlice([]uint8{1, 2, 3}, 3)
	require.NoError(t, err)

	got, err := Data[uint8](a)
	require.NoError(t, err)
	got[0] = 99

	again, err := Data[uint8](a)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3}, again)
}

func TestAt(t *testing.T) {
	vals := make([]int32, 24)
	for i := range vals {
		vals[i] = int32(i + 1)
	}
	a, err := FromSlice(vals, 2, 3, 4)
	require.NoError(t, err)

	got, err := At[int32](a, 0, 0, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got)

	got, err = At[int32](a, 0, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 7, got)

	got, err = At[int32](a, 1, 2, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 24, got)
}

func TestAtRankMismatch(t *testing.T) {
	a, err := FromSlice([]int32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	_, err = At[int32](a, 1)
	var de *DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 1, de.Rank)
	assert.Equal(t, 2, de.Max)
}

func TestAtTypeMismatch(t *testing.T) {
	a, err := FromSlice([]int32{1, 2}, 2)
	require.NoError(t, err)

	_, err = At[float64](a, 0)
	var te *TypeError
	require.ErrorAs(t, err, &te)
}

func TestAtIndexOutOfRange(t *testing.T) {
	a, err := FromSlice([]int32{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	_, err = At[int32](a, 2, 0)
	require.Error(t, err)
	_, err = At[int32](a, 0, -1)
	require.Error(t, err)
}

func TestCastWidening(t *testing.T) {
	a, err := FromSlice([]int16{-3, 0, 7}, 3)
	require.NoError(t, err)

	got, err := Cast[float64](a)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 0, 7}, got)
	assert.Equal(t, TypeInt16, a.ElementType(), "cast must not mutate the stored type")
}

func TestCastNarrowing(t *testing.T) {
	a, err := FromSlice([]float64{1.0, 2.0, 3.0}, 3)
	require.NoError(t, err)

	got, err := Cast[int32](a)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, got)
}

func TestCastComplexToReal(t *testing.T) {
	a, err := FromSlice([]complex128{1 + 9i, -2 - 4i}, 2)
	require.NoError(t, err)

	got, err := Cast[float64](a)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2}, got)
}

func TestCastRealToComplex(t *testing.T) {
	a, err := FromSlice([]float32{1.5, -2}, 2)
	require.NoError(t, err)

	got, err := Cast[complex64](a)
	require.NoError(t, err)
	assert.Equal(t, []complex64{1.5, -2}, got)
}

func TestCastComplexWidening(t *testing.T) {
	a, err := FromSlice([]complex64{1 + 2i}, 1)
	require.NoError(t, err)

	got, err := Cast[complex128](a)
	require.NoError(t, err)
	assert.Equal(t, []complex128{1 + 2i}, got)
}
