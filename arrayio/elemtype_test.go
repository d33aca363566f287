package arrayio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementTypeSize(t *testing.T) {
	sizes := map[ElementType]int{
		TypeUnknown:    0,
		TypeInt8:       1,
		TypeInt16:      2,
		TypeInt32:      4,
		TypeInt64:      8,
		TypeUint8:      1,
		TypeUint16:     2,
		TypeUint32:     4,
		TypeUint64:     8,
		TypeFloat32:    4,
		TypeFloat64:    8,
		TypeComplex64:  8,
		TypeComplex128: 16,
	}
	for dtype, want := range sizes {
		assert.Equal(t, want, dtype.Size(), "size of %s", dtype)
	}
}

func TestElementTypeReal(t *testing.T) {
	assert.Equal(t, TypeFloat32, TypeComplex64.Real())
	assert.Equal(t, TypeFloat64, TypeComplex128.Real())

	// Real types map to themselves.
	for _, dtype := range []ElementType{TypeInt8, TypeUint64, TypeFloat32, TypeFloat64} {
		assert.Equal(t, dtype, dtype.Real())
	}
}

func TestElementTypeIsComplex(t *testing.T) {
	assert.True(t, TypeComplex64.IsComplex())
	assert.True(t, TypeComplex128.IsComplex())
	assert.False(t, TypeFloat64.IsComplex())
	assert.False(t, TypeUnknown.IsComplex())
}

func TestElementTypeString(t *testing.T) {
	assert.Equal(t, "int16", TypeInt16.String())
	assert.Equal(t, "complex128", TypeComplex128.String())
	assert.Equal(t, "unknown", TypeUnknown.String())
	assert.Equal(t, "unknown", ElementType(99).String())
}
