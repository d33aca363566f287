package arrayio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferSizedToInfo(t *testing.T) {
	info, err := NewTypeInfo(TypeInt32, 2, 5)
	require.NoError(t, err)
	buf := NewBuffer(info)
	assert.Len(t, buf.Bytes(), 40)
	assert.True(t, buf.Type().Compatible(info))
}

func TestBufferSetCompatibleKeepsContents(t *testing.T) {
	info, err := NewTypeInfo(TypeUint8, 4)
	require.NoError(t, err)
	buf := NewBuffer(info)
	copy(buf.Bytes(), []byte{1, 2, 3, 4})

	same, _ := NewTypeInfo(TypeUint8, 4)
	buf.Set(same)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Bytes())
}

func TestBufferSetIncompatibleReallocates(t *testing.T) {
	info, err := NewTypeInfo(TypeUint8, 4)
	require.NoError(t, err)
	buf := NewBuffer(info)
	copy(buf.Bytes(), []byte{1, 2, 3, 4})

	wider, _ := NewTypeInfo(TypeUint16, 4)
	buf.Set(wider)
	assert.True(t, buf.Type().Compatible(wider))
	assert.Equal(t, make([]byte, 8), buf.Bytes(), "reallocated storage starts zeroed")
}

func TestBufferClone(t *testing.T) {
	info, err := NewTypeInfo(TypeUint8, 3)
	require.NoError(t, err)
	buf := NewBuffer(info)
	copy(buf.Bytes(), []byte{7, 8, 9})

	dup := buf.Clone()
	require.Equal(t, buf.Bytes(), dup.Bytes())

	dup.Bytes()[0] = 42
	assert.EqualValues(t, 7, buf.Bytes()[0], "clone must not alias the original")
}
