package binary

import (
	"bytes"
	stdbinary "encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceWriterAt grows a byte slice on demand to implement io.WriterAt.
type sliceWriterAt struct {
	b []byte
}

func (w *sliceWriterAt) WriteAt(p []byte, off int64) (int, error) {
	if need := int(off) + len(p); need > len(w.b) {
		w.b = append(w.b, make([]byte, need-len(w.b))...)
	}
	copy(w.b[off:], p)
	return len(p), nil
}

func TestWriteReadRoundTrip(t *testing.T) {
	out := &sliceWriterAt{}
	w := NewWriter(out)

	require.NoError(t, w.WriteUint8(0xAB))
	require.NoError(t, w.WriteUint16(0x1234))
	require.NoError(t, w.WriteUint32(0xDEADBEEF))
	require.NoError(t, w.WriteUint64(0x0102030405060708))
	require.NoError(t, w.WriteInt32(-42))
	require.NoError(t, w.WriteBytes([]byte("tail")))
	assert.EqualValues(t, 1+2+4+8+4+4, w.Pos())

	r := NewReader(bytes.NewReader(out.b))

	v8, err := r.ReadUint8()
	require.NoError(t, err)
	assert.EqualValues(t, 0xAB, v8)

	v16, err := r.ReadUint16()
	require.NoError(t, err)
	assert.EqualValues(t, 0x1234, v16)

	v32, err := r.ReadUint32()
	require.NoError(t, err)
	assert.EqualValues(t, 0xDEADBEEF, v32)

	v64, err := r.ReadUint64()
	require.NoError(t, err)
	assert.EqualValues(t, 0x0102030405060708, v64)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.EqualValues(t, -42, i32)

	tail, err := r.ReadBytes(4)
	require.NoError(t, err)
	assert.Equal(t, []byte("tail"), tail)
	assert.Equal(t, w.Pos(), r.Pos())
}

func TestReaderAtIsIndependent(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}))

	other := r.At(2)
	v, err := other.ReadUint8()
	require.NoError(t, err)
	assert.EqualValues(t, 3, v)

	// The original position is untouched.
	assert.EqualValues(t, 0, r.Pos())
	v, err = r.ReadUint8()
	require.NoError(t, err)
	assert.EqualValues(t, 1, v)
}

func TestReaderWithOrder(t *testing.T) {
	data := []byte{0x12, 0x34}

	le, err := NewReader(bytes.NewReader(data)).ReadUint16()
	require.NoError(t, err)
	assert.EqualValues(t, 0x3412, le)

	be, err := NewReader(bytes.NewReader(data)).WithOrder(stdbinary.BigEndian).ReadUint16()
	require.NoError(t, err)
	assert.EqualValues(t, 0x1234, be)
}

func TestReaderSkipAndAlign(t *testing.T) {
	r := NewReader(bytes.NewReader(make([]byte, 64)))

	r.Skip(3)
	assert.EqualValues(t, 3, r.Pos())

	r.Align(8)
	assert.EqualValues(t, 8, r.Pos())

	// Already aligned: no movement.
	r.Align(8)
	assert.EqualValues(t, 8, r.Pos())
}

func TestReaderPeekDoesNotAdvance(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{9, 8, 7}))

	head, err := r.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 8}, head)
	assert.EqualValues(t, 0, r.Pos())
}

func TestReaderReadInto(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3, 4}))
	buf := make([]byte, 4)
	require.NoError(t, r.ReadInto(buf))
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
	assert.EqualValues(t, 4, r.Pos())
}

func TestWriterAlignPadsWithZeros(t *testing.T) {
	out := &sliceWriterAt{}
	w := NewWriter(out)

	require.NoError(t, w.WriteBytes([]byte{0xFF, 0xFF, 0xFF}))
	require.NoError(t, w.Align(8))
	assert.EqualValues(t, 8, w.Pos())
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0}, out.b)
}

func TestWriterAtIsIndependent(t *testing.T) {
	out := &sliceWriterAt{}
	w := NewWriter(out)
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3, 4}))

	patch := w.At(1)
	require.NoError(t, patch.WriteUint8(9))

	assert.Equal(t, []byte{1, 9, 3, 4}, out.b)
	assert.EqualValues(t, 4, w.Pos())
}
