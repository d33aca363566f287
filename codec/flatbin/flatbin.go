// Package flatbin implements the flat binary array container (.abf): a
// fixed-width little-endian header carrying the element type tag, rank and
// shape, followed by the raw element bytes in row-major order, exactly as
// held in memory. No layout conversion is needed for this format.
//
// On-disk structure:
//
//	4 bytes   magic "ABF" + format version (0x01)
//	1 byte    element type tag
//	1 byte    rank (1..4)
//	rank x 8  shape, uint64 per dimension
//	...       payload, product(shape) x element size bytes
package flatbin

import (
	"bytes"
	"fmt"
	"os"

	"github.com/robert-malhotra/go-arrayio/arrayio"
	"github.com/robert-malhotra/go-arrayio/internal/binary"
)

// Extension is the file-name extension this codec registers.
const Extension = ".abf"

const codecName = "array-binary"

var magic = []byte{'A', 'B', 'F', 0x01}

// On-disk element type tags. These are the format's own enumeration and are
// part of the file contract; they never track the in-memory ElementType
// values.
const (
	tagInt8       = 0x01
	tagInt16      = 0x02
	tagInt32      = 0x03
	tagInt64      = 0x04
	tagUint8      = 0x11
	tagUint16     = 0x12
	tagUint32     = 0x13
	tagUint64     = 0x14
	tagFloat32    = 0x21
	tagFloat64    = 0x22
	tagComplex64  = 0x31
	tagComplex128 = 0x32
)

// Codec reads and writes single arrays in the flat binary format.
type Codec struct{}

// New creates the flat binary codec.
func New() *Codec {
	return &Codec{}
}

// Name implements arrayio.Codec.
func (c *Codec) Name() string {
	return codecName
}

// Extensions implements arrayio.Codec.
func (c *Codec) Extensions() []string {
	return []string{Extension}
}

// Peek reads the header and returns the array description without touching
// the payload.
func (c *Codec) Peek(path string) (arrayio.TypeInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return arrayio.TypeInfo{}, &arrayio.NotReadableError{Path: path, Err: err}
	}
	defer f.Close()

	info, _, err := readHeader(binary.NewReader(f))
	return info, err
}

// Load fills buf with the file's payload, reallocating if the buffer's
// current description is incompatible with the file's.
func (c *Codec) Load(path string, buf *arrayio.Buffer) error {
	f, err := os.Open(path)
	if err != nil {
		return &arrayio.NotReadableError{Path: path, Err: err}
	}
	defer f.Close()

	r := binary.NewReader(f)
	info, _, err := readHeader(r)
	if err != nil {
		return err
	}

	if !buf.Type().Compatible(info) {
		buf.Set(info)
	}
	if err := r.ReadInto(buf.Bytes()); err != nil {
		return fmt.Errorf("reading %d payload bytes: %w", info.BufferSize(), err)
	}
	return nil
}

// Save writes the buffer tagged with its element type and shape. The payload
// is the buffer's row-major bytes, complex elements interleaved.
func (c *Codec) Save(path string, buf *arrayio.Buffer) error {
	info := buf.Type()
	tag, err := tagOf(info.Dtype)
	if err != nil {
		return err
	}
	if nd := info.NDim(); nd < 1 || nd > arrayio.MaxRank {
		return &arrayio.DimensionError{Rank: nd, Max: arrayio.MaxRank}
	}

	f, err := os.Create(path)
	if err != nil {
		return &arrayio.NotReadableError{Path: path, Err: err}
	}
	defer f.Close()

	w := binary.NewWriter(f)
	if err := w.WriteBytes(magic); err != nil {
		return err
	}
	if err := w.WriteUint8(tag); err != nil {
		return err
	}
	if err := w.WriteUint8(uint8(info.NDim())); err != nil {
		return err
	}
	for _, dim := range info.Shape {
		if err := w.WriteUint64(uint64(dim)); err != nil {
			return err
		}
	}
	if err := w.WriteBytes(buf.Bytes()); err != nil {
		return fmt.Errorf("writing %d payload bytes: %w", info.BufferSize(), err)
	}
	return f.Close()
}

// readHeader decodes the fixed header and returns the description plus the
// payload offset.
func readHeader(r *binary.Reader) (arrayio.TypeInfo, int64, error) {
	got, err := r.ReadBytes(len(magic))
	if err != nil {
		return arrayio.TypeInfo{}, 0, fmt.Errorf("reading magic: %w", err)
	}
	if !bytes.Equal(got, magic) {
		return arrayio.TypeInfo{}, 0, fmt.Errorf("not a flat binary array file (magic %x)", got)
	}

	tag, err := r.ReadUint8()
	if err != nil {
		return arrayio.TypeInfo{}, 0, fmt.Errorf("reading element type tag: %w", err)
	}
	dtype := typeOf(tag)
	if dtype == arrayio.TypeUnknown {
		return arrayio.TypeInfo{}, 0, &arrayio.TypeError{Got: arrayio.TypeUnknown, Want: arrayio.TypeFloat32}
	}

	nd, err := r.ReadUint8()
	if err != nil {
		return arrayio.TypeInfo{}, 0, fmt.Errorf("reading rank: %w", err)
	}
	if nd < 1 || int(nd) > arrayio.MaxRank {
		return arrayio.TypeInfo{}, 0, &arrayio.DimensionError{Rank: int(nd), Max: arrayio.MaxRank}
	}

	shape := make([]int, nd)
	for i := range shape {
		dim, err := r.ReadUint64()
		if err != nil {
			return arrayio.TypeInfo{}, 0, fmt.Errorf("reading dimension %d: %w", i, err)
		}
		shape[i] = int(dim)
	}

	info, err := arrayio.NewTypeInfo(dtype, shape...)
	if err != nil {
		return arrayio.TypeInfo{}, 0, err
	}
	return info, r.Pos(), nil
}

// tagOf maps an element type to its on-disk tag.
func tagOf(t arrayio.ElementType) (uint8, error) {
	switch t {
	case arrayio.TypeInt8:
		return tagInt8, nil
	case arrayio.TypeInt16:
		return tagInt16, nil
	case arrayio.TypeInt32:
		return tagInt32, nil
	case arrayio.TypeInt64:
		return tagInt64, nil
	case arrayio.TypeUint8:
		return tagUint8, nil
	case arrayio.TypeUint16:
		return tagUint16, nil
	case arrayio.TypeUint32:
		return tagUint32, nil
	case arrayio.TypeUint64:
		return tagUint64, nil
	case arrayio.TypeFloat32:
		return tagFloat32, nil
	case arrayio.TypeFloat64:
		return tagFloat64, nil
	case arrayio.TypeComplex64:
		return tagComplex64, nil
	case arrayio.TypeComplex128:
		return tagComplex128, nil
	default:
		return 0, &arrayio.TypeError{Got: t, Want: arrayio.TypeFloat32}
	}
}

// typeOf maps an on-disk tag back to an element type, TypeUnknown for
// unrecognized tags.
func typeOf(tag uint8) arrayio.ElementType {
	switch tag {
	case tagInt8:
		return arrayio.TypeInt8
	case tagInt16:
		return arrayio.TypeInt16
	case tagInt32:
		return arrayio.TypeInt32
	case tagInt64:
		return arrayio.TypeInt64
	case tagUint8:
		return arrayio.TypeUint8
	case tagUint16:
		return arrayio.TypeUint16
	case tagUint32:
		return arrayio.TypeUint32
	case tagUint64:
		return arrayio.TypeUint64
	case tagFloat32:
		return arrayio.TypeFloat32
	case tagFloat64:
		return arrayio.TypeFloat64
	case tagComplex64:
		return arrayio.TypeComplex64
	case tagComplex128:
		return arrayio.TypeComplex128
	default:
		return arrayio.TypeUnknown
	}
}
