package arrayio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Element is the set of Go types an array can hold.
type Element interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | complex64 | complex128
}

// elementTypeOf maps a Go element type onto the ElementType enumeration.
func elementTypeOf[T Element]() ElementType {
	var z T
	switch any(z).(type) {
	case int8:
		return TypeInt8
	case int16:
		return TypeInt16
	case int32:
		return TypeInt32
	case int64:
		return TypeInt64
	case uint8:
		return TypeUint8
	case uint16:
		return TypeUint16
	case uint32:
		return TypeUint32
	case uint64:
		return TypeUint64
	case float32:
		return TypeFloat32
	case float64:
		return TypeFloat64
	case complex64:
		return TypeComplex64
	case complex128:
		return TypeComplex128
	default:
		return TypeUnknown
	}
}

// FromSlice builds a Loaded handle from a typed slice and its shape. The
// element count must match the product of the shape.
func FromSlice[T Element](data []T, shape ...int) (*Array, error) {
	info, err := NewTypeInfo(elementTypeOf[T](), shape...)
	if err != nil {
		return nil, err
	}
	if info.Elements() != len(data) {
		return nil, fmt.Errorf("shape %v needs %d elements, got %d", shape, info.Elements(), len(data))
	}
	buf := NewBuffer(info)
	encodeElements(buf.data, data)
	return NewArray(buf)
}

// Data returns a decoded copy of the array's elements in row-major order,
// loading the data first if the handle is External. The requested Go type
// must match the stored element type exactly; use Cast for conversions.
func Data[T Element](a *Array) ([]T, error) {
	want := elementTypeOf[T]()
	if want != a.info.Dtype {
		return nil, &TypeError{Got: a.info.Dtype, Want: want}
	}
	if err := a.Load(); err != nil {
		return nil, err
	}
	out := make([]T, a.info.Elements())
	decodeElements(out, a.buf.data)
	return out, nil
}

// At returns a single element by multi-index, loading the data first if
// necessary. The number of indices must equal the array's rank.
func At[T Element](a *Array, index ...int) (T, error) {
	var zero T
	if want := elementTypeOf[T](); want != a.info.Dtype {
		return zero, &TypeError{Got: a.info.Dtype, Want: want}
	}
	if len(index) != a.info.NDim() {
		return zero, &DimensionError{Rank: len(index), Max: a.info.NDim()}
	}
	offset := 0
	for k, stride := range a.info.Strides() {
		if index[k] < 0 || index[k] >= a.info.Shape[k] {
			return zero, fmt.Errorf("index %d out of range for axis %d (extent %d)", index[k], k, a.info.Shape[k])
		}
		offset += index[k] * stride
	}
	if err := a.Load(); err != nil {
		return zero, err
	}
	dsize := a.info.Dtype.Size()
	out := make([]T, 1)
	decodeElements(out, a.buf.data[offset*dsize:(offset+1)*dsize])
	return out[0], nil
}

// Cast returns a value-converted copy of the array's elements without
// mutating the stored element type. Real values convert through float64,
// complex through complex128; converting a complex array to a real type
// keeps the real component, converting a real array to a complex type sets
// a zero imaginary component.
func Cast[T Element](a *Array) ([]T, error) {
	if a.info.Dtype == TypeUnknown {
		return nil, &TypeError{Got: TypeUnknown, Want: elementTypeOf[T]()}
	}
	if err := a.Load(); err != nil {
		return nil, err
	}
	vals := decodeAsComplex(a.info, a.buf.data)
	return convertFromComplex[T](vals), nil
}

// encodeElements serializes src into dst as little-endian bytes. dst must be
// at least len(src) elements long in bytes.
func encodeElements[T Element](dst []byte, src []T) {
	switch s := any(src).(type) {
	case []int8:
		for i, v := range s {
			dst[i] = byte(v)
		}
	case []uint8:
		copy(dst, s)
	case []int16:
		for i, v := range s {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(v))
		}
	case []uint16:
		for i, v := range s {
			binary.LittleEndian.PutUint16(dst[2*i:], v)
		}
	case []int32:
		for i, v := range s {
			binary.LittleEndian.PutUint32(dst[4*i:], uint32(v))
		}
	case []uint32:
		for i, v := range s {
			binary.LittleEndian.PutUint32(dst[4*i:], v)
		}
	case []int64:
		for i, v := range s {
			binary.LittleEndian.PutUint64(dst[8*i:], uint64(v))
		}
	case []uint64:
		for i, v := range s {
			binary.LittleEndian.PutUint64(dst[8*i:], v)
		}
	case []float32:
		for i, v := range s {
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(v))
		}
	case []float64:
		for i, v := range s {
			binary.LittleEndian.PutUint64(dst[8*i:], math.Float64bits(v))
		}
	case []complex64:
		for i, v := range s {
			binary.LittleEndian.PutUint32(dst[8*i:], math.Float32bits(real(v)))
			binary.LittleEndian.PutUint32(dst[8*i+4:], math.Float32bits(imag(v)))
		}
	case []complex128:
		for i, v := range s {
			binary.LittleEndian.PutUint64(dst[16*i:], math.Float64bits(real(v)))
			binary.LittleEndian.PutUint64(dst[16*i+8:], math.Float64bits(imag(v)))
		}
	}
}

// decodeElements deserializes little-endian bytes from src into dst.
func decodeElements[T Element](dst []T, src []byte) {
	switch d := any(dst).(type) {
	case []int8:
		for i := range d {
			d[i] = int8(src[i])
		}
	case []uint8:
		copy(d, src)
	case []int16:
		for i := range d {
			d[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
		}
	case []uint16:
		for i := range d {
			d[i] = binary.LittleEndian.Uint16(src[2*i:])
		}
	case []int32:
		for i := range d {
			d[i] = int32(binary.LittleEndian.Uint32(src[4*i:]))
		}
	case []uint32:
		for i := range d {
			d[i] = binary.LittleEndian.Uint32(src[4*i:])
		}
	case []int64:
		for i := range d {
			d[i] = int64(binary.LittleEndian.Uint64(src[8*i:]))
		}
	case []uint64:
		for i := range d {
			d[i] = binary.LittleEndian.Uint64(src[8*i:])
		}
	case []float32:
		for i := range d {
			d[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
		}
	case []float64:
		for i := range d {
			d[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:]))
		}
	case []complex64:
		for i := range d {
			re := math.Float32frombits(binary.LittleEndian.Uint32(src[8*i:]))
			im := math.Float32frombits(binary.LittleEndian.Uint32(src[8*i+4:]))
			d[i] = complex(re, im)
		}
	case []complex128:
		for i := range d {
			re := math.Float64frombits(binary.LittleEndian.Uint64(src[16*i:]))
			im := math.Float64frombits(binary.LittleEndian.Uint64(src[16*i+8:]))
			d[i] = complex(re, im)
		}
	}
}

// decodeAsComplex decodes raw buffer bytes into complex128 values, the
// widest intermediate used by Cast.
func decodeAsComplex(info TypeInfo, data []byte) []complex128 {
	n := info.Elements()
	vals := make([]complex128, n)
	switch info.Dtype {
	case TypeInt8:
		tmp := make([]int8, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeInt16:
		tmp := make([]int16, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeInt32:
		tmp := make([]int32, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeInt64:
		tmp := make([]int64, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeUint8:
		tmp := make([]uint8, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeUint16:
		tmp := make([]uint16, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeUint32:
		tmp := make([]uint32, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeUint64:
		tmp := make([]uint64, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeFloat32:
		tmp := make([]float32, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(float64(v), 0)
		}
	case TypeFloat64:
		tmp := make([]float64, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex(v, 0)
		}
	case TypeComplex64:
		tmp := make([]complex64, n)
		decodeElements(tmp, data)
		for i, v := range tmp {
			vals[i] = complex128(v)
		}
	case TypeComplex128:
		decodeElements(vals, data)
	}
	return vals
}

// convertFromComplex narrows complex128 intermediates to the requested
// element type.
func convertFromComplex[T Element](vals []complex128) []T {
	out := make([]T, len(vals))
	switch o := any(out).(type) {
	case []int8:
		for i, v := range vals {
			o[i] = int8(real(v))
		}
	case []int16:
		for i, v := range vals {
			o[i] = int16(real(v))
		}
	case []int32:
		for i, v := range vals {
			o[i] = int32(real(v))
		}
	case []int64:
		for i, v := range vals {
			o[i] = int64(real(v))
		}
	case []uint8:
		for i, v := range vals {
			o[i] = uint8(real(v))
		}
	case []uint16:
		for i, v := range vals {
			o[i] = uint16(real(v))
		}
	case []uint32:
		for i, v := range vals {
			o[i] = uint32(real(v))
		}
	case []uint64:
		for i, v := range vals {
			o[i] = uint64(real(v))
		}
	case []float32:
		for i, v := range vals {
			o[i] = float32(real(v))
		}
	case []float64:
		for i, v := range vals {
			o[i] = real(v)
		}
	case []complex64:
		for i, v := range vals {
			o[i] = complex64(v)
		}
	case []complex128:
		copy(o, vals)
	}
	return out
}
