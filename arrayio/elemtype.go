// Package arrayio provides format-agnostic persistence for typed,
// multi-dimensional numeric arrays.
//
// The package is built around three pieces: a lazy-loading Array handle that
// keeps track of whether its data lives in memory or on disk, a Codec
// interface implemented once per on-disk format and resolved through a
// Registry keyed by file extension, and a Buffer/TypeInfo pair describing
// the in-memory representation (row-major, little-endian, complex numbers
// interleaved).
package arrayio

// ElementType enumerates the primitive numeric kinds an array can hold.
type ElementType uint8

const (
	// TypeUnknown is the sentinel for an unrecognized element type. Arrays
	// with this type cannot be stored or loaded.
	TypeUnknown ElementType = iota
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUint8
	TypeUint16
	TypeUint32
	TypeUint64
	TypeFloat32
	TypeFloat64
	TypeComplex64
	TypeComplex128
)

// Size returns the width of one element in bytes. Complex types count both
// components. TypeUnknown has size zero.
func (t ElementType) Size() int {
	switch t {
	case TypeInt8, TypeUint8:
		return 1
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt32, TypeUint32, TypeFloat32:
		return 4
	case TypeInt64, TypeUint64, TypeFloat64, TypeComplex64:
		return 8
	case TypeComplex128:
		return 16
	default:
		return 0
	}
}

// Real returns the real-equivalent element type: complex64 maps to float32
// and complex128 to float64. Real types map to themselves. Formats that
// cannot natively express complex numbers store two planes of this type.
func (t ElementType) Real() ElementType {
	switch t {
	case TypeComplex64:
		return TypeFloat32
	case TypeComplex128:
		return TypeFloat64
	default:
		return t
	}
}

// IsComplex reports whether the element type is a complex number type.
func (t ElementType) IsComplex() bool {
	return t == TypeComplex64 || t == TypeComplex128
}

func (t ElementType) String() string {
	switch t {
	case TypeInt8:
		return "int8"
	case TypeInt16:
		return "int16"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeUint8:
		return "uint8"
	case TypeUint16:
		return "uint16"
	case TypeUint32:
		return "uint32"
	case TypeUint64:
		return "uint64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeComplex64:
		return "complex64"
	case TypeComplex128:
		return "complex128"
	default:
		return "unknown"
	}
}
