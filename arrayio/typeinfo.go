package arrayio

import (
	"fmt"
	"strings"
)

// MaxRank is the maximum number of dimensions an array can have.
const MaxRank = 4

// TypeInfo describes an array's element type and shape, independent of where
// the data lives. Strides are always derived from the shape assuming
// row-major packing; they are never stored and so can never desynchronize.
type TypeInfo struct {
	Dtype ElementType
	Shape []int
}

// NewTypeInfo builds a TypeInfo, validating that the rank is within 1..MaxRank
// and that every dimension is positive. The shape slice is copied.
func NewTypeInfo(dtype ElementType, shape ...int) (TypeInfo, error) {
	if nd := len(shape); nd < 1 || nd > MaxRank {
		return TypeInfo{}, &DimensionError{Rank: nd, Max: MaxRank}
	}
	for i, dim := range shape {
		if dim <= 0 {
			return TypeInfo{}, fmt.Errorf("dimension %d has non-positive extent %d", i, dim)
		}
	}
	return TypeInfo{Dtype: dtype, Shape: append([]int(nil), shape...)}, nil
}

// NDim returns the number of dimensions.
func (t TypeInfo) NDim() int {
	return len(t.Shape)
}

// Elements returns the total number of elements.
func (t TypeInfo) Elements() int {
	if len(t.Shape) == 0 {
		return 0
	}
	n := 1
	for _, dim := range t.Shape {
		n *= dim
	}
	return n
}

// Strides returns the row-major strides in element units (not bytes): the
// last axis varies fastest.
func (t TypeInfo) Strides() []int {
	nd := len(t.Shape)
	if nd == 0 {
		return nil
	}
	strides := make([]int, nd)
	strides[nd-1] = 1
	for k := nd - 2; k >= 0; k-- {
		strides[k] = strides[k+1] * t.Shape[k+1]
	}
	return strides
}

// BufferSize returns the number of bytes needed to hold the array data.
// Complex element sizes already account for both components.
func (t TypeInfo) BufferSize() int {
	return t.Elements() * t.Dtype.Size()
}

// Compatible reports whether two descriptions match exactly in element type,
// rank and shape. Compatibility, not identity, is what gates buffer
// reallocation.
func (t TypeInfo) Compatible(other TypeInfo) bool {
	if t.Dtype != other.Dtype || len(t.Shape) != len(other.Shape) {
		return false
	}
	for i, dim := range t.Shape {
		if dim != other.Shape[i] {
			return false
		}
	}
	return true
}

func (t TypeInfo) String() string {
	if len(t.Shape) == 0 {
		return t.Dtype.String() + "[]"
	}
	dims := make([]string, len(t.Shape))
	for i, dim := range t.Shape {
		dims[i] = fmt.Sprintf("%d", dim)
	}
	return fmt.Sprintf("%s[%s]", t.Dtype, strings.Join(dims, "x"))
}
