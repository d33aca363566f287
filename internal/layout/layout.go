// Package layout implements the element-order conversion engine between
// row-major (C-style) and column-major (Fortran-style) storage for 1 to 4
// dimensional arrays.
//
// The in-memory convention is row-major with complex elements interleaved
// (re, im); matrix-interchange containers store dense arrays column-major
// with complex numbers as two parallel planes. Every load/save pair applies
// the engine exactly once in the appropriate direction.
//
// All functions are pure and allocation-free: the caller supplies source and
// destination regions sized exactly to the array's byte size (or half of it
// per component on the split-complex path). Offsets are computed from the
// shape with explicit index-order reversal; buffers are never aliased.
package layout

import (
	"fmt"

	"github.com/robert-malhotra/go-arrayio/arrayio"
)

// RowToCol copies src (row-major) into dst (column-major). dsize is the
// width of one element in bytes. Both slices must be exactly
// product(shape)*dsize bytes.
func RowToCol(dst, src []byte, shape []int, dsize int) error {
	if err := validate(shape, dsize, len(dst), len(src)); err != nil {
		return err
	}
	convert(dst, src, shape, dsize, colToRowOffsets)
	return nil
}

// ColToRow copies src (column-major) into dst (row-major). It is the exact
// inverse of RowToCol for every shape.
func ColToRow(dst, src []byte, shape []int, dsize int) error {
	if err := validate(shape, dsize, len(dst), len(src)); err != nil {
		return err
	}
	convert(dst, src, shape, dsize, rowToColOffsets)
	return nil
}

// SplitRowToCol copies interleaved complex src (row-major) into two
// column-major component planes. dsize is the width of one full complex
// element; each plane must be exactly half the source size.
func SplitRowToCol(dstRe, dstIm, src []byte, shape []int, dsize int) error {
	if err := validateSplit(shape, dsize, len(dstRe), len(dstIm), len(src)); err != nil {
		return err
	}
	half := dsize / 2
	n := elements(shape)
	row := rowStrides(shape)
	col := colStrides(shape)
	for e, idx := 0, make([]int, len(shape)); e < n; e++ {
		ro := offset(idx, row) * dsize
		co := offset(idx, col) * half
		copy(dstRe[co:co+half], src[ro:ro+half])
		copy(dstIm[co:co+half], src[ro+half:ro+dsize])
		increment(idx, shape)
	}
	return nil
}

// JoinColToRow recombines two column-major component planes into interleaved
// complex dst (row-major). It is the exact inverse of SplitRowToCol.
func JoinColToRow(dst, srcRe, srcIm []byte, shape []int, dsize int) error {
	if err := validateSplit(shape, dsize, len(srcRe), len(srcIm), len(dst)); err != nil {
		return err
	}
	half := dsize / 2
	n := elements(shape)
	row := rowStrides(shape)
	col := colStrides(shape)
	for e, idx := 0, make([]int, len(shape)); e < n; e++ {
		ro := offset(idx, row) * dsize
		co := offset(idx, col) * half
		copy(dst[ro:ro+half], srcRe[co:co+half])
		copy(dst[ro+half:ro+dsize], srcIm[co:co+half])
		increment(idx, shape)
	}
	return nil
}

type offsetsFunc func(shape []int) (dst, src []int)

// colToRowOffsets pairs a column-major destination with a row-major source.
func colToRowOffsets(shape []int) (dst, src []int) {
	return colStrides(shape), rowStrides(shape)
}

// rowToColOffsets pairs a row-major destination with a column-major source.
func rowToColOffsets(shape []int) (dst, src []int) {
	return rowStrides(shape), colStrides(shape)
}

// convert walks every multi-index within shape in natural iteration order,
// copying one element per step. For rank 1 the two orders coincide and the
// copy degenerates to a single block move.
func convert(dst, src []byte, shape []int, dsize int, offsets offsetsFunc) {
	if len(shape) == 1 {
		copy(dst, src)
		return
	}
	dstStrides, srcStrides := offsets(shape)
	n := elements(shape)
	for e, idx := 0, make([]int, len(shape)); e < n; e++ {
		do := offset(idx, dstStrides) * dsize
		so := offset(idx, srcStrides) * dsize
		copy(dst[do:do+dsize], src[so:so+dsize])
		increment(idx, shape)
	}
}

// rowStrides returns element strides with the last axis varying fastest.
func rowStrides(shape []int) []int {
	nd := len(shape)
	strides := make([]int, nd)
	strides[nd-1] = 1
	for k := nd - 2; k >= 0; k-- {
		strides[k] = strides[k+1] * shape[k+1]
	}
	return strides
}

// colStrides returns element strides with the first axis varying fastest.
func colStrides(shape []int) []int {
	strides := make([]int, len(shape))
	strides[0] = 1
	for k := 1; k < len(shape); k++ {
		strides[k] = strides[k-1] * shape[k-1]
	}
	return strides
}

func offset(idx, strides []int) int {
	off := 0
	for k, i := range idx {
		off += i * strides[k]
	}
	return off
}

// increment advances a multi-index in row-major iteration order.
func increment(idx, shape []int) {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < shape[k] {
			return
		}
		idx[k] = 0
	}
}

func elements(shape []int) int {
	n := 1
	for _, dim := range shape {
		n *= dim
	}
	return n
}

func validate(shape []int, dsize, dstLen, srcLen int) error {
	if nd := len(shape); nd < 1 || nd > arrayio.MaxRank {
		return &arrayio.DimensionError{Rank: nd, Max: arrayio.MaxRank}
	}
	for i, dim := range shape {
		if dim <= 0 {
			return fmt.Errorf("dimension %d has non-positive extent %d", i, dim)
		}
	}
	if dsize <= 0 {
		return fmt.Errorf("non-positive element size %d", dsize)
	}
	want := elements(shape) * dsize
	if srcLen != want {
		return fmt.Errorf("source is %d bytes, shape %v at %d bytes/element needs %d", srcLen, shape, dsize, want)
	}
	if dstLen != want {
		return fmt.Errorf("destination is %d bytes, shape %v at %d bytes/element needs %d", dstLen, shape, dsize, want)
	}
	return nil
}

func validateSplit(shape []int, dsize, reLen, imLen, fullLen int) error {
	if nd := len(shape); nd < 1 || nd > arrayio.MaxRank {
		return &arrayio.DimensionError{Rank: nd, Max: arrayio.MaxRank}
	}
	for i, dim := range shape {
		if dim <= 0 {
			return fmt.Errorf("dimension %d has non-positive extent %d", i, dim)
		}
	}
	if dsize <= 0 || dsize%2 != 0 {
		return fmt.Errorf("complex element size %d is not a positive even number", dsize)
	}
	full := elements(shape) * dsize
	if fullLen != full {
		return fmt.Errorf("interleaved region is %d bytes, shape %v at %d bytes/element needs %d", fullLen, shape, dsize, full)
	}
	if reLen != full/2 || imLen != full/2 {
		return fmt.Errorf("component planes are %d and %d bytes, each must be %d", reLen, imLen, full/2)
	}
	return nil
}
