// Package matfile implements a MAT-File Level 5 codec (.mat) covering dense
// numeric variables: 128-byte prolog, 8-byte element tags (the small-data
// element form is accepted on read), and miMATRIX variables with array
// flags, dimensions, name, real part and optional imaginary part.
//
// The data block of a variable is column-major and complex variables store
// their real and imaginary planes separately, so every load and save passes
// through the layout conversion engine exactly once. Compressed variables
// and non-numeric classes are not supported.
//
// A file may hold several named variables. Variables that belong to an
// array set are named "array_<id>"; PeekSet and List only consider those.
package matfile

import (
	"regexp"

	"github.com/robert-malhotra/go-arrayio/arrayio"
)

// Extension is the file-name extension this codec registers.
const Extension = ".mat"

const codecName = "mat-file"

// headerSize is the fixed prolog: 116 bytes of description text, 8 reserved
// bytes, a 2-byte version and the 2-byte endianness indicator.
const headerSize = 128

const defaultDescription = "MATLAB 5.0 MAT-file, written by go-arrayio"

// MAT data type tags.
const (
	miInt8       = 1
	miUint8      = 2
	miInt16      = 3
	miUint16     = 4
	miInt32      = 5
	miUint32     = 6
	miSingle     = 7
	miDouble     = 9
	miInt64      = 12
	miUint64     = 13
	miMatrix     = 14
	miCompressed = 15
)

// MAT array classes.
const (
	mxDouble = 6
	mxSingle = 7
	mxInt8   = 8
	mxUint8  = 9
	mxInt16  = 10
	mxUint16 = 11
	mxInt32  = 12
	mxUint32 = 13
	mxInt64  = 14
	mxUint64 = 15
)

// flagComplex marks a variable as complex in the array-flags word.
const flagComplex = 0x0800

// setName is the naming convention for array-set entries: a literal prefix
// followed by a non-negative integer id.
var setName = regexp.MustCompile(`^array_(\d+)$`)

// Codec reads and writes dense numeric variables in MAT-File Level 5 files.
type Codec struct {
	desc string
}

// Option configures the codec.
type Option func(*Codec)

// WithDescription sets the header description text written into new files.
// Text longer than the 116-byte description field is truncated.
func WithDescription(desc string) Option {
	return func(c *Codec) {
		if desc != "" {
			c.desc = desc
		}
	}
}

// New creates the mat-file codec.
func New(opts ...Option) *Codec {
	c := &Codec{desc: defaultDescription}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements arrayio.Codec.
func (c *Codec) Name() string {
	return codecName
}

// Extensions implements arrayio.Codec.
func (c *Codec) Extensions() []string {
	return []string{Extension}
}

// classOf maps an element type to the MAT class written into the array
// flags. Complex types map to their component class.
func classOf(t arrayio.ElementType) (uint32, error) {
	switch t {
	case arrayio.TypeInt8:
		return mxInt8, nil
	case arrayio.TypeInt16:
		return mxInt16, nil
	case arrayio.TypeInt32:
		return mxInt32, nil
	case arrayio.TypeInt64:
		return mxInt64, nil
	case arrayio.TypeUint8:
		return mxUint8, nil
	case arrayio.TypeUint16:
		return mxUint16, nil
	case arrayio.TypeUint32:
		return mxUint32, nil
	case arrayio.TypeUint64:
		return mxUint64, nil
	case arrayio.TypeFloat32, arrayio.TypeComplex64:
		return mxSingle, nil
	case arrayio.TypeFloat64, arrayio.TypeComplex128:
		return mxDouble, nil
	default:
		return 0, &arrayio.TypeError{Got: t, Want: arrayio.TypeFloat32}
	}
}

// dataTypeOf maps an element type to the MAT data type tag used for its
// data block. Complex types map to their component type.
func dataTypeOf(t arrayio.ElementType) (uint32, error) {
	switch t {
	case arrayio.TypeInt8:
		return miInt8, nil
	case arrayio.TypeInt16:
		return miInt16, nil
	case arrayio.TypeInt32:
		return miInt32, nil
	case arrayio.TypeInt64:
		return miInt64, nil
	case arrayio.TypeUint8:
		return miUint8, nil
	case arrayio.TypeUint16:
		return miUint16, nil
	case arrayio.TypeUint32:
		return miUint32, nil
	case arrayio.TypeUint64:
		return miUint64, nil
	case arrayio.TypeFloat32, arrayio.TypeComplex64:
		return miSingle, nil
	case arrayio.TypeFloat64, arrayio.TypeComplex128:
		return miDouble, nil
	default:
		return 0, &arrayio.TypeError{Got: t, Want: arrayio.TypeFloat32}
	}
}

// elementType maps a MAT data type tag plus the complex flag back to an
// ElementType. Complex is only meaningful for the floating point types;
// anything else is unknown.
func elementType(typ uint32, isComplex bool) arrayio.ElementType {
	var t arrayio.ElementType
	switch typ {
	case miInt8:
		t = arrayio.TypeInt8
	case miUint8:
		t = arrayio.TypeUint8
	case miInt16:
		t = arrayio.TypeInt16
	case miUint16:
		t = arrayio.TypeUint16
	case miInt32:
		t = arrayio.TypeInt32
	case miUint32:
		t = arrayio.TypeUint32
	case miInt64:
		t = arrayio.TypeInt64
	case miUint64:
		t = arrayio.TypeUint64
	case miSingle:
		t = arrayio.TypeFloat32
	case miDouble:
		t = arrayio.TypeFloat64
	default:
		return arrayio.TypeUnknown
	}
	if isComplex {
		switch t {
		case arrayio.TypeFloat32:
			return arrayio.TypeComplex64
		case arrayio.TypeFloat64:
			return arrayio.TypeComplex128
		default:
			return arrayio.TypeUnknown
		}
	}
	return t
}

// pad8 rounds n up to the next multiple of 8.
func pad8(n int) int {
	return (n + 7) &^ 7
}
