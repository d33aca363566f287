package arrayio

import "fmt"

// NotReadableError reports a file that could not be opened for an I/O
// operation. It wraps the underlying OS error.
type NotReadableError struct {
	Path string
	Err  error
}

func (e *NotReadableError) Error() string {
	return fmt.Sprintf("file not readable: %s: %v", e.Path, e.Err)
}

func (e *NotReadableError) Unwrap() error {
	return e.Err
}

// TypeError reports an element type that a codec cannot represent or did not
// recognize. Want is a reference known-good type for diagnostics.
type TypeError struct {
	Got  ElementType
	Want ElementType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unsupported element type %s (a known-good type would be %s)", e.Got, e.Want)
}

// DimensionError reports a rank outside the supported range.
type DimensionError struct {
	Rank int // offending number of dimensions
	Max  int // maximum supported
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("unsupported number of dimensions %d: can handle at most %d", e.Rank, e.Max)
}

// UninitializedError reports a requested entity (a variable inside a file, a
// codec for an extension) that does not exist or was never populated.
type UninitializedError struct {
	What string
}

func (e *UninitializedError) Error() string {
	return fmt.Sprintf("uninitialized: %s", e.What)
}
