package matfile

import (
	"fmt"
	"io"
	"os"

	"github.com/robert-malhotra/go-arrayio/arrayio"
	"github.com/robert-malhotra/go-arrayio/internal/binary"
	"github.com/robert-malhotra/go-arrayio/internal/layout"
)

// Save writes buf as the only variable of a new file, named after the
// array-set convention with id 0 so that List finds it.
func (c *Codec) Save(path string, buf *arrayio.Buffer) error {
	return c.SaveVar(path, "array_0", buf)
}

// SaveVar writes buf as the only variable of a new file under the given
// name, replacing any existing file at path.
func (c *Codec) SaveVar(path, name string, buf *arrayio.Buffer) error {
	planes, err := makePlanes(buf)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &arrayio.NotReadableError{Path: path, Err: err}
	}
	defer f.Close()

	w := binary.NewWriter(f)
	if err := writeHeader(w, c.desc); err != nil {
		return err
	}
	if err := writeVariable(w, name, buf.Type(), planes); err != nil {
		return err
	}
	return f.Close()
}

// AppendVar adds buf as a new variable at the end of path, creating the
// file (with a fresh prolog) if it does not exist. The existing file must be
// little-endian.
func (c *Codec) AppendVar(path, name string, buf *arrayio.Buffer) error {
	planes, err := makePlanes(buf)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if os.IsNotExist(err) {
		return c.SaveVar(path, name, buf)
	}
	if err != nil {
		return &arrayio.NotReadableError{Path: path, Err: err}
	}
	defer f.Close()

	head := make([]byte, headerSize)
	if _, err := f.ReadAt(head, 0); err != nil {
		return fmt.Errorf("reading mat header: %w", err)
	}
	if head[126] != 'I' || head[127] != 'M' {
		return fmt.Errorf("cannot append to %s: not a little-endian mat file", path)
	}
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("seeking end of %s: %w", path, err)
	}

	w := binary.NewWriter(f).At(end)
	if err := writeVariable(w, name, buf.Type(), planes); err != nil {
		return err
	}
	return f.Close()
}

// planes holds the on-disk data blocks of one variable: the column-major
// real plane and, for complex types, the column-major imaginary plane.
type planes struct {
	re, im []byte
}

// makePlanes runs the layout conversion engine over the buffer's row-major
// data, producing the column-major block(s) the container stores.
func makePlanes(buf *arrayio.Buffer) (planes, error) {
	info := buf.Type()
	if _, err := classOf(info.Dtype); err != nil {
		return planes{}, err
	}
	if nd := info.NDim(); nd < 1 || nd > arrayio.MaxRank {
		return planes{}, &arrayio.DimensionError{Rank: nd, Max: arrayio.MaxRank}
	}

	dsize := info.Dtype.Size()
	size := info.BufferSize()
	if info.Dtype.IsComplex() {
		p := planes{
			re: make([]byte, size/2),
			im: make([]byte, size/2),
		}
		if err := layout.SplitRowToCol(p.re, p.im, buf.Bytes(), info.Shape, dsize); err != nil {
			return planes{}, err
		}
		return p, nil
	}
	p := planes{re: make([]byte, size)}
	if err := layout.RowToCol(p.re, buf.Bytes(), info.Shape, dsize); err != nil {
		return planes{}, err
	}
	return p, nil
}

// writeHeader writes the 128-byte prolog: description text padded with
// spaces, reserved bytes, version 0x0100 and the little-endian indicator.
func writeHeader(w *binary.Writer, desc string) error {
	text := make([]byte, 116)
	for i := range text {
		text[i] = ' '
	}
	copy(text, desc)
	if err := w.WriteBytes(text); err != nil {
		return err
	}
	if err := w.WriteBytes(make([]byte, 8)); err != nil {
		return err
	}
	if err := w.WriteUint16(0x0100); err != nil {
		return err
	}
	return w.WriteBytes([]byte{'I', 'M'})
}

// writeVariable writes one miMATRIX element: array flags, dimensions, name,
// real part and, when present, imaginary part, each padded to an 8-byte
// boundary.
func writeVariable(w *binary.Writer, name string, info arrayio.TypeInfo, p planes) error {
	class, err := classOf(info.Dtype)
	if err != nil {
		return err
	}
	dataType, err := dataTypeOf(info.Dtype)
	if err != nil {
		return err
	}

	nd := info.NDim()
	total := 16 + // array flags
		8 + pad8(4*nd) + // dimensions
		8 + pad8(len(name)) + // name
		8 + pad8(len(p.re)) // real part
	if p.im != nil {
		total += 8 + pad8(len(p.im))
	}

	if err := w.WriteUint32(miMatrix); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(total)); err != nil {
		return err
	}

	// Array flags.
	if err := w.WriteUint32(miUint32); err != nil {
		return err
	}
	if err := w.WriteUint32(8); err != nil {
		return err
	}
	flags := class
	if p.im != nil {
		flags |= flagComplex
	}
	if err := w.WriteUint32(flags); err != nil {
		return err
	}
	if err := w.WriteUint32(0); err != nil {
		return err
	}

	// Dimensions.
	if err := w.WriteUint32(miInt32); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(4 * nd)); err != nil {
		return err
	}
	for _, dim := range info.Shape {
		if err := w.WriteInt32(int32(dim)); err != nil {
			return err
		}
	}
	if err := w.Align(8); err != nil {
		return err
	}

	// Name.
	if err := w.WriteUint32(miInt8); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(len(name))); err != nil {
		return err
	}
	if err := w.WriteBytes([]byte(name)); err != nil {
		return err
	}
	if err := w.Align(8); err != nil {
		return err
	}

	// Data planes.
	if err := writePlane(w, dataType, p.re); err != nil {
		return err
	}
	if p.im != nil {
		if err := writePlane(w, dataType, p.im); err != nil {
			return err
		}
	}
	return nil
}

func writePlane(w *binary.Writer, dataType uint32, data []byte) error {
	if err := w.WriteUint32(dataType); err != nil {
		return err
	}
	if err := w.WriteUint32(uint32(len(data))); err != nil {
		return err
	}
	if err := w.WriteBytes(data); err != nil {
		return err
	}
	return w.Align(8)
}
