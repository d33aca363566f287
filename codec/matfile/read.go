package matfile

import (
	stdbinary "encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/robert-malhotra/go-arrayio/arrayio"
	"github.com/robert-malhotra/go-arrayio/internal/binary"
	"github.com/robert-malhotra/go-arrayio/internal/layout"
)

// element is one tagged data element: its type tag, payload size, a reader
// positioned at the payload, and the absolute offset of the next element.
type element struct {
	typ  uint32
	size int
	data *binary.Reader
	next int64
}

// readElement decodes an element tag at the reader's position, handling the
// packed small-data-element form (payload of up to 4 bytes stored inside
// the tag itself).
func readElement(r *binary.Reader) (element, error) {
	start := r.Pos()
	first, err := r.ReadUint32()
	if err != nil {
		return element{}, err
	}
	if first>>16 != 0 {
		// Small data element: type in the low 16 bits, size in the high
		// 16 bits, payload in the remaining 4 tag bytes.
		return element{
			typ:  first & 0xFFFF,
			size: int(first >> 16),
			data: r.At(start + 4),
			next: start + 8,
		}, nil
	}
	size, err := r.ReadUint32()
	if err != nil {
		return element{}, err
	}
	return element{
		typ:  first,
		size: int(size),
		data: r.At(start + 8),
		next: start + 8 + int64(pad8(int(size))),
	}, nil
}

// variable is one decoded miMATRIX entry. The component planes are nil for
// info-only scans.
type variable struct {
	name      string
	info      arrayio.TypeInfo
	isComplex bool
	re, im    []byte
	next      int64
}

// openFile opens path and decodes the prolog, returning a reader positioned
// at the first variable and configured for the file's byte order.
func openFile(path string) (*os.File, *binary.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &arrayio.NotReadableError{Path: path, Err: err}
	}
	r := binary.NewReader(f)
	head, err := r.ReadBytes(headerSize)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("reading mat header: %w", err)
	}
	switch {
	case head[126] == 'I' && head[127] == 'M':
		// Little-endian, the reader's default.
	case head[126] == 'M' && head[127] == 'I':
		r = r.WithOrder(stdbinary.BigEndian)
	default:
		f.Close()
		return nil, nil, fmt.Errorf("not a mat file: bad endian indicator %q", head[126:128])
	}
	return f, r, nil
}

// readVariable decodes the variable starting at the reader's position. A
// full read materializes the data planes and resolves the element type from
// the data tag; an info-only read skips the planes and leaves the element
// type unknown for the caller to fill in.
//
// io.EOF is returned untouched when no variable starts here.
func readVariable(r *binary.Reader, full bool) (*variable, error) {
	el, err := readElement(r)
	if err != nil {
		return nil, err
	}
	if el.typ == miCompressed {
		return nil, fmt.Errorf("compressed mat variables are not supported")
	}
	if el.typ != miMatrix {
		return nil, fmt.Errorf("unexpected element type %d, want miMATRIX", el.typ)
	}
	sub := el.data

	// Array flags: class in the low byte, complex flag at bit 11.
	fl, err := readElement(sub)
	if err != nil {
		return nil, fmt.Errorf("reading array flags: %w", err)
	}
	if fl.typ != miUint32 || fl.size != 8 {
		return nil, fmt.Errorf("malformed array flags element (type %d, %d bytes)", fl.typ, fl.size)
	}
	flags, err := fl.data.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("reading array flags: %w", err)
	}
	isComplex := flags&flagComplex != 0
	sub = sub.At(fl.next)

	// Dimensions.
	de, err := readElement(sub)
	if err != nil {
		return nil, fmt.Errorf("reading dimensions: %w", err)
	}
	if de.typ != miInt32 {
		return nil, fmt.Errorf("malformed dimensions element (type %d)", de.typ)
	}
	nd := de.size / 4
	if nd < 1 || nd > arrayio.MaxRank {
		return nil, &arrayio.DimensionError{Rank: nd, Max: arrayio.MaxRank}
	}
	shape := make([]int, nd)
	for i := range shape {
		dim, err := de.data.ReadInt32()
		if err != nil {
			return nil, fmt.Errorf("reading dimension %d: %w", i, err)
		}
		if dim <= 0 {
			return nil, fmt.Errorf("dimension %d has non-positive extent %d", i, dim)
		}
		shape[i] = int(dim)
	}
	sub = sub.At(de.next)

	// Name.
	ne, err := readElement(sub)
	if err != nil {
		return nil, fmt.Errorf("reading variable name: %w", err)
	}
	if ne.typ != miInt8 {
		return nil, fmt.Errorf("malformed name element (type %d)", ne.typ)
	}
	nameBytes, err := ne.data.ReadBytes(ne.size)
	if err != nil {
		return nil, fmt.Errorf("reading variable name: %w", err)
	}
	sub = sub.At(ne.next)

	v := &variable{
		name:      string(nameBytes),
		isComplex: isComplex,
		next:      el.next,
	}

	if !full {
		// Shape only; the element type is authoritative on the data tag,
		// which an info scan never reads.
		v.info = arrayio.TypeInfo{Dtype: arrayio.TypeUnknown, Shape: shape}
		return v, nil
	}

	// Real part. The element type comes from the data tag, not the class:
	// writers may store a wide class with a narrower data type.
	pe, err := readElement(sub)
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	dtype := elementType(pe.typ, isComplex)
	info, err := arrayio.NewTypeInfo(dtype, shape...)
	if err != nil {
		return nil, err
	}
	v.info = info
	v.re = make([]byte, pe.size)
	if err := pe.data.ReadInto(v.re); err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	sub = sub.At(pe.next)

	if isComplex {
		pi, err := readElement(sub)
		if err != nil {
			return nil, fmt.Errorf("reading imaginary part: %w", err)
		}
		if pi.size != pe.size {
			return nil, fmt.Errorf("imaginary part is %d bytes, real part %d", pi.size, pe.size)
		}
		v.im = make([]byte, pi.size)
		if err := pi.data.ReadInto(v.im); err != nil {
			return nil, fmt.Errorf("reading imaginary part: %w", err)
		}
	}
	return v, nil
}

// Peek returns the description of the first variable in file order.
func (c *Codec) Peek(path string) (arrayio.TypeInfo, error) {
	f, r, err := openFile(path)
	if err != nil {
		return arrayio.TypeInfo{}, err
	}
	defer f.Close()

	v, err := readVariable(r, true)
	if errors.Is(err, io.EOF) {
		return arrayio.TypeInfo{}, &arrayio.UninitializedError{What: "variable in " + path}
	}
	if err != nil {
		return arrayio.TypeInfo{}, err
	}
	return v.info, nil
}

// Load reads the first variable into buf, converting the column-major data
// block (and recombining the complex planes) into the in-memory row-major
// representation.
func (c *Codec) Load(path string, buf *arrayio.Buffer) error {
	f, r, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	v, err := readVariable(r, true)
	if errors.Is(err, io.EOF) {
		return &arrayio.UninitializedError{What: "variable in " + path}
	}
	if err != nil {
		return err
	}
	return assign(v, buf)
}

// LoadVar reads the named variable into buf, scanning entries in file order.
func (c *Codec) LoadVar(path, name string, buf *arrayio.Buffer) error {
	f, r, err := openFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	for {
		v, err := readVariable(r, true)
		if errors.Is(err, io.EOF) {
			return &arrayio.UninitializedError{What: fmt.Sprintf("variable %q in %s", name, path)}
		}
		if err != nil {
			return err
		}
		if v.name == name {
			return assign(v, buf)
		}
		r = r.At(v.next)
	}
}

// assign moves a fully read variable into buf, reallocating if needed.
// Validation happens before the buffer is touched.
func assign(v *variable, buf *arrayio.Buffer) error {
	if v.info.Dtype == arrayio.TypeUnknown {
		return &arrayio.TypeError{Got: arrayio.TypeUnknown, Want: arrayio.TypeFloat32}
	}
	dsize := v.info.Dtype.Size()
	if !buf.Type().Compatible(v.info) {
		buf.Set(v.info)
	}
	if v.isComplex {
		return layout.JoinColToRow(buf.Bytes(), v.re, v.im, v.info.Shape, dsize)
	}
	return layout.ColToRow(buf.Bytes(), v.re, v.info.Shape, dsize)
}

// PeekSet scans variables in file order and returns the description of the
// first one whose name matches the array-set naming convention.
func (c *Codec) PeekSet(path string) (arrayio.TypeInfo, error) {
	f, r, err := openFile(path)
	if err != nil {
		return arrayio.TypeInfo{}, err
	}
	defer f.Close()

	for {
		v, err := readVariable(r, true)
		if errors.Is(err, io.EOF) {
			return arrayio.TypeInfo{}, &arrayio.UninitializedError{What: "array-set variable in " + path}
		}
		if err != nil {
			return arrayio.TypeInfo{}, err
		}
		if setName.MatchString(v.name) {
			return v.info, nil
		}
		r = r.At(v.next)
	}
}

// List returns every array-set variable keyed by id. The first match is
// read in full to resolve the set's element type; the remaining matches are
// scanned info-only and inherit it, assuming every entry of a set shares
// one element type. That assumption is a deliberate speed trade-off, not a
// verified guarantee.
func (c *Codec) List(path string) (map[int]arrayio.VarInfo, error) {
	f, r, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Full reads until the first entry that belongs to the set.
	var first *variable
	for {
		v, err := readVariable(r, true)
		if errors.Is(err, io.EOF) {
			return nil, &arrayio.UninitializedError{What: "array-set variable in " + path}
		}
		if err != nil {
			return nil, err
		}
		r = r.At(v.next)
		if setName.MatchString(v.name) {
			first = v
			break
		}
	}
	if first.info.Dtype == arrayio.TypeUnknown {
		return nil, &arrayio.TypeError{Got: arrayio.TypeUnknown, Want: arrayio.TypeFloat32}
	}

	out := make(map[int]arrayio.VarInfo)
	id, err := setID(first.name)
	if err != nil {
		return nil, err
	}
	out[id] = arrayio.VarInfo{Name: first.name, Info: first.info}
	cache := first.info.Dtype

	// Info-only scans for the rest, inheriting the resolved element type.
	for {
		v, err := readVariable(r, false)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		r = r.At(v.next)
		if !setName.MatchString(v.name) {
			continue
		}
		id, err := setID(v.name)
		if err != nil {
			return nil, err
		}
		info := v.info
		info.Dtype = cache
		out[id] = arrayio.VarInfo{Name: v.name, Info: info}
	}
}

// setID extracts the integer id from a set entry name.
func setID(name string) (int, error) {
	m := setName.FindStringSubmatch(name)
	if m == nil {
		return 0, fmt.Errorf("variable %q does not follow the array-set naming convention", name)
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("variable %q has malformed id: %w", name, err)
	}
	return id, nil
}
