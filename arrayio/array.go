package arrayio

import "fmt"

// Array is a lazy-loading handle to a typed multi-dimensional array. It is
// always in exactly one of two states:
//
//   - Loaded: the handle owns a Buffer with the data in memory and has no
//     associated file.
//   - External: the handle holds a file path plus the codec resolved for it,
//     and no in-memory data.
//
// The cached TypeInfo is valid in both states, so element type, rank and
// shape can be inspected without ever touching the file.
//
// Handles are not safe for concurrent mutation; callers that share a handle
// across goroutines must serialize Load/Save/Set themselves. Distinct
// handles over the same path are independent.
type Array struct {
	info  TypeInfo
	buf   *Buffer // non-nil iff loaded
	path  string  // set iff external
	codec Codec   // set iff external
}

// NewArray creates a Loaded handle that takes ownership of buf. The caller
// must not use buf afterwards.
func NewArray(buf *Buffer) (*Array, error) {
	if buf == nil {
		return nil, &UninitializedError{What: "array data buffer"}
	}
	return &Array{info: buf.Type(), buf: buf}, nil
}

// Open creates an External handle for an existing file. The codec is
// resolved through the registry and its Peek populates the cached TypeInfo;
// no array data is read.
func Open(path string, reg *Registry) (*Array, error) {
	codec, err := reg.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := codec.Peek(path)
	if err != nil {
		return nil, fmt.Errorf("peeking %s: %w", path, err)
	}
	return &Array{info: info, path: path, codec: codec}, nil
}

// Loaded reports whether the handle currently owns in-memory data.
func (a *Array) Loaded() bool {
	return a.buf != nil
}

// Type returns the cached array description.
func (a *Array) Type() TypeInfo {
	return a.info
}

// ElementType returns the cached element type without forcing a load.
func (a *Array) ElementType() ElementType {
	return a.info.Dtype
}

// NDim returns the cached rank without forcing a load.
func (a *Array) NDim() int {
	return a.info.NDim()
}

// Shape returns a copy of the cached shape without forcing a load.
func (a *Array) Shape() []int {
	return append([]int(nil), a.info.Shape...)
}

// Path returns the bound file path, or "" when the handle is Loaded.
func (a *Array) Path() string {
	return a.path
}

// Load reads the file into memory through the bound codec and transitions
// the handle to Loaded, forgetting the path and codec. It is a no-op if the
// handle is already Loaded. On failure the handle keeps its pre-call state.
func (a *Array) Load() error {
	if a.buf != nil {
		return nil
	}
	buf := NewBuffer(a.info)
	if err := a.codec.Load(a.path, buf); err != nil {
		return fmt.Errorf("loading %s: %w", a.path, err)
	}
	a.buf = buf
	a.info = buf.Type()
	a.path = ""
	a.codec = nil
	return nil
}

// Save writes the array to path in the format resolved for its extension.
//
// On a Loaded handle the data is written out and then released: the handle
// becomes External, bound to the new path. Saving is also a move to disk;
// the codec layer stays the single source of truth for the bytes.
//
// On an External handle the old file is read through its codec and rewritten
// at the new path, and the handle rebinds: a format or location move that
// never retains the data in memory.
//
// Resolution and reads happen before anything is written, so a failed save
// leaves the handle in its pre-call state.
func (a *Array) Save(reg *Registry, path string) error {
	codec, err := reg.Resolve(path)
	if err != nil {
		return err
	}

	if a.buf != nil {
		if err := codec.Save(path, a.buf); err != nil {
			return fmt.Errorf("saving %s: %w", path, err)
		}
		a.buf = nil
		a.path = path
		a.codec = codec
		return nil
	}

	tmp := NewBuffer(a.info)
	if err := a.codec.Load(a.path, tmp); err != nil {
		return fmt.Errorf("loading %s: %w", a.path, err)
	}
	if err := codec.Save(path, tmp); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	a.info = tmp.Type()
	a.path = path
	a.codec = codec
	return nil
}

// Set installs new in-memory content, taking ownership of buf. The handle
// becomes Loaded; an External handle drops its path and codec binding.
func (a *Array) Set(buf *Buffer) error {
	if buf == nil {
		return &UninitializedError{What: "array data buffer"}
	}
	a.buf = buf
	a.info = buf.Type()
	a.path = ""
	a.codec = nil
	return nil
}

// Clone duplicates the handle: a Loaded handle gets an independent copy of
// the data, an External handle gets an independent binding to the same path
// and codec. No buffer is ever shared between two handles.
func (a *Array) Clone() *Array {
	out := &Array{
		info:  a.info,
		path:  a.path,
		codec: a.codec,
	}
	if a.buf != nil {
		out.buf = a.buf.Clone()
	}
	return out
}
