package arrayio

// Buffer owns a raw memory block holding one array's data in row-major,
// little-endian order, together with the TypeInfo describing it. A Buffer is
// never shared between two owners; Clone produces an independent copy.
type Buffer struct {
	info TypeInfo
	data []byte
}

// NewBuffer allocates a buffer sized to the given description.
func NewBuffer(info TypeInfo) *Buffer {
	return &Buffer{
		info: info,
		data: make([]byte, info.BufferSize()),
	}
}

// Type returns the buffer's current description.
func (b *Buffer) Type() TypeInfo {
	return b.info
}

// Bytes returns the underlying storage. Callers must not read or write past
// Type().BufferSize() bytes.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Set points the buffer at a new description. If the new description is
// compatible with the current one this is a no-op and existing contents are
// preserved; otherwise the storage is reallocated and zeroed.
func (b *Buffer) Set(info TypeInfo) {
	if b.info.Compatible(info) {
		return
	}
	b.info = info
	b.data = make([]byte, info.BufferSize())
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		info: b.info,
		data: make([]byte, len(b.data)),
	}
	copy(out.data, b.data)
	return out
}
