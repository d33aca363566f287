package arrayio

// Codec reads and writes arrays for one on-disk format. Implementations are
// stateless and immutable once constructed; the same instance may serve any
// number of files.
type Codec interface {
	// Peek opens the file and reads just enough structure to describe the
	// stored array. It must not allocate or populate array data.
	Peek(path string) (TypeInfo, error)

	// Load fills buf with the file's data in row-major order, reallocating
	// via buf.Set if the buffer's current description is incompatible with
	// the file's. On success the buffer's TypeInfo matches the file's.
	Load(path string, buf *Buffer) error

	// Save writes the buffer's data to the file in the format's on-disk
	// order, tagged with the element type and shape.
	Save(path string, buf *Buffer) error

	// Name returns the codec's identifying name.
	Name() string

	// Extensions returns the file-name extensions this codec handles. The
	// extensions include the initial ".". Case matters, so ".mat" and
	// ".MAT" are different extensions; a codec is responsible for listing
	// every variation it wants to cover.
	Extensions() []string
}

// VarInfo describes one named variable inside a variable-set file.
type VarInfo struct {
	Name string
	Info TypeInfo
}

// SetCodec is implemented by codecs whose format can hold several named
// arrays per file. Entries that belong to the set follow the naming
// convention "array_<id>" with a non-negative integer id; entries with other
// names are skipped.
type SetCodec interface {
	Codec

	// PeekSet scans entries in file order and returns the description of
	// the first one matching the set naming convention. It fails with
	// UninitializedError if no entry matches.
	PeekSet(path string) (TypeInfo, error)

	// List scans all entries matching the naming convention, keyed by id.
	// The element type is resolved by fully reading the first matching
	// entry; subsequent entries are scanned info-only and inherit that
	// type, on the assumption that every entry of a set shares one element
	// type. This is a deliberate speed trade-off, not a verified guarantee.
	List(path string) (map[int]VarInfo, error)
}
