package arrayio

import (
	"fmt"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Registry maps file-name extensions to codecs. A Registry is constructed
// explicitly and passed to whatever needs path resolution; there is no
// process-wide instance. Registration is expected to complete at startup,
// before any concurrent resolution.
type Registry struct {
	codecs map[string]Codec
	log    *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger attaches a logger to the registry. The default is a no-op
// logger.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty codec registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		codecs: make(map[string]Codec),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register indexes the codec under each of its declared extensions. An
// extension already claimed by another codec is rejected: collisions are an
// error, not a silent shadowing.
func (r *Registry) Register(c Codec) error {
	exts := c.Extensions()
	if len(exts) == 0 {
		return fmt.Errorf("codec %q declares no extensions", c.Name())
	}
	for _, ext := range exts {
		if len(ext) < 2 || ext[0] != '.' {
			return fmt.Errorf("codec %q declares malformed extension %q", c.Name(), ext)
		}
		if prev, ok := r.codecs[ext]; ok {
			return fmt.Errorf("extension %q already registered to codec %q", ext, prev.Name())
		}
	}
	for _, ext := range exts {
		r.codecs[ext] = c
	}
	r.log.Debug("registered codec",
		zap.String("codec", c.Name()),
		zap.Strings("extensions", exts))
	return nil
}

// Resolve returns the codec registered for the path's extension. The match
// is case-sensitive and includes the leading dot.
func (r *Registry) Resolve(path string) (Codec, error) {
	ext := filepath.Ext(path)
	c, ok := r.codecs[ext]
	if !ok {
		r.log.Debug("no codec for extension", zap.String("path", path), zap.String("extension", ext))
		return nil, &UninitializedError{What: fmt.Sprintf("codec for extension %q", ext)}
	}
	return c, nil
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.codecs))
	for ext := range r.codecs {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
