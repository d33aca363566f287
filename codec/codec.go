// Package codec wires the built-in format codecs into a ready-to-use
// registry. Importers that only need the standard formats start here;
// callers with custom codecs build an arrayio.Registry directly.
package codec

import (
	"go.uber.org/zap"

	"github.com/robert-malhotra/go-arrayio/arrayio"
	"github.com/robert-malhotra/go-arrayio/codec/flatbin"
	"github.com/robert-malhotra/go-arrayio/codec/matfile"
)

// NewRegistry returns a registry with the flat binary and mat-file codecs
// registered. A nil logger disables registry logging. Options are forwarded
// to the mat-file codec.
func NewRegistry(log *zap.Logger, matOpts ...matfile.Option) (*arrayio.Registry, error) {
	reg := arrayio.NewRegistry(arrayio.WithLogger(log))
	for _, c := range []arrayio.Codec{flatbin.New(), matfile.New(matOpts...)} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
