// QR generation task: text in, PNG bytes out
package qr

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyInput     = errors.New("nothing to encode: input is empty")
	ErrContentTooLong = errors.New("content too long to encode")
)

// Encoder is what the session needs from a generator
type Encoder interface {
	Encode(text string) ([]byte, error)
}

// Generator encodes text with one backend at fixed params
type Generator struct {
	backend Backend
	params  Params
	logger  logrus.FieldLogger
}

func NewGenerator(backendName string, params Params, logger logrus.FieldLogger) (*Generator, error) {
	backend, err := GetBackend(backendName)
	if err != nil {
		return nil, err
	}
	if params.Size <= 0 {
		return nil, fmt.Errorf("invalid qr size: %d", params.Size)
	}
	return &Generator{
		backend: backend,
		params:  params,
		logger:  logger.WithField("backend", backend.Name()),
	}, nil
}

func (g *Generator) Params() Params {
	return g.params
}

func (g *Generator) BackendName() string {
	return g.backend.Name()
}

// Encode is safe for concurrent use. The same text always yields the same bytes.
func (g *Generator) Encode(text string) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s encoder: %v", g.backend.Name(), r)
			g.logger.WithField("panic", r).Error("QR encoder panicked")
		}
	}()

	if text == "" {
		return nil, ErrEmptyInput
	}

	start := time.Now()
	data, err = g.backend.EncodePNG(text, g.params)
	if err != nil {
		if errors.Is(err, ErrContentTooLong) {
			return nil, fmt.Errorf("%w (%d bytes at level %s)", err, len(text), g.params.Level)
		}
		return nil, fmt.Errorf("%s backend: %w", g.backend.Name(), err)
	}

	g.logger.WithFields(logrus.Fields{
		"input_bytes": len(text),
		"png_size":    humanize.Bytes(uint64(len(data))),
		"level":       g.params.Level.String(),
		"elapsed":     time.Since(start),
	}).Debug("QR code encoded")

	return data, nil
}
