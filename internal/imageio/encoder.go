package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"
)

const EncoderStd = "std"

// Encoder writes an image to a file, picking the format from the extension
type Encoder interface {
	Name() string
	// Extensions lists the lower-case file extensions Write accepts
	Extensions() []string
	Write(path string, img image.Image) error
}

// StdEncoder writes PNG and JPEG without cgo
type StdEncoder struct{}

func (StdEncoder) Name() string { return EncoderStd }

func (StdEncoder) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

func (StdEncoder) Write(path string, img image.Image) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(getFileExtension(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100})
	default:
		err = png.Encode(&buf, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
