// Image decoding into display-ready textures, plus file export
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/sirupsen/logrus"
)

// TextureName tags every decoded QR image
const TextureName = "qr-code"

var ErrDecode = errors.New("failed to decode image")

// Decoder turns encoded image bytes into pixels
type Decoder interface {
	Name() string
	Decode(data []byte) (image.Image, error)
}

// Texture is a decoded, 4-channel non-premultiplied image ready for display
type Texture struct {
	Name   string
	Image  *image.NRGBA
	Width  int
	Height int
}

// ImageLoader handles image decoding and file operations
type ImageLoader struct {
	decoder Decoder
	encoder Encoder
	logger  logrus.FieldLogger
}

// NewImageLoader falls back to the std codecs for nil arguments
func NewImageLoader(decoder Decoder, encoder Encoder, logger logrus.FieldLogger) *ImageLoader {
	if decoder == nil {
		decoder = StdDecoder{}
	}
	if encoder == nil {
		encoder = StdEncoder{}
	}
	return &ImageLoader{
		decoder: decoder,
		encoder: encoder,
		logger: logger.WithFields(logrus.Fields{
			"decoder": decoder.Name(),
			"encoder": encoder.Name(),
		}),
	}
}

// LoadTexture decodes data and converts it to NRGBA. Failures are returned,
// never fatal.
func (il *ImageLoader) LoadTexture(data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no data", ErrDecode)
	}

	img, err := il.decoder.Decode(data)
	if err != nil {
		il.logger.WithError(err).WithField("bytes", len(data)).Error("Image decode failed")
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("%w: invalid image dimensions: %dx%d", ErrDecode, bounds.Dx(), bounds.Dy())
	}

	rgba := ToNRGBA(img)
	il.logger.WithFields(logrus.Fields{
		"width":  rgba.Bounds().Dx(),
		"height": rgba.Bounds().Dy(),
	}).Debug("Texture loaded")

	return &Texture{
		Name:   TextureName,
		Image:  rgba,
		Width:  rgba.Bounds().Dx(),
		Height: rgba.Bounds().Dy(),
	}, nil
}

// LoadIcon validates an embedded icon. A broken icon yields nil so the
// caller can run without one.
func (il *ImageLoader) LoadIcon(data []byte) image.Image {
	img, err := il.decoder.Decode(data)
	if err != nil {
		il.logger.WithError(err).Warn("Icon could not be decoded, continuing without icon")
		return nil
	}
	return img
}

func (il *ImageLoader) SaveTexture(tex *Texture, filepath string) error {
	il.logger.WithField("filepath", filepath).Debug("Saving image")

	if tex == nil || tex.Image == nil {
		return fmt.Errorf("cannot save empty image")
	}

	if !il.isSupportedImageFormat(filepath) {
		return fmt.Errorf("unsupported image format: %s (supported: %s)",
			filepath, strings.Join(il.GetSupportedFormats(), ", "))
	}

	if err := il.encoder.Write(filepath, tex.Image); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    tex.Width,
		"height":   tex.Height,
	}).Info("Image saved successfully")

	return nil
}

// GetSupportedFormats lists the extensions SaveTexture can write
func (il *ImageLoader) GetSupportedFormats() []string {
	return il.encoder.Extensions()
}

// ToNRGBA returns img as an NRGBA anchored at 0,0, converting when needed
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

func (il *ImageLoader) isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))
	for _, format := range il.GetSupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}
