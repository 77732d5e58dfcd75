package imageio

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

const DecoderStd = "std"

// StdDecoder decodes any format registered with the image package
type StdDecoder struct{}

func (StdDecoder) Name() string { return DecoderStd }

func (StdDecoder) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
