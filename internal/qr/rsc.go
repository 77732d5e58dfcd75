package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	rscqr "rsc.io/qr"
)

const BackendRSC = "rsc"

// quietZone is the blank border, in modules, the QR standard asks for
const quietZone = 4

type rscBackend struct{}

func (rscBackend) Name() string { return BackendRSC }

func (rscBackend) EncodePNG(text string, params Params) ([]byte, error) {
	code, err := rscqr.Encode(text, rscLevel(params.Level))
	if err != nil {
		return nil, capacityError(err)
	}
	if code.Size == 0 {
		return nil, fmt.Errorf("empty QR code")
	}

	img := rasterize(code, params.Size)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// rasterize centres the module grid on a size x size canvas. A canvas too
// small for one pixel per module grows to the minimum that fits.
func rasterize(code *rscqr.Code, size int) *image.Paletted {
	modules := code.Size + 2*quietZone

	scale := size / modules
	if scale < 1 {
		scale = 1
	}
	out := size
	if modules*scale > out {
		out = modules * scale
	}
	offset := (out-modules*scale)/2 + quietZone*scale

	img := image.NewPaletted(image.Rect(0, 0, out, out), color.Palette{color.White, color.Black})
	for y := 0; y < code.Size; y++ {
		for x := 0; x < code.Size; x++ {
			if !code.Black(x, y) {
				continue
			}
			px, py := offset+x*scale, offset+y*scale
			for dy := 0; dy < scale; dy++ {
				row := img.Pix[(py+dy)*img.Stride:]
				for dx := 0; dx < scale; dx++ {
					row[px+dx] = 1
				}
			}
		}
	}
	return img
}

func rscLevel(l Level) rscqr.Level {
	switch l {
	case Medium:
		return rscqr.M
	case Quartile:
		return rscqr.Q
	case High:
		return rscqr.H
	default:
		return rscqr.L
	}
}
