// OpenCV-backed decoder and writer for the image loader
package cvcodec

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

const Name = "opencv"

// Decoder decodes through gocv. Output is 3-channel BGR internally and is
// converted to a Go image before it leaves the package, so no Mat escapes.
type Decoder struct{}

func (Decoder) Name() string { return Name }

func (Decoder) Decode(data []byte) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in opencv decode: %v", r)
		}
	}()

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("imdecode: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}
	if mat.Cols() <= 0 || mat.Rows() <= 0 || mat.Cols() > 65536 || mat.Rows() > 65536 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", mat.Cols(), mat.Rows())
	}

	return mat.ToImage()
}
