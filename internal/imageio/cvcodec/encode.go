package cvcodec

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Encoder writes through gocv.IMWrite. OpenCV picks the format from the
// file extension.
type Encoder struct{}

func (Encoder) Name() string { return Name }

func (Encoder) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}
}

func (Encoder) Write(path string, img image.Image) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in opencv write: %v", r)
		}
	}()

	rgba, err := gocv.ImageToMatRGBA(img)
	if err != nil {
		return fmt.Errorf("converting image to mat: %w", err)
	}
	defer rgba.Close()

	// JPEG and BMP writers want 3 channels
	bgr := gocv.NewMat()
	defer bgr.Close()
	if err := gocv.CvtColor(rgba, &bgr, gocv.ColorBGRAToBGR); err != nil {
		return fmt.Errorf("converting to BGR: %w", err)
	}

	if !gocv.IMWrite(path, bgr) {
		return fmt.Errorf("imwrite failed: %s", path)
	}
	return nil
}
