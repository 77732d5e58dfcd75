// internal/gui/center_panel.go
// QR display area: the generated code, or a bordered placeholder
package gui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"qr-code-generator/internal/core"
)

type CenterPanel struct {
	container *fyne.Container

	border      *canvas.Rectangle
	placeholder *canvas.Text
	qrImage     *canvas.Image
}

func NewCenterPanel(side float32) *CenterPanel {
	panel := &CenterPanel{}
	panel.initializeUI(fyne.NewSize(side, side))
	return panel
}

func (cp *CenterPanel) initializeUI(size fyne.Size) {
	cp.border = canvas.NewRectangle(color.Transparent)
	cp.border.StrokeColor = placeholderGray
	cp.border.StrokeWidth = 1
	cp.border.SetMinSize(size)

	cp.placeholder = canvas.NewText(core.PlaceholderText, placeholderGray)
	cp.placeholder.Alignment = fyne.TextAlignCenter
	cp.placeholder.TextSize = 14

	cp.qrImage = canvas.NewImageFromImage(nil)
	cp.qrImage.FillMode = canvas.ImageFillContain
	cp.qrImage.ScaleMode = canvas.ImageScalePixels
	cp.qrImage.SetMinSize(size)
	cp.qrImage.Hide()

	cp.container = container.NewStack(cp.border, container.NewCenter(cp.placeholder), cp.qrImage)
}

// UpdateImage swaps in a new QR image; the previous one is dropped
func (cp *CenterPanel) UpdateImage(img image.Image) {
	if img == nil {
		cp.Reset()
		return
	}
	cp.qrImage.Image = img
	cp.border.Hide()
	cp.placeholder.Hide()
	cp.qrImage.Show()
	cp.qrImage.Refresh()
}

func (cp *CenterPanel) Reset() {
	cp.qrImage.Image = nil
	cp.qrImage.Hide()
	cp.border.Show()
	cp.placeholder.Show()
	cp.container.Refresh()
}

func (cp *CenterPanel) HasImage() bool {
	return cp.qrImage.Visible() && cp.qrImage.Image != nil
}

func (cp *CenterPanel) Image() image.Image {
	return cp.qrImage.Image
}

func (cp *CenterPanel) GetContainer() fyne.CanvasObject {
	return container.NewCenter(cp.container)
}
