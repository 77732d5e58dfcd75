package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

var (
	lightGray       = color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	placeholderGray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	errorRed        = color.NRGBA{R: 200, G: 40, B: 40, A: 255}
)

// whiteTheme is the default light theme on a white background, with
// light gray inputs and buttons
type whiteTheme struct {
	base fyne.Theme
}

func newWhiteTheme() fyne.Theme {
	return &whiteTheme{base: theme.DefaultTheme()}
}

func (t *whiteTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return color.White
	case theme.ColorNameInputBackground, theme.ColorNameButton:
		return lightGray
	case theme.ColorNamePlaceHolder:
		return placeholderGray
	case theme.ColorNameError:
		return errorRed
	}
	return t.base.Color(name, theme.VariantLight)
}

func (t *whiteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *whiteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

func (t *whiteTheme) Size(name fyne.ThemeSizeName) float32 {
	return t.base.Size(name)
}
