// Package assets bundles the application icon into the binary.
package assets

import (
	_ "embed"
)

//go:embed icon.png
var IconPNG []byte
