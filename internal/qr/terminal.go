package qr

import (
	"fmt"
	"io"

	"github.com/mdp/qrterminal/v3"
	rscqr "rsc.io/qr"
)

// RenderTerminal prints text as a half-block QR code for headless use
func RenderTerminal(w io.Writer, text string, level Level) error {
	if text == "" {
		return ErrEmptyInput
	}
	// qrterminal ignores encode errors, so check capacity up front
	if _, err := rscqr.Encode(text, rscLevel(level)); err != nil {
		return fmt.Errorf("%w (%d bytes at level %s)", capacityError(err), len(text), level)
	}
	qrterminal.GenerateHalfBlock(text, rscLevel(level), w)
	return nil
}
