package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const BackendSkip2 = "skip2"

type skip2Backend struct{}

func (skip2Backend) Name() string { return BackendSkip2 }

func (skip2Backend) EncodePNG(text string, params Params) ([]byte, error) {
	code, err := qrcode.New(text, skip2Level(params.Level))
	if err != nil {
		return nil, capacityError(err)
	}
	data, err := code.PNG(params.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return data, nil
}

// skip2 has no quartile level name; its four levels line up with L/M/Q/H.
func skip2Level(l Level) qrcode.RecoveryLevel {
	switch l {
	case Medium:
		return qrcode.Medium
	case Quartile:
		return qrcode.High
	case High:
		return qrcode.Highest
	default:
		return qrcode.Low
	}
}
