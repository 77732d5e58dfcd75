package qr

import (
	"fmt"
	"strings"
)

// Level is the QR error-correction level
type Level int

const (
	Low Level = iota
	Medium
	Quartile
	High
)

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case Quartile:
		return "quartile"
	case High:
		return "high"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel accepts the long names and the single-letter L/M/Q/H forms
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "l":
		return Low, nil
	case "medium", "m":
		return Medium, nil
	case "quartile", "q":
		return Quartile, nil
	case "high", "h":
		return High, nil
	}
	return Low, fmt.Errorf("unknown error correction level: %q", s)
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
