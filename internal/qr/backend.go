// Encoder backends producing PNG bytes from text
package qr

import (
	"fmt"
	"sort"
)

// Params fixes the error-correction level and the output size in pixels
type Params struct {
	Level Level
	Size  int
}

// DefaultParams matches the desktop window's 256x256 display area
func DefaultParams() Params {
	return Params{Level: Low, Size: 256}
}

// Backend turns text into an encoded PNG for the given params. Errors from
// the symbol encoding step wrap ErrContentTooLong; image errors do not.
type Backend interface {
	Name() string
	EncodePNG(text string, params Params) ([]byte, error)
}

func capacityError(err error) error {
	return fmt.Errorf("%w: %v", ErrContentTooLong, err)
}

var backends = make(map[string]Backend)

func Register(backend Backend) {
	backends[backend.Name()] = backend
}

func GetBackend(name string) (Backend, error) {
	backend, exists := backends[name]
	if !exists {
		return nil, fmt.Errorf("qr backend not found: %s", name)
	}
	return backend, nil
}

func IsValidBackend(name string) bool {
	_, exists := backends[name]
	return exists
}

func BackendNames() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(skip2Backend{})
	Register(rscBackend{})
}
