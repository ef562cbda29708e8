// Package barcode looks up film details by UPC/EAN code to prefill a new
// record.
package barcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/config"
)

var (
	// ErrNotFound means the service answered and knows no film for the code.
	ErrNotFound = errors.New("no film found for barcode")
	// ErrInvalidCode means the code is not 8 to 14 digits.
	ErrInvalidCode = errors.New("barcode must be 8 to 14 digits")
)

// LookupError is a failure to get an answer at all: transport errors,
// timeouts, unexpected responses.
type LookupError struct {
	Code string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("looking up barcode %s: %v", e.Code, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

// Service resolves a barcode to film details. Implementations return
// ErrNotFound for a definite miss and a *LookupError for anything else.
type Service interface {
	Lookup(ctx context.Context, code string) (catalog.FilmInput, error)
}

// ValidCode reports whether code looks like a UPC-A, UPC-E, EAN-8 or
// EAN-13 (8 to 14 digits, surrounding space ignored).
func ValidCode(code string) bool {
	code = strings.TrimSpace(code)
	if len(code) < 8 || len(code) > 14 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// New returns the service configured in cfg: an HTTP lookup when an
// endpoint is set, otherwise the built-in table.
func New(cfg config.BarcodeConfig) Service {
	if cfg.Endpoint == "" {
		return NewStatic(nil)
	}
	return NewHTTPService(cfg.Endpoint, cfg.Timeout)
}
