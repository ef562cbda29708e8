package barcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

const defaultTimeout = 10 * time.Second

// HTTPService queries a JSON endpoint at GET {endpoint}/{code}. A 404
// means not found; a 200 body is decoded as a FilmInput.
type HTTPService struct {
	endpoint string
	http     *http.Client
}

// NewHTTPService creates a service for endpoint. Every lookup is bounded
// by timeout, or 10s when timeout is not positive.
func NewHTTPService(endpoint string, timeout time.Duration) *HTTPService {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPService{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// Lookup fetches the film for code.
func (s *HTTPService) Lookup(ctx context.Context, code string) (catalog.FilmInput, error) {
	code = strings.TrimSpace(code)
	if !ValidCode(code) {
		return catalog.FilmInput{}, ErrInvalidCode
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/"+url.PathEscape(code), nil)
	if err != nil {
		return catalog.FilmInput{}, &LookupError{Code: code, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return catalog.FilmInput{}, &LookupError{Code: code, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return catalog.FilmInput{}, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return catalog.FilmInput{}, &LookupError{
			Code: code,
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var in catalog.FilmInput
	if err := json.NewDecoder(resp.Body).Decode(&in); err != nil {
		return catalog.FilmInput{}, &LookupError{Code: code, Err: fmt.Errorf("decoding response: %w", err)}
	}
	if strings.TrimSpace(in.Title) == "" {
		return catalog.FilmInput{}, ErrNotFound
	}
	return in, nil
}
