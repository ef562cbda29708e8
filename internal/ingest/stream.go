package ingest

import (
	"errors"
	"fmt"
	"io"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// MaxImportSize caps how much of a source a bulk import reads.
const MaxImportSize int64 = 8 << 20

// ErrTooLarge is returned when a source exceeds MaxImportSize.
var ErrTooLarge = errors.New("import source too large")

// Reader counts bytes in-flight and fails once more than limit have
// been read.
type Reader struct {
	r     io.Reader
	limit int64
	size  int64
}

// NewReader wraps r with size tracking and a cap of limit bytes.
func NewReader(r io.Reader, limit int64) *Reader {
	return &Reader{r: r, limit: limit}
}

func (r *Reader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	r.size += int64(n)
	if r.limit > 0 && r.size > r.limit {
		return n, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, r.limit)
	}
	return
}

// Size returns the total bytes read so far.
func (r *Reader) Size() int64 { return r.size }

// ReadBulk opens src and parses it in the bulk import format.
func ReadBulk(src *Source) (catalog.BulkResult, int64, error) {
	if src.Size > MaxImportSize {
		return catalog.BulkResult{}, 0, fmt.Errorf("%s: %w (%d bytes)", src.Name, ErrTooLarge, src.Size)
	}
	rc, err := src.Open()
	if err != nil {
		return catalog.BulkResult{}, 0, err
	}
	defer rc.Close()

	r := NewReader(rc, MaxImportSize)
	res, err := catalog.ParseBulk(r)
	if err != nil {
		return res, r.Size(), fmt.Errorf("%s: %w", src.Name, err)
	}
	return res, r.Size(), nil
}
