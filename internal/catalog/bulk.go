package catalog

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// BulkTemplate is the header line documenting the bulk import field order.
const BulkTemplate = "Title,Director,Actors,Genre,ID Number,Year,Tags"

// bulkFields is the number of columns in a bulk import line.
const bulkFields = 7

// SkippedLine records a bulk import line that did not produce a film.
type SkippedLine struct {
	Line   int
	Text   string
	Reason string
}

// BulkResult is the outcome of parsing a bulk import document.
type BulkResult struct {
	Films   []FilmInput
	Skipped []SkippedLine
}

// ParseBulk reads one film per line in BulkTemplate order. Bad lines are
// collected in Skipped and never stop the rest of the batch.
func ParseBulk(r io.Reader) (BulkResult, error) {
	var res BulkResult
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" || strings.EqualFold(line, BulkTemplate) {
			continue
		}
		in := parseBulkLine(line)
		if err := in.Validate(); err != nil {
			res.Skipped = append(res.Skipped, SkippedLine{Line: n, Text: line, Reason: err.Error()})
			continue
		}
		res.Films = append(res.Films, in)
	}
	if err := sc.Err(); err != nil {
		return res, fmt.Errorf("reading bulk input: %w", err)
	}
	return res, nil
}

// parseBulkLine splits a line into fields. Quoted fields may contain
// commas; a line the CSV reader rejects falls back to a plain split.
func parseBulkLine(line string) FilmInput {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	fields, err := cr.Read()
	if err != nil {
		fields = strings.Split(line, ",")
	}
	for len(fields) < bulkFields {
		fields = append(fields, "")
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return FilmInput{
		Title:    fields[0],
		Director: fields[1],
		Actors:   fields[2],
		Genre:    fields[3],
		IDNumber: fields[4],
		Year:     fields[5],
		Tags:     fields[6],
	}
}
