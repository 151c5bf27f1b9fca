package csvfeed

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/fantasy-projections/internal/domain/source"
)

// Table is a parsed CSV body. Header names keep their upstream spelling.
type Table struct {
	Header  []string
	Rows    []source.RawRecord
	Skipped []RowError
}

// RowError is a data row the CSV reader rejected.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("csv line %d: %v", e.Line, e.Err)
}

// Records returns the good rows followed by a malformed placeholder for
// every skipped row.
func (t Table) Records() []source.RawRecord {
	out := make([]source.RawRecord, 0, len(t.Rows)+len(t.Skipped))
	out = append(out, t.Rows...)
	for _, skipped := range t.Skipped {
		out = append(out, source.MalformedRecord(skipped.Error()))
	}
	return out
}

func (t Table) HasColumn(name string) bool {
	for _, h := range t.Header {
		if h == name {
			return true
		}
	}
	return false
}

func (t Table) HasAnyColumn(names ...string) bool {
	for _, name := range names {
		if t.HasColumn(name) {
			return true
		}
	}
	return false
}

// MissingColumns returns the names absent from the header.
func (t Table) MissingColumns(names ...string) []string {
	var missing []string
	for _, name := range names {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Parse reads a CSV body with a header row. Empty cells are dropped from
// each record so they surface as unset downstream. A data row the reader
// rejects lands in Skipped and parsing goes on; only an empty body or an
// unreadable header is marked source.ErrUnavailable.
func Parse(body []byte, keep func(source.RawRecord) bool) (Table, error) {
	body = bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(body)) == 0 {
		return Table{}, crerr.Mark(errors.New("empty csv body"), source.ErrUnavailable)
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return Table{}, crerr.Mark(fmt.Errorf("read csv header: %w", err), source.ErrUnavailable)
	}
	table := Table{Header: make([]string, len(header))}
	for i, h := range header {
		table.Header[i] = strings.TrimSpace(h)
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			table.Skipped = append(table.Skipped, RowError{Line: parseErr.StartLine, Err: parseErr.Err})
			continue
		}
		if err != nil {
			return Table{}, crerr.Mark(fmt.Errorf("read csv line %d: %w", line, err), source.ErrUnavailable)
		}

		rec := make(source.RawRecord, len(table.Header))
		for i, cell := range row {
			if i >= len(table.Header) {
				break
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			rec[table.Header[i]] = cell
		}
		if len(rec) == 0 {
			continue
		}
		if keep != nil && !keep(rec) {
			continue
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}
