package io

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// CSV column names. Matching is case-insensitive.
const (
	ColumnName     = "name"
	ColumnDate     = "date"
	ColumnPosition = "position"
)

// ReadCSV decodes records from CSV with a header row. The name and date
// columns are required; position is optional and other columns are
// ignored. Short rows leave the missing fields empty.
func ReadCSV(r io.Reader) ([]timeline.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "empty CSV: expected a header with %q and %q columns", ColumnName, ColumnDate)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse CSV header")
	}

	cols := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	var missing []string
	for _, c := range []string{ColumnName, ColumnDate} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidSchema, "CSV is missing required columns: %s", strings.Join(missing, ", "))
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []timeline.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse CSV")
		}
		records = append(records, timeline.Record{
			Name: field(row, ColumnName),
			Date: field(row, ColumnDate),
			Lane: field(row, ColumnPosition),
		})
	}
	return records, nil
}

// WriteCSV encodes records as CSV with a name,date,position header.
func WriteCSV(w io.Writer, records []timeline.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnName, ColumnDate, ColumnPosition}); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Name, r.Date, r.Lane}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
