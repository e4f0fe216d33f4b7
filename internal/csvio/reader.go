package csvio

import (
	"bufio"
	"bytes"
	"cptask-tools/internal/models"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row keyed by header name
type Row map[string]string

// Get returns the trimmed value of key, or "" when the column is absent
func (r Row) Get(key string) string {
	return r[key]
}

// Reader reads rows keyed by the header row.
// Fields are trimmed; short rows are padded with empty values.
type Reader struct {
	cr     *csv.Reader
	header []string
}

// NewReader reads the header row from r, skipping a leading UTF-8 BOM
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	return &Reader{cr: cr, header: header}, nil
}

// Header returns the trimmed column names
func (r *Reader) Header() []string { return r.header }

// HasColumn reports whether the header contains name
func (r *Reader) HasColumn(name string) bool {
	for _, h := range r.header {
		if h == name {
			return true
		}
	}
	return false
}

// Next returns the next row, or io.EOF after the last one
func (r *Reader) Next() (Row, error) {
	rec, err := r.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	row := make(Row, len(r.header))
	for i, name := range r.header {
		if i < len(rec) {
			row[name] = strings.TrimSpace(rec[i])
		} else {
			row[name] = ""
		}
	}
	return row, nil
}

// ReadRows reads every row from r
func ReadRows(r io.Reader) ([]Row, error) {
	reader, err := NewReader(r)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for {
		row, err := reader.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
}

// ReadFile reads every row of the CSV file at path
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.IOError("open", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, models.IOError("read", path, err)
	}
	return rows, nil
}

// ReadColumn returns the non-empty values of column in file order.
// Rows where the column is empty or absent are skipped.
func ReadColumn(path, column string) ([]string, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if v := row.Get(column); v != "" {
			values = append(values, v)
		}
	}
	return values, nil
}
