// Package csvio reads and writes the CSV extracts exchanged with operators.
package csvio

import (
	"cptask-tools/internal/models"
	"cptask-tools/internal/record"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Columns returns the sorted union of keys across all documents
func Columns(docs []record.Document) []string {
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, f := range doc {
			seen[f.Key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

// WriteDocuments writes heterogeneous documents as CSV.
// The header is computed from all documents before the first row is written;
// a document without a given column gets an empty field.
func WriteDocuments(w io.Writer, docs []record.Document) ([]string, error) {
	columns := Columns(docs)

	rw, err := NewRowWriter(w, columns)
	if err != nil {
		return nil, err
	}

	row := make([]string, len(columns))
	for _, doc := range docs {
		values := make(map[string]record.Value, len(doc))
		for _, f := range doc {
			values[f.Key] = f.Value
		}
		for i, col := range columns {
			if v, ok := values[col]; ok {
				row[i] = v.String()
			} else {
				row[i] = ""
			}
		}
		if err := rw.Write(row); err != nil {
			return nil, err
		}
	}

	return columns, rw.Flush()
}

// WriteRows writes rows under a fixed header
func WriteRows(w io.Writer, header []string, rows [][]string) error {
	rw, err := NewRowWriter(w, header)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := rw.Write(row); err != nil {
			return err
		}
	}
	return rw.Flush()
}

// RowWriter streams rows under a fixed header
type RowWriter struct {
	cw    *csv.Writer
	width int
	count int
}

// NewRowWriter writes the header row and returns a writer for data rows
func NewRowWriter(w io.Writer, header []string) (*RowWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return &RowWriter{cw: cw, width: len(header)}, nil
}

// Write writes one data row; it must have exactly one field per column
func (rw *RowWriter) Write(row []string) error {
	if len(row) != rw.width {
		return fmt.Errorf("row has %d fields, header has %d", len(row), rw.width)
	}
	if err := rw.cw.Write(row); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rw.count+1, err)
	}
	rw.count++
	return nil
}

// Count returns the number of data rows written
func (rw *RowWriter) Count() int { return rw.count }

// Flush flushes buffered rows and reports any write error
func (rw *RowWriter) Flush() error {
	rw.cw.Flush()
	return rw.cw.Error()
}

// CreateFile creates path, making its parent directory when needed
func CreateFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, models.IOError("create directory", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, models.IOError("create", path, err)
	}
	return f, nil
}

// WriteDocumentsFile writes docs to path with WriteDocuments
func WriteDocumentsFile(path string, docs []record.Document) (columns []string, err error) {
	f, err := CreateFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = models.IOError("close", path, cerr)
		}
	}()

	columns, err = WriteDocuments(f, docs)
	if err != nil {
		return nil, models.IOError("write", path, err)
	}
	return columns, nil
}

// WriteRowsFile writes rows to path with WriteRows
func WriteRowsFile(path string, header []string, rows [][]string) (err error) {
	f, err := CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = models.IOError("close", path, cerr)
		}
	}()

	if err := WriteRows(f, header, rows); err != nil {
		return models.IOError("write", path, err)
	}
	return nil
}
