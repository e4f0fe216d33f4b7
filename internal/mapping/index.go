// Package mapping builds the in-memory company_id -> short_name index and
// joins identifier lists against it.
package mapping

import (
	"cptask-tools/internal/csvio"
	"cptask-tools/internal/models"
	"io"
	"iter"
	"os"
	"strings"
)

// Column names of a mapping export
const (
	ColumnCompanyID = "company_id"
	ColumnShortName = "short_name"
)

// Index is an identifier -> short name lookup table. It is not modified
// after Build returns.
type Index struct {
	names      map[string]string
	overwrites int
}

// Build consumes entries in order. Ids and names are trimmed, entries with
// an empty id are skipped, and a later entry for the same id replaces the
// earlier name.
func Build(entries iter.Seq[models.MappingEntry]) *Index {
	idx := &Index{names: make(map[string]string)}
	for e := range entries {
		id := strings.TrimSpace(e.CompanyID)
		if id == "" {
			continue
		}
		if _, exists := idx.names[id]; exists {
			idx.overwrites++
		}
		idx.names[id] = strings.TrimSpace(e.ShortName)
	}
	return idx
}

// FromEntries builds an index from a slice
func FromEntries(entries []models.MappingEntry) *Index {
	return Build(func(yield func(models.MappingEntry) bool) {
		for _, e := range entries {
			if !yield(e) {
				return
			}
		}
	})
}

// Load streams the mapping CSV at path into an index.
// On any read error no index is returned.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.IOError("open", path, err)
	}
	defer f.Close()

	idx, err := Read(f)
	if err != nil {
		return nil, models.IOError("read", path, err)
	}
	return idx, nil
}

// Read streams mapping rows from r into an index
func Read(r io.Reader) (*Index, error) {
	reader, err := csvio.NewReader(r)
	if err != nil {
		return nil, err
	}

	var readErr error
	idx := Build(func(yield func(models.MappingEntry) bool) {
		for {
			row, err := reader.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				readErr = err
				return
			}
			entry := models.MappingEntry{
				CompanyID: row.Get(ColumnCompanyID),
				ShortName: row.Get(ColumnShortName),
			}
			if !yield(entry) {
				return
			}
		}
	})
	if readErr != nil {
		return nil, readErr
	}
	return idx, nil
}

// Lookup returns the short name for id, or "" when id is unknown
func (idx *Index) Lookup(id string) string {
	return idx.names[id]
}

// Resolve returns the short name for id and whether id is present
func (idx *Index) Resolve(id string) (string, bool) {
	name, ok := idx.names[id]
	return name, ok
}

// Len returns the number of distinct identifiers
func (idx *Index) Len() int {
	return len(idx.names)
}

// Overwrites returns how many entries replaced an earlier name for the same id
func (idx *Index) Overwrites() int {
	return idx.overwrites
}
