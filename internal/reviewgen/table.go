package reviewgen

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"trustreviews/pkg/models"
)

// ErrMissingColumn is returned when a table lacks a column the run needs.
var ErrMissingColumn = errors.New("missing column")

// Table is a whole CSV table held in memory. Rows are kept exactly as read.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

func NewTable(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Header))
	for idx, name := range t.Header {
		key := normalizeName(name)
		if _, dup := t.index[key]; dup {
			continue
		}
		t.index[key] = idx
	}
}

func normalizeName(name string) string {
	return models.NormalizeColumn(name)
}

// Has reports whether the table carries the named column.
func (t *Table) Has(name string) bool {
	if t.index == nil {
		t.buildIndex()
	}
	_, ok := t.index[normalizeName(name)]
	return ok
}

// Require fails with ErrMissingColumn on the first absent column.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.Has(name) {
			return fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}
	return nil
}

// Column returns the trimmed value of every row for the named column.
func (t *Table) Column(name string) ([]string, error) {
	if err := t.Require(name); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out = append(out, t.valueAt(row, name))
	}
	return out, nil
}

func (t *Table) valueAt(row []string, key string) string {
	idx, ok := t.index[normalizeName(key)]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Len is the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ReadTable parses a CSV stream whose first row is the header.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("read header: empty input")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}

	return NewTable(header, rows), nil
}

// LoadTable opens path and reads it as a CSV table.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Write emits the header then every row. No index column is added.
func (t *Table) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// SaveTable writes the table to path, creating parent directories.
func SaveTable(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := t.Write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
