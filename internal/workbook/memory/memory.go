// Package memory provides an in-memory workbook used as the default backend
// and as the fake in tests. Tables are seeded programmatically or from CSV
// files in a data directory, one file per sheet.
package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"sharptoken/internal/core"
	"sharptoken/internal/workbook"
)

type Workbook struct {
	mu     sync.Mutex
	tables map[string]core.Table
}

var _ workbook.TableReader = (*Workbook)(nil)

func New() *Workbook {
	return &Workbook{tables: make(map[string]core.Table)}
}

// NewFromDir loads every *.csv file under base as a sheet named after the
// file (without extension), first row as header. Files that fail to parse
// are skipped; a missing directory yields an empty workbook, which surfaces
// later as missing required tables.
func NewFromDir(base string) *Workbook {
	wb := New()
	entries, err := os.ReadDir(base)
	if err != nil {
		return wb
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		tbl, err := readCSV(filepath.Join(base, name))
		if err != nil {
			continue
		}
		tbl.Name = strings.TrimSuffix(name, ".csv")
		wb.SetTable(tbl.Name, tbl)
	}
	return wb
}

// SetTable stores a table under the given sheet name, replacing any
// previous one.
func (w *Workbook) SetTable(sheet string, t core.Table) {
	w.mu.Lock()
	defer w.mu.Unlock()
	t.Name = sheet
	w.tables[sheet] = t
}

// ReadTable implements workbook.TableReader.
func (w *Workbook) ReadTable(_ context.Context, sheet string) (core.Table, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	t, ok := w.tables[sheet]
	if !ok {
		return core.Table{}, fmt.Errorf("read sheet %q: %w", sheet, workbook.ErrTableNotFound)
	}
	return t, nil
}

func readCSV(path string) (core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return core.Table{}, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // workbook rows may be ragged
	records, err := r.ReadAll()
	if err != nil {
		return core.Table{}, err
	}
	if len(records) == 0 {
		return core.Table{}, nil
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(h)
	}
	return core.Table{Fields: header, Rows: records[1:]}, nil
}
