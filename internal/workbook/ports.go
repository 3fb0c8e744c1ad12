// Package workbook defines the port through which the pipeline reads the
// Sharp Token workbook, decoupling aggregation from where the tables live.
package workbook

import (
	"context"
	"errors"

	"sharptoken/internal/core"
)

// ErrTableNotFound reports that a required sheet is absent from the source.
// Loading a missing domain table is fatal to the whole pipeline.
var ErrTableNotFound = errors.New("table not found in workbook")

// TableReader reads one named table from the workbook. Implementations
// return the sheet as raw string cells; all parsing belongs to the core
// pipeline. A present-but-empty sheet yields an empty Table, not an error.
type TableReader interface {
	ReadTable(ctx context.Context, sheet string) (core.Table, error)
}
