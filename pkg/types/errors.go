package types

import (
	"errors"
	"fmt"
)

// Dataset errors.
var (
	ErrMissingColumn    = errors.New("missing column")
	ErrSchemaMismatch   = errors.New("schema mismatch")
	ErrEmptyInput       = errors.New("input has no header row")
	ErrUnknownView      = errors.New("unknown view")
	ErrUnknownSentiment = errors.New("unknown sentiment")
)

// ColumnError reports a column required by a view (or by loading) that the
// table does not have. It unwraps to ErrMissingColumn.
type ColumnError struct {
	Column string
	View   string
}

func (e *ColumnError) Error() string {
	if e.View == "" {
		return fmt.Sprintf("missing column %q", e.Column)
	}
	return fmt.Sprintf("view %s: missing column %q", e.View, e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }

// SchemaError reports a cell whose value does not fit its column type.
// Row is 1-based and counts data rows only. It unwraps to ErrSchemaMismatch.
type SchemaError struct {
	Column string
	Row    int
	Value  string
	Want   string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q row %d: %q is not %s", e.Column, e.Row, e.Value, e.Want)
}

func (e *SchemaError) Unwrap() error { return ErrSchemaMismatch }
