package dataset

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Options controls how the table is read.
type Options struct {
	// Delimiter for CSV. If 0, a comma is used.
	Delimiter rune
	// LengthSource selects where review_length comes from: the column
	// itself, or a character or word count of the review text.
	LengthSource string
}

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1024

const utf8BOM = "\ufeff"

// Load opens path and reads the review table from it.
func Load(ctx context.Context, path string, opts Options) (*Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return Read(ctx, bufio.NewReader(f), path, opts)
}

// Read parses CSV from r, validates it against Schema, and derives the
// sentiment column. source names the input in the returned Session.
func Read(ctx context.Context, r io.Reader, source string, opts Options) (*Session, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	// Short rows leave trailing columns missing.
	cr.FieldsPerRecord = -1

	rawHeader, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, types.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	header := make([]string, len(rawHeader))
	index := make(map[string]int, len(rawHeader))
	for i, h := range rawHeader {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		name := types.NormalizeColumnName(h)
		header[i] = name
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	for _, f := range Schema {
		if _, ok := index[f.Name]; f.Required && !ok {
			return nil, &types.ColumnError{Column: f.Name}
		}
	}

	b := rowBinder{index: index, lengthSource: opts.LengthSource}
	var rows []types.Review
	for n := 1; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", n, err)
		}
		row, err := b.bind(n, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	present := make(map[string]bool, len(index)+2)
	for name := range index {
		present[name] = true
	}
	if derivesLength(opts.LengthSource) {
		// The column, if any, is ignored and replaced by a count of the text.
		present[types.ColumnReviewLength] = present[types.ColumnReview]
	}
	present[types.ColumnSentiment] = true

	return newSession(source, header, present, rows), nil
}

func derivesLength(source string) bool {
	return source == types.LengthFromChars || source == types.LengthFromWords
}

// rowBinder converts CSV records into typed reviews.
type rowBinder struct {
	index        map[string]int
	lengthSource string
}

// cell returns the raw value of column in record, and false when the column
// is absent, the record is short, or the value is a null token.
func (b rowBinder) cell(record []string, column string) (string, bool) {
	i, ok := b.index[column]
	if !ok || i >= len(record) {
		return "", false
	}
	if isNull(record[i]) {
		return "", false
	}
	return record[i], true
}

func (b rowBinder) text(record []string, column string) sql.NullString {
	v, ok := b.cell(record, column)
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func (b rowBinder) category(record []string, column string) sql.NullString {
	v, ok := b.cell(record, column)
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: strings.TrimSpace(v), Valid: true}
}

func (b rowBinder) number(n int, record []string, column string) (sql.NullFloat64, error) {
	v, ok := b.cell(record, column)
	if !ok {
		return sql.NullFloat64{}, nil
	}
	f, ok := parseNumber(v)
	if !ok {
		return sql.NullFloat64{}, &types.SchemaError{Column: column, Row: n, Value: v, Want: "a number"}
	}
	return sql.NullFloat64{Float64: f, Valid: true}, nil
}

func (b rowBinder) bind(n int, record []string) (types.Review, error) {
	var r types.Review
	var err error

	if r.Rating, err = b.number(n, record, types.ColumnRating); err != nil {
		return r, err
	}
	r.Text = b.text(record, types.ColumnReview)
	if raw, ok := b.cell(record, types.ColumnDate); ok {
		r.RawDate = raw
		if t, ok := ParseDate(raw); ok {
			r.Date = sql.NullTime{Time: t, Valid: true}
		}
	}
	r.Platform = b.category(record, types.ColumnPlatform)
	r.Version = b.category(record, types.ColumnVersion)
	r.Location = b.category(record, types.ColumnLocation)
	if v, ok := b.cell(record, types.ColumnVerifiedPurchase); ok {
		r.VerifiedPurchase = sql.NullString{String: normalizeVerified(v), Valid: true}
	}

	switch b.lengthSource {
	case types.LengthFromChars:
		if r.Text.Valid {
			r.ReviewLength = sql.NullFloat64{Float64: float64(utf8.RuneCountInString(r.Text.String)), Valid: true}
		}
	case types.LengthFromWords:
		if r.Text.Valid {
			r.ReviewLength = sql.NullFloat64{Float64: float64(len(strings.Fields(r.Text.String))), Valid: true}
		}
	default:
		if r.ReviewLength, err = b.number(n, record, types.ColumnReviewLength); err != nil {
			return r, err
		}
	}

	r.Sentiment = types.DeriveSentiment(r.Rating)
	return r, nil
}
