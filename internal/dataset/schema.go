// Package dataset loads the review table from CSV against an explicit
// schema and holds it as an immutable Session with the derived sentiment
// column.
package dataset

import (
	"strconv"
	"strings"

	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Kind is the expected type of a column.
type Kind int

const (
	KindNumber Kind = iota
	KindText
	KindDate
	KindCategory
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindCategory:
		return "category"
	}
	return "unknown"
}

// Field describes one column of the schema.
type Field struct {
	Name     string
	Kind     Kind
	Required bool
}

// Schema lists the columns the loader binds. Only rating is required at load
// time; each view checks its own columns.
var Schema = []Field{
	{Name: types.ColumnRating, Kind: KindNumber, Required: true},
	{Name: types.ColumnReview, Kind: KindText},
	{Name: types.ColumnDate, Kind: KindDate},
	{Name: types.ColumnPlatform, Kind: KindCategory},
	{Name: types.ColumnVersion, Kind: KindCategory},
	{Name: types.ColumnLocation, Kind: KindCategory},
	{Name: types.ColumnVerifiedPurchase, Kind: KindCategory},
	{Name: types.ColumnReviewLength, Kind: KindNumber},
}

// nullTokens are cell values read as missing, compared case-insensitively.
var nullTokens = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"#n/a": true,
	"<na>": true,
	"nat":  true,
}

// isNull reports whether a raw cell should be treated as missing.
func isNull(cell string) bool {
	return nullTokens[strings.ToLower(strings.TrimSpace(cell))]
}

// parseNumber parses a numeric cell. ok is false for malformed input.
func parseNumber(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Verification flag values after normalization.
const (
	VerifiedTrue  = "true"
	VerifiedFalse = "false"
)

// normalizeVerified maps the common spellings of a boolean flag onto
// VerifiedTrue and VerifiedFalse. Other values are returned trimmed.
func normalizeVerified(cell string) string {
	v := strings.TrimSpace(cell)
	switch strings.ToLower(v) {
	case "true", "t", "yes", "y", "1":
		return VerifiedTrue
	case "false", "f", "no", "n", "0":
		return VerifiedFalse
	}
	return v
}
