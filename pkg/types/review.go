package types

import (
	"database/sql"
	"fmt"
	"strings"
)

// Column names of the review table.
const (
	ColumnRating           = "rating"
	ColumnReview           = "review"
	ColumnDate             = "date"
	ColumnPlatform         = "platform"
	ColumnVersion          = "version"
	ColumnLocation         = "location"
	ColumnVerifiedPurchase = "verified_purchase"
	ColumnReviewLength     = "review_length"

	// ColumnSentiment is derived at load time and never read from input.
	ColumnSentiment = "sentiment"
)

// Review is one row of the loaded table. Missing cells are represented by
// the Valid flag of the sql.Null wrappers. Sentiment is derived from Rating.
type Review struct {
	Rating           sql.NullFloat64
	Text             sql.NullString
	RawDate          string
	Date             sql.NullTime
	Platform         sql.NullString
	Version          sql.NullString
	Location         sql.NullString
	VerifiedPurchase sql.NullString
	ReviewLength     sql.NullFloat64
	Sentiment        Sentiment
}

// Categorical returns the value of a categorical column by name.
// Returns an error wrapping ErrMissingColumn for a name that is not one of
// the categorical columns.
func (r Review) Categorical(column string) (sql.NullString, error) {
	switch column {
	case ColumnPlatform:
		return r.Platform, nil
	case ColumnVersion:
		return r.Version, nil
	case ColumnLocation:
		return r.Location, nil
	case ColumnVerifiedPurchase:
		return r.VerifiedPurchase, nil
	}
	return sql.NullString{}, fmt.Errorf("%w: %q is not categorical", ErrMissingColumn, column)
}

// NormalizeColumnName trims and lower-cases a header cell so that
// "Rating" and " rating " bind to the same column.
func NormalizeColumnName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
