package types

import (
	"database/sql"

	"golang.org/x/text/cases"
)

// Sentiment is the three-class label derived from a review rating.
// The zero value means the rating was missing.
type Sentiment string

// Sentiment labels, in the order used for tie-breaking and column layout.
const (
	SentimentNone     Sentiment = ""
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Rating thresholds.
const (
	PositiveMinRating = 4
	NeutralRating     = 3
)

// SentimentOrder lists the defined labels in canonical order.
var SentimentOrder = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// DeriveSentiment maps a rating to its sentiment label. A missing rating
// yields SentimentNone. Ratings outside 1-5 are not validated and follow the
// same comparisons.
func DeriveSentiment(rating sql.NullFloat64) Sentiment {
	if !rating.Valid {
		return SentimentNone
	}
	switch r := rating.Float64; {
	case r >= PositiveMinRating:
		return SentimentPositive
	case r == NeutralRating:
		return SentimentNeutral
	default:
		return SentimentNegative
	}
}

// UnratedLabel names the missing sentiment in reports and count maps.
const UnratedLabel = "unrated"

// Label returns s as text, with UnratedLabel for a missing sentiment.
func (s Sentiment) Label() string {
	if s == SentimentNone {
		return UnratedLabel
	}
	return string(s)
}

// CountsByLabel re-keys sentiment counts by Label.
func CountsByLabel(counts map[Sentiment]int) map[string]int {
	out := make(map[string]int, len(counts))
	for s, n := range counts {
		out[s.Label()] = n
	}
	return out
}

// Valid reports whether s is one of the three defined labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNeutral, SentimentNegative:
		return true
	}
	return false
}

// Rank returns the position of s in SentimentOrder, or len(SentimentOrder)
// for anything else.
func (s Sentiment) Rank() int {
	for i, o := range SentimentOrder {
		if o == s {
			return i
		}
	}
	return len(SentimentOrder)
}

// Matches compares s against a label. With fold set the comparison is
// Unicode case-folded, otherwise it is exact. A missing sentiment matches
// nothing.
func (s Sentiment) Matches(label string, fold bool) bool {
	if s == SentimentNone {
		return false
	}
	if !fold {
		return string(s) == label
	}
	folder := cases.Fold()
	return folder.String(string(s)) == folder.String(label)
}

// ParseSentiment resolves a label to its Sentiment, folding case.
// Returns ErrUnknownSentiment for anything that is not a defined label.
func ParseSentiment(label string) (Sentiment, error) {
	for _, s := range SentimentOrder {
		if s.Matches(label, true) {
			return s, nil
		}
	}
	return SentimentNone, ErrUnknownSentiment
}
