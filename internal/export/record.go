// Package export writes the derived review table out of the session, as
// JSONL or as a SQLite database. Exports are one-shot: nothing here reads
// them back.
package export

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Record is the exported form of one review. Missing values are nil.
type Record struct {
	ReviewID         string   `json:"review_id"`
	SessionID        string   `json:"session_id"`
	Rating           *float64 `json:"rating"`
	Review           *string  `json:"review"`
	Date             *string  `json:"date"`
	RawDate          string   `json:"raw_date,omitempty"`
	Platform         *string  `json:"platform"`
	Version          *string  `json:"version"`
	Location         *string  `json:"location"`
	VerifiedPurchase *string  `json:"verified_purchase"`
	ReviewLength     *float64 `json:"review_length"`
	Sentiment        *string  `json:"sentiment"`
}

// generateUUID generates a UUID v7 for review IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Records converts every row of the session, assigning fresh review IDs.
func Records(s *dataset.Session) []Record {
	out := make([]Record, 0, s.Len())
	s.Each(func(r types.Review) {
		out = append(out, newRecord(s.ID(), r))
	})
	return out
}

func newRecord(sessionID string, r types.Review) Record {
	rec := Record{
		ReviewID:         generateUUID(),
		SessionID:        sessionID,
		Rating:           float(r.Rating),
		Review:           str(r.Text),
		RawDate:          r.RawDate,
		Platform:         str(r.Platform),
		Version:          str(r.Version),
		Location:         str(r.Location),
		VerifiedPurchase: str(r.VerifiedPurchase),
		ReviewLength:     float(r.ReviewLength),
	}
	if r.Date.Valid {
		d := r.Date.Time.UTC().Format(time.RFC3339)
		rec.Date = &d
	}
	if r.Sentiment != types.SentimentNone {
		s := string(r.Sentiment)
		rec.Sentiment = &s
	}
	return rec
}

func str(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func float(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
