package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
)

const createReviews = `CREATE TABLE reviews (
    review_id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL,
    rating REAL,
    review TEXT,
    date TEXT,
    raw_date TEXT,
    platform TEXT,
    version TEXT,
    location TEXT,
    verified_purchase TEXT,
    review_length REAL,
    sentiment TEXT
);`

const (
	idxReviewsSentiment = `CREATE INDEX idx_reviews_sentiment ON reviews(sentiment);`
	idxReviewsRating    = `CREATE INDEX idx_reviews_rating ON reviews(rating);`
)

var schemaDDL = []string{createReviews, idxReviewsSentiment, idxReviewsRating}

// reviewColumns is the insert column order; it matches Record field order.
var reviewColumns = []string{
	"review_id", "session_id", "rating", "review", "date", "raw_date",
	"platform", "version", "location", "verified_purchase", "review_length", "sentiment",
}

// WriteSQLite writes the session to a fresh SQLite database at path. Any
// existing file is replaced. All rows are inserted in one transaction.
func WriteSQLite(ctx context.Context, path string, s *dataset.Session) (int, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("removing %s: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return 0, fmt.Errorf("creating schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(reviewColumns)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO reviews (%s) VALUES (%s)", strings.Join(reviewColumns, ", "), placeholders)
	stmt, err := tx.PrepareContext(ctx, insertSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	records := Records(s)
	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.ReviewID, rec.SessionID, rec.Rating, rec.Review, rec.Date, rec.RawDate,
			rec.Platform, rec.Version, rec.Location, rec.VerifiedPurchase, rec.ReviewLength, rec.Sentiment,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting review %s: %w", rec.ReviewID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing export transaction: %w", err)
	}
	return len(records), nil
}
