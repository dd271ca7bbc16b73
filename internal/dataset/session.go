package dataset

import (
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Session is the loaded review table with its derived sentiment column.
// It is never mutated after Load returns, so it may be shared by concurrent
// readers without locking.
type Session struct {
	id       string
	source   string
	loadedAt time.Time
	header   []string
	present  map[string]bool
	rows     []types.Review
}

func newSession(source string, header []string, present map[string]bool, rows []types.Review) *Session {
	return &Session{
		id:       generateUUID(),
		source:   source,
		loadedAt: time.Now().UTC(),
		header:   header,
		present:  present,
		rows:     rows,
	}
}

// NewSession builds a session from rows that already carry their fields.
// Sentiment is re-derived from each rating. columns names the columns
// considered present.
func NewSession(source string, columns []string, rows []types.Review) *Session {
	present := make(map[string]bool, len(columns)+1)
	header := make([]string, 0, len(columns))
	for _, c := range columns {
		name := types.NormalizeColumnName(c)
		present[name] = true
		header = append(header, name)
	}
	derived := make([]types.Review, len(rows))
	for i, r := range rows {
		r.Sentiment = types.DeriveSentiment(r.Rating)
		derived[i] = r
	}
	present[types.ColumnSentiment] = true
	return newSession(source, header, present, derived)
}

// generateUUID generates a UUID v7 for session IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Source returns the path or name the table was read from.
func (s *Session) Source() string { return s.source }

// LoadedAt returns when the table was loaded.
func (s *Session) LoadedAt() time.Time { return s.loadedAt }

// Len returns the number of rows.
func (s *Session) Len() int { return len(s.rows) }

// Row returns a copy of row i.
func (s *Session) Row(i int) types.Review { return s.rows[i] }

// Rows returns a copy of every row.
func (s *Session) Rows() []types.Review {
	out := make([]types.Review, len(s.rows))
	copy(out, s.rows)
	return out
}

// Each calls fn for every row in table order.
func (s *Session) Each(fn func(types.Review)) {
	for _, r := range s.rows {
		fn(r)
	}
}

// Has reports whether the table has the named column. The derived sentiment
// column is always present.
func (s *Session) Has(column string) bool {
	return s.present[types.NormalizeColumnName(column)]
}

// Require returns a ColumnError for the first column the table lacks.
func (s *Session) Require(view string, columns ...string) error {
	for _, c := range columns {
		if !s.Has(c) {
			return &types.ColumnError{Column: c, View: view}
		}
	}
	return nil
}

// Columns returns the input header in file order, normalized.
func (s *Session) Columns() []string {
	out := make([]string, len(s.header))
	copy(out, s.header)
	return out
}

// SentimentCounts returns the number of rows per sentiment, including
// SentimentNone for rows with a missing rating.
func (s *Session) SentimentCounts() map[types.Sentiment]int {
	counts := make(map[types.Sentiment]int, len(types.SentimentOrder)+1)
	for _, r := range s.rows {
		counts[r.Sentiment]++
	}
	return counts
}
