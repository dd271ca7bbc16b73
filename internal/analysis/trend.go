package analysis

import (
	"time"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// monthLayout labels trend buckets.
const monthLayout = "2006-01"

// Trend is a dense month by sentiment grid of review counts. Counts[i][j] is
// the number of reviews in Months[i] with Sentiments[j]. Every month between
// the first and last observed month is present, zero-filled.
type Trend struct {
	Months       []string          `json:"months"`
	Sentiments   []types.Sentiment `json:"sentiments"`
	Counts       [][]int           `json:"counts"`
	DroppedDates int               `json:"dropped_dates"`
}

// Series returns the counts of one sentiment across all months, or nil if
// the sentiment is not in the grid.
func (t Trend) Series(s types.Sentiment) []int {
	for j, sentiment := range t.Sentiments {
		if sentiment != s {
			continue
		}
		out := make([]int, len(t.Months))
		for i := range t.Months {
			out[i] = t.Counts[i][j]
		}
		return out
	}
	return nil
}

// monthStart truncates t to the first instant of its UTC calendar month.
func monthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SentimentTrend buckets reviews by calendar month. Rows whose date is
// missing or unparseable are dropped and counted in DroppedDates; rows with
// a missing sentiment are skipped.
func SentimentTrend(s *dataset.Session) (Trend, error) {
	if err := s.Require("", types.ColumnDate); err != nil {
		return Trend{}, err
	}

	type bucket struct {
		month     time.Time
		sentiment types.Sentiment
	}
	counts := make(map[bucket]int)
	seen := make(map[types.Sentiment]bool, len(types.SentimentOrder))
	var first, last time.Time
	dropped := 0

	s.Each(func(r types.Review) {
		if !r.Date.Valid {
			dropped++
			return
		}
		if r.Sentiment == types.SentimentNone {
			return
		}
		m := monthStart(r.Date.Time)
		if first.IsZero() || m.Before(first) {
			first = m
		}
		if last.IsZero() || m.After(last) {
			last = m
		}
		counts[bucket{m, r.Sentiment}]++
		seen[r.Sentiment] = true
	})

	t := Trend{
		Months:       []string{},
		Sentiments:   []types.Sentiment{},
		Counts:       [][]int{},
		DroppedDates: dropped,
	}
	for _, sentiment := range types.SentimentOrder {
		if seen[sentiment] {
			t.Sentiments = append(t.Sentiments, sentiment)
		}
	}
	if first.IsZero() {
		return t, nil
	}

	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		row := make([]int, len(t.Sentiments))
		for j, sentiment := range t.Sentiments {
			row[j] = counts[bucket{m, sentiment}]
		}
		t.Months = append(t.Months, m.Format(monthLayout))
		t.Counts = append(t.Counts, row)
	}
	return t, nil
}
