package analysis

import (
	"sort"
	"strconv"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// CrossTabRow holds one index value's counts and row-normalized percentages.
type CrossTabRow struct {
	Key     string                      `json:"key"`
	Total   int                         `json:"total"`
	Counts  map[types.Sentiment]int     `json:"counts"`
	Percent map[types.Sentiment]float64 `json:"percent"`
}

// CrossTab is the share of each sentiment within each value of an index
// column. Every row's percentages sum to 100.
type CrossTab struct {
	Index   string            `json:"index"`
	Columns []types.Sentiment `json:"columns"`
	Rows    []CrossTabRow     `json:"rows"`
}

// keyFunc extracts the index value of a row; ok is false when it is missing.
type keyFunc func(types.Review) (key string, ok bool)

type crossTabAcc struct {
	row   CrossTabRow
	order float64
}

// crossTab counts sentiments per key. Rows missing either the key or the
// sentiment are skipped. numeric orders the rows by the parsed key instead
// of lexicographically.
func crossTab(s *dataset.Session, index string, key keyFunc, numeric bool) CrossTab {
	accs := make(map[string]*crossTabAcc)
	seen := make(map[types.Sentiment]bool, len(types.SentimentOrder))

	s.Each(func(r types.Review) {
		if r.Sentiment == types.SentimentNone {
			return
		}
		k, ok := key(r)
		if !ok {
			return
		}
		acc, ok := accs[k]
		if !ok {
			acc = &crossTabAcc{row: CrossTabRow{Key: k, Counts: make(map[types.Sentiment]int)}}
			if numeric {
				acc.order, _ = strconv.ParseFloat(k, 64)
			}
			accs[k] = acc
		}
		acc.row.Counts[r.Sentiment]++
		acc.row.Total++
		seen[r.Sentiment] = true
	})

	ct := CrossTab{Index: index, Columns: []types.Sentiment{}, Rows: make([]CrossTabRow, 0, len(accs))}
	for _, sentiment := range types.SentimentOrder {
		if seen[sentiment] {
			ct.Columns = append(ct.Columns, sentiment)
		}
	}

	ordered := make([]*crossTabAcc, 0, len(accs))
	for _, acc := range accs {
		ordered = append(ordered, acc)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if numeric && ordered[i].order != ordered[j].order {
			return ordered[i].order < ordered[j].order
		}
		return ordered[i].row.Key < ordered[j].row.Key
	})

	for _, acc := range ordered {
		row := acc.row
		row.Percent = make(map[types.Sentiment]float64, len(ct.Columns))
		for _, sentiment := range ct.Columns {
			row.Percent[sentiment] = percent(row.Counts[sentiment], row.Total)
		}
		ct.Rows = append(ct.Rows, row)
	}
	return ct
}

// RatingCrossTab computes the sentiment share for each rating value.
func RatingCrossTab(s *dataset.Session) (CrossTab, error) {
	if err := s.Require("", types.ColumnRating); err != nil {
		return CrossTab{}, err
	}
	return crossTab(s, types.ColumnRating, func(r types.Review) (string, bool) {
		if !r.Rating.Valid {
			return "", false
		}
		return FormatRating(r.Rating.Float64), true
	}, true), nil
}

// CategoryCrossTab computes the sentiment share for each value of a
// categorical column: platform, version, location, or verified_purchase.
func CategoryCrossTab(s *dataset.Session, column string) (CrossTab, error) {
	if _, err := (types.Review{}).Categorical(column); err != nil {
		return CrossTab{}, err
	}
	if err := s.Require("", column); err != nil {
		return CrossTab{}, err
	}
	return crossTab(s, column, func(r types.Review) (string, bool) {
		v, _ := r.Categorical(column)
		if !v.Valid {
			return "", false
		}
		return v.String, true
	}, false), nil
}

// FormatRating renders a rating without a trailing ".0" when integral.
func FormatRating(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
