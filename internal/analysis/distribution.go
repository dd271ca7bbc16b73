// Package analysis answers the aggregation queries behind the dashboard
// views. Every query reads an immutable dataset.Session and returns a
// summary value; none of them mutate the session or depend on each other.
package analysis

import (
	"sort"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Share is one sentiment's part of the distribution.
type Share struct {
	Sentiment types.Sentiment `json:"sentiment"`
	Count     int             `json:"count"`
	Percent   float64         `json:"percent"`
}

// Distribution is the share of each sentiment over rows with a sentiment.
type Distribution struct {
	Total  int     `json:"total"`
	Shares []Share `json:"shares"`
}

// SentimentDistribution computes the percentage share of each sentiment.
// Rows with a missing sentiment are excluded from the total. Shares are
// ordered by descending count, ties in label order.
func SentimentDistribution(s *dataset.Session) Distribution {
	counts := make(map[types.Sentiment]int, len(types.SentimentOrder))
	total := 0
	s.Each(func(r types.Review) {
		if r.Sentiment == types.SentimentNone {
			return
		}
		counts[r.Sentiment]++
		total++
	})

	d := Distribution{Total: total, Shares: make([]Share, 0, len(counts))}
	for sentiment, n := range counts {
		d.Shares = append(d.Shares, Share{
			Sentiment: sentiment,
			Count:     n,
			Percent:   percent(n, total),
		})
	}
	sort.Slice(d.Shares, func(i, j int) bool {
		a, b := d.Shares[i], d.Shares[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Sentiment.Rank() < b.Sentiment.Rank()
	})
	return d
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
