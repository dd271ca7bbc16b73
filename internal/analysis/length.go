package analysis

import (
	"math"
	"sort"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// LengthGroup summarizes review_length for one sentiment. Values keeps the
// per-row lengths in table order for box-plot rendering.
type LengthGroup struct {
	Sentiment types.Sentiment `json:"sentiment"`
	Count     int             `json:"count"`
	Mean      float64         `json:"mean"`
	Min       float64         `json:"min"`
	Q1        float64         `json:"q1"`
	Median    float64         `json:"median"`
	Q3        float64         `json:"q3"`
	Max       float64         `json:"max"`
	Values    []float64       `json:"values"`
}

// LengthStats holds one group per sentiment present, in label order.
type LengthStats struct {
	Groups []LengthGroup `json:"groups"`
}

// Group returns the summary for a sentiment.
func (l LengthStats) Group(s types.Sentiment) (LengthGroup, bool) {
	for _, g := range l.Groups {
		if g.Sentiment == s {
			return g, true
		}
	}
	return LengthGroup{}, false
}

// ReviewLengthBySentiment computes mean and quartiles of review_length per
// sentiment. Rows missing either value are skipped.
func ReviewLengthBySentiment(s *dataset.Session) (LengthStats, error) {
	if err := s.Require("", types.ColumnReviewLength); err != nil {
		return LengthStats{}, err
	}

	values := make(map[types.Sentiment][]float64, len(types.SentimentOrder))
	s.Each(func(r types.Review) {
		if r.Sentiment == types.SentimentNone || !r.ReviewLength.Valid {
			return
		}
		values[r.Sentiment] = append(values[r.Sentiment], r.ReviewLength.Float64)
	})

	stats := LengthStats{Groups: []LengthGroup{}}
	for _, sentiment := range types.SentimentOrder {
		vs, ok := values[sentiment]
		if !ok {
			continue
		}
		stats.Groups = append(stats.Groups, summarize(sentiment, vs))
	}
	return stats, nil
}

func summarize(sentiment types.Sentiment, vs []float64) LengthGroup {
	sorted := make([]float64, len(vs))
	copy(sorted, vs)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return LengthGroup{
		Sentiment: sentiment,
		Count:     len(vs),
		Mean:      sum / float64(len(vs)),
		Min:       sorted[0],
		Q1:        quantile(sorted, 0.25),
		Median:    quantile(sorted, 0.5),
		Q3:        quantile(sorted, 0.75),
		Max:       sorted[len(sorted)-1],
		Values:    vs,
	}
}

// quantile returns the q-th quantile of sorted values using linear
// interpolation between closest ranks. sorted must be non-empty.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := math.Floor(pos)
	hi := math.Ceil(pos)
	if lo == hi {
		return sorted[int(lo)]
	}
	frac := pos - lo
	return sorted[int(lo)]*(1-frac) + sorted[int(hi)]*frac
}
