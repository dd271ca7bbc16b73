package analysis

import (
	"strings"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// NegativeThemeLabel is the label the negative-themes view filters on.
// It is capitalised, unlike the derived labels, so it only matches when
// comparisons fold case.
const NegativeThemeLabel = "Negative"

// CorpusOptions controls corpus extraction.
type CorpusOptions struct {
	// FoldCase compares sentiment labels case-insensitively.
	FoldCase bool
	// TopKeywords limits the keyword list; 0 returns all terms.
	TopKeywords int
}

// Corpus is the concatenated review text of one sentiment, together with
// its keyword frequencies.
type Corpus struct {
	Label     string    `json:"label"`
	Documents int       `json:"documents"`
	Text      string    `json:"text"`
	Keywords  []Keyword `json:"keywords"`
}

// Empty reports whether the corpus has no text.
func (c Corpus) Empty() bool { return c.Text == "" }

// SentimentCorpus joins the review text of every row whose sentiment matches
// label, separated by single spaces. Missing text contributes nothing. A
// label that matches no row yields an empty corpus.
func SentimentCorpus(s *dataset.Session, label string, opts CorpusOptions) (Corpus, error) {
	if err := s.Require("", types.ColumnReview); err != nil {
		return Corpus{}, err
	}

	var parts []string
	docs := 0
	s.Each(func(r types.Review) {
		if !r.Sentiment.Matches(label, opts.FoldCase) {
			return
		}
		docs++
		if r.Text.Valid && r.Text.String != "" {
			parts = append(parts, r.Text.String)
		}
	})

	text := strings.Join(parts, " ")
	return Corpus{
		Label:     label,
		Documents: docs,
		Text:      text,
		Keywords:  TopKeywords(text, opts.TopKeywords),
	}, nil
}

// NegativeCorpus is SentimentCorpus for NegativeThemeLabel.
func NegativeCorpus(s *dataset.Session, opts CorpusOptions) (Corpus, error) {
	return SentimentCorpus(s, NegativeThemeLabel, opts)
}

// SentimentChoices lists the distinct sentiments present, in first-seen
// order. Missing sentiment is not a choice.
func SentimentChoices(s *dataset.Session) []types.Sentiment {
	seen := make(map[types.Sentiment]bool, len(types.SentimentOrder))
	choices := []types.Sentiment{}
	s.Each(func(r types.Review) {
		if r.Sentiment == types.SentimentNone || seen[r.Sentiment] {
			return
		}
		seen[r.Sentiment] = true
		choices = append(choices, r.Sentiment)
	})
	return choices
}
