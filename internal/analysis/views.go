package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/reviewdash/internal/dataset"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// Kind tells a renderer what shape of chart a view's payload feeds.
type Kind string

const (
	KindBar       Kind = "bar"
	KindCrossTab  Kind = "crosstab"
	KindWordCloud Kind = "wordcloud"
	KindLine      Kind = "line"
	KindBox       Kind = "box"
)

// View is one entry of the dashboard menu.
type View struct {
	ID      int      `json:"id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Heading string   `json:"heading"`
	Kind    Kind     `json:"kind"`
	Columns []string `json:"columns"`
}

// Label is the menu entry text, e.g. "1. Overall Sentiment Distribution".
func (v View) Label() string {
	return fmt.Sprintf("%d. %s", v.ID, v.Title)
}

// Views is the dashboard menu in display order.
var Views = []View{
	{1, "overall-sentiment", "Overall Sentiment Distribution", "Overall Sentiment of User Reviews", KindBar, []string{types.ColumnSentiment}},
	{2, "sentiment-vs-rating", "Sentiment vs Rating", "How Does Sentiment Vary by Rating?", KindCrossTab, []string{types.ColumnRating}},
	{3, "keywords-per-sentiment", "Keywords per Sentiment", "Keywords Associated with Each Sentiment", KindWordCloud, []string{types.ColumnReview}},
	{4, "sentiment-trend", "Sentiment Trend Over Time", "How Sentiment Has Changed Over Time", KindLine, []string{types.ColumnDate}},
	{5, "verified-vs-non-verified", "Verified vs Non-Verified Users", "Do Verified Users Leave Different Reviews?", KindCrossTab, []string{types.ColumnVerifiedPurchase}},
	{6, "review-length", "Review Length vs Sentiment", "Are Longer Reviews More Positive or Negative?", KindBox, []string{types.ColumnReviewLength}},
	{7, "sentiment-by-location", "Sentiment by Location", "Which Locations Show Most Positive/Negative Sentiment?", KindCrossTab, []string{types.ColumnLocation}},
	{8, "sentiment-by-platform", "Sentiment by Platform", "Sentiment by Platform (Web vs Mobile)", KindCrossTab, []string{types.ColumnPlatform}},
	{9, "sentiment-by-version", "Sentiment by ChatGPT Version", "Sentiment Across ChatGPT Versions", KindCrossTab, []string{types.ColumnVersion}},
	{10, "negative-themes", "Negative Feedback Themes", "Common Themes in Negative Reviews", KindWordCloud, []string{types.ColumnReview}},
}

// Lookup finds a view by number or slug. Returns ErrUnknownView otherwise.
func Lookup(key string) (View, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if id, err := strconv.Atoi(key); err == nil {
		if id >= 1 && id <= len(Views) {
			return Views[id-1], nil
		}
		return View{}, fmt.Errorf("%w: %s", types.ErrUnknownView, key)
	}
	for _, v := range Views {
		if v.Slug == key {
			return v, nil
		}
	}
	return View{}, fmt.Errorf("%w: %q", types.ErrUnknownView, key)
}

// Options carries the per-request inputs of a view.
type Options struct {
	// Sentiment is the label chosen for the keywords view. Empty selects the
	// first sentiment present.
	Sentiment string
	// FoldCase compares sentiment labels case-insensitively.
	FoldCase bool
	// TopKeywords limits keyword lists.
	TopKeywords int
}

// Result is the output of one view.
type Result struct {
	View    View `json:"view"`
	Payload any  `json:"payload"`
}

// KeywordsPayload is the payload of the keywords view: the selectable
// sentiments and the corpus of the chosen one.
type KeywordsPayload struct {
	Choices []types.Sentiment `json:"choices"`
	Corpus  Corpus            `json:"corpus"`
}

// Run checks the view's columns against the session and computes its
// payload. A missing column is reported as a *types.ColumnError naming the
// view.
func Run(s *dataset.Session, v View, opts Options) (Result, error) {
	if err := s.Require(v.Slug, v.Columns...); err != nil {
		return Result{}, err
	}

	corpusOpts := CorpusOptions{FoldCase: opts.FoldCase, TopKeywords: opts.TopKeywords}

	var payload any
	var err error
	switch v.ID {
	case 1:
		payload = SentimentDistribution(s)
	case 2:
		payload, err = RatingCrossTab(s)
	case 3:
		payload, err = keywordsView(s, opts.Sentiment, corpusOpts)
	case 4:
		payload, err = SentimentTrend(s)
	case 5:
		payload, err = CategoryCrossTab(s, types.ColumnVerifiedPurchase)
	case 6:
		payload, err = ReviewLengthBySentiment(s)
	case 7:
		payload, err = CategoryCrossTab(s, types.ColumnLocation)
	case 8:
		payload, err = CategoryCrossTab(s, types.ColumnPlatform)
	case 9:
		payload, err = CategoryCrossTab(s, types.ColumnVersion)
	case 10:
		payload, err = NegativeCorpus(s, corpusOpts)
	default:
		return Result{}, fmt.Errorf("%w: %d", types.ErrUnknownView, v.ID)
	}
	if err != nil {
		return Result{}, fmt.Errorf("view %s: %w", v.Slug, err)
	}
	return Result{View: v, Payload: payload}, nil
}

func keywordsView(s *dataset.Session, label string, opts CorpusOptions) (KeywordsPayload, error) {
	choices := SentimentChoices(s)
	p := KeywordsPayload{Choices: choices}

	var chosen types.Sentiment
	switch {
	case label != "":
		parsed, err := types.ParseSentiment(label)
		if err != nil {
			return p, fmt.Errorf("%w: %q", err, label)
		}
		chosen = parsed
	case len(choices) > 0:
		chosen = choices[0]
	default:
		p.Corpus = Corpus{Keywords: []Keyword{}}
		return p, nil
	}

	corpus, err := SentimentCorpus(s, string(chosen), opts)
	if err != nil {
		return p, err
	}
	p.Corpus = corpus
	return p, nil
}
