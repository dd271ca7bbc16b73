package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/reviewdash/internal/analysis"
	"github.com/mesh-intelligence/reviewdash/pkg/types"
)

// EmptyCorpusText is printed in place of a word cloud with no words.
const EmptyCorpusText = "(no reviews to summarize)"

// Result writes the heading and payload of a view result to w.
func Result(w io.Writer, styles Styles, r analysis.Result) error {
	body, err := Payload(styles, r.Payload)
	if err != nil {
		return fmt.Errorf("rendering view %s: %w", r.View.Slug, err)
	}
	_, err = fmt.Fprintf(w, "%s\n\n%s", styles.Title.Render(r.View.Heading), body)
	return err
}

// JSON writes the result payload as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Payload renders one of the analysis payload types.
func Payload(styles Styles, payload any) (string, error) {
	switch p := payload.(type) {
	case analysis.Distribution:
		return distribution(styles, p), nil
	case analysis.CrossTab:
		return crossTab(styles, p), nil
	case analysis.KeywordsPayload:
		return keywords(styles, p), nil
	case analysis.Corpus:
		return corpus(styles, p), nil
	case analysis.Trend:
		return trend(styles, p), nil
	case analysis.LengthStats:
		return lengths(styles, p), nil
	default:
		return "", fmt.Errorf("unsupported payload %T", payload)
	}
}

// Views writes the dashboard menu.
func Views(w io.Writer, styles Styles, views []analysis.View) error {
	t := newTable("Dashboard Sections", "#", "Slug", "Title", "Chart")
	for _, v := range views {
		t.addRow(strconv.Itoa(v.ID), v.Slug, v.Title, string(v.Kind))
	}
	_, err := io.WriteString(w, t.render(styles))
	return err
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func distribution(styles Styles, d analysis.Distribution) string {
	if d.Total == 0 {
		return styles.Muted.Render("(no rated reviews)") + "\n"
	}
	bars := make([]bar, 0, len(d.Shares))
	for _, s := range d.Shares {
		bars = append(bars, bar{
			label: string(s.Sentiment),
			value: s.Percent,
			note:  fmt.Sprintf("%s (%d)", formatPercent(s.Percent), s.Count),
		})
	}
	return renderBars(styles, bars)
}

func crossTab(styles Styles, ct analysis.CrossTab) string {
	headers := []string{ct.Index}
	for _, s := range ct.Columns {
		headers = append(headers, string(s))
	}
	headers = append(headers, "total")

	t := newTable("", headers...)
	for _, row := range ct.Rows {
		cells := []string{row.Key}
		for _, s := range ct.Columns {
			cells = append(cells, formatPercent(row.Percent[s]))
		}
		cells = append(cells, strconv.Itoa(row.Total))
		t.addRow(cells...)
	}
	return t.render(styles)
}

func keywords(styles Styles, p analysis.KeywordsPayload) string {
	var sb strings.Builder
	choices := make([]string, len(p.Choices))
	for i, c := range p.Choices {
		choices[i] = string(c)
	}
	sb.WriteString(styles.Muted.Render("sentiments: " + strings.Join(choices, ", ")))
	sb.WriteString("\n")
	sb.WriteString(corpus(styles, p.Corpus))
	return sb.String()
}

func corpus(styles Styles, c analysis.Corpus) string {
	if c.Empty() || len(c.Keywords) == 0 {
		return styles.Muted.Render(EmptyCorpusText) + "\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", styles.Bold.Render(fmt.Sprintf("%s (%d reviews)", c.Label, c.Documents)))
	bars := make([]bar, 0, len(c.Keywords))
	for _, k := range c.Keywords {
		bars = append(bars, bar{label: k.Word, value: float64(k.Count), note: strconv.Itoa(k.Count)})
	}
	sb.WriteString(renderBars(styles, bars))
	return sb.String()
}

func trend(styles Styles, tr analysis.Trend) string {
	headers := []string{"month"}
	for _, s := range tr.Sentiments {
		headers = append(headers, string(s))
	}
	t := newTable("", headers...)
	for i, m := range tr.Months {
		cells := []string{m}
		for j := range tr.Sentiments {
			cells = append(cells, strconv.Itoa(tr.Counts[i][j]))
		}
		t.addRow(cells...)
	}

	out := t.render(styles)
	if tr.DroppedDates > 0 {
		out += styles.Muted.Render(fmt.Sprintf("%d reviews without a usable date were left out", tr.DroppedDates)) + "\n"
	}
	return out
}

func lengths(styles Styles, l analysis.LengthStats) string {
	t := newTable("", "sentiment", "count", "mean", "min", "q1", "median", "q3", "max")
	for _, g := range l.Groups {
		t.addRow(
			string(g.Sentiment),
			strconv.Itoa(g.Count),
			formatNumber(g.Mean),
			formatNumber(g.Min),
			formatNumber(g.Q1),
			formatNumber(g.Median),
			formatNumber(g.Q3),
			formatNumber(g.Max),
		)
	}
	return t.render(styles)
}

// Counts writes the number of reviews per sentiment, missing last.
func Counts(w io.Writer, styles Styles, counts map[types.Sentiment]int) error {
	t := newTable("Sentiment Counts", "sentiment", "reviews")
	order := append(append([]types.Sentiment{}, types.SentimentOrder...), types.SentimentNone)
	for _, s := range order {
		if n, ok := counts[s]; ok {
			t.addRow(s.Label(), strconv.Itoa(n))
		}
	}
	_, err := io.WriteString(w, t.render(styles))
	return err
}
