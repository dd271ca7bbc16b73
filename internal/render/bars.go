package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barWidth is the length in cells of the longest bar.
const barWidth = 40

type bar struct {
	label string
	value float64
	note  string
}

// renderBars draws one horizontal bar per item, scaled to the largest value.
func renderBars(styles Styles, bars []bar) string {
	labelWidth := 0
	peak := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, lipgloss.Width(b.label))
		peak = max(peak, b.value)
	}

	var sb strings.Builder
	for _, b := range bars {
		n := 0
		if peak > 0 {
			n = int(b.value / peak * barWidth)
		}
		if n == 0 && b.value > 0 {
			n = 1
		}
		label := lipgloss.NewStyle().Width(labelWidth).Render(b.label)
		fill := styles.barStyle(b.label).Render(strings.Repeat("█", n))
		fmt.Fprintf(&sb, "%s %s %s\n", label, fill, styles.Muted.Render(b.note))
	}
	return sb.String()
}
