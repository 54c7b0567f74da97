package components

import (
	"fmt"

	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// chartHeight is the fixed height of the match bar chart.
const chartHeight = 8

// MatchChart renders matched vs unmatched row counts as a bar chart with a
// match-rate summary underneath.
func MatchChart(stats linker.Stats, width int) string {
	label := styles.Label.Render("Match rate")
	if stats.Total == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, label, styles.MutedText.Render("no rows"))
	}

	plotWidth := max(width, 16)

	data := []barchart.BarData{
		{
			Label: "matched",
			Values: []barchart.BarValue{{
				Name:  "matched",
				Value: float64(stats.Matched),
				Style: lipgloss.NewStyle().Foreground(styles.Green),
			}},
		},
		{
			Label: "unmatched",
			Values: []barchart.BarValue{{
				Name:  "unmatched",
				Value: float64(stats.Total - stats.Matched),
				Style: lipgloss.NewStyle().Foreground(styles.Red),
			}},
		},
	}

	chart := barchart.New(plotWidth, chartHeight, barchart.WithDataSet(data))
	chart.Draw()

	summary := styles.RateStyle(stats.Rate()).Render(
		fmt.Sprintf("%d/%d  %.1f%%", stats.Matched, stats.Total, stats.Rate()*100),
	)
	return lipgloss.JoinVertical(lipgloss.Left, label, chart.View(), summary)
}
