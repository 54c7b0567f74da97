package components

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Tab is one entry of a tab bar.
type Tab struct {
	Title string
	Count int
}

// Tabs renders a single-line tab bar with the active tab highlighted.
func Tabs(width int, tabs []Tab, active int) string {
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%s (%d)", t.Title, t.Count)
		if i == active {
			parts[i] = styles.TabActive.Render(label)
		} else {
			parts[i] = styles.TabInactive.Render(label)
		}
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(strings.Join(parts, styles.KeySepStyle.Render("│")))
}
