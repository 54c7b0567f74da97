package tui

import (
	"fmt"

	"nathanbeddoewebdev/phonematch/internal/linker"
	"nathanbeddoewebdev/phonematch/internal/records"
	"nathanbeddoewebdev/phonematch/internal/tui/components"
	"nathanbeddoewebdev/phonematch/internal/tui/styles"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minColumnWidth = 4
	maxColumnWidth = 32

	// chartPanelWidth is the width reserved for the match chart when the
	// terminal is wide enough to show it beside the table.
	chartPanelWidth = 34
	chartMinWidth   = 90
)

// SaveFunc writes the result files and returns a short description of what
// was written, e.g. the output paths.
type SaveFunc func() (string, error)

// --- Result messages ---

type resultSavedMsg struct {
	summary string
}

type resultSaveErrorMsg struct {
	err error
}

// --- Result model ---

type resultTab int

const (
	tabMatched resultTab = iota
	tabUnmatched
)

type resultViewModel struct {
	result *linker.Result
	save   SaveFunc

	tables [2]table.Model
	active resultTab

	width  int
	height int

	status  string
	isError bool
	saved   bool
}

// RunResultView shows the link result with one tab for matched rows and one
// for unmatched rows. Pressing "s" calls save; a nil save disables saving.
// It reports whether the result was saved during the session.
func RunResultView(result *linker.Result, save SaveFunc) (bool, error) {
	m := newResultViewModel(result, save)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to run result view: %w", err)
	}
	return final.(resultViewModel).saved, nil
}

func newResultViewModel(result *linker.Result, save SaveFunc) resultViewModel {
	m := resultViewModel{
		result: result,
		save:   save,
	}
	m.tables[tabMatched] = newRecordTable(result.Matched, true)
	m.tables[tabUnmatched] = newRecordTable(result.Unmatched, false)
	return m
}

func newRecordTable(t *records.Table, focused bool) table.Model {
	s := table.DefaultStyles()
	s.Header = styles.TableHeader.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.DimGray).
		BorderBottom(true)
	s.Cell = styles.TableCell
	s.Selected = styles.TableSelectedRow

	widths := columnWidths(t, 0)
	return table.New(
		table.WithColumns(tableColumns(t, widths)),
		table.WithRows(tableRows(t, widths)),
		table.WithFocused(focused),
		table.WithStyles(s),
	)
}

// columnWidths sizes every column to its widest value, clamped to
// [minColumnWidth, maxColumnWidth]. A positive avail shrinks the columns
// evenly so that their sum fits.
func columnWidths(t *records.Table, avail int) []int {
	widths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = ansi.StringWidth(c)
	}
	for _, row := range t.Rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], ansi.StringWidth(row[i]))
			}
		}
	}

	total := 0
	for i := range widths {
		widths[i] = min(max(widths[i], minColumnWidth), maxColumnWidth)
		total += widths[i]
	}

	if avail <= 0 || total <= avail || len(widths) == 0 {
		return widths
	}
	limit := max(avail/len(widths), minColumnWidth)
	for i := range widths {
		widths[i] = min(widths[i], limit)
	}
	return widths
}

func tableColumns(t *records.Table, widths []int) []table.Column {
	cols := make([]table.Column, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = table.Column{Title: ansi.Truncate(c, widths[i], "…"), Width: widths[i]}
	}
	return cols
}

func tableRows(t *records.Table, widths []int) []table.Row {
	rows := make([]table.Row, len(t.Rows))
	for r, row := range t.Rows {
		cells := make(table.Row, len(widths))
		for i := range widths {
			if i < len(row) {
				cells[i] = ansi.Truncate(row[i], widths[i], "…")
			}
		}
		rows[r] = cells
	}
	return rows
}

func (m resultViewModel) Init() tea.Cmd {
	return nil
}

func (m resultViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultSavedMsg:
		m.saved = true
		m.status = "Saved " + msg.summary
		m.isError = false
		return m, nil

	case resultSaveErrorMsg:
		m.status = "Error: " + msg.err.Error()
		m.isError = true
		return m, nil
	}

	return m, nil
}

func (m resultViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l", "left", "h", "shift+tab":
		m.tables[m.active].Blur()
		m.active = (m.active + 1) % resultTab(len(m.tables))
		m.tables[m.active].Focus()
		return m, nil
	case "s":
		if m.save == nil {
			m.status = "Saving is not available"
			m.isError = true
			return m, nil
		}
		m.status = "Saving..."
		m.isError = false
		return m, saveResult(m.save)
	}

	var cmd tea.Cmd
	m.tables[m.active], cmd = m.tables[m.active].Update(msg)
	return m, cmd
}

func saveResult(save SaveFunc) tea.Cmd {
	return func() tea.Msg {
		summary, err := save()
		if err != nil {
			return resultSaveErrorMsg{err: err}
		}
		return resultSavedMsg{summary: summary}
	}
}

// tableArea returns the width and height available to the active table.
func (m resultViewModel) tableArea() (int, int) {
	w := m.width - 4
	if m.showChart() {
		w -= chartPanelWidth
	}
	// header, tabs, status and footer take roughly six lines.
	h := m.height - 8
	return max(w, minColumnWidth), max(h, 3)
}

func (m resultViewModel) showChart() bool {
	return m.width >= chartMinWidth
}

func (m *resultViewModel) resize() {
	w, h := m.tableArea()
	sources := [2]*records.Table{m.result.Matched, m.result.Unmatched}
	for i, t := range sources {
		widths := columnWidths(t, w)
		m.tables[i].SetColumns(tableColumns(t, widths))
		m.tables[i].SetRows(tableRows(t, widths))
		m.tables[i].SetWidth(w)
		m.tables[i].SetHeight(h)
	}
}

func (m resultViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "link", m.result.Stats.String())

	bindings := []components.KeyBinding{
		{Key: "tab", Desc: "switch"},
		{Key: "j/k", Desc: "scroll"},
	}
	if m.save != nil {
		bindings = append(bindings, components.KeyBinding{Key: "s", Desc: "save"})
	}
	bindings = append(bindings, components.KeyBinding{Key: "q", Desc: "quit"})
	footer := components.Footer(m.width, bindings)

	statusBar := components.StatusBar(m.width, m.status, m.isError)

	tabs := components.Tabs(m.width, []components.Tab{
		{Title: "Matched", Count: m.result.Matched.Len()},
		{Title: "Unmatched", Count: m.result.Unmatched.Len()},
	}, int(m.active))

	body := m.renderTable()
	if m.showChart() {
		chart := styles.Card.Width(chartPanelWidth - 2).Render(
			components.MatchChart(m.result.Stats, chartPanelWidth-8),
		)
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, chart)
	}

	sections := []string{header, tabs, body}
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m resultViewModel) renderTable() string {
	t := m.result.Matched
	if m.active == tabUnmatched {
		t = m.result.Unmatched
	}
	w, _ := m.tableArea()
	if t.Len() == 0 {
		return lipgloss.NewStyle().Width(w).Padding(1, 2).
			Render(styles.MutedText.Render("No rows."))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(m.tables[m.active].View())
}
