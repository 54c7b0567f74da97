package tui

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/phonematch/internal/config"
	"nathanbeddoewebdev/phonematch/internal/tui/components"
	"nathanbeddoewebdev/phonematch/internal/tui/styles"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// tabEscape is how a tab delimiter is shown and typed in the editor.
const tabEscape = `\t`

// effectiveValues resolves what a link run would use for each key when the
// stored value is empty.
var effectiveValues = map[string]func(*config.Config) string{
	"source-name-column":   (*config.Config).SourceNameColumnOrDefault,
	"source-number-column": (*config.Config).SourceNumberColumnOrDefault,
	"target-number-column": (*config.Config).TargetNumberColumnOrDefault,
	"mode":                 (*config.Config).ModeOrDefault,
	"delimiter":            (*config.Config).DelimiterOrDefault,
	"encoding":             (*config.Config).EncodingOrDefault,
}

type settingStoredMsg struct {
	key   string
	value string
}

type settingStoreFailedMsg struct {
	err error
}

type configViewModel struct {
	cfg     *config.Config
	keys    []config.KeySpec
	persist func(*config.Config) error
	path    string

	cursor   int
	editing  bool
	editor   textinput.Model
	draftErr error

	width  int
	height int

	status  string
	isError bool
}

// RunConfigView opens the settings editor on the user's config file.
func RunConfigView() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	path, _ := config.Path()

	m := newConfigViewModel(cfg, (*config.Config).Save)
	m.path = path

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newConfigViewModel(cfg *config.Config, persist func(*config.Config) error) configViewModel {
	return configViewModel{cfg: cfg, keys: config.Keys, persist: persist}
}

func (m configViewModel) Init() tea.Cmd {
	return nil
}

func (m configViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)

	case settingStoredMsg:
		m.editing = false
		m.setStatus(fmt.Sprintf("%s = %s", msg.key, displayValue(msg.value)), false)
		return m, nil

	case settingStoreFailedMsg:
		m.setStatus("Error: "+msg.err.Error(), true)
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *configViewModel) setStatus(text string, isError bool) {
	m.status = text
	m.isError = isError
}

func (m configViewModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.keys) == 0 {
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	spec := &m.keys[m.cursor]
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.cursor = max(m.cursor-1, 0)
	case "down", "j":
		m.cursor = min(m.cursor+1, len(m.keys)-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.keys) - 1
	case "enter", "e":
		m.editor = newSettingEditor(spec.Get(m.cfg))
		m.editing = true
		m.draftErr = nil
		m.status = ""
		return m, textinput.Blink
	case "r", "delete", "backspace":
		if spec.Get(m.cfg) == "" {
			m.setStatus(spec.Name+" already uses its default", false)
			return m, nil
		}
		spec.Set(m.cfg, "")
		return m, m.store(spec.Name, "")
	}
	return m, nil
}

func (m configViewModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	spec := &m.keys[m.cursor]
	switch msg.String() {
	case "esc":
		m.editing = false
		m.draftErr = nil
		return m, nil
	case "enter":
		value, err := applyConfigValue(m.cfg, spec, decodeDraft(m.editor.Value()))
		if err != nil {
			m.draftErr = err
			return m, nil
		}
		return m, m.store(spec.Name, value)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.draftErr = checkDraft(spec, m.editor.Value())
	return m, cmd
}

func newSettingEditor(current string) textinput.Model {
	ti := textinput.New()
	ti.SetValue(displayDraft(current))
	ti.Placeholder = "leave empty for the default"
	ti.CharLimit = 64
	ti.Width = 28
	ti.Focus()
	return ti
}

// applyConfigValue normalizes and validates raw before storing it in cfg.
// An empty value clears the key.
func applyConfigValue(cfg *config.Config, spec *config.KeySpec, raw string) (string, error) {
	value := ""
	if raw != "" {
		value = spec.Normalize(raw)
	}
	if value != "" && spec.Validate != nil {
		if err := spec.Validate(value); err != nil {
			return "", fmt.Errorf("%s: %w", spec.Name, err)
		}
	}
	spec.Set(cfg, value)
	return value, nil
}

// checkDraft validates an editor value without storing it.
func checkDraft(spec *config.KeySpec, draft string) error {
	raw := decodeDraft(draft)
	if raw == "" || spec.Validate == nil {
		return nil
	}
	return spec.Validate(spec.Normalize(raw))
}

// decodeDraft turns the typed escape for a tab into a real tab.
func decodeDraft(draft string) string {
	if strings.TrimSpace(draft) == tabEscape {
		return "\t"
	}
	return draft
}

func displayDraft(v string) string {
	if v == "\t" {
		return tabEscape
	}
	return v
}

// displayValue renders a stored value for the status line and the list.
func displayValue(v string) string {
	switch v {
	case "":
		return "(default)"
	case "\t":
		return tabEscape
	}
	return v
}

func (m configViewModel) store(key, value string) tea.Cmd {
	cfg, persist := m.cfg, m.persist
	return func() tea.Msg {
		if err := persist(cfg); err != nil {
			return settingStoreFailedMsg{err: err}
		}
		return settingStoredMsg{key: key, value: value}
	}
}

func (m configViewModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := components.Header(m.width, "config", m.path)

	bindings := []components.KeyBinding{
		{Key: "j/k", Desc: "move"},
		{Key: "e", Desc: "edit"},
		{Key: "r", Desc: "reset"},
		{Key: "q", Desc: "quit"},
	}
	if m.editing {
		bindings = []components.KeyBinding{
			{Key: "enter", Desc: "store"},
			{Key: "esc", Desc: "discard"},
			{Key: tabEscape, Desc: "tab"},
		}
	}
	footer := components.Footer(m.width, bindings)

	sections := []string{header}
	var statusBar string
	if m.status != "" {
		statusBar = components.StatusBar(m.width, m.status, m.isError)
	}
	bodyH := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-lipgloss.Height(statusBar), 1)

	body := lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.renderSettings())
	sections = append(sections, body)
	if statusBar != "" {
		sections = append(sections, statusBar)
	}
	sections = append(sections, footer)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m configViewModel) renderSettings() string {
	if len(m.keys) == 0 {
		return styles.MutedText.Render("No settings available.")
	}

	nameW := 0
	for _, spec := range m.keys {
		nameW = max(nameW, lipgloss.Width(spec.Name))
	}
	nameW += 2

	lines := make([]string, 0, len(m.keys)+3)
	for i, spec := range m.keys {
		lines = append(lines, m.renderSetting(i, &spec, nameW))
	}

	spec := &m.keys[m.cursor]
	lines = append(lines, "")
	switch {
	case m.editing && m.draftErr != nil:
		lines = append(lines, styles.ErrorText.Render(m.draftErr.Error()))
	case m.editing:
		lines = append(lines, styles.SuccessText.Render("ok"))
	default:
		lines = append(lines, styles.MutedText.Italic(true).Render(spec.Description))
	}

	return styles.Card.Render(strings.Join(lines, "\n"))
}

// renderSetting draws one row: marker, key name, effective value, and a tag
// telling whether the value comes from the file or the built-in default.
func (m configViewModel) renderSetting(i int, spec *config.KeySpec, nameW int) string {
	selected := i == m.cursor
	stored := spec.Get(m.cfg)

	marker := "  "
	nameStyle := styles.MutedText
	if selected {
		marker = styles.AccentText.Render("▸ ")
		nameStyle = styles.Label
	}
	name := nameStyle.Width(nameW).Render(spec.Name)

	if selected && m.editing {
		return marker + name + m.editor.View()
	}

	effective := stored
	if get, ok := effectiveValues[spec.Name]; ok {
		effective = get(m.cfg)
	}
	value := styles.Value.Render(displayValue(effective))
	tag := styles.MutedText.Render("  default")
	if stored != "" {
		value = styles.Value.Bold(true).Render(displayValue(effective))
		tag = styles.AccentText.Render("  set")
	}
	return marker + name + value + tag
}
