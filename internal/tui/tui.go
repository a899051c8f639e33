// Package tui provides a Bubble Tea terminal user interface for flstudio-hub.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/flstudio-hub/internal/ai"
	"github.com/handiism/flstudio-hub/internal/calc"
	"github.com/handiism/flstudio-hub/internal/catalog"
	"github.com/handiism/flstudio-hub/internal/config"
	"github.com/handiism/flstudio-hub/internal/logging"
	"github.com/handiism/flstudio-hub/internal/state"
	"github.com/handiism/flstudio-hub/internal/templates"
	"go.uber.org/zap"
)

// Sections with dedicated views.
const (
	sectionPlugins    = "plugins"
	sectionPluginsDB  = "plugins-database"
	sectionNative     = "native-advantages"
	sectionSongs      = "templates"
	sectionProjects   = "project-templates"
	sectionMIDI       = "midi-mapping"
	sectionCalculator = "utilities"
	sectionAssistant  = "ai-assistant"
	sectionMixing     = "mixing"
	sectionDojo       = "dojo"
	sectionModules    = "modules"
	sectionTrouble    = "troubleshoot"
	sectionExport     = "export"
)

// narrowWidth hides the sidebar unless it was opened explicitly.
const narrowWidth = 90

const paletteLimit = 8

// Mode is what keyboard input currently drives.
type Mode int

const (
	ModeBrowse Mode = iota
	ModeInput
	ModePalette
	ModeThinking
)

// AITask selects which assistant prompt the input feeds.
type AITask int

const (
	TaskGuru AITask = iota
	TaskRecipe
	TaskSpark
)

func (t AITask) String() string {
	switch t {
	case TaskRecipe:
		return "Sound Recipe"
	case TaskSpark:
		return "Creative Spark"
	}
	return "Ask the Guru"
}

// Deps are the services the TUI drives.
type Deps struct {
	Settings  *config.Settings
	State     *state.Store
	Catalog   *catalog.Catalog
	Templates *templates.Service
	Gateway   *ai.Gateway
	Logger    *zap.Logger
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	deps   Deps
	logger *zap.Logger
	keys   keyMap
	styles styles

	sections []state.Section
	mode     Mode

	input   textinput.Model
	spinner spinner.Model
	help    help.Model

	palette       *catalog.Palette
	paletteHits   []catalog.PaletteEntry
	paletteCursor int

	query  string
	filter string
	bpm    float64
	task   AITask
	answer string
	status string

	// seq identifies the outstanding assistant request.
	seq int

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// Message types
type (
	// AnswerMsg carries an assistant response to request Seq.
	AnswerMsg struct {
		Seq  int
		Task AITask
		Text string
	}

	// StatusMsg replaces the status line.
	StatusMsg string
)

// NewModel creates a new TUI model.
func NewModel(deps Deps) Model {
	ti := textinput.New()
	ti.CharLimit = 300
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(context.Background())

	bpm := 128.0
	if deps.Settings != nil && deps.Settings.DefaultBPM > 0 {
		bpm = deps.Settings.DefaultBPM
	}

	m := Model{
		deps:     deps,
		logger:   logging.OrNop(deps.Logger),
		keys:     defaultKeyMap(),
		styles:   newStyles(deps.State.State().DarkMode),
		sections: state.Sections(),
		input:    ti,
		spinner:  sp,
		help:     help.New(),
		palette:  catalog.NewPalette(state.PaletteEntries(), deps.Catalog),
		bpm:      bpm,
		ctx:      ctx,
		cancel:   cancel,
	}
	m.spinner.Style = m.styles.active
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) activeSection() state.Section {
	s, _ := state.LookupSection(m.deps.State.State().ActiveSection)
	return s
}

func (m Model) cursor() int {
	active := m.deps.State.State().ActiveSection
	return max(0, slices.IndexFunc(m.sections, func(s state.Section) bool { return s.ID == active }))
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		switch m.mode {
		case ModeInput:
			return m.updateInput(msg)
		case ModePalette:
			return m.updatePalette(msg)
		case ModeThinking:
			if key.Matches(msg, m.keys.Back) {
				m.cancel()
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.seq++
				m.mode = ModeBrowse
				m.status = "cancelled"
			}
			return m, nil
		}
		return m.updateBrowse(msg)

	case spinner.TickMsg:
		if m.mode != ModeThinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case AnswerMsg:
		if m.mode != ModeThinking || msg.Seq != m.seq {
			return m, nil
		}
		m.mode = ModeBrowse
		m.answer = msg.Text
		return m, nil

	case StatusMsg:
		m.status = string(msg)
		return m, nil
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	section := m.activeSection().ID

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.navigate(m.cursor() - 1)

	case key.Matches(msg, m.keys.Down):
		m.navigate(m.cursor() + 1)

	case key.Matches(msg, m.keys.Theme):
		st := m.deps.State.Dispatch(state.ToggleDarkMode{})
		m.styles = newStyles(st.DarkMode)
		m.spinner.Style = m.styles.active

	case key.Matches(msg, m.keys.Menu):
		m.deps.State.Dispatch(state.ToggleMobileMenu{})

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Palette):
		m.mode = ModePalette
		m.input.Placeholder = "Jump to a section or plugin"
		m.input.SetValue("")
		m.paletteHits = m.palette.Find("", paletteLimit)
		m.paletteCursor = 0
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Input):
		placeholder, ok := inputPlaceholder(section, m.task)
		if !ok {
			return m, nil
		}
		m.mode = ModeInput
		m.input.Placeholder = placeholder
		m.input.SetValue("")
		switch {
		case isPluginSection(section):
			m.input.SetValue(m.query)
		case isFilterSection(section):
			m.input.SetValue(m.filter)
		}
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Task) && section == sectionAssistant:
		m.task = (m.task + 1) % 3
		m.answer = ""

	case section == sectionCalculator:
		return m.updateCalculator(msg)
	}
	return m, nil
}

func (m Model) updateCalculator(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Faster):
		if m.bpm+1 <= calc.MaxBPM {
			m.bpm++
		}
	case key.Matches(msg, m.keys.Slower):
		if m.bpm-1 >= calc.MinBPM {
			m.bpm--
		}
	case key.Matches(msg, m.keys.Copy):
		t, err := calc.Compute(m.bpm)
		if err != nil {
			return m, nil
		}
		return m, copyCmd(strconv.Itoa(t.Quarter))
	default:
		presets := calc.Presets()
		if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 && n <= len(presets) {
			m.bpm = presets[n-1].BPM
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeBrowse
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Select):
		value := strings.TrimSpace(m.input.Value())
		m.mode = ModeBrowse
		m.input.Blur()
		return m.submit(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	section := m.activeSection().ID
	switch {
	case isPluginSection(section):
		m.query = value

	case isFilterSection(section):
		m.filter = value

	case section == sectionCalculator:
		bpm, err := strconv.ParseFloat(value, 64)
		if err != nil || !calc.ValidBPM(bpm) {
			m.status = fmt.Sprintf("invalid BPM %q", value)
			return m, nil
		}
		m.bpm = bpm

	case section == sectionAssistant:
		if value == "" {
			return m, nil
		}
		m.mode = ModeThinking
		m.answer = ""
		m.seq++
		m.logger.Debug("assistant request", zap.Stringer("task", m.task), zap.Int("seq", m.seq), zap.Bool("remote", m.deps.Gateway.HasAPIKey()))
		return m, tea.Batch(askCmd(m.ctx, m.deps.Gateway, m.task, value, m.seq), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeBrowse
		m.input.Blur()
		return m, nil

	case msg.Type == tea.KeyUp:
		if m.paletteCursor > 0 {
			m.paletteCursor--
		}
		return m, nil

	case msg.Type == tea.KeyDown:
		if m.paletteCursor < len(m.paletteHits)-1 {
			m.paletteCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		m.mode = ModeBrowse
		m.input.Blur()
		if len(m.paletteHits) == 0 {
			return m, nil
		}
		hit := m.paletteHits[m.paletteCursor]
		switch hit.Kind {
		case catalog.EntrySection:
			m.deps.State.Dispatch(state.SetActiveSection{Section: hit.ID})
		case catalog.EntryPlugin:
			m.deps.State.Dispatch(state.SetActiveSection{Section: sectionPluginsDB})
			m.query = hit.Label
		}
		m.answer, m.status, m.filter = "", "", ""
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.paletteHits = m.palette.Find(m.input.Value(), paletteLimit)
	m.paletteCursor = 0
	return m, cmd
}

func (m *Model) navigate(i int) {
	if i < 0 || i >= len(m.sections) {
		return
	}
	m.deps.State.Dispatch(state.SetActiveSection{Section: m.sections[i].ID})
	m.answer, m.status, m.filter = "", "", ""
}

func isPluginSection(id string) bool {
	return id == sectionPlugins || id == sectionPluginsDB || id == sectionNative
}

// isFilterSection reports whether id is a guide section narrowed by typed text.
func isFilterSection(id string) bool {
	return id == sectionDojo || id == sectionTrouble
}

func inputPlaceholder(section string, task AITask) (string, bool) {
	switch {
	case isPluginSection(section):
		return "Search plugins, families, tags", true
	case section == sectionDojo:
		return "Filter shortcuts by action or key", true
	case section == sectionTrouble:
		return "Describe the problem (e.g. crackling)", true
	case section == sectionCalculator:
		return "Project BPM", true
	case section == sectionAssistant:
		switch task {
		case TaskRecipe:
			return "Describe a sound (e.g. dark reese bass)", true
		case TaskSpark:
			return "Genre (e.g. lofi)", true
		}
		return "Ask an FL Studio question", true
	}
	return "", false
}

// askCmd runs one assistant request off the UI goroutine.
func askCmd(ctx context.Context, gw *ai.Gateway, task AITask, input string, seq int) tea.Cmd {
	return func() tea.Msg {
		switch task {
		case TaskRecipe:
			return AnswerMsg{Seq: seq, Task: task, Text: gw.SoundRecipe(ctx, input)}
		case TaskSpark:
			s := gw.Spark(ctx, input)
			return AnswerMsg{Seq: seq, Task: task, Text: fmt.Sprintf("%s\n%s BPM in %s\nConstraint: %s", s.Title, s.BPM, s.Key, s.Constraint)}
		}
		return AnswerMsg{Seq: seq, Task: task, Text: gw.AskGuru(ctx, input)}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return StatusMsg("clipboard unavailable: " + err.Error())
		}
		return StatusMsg("copied " + text + " ms")
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(m.styles.title.Render("🎹 FL Studio Hub"))
	b.WriteString("\n")

	content := m.viewContent()
	if m.showSidebar() {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.styles.sidebar.Render(m.viewSidebar()), content)
	}
	b.WriteString(content)
	b.WriteString("\n")

	switch m.mode {
	case ModeInput:
		b.WriteString("\n" + m.input.View() + "\n")
	case ModePalette:
		b.WriteString("\n" + m.viewPalette())
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.warning.Render(m.status) + "\n")
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) showSidebar() bool {
	return m.deps.State.State().MobileMenuOpen || m.width == 0 || m.width >= narrowWidth
}

func (m Model) viewSidebar() string {
	var b strings.Builder
	active := m.deps.State.State().ActiveSection
	groups := state.SectionsByCategory()

	for _, cat := range state.Categories() {
		b.WriteString(m.styles.category.Render(cat))
		b.WriteString("\n")
		for _, s := range groups[cat] {
			if s.ID == active {
				b.WriteString(m.styles.active.Render("› " + s.Label))
			} else {
				b.WriteString(m.styles.dim.Render("  " + s.Label))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) viewPalette() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")
	for i, hit := range m.paletteHits {
		line := fmt.Sprintf("%s  %s", hit.Label, m.styles.dim.Render(string(hit.Kind)+" · "+hit.Hint))
		if i == m.paletteCursor {
			b.WriteString(m.styles.active.Render("› ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Run starts the TUI application.
func Run(deps Deps) error {
	m := NewModel(deps)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.cancel()
	}
	return err
}
