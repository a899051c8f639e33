package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/flstudio-hub/internal/calc"
	"github.com/handiism/flstudio-hub/internal/catalog"
	"github.com/handiism/flstudio-hub/internal/reference"
	"github.com/handiism/flstudio-hub/internal/state"
)

// maxRows bounds list views when the terminal height is unknown.
const maxRows = 15

func (m Model) viewContent() string {
	section := m.activeSection()

	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render(section.Label))
	b.WriteString("\n\n")

	switch section.ID {
	case state.HomeSection:
		b.WriteString(m.viewHome())
	case sectionPlugins, sectionPluginsDB:
		b.WriteString(m.viewPlugins(catalog.Filters{}))
	case sectionNative:
		b.WriteString(m.viewPlugins(catalog.Filters{NativeOnly: true}))
	case sectionSongs:
		b.WriteString(m.viewSongs())
	case sectionProjects:
		b.WriteString(m.viewProjects())
	case sectionMIDI:
		b.WriteString(m.viewMIDI())
	case sectionCalculator:
		b.WriteString(m.viewCalculator())
	case sectionAssistant:
		b.WriteString(m.viewAssistant())
	case sectionMixing:
		b.WriteString(m.viewMixing())
	case sectionDojo:
		b.WriteString(m.viewDojo())
	case sectionModules:
		b.WriteString(m.viewModules())
	case sectionTrouble:
		b.WriteString(m.viewTroubleshoot())
	case sectionExport:
		b.WriteString(m.viewExport())
	}
	return b.String()
}

func (m Model) rows() int {
	if m.height > 12 {
		return m.height - 12
	}
	return maxRows
}

func (m Model) viewHome() string {
	var b strings.Builder
	groups := state.SectionsByCategory()
	for _, cat := range state.Categories() {
		labels := make([]string, 0, len(groups[cat]))
		for _, s := range groups[cat] {
			labels = append(labels, s.Label)
		}
		b.WriteString(m.styles.category.Render(cat) + "  " + m.styles.text.Render(strings.Join(labels, " · ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.dim.Render(fmt.Sprintf("%d plugins indexed. Press ctrl+k to jump anywhere.", m.deps.Catalog.Len())))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewPlugins(f catalog.Filters) string {
	var b strings.Builder
	results := m.deps.Catalog.Query(catalog.SearchParams{
		Query:     m.query,
		Filters:   f,
		SortBy:    catalog.SortByName,
		SortOrder: catalog.Asc,
	})

	if m.query != "" {
		b.WriteString(m.styles.dim.Render(fmt.Sprintf("Query: %q", m.query)))
		b.WriteString("\n")
	}
	if len(results) == 0 {
		b.WriteString(m.styles.warning.Render("No plugins match."))
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range results {
		if i == m.rows() {
			b.WriteString(m.styles.dim.Render(fmt.Sprintf("… %d more", len(results)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(m.styles.text.Render(fmt.Sprintf("%-18s", p.Name)))
		b.WriteString(m.styles.dim.Render(fmt.Sprintf(" %-20s %s", p.Family, p.Edition)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewSongs() string {
	var b strings.Builder
	for i, s := range reference.SongTemplates() {
		if i == m.rows() {
			break
		}
		b.WriteString(m.styles.text.Render(fmt.Sprintf("%-22s", s.Name)))
		b.WriteString(m.styles.dim.Render(fmt.Sprintf(" %-7s %3d BPM  %s", s.Genre, s.BPM, s.Key)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewProjects() string {
	var b strings.Builder
	list := m.deps.Templates.List()
	if len(list) == 0 {
		b.WriteString(m.styles.dim.Render("No saved templates. Create one with: flhub templates create"))
		b.WriteString("\n")
		return b.String()
	}
	for _, t := range list {
		b.WriteString(m.styles.text.Render(fmt.Sprintf("%-22s", t.Name)))
		b.WriteString(m.styles.dim.Render(fmt.Sprintf(" %-8s %3d BPM  %d ch  %s", t.Genre, t.BPM, len(t.Channels), t.DateModified.Local().Format("2006-01-02"))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewMIDI() string {
	var b strings.Builder
	for _, c := range reference.Controllers() {
		b.WriteString(m.styles.category.Render(c.Name))
		b.WriteString(m.styles.dim.Render("  " + c.Type))
		b.WriteString("\n")
		for _, mp := range c.Mappings {
			b.WriteString(fmt.Sprintf("  %-14s → %s\n", mp.Control, mp.Function))
		}
	}
	return b.String()
}

func (m Model) viewCalculator() string {
	t, err := calc.Compute(m.bpm)
	if err != nil {
		return m.styles.err.Render(err.Error()) + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.active.Render(fmt.Sprintf("%g BPM", m.bpm)))
	presets := calc.Presets()
	labels := make([]string, len(presets))
	for i, p := range presets {
		labels[i] = fmt.Sprintf("%d:%s", i+1, p.Label)
	}
	b.WriteString("  " + m.styles.dim.Render(strings.Join(labels, " ")))
	b.WriteString("\n\n")

	cols := make([]string, 0, 5)
	for _, g := range t.Groups() {
		var col strings.Builder
		col.WriteString(m.styles.category.Render(g.Title))
		col.WriteString("\n")
		for _, r := range g.Rows {
			col.WriteString(fmt.Sprintf("%-12s %s\n", r.Label, r.Value))
		}
		cols = append(cols, lipgloss.NewStyle().MarginRight(3).Render(col.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewAssistant() string {
	var b strings.Builder

	source := m.styles.warning.Render("offline answers (set a Gemini key with: flhub ai key set)")
	if m.deps.Gateway.HasAPIKey() {
		source = m.styles.success.Render("Gemini connected")
	}
	b.WriteString(m.styles.text.Render("Mode: "+m.task.String()) + "  " + source)
	b.WriteString("\n\n")

	switch {
	case m.mode == ModeThinking:
		b.WriteString(m.spinner.View() + " " + m.styles.subtitle.Render("Thinking..."))
	case m.answer != "":
		width := 70
		if m.width > 40 {
			width = min(m.width-30, 100)
		}
		b.WriteString(m.styles.box.Width(width).Render(m.answer))
	default:
		b.WriteString(m.styles.dim.Render("Press / to ask, tab to switch mode."))
	}
	b.WriteString("\n")
	return b.String()
}

// clip keeps the first rows() lines of a long guide.
func (m Model) clip(lines []string) string {
	var b strings.Builder
	for i, l := range lines {
		if i == m.rows() {
			b.WriteString(m.styles.dim.Render(fmt.Sprintf("… %d more lines", len(lines)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString(l)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) filterLine() string {
	if m.filter == "" {
		return m.styles.dim.Render("Press / to filter.")
	}
	return m.styles.dim.Render(fmt.Sprintf("Filter: %q", m.filter))
}

func (m Model) severity(level string) string {
	switch level {
	case "high":
		return m.styles.err.Render("HIGH")
	case "medium":
		return m.styles.warning.Render("MED ")
	}
	return m.styles.dim.Render("LOW ")
}

func (m Model) viewTroubleshoot() string {
	lines := []string{m.filterLine()}
	matches := reference.FindIssues(m.filter)
	if len(matches) == 0 {
		lines = append(lines, m.styles.warning.Render("No issues match."))
	}
	category := ""
	for _, is := range matches {
		if is.Category.ID != category {
			category = is.Category.ID
			lines = append(lines, "", m.styles.category.Render(is.Category.Title))
		}
		lines = append(lines, m.severity(is.Issue.Severity)+" "+m.styles.text.Render(is.Issue.Symptom))
		for _, sol := range is.Issue.Solutions {
			lines = append(lines, m.styles.dim.Render("     · "+sol))
		}
	}
	if m.filter == "" {
		lines = append(lines, "", m.styles.category.Render("Performance tips"))
		for _, tip := range reference.PerformanceTips() {
			lines = append(lines, "  "+tip)
		}
	}
	return m.clip(lines)
}

func (m Model) viewDojo() string {
	lines := []string{m.filterLine()}
	matches := reference.FindShortcuts(m.filter, "")
	if len(matches) == 0 {
		lines = append(lines, m.styles.warning.Render("No shortcuts match."))
	}
	category := ""
	for _, sc := range matches {
		if sc.Category != category {
			category = sc.Category
			lines = append(lines, m.styles.category.Render(category))
		}
		lines = append(lines, fmt.Sprintf("  %-30s %s", sc.Action, m.styles.active.Render(sc.Key)))
	}
	return m.clip(lines)
}

func (m Model) viewMixing() string {
	var lines []string
	for _, c := range reference.MixingConcepts() {
		lines = append(lines, m.styles.category.Render(c.Title))
		for _, it := range c.Items {
			lines = append(lines, "  "+m.styles.text.Render(it.Title)+m.styles.dim.Render("  "+it.Tip))
		}
	}
	lines = append(lines, "", m.styles.category.Render("Genre presets"))
	for _, g := range reference.GenrePresets() {
		lines = append(lines, fmt.Sprintf("  %-20s %s", g.Name, m.styles.dim.Render(g.BPM+" BPM  "+strings.Join(g.Plugins, ", "))))
	}
	lines = append(lines, "", m.styles.category.Render("Mixer chains"))
	for _, mt := range reference.MixerTemplates() {
		lines = append(lines, fmt.Sprintf("  %-26s %s", mt.Name, m.styles.dim.Render(strings.Join(mt.Plugins, " → "))))
	}
	lines = append(lines, "", m.styles.dim.Render("Save a preset with: flhub presets use <genre>"))
	return m.clip(lines)
}

func (m Model) viewModules() string {
	var lines []string
	for _, mod := range reference.Modules() {
		lines = append(lines, m.styles.category.Render(mod.Title)+"  "+m.styles.dim.Render(mod.Description))
		for _, f := range mod.Features {
			lines = append(lines, fmt.Sprintf("  %-18s %s", f.Label, f.Description))
		}
	}
	return m.clip(lines)
}

func (m Model) viewExport() string {
	var lines []string
	for _, f := range reference.ExportFormats() {
		lines = append(lines, m.styles.text.Render(fmt.Sprintf("%-24s %-12s", f.Context, f.Format))+" "+m.styles.dim.Render(f.BitDepth))
	}
	for _, p := range reference.ExportPractices() {
		lines = append(lines, "", m.styles.category.Render(p.Category))
		for _, it := range p.Items {
			lines = append(lines, "  · "+it)
		}
	}
	return m.clip(lines)
}
