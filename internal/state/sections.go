package state

import (
	"github.com/handiism/flstudio-hub/internal/catalog"
	"github.com/samber/lo"
)

// HomeSection is the initial active section.
const HomeSection = "home"

// Section is one navigable area of the hub.
type Section struct {
	ID       string
	Label    string
	Category string
}

var sections = []Section{
	{"home", "All Tools", "Browse"},
	{"plugins", "Instruments & Synths", "Browse"},
	{"plugins-database", "Plugin Database", "Browse"},
	{"native-advantages", "Native Advantages", "Browse"},
	{"mixing", "Mixing & Mastering", "Production"},
	{"templates", "Song Templates", "Templates"},
	{"project-templates", "Project Templates", "Templates"},
	{"dojo", "Shortcut Dojo", "Learning"},
	{"midi-mapping", "MIDI Mapping", "Learning"},
	{"modules", "The Big 5 (UI)", "Learning"},
	{"utilities", "Studio Calculator", "Tools"},
	{"troubleshoot", "Troubleshooting", "Tools"},
	{"ai-assistant", "AI Assistant", "Smart"},
	{"export", "Export Guide", "Tools"},
}

var sectionIndex = lo.KeyBy(sections, func(s Section) string { return s.ID })

// Sections returns the section registry in sidebar order.
func Sections() []Section {
	return append([]Section(nil), sections...)
}

// LookupSection returns the section with id.
func LookupSection(id string) (Section, bool) {
	s, ok := sectionIndex[id]
	return s, ok
}

// IsSection reports whether id names a registered section.
func IsSection(id string) bool {
	_, ok := sectionIndex[id]
	return ok
}

// Categories returns category names in first-seen order.
func Categories() []string {
	return lo.Uniq(lo.Map(sections, func(s Section, _ int) string { return s.Category }))
}

// SectionsByCategory groups the registry for the sidebar.
func SectionsByCategory() map[string][]Section {
	return lo.GroupBy(sections, func(s Section) string { return s.Category })
}

// PaletteEntries converts the registry for catalog.NewPalette.
func PaletteEntries() []catalog.PaletteEntry {
	return lo.Map(sections, func(s Section, _ int) catalog.PaletteEntry {
		return catalog.PaletteEntry{Kind: catalog.EntrySection, ID: s.ID, Label: s.Label, Hint: s.Category}
	})
}
