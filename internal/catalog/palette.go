package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// EntryKind tells the palette caller what a match points at.
type EntryKind string

const (
	EntrySection EntryKind = "section"
	EntryPlugin  EntryKind = "plugin"
)

// PaletteEntry is one jump target in the command palette.
type PaletteEntry struct {
	Kind  EntryKind
	ID    string
	Label string
	// Hint is extra text matched alongside Label (category, family).
	Hint string
}

// Palette ranks entries against a typed pattern.
type Palette struct {
	entries []PaletteEntry
}

// NewPalette builds a palette from the given sections followed by every
// plugin in the catalog.
func NewPalette(sections []PaletteEntry, c *Catalog) *Palette {
	entries := append([]PaletteEntry(nil), sections...)
	if c != nil {
		for _, p := range c.plugins {
			entries = append(entries, PaletteEntry{
				Kind:  EntryPlugin,
				ID:    p.ID,
				Label: p.Name,
				Hint:  string(p.Family),
			})
		}
	}
	return &Palette{entries: entries}
}

// paletteSource implements fuzzy.Source.
type paletteSource []PaletteEntry

func (s paletteSource) String(i int) string {
	return strings.ToLower(s[i].Label + " " + s[i].Hint)
}

func (s paletteSource) Len() int { return len(s) }

// Find returns up to limit entries ranked by fuzzy score. An empty
// pattern returns the first limit entries unranked. limit <= 0 means all.
func (p *Palette) Find(pattern string, limit int) []PaletteEntry {
	var out []PaletteEntry
	if strings.TrimSpace(pattern) == "" {
		out = append(out, p.entries...)
	} else {
		for _, m := range fuzzy.FindFrom(strings.ToLower(pattern), paletteSource(p.entries)) {
			out = append(out, p.entries[m.Index])
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
