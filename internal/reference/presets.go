package reference

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/samber/lo"
)

//go:embed data/presets.json
var presetsJSON []byte

// MixerSetting is a suggested level or treatment for one mixer track.
type MixerSetting struct {
	Track   string `json:"track"`
	Setting string `json:"setting"`
}

// GenrePreset is a genre starting point: tempo range, key, go-to plugins
// and a mixer layout.
type GenrePreset struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	BPM             string         `json:"bpm"`
	Key             string         `json:"key"`
	Characteristics []string       `json:"characteristics"`
	Plugins         []string       `json:"plugins"`
	MixerSetup      []MixerSetting `json:"mixerSetup"`
}

// MixerTemplate is an insert chain for one kind of source.
type MixerTemplate struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tracks      int      `json:"tracks"`
	Plugins     []string `json:"plugins"`
	Inserts     []string `json:"inserts"`
}

type presetsData struct {
	Genres []GenrePreset   `json:"genres"`
	Mixers []MixerTemplate `json:"mixers"`
}

var loadPresets = sync.OnceValue(func() presetsData {
	var d presetsData
	if err := json.Unmarshal(presetsJSON, &d); err != nil {
		panic(fmt.Sprintf("reference: bundled presets.json: %v", err))
	}
	return d
})

// GenrePresets returns every genre preset in bundled order.
func GenrePresets() []GenrePreset {
	return slices.Clone(loadPresets().Genres)
}

// GenrePresetByID returns the genre preset with id.
func GenrePresetByID(id string) (GenrePreset, bool) {
	return lo.Find(loadPresets().Genres, func(g GenrePreset) bool { return g.ID == id })
}

// MixerTemplates returns every mixer template in bundled order.
func MixerTemplates() []MixerTemplate {
	return slices.Clone(loadPresets().Mixers)
}

// MixerTemplateByID returns the mixer template with id.
func MixerTemplateByID(id string) (MixerTemplate, bool) {
	return lo.Find(loadPresets().Mixers, func(m MixerTemplate) bool { return m.ID == id })
}

// MinBPM is the lower end of the preset's tempo range, or 0 when the
// range does not start with a number.
func (g GenrePreset) MinBPM() int {
	s := strings.TrimSpace(g.BPM)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end < 0 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ToProjectTemplate turns a genre preset into a project template draft:
// one channel per plugin and one mixer track per mixer setting, at the
// bottom of the tempo range.
func (g GenrePreset) ToProjectTemplate() model.ProjectTemplate {
	t := model.NewTemplateDraft(g.Name, g.ID, g.MinBPM(), g.Key)
	t.Description = g.Description
	for _, p := range g.Plugins {
		t.AddChannel(p, p)
	}
	for _, s := range g.MixerSetup {
		t.AddMixerTrack(s.Track)
	}
	return t
}

// ApplyTo appends the chain to t as one mixer track named after the
// template, with the template's plugins as its effects.
func (m MixerTemplate) ApplyTo(t *model.ProjectTemplate) model.MixerTrack {
	mt := t.AddMixerTrack(m.Name)
	mt.Effects = slices.Clone(m.Plugins)
	t.MixerTracks[len(t.MixerTracks)-1] = mt
	return mt
}
