// Package reference serves the bundled song structure templates and MIDI
// controller mappings.
package reference

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/samber/lo"
)

//go:embed data/songs.json
var songsJSON []byte

//go:embed data/controllers.json
var controllersJSON []byte

// Layer is one instrument group in a song template.
type Layer struct {
	Category string   `json:"category"`
	Elements []string `json:"elements"`
}

// SongTemplate describes the typical arrangement of a genre.
type SongTemplate struct {
	ID          string  `json:"id"`
	Genre       string  `json:"genre"`
	Name        string  `json:"name"`
	BPM         int     `json:"bpm"`
	Key         string  `json:"key"`
	Description string  `json:"description"`
	Layers      []Layer `json:"layers"`
}

// Mapping is a suggested control assignment.
type Mapping struct {
	Control      string `json:"control"`
	Function     string `json:"function"`
	DefaultParam string `json:"defaultParam"`
}

// Controller is a MIDI controller with its common mappings.
type Controller struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Manufacturer string    `json:"manufacturer"`
	Type         string    `json:"type"`
	Description  string    `json:"description"`
	Mappings     []Mapping `json:"mappings"`
}

// CCMessage is a standard MIDI continuous controller number.
type CCMessage struct {
	CC          int    `json:"cc"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DrumNote is a General MIDI drum note.
type DrumNote struct {
	Note        int    `json:"note"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// MappingMatch pairs a mapping with the controller it belongs to.
type MappingMatch struct {
	Controller Controller
	Mapping    Mapping
}

type midiData struct {
	Controllers []Controller `json:"controllers"`
	CCMessages  []CCMessage  `json:"ccMessages"`
	DrumNotes   []DrumNote   `json:"drumNotes"`
}

var loadSongs = sync.OnceValue(func() []SongTemplate {
	var songs []SongTemplate
	if err := json.Unmarshal(songsJSON, &songs); err != nil {
		panic(fmt.Sprintf("reference: bundled songs.json: %v", err))
	}
	return songs
})

var loadMIDI = sync.OnceValue(func() midiData {
	var d midiData
	if err := json.Unmarshal(controllersJSON, &d); err != nil {
		panic(fmt.Sprintf("reference: bundled controllers.json: %v", err))
	}
	return d
})

// SongTemplates returns every song template in bundled order.
func SongTemplates() []SongTemplate {
	return slices.Clone(loadSongs())
}

// Genres returns the genres that have templates, in first-seen order.
func Genres() []string {
	return lo.Uniq(lo.Map(loadSongs(), func(s SongTemplate, _ int) string { return s.Genre }))
}

// SongTemplatesByGenre returns templates of genre. "" and "all" return
// everything.
func SongTemplatesByGenre(genre string) []SongTemplate {
	if genre == "" || strings.EqualFold(genre, "all") {
		return SongTemplates()
	}
	return lo.Filter(loadSongs(), func(s SongTemplate, _ int) bool {
		return strings.EqualFold(s.Genre, genre)
	})
}

// SongTemplateByID returns the template with id.
func SongTemplateByID(id string) (SongTemplate, bool) {
	return lo.Find(loadSongs(), func(s SongTemplate) bool { return s.ID == id })
}

// Controllers returns every bundled controller.
func Controllers() []Controller {
	return slices.Clone(loadMIDI().Controllers)
}

// ControllerByID returns the controller with id.
func ControllerByID(id string) (Controller, bool) {
	return lo.Find(loadMIDI().Controllers, func(c Controller) bool { return c.ID == id })
}

// CCMessages returns the common CC reference.
func CCMessages() []CCMessage {
	return slices.Clone(loadMIDI().CCMessages)
}

// DrumNotes returns the General MIDI drum map, sorted by note.
func DrumNotes() []DrumNote {
	notes := slices.Clone(loadMIDI().DrumNotes)
	slices.SortFunc(notes, func(a, b DrumNote) int { return a.Note - b.Note })
	return notes
}

// FindMappings returns every mapping whose function or control contains
// query, case-insensitively.
func FindMappings(query string) []MappingMatch {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []MappingMatch
	for _, c := range loadMIDI().Controllers {
		for _, m := range c.Mappings {
			if strings.Contains(strings.ToLower(m.Function), q) || strings.Contains(strings.ToLower(m.Control), q) {
				out = append(out, MappingMatch{Controller: c, Mapping: m})
			}
		}
	}
	return out
}

// ToProjectTemplate turns a song template into a project template draft:
// one channel per layer element and one mixer track per layer.
func (s SongTemplate) ToProjectTemplate() model.ProjectTemplate {
	t := model.NewTemplateDraft(s.Name, s.Genre, s.BPM, s.Key)
	t.Description = s.Description
	for _, l := range s.Layers {
		t.AddMixerTrack(l.Category)
		for _, e := range l.Elements {
			t.AddChannel(e, "")
		}
	}
	return t
}
