package model

import (
	"fmt"
	"slices"
	"strconv"
	"sync/atomic"
	"time"
)

// ClipType is the kind of content a playlist clip references.
type ClipType string

const (
	ClipAudio      ClipType = "audio"
	ClipPattern    ClipType = "pattern"
	ClipAutomation ClipType = "automation"
)

// DefaultPatternLength is the step count of a newly added pattern.
const DefaultPatternLength = 16

// Channel is a Channel Rack entry in a project template.
type Channel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Plugin string  `json:"plugin"`
	Color  string  `json:"color"`
	Volume float64 `json:"volume"`
	Pan    float64 `json:"pan"`
	Muted  bool    `json:"muted"`
	Soloed bool    `json:"soloed"`
}

// MixerTrack is a mixer insert with its effect chain.
type MixerTrack struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Volume  float64  `json:"volume"`
	Pan     float64  `json:"pan"`
	Muted   bool     `json:"muted"`
	Soloed  bool     `json:"soloed"`
	Effects []string `json:"effects"`
}

// Pattern is a step pattern. Channel holds a channel id and is not
// checked against the template's channels.
type Pattern struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Length  int    `json:"length"`
	Channel string `json:"channel"`
}

// PlaylistClip places a pattern, audio file or automation on the timeline.
type PlaylistClip struct {
	ID        string   `json:"id"`
	Type      ClipType `json:"type"`
	Position  float64  `json:"position"`
	Length    float64  `json:"length"`
	ContentID string   `json:"contentId"`
}

// ProjectTemplate is a user-saved project skeleton.
//
// Templates are replaced whole on save; the persistence layer owns ID,
// DateCreated and DateModified.
type ProjectTemplate struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Genre        string         `json:"genre"`
	BPM          int            `json:"bpm"`
	Key          string         `json:"key"`
	Channels     []Channel      `json:"channels"`
	MixerTracks  []MixerTrack   `json:"mixerTracks"`
	Patterns     []Pattern      `json:"patterns"`
	Playlist     []PlaylistClip `json:"playlist"`
	DateCreated  time.Time      `json:"dateCreated"`
	DateModified time.Time      `json:"dateModified"`
}

// NewTemplateDraft returns a template with empty, non-nil collections.
func NewTemplateDraft(name, genre string, bpm int, key string) ProjectTemplate {
	return ProjectTemplate{
		Name:        name,
		Genre:       genre,
		BPM:         bpm,
		Key:         key,
		Channels:    []Channel{},
		MixerTracks: []MixerTrack{},
		Patterns:    []Pattern{},
		Playlist:    []PlaylistClip{},
	}
}

// Normalize replaces nil collections with empty ones so the JSON form
// always carries arrays.
func (t *ProjectTemplate) Normalize() {
	if t.Channels == nil {
		t.Channels = []Channel{}
	}
	if t.MixerTracks == nil {
		t.MixerTracks = []MixerTrack{}
	}
	if t.Patterns == nil {
		t.Patterns = []Pattern{}
	}
	if t.Playlist == nil {
		t.Playlist = []PlaylistClip{}
	}
	for i := range t.MixerTracks {
		if t.MixerTracks[i].Effects == nil {
			t.MixerTracks[i].Effects = []string{}
		}
	}
}

// Clone returns a deep copy of the template.
func (t ProjectTemplate) Clone() ProjectTemplate {
	c := t
	c.Channels = slices.Clone(t.Channels)
	c.Patterns = slices.Clone(t.Patterns)
	c.Playlist = slices.Clone(t.Playlist)
	c.MixerTracks = make([]MixerTrack, len(t.MixerTracks))
	for i, mt := range t.MixerTracks {
		mt.Effects = slices.Clone(mt.Effects)
		c.MixerTracks[i] = mt
	}
	if t.MixerTracks == nil {
		c.MixerTracks = nil
	}
	return c
}

// ExportFileName is the suggested file name for an exported template.
func (t ProjectTemplate) ExportFileName() string {
	return fmt.Sprintf("fl-studio-template-%s.json", t.ID)
}

var childSeq atomic.Uint64

// childID builds a prefixed id from the clock plus a process-wide counter,
// so ids created within the same millisecond stay distinct.
func childID(prefix string) string {
	n := childSeq.Add(1)
	return prefix + "-" + strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatUint(n, 36)
}

// AddChannel appends a channel at unity volume, centered.
func (t *ProjectTemplate) AddChannel(name, plugin string) Channel {
	ch := Channel{
		ID:     childID("channel"),
		Name:   name,
		Plugin: plugin,
		Color:  "#6366f1",
		Volume: 0.8,
		Pan:    0,
	}
	t.Channels = append(t.Channels, ch)
	return ch
}

// RemoveChannel deletes a channel by id. Patterns that referenced it are
// left as they are.
func (t *ProjectTemplate) RemoveChannel(id string) bool {
	n := len(t.Channels)
	t.Channels = slices.DeleteFunc(t.Channels, func(c Channel) bool { return c.ID == id })
	return len(t.Channels) != n
}

// AddMixerTrack appends a mixer insert with an empty effect chain.
func (t *ProjectTemplate) AddMixerTrack(name string) MixerTrack {
	mt := MixerTrack{
		ID:      childID("track"),
		Name:    name,
		Volume:  0.8,
		Effects: []string{},
	}
	t.MixerTracks = append(t.MixerTracks, mt)
	return mt
}

// RemoveMixerTrack deletes a mixer insert by id.
func (t *ProjectTemplate) RemoveMixerTrack(id string) bool {
	n := len(t.MixerTracks)
	t.MixerTracks = slices.DeleteFunc(t.MixerTracks, func(m MixerTrack) bool { return m.ID == id })
	return len(t.MixerTracks) != n
}

// AddPattern appends a DefaultPatternLength-step pattern bound to channelID.
func (t *ProjectTemplate) AddPattern(name, channelID string) Pattern {
	p := Pattern{
		ID:      childID("pattern"),
		Name:    name,
		Length:  DefaultPatternLength,
		Channel: channelID,
	}
	t.Patterns = append(t.Patterns, p)
	return p
}

// RemovePattern deletes a pattern by id.
func (t *ProjectTemplate) RemovePattern(id string) bool {
	n := len(t.Patterns)
	t.Patterns = slices.DeleteFunc(t.Patterns, func(p Pattern) bool { return p.ID == id })
	return len(t.Patterns) != n
}
