package samples

import (
	"cmp"
	"math"
	"slices"

	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/samber/lo"
)

// maxSuggestedChannels caps the channels a suggested template gets.
const maxSuggestedChannels = 16

// Count is a value and how many samples carry it.
type Count[T comparable] struct {
	Value T
	N     int
}

// Summary groups a library by tempo, key and genre.
type Summary struct {
	Total   int
	Tagged  int
	ByBPM   []Count[int]
	ByKey   []Count[string]
	ByGenre []Count[string]

	samples []Sample
}

// Summary groups the library's samples. BPMs are rounded to whole beats.
func (l *Library) Summary() Summary {
	tagged := lo.Filter(l.Samples, func(s Sample, _ int) bool {
		return s.BPMValue() > 0 || s.Key != ""
	})

	withBPM := lo.FilterMap(l.Samples, func(s Sample, _ int) (int, bool) {
		v := s.BPMValue()
		return int(math.Round(v)), v > 0
	})
	withKey := lo.FilterMap(l.Samples, func(s Sample, _ int) (string, bool) { return s.Key, s.Key != "" })
	withGenre := lo.FilterMap(l.Samples, func(s Sample, _ int) (string, bool) { return s.Genre, s.Genre != "" })

	return Summary{
		Total:   len(l.Samples),
		Tagged:  len(tagged),
		ByBPM:   ranked(withBPM),
		ByKey:   ranked(withKey),
		ByGenre: ranked(withGenre),
		samples: l.Samples,
	}
}

// ranked orders values by count, then by value, both deterministic.
func ranked[T cmp.Ordered](values []T) []Count[T] {
	counts := lo.MapToSlice(lo.CountValues(values), func(v T, n int) Count[T] {
		return Count[T]{Value: v, N: n}
	})
	slices.SortFunc(counts, func(a, b Count[T]) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return counts
}

// DominantBPM returns the most common BPM, or fallback when none is tagged.
func (s Summary) DominantBPM(fallback int) int {
	if len(s.ByBPM) == 0 {
		return fallback
	}
	return s.ByBPM[0].Value
}

// DominantKey returns the most common key, or "" when none is tagged.
func (s Summary) DominantKey() string {
	if len(s.ByKey) == 0 {
		return ""
	}
	return s.ByKey[0].Value
}

// SuggestTemplate drafts a project template at the library's dominant
// tempo and key. Samples matching that tempo become channels.
func (s Summary) SuggestTemplate(name string, fallbackBPM int) model.ProjectTemplate {
	bpm := s.DominantBPM(fallbackBPM)
	genre := ""
	if len(s.ByGenre) > 0 {
		genre = s.ByGenre[0].Value
	}

	t := model.NewTemplateDraft(name, genre, bpm, s.DominantKey())
	t.Description = "Suggested from sample library"

	matching := lo.Filter(s.samples, func(sm Sample, _ int) bool {
		return int(math.Round(sm.BPMValue())) == bpm
	})
	for _, sm := range lo.Slice(matching, 0, maxSuggestedChannels) {
		ch := t.AddChannel(sm.Name(), "Audio Clip")
		t.AddPattern(sm.Name(), ch.ID)
	}
	if len(matching) > 0 {
		t.AddMixerTrack("Samples")
	}
	return t
}
