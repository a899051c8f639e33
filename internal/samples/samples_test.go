package samples

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/handiism/flstudio-hub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeAudio = bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 64)

func writeSample(t *testing.T, path string, tags Tags, artwork []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, fakeAudio, 0644))
	require.NoError(t, NewTagger(nil).SaveTags(path, tags, artwork))
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

type eventLog struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (l *eventLog) add(e ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) count(level ProgressLevel) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Level == level {
			n++
		}
	}
	return n
}

func TestTagger_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kick.mp3")
	art := testJPEG(t, 32, 32)
	writeSample(t, path, Tags{Title: "Kick 01", Genre: "House", BPM: "124", Key: "A Minor"}, art)

	tags, artwork, err := NewTagger(nil).ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, "Kick 01", tags.Title)
	assert.Equal(t, "House", tags.Genre)
	assert.Equal(t, "124", tags.BPM)
	assert.Equal(t, "A Minor", tags.Key)
	assert.Equal(t, art, artwork)
	assert.Equal(t, 124.0, tags.BPMValue())
}

func TestTagger_EditActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.mp3")
	writeSample(t, path, Tags{Title: "Loop", Genre: "Trap", BPM: "140", Key: "F Minor"}, nil)

	cfg := &TagConfig{BPM: TagModify, Key: TagEmpty, Genre: TagDoNotModify, Title: TagDoNotModify, Artist: TagDoNotModify}
	require.NoError(t, NewTagger(cfg).SaveTags(path, Tags{BPM: "70", Key: "C Major", Genre: "Pop"}, nil))

	tags, _, err := NewTagger(nil).ReadTags(path)
	require.NoError(t, err)
	assert.Equal(t, "70", tags.BPM)
	assert.Empty(t, tags.Key)
	assert.Equal(t, "Trap", tags.Genre)
	assert.Equal(t, "Loop", tags.Title)
}

func TestTagger_MissingFile(t *testing.T) {
	err := NewTagger(nil).SaveTags(filepath.Join(t.TempDir(), "nope.mp3"), Tags{BPM: "1"}, nil)
	assert.Error(t, err)
}

func TestTags_BPMValue(t *testing.T) {
	tests := map[string]float64{"128": 128, " 87.5 ": 87.5, "": 0, "fast": 0, "-3": 0}
	for in, want := range tests {
		assert.Equal(t, want, Tags{BPM: in}.BPMValue(), "BPM %q", in)
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeSample(t, filepath.Join(root, "drums", "kick.mp3"), Tags{Title: "Kick", BPM: "128", Key: "F Minor", Genre: "House"}, nil)
	writeSample(t, filepath.Join(root, "drums", "clap.MP3"), Tags{BPM: "128", Key: "F Minor", Genre: "House"}, nil)
	writeSample(t, filepath.Join(root, "keys", "chords.mp3"), Tags{Title: "Chords", BPM: "90", Key: "C Minor"}, testJPEG(t, 600, 400))
	writeSample(t, filepath.Join(root, "fx", "riser.mp3"), Tags{Title: "Riser"}, nil)
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.txt"), []byte("not audio"), 0644))

	settings := config.DefaultSettings()
	settings.ScanConcurrency = 2
	settings.ArtworkMaxSize = 100

	var log eventLog
	thumbs := filepath.Join(t.TempDir(), "thumbs")
	scanner := NewScanner(settings, log.add).WithThumbnails(thumbs)

	lib, err := scanner.Scan(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, lib.Samples, 4)
	assert.Zero(t, lib.Failed)

	scanned, total := scanner.GetProgress()
	assert.EqualValues(t, 4, scanned)
	assert.EqualValues(t, 4, total)

	assert.Equal(t, "clap", lib.Samples[0].Name(), "samples are sorted by path and named by file when untitled")

	var chords Sample
	for _, s := range lib.Samples {
		if s.Title == "Chords" {
			chords = s
		}
	}
	require.True(t, chords.HasArtwork)
	require.NotEmpty(t, chords.Thumbnail)

	f, err := os.Open(chords.Thumbnail)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)

	assert.Equal(t, 1, log.count(LevelSuccess))
	assert.Zero(t, log.count(LevelError))
}

func TestScanner_BadFileIsReported(t *testing.T) {
	root := t.TempDir()
	writeSample(t, filepath.Join(root, "ok.mp3"), Tags{BPM: "100"}, nil)

	require.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "dangling.mp3")))

	var log eventLog
	lib, err := NewScanner(config.DefaultSettings(), log.add).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, lib.Samples, 1)
	assert.Equal(t, 1, lib.Failed)
	assert.Equal(t, 1, log.count(LevelError))
	assert.Equal(t, 1, log.count(LevelWarning))
}

func TestScanner_ProgressIsSerial(t *testing.T) {
	root := t.TempDir()
	for i := range 32 {
		writeSample(t, filepath.Join(root, fmt.Sprintf("loop%02d.mp3", i)), Tags{}, nil)
	}

	settings := config.DefaultSettings()
	settings.ScanConcurrency = 8

	// No locking here: concurrent callbacks would trip the race detector
	// and the in-flight check.
	var (
		inFlight int32
		overlaps int
		events   []ProgressEvent
	)
	onProgress := func(e ProgressEvent) {
		if atomic.AddInt32(&inFlight, 1) > 1 {
			overlaps++
		}
		events = append(events, e)
		atomic.AddInt32(&inFlight, -1)
	}

	lib, err := NewScanner(settings, onProgress).Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Len(t, lib.Samples, 32)
	assert.Zero(t, overlaps)
	// found + (no BPM + read) per file + summary
	assert.Len(t, events, 2+2*32)
}

func TestScanner_MissingRoot(t *testing.T) {
	_, err := NewScanner(config.DefaultSettings(), nil).Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestScanner_Canceled(t *testing.T) {
	root := t.TempDir()
	writeSample(t, filepath.Join(root, "a.mp3"), Tags{BPM: "100"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewScanner(config.DefaultSettings(), nil).Scan(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSummary_SuggestTemplate(t *testing.T) {
	lib := &Library{Samples: []Sample{
		{Path: "/a/kick.mp3", Tags: Tags{Title: "Kick", BPM: "128", Key: "F Minor", Genre: "House"}},
		{Path: "/a/hat.mp3", Tags: Tags{Title: "Hat", BPM: "127.6", Key: "F Minor", Genre: "House"}},
		{Path: "/a/pad.mp3", Tags: Tags{Title: "Pad", BPM: "90", Key: "C Minor", Genre: "Lofi"}},
		{Path: "/a/noise.mp3"},
	}}

	s := lib.Summary()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Tagged)
	assert.Equal(t, []Count[int]{{128, 2}, {90, 1}}, s.ByBPM)
	assert.Equal(t, "F Minor", s.DominantKey())
	assert.Equal(t, "House", s.ByGenre[0].Value)

	draft := s.SuggestTemplate("Kit", 120)
	assert.Equal(t, "Kit", draft.Name)
	assert.Equal(t, 128, draft.BPM)
	assert.Equal(t, "F Minor", draft.Key)
	assert.Equal(t, "House", draft.Genre)
	require.Len(t, draft.Channels, 2)
	assert.Equal(t, "Kick", draft.Channels[0].Name)
	require.Len(t, draft.Patterns, 2)
	assert.Equal(t, draft.Channels[1].ID, draft.Patterns[1].Channel)
	assert.Len(t, draft.MixerTracks, 1)
}

func TestSummary_EmptyLibrary(t *testing.T) {
	s := (&Library{}).Summary()
	assert.Equal(t, 140, s.DominantBPM(140))
	assert.Empty(t, s.DominantKey())

	draft := s.SuggestTemplate("Empty", 140)
	assert.Equal(t, 140, draft.BPM)
	assert.Empty(t, draft.Channels)
	assert.Empty(t, draft.MixerTracks)
}
