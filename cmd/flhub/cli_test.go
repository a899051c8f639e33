package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fakeAudio = bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x00}, 64)

// hub is an isolated data dir plus a settings path that does not exist,
// so every invocation runs with defaults against a fresh file store.
type hub struct {
	t       *testing.T
	config  string
	dataDir string
}

func newHub(t *testing.T) *hub {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("FLHUB_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("FLHUB_STORE_BACKEND", "file")
	t.Setenv("FLHUB_LOG_LEVEL", "error")
	t.Setenv("GEMINI_API_KEY", "")
	return &hub{t: t, config: filepath.Join(dir, "settings.yaml"), dataDir: filepath.Join(dir, "data")}
}

func (h *hub) run(args ...string) (string, string, int) {
	h.t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append([]string{"--config", h.config}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func (h *hub) mustRun(args ...string) string {
	h.t.Helper()
	out, errOut, code := h.run(args...)
	require.Equal(h.t, 0, code, "flhub %s: %s", strings.Join(args, " "), errOut)
	return out
}

var createdID = regexp.MustCompile(`(?m)^(?:Created|Imported) (\S+) `)

func idFrom(t *testing.T, out string) string {
	t.Helper()
	m := createdID.FindStringSubmatch(out)
	require.NotNil(t, m, "no id in %q", out)
	return m[1]
}

func TestPluginsSearch(t *testing.T) {
	h := newHub(t)

	out := h.mustRun("plugins", "search", "fm")
	assert.Contains(t, out, "Sytrus")
	assert.NotContains(t, out, "Maximus")

	out = h.mustRun("plugins", "search", "--native", "--max-cpu", "1", "--json")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))

	out = h.mustRun("plugins", "search", "zzzz-nothing")
	assert.Contains(t, out, "No plugins match.")
}

func TestPluginsShow(t *testing.T) {
	h := newHub(t)

	out := h.mustRun("plugins", "show", "sytrus")
	assert.Contains(t, out, "Sytrus")
	assert.Contains(t, out, "Edition:")

	_, errOut, code := h.run("plugins", "show", "nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown plugin")

	out = h.mustRun("plugins", "families")
	assert.Contains(t, out, "FM/Hybrid")
}

func TestTemplatesLifecycle(t *testing.T) {
	h := newHub(t)

	assert.Contains(t, h.mustRun("templates", "list"), "No templates saved.")

	out := h.mustRun("templates", "create", "--name", "Night Drive", "--genre", "synthwave",
		"--bpm", "100", "--key", "A Minor", "--channel", "Lead=Sytrus", "--mixer-track", "Bus")
	id := idFrom(t, out)

	out = h.mustRun("templates", "list")
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Night Drive")

	h.mustRun("templates", "update", id, "--bpm", "105")
	show := h.mustRun("templates", "show", id)
	assert.Contains(t, show, `"bpm": 105`)
	assert.Contains(t, show, `"name": "Night Drive"`)
	assert.Contains(t, show, `"plugin": "Sytrus"`)

	exportDir := t.TempDir()
	out = h.mustRun("templates", "export", id, "-o", exportDir)
	assert.Contains(t, out, "Exported to")
	files, err := filepath.Glob(filepath.Join(exportDir, "*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	copyID := idFrom(t, h.mustRun("templates", "import", files[0]))
	assert.NotEqual(t, id, copyID)

	assert.Contains(t, h.mustRun("templates", "delete", id), "Deleted "+id)
	assert.Contains(t, h.mustRun("templates", "delete", id), "No template")

	out = h.mustRun("templates", "list")
	assert.NotContains(t, out, id)
	assert.Contains(t, out, copyID)
}

func TestTemplatesImportMalformed(t *testing.T) {
	h := newHub(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))

	_, errOut, code := h.run("templates", "import", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "invalid template JSON format")
	assert.Contains(t, h.mustRun("templates", "list"), "No templates saved.")
}

func TestTemplatesMissing(t *testing.T) {
	h := newHub(t)

	_, errOut, code := h.run("templates", "show", "missing")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "template not found")

	_, _, code = h.run("templates", "create")
	assert.Equal(t, 1, code)
}

func TestCalc(t *testing.T) {
	h := newHub(t)

	out := h.mustRun("calc", "bpm", "120", "--bars", "8")
	assert.Contains(t, out, "120 BPM")
	assert.Contains(t, out, "500 ms")
	assert.Contains(t, out, "2.000 Hz")
	assert.Contains(t, out, "16.00 s")

	for _, tempo := range []string{"0", "1e-300", "NaN", "+Inf", "5000"} {
		_, errOut, code := h.run("calc", "bpm", tempo)
		assert.Equal(t, 1, code, tempo)
		assert.Contains(t, errOut, "bpm must be between 1 and 999", tempo)
	}

	assert.Contains(t, h.mustRun("calc", "presets"), "House")
	out = h.mustRun("calc", "bands", "100")
	assert.Contains(t, out, "Bass")
	assert.NotContains(t, out, "Presence")
}

func TestAIOffline(t *testing.T) {
	h := newHub(t)

	assert.Contains(t, h.mustRun("ai", "key", "status"), "No API key")

	out := h.mustRun("ai", "spark", "Electronic")
	assert.Contains(t, out, "Digital Rain")
	assert.Contains(t, out, "F# Minor")

	out = h.mustRun("ai", "ask", "how", "do", "I", "sidechain?")
	assert.Contains(t, out, `"how do I sidechain?"`)

	assert.NotEmpty(t, strings.TrimSpace(h.mustRun("ai", "recipe", "808")))
}

func TestAIKey(t *testing.T) {
	h := newHub(t)

	h.mustRun("ai", "key", "set", "abc")
	assert.Contains(t, h.mustRun("ai", "key", "status"), "API key set")

	h.mustRun("ai", "key", "remove")
	assert.Contains(t, h.mustRun("ai", "key", "status"), "No API key")

	_, _, code := h.run("ai", "key", "set", "   ")
	assert.Equal(t, 1, code)
}

func TestReferenceCommands(t *testing.T) {
	h := newHub(t)

	assert.Contains(t, h.mustRun("songs", "list", "--genre", "edm"), "deep-house")
	assert.Contains(t, h.mustRun("songs", "show", "deep-house"), "BPM")

	out := h.mustRun("songs", "use", "deep-house")
	id := idFrom(t, out)
	assert.Contains(t, h.mustRun("templates", "list"), id)

	assert.Contains(t, h.mustRun("midi", "find", "channel volume"), "Knob 1")
	assert.Contains(t, h.mustRun("midi", "cc"), "Modulation Wheel")
	assert.Contains(t, h.mustRun("midi", "drums"), "Kick Drum")

	_, _, code := h.run("midi", "show", "nope")
	assert.Equal(t, 1, code)
}

func TestGuideCommands(t *testing.T) {
	h := newHub(t)

	out := h.mustRun("troubleshoot", "crackling")
	assert.Contains(t, out, "Audio Issues")
	assert.Contains(t, out, "[high] Audio is crackling or popping")
	assert.NotContains(t, out, "No audio output")
	assert.Contains(t, h.mustRun("troubleshoot", "--tips"), "Freeze tracks")
	assert.Contains(t, h.mustRun("troubleshoot", "theremin"), "No issues match.")

	out = h.mustRun("shortcuts", "quantize", "--category", "pianoroll")
	assert.Contains(t, out, "Ctrl + Q")
	assert.NotContains(t, out, "Playlist")
	assert.Contains(t, h.mustRun("shortcuts", "--categories"), "Snap / Grid / Selection")

	assert.Contains(t, h.mustRun("presets", "genres"), "Lo-Fi Hip Hop")
	assert.Contains(t, h.mustRun("presets", "genre", "house"), "-4dB, room for sidechain")
	assert.Contains(t, h.mustRun("presets", "mixer", "master-chain"), "True peak limiting")

	out = h.mustRun("presets", "use", "house")
	assert.Contains(t, out, "at 120 BPM with 5 mixer tracks")
	id := idFrom(t, out)

	out = h.mustRun("presets", "apply", "vocal-chain", id)
	assert.Contains(t, out, "Added Professional Vocal Chain to House / Tech House")
	assert.Contains(t, h.mustRun("templates", "show", id), `"Fruity Reverb 2"`)

	_, _, code := h.run("presets", "apply", "vocal-chain", "missing-template")
	assert.Equal(t, 1, code)

	assert.Contains(t, h.mustRun("guide", "mixing"), "Parallel Compression")
	assert.Contains(t, h.mustRun("guide", "modules", "mixer"), "PDC")
	assert.Contains(t, h.mustRun("guide", "export"), "Stem Export Workflow")
}

func TestThemeToggle(t *testing.T) {
	h := newHub(t)

	before := strings.TrimSpace(h.mustRun("theme", "show"))
	h.mustRun("theme", "toggle")
	after := strings.TrimSpace(h.mustRun("theme", "show"))

	assert.NotEqual(t, before, after)
	assert.Contains(t, []string{"dark", "light"}, after)
}

func TestThemeDefaultsToLightOutsideTUI(t *testing.T) {
	h := newHub(t)
	assert.Equal(t, "light", strings.TrimSpace(h.mustRun("theme", "show")))
	assert.Contains(t, h.mustRun("theme", "toggle"), "Theme: dark")
}

func TestStoreOptions(t *testing.T) {
	root := newRootCmd(&cli{})

	show, _, err := root.Find([]string{"theme", "show"})
	require.NoError(t, err)
	assert.Len(t, storeOptions(show), 1, "plain commands pin the theme fallback")

	tuiCmd, _, err := root.Find([]string{"tui"})
	require.NoError(t, err)
	assert.Empty(t, storeOptions(tuiCmd), "the TUI keeps terminal detection")
}

func TestSamplesTagAndScan(t *testing.T) {
	h := newHub(t)

	dir := t.TempDir()
	for _, name := range []string{"kick.mp3", "bass.MP3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), fakeAudio, 0644))
	}

	out := h.mustRun("samples", "tag", filepath.Join(dir, "kick.mp3"), "--bpm", "128", "--key", "A Minor")
	assert.Contains(t, out, `bpm="128"`)
	h.mustRun("samples", "tag", filepath.Join(dir, "bass.MP3"), "--bpm", "128", "--genre", "House")

	list := filepath.Join(t.TempDir(), "audition.pls")
	out = h.mustRun("samples", "scan", dir, "--list", "--playlist", list)
	assert.Contains(t, out, "Found 2 MP3 files")
	assert.Contains(t, out, "Playlist written to")
	pls, err := os.ReadFile(list)
	require.NoError(t, err)
	assert.Contains(t, string(pls), "NumberOfEntries=2")
	assert.Contains(t, out, "2 samples, 2 tagged")
	assert.Contains(t, out, "A Minor")

	out = h.mustRun("templates", "suggest", dir, "--name", "Kit")
	assert.Contains(t, out, "at 128 BPM with 2 channels")

	h.mustRun("samples", "tag", filepath.Join(dir, "kick.mp3"), "--clear", "key")
	assert.NotContains(t, h.mustRun("samples", "scan", dir), "A Minor")

	_, _, code := h.run("samples", "tag", filepath.Join(dir, "kick.mp3"), "--clear", "mood")
	assert.Equal(t, 1, code)
}

func TestSamplesScanVerboseManyFiles(t *testing.T) {
	h := newHub(t)

	dir := t.TempDir()
	for i := range 32 {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("hit%02d.mp3", i)), fakeAudio, 0644))
	}

	out := h.mustRun("samples", "scan", dir, "-v")
	assert.Contains(t, out, "Found 32 MP3 files")
	assert.Equal(t, 32, strings.Count(out, "Read: hit"))
	assert.Contains(t, out, "32 samples, 0 tagged")
}
