package templates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/handiism/flstudio-hub/internal/kv"
	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService(t *testing.T) (*Service, kv.Store) {
	t.Helper()
	store := kv.NewMemoryStore()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	return NewService(store, nil, WithClock(clock.Now)), store
}

func sampleDraft() model.ProjectTemplate {
	d := model.NewTemplateDraft("Test", "edm", 120, "C Major")
	d.Description = "club starter"
	ch := d.AddChannel("Kick", "FPC")
	d.AddPattern("Intro", ch.ID)
	d.AddMixerTrack("Drums")
	d.MixerTracks[0].Effects = []string{"Fruity Limiter"}
	d.Playlist = append(d.Playlist, model.PlaylistClip{ID: "clip-1", Type: model.ClipPattern, Position: 0, Length: 4, ContentID: d.Patterns[0].ID})
	return d
}

var ignoreIdentity = cmpopts.IgnoreFields(model.ProjectTemplate{}, "ID", "DateCreated", "DateModified")

func TestService_CreateThenList(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(model.NewTemplateDraft("Test", "edm", 120, "C Major"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.DateCreated.IsZero())
	assert.Equal(t, created.DateCreated, created.DateModified)

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Test", list[0].Name)
	assert.Equal(t, 120, list[0].BPM)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestService_CreateAssignsDistinctIDs(t *testing.T) {
	svc, _ := newTestService(t)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		draft := model.NewTemplateDraft(fmt.Sprintf("T%d", i), "edm", 120, "C Major")
		draft.ID = "caller-supplied"
		created, err := svc.Create(draft)
		require.NoError(t, err)
		assert.NotEqual(t, "caller-supplied", created.ID)
		assert.False(t, seen[created.ID], "duplicate id %s", created.ID)
		seen[created.ID] = true
	}
	assert.Len(t, svc.List(), 20)
}

func TestService_IDCollisionIsRetried(t *testing.T) {
	store := kv.NewMemoryStore()
	ids := []string{"same", "same", "other"}
	gen := func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	svc := NewService(store, nil, WithIDGenerator(gen))

	first, err := svc.Create(model.NewTemplateDraft("A", "edm", 120, "C"))
	require.NoError(t, err)
	second, err := svc.Create(model.NewTemplateDraft("B", "edm", 120, "C"))
	require.NoError(t, err)

	assert.Equal(t, "same", first.ID)
	assert.Equal(t, "other", second.ID)
}

func TestService_ListIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Create(sampleDraft())
	require.NoError(t, err)

	first := svc.List()
	second := svc.List()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("List() not idempotent (-first +second):\n%s", diff)
	}
}

func TestService_ListEmptyAndCorrupt(t *testing.T) {
	svc, store := newTestService(t)
	assert.Empty(t, svc.List())
	assert.NotNil(t, svc.List())

	require.NoError(t, store.Set(kv.KeyTemplates, "{broken"))
	assert.Empty(t, svc.List())
}

func TestService_ListReconstructsDates(t *testing.T) {
	svc, store := newTestService(t)
	raw := `[{"id":"x1","name":"Legacy","genre":"house","bpm":124,"key":"A Minor",
		"channels":[],"mixerTracks":[],"patterns":[],"playlist":[],
		"dateCreated":"2023-03-04T05:06:07.890Z","dateModified":"2023-03-05T00:00:00.000Z"}]`
	require.NoError(t, store.Set(kv.KeyTemplates, raw))

	list := svc.List()
	require.Len(t, list, 1)
	assert.True(t, time.Date(2023, 3, 4, 5, 6, 7, 890_000_000, time.UTC).Equal(list[0].DateCreated))
}

func TestService_Update(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(sampleDraft())
	require.NoError(t, err)

	edit := created
	edit.Name = "Renamed"
	edit.BPM = 140
	edit.DateCreated = time.Time{}

	updated, err := svc.Update(edit)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.True(t, created.DateCreated.Equal(updated.DateCreated), "DateCreated must be preserved")
	assert.True(t, updated.DateModified.After(created.DateModified))

	got, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 140, got.BPM)
}

func TestService_UpdateNotFound(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Create(sampleDraft())
	require.NoError(t, err)
	before, _, _ := store.Get(kv.KeyTemplates)

	_, err = svc.Update(model.ProjectTemplate{ID: "nope", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	after, _, _ := store.Get(kv.KeyTemplates)
	assert.Equal(t, before, after)
}

func TestService_Delete(t *testing.T) {
	svc, store := newTestService(t)
	a, err := svc.Create(sampleDraft())
	require.NoError(t, err)
	b, err := svc.Create(model.NewTemplateDraft("Other", "trap", 140, "F Minor"))
	require.NoError(t, err)

	before, _, _ := store.Get(kv.KeyTemplates)
	removed, err := svc.Delete("does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)
	after, _, _ := store.Get(kv.KeyTemplates)
	assert.Equal(t, before, after, "deleting a missing id must not touch storage")

	removed, err = svc.Delete(a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestService_ExportImportRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	original, err := svc.Create(sampleDraft())
	require.NoError(t, err)

	text, err := svc.Export(original.ID)
	require.NoError(t, err)
	assert.Contains(t, text, "\n  \"name\": \"Test\"", "export should be indented by two spaces")

	imported, err := svc.Import(text)
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, imported.ID)

	if diff := cmp.Diff(original, imported, ignoreIdentity); diff != "" {
		t.Errorf("round trip changed content (-original +imported):\n%s", diff)
	}
	assert.Len(t, svc.List(), 2)
}

func TestService_ExportNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Export("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ImportMalformed(t *testing.T) {
	svc, store := newTestService(t)
	_, err := svc.Create(sampleDraft())
	require.NoError(t, err)
	before, _, _ := store.Get(kv.KeyTemplates)

	for _, input := range []string{"", "{", "[1,2]", `{"bpm":"fast"}`} {
		_, err := svc.Import(input)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", input)
	}

	after, _, _ := store.Get(kv.KeyTemplates)
	assert.Equal(t, before, after)
}

func TestService_ImportFillsCollections(t *testing.T) {
	svc, _ := newTestService(t)
	imported, err := svc.Import(`{"name":"Sparse","bpm":90}`)
	require.NoError(t, err)

	data, err := json.Marshal(imported)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"channels":[]`)
}

func TestService_ExportImportFile(t *testing.T) {
	svc, _ := newTestService(t)
	created, err := svc.Create(sampleDraft())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "exports")
	path, err := svc.ExportFile(created.ID, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "fl-studio-template-"+created.ID+".json"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)

	imported, err := svc.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, created.Name, imported.Name)

	_, err = svc.ImportFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestService_SQLiteBackend(t *testing.T) {
	store, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "hub.db"))
	require.NoError(t, err)
	defer store.Close()

	svc := NewService(store, nil)
	created, err := svc.Create(sampleDraft())
	require.NoError(t, err)

	reloaded := NewService(store, nil).List()
	require.Len(t, reloaded, 1)
	if diff := cmp.Diff(created, reloaded[0], cmpopts.EquateApproxTime(time.Millisecond)); diff != "" {
		t.Errorf("sqlite round trip mismatch:\n%s", diff)
	}
}
