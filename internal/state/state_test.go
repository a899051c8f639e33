package state

import (
	"errors"
	"testing"

	"github.com/handiism/flstudio-hub/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduce(t *testing.T) {
	start := Initial(false)

	tests := []struct {
		name   string
		action Action
		want   State
	}{
		{"toggle dark", ToggleDarkMode{}, State{ActiveSection: "home", DarkMode: true}},
		{"navigate", SetActiveSection{Section: "mixing"}, State{ActiveSection: "mixing"}},
		{"unknown section", SetActiveSection{Section: "nowhere"}, State{ActiveSection: "home"}},
		{"toggle menu", ToggleMobileMenu{}, State{ActiveSection: "home", MobileMenuOpen: true}},
		{"set menu", SetMobileMenu{Open: true}, State{ActiveSection: "home", MobileMenuOpen: true}},
		{"nil action", nil, start},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(start, tt.action))
		})
	}
}

func TestReduce_IsPure(t *testing.T) {
	s := Initial(true)
	_ = Reduce(s, ToggleDarkMode{})
	assert.True(t, s.DarkMode)

	twice := Reduce(Reduce(s, ToggleMobileMenu{}), ToggleMobileMenu{})
	assert.Equal(t, s, twice)
}

func TestSections(t *testing.T) {
	all := Sections()
	require.NotEmpty(t, all)
	assert.Equal(t, HomeSection, all[0].ID)

	s, ok := LookupSection("utilities")
	require.True(t, ok)
	assert.Equal(t, "Studio Calculator", s.Label)
	assert.Equal(t, "Tools", s.Category)

	assert.Equal(t, []string{"Browse", "Production", "Templates", "Learning", "Tools", "Smart"}, Categories())
	assert.Len(t, SectionsByCategory()["Tools"], 3)
	assert.Len(t, PaletteEntries(), len(all))

	all[0].ID = "mutated"
	assert.True(t, IsSection(HomeSection))
}

func TestStore_PersistsDarkMode(t *testing.T) {
	backing := kv.NewMemoryStore()
	st, err := NewStore(backing, nil, WithThemeDetector(func() bool { return false }))
	require.NoError(t, err)
	assert.False(t, st.State().DarkMode)
	assert.Equal(t, HomeSection, st.State().ActiveSection)

	st.Dispatch(ToggleDarkMode{})
	v, ok, err := backing.Get(kv.KeyDarkMode)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", v)

	reopened, err := NewStore(backing, nil, WithThemeDetector(func() bool { return false }))
	require.NoError(t, err)
	assert.True(t, reopened.State().DarkMode)

	reopened.Dispatch(ToggleDarkMode{})
	v, _, _ = backing.Get(kv.KeyDarkMode)
	assert.Equal(t, "false", v)
}

func TestStore_DetectsThemeWhenUnset(t *testing.T) {
	backing := kv.NewMemoryStore()
	st, err := NewStore(backing, nil, WithThemeDetector(func() bool { return true }))
	require.NoError(t, err)
	assert.True(t, st.State().DarkMode)

	require.NoError(t, backing.Set(kv.KeyDarkMode, "garbage"))
	st, err = NewStore(backing, nil, WithThemeDetector(func() bool { return false }))
	require.NoError(t, err)
	assert.False(t, st.State().DarkMode)
}

func TestStore_NavigationDoesNotWrite(t *testing.T) {
	backing := kv.NewMemoryStore()
	st, err := NewStore(backing, nil, WithThemeDetector(func() bool { return false }))
	require.NoError(t, err)

	got := st.Dispatch(SetActiveSection{Section: "ai-assistant"})
	assert.Equal(t, "ai-assistant", got.ActiveSection)
	_, ok, _ := backing.Get(kv.KeyDarkMode)
	assert.False(t, ok)
}

type failingStore struct{ kv.Store }

func (failingStore) Set(string, string) error { return errors.New("disk full") }

func TestStore_WriteFailureKeepsState(t *testing.T) {
	st, err := NewStore(failingStore{kv.NewMemoryStore()}, nil, WithThemeDetector(func() bool { return false }))
	require.NoError(t, err)
	assert.True(t, st.Dispatch(ToggleDarkMode{}).DarkMode)
}
