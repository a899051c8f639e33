package state

import (
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/flstudio-hub/internal/kv"
	"github.com/handiism/flstudio-hub/internal/logging"
	"go.uber.org/zap"
)

// Store owns the current State and persists the theme after each toggle.
type Store struct {
	kv     kv.Store
	logger *zap.Logger

	mu    sync.RWMutex
	state State
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	prefersDark func() bool
}

// WithThemeDetector sets the fallback used when no preference is stored.
// The default asks the terminal for its background color.
func WithThemeDetector(f func() bool) StoreOption {
	return func(o *storeOptions) { o.prefersDark = f }
}

// NewStore loads the stored dark mode preference, or detects one when
// nothing valid is stored. logger may be nil.
func NewStore(store kv.Store, logger *zap.Logger, opts ...StoreOption) (*Store, error) {
	o := storeOptions{prefersDark: lipgloss.HasDarkBackground}
	for _, opt := range opts {
		opt(&o)
	}

	raw, ok, err := store.Get(kv.KeyDarkMode)
	if err != nil {
		return nil, err
	}

	dark, perr := strconv.ParseBool(raw)
	if !ok || perr != nil {
		dark = o.prefersDark()
	}

	return &Store{
		kv:     store,
		logger: logging.OrNop(logger),
		state:  Initial(dark),
	}, nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and returns the new state. A failed theme write is
// logged; the in-memory state still changes.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)

	switch a := a.(type) {
	case ToggleDarkMode:
		if err := s.kv.Set(kv.KeyDarkMode, strconv.FormatBool(s.state.DarkMode)); err != nil {
			s.logger.Warn("failed to persist theme", zap.Error(err))
		}
	case SetActiveSection:
		if s.state.ActiveSection != a.Section {
			s.logger.Debug("ignored unknown section", zap.String("section", a.Section))
		}
	}
	return s.state
}
