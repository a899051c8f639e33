// Package templates persists user project templates in a kv.Store.
//
// All templates live as one JSON array under kv.KeyTemplates. Every
// mutation reads the whole array, modifies it and writes it back; a mutex
// serializes this within the process. Separate processes sharing a store
// can race and the last writer wins.
package templates

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	ioutils "github.com/handiism/flstudio-hub/internal/io"
	"github.com/handiism/flstudio-hub/internal/kv"
	"github.com/handiism/flstudio-hub/internal/logging"
	"github.com/handiism/flstudio-hub/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no stored template has the requested id.
	ErrNotFound = errors.New("template not found")
	// ErrMalformed is returned when imported text is not a template.
	ErrMalformed = errors.New("invalid template JSON format")
)

// Service is the template CRUD API.
type Service struct {
	store  kv.Store
	logger *zap.Logger

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides id generation.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

// NewService creates a Service over store. logger may be nil.
func NewService(store kv.Store, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: logging.OrNop(logger),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every stored template. Missing or unreadable storage yields
// an empty slice; the cause is logged, not returned.
func (s *Service) List() []model.ProjectTemplate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the template with id.
func (s *Service) Get(id string) (model.ProjectTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load()
	i := indexOf(all, id)
	if i < 0 {
		return model.ProjectTemplate{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return all[i], nil
}

// Create stores draft under a fresh id with both timestamps set to now.
// Any id or timestamps on draft are ignored.
func (s *Service) Create(draft model.ProjectTemplate) (model.ProjectTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendNew(draft)
}

// Update replaces the stored template with the same id and refreshes
// DateModified. DateCreated keeps the stored value.
func (s *Service) Update(t model.ProjectTemplate) (model.ProjectTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load()
	i := indexOf(all, t.ID)
	if i < 0 {
		return model.ProjectTemplate{}, fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}

	updated := t.Clone()
	updated.Normalize()
	updated.DateCreated = all[i].DateCreated
	updated.DateModified = s.now().UTC()
	all[i] = updated

	if err := s.save(all); err != nil {
		return model.ProjectTemplate{}, err
	}
	s.logger.Debug("updated template", zap.String("id", t.ID))
	return updated, nil
}

// Delete removes the template with id. It reports false, and does not
// write, when nothing matched.
func (s *Service) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load()
	n := len(all)
	kept := slices.DeleteFunc(all, func(t model.ProjectTemplate) bool { return t.ID == id })
	if len(kept) == n {
		return false, nil
	}

	if err := s.save(kept); err != nil {
		return false, err
	}
	s.logger.Debug("deleted template", zap.String("id", id))
	return true, nil
}

// Export renders one template as indented JSON.
func (s *Service) Export(id string) (string, error) {
	t, err := s.Get(id)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Import parses jsonText as a template and stores it under a fresh id and
// timestamps. Storage is untouched when parsing fails.
func (s *Service) Import(jsonText string) (model.ProjectTemplate, error) {
	var draft model.ProjectTemplate
	if err := json.Unmarshal([]byte(jsonText), &draft); err != nil {
		return model.ProjectTemplate{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendNew(draft)
}

// ExportFile writes the template to dir under its export file name and
// returns the written path.
func (s *Service) ExportFile(id, dir string) (string, error) {
	text, err := s.Export(id)
	if err != nil {
		return "", err
	}
	if err := ioutils.EnsureDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, ioutils.SanitizeFileName(model.ProjectTemplate{ID: id}.ExportFileName()))
	if err := ioutils.WriteFileAtomic(path, []byte(text)); err != nil {
		return "", err
	}
	return path, nil
}

// ImportFile reads path and imports its content.
func (s *Service) ImportFile(path string) (model.ProjectTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProjectTemplate{}, err
	}
	return s.Import(string(data))
}

// appendNew must be called with mu held.
func (s *Service) appendNew(draft model.ProjectTemplate) (model.ProjectTemplate, error) {
	all := s.load()

	t := draft.Clone()
	t.Normalize()
	t.ID = s.uniqueID(all)
	now := s.now().UTC()
	t.DateCreated = now
	t.DateModified = now

	if err := s.save(append(all, t)); err != nil {
		return model.ProjectTemplate{}, err
	}
	s.logger.Debug("created template", zap.String("id", t.ID), zap.String("name", t.Name))
	return t, nil
}

// uniqueID draws ids until one is not already stored.
func (s *Service) uniqueID(existing []model.ProjectTemplate) string {
	for {
		id := s.newID()
		if indexOf(existing, id) < 0 {
			return id
		}
	}
}

// load must be called with mu held.
func (s *Service) load() []model.ProjectTemplate {
	raw, ok, err := s.store.Get(kv.KeyTemplates)
	if err != nil {
		s.logger.Warn("failed to read templates", zap.Error(err))
		return []model.ProjectTemplate{}
	}
	if !ok || raw == "" {
		return []model.ProjectTemplate{}
	}

	var all []model.ProjectTemplate
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		s.logger.Warn("error parsing stored templates", zap.Error(err))
		return []model.ProjectTemplate{}
	}
	if all == nil {
		all = []model.ProjectTemplate{}
	}
	return all
}

func (s *Service) save(all []model.ProjectTemplate) error {
	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	if err := s.store.Set(kv.KeyTemplates, string(data)); err != nil {
		return fmt.Errorf("save templates: %w", err)
	}
	return nil
}

func indexOf(all []model.ProjectTemplate, id string) int {
	return slices.IndexFunc(all, func(t model.ProjectTemplate) bool { return t.ID == id })
}
