package ai

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/handiism/flstudio-hub/internal/config"
	ahttp "github.com/handiism/flstudio-hub/internal/http"
	"github.com/handiism/flstudio-hub/internal/kv"
	"github.com/handiism/flstudio-hub/internal/logging"
	"go.uber.org/zap"
)

// ErrEmptyResponse is returned by a Generator when the model produced no text.
var ErrEmptyResponse = errors.New("empty model response")

// Generator sends one composed prompt to a model.
type Generator interface {
	Generate(ctx context.Context, text string, jsonMode bool) (string, error)
}

// GeneratorFactory builds a Generator for an API key.
type GeneratorFactory func(apiKey string) Generator

// Gateway answers prompts through Gemini or the local fallback.
type Gateway struct {
	store   kv.Store
	logger  *zap.Logger
	timeout time.Duration

	newRemote GeneratorFactory

	mu     sync.RWMutex
	apiKey string
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithGeneratorFactory replaces the remote strategy.
func WithGeneratorFactory(f GeneratorFactory) Option {
	return func(g *Gateway) { g.newRemote = f }
}

// NewGateway creates a Gateway whose credential lives in store. settings
// selects the model, transport, endpoint and timeout. logger may be nil.
func NewGateway(store kv.Store, settings *config.Settings, logger *zap.Logger, opts ...Option) (*Gateway, error) {
	g := &Gateway{
		store:   store,
		logger:  logging.OrNop(logger),
		timeout: settings.AITimeout,
	}
	g.newRemote = remoteFactory(settings, ahttp.NewClient(settings.AITimeout))
	for _, opt := range opts {
		opt(g)
	}

	key, _, err := store.Get(kv.KeyAPIKey)
	if err != nil {
		return nil, err
	}
	g.apiKey = key

	if g.apiKey == "" && settings.APIKey != "" {
		if err := g.SetAPIKey(settings.APIKey); err != nil {
			return nil, err
		}
		g.logger.Debug("seeded api key from environment")
	}
	return g, nil
}

// SetAPIKey stores key and switches to the remote strategy.
func (g *Gateway) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return g.RemoveAPIKey()
	}
	if err := g.store.Set(kv.KeyAPIKey, key); err != nil {
		return err
	}
	g.mu.Lock()
	g.apiKey = key
	g.mu.Unlock()
	return nil
}

// RemoveAPIKey deletes the stored key and switches to the fallback.
func (g *Gateway) RemoveAPIKey() error {
	if err := g.store.Delete(kv.KeyAPIKey); err != nil {
		return err
	}
	g.mu.Lock()
	g.apiKey = ""
	g.mu.Unlock()
	return nil
}

// HasAPIKey reports whether calls go to the remote model.
func (g *Gateway) HasAPIKey() bool {
	return g.key() != ""
}

func (g *Gateway) key() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.apiKey
}

// Generate answers prompt under systemContext. In JSON mode the model is
// asked for application/json output. It never fails: without a key, or when
// the remote call errors, the fallback response is returned.
func (g *Gateway) Generate(ctx context.Context, prompt, systemContext string, jsonMode bool) string {
	key := g.key()
	if key == "" {
		return MockResponse(prompt, systemContext, jsonMode)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	text, err := g.newRemote(key).Generate(ctx, ComposePrompt(prompt, systemContext), jsonMode)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		g.logger.Warn("gemini request failed, using fallback", zap.Error(err), zap.Bool("json", jsonMode))
		return MockResponse(prompt, systemContext, jsonMode)
	}
	return text
}

// ComposePrompt builds the single text part sent to the model.
func ComposePrompt(prompt, systemContext string) string {
	return systemContext + "\n\nUser Query: " + prompt
}
