package ai

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/handiism/flstudio-hub/internal/config"
	ahttp "github.com/handiism/flstudio-hub/internal/http"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

func remoteFactory(s *config.Settings, client *ahttp.Client) GeneratorFactory {
	model, endpoint := s.AIModel, strings.TrimRight(s.AIEndpoint, "/")
	if s.AITransport == config.TransportREST {
		return func(key string) Generator {
			return &restGenerator{client: client, endpoint: endpoint, model: model, apiKey: key}
		}
	}
	return func(key string) Generator {
		return &sdkGenerator{client: client, endpoint: endpoint, model: model, apiKey: key}
	}
}

// sdkGenerator calls Gemini through google.golang.org/genai.
type sdkGenerator struct {
	client   *ahttp.Client
	endpoint string
	model    string
	apiKey   string
}

func (g *sdkGenerator) Generate(ctx context.Context, text string, jsonMode bool) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.client.HTTPClient(),
	}
	if g.endpoint != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: g.endpoint + "/"}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	var gen *genai.GenerateContentConfig
	if jsonMode {
		gen = &genai.GenerateContentConfig{ResponseMIMEType: jsonMIMEType}
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(text), gen)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String(), nil
}

// restGenerator POSTs to the generateContent endpoint directly.
type restGenerator struct {
	client   *ahttp.Client
	endpoint string
	model    string
	apiKey   string
}

type restPart struct {
	Text string `json:"text"`
}

type restContent struct {
	Parts []restPart `json:"parts"`
}

type restGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType"`
}

type restRequest struct {
	Contents         []restContent         `json:"contents"`
	GenerationConfig *restGenerationConfig `json:"generationConfig,omitempty"`
}

type restResponse struct {
	Candidates []struct {
		Content restContent `json:"content"`
	} `json:"candidates"`
}

func (g *restGenerator) url() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		g.endpoint, url.PathEscape(g.model), url.QueryEscape(g.apiKey))
}

func (g *restGenerator) Generate(ctx context.Context, text string, jsonMode bool) (string, error) {
	req := restRequest{Contents: []restContent{{Parts: []restPart{{Text: text}}}}}
	if jsonMode {
		req.GenerationConfig = &restGenerationConfig{ResponseMIMEType: jsonMIMEType}
	}

	var resp restResponse
	if err := g.client.PostJSON(ctx, g.url(), req, &resp); err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
