package ai

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// System contexts for the assistant operations.
const (
	GuruContext   = "You are an expert FL Studio Instructor. Keep it short."
	RecipeContext = "You are a sound designer. Recommend 1 stock plugin and bullet steps. Use HTML."
	SparkContext  = "Output JSON: {title, bpm, key, constraint}"
)

// Spark is a creative starting point for a track.
type Spark struct {
	Title      string `json:"title"`
	BPM        string `json:"bpm"`
	Key        string `json:"key"`
	Constraint string `json:"constraint"`
}

// UnmarshalJSON accepts bpm as a string or a number.
func (s *Spark) UnmarshalJSON(data []byte) error {
	type alias Spark
	var raw struct {
		alias
		BPM json.RawMessage `json:"bpm"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Spark(raw.alias)
	s.BPM = ""

	if len(raw.BPM) == 0 || string(raw.BPM) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(raw.BPM, &str); err == nil {
		s.BPM = str
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw.BPM, &n); err != nil {
		return err
	}
	s.BPM = strconv.FormatFloat(n, 'f', -1, 64)
	return nil
}

// AskGuru answers a short FL Studio how-to question.
func (g *Gateway) AskGuru(ctx context.Context, question string) string {
	return g.Generate(ctx, question, GuruContext, false)
}

// SoundRecipe describes how to build a sound with stock plugins.
func (g *Gateway) SoundRecipe(ctx context.Context, sound string) string {
	return g.Generate(ctx, "Recipe for: "+sound, RecipeContext, false)
}

// Spark asks for a creative idea in genre. Unparsable output yields
// DefaultSpark.
func (g *Gateway) Spark(ctx context.Context, genre string) Spark {
	text := g.Generate(ctx, genre, SparkContext, true)
	return ParseSpark(text)
}

// ParseSpark decodes model output into a Spark, tolerating a fenced code
// block. It returns DefaultSpark when nothing usable is found.
func ParseSpark(text string) Spark {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var s Spark
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &s); err != nil || s.Title == "" {
		return DefaultSpark
	}
	return s
}
