package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	instructorMarker    = "FL Studio Instructor"
	soundDesignerMarker = "sound designer"
	recipePrefix        = "recipe for:"
	defaultRecipe       = "bright pluck"
)

// GenericMockResponse is returned for prompts no canned answer covers.
const GenericMockResponse = "This is a mock response. To get real AI assistance, please set your Gemini API key in the settings."

var mockSparks = map[string]Spark{
	"electronic": {Title: "Digital Rain", BPM: "128", Key: "F# Minor", Constraint: "Use only synthesized sounds"},
	"hip hop":    {Title: "Urban Dreams", BPM: "90", Key: "C Minor", Constraint: "Use only vinyl samples"},
	"rock":       {Title: "Midnight Drive", BPM: "130", Key: "E Major", Constraint: "Use only guitar and drums"},
	"pop":        {Title: "Neon Lights", BPM: "110", Key: "A Major", Constraint: "Use only 80s-style sounds"},
	"lofi":       {Title: "Study Time", BPM: "85", Key: "G Major", Constraint: "Use only warm, analog sounds"},
}

// DefaultSpark is used for unknown genres and unparsable model output.
var DefaultSpark = Spark{Title: "Creative Spark", BPM: "120", Key: "D Minor", Constraint: "Use unconventional sound sources"}

var mockRecipes = map[string]string{
	"dark reese bass": "For a dark Reese bass: Start with Saw 1 & Saw 2 in Sytrus. Detune Saw 2 by +5 cents. Use the Reese preset. Apply a low-pass filter (cutoff 2000Hz, resonance 0.7). Add a short release (0.2s) and medium decay (0.5s). Route through a distortion unit with drive at 25%.",
	"bright pluck":    "For a bright pluck: Use Direct One with a bright preset. Apply a fast attack (0.001s) and medium decay (0.3s). Add a high-pass filter at 120Hz. Apply a touch of chorus and delay for spatial width.",
	"ambient pad":     "For an ambient pad: Start with a simple sine wave. Layer with a filtered white noise. Use a slow attack (1.5s) and long release (2s). Apply a reverb with a large room size and long decay time.",
	"punchy kick":     "For a punchy kick: Use Morphine with a sub-bass oscillator. Set the pitch envelope to drop from 100Hz to 50Hz over 0.1s. Add a transient designer to emphasize the initial attack. Apply a high-pass filter at 30Hz and a low-pass at 100Hz.",
}

// MockResponse builds the deterministic offline answer. It does no I/O.
func MockResponse(prompt, systemContext string, jsonMode bool) string {
	if jsonMode {
		spark, ok := mockSparks[normalize(prompt)]
		if !ok {
			spark = DefaultSpark
		}
		data, _ := json.Marshal(spark)
		return string(data)
	}

	switch {
	case strings.Contains(systemContext, instructorMarker):
		return fmt.Sprintf("I'm a simulation of an FL Studio assistant. In a real implementation, I would provide specific guidance for: \"%s\". To get real AI assistance, please set your Gemini API key in the settings.", prompt)
	case strings.Contains(systemContext, soundDesignerMarker):
		return Recipe(prompt)
	}
	return GenericMockResponse
}

// Recipe returns the canned recipe for a sound name, with or without the
// "Recipe for: " prefix. Unknown sounds get the bright pluck recipe.
func Recipe(sound string) string {
	name := normalize(sound)
	if strings.HasPrefix(name, recipePrefix) {
		name = strings.TrimSpace(name[len(recipePrefix):])
	}
	if r, ok := mockRecipes[name]; ok {
		return r
	}
	return mockRecipes[defaultRecipe]
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
