package reference

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"
)

//go:embed data/troubleshooting.json
var troubleshootingJSON []byte

//go:embed data/shortcuts.json
var shortcutsJSON []byte

//go:embed data/guides.json
var guidesJSON []byte

// Issue is one known problem with its fixes.
type Issue struct {
	Symptom   string   `json:"symptom"`
	Severity  string   `json:"severity"`
	Solutions []string `json:"solutions"`
}

// IssueCategory groups related issues.
type IssueCategory struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Issues []Issue `json:"issues"`
}

// IssueMatch pairs an issue with its category.
type IssueMatch struct {
	Category IssueCategory
	Issue    Issue
}

// Shortcut is a keyboard binding.
type Shortcut struct {
	Action string `json:"action"`
	Key    string `json:"key"`
}

// ShortcutCategory groups shortcuts by window or workflow.
type ShortcutCategory struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Shortcuts []Shortcut `json:"shortcuts"`
}

// ShortcutMatch pairs a shortcut with the name of its category.
type ShortcutMatch struct {
	Category string
	Shortcut
}

// MixingTip is one technique within a mixing concept.
type MixingTip struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tip         string `json:"tip"`
}

// MixingConcept is a themed set of mixing techniques.
type MixingConcept struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Items []MixingTip `json:"items"`
}

// AutomationTechnique describes one way to automate parameters.
type AutomationTechnique struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	HowTo       string `json:"howTo"`
}

// Feature is a labelled highlight of a module.
type Feature struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Module is one of the core FL Studio windows.
type Module struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Features    []Feature `json:"features"`
}

// ExportFormat recommends a render format for a delivery context.
type ExportFormat struct {
	Context  string `json:"context"`
	Format   string `json:"format"`
	BitDepth string `json:"bitDepth"`
	Quality  string `json:"quality"`
	Notes    string `json:"notes"`
}

// Practice is a checklist for one part of the export workflow.
type Practice struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type troubleshootingData struct {
	Categories      []IssueCategory `json:"categories"`
	PerformanceTips []string        `json:"performanceTips"`
}

type guidesData struct {
	Mixing struct {
		Concepts   []MixingConcept       `json:"concepts"`
		Automation []AutomationTechnique `json:"automation"`
	} `json:"mixing"`
	Modules []Module `json:"modules"`
	Export  struct {
		Formats   []ExportFormat `json:"formats"`
		Practices []Practice     `json:"practices"`
	} `json:"export"`
}

var loadTroubleshooting = sync.OnceValue(func() troubleshootingData {
	var d troubleshootingData
	if err := json.Unmarshal(troubleshootingJSON, &d); err != nil {
		panic(fmt.Sprintf("reference: bundled troubleshooting.json: %v", err))
	}
	return d
})

var loadShortcuts = sync.OnceValue(func() []ShortcutCategory {
	var d struct {
		Categories []ShortcutCategory `json:"categories"`
	}
	if err := json.Unmarshal(shortcutsJSON, &d); err != nil {
		panic(fmt.Sprintf("reference: bundled shortcuts.json: %v", err))
	}
	return d.Categories
})

var loadGuides = sync.OnceValue(func() guidesData {
	var d guidesData
	if err := json.Unmarshal(guidesJSON, &d); err != nil {
		panic(fmt.Sprintf("reference: bundled guides.json: %v", err))
	}
	return d
})

// IssueCategories returns the troubleshooting guide in bundled order.
func IssueCategories() []IssueCategory {
	return slices.Clone(loadTroubleshooting().Categories)
}

// PerformanceTips returns quick CPU-saving tips.
func PerformanceTips() []string {
	return slices.Clone(loadTroubleshooting().PerformanceTips)
}

// FindIssues returns issues whose symptom or solutions contain query,
// case-insensitively. "" returns every issue.
func FindIssues(query string) []IssueMatch {
	q := strings.ToLower(query)
	var out []IssueMatch
	for _, c := range loadTroubleshooting().Categories {
		for _, is := range c.Issues {
			hit := strings.Contains(strings.ToLower(is.Symptom), q) ||
				lo.SomeBy(is.Solutions, func(s string) bool { return strings.Contains(strings.ToLower(s), q) })
			if hit {
				out = append(out, IssueMatch{Category: c, Issue: is})
			}
		}
	}
	return out
}

// ShortcutCategories returns every shortcut group in bundled order.
func ShortcutCategories() []ShortcutCategory {
	return slices.Clone(loadShortcuts())
}

// FindShortcuts returns shortcuts whose action or key contains query,
// case-insensitively, limited to category when it is not "" or "all".
// category matches a category id or name.
func FindShortcuts(query, category string) []ShortcutMatch {
	q := strings.ToLower(query)
	all := category == "" || strings.EqualFold(category, "all")
	var out []ShortcutMatch
	for _, c := range loadShortcuts() {
		if !all && !strings.EqualFold(c.ID, category) && !strings.EqualFold(c.Name, category) {
			continue
		}
		for _, s := range c.Shortcuts {
			if strings.Contains(strings.ToLower(s.Action), q) || strings.Contains(strings.ToLower(s.Key), q) {
				out = append(out, ShortcutMatch{Category: c.Name, Shortcut: s})
			}
		}
	}
	return out
}

// MixingConcepts returns routing, EQ and dynamics techniques.
func MixingConcepts() []MixingConcept {
	return slices.Clone(loadGuides().Mixing.Concepts)
}

// AutomationTechniques returns the automation primer.
func AutomationTechniques() []AutomationTechnique {
	return slices.Clone(loadGuides().Mixing.Automation)
}

// Modules returns the five core windows.
func Modules() []Module {
	return slices.Clone(loadGuides().Modules)
}

// ModuleByID returns the module with id.
func ModuleByID(id string) (Module, bool) {
	return lo.Find(loadGuides().Modules, func(m Module) bool { return m.ID == id })
}

// ExportFormats returns render format recommendations.
func ExportFormats() []ExportFormat {
	return slices.Clone(loadGuides().Export.Formats)
}

// ExportPractices returns the export checklists.
func ExportPractices() []Practice {
	return slices.Clone(loadGuides().Export.Practices)
}
