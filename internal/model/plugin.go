package model

import "slices"

// PluginFamily is the broad synthesis/processing family of a plugin.
type PluginFamily string

const (
	FamilyAdditive          PluginFamily = "Additive"
	FamilyPhysicalModeling  PluginFamily = "Physical Modeling"
	FamilyFMHybrid          PluginFamily = "FM/Hybrid"
	FamilyAnalogEmulation   PluginFamily = "Analog Emulation"
	FamilyTimePitch         PluginFamily = "Time & Pitch"
	FamilyDynamicsMastering PluginFamily = "Dynamics/Mastering"
	FamilySpatialCreativeFX PluginFamily = "Spatial/Creative FX"
	FamilyUtilitiesModular  PluginFamily = "Utilities/Modular"
)

// Families returns every known plugin family in display order.
func Families() []PluginFamily {
	return []PluginFamily{
		FamilyAdditive,
		FamilyPhysicalModeling,
		FamilyFMHybrid,
		FamilyAnalogEmulation,
		FamilyTimePitch,
		FamilyDynamicsMastering,
		FamilySpatialCreativeFX,
		FamilyUtilitiesModular,
	}
}

// Edition is a paid tier of the host application used for filtering.
//
// Tiers are inclusive from the top: a plugin flagged for All Plugins
// Edition is also reachable from the Signature+ and Producer+ filters.
type Edition string

const (
	EditionAny        Edition = "all"
	EditionAllPlugins Edition = "All Plugins"
	EditionSignature  Edition = "Signature+"
	EditionProducer   Edition = "Producer+"
)

// Exclusivity flags as they appear on plugin records.
const (
	FlagAllPlugins = "All Plugins Edition"
	FlagSignature  = "Signature+ Edition"
	FlagProducer   = "Producer+ Edition"
)

const familyFilterAny = "all"

// IncludedFlags returns the exclusivity flags that satisfy the edition.
// EditionAny and unknown editions return nil, meaning "no constraint".
func (e Edition) IncludedFlags() []string {
	switch e {
	case EditionAllPlugins:
		return []string{FlagAllPlugins}
	case EditionSignature:
		return []string{FlagSignature, FlagAllPlugins}
	case EditionProducer:
		return []string{FlagProducer, FlagSignature, FlagAllPlugins}
	}
	return nil
}

// IsAnyFamily reports whether a family filter value means "no constraint".
func IsAnyFamily(f string) bool {
	return f == "" || f == familyFilterAny
}

// PluginRecord is the searchable description of a single plugin.
type PluginRecord struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	Family             PluginFamily `json:"family"`
	Tags               []string     `json:"tags"`
	NativeAdvantages   []string     `json:"nativeAdvantages"`
	BestPairedWith     []string     `json:"bestPairedWith"`
	PrimaryUseCases    []string     `json:"primaryUseCases"`
	KeyDifferentiators []string     `json:"keyDifferentiators"`
	ExclusivityFlags   []string     `json:"exclusivityFlags"`
	CoreModel          string       `json:"coreModel"`
	Edition            string       `json:"edition"`

	// CPURating and Complexity are 1-5 scales.
	CPURating  int `json:"cpuRating"`
	Complexity int `json:"complexity"`

	SynthesisMethod string   `json:"synthesisMethod"`
	GenreAffinity   []string `json:"genreAffinity"`
	NativeOnly      bool     `json:"nativeOnly"`
}

// HasFlag reports whether the record carries the given exclusivity flag.
func (p PluginRecord) HasFlag(flag string) bool {
	return slices.Contains(p.ExclusivityFlags, flag)
}

// HasTag reports whether the record carries the exact tag.
func (p PluginRecord) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}
