package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/samber/lo"
)

// SortKey selects the field results are ordered by.
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByFamily  SortKey = "family"
	SortByEdition SortKey = "edition"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Filters are the discrete selections applied on top of the text query.
// Zero values disable each filter.
type Filters struct {
	// Family must match exactly; "" or "all" disables it.
	Family string
	// Edition is tier-inclusive, see model.Edition.IncludedFlags.
	Edition model.Edition
	// Tags must all be present as a tag or inside a key differentiator.
	Tags []string
	// NativeOnly keeps only host-exclusive plugins.
	NativeOnly bool
	// MaxCPU keeps records with CPURating <= MaxCPU when positive.
	MaxCPU int
}

// SearchParams bundles a query, its filters and the ordering.
type SearchParams struct {
	Query     string
	Filters   Filters
	SortBy    SortKey
	SortOrder SortOrder
}

// Search returns records, in catalog order, that match the query and every
// active filter. It never returns nil.
func (c *Catalog) Search(query string, f Filters) []model.PluginRecord {
	preds := predicates(query, f)
	out := lo.Filter(c.plugins, func(p model.PluginRecord, _ int) bool {
		return lo.EveryBy(preds, func(pred func(model.PluginRecord) bool) bool {
			return pred(p)
		})
	})
	if out == nil {
		out = []model.PluginRecord{}
	}
	return out
}

// Query runs Search and sorts the result. An empty SortBy keeps catalog
// order.
func (c *Catalog) Query(p SearchParams) []model.PluginRecord {
	results := c.Search(p.Query, p.Filters)
	Sort(results, p.SortBy, p.SortOrder)
	return results
}

// Sort orders records in place by key. The sort is stable, so ties keep
// their relative order in both directions.
func Sort(records []model.PluginRecord, key SortKey, order SortOrder) {
	field := sortField(key)
	if field == nil {
		return
	}
	slices.SortStableFunc(records, func(a, b model.PluginRecord) int {
		c := compareText(field(a), field(b))
		if order == Desc {
			return -c
		}
		return c
	})
}

func sortField(key SortKey) func(model.PluginRecord) string {
	switch key {
	case SortByName:
		return func(p model.PluginRecord) string { return p.Name }
	case SortByFamily:
		return func(p model.PluginRecord) string { return string(p.Family) }
	case SortByEdition:
		return func(p model.PluginRecord) string { return p.Edition }
	}
	return nil
}

// compareText orders case-insensitively, falling back to byte order so the
// comparison stays total.
func compareText(a, b string) int {
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func predicates(query string, f Filters) []func(model.PluginRecord) bool {
	var preds []func(model.PluginRecord) bool

	if term := strings.ToLower(query); term != "" {
		preds = append(preds, func(p model.PluginRecord) bool {
			return matchesText(p, term)
		})
	}

	if !model.IsAnyFamily(f.Family) {
		preds = append(preds, func(p model.PluginRecord) bool {
			return string(p.Family) == f.Family
		})
	}

	if flags := f.Edition.IncludedFlags(); flags != nil {
		preds = append(preds, func(p model.PluginRecord) bool {
			return lo.SomeBy(flags, p.HasFlag)
		})
	}

	if len(f.Tags) > 0 {
		preds = append(preds, func(p model.PluginRecord) bool {
			return lo.EveryBy(f.Tags, func(tag string) bool {
				return matchesTag(p, tag)
			})
		})
	}

	if f.NativeOnly {
		preds = append(preds, func(p model.PluginRecord) bool { return p.NativeOnly })
	}

	if f.MaxCPU > 0 {
		preds = append(preds, func(p model.PluginRecord) bool { return p.CPURating <= f.MaxCPU })
	}

	return preds
}

// matchesText expects term to be lowercased already.
func matchesText(p model.PluginRecord, term string) bool {
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), term) }
	return contains(p.Name) ||
		contains(string(p.Family)) ||
		lo.SomeBy(p.Tags, contains) ||
		lo.SomeBy(p.PrimaryUseCases, contains)
}

func matchesTag(p model.PluginRecord, tag string) bool {
	if p.HasTag(tag) {
		return true
	}
	lower := strings.ToLower(tag)
	return lo.SomeBy(p.KeyDifferentiators, func(d string) bool {
		return strings.Contains(strings.ToLower(d), lower)
	})
}
