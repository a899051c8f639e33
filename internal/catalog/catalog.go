package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/samber/lo"
)

//go:embed data/plugins.json
var embeddedPlugins []byte

// ErrUnknownPlugin is returned when a plugin id is not in the catalog.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Catalog is an immutable, ordered set of plugin records.
type Catalog struct {
	plugins []model.PluginRecord
	byID    map[string]int
}

// New builds a catalog from records, keeping their order. Later records
// with a duplicate id are dropped.
func New(records []model.PluginRecord) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(records))}
	for _, r := range records {
		if _, dup := c.byID[r.ID]; dup {
			continue
		}
		c.byID[r.ID] = len(c.plugins)
		c.plugins = append(c.plugins, r)
	}
	return c
}

// LoadEmbedded parses the catalog bundled into the binary.
func LoadEmbedded() (*Catalog, error) {
	return parse(embeddedPlugins)
}

// LoadFile parses a catalog JSON file with the embedded layout.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

// Load reads path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

func parse(data []byte) (*Catalog, error) {
	var records []model.PluginRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse plugin catalog: %w", err)
	}
	return New(records), nil
}

// Len returns the number of records.
func (c *Catalog) Len() int { return len(c.plugins) }

// All returns a copy of every record in catalog order.
func (c *Catalog) All() []model.PluginRecord {
	return slices.Clone(c.plugins)
}

// Get returns the record with the given id.
func (c *Catalog) Get(id string) (model.PluginRecord, error) {
	i, ok := c.byID[id]
	if !ok {
		return model.PluginRecord{}, fmt.Errorf("%w: %s", ErrUnknownPlugin, id)
	}
	return c.plugins[i], nil
}

// ByFamily returns records of exactly the given family.
func (c *Catalog) ByFamily(family model.PluginFamily) []model.PluginRecord {
	return lo.Filter(c.plugins, func(p model.PluginRecord, _ int) bool {
		return p.Family == family
	})
}

// ByTag returns records carrying the exact tag.
func (c *Catalog) ByTag(tag string) []model.PluginRecord {
	return lo.Filter(c.plugins, func(p model.PluginRecord, _ int) bool {
		return p.HasTag(tag)
	})
}

// BestPairedWith returns records that list the plugin by name as a
// pairing, or that the plugin lists. The plugin itself is excluded.
func (c *Catalog) BestPairedWith(id string) []model.PluginRecord {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	plugin := c.plugins[i]
	return lo.Filter(c.plugins, func(p model.PluginRecord, _ int) bool {
		if p.ID == plugin.ID {
			return false
		}
		return slices.Contains(plugin.BestPairedWith, p.Name) || slices.Contains(p.BestPairedWith, plugin.Name)
	})
}

// NativeOnly returns records that only exist inside the host.
func (c *Catalog) NativeOnly() []model.PluginRecord {
	return lo.Filter(c.plugins, func(p model.PluginRecord, _ int) bool {
		return p.NativeOnly
	})
}

// ExclusivityInfo returns the plugin's edition flags, or nil if unknown.
func (c *Catalog) ExclusivityInfo(id string) []string {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return slices.Clone(c.plugins[i].ExclusivityFlags)
}

// Families returns the distinct families present, in model order.
func (c *Catalog) Families() []model.PluginFamily {
	present := lo.SliceToMap(c.plugins, func(p model.PluginRecord) (model.PluginFamily, struct{}) {
		return p.Family, struct{}{}
	})
	return lo.Filter(model.Families(), func(f model.PluginFamily, _ int) bool {
		_, ok := present[f]
		return ok
	})
}

// Tags returns every distinct tag, sorted.
func (c *Catalog) Tags() []string {
	tags := lo.Uniq(lo.FlatMap(c.plugins, func(p model.PluginRecord, _ int) []string {
		return p.Tags
	}))
	sort.Strings(tags)
	return tags
}
