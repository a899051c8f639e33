// Package catalog holds the read-only plugin reference catalog and its
// search, filter and sort operations.
//
// The catalog is loaded once, from the embedded plugins.json or from a
// file of the same shape, and never mutated afterwards:
//
//	cat, err := catalog.LoadEmbedded()
//	results := cat.Query(catalog.SearchParams{
//	    Query:   "bass",
//	    Filters: catalog.Filters{Edition: model.EditionSignature},
//	    SortBy:  catalog.SortByName,
//	})
//
// # Filtering
//
// Every active filter must hold (conjunction). The free-text query matches
// case-insensitively against name, family, tags and primary use cases.
// An empty query and zero-value Filters return the whole catalog.
//
// # Command Palette
//
// Palette ranks sections and plugins with fuzzy matching for quick jumps
// from the TUI.
package catalog
