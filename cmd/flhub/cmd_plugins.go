package main

import (
	"fmt"
	"strings"

	"github.com/handiism/flstudio-hub/internal/catalog"
	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/spf13/cobra"
)

func (c *cli) pluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plugins",
		Aliases: []string{"p"},
		Short:   "Search the native plugin catalog",
	}

	var (
		params  catalog.SearchParams
		edition string
		sortBy  string
		order   string
		asJSON  bool
	)
	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Search plugins by text and filters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.Query = args[0]
			}
			params.Filters.Edition = model.Edition(edition)
			params.SortBy = catalog.SortKey(sortBy)
			params.SortOrder = catalog.SortOrder(order)

			results := c.hub.Catalog.Query(params)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plugins match.")
				return nil
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "FAMILY", "EDITION", "CPU", "NATIVE")
			for _, p := range results {
				row(tw, p.ID, p.Name, p.Family, p.Edition, p.CPURating, p.NativeOnly)
			}
			tw.Render()
			return nil
		},
	}
	f := search.Flags()
	f.StringVar(&params.Filters.Family, "family", "", "Family filter (e.g. \"FM/Hybrid\")")
	f.StringVar(&edition, "edition", "", "Edition filter: \"All Plugins\", \"Signature+\" or \"Producer+\"")
	f.StringSliceVar(&params.Filters.Tags, "tag", nil, "Required tag (repeatable)")
	f.BoolVar(&params.Filters.NativeOnly, "native", false, "Only plugins exclusive to FL Studio")
	f.IntVar(&params.Filters.MaxCPU, "max-cpu", 0, "Maximum CPU rating (1-5)")
	f.StringVar(&sortBy, "sort", string(catalog.SortByName), "Sort by name, family or edition; empty keeps catalog order")
	f.StringVar(&order, "order", string(catalog.Asc), "Sort order: asc or desc")
	f.BoolVar(&asJSON, "json", false, "Print results as JSON")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one plugin in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.hub.Catalog.Get(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s)\n", p.Name, p.Family)
			fmt.Fprintf(w, "Edition:    %s\n", p.Edition)
			fmt.Fprintf(w, "Core model: %s\n", p.CoreModel)
			fmt.Fprintf(w, "Synthesis:  %s\n", p.SynthesisMethod)
			fmt.Fprintf(w, "CPU:        %d/5  Complexity: %d/5\n", p.CPURating, p.Complexity)
			if len(p.Tags) > 0 {
				fmt.Fprintf(w, "Tags:       %s\n", strings.Join(p.Tags, ", "))
			}
			bulletList(w, "Use cases", p.PrimaryUseCases)
			bulletList(w, "Differentiators", p.KeyDifferentiators)
			bulletList(w, "Native advantages", p.NativeAdvantages)
			bulletList(w, "Exclusivity", c.hub.Catalog.ExclusivityInfo(p.ID))
			return nil
		},
	}

	pairs := &cobra.Command{
		Use:   "pairs <id>",
		Short: "List plugins that pair well with a plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.hub.Catalog.Get(args[0]); err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "FAMILY")
			for _, p := range c.hub.Catalog.BestPairedWith(args[0]) {
				row(tw, p.ID, p.Name, p.Family)
			}
			tw.Render()
			return nil
		},
	}

	families := &cobra.Command{
		Use:   "families",
		Short: "List plugin families with their plugin counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "FAMILY", "PLUGINS")
			for _, fam := range c.hub.Catalog.Families() {
				row(tw, fam, len(c.hub.Catalog.ByFamily(fam)))
			}
			tw.Render()
			return nil
		},
	}

	tags := &cobra.Command{
		Use:   "tags",
		Short: "List every plugin tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range c.hub.Catalog.Tags() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
			return nil
		},
	}

	cmd.AddCommand(search, show, pairs, families, tags)
	return cmd
}
