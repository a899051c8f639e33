package main

import (
	"fmt"
	"strings"

	"github.com/handiism/flstudio-hub/internal/reference"
	"github.com/spf13/cobra"
)

func (c *cli) troubleshootCmd() *cobra.Command {
	var tips bool
	cmd := &cobra.Command{
		Use:   "troubleshoot [symptom...]",
		Short: "Look up fixes for audio, performance and plugin problems",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if tips {
				bulletList(w, "Performance tips", reference.PerformanceTips())
				return nil
			}

			matches := reference.FindIssues(strings.Join(args, " "))
			if len(matches) == 0 {
				fmt.Fprintln(w, "No issues match.")
				return nil
			}
			category := ""
			for _, m := range matches {
				if m.Category.ID != category {
					category = m.Category.ID
					fmt.Fprintf(w, "\n%s\n", m.Category.Title)
				}
				fmt.Fprintf(w, "\n[%s] %s\n", m.Issue.Severity, m.Issue.Symptom)
				for _, s := range m.Issue.Solutions {
					fmt.Fprintf(w, "  - %s\n", s)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&tips, "tips", false, "Show quick performance tips instead")
	return cmd
}

func (c *cli) shortcutsCmd() *cobra.Command {
	var (
		category   string
		categories bool
	)
	cmd := &cobra.Command{
		Use:   "shortcuts [query...]",
		Short: "Search keyboard shortcuts by action or key",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if categories {
				tw := newTable(w, "ID", "NAME", "SHORTCUTS")
				for _, sc := range reference.ShortcutCategories() {
					row(tw, sc.ID, sc.Name, len(sc.Shortcuts))
				}
				tw.Render()
				return nil
			}

			matches := reference.FindShortcuts(strings.Join(args, " "), category)
			if len(matches) == 0 {
				fmt.Fprintln(w, "No shortcuts match.")
				return nil
			}
			tw := newTable(w, "CATEGORY", "ACTION", "KEY")
			for _, m := range matches {
				row(tw, m.Category, m.Action, m.Key)
			}
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category (id or name)")
	cmd.Flags().BoolVar(&categories, "categories", false, "List shortcut categories")
	return cmd
}

func (c *cli) presetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Genre starting points and mixer chains",
	}

	genres := &cobra.Command{
		Use:   "genres",
		Short: "List genre presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "BPM", "KEY", "PLUGINS")
			for _, g := range reference.GenrePresets() {
				row(tw, g.ID, g.Name, g.BPM, g.Key, strings.Join(g.Plugins, ", "))
			}
			tw.Render()
			return nil
		},
	}

	genre := &cobra.Command{
		Use:   "genre <id>",
		Short: "Show a genre preset's characteristics and mixer setup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ok := reference.GenrePresetByID(args[0])
			if !ok {
				return fmt.Errorf("unknown genre preset: %s", args[0])
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s  %s BPM, %s\n%s\n\n", g.Name, g.BPM, g.Key, g.Description)
			bulletList(w, "Characteristics", g.Characteristics)
			bulletList(w, "Plugins", g.Plugins)
			fmt.Fprintln(w)
			tw := newTable(w, "TRACK", "SETTING")
			for _, s := range g.MixerSetup {
				row(tw, s.Track, s.Setting)
			}
			tw.Render()
			return nil
		},
	}

	use := &cobra.Command{
		Use:   "use <genre-id>",
		Short: "Save a genre preset as a project template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ok := reference.GenrePresetByID(args[0])
			if !ok {
				return fmt.Errorf("unknown genre preset: %s", args[0])
			}
			t, err := c.hub.Templates.Create(g.ToProjectTemplate())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) at %d BPM with %d mixer tracks\n", t.ID, t.Name, t.BPM, len(t.MixerTracks))
			return nil
		},
	}

	mixers := &cobra.Command{
		Use:   "mixers",
		Short: "List mixer chain templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "CATEGORY", "TRACKS", "PLUGINS")
			for _, m := range reference.MixerTemplates() {
				row(tw, m.ID, m.Name, m.Category, m.Tracks, strings.Join(m.Plugins, ", "))
			}
			tw.Render()
			return nil
		},
	}

	mixer := &cobra.Command{
		Use:   "mixer <id>",
		Short: "Show a mixer chain's insert settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := reference.MixerTemplateByID(args[0])
			if !ok {
				return fmt.Errorf("unknown mixer template: %s", args[0])
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s, %d tracks)\n%s\n\n", m.Name, m.Category, m.Tracks, m.Description)
			tw := newTable(w, "INSERT", "SETTING")
			for i, s := range m.Inserts {
				row(tw, i+1, s)
			}
			tw.Render()
			return nil
		},
	}

	apply := &cobra.Command{
		Use:   "apply <mixer-id> <template-id>",
		Short: "Add a mixer chain to a saved project template",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, ok := reference.MixerTemplateByID(args[0])
			if !ok {
				return fmt.Errorf("unknown mixer template: %s", args[0])
			}
			t, err := c.hub.Templates.Get(args[1])
			if err != nil {
				return err
			}
			mt := m.ApplyTo(&t)
			if _, err := c.hub.Templates.Update(t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s: %s\n", mt.Name, t.Name, strings.Join(mt.Effects, " → "))
			return nil
		},
	}

	cmd.AddCommand(genres, genre, use, mixers, mixer, apply)
	return cmd
}

func (c *cli) guideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Mixing, interface and export guides",
	}

	mixing := &cobra.Command{
		Use:   "mixing",
		Short: "Routing, EQ, dynamics and automation techniques",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, mc := range reference.MixingConcepts() {
				fmt.Fprintf(w, "%s\n", mc.Title)
				for _, it := range mc.Items {
					fmt.Fprintf(w, "  %s: %s\n    Tip: %s\n", it.Title, it.Description, it.Tip)
				}
				fmt.Fprintln(w)
			}
			tw := newTable(w, "AUTOMATION", "DESCRIPTION", "HOW TO")
			for _, a := range reference.AutomationTechniques() {
				row(tw, a.Title, a.Description, a.HowTo)
			}
			tw.Render()
			return nil
		},
	}

	modules := &cobra.Command{
		Use:   "modules [id]",
		Short: "The five core windows and what they are for",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := reference.Modules()
			if len(args) == 1 {
				m, ok := reference.ModuleByID(args[0])
				if !ok {
					return fmt.Errorf("unknown module: %s", args[0])
				}
				list = []reference.Module{m}
			}
			w := cmd.OutOrStdout()
			for _, m := range list {
				fmt.Fprintf(w, "%s (%s)\n  %s\n", m.Title, m.ID, m.Description)
				for _, f := range m.Features {
					fmt.Fprintf(w, "  - %s: %s\n", f.Label, f.Description)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Render formats and export checklists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			tw := newTable(w, "CONTEXT", "FORMAT", "BIT DEPTH", "QUALITY", "NOTES")
			for _, f := range reference.ExportFormats() {
				row(tw, f.Context, f.Format, f.BitDepth, f.Quality, f.Notes)
			}
			tw.Render()
			for _, p := range reference.ExportPractices() {
				fmt.Fprintln(w)
				bulletList(w, p.Category, p.Items)
			}
			return nil
		},
	}

	cmd.AddCommand(mixing, modules, export)
	return cmd
}
