package main

import (
	"fmt"
	"strings"

	"github.com/handiism/flstudio-hub/internal/reference"
	"github.com/spf13/cobra"
)

func (c *cli) midiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "midi",
		Short: "MIDI controller mappings and reference tables",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List supported controllers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "MANUFACTURER", "TYPE", "MAPPINGS")
			for _, ctl := range reference.Controllers() {
				row(tw, ctl.ID, ctl.Name, ctl.Manufacturer, ctl.Type, len(ctl.Mappings))
			}
			tw.Render()
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a controller's mappings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, ok := reference.ControllerByID(args[0])
			if !ok {
				return fmt.Errorf("unknown controller: %s", args[0])
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s, %s)\n%s\n\n", ctl.Name, ctl.Manufacturer, ctl.Type, ctl.Description)
			tw := newTable(w, "CONTROL", "FUNCTION", "DEFAULT")
			for _, m := range ctl.Mappings {
				row(tw, m.Control, m.Function, m.DefaultParam)
			}
			tw.Render()
			return nil
		},
	}

	find := &cobra.Command{
		Use:   "find <function...>",
		Short: "Find mappings by function or control name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := reference.FindMappings(strings.Join(args, " "))
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No mappings match.")
				return nil
			}
			tw := newTable(cmd.OutOrStdout(), "CONTROLLER", "CONTROL", "FUNCTION")
			for _, m := range matches {
				row(tw, m.Controller.Name, m.Mapping.Control, m.Mapping.Function)
			}
			tw.Render()
			return nil
		},
	}

	cc := &cobra.Command{
		Use:   "cc",
		Short: "List common MIDI CC numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "CC", "NAME", "DESCRIPTION")
			for _, m := range reference.CCMessages() {
				row(tw, m.CC, m.Name, m.Description)
			}
			tw.Render()
			return nil
		},
	}

	drums := &cobra.Command{
		Use:   "drums",
		Short: "List the General MIDI drum notes FPC uses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "NOTE", "NAME", "DESCRIPTION")
			for _, n := range reference.DrumNotes() {
				row(tw, n.Note, n.Name, n.Description)
			}
			tw.Render()
			return nil
		},
	}

	cmd.AddCommand(list, show, find, cc, drums)
	return cmd
}

func (c *cli) songsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "songs",
		Short: "Genre song blueprints",
	}

	var genre string
	list := &cobra.Command{
		Use:   "list",
		Short: "List song blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "GENRE", "BPM", "KEY")
			for _, s := range reference.SongTemplatesByGenre(genre) {
				row(tw, s.ID, s.Name, s.Genre, s.BPM, s.Key)
			}
			tw.Render()
			return nil
		},
	}
	list.Flags().StringVar(&genre, "genre", "", "Only this genre ("+strings.Join(reference.Genres(), ", ")+")")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a blueprint's layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := reference.SongTemplateByID(args[0])
			if !ok {
				return fmt.Errorf("unknown song template: %s", args[0])
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s) %d BPM, %s\n%s\n", s.Name, s.Genre, s.BPM, s.Key, s.Description)
			for _, l := range s.Layers {
				fmt.Fprintf(w, "\n%s\n", l.Category)
				for _, e := range l.Elements {
					fmt.Fprintf(w, "  - %s\n", e)
				}
			}
			return nil
		},
	}

	use := &cobra.Command{
		Use:   "use <id>",
		Short: "Save a blueprint as a project template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := reference.SongTemplateByID(args[0])
			if !ok {
				return fmt.Errorf("unknown song template: %s", args[0])
			}
			t, err := c.hub.Templates.Create(s.ToProjectTemplate())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) with %d channels\n", t.ID, t.Name, len(t.Channels))
			return nil
		},
	}

	cmd.AddCommand(list, show, use)
	return cmd
}
