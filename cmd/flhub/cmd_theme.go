package main

import (
	"fmt"

	"github.com/handiism/flstudio-hub/internal/state"
	"github.com/handiism/flstudio-hub/internal/tui"
	"github.com/spf13/cobra"
)

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func (c *cli) themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle the stored color theme",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the current theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), themeName(c.hub.State.State().DarkMode))
			return nil
		},
	}

	toggle := &cobra.Command{
		Use:   "toggle",
		Short: "Switch between dark and light",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := c.hub.State.Dispatch(state.ToggleDarkMode{})
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", themeName(s.DarkMode))
			return nil
		},
	}

	cmd.AddCommand(show, toggle)
	return cmd
}

func (c *cli) tuiCmd() *cobra.Command {
	var section string
	cmd := &cobra.Command{
		Use:         "tui",
		Short:       "Open the interactive hub",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationInteractive: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if section != "" {
				if !state.IsSection(section) {
					return fmt.Errorf("unknown section: %s", section)
				}
				c.hub.State.Dispatch(state.SetActiveSection{Section: section})
			}
			return tui.Run(c.hub.TUIDeps())
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "Section to open on start (e.g. utilities)")
	return cmd
}
