package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/handiism/flstudio-hub/internal/model"
	"github.com/handiism/flstudio-hub/internal/samples"
	"github.com/spf13/cobra"
)

// templateFields are the editable scalar fields shared by create and update.
type templateFields struct {
	name, genre, key, description string
	bpm                           int
	channels                      []string
	tracks                        []string
}

func (tf *templateFields) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&tf.name, "name", "", "Template name")
	f.StringVar(&tf.genre, "genre", "", "Genre")
	f.IntVar(&tf.bpm, "bpm", 0, "Tempo in BPM")
	f.StringVar(&tf.key, "key", "", "Musical key (e.g. \"A Minor\")")
	f.StringVar(&tf.description, "description", "", "Free-form description")
	f.StringArrayVar(&tf.channels, "channel", nil, "Add a channel as name or name=plugin (repeatable)")
	f.StringArrayVar(&tf.tracks, "mixer-track", nil, "Add a mixer track (repeatable)")
}

// apply copies the flags the user set onto t.
func (tf *templateFields) apply(cmd *cobra.Command, t *model.ProjectTemplate) {
	f := cmd.Flags()
	if f.Changed("name") {
		t.Name = tf.name
	}
	if f.Changed("genre") {
		t.Genre = tf.genre
	}
	if f.Changed("bpm") {
		t.BPM = tf.bpm
	}
	if f.Changed("key") {
		t.Key = tf.key
	}
	if f.Changed("description") {
		t.Description = tf.description
	}
	for _, ch := range tf.channels {
		name, plugin, _ := strings.Cut(ch, "=")
		t.AddChannel(strings.TrimSpace(name), strings.TrimSpace(plugin))
	}
	for _, tr := range tf.tracks {
		t.AddMixerTrack(tr)
	}
}

func (c *cli) templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"t"},
		Short:   "Manage saved project templates",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := c.hub.Templates.List()
			if len(all) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates saved.")
				return nil
			}
			tw := newTable(cmd.OutOrStdout(), "ID", "NAME", "GENRE", "BPM", "KEY", "CHANNELS", "MODIFIED")
			for _, t := range all {
				row(tw, t.ID, t.Name, t.Genre, t.BPM, t.Key, len(t.Channels), t.DateModified.Local().Format("2006-01-02 15:04"))
			}
			tw.Render()
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := c.hub.Templates.Export(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	var createFields templateFields
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := model.NewTemplateDraft("", "", int(c.hub.Settings.DefaultBPM), "")
			createFields.apply(cmd, &draft)
			t, err := c.hub.Templates.Create(draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", t.ID, t.Name)
			return nil
		},
	}
	createFields.register(create)
	_ = create.MarkFlagRequired("name")

	var updateFields templateFields
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.hub.Templates.Get(args[0])
			if err != nil {
				return err
			}
			updateFields.apply(cmd, &t)
			t, err = c.hub.Templates.Update(t)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s)\n", t.ID, t.Name)
			return nil
		},
	}
	updateFields.register(update)

	del := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a template",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := c.hub.Templates.Delete(args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No template %s.\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}

	var exportDir string
	export := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a template to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.hub.Templates.ExportFile(args[0], exportDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
			return nil
		},
	}
	export.Flags().StringVarP(&exportDir, "output", "o", ".", "Directory to write the file into")

	imp := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import a template from a JSON file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				t   model.ProjectTemplate
				err error
			)
			if args[0] == "-" {
				var data []byte
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				t, err = c.hub.Templates.Import(string(data))
			} else {
				t, err = c.hub.Templates.ImportFile(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (%s)\n", t.ID, t.Name)
			return nil
		},
	}

	var suggestName string
	suggest := &cobra.Command{
		Use:   "suggest <sample-dir>",
		Short: "Create a template from a sample folder's dominant BPM and key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := samples.NewScanner(c.hub.Settings, nil).Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			name := suggestName
			if name == "" {
				name = filepath.Base(lib.Root)
			}
			draft := lib.Summary().SuggestTemplate(name, int(c.hub.Settings.DefaultBPM))
			t, err := c.hub.Templates.Create(draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) at %d BPM with %d channels\n", t.ID, t.Name, t.BPM, len(t.Channels))
			return nil
		},
	}
	suggest.Flags().StringVar(&suggestName, "name", "", "Template name (default: the folder name)")

	cmd.AddCommand(list, show, create, update, del, export, imp, suggest)
	return cmd
}
