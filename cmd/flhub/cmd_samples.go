package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/handiism/flstudio-hub/internal/samples"
	"github.com/spf13/cobra"
)

func (c *cli) samplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Scan and tag MP3 sample libraries",
	}

	var (
		thumbnails bool
		showAll    bool
		playlist   string
	)
	scan := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Read BPM, key and genre tags from every MP3 under dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			scanner := samples.NewScanner(c.hub.Settings, progressPrinter(w, c.verbose))
			if thumbnails {
				scanner.WithThumbnails(filepath.Join(c.hub.Settings.DataDir, "thumbnails"))
			}

			lib, err := scanner.Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sum := lib.Summary()

			if playlist != "" {
				if err := samples.WritePlaylist(lib, playlist); err != nil {
					return err
				}
				fmt.Fprintf(w, "Playlist written to %s\n", playlist)
			}

			fmt.Fprintln(w)
			if showAll {
				tw := newTable(w, "NAME", "BPM", "KEY", "GENRE", "ART")
				for _, s := range lib.Samples {
					row(tw, s.Name(), s.BPM, s.Key, s.Genre, s.HasArtwork)
				}
				tw.Render()
				fmt.Fprintln(w)
			}

			fmt.Fprintf(w, "%d samples, %d tagged with BPM or key\n", sum.Total, sum.Tagged)
			if len(sum.ByBPM) > 0 {
				tw := newTable(w, "BPM", "SAMPLES")
				for _, b := range sum.ByBPM {
					row(tw, b.Value, b.N)
				}
				tw.Render()
			}
			if len(sum.ByKey) > 0 {
				tw := newTable(w, "KEY", "SAMPLES")
				for _, k := range sum.ByKey {
					row(tw, k.Value, k.N)
				}
				tw.Render()
			}
			return nil
		},
	}
	scan.Flags().BoolVar(&thumbnails, "thumbnails", false, "Write cover art thumbnails into the data dir")
	scan.Flags().BoolVar(&showAll, "list", false, "List every sample")
	scan.Flags().StringVar(&playlist, "playlist", "", "Write an audition playlist (.m3u, .pls or .wpl)")

	var (
		tags        samples.Tags
		clearFields []string
	)
	tag := &cobra.Command{
		Use:   "tag <file.mp3>",
		Short: "Write BPM, key, genre, title or artist tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := tagConfig(cmd, clearFields)
			if err != nil {
				return err
			}
			tagger := samples.NewTagger(cfg)
			if err := tagger.SaveTags(args[0], tags, nil); err != nil {
				return err
			}
			saved, _, err := tagger.ReadTags(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: bpm=%q key=%q genre=%q\n", filepath.Base(args[0]), saved.BPM, saved.Key, saved.Genre)
			return nil
		},
	}
	f := tag.Flags()
	f.StringVar(&tags.BPM, "bpm", "", "Tempo (TBPM)")
	f.StringVar(&tags.Key, "key", "", "Initial key (TKEY)")
	f.StringVar(&tags.Genre, "genre", "", "Genre (TCON)")
	f.StringVar(&tags.Title, "title", "", "Title (TIT2)")
	f.StringVar(&tags.Artist, "artist", "", "Artist (TPE1)")
	f.StringSliceVar(&clearFields, "clear", nil, "Frames to remove: bpm, key, genre, title, artist")

	cmd.AddCommand(scan, tag)
	return cmd
}

// tagConfig modifies the frames whose flags were given and clears the ones
// listed in clearFields. Everything else is left alone.
func tagConfig(cmd *cobra.Command, clearFields []string) (*samples.TagConfig, error) {
	cfg := &samples.TagConfig{
		BPM:    samples.TagDoNotModify,
		Key:    samples.TagDoNotModify,
		Genre:  samples.TagDoNotModify,
		Title:  samples.TagDoNotModify,
		Artist: samples.TagDoNotModify,
	}
	fields := map[string]*samples.TagEditAction{
		"bpm":    &cfg.BPM,
		"key":    &cfg.Key,
		"genre":  &cfg.Genre,
		"title":  &cfg.Title,
		"artist": &cfg.Artist,
	}
	for name, action := range fields {
		if cmd.Flags().Changed(name) {
			*action = samples.TagModify
		}
	}
	for _, name := range clearFields {
		action, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("unknown tag field %q", name)
		}
		*action = samples.TagEmpty
	}
	return cfg, nil
}

func progressPrinter(w io.Writer, verbose bool) func(samples.ProgressEvent) {
	return func(event samples.ProgressEvent) {
		if event.Level == samples.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case samples.LevelError:
			prefix = "❌ "
		case samples.LevelWarning:
			prefix = "⚠️  "
		case samples.LevelSuccess:
			prefix = "✅ "
		case samples.LevelInfo:
			prefix = "ℹ️  "
		default:
			prefix = "   "
		}

		fmt.Fprintln(w, prefix+event.Message)
	}
}
