package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/flstudio-hub/internal/app"
	"github.com/handiism/flstudio-hub/internal/config"
	"github.com/handiism/flstudio-hub/internal/logging"
	"github.com/handiism/flstudio-hub/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cli carries the global flags and the services opened for one invocation.
// close is safe to call more than once.
type cli struct {
	configPath string
	verbose    bool

	logger *zap.Logger
	hub    *app.App
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "flhub",
		Short: "FL Studio reference hub",
		Long: `flhub is a reference hub for FL Studio producers.

It searches the native plugin catalog, keeps project templates, runs the
tempo calculator and asks the production assistant. Without a Gemini API
key the assistant answers from a built-in offline responder.

For the interactive hub, use: flhub tui (or flhub-tui)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			c.close()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultPath(), "Path to settings file")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		c.pluginsCmd(),
		c.templatesCmd(),
		c.aiCmd(),
		c.calcCmd(),
		c.midiCmd(),
		c.songsCmd(),
		c.presetsCmd(),
		c.shortcutsCmd(),
		c.troubleshootCmd(),
		c.guideCmd(),
		c.samplesCmd(),
		c.themeCmd(),
		c.tuiCmd(),
	)
	return root
}

// annotationInteractive marks commands that draw the TUI. Only those ask
// the terminal for its background color.
const annotationInteractive = "flhub/interactive"

// lightTerminal is the theme fallback for plain CLI output.
func lightTerminal() bool { return false }

func storeOptions(cmd *cobra.Command) []state.StoreOption {
	if cmd.Annotations[annotationInteractive] == "true" {
		return nil
	}
	return []state.StoreOption{state.WithThemeDetector(lightTerminal)}
}

func (c *cli) open(cmd *cobra.Command) error {
	settings, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	settings.ApplyEnv()

	level := settings.LogLevel
	if c.verbose {
		level = "debug"
	}
	c.logger, err = logging.New(level, settings.LogDev)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.hub, err = app.Open(settings, c.logger, storeOptions(cmd)...)
	return err
}

func (c *cli) close() {
	if c.hub != nil {
		if err := c.hub.Close(); err != nil {
			c.logger.Warn("close store", zap.Error(err))
		}
		c.hub = nil
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Fprintln(stderr, "Cancelled.")
			return 130
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
