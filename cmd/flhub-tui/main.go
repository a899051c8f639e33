package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/handiism/flstudio-hub/internal/app"
	"github.com/handiism/flstudio-hub/internal/config"
	"github.com/handiism/flstudio-hub/internal/logging"
	"github.com/handiism/flstudio-hub/internal/tui"
)

func main() {
	configFlag := flag.String("config", config.DefaultPath(), "Path to settings file")
	flag.Parse()

	if err := run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	settings.ApplyEnv()

	// The alternate screen owns stdout and stderr, so only warnings are logged.
	logger, err := logging.New("warn", false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	hub, err := app.Open(settings, logger)
	if err != nil {
		return err
	}
	defer hub.Close()

	return tui.Run(hub.TUIDeps())
}
