// Package config provides configuration management for flstudio-hub.
//
// This package handles:
//   - Loading and saving settings from YAML files
//   - Default configuration values
//   - Environment overrides (FLHUB_*, GEMINI_API_KEY)
//
// # Default Settings
//
//	settings := config.DefaultSettings()
//	// Data in <user config dir>/flhub, JSON file store
//	// Gemini via the genai SDK, 8 concurrent sample readers
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//	settings.ApplyEnv()
//
// # Saving Settings
//
//	settings.StoreBackend = config.BackendSQLite
//	err := settings.Save("/path/to/settings.yaml")
package config
