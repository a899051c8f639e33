package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends accepted by StoreBackend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// AI transports accepted by AITransport.
const (
	TransportSDK  = "sdk"
	TransportREST = "rest"
)

// Settings holds all configuration options.
type Settings struct {
	// Storage settings
	DataDir      string `yaml:"data_dir"`
	StoreBackend string `yaml:"store_backend"` // file, sqlite, memory
	StoreFile    string `yaml:"store_file"`

	// Reference data
	PluginsFile string `yaml:"plugins_file"` // empty uses the bundled catalog

	// AI gateway settings
	AIModel     string        `yaml:"ai_model"`
	AITransport string        `yaml:"ai_transport"` // sdk, rest
	AIEndpoint  string        `yaml:"ai_endpoint"`
	AITimeout   time.Duration `yaml:"ai_timeout"` // 0 disables the timeout

	// APIKey seeds the stored credential when none is saved yet.
	APIKey string `yaml:"-"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogDev   bool   `yaml:"log_dev"`

	// Sample scanning
	ScanConcurrency int `yaml:"scan_concurrency"`
	ArtworkMaxSize  int `yaml:"artwork_max_size"`

	// Calculator
	DefaultBPM float64 `yaml:"default_bpm"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DataDir:      defaultDataDir(),
		StoreBackend: BackendFile,
		StoreFile:    "storage.json",

		AIModel:     "gemini-2.5-flash",
		AITransport: TransportSDK,
		AIEndpoint:  "https://generativelanguage.googleapis.com",

		LogLevel: "info",

		ScanConcurrency: 8,
		ArtworkMaxSize:  300,

		DefaultBPM: 128,
	}
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "flhub", "settings.yaml")
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".flhub"
	}
	return filepath.Join(dir, "flhub")
}

// Load reads settings from a YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return settings, nil
}

// Save writes settings to a YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides settings from FLHUB_* variables and GEMINI_API_KEY.
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("FLHUB_DATA_DIR"); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv("FLHUB_STORE_BACKEND"); v != "" {
		s.StoreBackend = v
	}
	if v := os.Getenv("FLHUB_AI_MODEL"); v != "" {
		s.AIModel = v
	}
	if v := os.Getenv("FLHUB_AI_TRANSPORT"); v != "" {
		s.AITransport = v
	}
	if v := os.Getenv("FLHUB_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("FLHUB_SCAN_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.ScanConcurrency = n
		}
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		s.APIKey = v
	}
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	switch s.StoreBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", s.StoreBackend)
	}
	switch s.AITransport {
	case TransportSDK, TransportREST:
	default:
		return fmt.Errorf("unknown ai transport %q", s.AITransport)
	}
	if s.ScanConcurrency < 1 {
		return fmt.Errorf("scan_concurrency must be positive, got %d", s.ScanConcurrency)
	}
	return nil
}

// StorePath returns the absolute path of the key-value store file.
func (s *Settings) StorePath() string {
	name := s.StoreFile
	if s.StoreBackend == BackendSQLite && filepath.Ext(name) == ".json" {
		name = name[:len(name)-len(".json")] + ".db"
	}
	return filepath.Join(s.DataDir, name)
}
