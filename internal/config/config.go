package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file for one run.
const (
	HotkeyEnvVar   = "IMGOVERLAY_HOTKEY"
	LogLevelEnvVar = "IMGOVERLAY_LOG_LEVEL"
	LogFileEnvVar  = "IMGOVERLAY_LOG_FILE"
)

// Config holds all application configuration
type Config struct {
	// Hotkey is the global shortcut binding, e.g. "Ctrl+1". Empty selects
	// the platform default.
	Hotkey string `json:"hotkey"`

	// Window identity
	WindowLabel string `json:"window_label"`
	WindowTitle string `json:"window_title"`

	// Logging
	LogFile  string `json:"log_file"`
	LogLevel string `json:"log_level"` // trace, debug, info, warning, error

	// Overlay settings
	Overlay OverlayConfig `json:"overlay"`
}

// OverlayConfig holds overlay window settings
type OverlayConfig struct {
	FitRatio    float64 `json:"fit_ratio"`    // Max share of the screen an image may cover when shown
	ZoomStep    float64 `json:"zoom_step"`    // Relative size change per zoom step
	MinWidth    int     `json:"min_width"`
	MinHeight   int     `json:"min_height"`
	MaxWidth    int     `json:"max_width"`
	MaxHeight   int     `json:"max_height"`
	Opacity     float64 `json:"opacity"`      // Opacity applied on every show
	OpacityStep float64 `json:"opacity_step"`
	MinOpacity  float64 `json:"min_opacity"`
}

// Service manages configuration persistence
type Service struct {
	config   *Config
	filePath string
	envPath  string
}

// New creates a new config service
func New() (*Service, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return NewAt(filepath.Join(homeDir, ".imgoverlay"))
}

// NewAt creates a config service rooted at configDir.
func NewAt(configDir string) (*Service, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.json")

	service := &Service{
		filePath: configPath,
		envPath:  filepath.Join(configDir, ".env"),
		config:   getDefaultConfig(),
	}

	// Load existing config if it exists, otherwise create a default config file
	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		if err := service.Save(); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := service.applyEnv(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", service.envPath, err)
	}

	service.config.normalize(getDefaultConfig())

	return service, nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		WindowLabel: "image-overlay",
		WindowTitle: "Image Overlay",
		LogLevel:    "info",
		Overlay: OverlayConfig{
			FitRatio:    0.8,
			ZoomStep:    0.1,
			MinWidth:    200,
			MinHeight:   150,
			MaxWidth:    3000,
			MaxHeight:   2000,
			Opacity:     0.7,
			OpacityStep: 0.1,
			MinOpacity:  0.1,
		},
	}
}

// normalize replaces values the overlay cannot work with by their defaults.
// Opacity is clamped rather than reset, so a value just out of range keeps
// its intent.
func (c *Config) normalize(def *Config) {
	if c.WindowLabel == "" {
		c.WindowLabel = def.WindowLabel
	}
	if c.WindowTitle == "" {
		c.WindowTitle = def.WindowTitle
	}

	o, d := &c.Overlay, def.Overlay
	if o.FitRatio <= 0 || o.FitRatio > 1 {
		o.FitRatio = d.FitRatio
	}
	if o.ZoomStep <= 0 || o.ZoomStep >= 1 {
		o.ZoomStep = d.ZoomStep
	}
	if o.MinWidth <= 0 || o.MaxWidth <= 0 || o.MinWidth > o.MaxWidth {
		o.MinWidth, o.MaxWidth = d.MinWidth, d.MaxWidth
	}
	if o.MinHeight <= 0 || o.MaxHeight <= 0 || o.MinHeight > o.MaxHeight {
		o.MinHeight, o.MaxHeight = d.MinHeight, d.MaxHeight
	}
	if o.MinOpacity <= 0 || o.MinOpacity > 1 {
		o.MinOpacity = d.MinOpacity
	}
	if o.OpacityStep <= 0 || o.OpacityStep > 1 {
		o.OpacityStep = d.OpacityStep
	}
	o.Opacity = math.Max(o.MinOpacity, math.Min(1, o.Opacity))
}

// applyEnv loads the optional .env next to the config file and applies the
// overrides found in the environment. Variables already set in the process
// environment win over the .env file.
func (s *Service) applyEnv() error {
	if _, err := os.Stat(s.envPath); err == nil {
		if err := godotenv.Load(s.envPath); err != nil {
			return err
		}
	}

	if v := os.Getenv(HotkeyEnvVar); v != "" {
		s.config.Hotkey = v
	}
	if v := os.Getenv(LogLevelEnvVar); v != "" {
		s.config.LogLevel = v
	}
	if v := os.Getenv(LogFileEnvVar); v != "" {
		s.config.LogFile = v
	}
	return nil
}

// Get returns the current configuration
func (s *Service) Get() *Config {
	return s.config
}

// Set updates the configuration
func (s *Service) Set(config *Config) {
	s.config = config
}

// Load loads configuration from file
func (s *Service) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, s.config)
}

// Save saves configuration to file
func (s *Service) Save() error {
	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}
