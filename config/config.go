// Package config holds runtime settings for clipper-cli.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvDataDir          = "CLIPPER_DATA_DIR"
	EnvSearchDir        = "CLIPPER_SEARCH_DIR"
	EnvFfmpeg           = "CLIPPER_FFMPEG"
	EnvFfprobe          = "CLIPPER_FFPROBE"
	EnvMpv              = "CLIPPER_MPV"
	EnvHistoryFreshness = "CLIPPER_HISTORY_HOURS"
)

// Config is the resolved application configuration.
type Config struct {
	// DataDir holds the SQLite database.
	DataDir string
	// DefaultSearchDir is where the file browser starts when no fresh
	// history is available.
	DefaultSearchDir string
	FfmpegPath       string
	FfprobePath      string
	MpvPath          string
	// HistoryFreshness is how long a saved search directory stays in use.
	HistoryFreshness time.Duration
}

// DBPath returns the path to the database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "data.db")
}

// Default returns the built-in configuration for the given home directory.
func Default(home string) *Config {
	return &Config{
		DataDir:          filepath.Join(home, ".local", "share", "clipper-cli"),
		DefaultSearchDir: filepath.Join(home, "Desktop"),
		FfmpegPath:       "ffmpeg",
		FfprobePath:      "ffprobe",
		MpvPath:          "mpv",
		HistoryFreshness: 24 * time.Hour,
	}
}

// Load builds the configuration from defaults, an optional .env file in the
// working directory, and CLIPPER_* environment variables.
func Load() (*Config, error) {
	// A missing .env is not an error.
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	cfg := Default(home)
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := getenv(EnvSearchDir); v != "" {
		c.DefaultSearchDir = v
	}
	if v := getenv(EnvFfmpeg); v != "" {
		c.FfmpegPath = v
	}
	if v := getenv(EnvFfprobe); v != "" {
		c.FfprobePath = v
	}
	if v := getenv(EnvMpv); v != "" {
		c.MpvPath = v
	}
	if v := getenv(EnvHistoryFreshness); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours <= 0 {
			return fmt.Errorf("%s must be a positive number of hours, got %q", EnvHistoryFreshness, v)
		}
		c.HistoryFreshness = time.Duration(hours * float64(time.Hour))
	}
	return nil
}
