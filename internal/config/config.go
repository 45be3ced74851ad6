package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/prowlers/logtracker/internal/playfab"
)

// Config captures everything the tracker needs to reconcile and watch.
type Config struct {
	DataPath       string        `env:"DATA_PATH"`
	UseRemote      bool          `env:"USE_REMOTE"`
	TitleID        string        `env:"TITLE_ID"`
	SteamTicket    string        `env:"STEAM_TICKET"`
	RemoteTimeout  time.Duration `env:"REMOTE_TIMEOUT"`
	RemoteAttempts uint          `env:"REMOTE_ATTEMPTS"`
	HistoryPath    string        `env:"HISTORY_PATH"`
	CatalogPath    string        `env:"CATALOG_PATH"`
}

const (
	envPrefix             = "LOGTRACKER_"
	defaultConfigPath     = "~/.config/logtracker/config.toml"
	defaultHistoryPath    = "~/.local/share/logtracker/history.db"
	defaultRemoteTimeout  = 10 * time.Second
	defaultRemoteAttempts = 3
)

// Defaults returns the configuration used when no file or variables are set.
func Defaults() Config {
	return Config{
		TitleID:        playfab.DefaultTitleID,
		RemoteTimeout:  defaultRemoteTimeout,
		RemoteAttempts: defaultRemoteAttempts,
		HistoryPath:    mustExpand(defaultHistoryPath),
	}
}

// Load reads the TOML config at path (or the default location), then applies
// LOGTRACKER_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	if err := loadFile(resolved, &cfg); err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalize()
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DataPath       string `toml:"data_path"`
		UseRemote      *bool  `toml:"use_remote"`
		TitleID        string `toml:"title_id"`
		SteamTicket    string `toml:"steam_ticket"`
		RemoteTimeout  string `toml:"remote_timeout"`
		RemoteAttempts uint   `toml:"remote_attempts"`
		HistoryPath    string `toml:"history_path"`
		CatalogPath    string `toml:"catalog_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.DataPath); v != "" {
		cfg.DataPath = v
	}
	if raw.UseRemote != nil {
		cfg.UseRemote = *raw.UseRemote
	}
	if v := strings.TrimSpace(raw.TitleID); v != "" {
		cfg.TitleID = v
	}
	cfg.SteamTicket = strings.TrimSpace(raw.SteamTicket)
	if v := strings.TrimSpace(raw.RemoteTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse config: remote_timeout: %w", err)
		}
		cfg.RemoteTimeout = d
	}
	if raw.RemoteAttempts > 0 {
		cfg.RemoteAttempts = raw.RemoteAttempts
	}
	if v := strings.TrimSpace(raw.HistoryPath); v != "" {
		cfg.HistoryPath = v
	}
	cfg.CatalogPath = strings.TrimSpace(raw.CatalogPath)
	return nil
}

func (c Config) normalize() (Config, error) {
	if strings.TrimSpace(c.TitleID) == "" {
		c.TitleID = playfab.DefaultTitleID
	}
	if c.RemoteTimeout <= 0 {
		c.RemoteTimeout = defaultRemoteTimeout
	}
	if c.RemoteAttempts == 0 {
		c.RemoteAttempts = defaultRemoteAttempts
	}
	if strings.TrimSpace(c.DataPath) != "" {
		c.DataPath = mustExpand(c.DataPath)
	}
	if strings.TrimSpace(c.HistoryPath) == "" {
		c.HistoryPath = defaultHistoryPath
	}
	c.HistoryPath = mustExpand(c.HistoryPath)
	if strings.TrimSpace(c.CatalogPath) != "" {
		c.CatalogPath = mustExpand(c.CatalogPath)
	}
	return c, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
