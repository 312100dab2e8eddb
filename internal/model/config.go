package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Catalog strategy names accepted in configuration.
const (
	CatalogStrategyEager = "eager"
	CatalogStrategyLazy  = "lazy"
)

// CatalogConfig controls where presets come from and how they are
// resolved.
type CatalogConfig struct {
	// Strategy is "eager" (one file with every payload) or "lazy"
	// (metadata index plus on-demand payload fetch).
	Strategy string `mapstructure:"strategy" yaml:"strategy"`

	// Dir is the directory holding index.json / presets.json and the
	// per-preset payload files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// BaseURL, when set, is fetched over HTTP instead of reading Dir.
	// Payload file refs are resolved relative to it.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// DefaultPreset is loaded into the session at startup.
	DefaultPreset string `mapstructure:"default_preset" yaml:"default_preset"`
}

// StorageConfig locates the checklist database.
type StorageConfig struct {
	DBPath string `mapstructure:"db_path" yaml:"db_path"`
}

// DisplayConfig holds UI and localization preferences.
type DisplayConfig struct {
	Theme    string `mapstructure:"theme" yaml:"theme"`
	Language string `mapstructure:"language" yaml:"language"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/opsloadout/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "opsloadout", "config.yaml")
}

// defaultDBPath places the database next to the config file.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "opsloadout.db")
	}
	return filepath.Join(home, ".config", "opsloadout", "opsloadout.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Catalog: CatalogConfig{
			Strategy:      CatalogStrategyLazy,
			Dir:           "presets",
			DefaultPreset: "embassy",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Display: DisplayConfig{
			Theme:    "default",
			Language: "en",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default
// configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("catalog.strategy", CatalogStrategyLazy)
	v.SetDefault("catalog.dir", "presets")
	v.SetDefault("catalog.default_preset", "embassy")
	v.SetDefault("storage.db_path", defaultDBPath())
	v.SetDefault("display.theme", "default")
	v.SetDefault("display.language", "en")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch cfg.Catalog.Strategy {
	case CatalogStrategyEager, CatalogStrategyLazy:
	default:
		return nil, fmt.Errorf("config %s: unknown catalog strategy %q", path, cfg.Catalog.Strategy)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("catalog", cfg.Catalog)
	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
