// Vitalis - Lifestyle Recommendation and Scoring Engine
// Copyright 2026 Vitalis Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/vitalis-app/vitalis

// Package config loads the Vitalis server configuration with layered
// sources: built-in defaults, an optional YAML file, then environment
// variables prefixed VITALIS_ (highest priority).
//
//	VITALIS_SERVER_PORT=8080        -> server.port
//	VITALIS_CATALOG_RECIPES_PATH=.. -> catalog.recipes_path
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/vitalis-app/vitalis/internal/logging"
	"github.com/vitalis-app/vitalis/internal/recommend"
	"github.com/vitalis-app/vitalis/internal/tracker"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vitalis/config.yaml",
	"/etc/vitalis/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "VITALIS_CONFIG_PATH"

const envPrefix = "VITALIS_"

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig     `koanf:"server"`
	Database DatabaseConfig   `koanf:"database"`
	Catalog  CatalogConfig    `koanf:"catalog"`
	Tracker  tracker.Config   `koanf:"tracker"`
	Engine   recommend.Config `koanf:"engine"`
	Training TrainingConfig   `koanf:"training"`
	Logging  logging.Config   `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// DatabaseConfig holds the SQLite settings.
type DatabaseConfig struct {
	Path string `koanf:"path"`
}

// CatalogConfig points at the item catalog CSV files.
type CatalogConfig struct {
	RecipesPath       string `koanf:"recipes_path"`
	RecipeRatingsPath string `koanf:"recipe_ratings_path"`
	ExercisesPath     string `koanf:"exercises_path"`
}

// TrainingConfig schedules the background retrain service.
type TrainingConfig struct {
	TrainOnStartup bool          `koanf:"train_on_startup"`
	TrainInterval  time.Duration `koanf:"train_interval"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Database: DatabaseConfig{
			Path: "/data/vitalis.db",
		},
		Catalog: CatalogConfig{
			RecipesPath:       "/data/recipes.csv",
			RecipeRatingsPath: "/data/recipe_ratings.csv",
			ExercisesPath:     "/data/exercises.csv",
		},
		Tracker: tracker.Config{
			BaseURL: "",
			Timeout: 30 * time.Second,
		},
		Engine: *recommend.DefaultConfig(),
		Training: TrainingConfig{
			TrainOnStartup: true,
			TrainInterval:  24 * time.Hour,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and VITALIS_-prefixed environment variables.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field constraints before startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("server.rate_limit_reqs must be non-negative, got %d", c.Server.RateLimitReqs)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Training.TrainInterval <= 0 {
		return fmt.Errorf("training.train_interval must be positive, got %s", c.Training.TrainInterval)
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps VITALIS_SECTION_SOME_KEY to section.some_key. Section
// names are single words, so only the first underscore becomes a dot.
// Engine settings nest one level deeper: VITALIS_ENGINE_BLEND_MIN_WEIGHT
// maps to engine.blend.min_weight.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key
	}
	section, rest := parts[0], parts[1]
	if section == "engine" {
		for _, sub := range []string{"blend", "context", "limits", "training"} {
			if strings.HasPrefix(rest, sub+"_") {
				return section + "." + sub + "." + strings.TrimPrefix(rest, sub+"_")
			}
		}
	}
	return section + "." + rest
}
