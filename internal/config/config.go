package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/codeatlas/internal/partition"
)

const (
	// DefaultMaxEntries is the default cap on emitted entries
	DefaultMaxEntries = 500
	// DefaultOutputDir is the default artifact directory, relative to the
	// indexed root
	DefaultOutputDir = ".codeatlas"
	// DefaultConfigFile is the config file name looked up at the indexed root
	DefaultConfigFile = "codeatlas.toml"
	// DefaultCacheFile is the revision cache location inside the output dir
	DefaultCacheFile = "revisions.db"
)

// Config is the configuration surface consumed by the pipeline. The core
// reads it; population (flags, config file, auto-detection) happens here at
// the edge.
type Config struct {
	ProjectName  string             `toml:"project_name"`
	MaxEntries   int                `toml:"max_entries"`
	PartitionBy  partition.Strategy `toml:"partition_by"`
	OutputDir    string             `toml:"output_dir"`
	LogLevel     string             `toml:"log_level"`
	HistoryCache bool               `toml:"history_cache"`
}

// Default returns the configuration defaults for an indexed root.
func Default(root string) *Config {
	return &Config{
		ProjectName:  DetectProjectName(root),
		MaxEntries:   DefaultMaxEntries,
		PartitionBy:  partition.StrategyDomain,
		OutputDir:    filepath.Join(root, DefaultOutputDir),
		LogLevel:     "info",
		HistoryCache: true,
	}
}

// Load reads codeatlas.toml from the indexed root when present, layered
// over the defaults. A missing file is not an error.
func Load(root string) (*Config, error) {
	cfg := Default(root)
	defaultOut := cfg.OutputDir

	data, err := os.ReadFile(filepath.Join(root, DefaultConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", DefaultConfigFile, err)
	}

	// A relative output dir from the file resolves against the indexed root.
	// The default is already rooted and must not be joined again, which
	// matters when root itself is relative.
	if cfg.OutputDir != defaultOut && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(root, cfg.OutputDir)
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.MaxEntries <= 0 {
		return errors.New("max_entries must be positive")
	}
	if !c.PartitionBy.Valid() {
		return fmt.Errorf("invalid partition_by %q (want domain, importance, or none)", c.PartitionBy)
	}
	if c.ProjectName == "" {
		return errors.New("project_name is required")
	}
	return nil
}

// CachePath returns the revision cache database path.
func (c *Config) CachePath() string {
	return filepath.Join(c.OutputDir, DefaultCacheFile)
}
