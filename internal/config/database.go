package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Thaonnor/finsight/internal/common"
	"github.com/spf13/viper"
)

// DefaultDatabasePath is where the finsight desktop app keeps its database,
// relative to the repository root.
const DefaultDatabasePath = "src-tauri/finsight.db"

// Config holds the settings finsight-seed needs to run.
type Config struct {
	DatabasePath   string
	LogLevel       string
	LogFormat      string
	AutoCheckpoint bool
	Quiet          bool
}

// Load reads configuration from v.
// It follows this precedence:
// 1. Viper configuration (flags, config file, FINSIGHT_ env vars)
// 2. Direct environment variables (FINSIGHT_DB)
// 3. Default values
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabasePath:   v.GetString("database.path"),
		LogLevel:       v.GetString("logging.level"),
		LogFormat:      v.GetString("logging.format"),
		AutoCheckpoint: v.GetBool("seed.checkpoint"),
		Quiet:          v.GetBool("seed.quiet"),
	}

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = os.Getenv("FINSIGHT_DB")
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the seeder cannot work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("%w: database path", common.ErrMissingConfig)
	}
	if strings.HasSuffix(c.DatabasePath, "/") {
		return fmt.Errorf("%w: database path %q is a directory", common.ErrInvalidConfig, c.DatabasePath)
	}
	if _, err := common.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
