package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/logduck/logduck/internal/model"
)

const (
	defaultSampleSize   = model.DefaultSampleSize
	defaultBatchSize    = model.DefaultBatchSize
	defaultTableName    = model.DefaultTableName
	defaultMaxRows      = model.DefaultMaxRows
	defaultQueryTimeout = 30 * time.Second
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	SampleSize   int           `mapstructure:"sample-size"`
	BatchSize    int           `mapstructure:"batch-size"`
	TableName    string        `mapstructure:"table-name"`
	DBPath       string        `mapstructure:"db-path"`
	MaxRows      int           `mapstructure:"max-rows"`
	QueryTimeout time.Duration `mapstructure:"query-timeout"`
	ConfigPath   string        `mapstructure:"-"` // not from config file
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("LOGDUCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("sample-size", defaultSampleSize)
	v.SetDefault("batch-size", defaultBatchSize)
	v.SetDefault("table-name", defaultTableName)
	v.SetDefault("db-path", "") // in-memory
	v.SetDefault("max-rows", defaultMaxRows)
	v.SetDefault("query-timeout", defaultQueryTimeout)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "logduck", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	return cfg, cfg.validate()
}

func (c appConfig) validate() error {
	if c.SampleSize <= 0 {
		return fmt.Errorf("invalid sample-size: %d", c.SampleSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("invalid batch-size: %d", c.BatchSize)
	}
	if c.TableName == "" {
		return fmt.Errorf("table-name must not be empty")
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("invalid max-rows: %d", c.MaxRows)
	}
	return nil
}

// applyFlagOverrides lets command-line flags win over the config file and
// environment. Only flags the user actually set are applied.
func applyFlagOverrides(cfg *appConfig, fs *flag.FlagSet) {
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch f.Name {
		case "sample-size":
			cfg.SampleSize = g.Get().(int)
		case "batch-size":
			cfg.BatchSize = g.Get().(int)
		case "table-name":
			cfg.TableName = g.Get().(string)
		case "db-path":
			cfg.DBPath = g.Get().(string)
		case "max-rows":
			cfg.MaxRows = g.Get().(int)
		}
	})
}
