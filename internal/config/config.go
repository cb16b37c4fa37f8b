// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package config loads the tunable parameters of the reordering engine (the
// rewrite scheme, unique-table sizing, the outer orchestrator's stopping
// rule and logging) from a file, environment variables or their defaults.
package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every tunable the CLI and HTTP surfaces expose.
type Config struct {
	Table    TableConfig    `mapstructure:"table"`
	Optimize OptimizeConfig `mapstructure:"optimize"`
	Log      LogConfig      `mapstructure:"log"`
}

// TableConfig sizes the node arena and unique-table buckets a diagram starts
// with, mirroring qmdd.Nodesize/Bucketsize/Maxnodesize/Maxnodeincrease.
type TableConfig struct {
	NodeSize        int `mapstructure:"node_size"`
	BucketSize      int `mapstructure:"bucket_size"`
	MaxNodeSize     int `mapstructure:"max_node_size"`
	MaxNodeIncrease int `mapstructure:"max_node_increase"`
}

// OptimizeConfig controls the outer reordering loop.
type OptimizeConfig struct {
	Scheme       string `mapstructure:"scheme"`
	MaxRounds    int    `mapstructure:"max_rounds"`
	StableRounds int    `mapstructure:"stable_rounds"`
	Tolerance    int    `mapstructure:"tolerance"`
}

// LogConfig controls the zerolog setup shared by the CLI and HTTP surfaces.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// Load reads configuration from configPath, falling back to "qmddsift.yaml"
// in the working directory or /etc/qmddsift, then defaults, then
// QMDDSIFT_-prefixed environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("qmddsift")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/qmddsift")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("QMDDSIFT")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromReader loads configuration of the given format (e.g. "yaml") from
// content, for tests that don't want to touch the filesystem.
func LoadFromReader(format string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(format)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("table.node_size", 0)
	v.SetDefault("table.bucket_size", 1024)
	v.SetDefault("table.max_node_size", 0)
	v.SetDefault("table.max_node_increase", 0)

	v.SetDefault("optimize.scheme", "lt-mixed")
	v.SetDefault("optimize.max_rounds", 100)
	v.SetDefault("optimize.stable_rounds", 10)
	v.SetDefault("optimize.tolerance", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Validate rejects configuration combinations the engine cannot act on.
func (c *Config) Validate() error {
	if c.Optimize.MaxRounds < 1 {
		return fmt.Errorf("config: optimize.max_rounds must be at least 1")
	}
	if c.Optimize.StableRounds < 1 {
		return fmt.Errorf("config: optimize.stable_rounds must be at least 1")
	}
	if c.Optimize.Tolerance < 0 {
		return fmt.Errorf("config: optimize.tolerance must not be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: unsupported log.format %q (valid: json, console)", c.Log.Format)
	}
	return nil
}
