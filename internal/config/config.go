package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/evhist/evhist/internal/event"
	"github.com/evhist/evhist/internal/logger"
)

// FileConfig represents the top-level TOML structure.
type FileConfig struct {
	Log     *logger.Config `toml:"log" mapstructure:"log"`
	History HistoryConfig  `toml:"history" mapstructure:"history"`
	Kinds   []KindConfig   `toml:"kinds" mapstructure:"kinds"`
	Sinks   []SinkConfig   `toml:"sinks" mapstructure:"sinks"`
	Server  ServerConfig   `toml:"server" mapstructure:"server"`
	Metrics MetricsConfig  `toml:"metrics" mapstructure:"metrics"`
}

// HistoryConfig controls the in-memory log.
type HistoryConfig struct {
	// MaxRecords bounds the history length; 0 keeps it unbounded.
	MaxRecords int `toml:"max_records" mapstructure:"max_records"`
	// Active forces recording on at startup even with no listeners.
	Active bool `toml:"active" mapstructure:"active"`
}

// KindConfig declares one event kind. Parents must be declared before
// their children.
type KindConfig struct {
	Name   string `toml:"name" mapstructure:"name"`
	Parent string `toml:"parent" mapstructure:"parent"`
}

// SinkConfig declares one history export destination by DSN.
type SinkConfig struct {
	DSN string `toml:"dsn" mapstructure:"dsn"`
}

type ServerConfig struct {
	Listen   string `toml:"listen" mapstructure:"listen"`
	BasePath string `toml:"base_path" mapstructure:"base_path"`
}

type MetricsConfig struct {
	Listen string `toml:"listen" mapstructure:"listen"`
}

// Load parses a TOML config file and validates it.
func Load(path string) (*FileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var fc FileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return nil, err
	}
	if err := fc.validate(); err != nil {
		return nil, err
	}
	if fc.Server.Listen == "" {
		fc.Server.Listen = ":8080"
	}
	if fc.Server.BasePath == "" {
		fc.Server.BasePath = "/api"
	}
	return &fc, nil
}

func (fc *FileConfig) validate() error {
	if fc.History.MaxRecords < 0 {
		return fmt.Errorf("history.max_records must be >= 0, got %d", fc.History.MaxRecords)
	}
	seen := make(map[string]bool, len(fc.Kinds))
	for _, k := range fc.Kinds {
		if k.Name == "" {
			return fmt.Errorf("kind with empty name")
		}
		if seen[k.Name] {
			return fmt.Errorf("kind %s declared twice", k.Name)
		}
		if k.Parent != "" && !seen[k.Parent] {
			return fmt.Errorf("kind %s references undeclared parent %s", k.Name, k.Parent)
		}
		seen[k.Name] = true
	}
	for i, s := range fc.Sinks {
		if s.DSN == "" {
			return fmt.Errorf("sinks[%d] has empty dsn", i)
		}
	}
	return nil
}

// BuildRegistry materializes the declared kinds into an event registry.
func (fc *FileConfig) BuildRegistry() (*event.Registry, error) {
	reg := event.NewRegistry()
	for _, k := range fc.Kinds {
		var parent *event.Kind
		if k.Parent != "" {
			p, ok := reg.Lookup(k.Parent)
			if !ok {
				return nil, fmt.Errorf("kind %s references undeclared parent %s", k.Name, k.Parent)
			}
			parent = p
		}
		if _, err := reg.Define(k.Name, parent); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
