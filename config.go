package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Config holds the user settings read from ~/.loxrc.yaml. Command line flags
// are applied on top of it
type Config struct {
	Color              bool   `yaml:"color"`
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	DebugAST           bool   `yaml:"debug_ast"`
	DebugTokens        bool   `yaml:"debug_tokens"`
}

// DefaultConfig returns the settings used when no config file exists. Colors
// default to on only when the output is a terminal
func DefaultConfig() Config {
	return Config{
		Color:              !color.NoColor,
		Prompt:             "lox> ",
		ContinuationPrompt: "... ",
		HistoryFile:        "~/.lox_history",
	}
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".loxrc.yaml")
}

// LoadConfig reads the config file at "path" on top of the defaults. An empty
// path means the default location, which is allowed to not exist. A file
// given explicitly must exist
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	file, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// historyPath expands a leading "~/" in the configured history file
func (cfg Config) historyPath() string {
	if !strings.HasPrefix(cfg.HistoryFile, "~/") {
		return cfg.HistoryFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, cfg.HistoryFile[2:])
}
