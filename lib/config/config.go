// Copyright 2026 The Fixdesk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for Fixdesk.
//
// Configuration is loaded from a single file named by the
// FIXDESK_CONFIG environment variable; [LoadFile] reads an explicit
// path. There are no fallbacks and no automatic file search: with the
// variable unset, [Default] values apply. This keeps configuration
// deterministic with no hidden overrides.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the Fixdesk client.
type Config struct {
	// API configures the backend connection.
	API APIConfig `yaml:"api"`

	// Voice configures the optional speech-to-text input source.
	Voice VoiceConfig `yaml:"voice"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the API root, e.g. "https://shop.example.com/api".
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds every request, including session
	// hydration and login. Zero selects the client default. An
	// unbounded request would strand the UI on its loading screen,
	// so zero never means "no timeout".
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration, or zero when the
// client default should apply.
func (api APIConfig) Timeout() time.Duration {
	return time.Duration(api.TimeoutSeconds) * time.Second
}

// VoiceConfig configures the optional speech-to-text input source.
type VoiceConfig struct {
	// Command is the external transcription command. Empty means
	// "discover a known transcriber on PATH"; voice input is simply
	// absent when discovery finds nothing.
	Command string `yaml:"command"`

	// Language is the spoken language hint passed to the
	// transcriber (e.g. "ar-EG", "en-US").
	Language string `yaml:"language"`
}

// Default returns the development configuration: a local backend and
// voice discovery enabled.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000/api",
		},
		Voice: VoiceConfig{
			Language: "en-US",
		},
	}
}

// Load reads configuration from the file named by the FIXDESK_CONFIG
// environment variable, or returns Default when the variable is
// unset.
func Load() (*Config, error) {
	path := os.Getenv("FIXDESK_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads configuration from an explicit path. Unset fields
// keep their Default values; unknown fields are rejected so typos
// fail loudly instead of being silently ignored.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	configuration := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(configuration); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if configuration.API.BaseURL == "" {
		return nil, fmt.Errorf("config file %s: api.base_url must not be empty", path)
	}
	if configuration.API.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("config file %s: api.timeout_seconds must not be negative", path)
	}
	return configuration, nil
}
