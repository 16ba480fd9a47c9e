// Package runtimecfg holds the configuration a Console needs to run:
// audio output parameters and default channel mute state. Modeled on
// the teacher's internal/app.Config (JSON load/save, validated
// defaults), scoped down to what internal/runtime actually consumes.
package runtimecfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// NTSC timing constants shared by the bus and runtime packages.
const (
	CPUFrequencyHz   = 1789773.0
	FrameRateHz      = 60.098803
	CyclesPerFrame   = 29780.67
	PPUCyclesPerLine = 341
	ScanlinesPerFrame = 262
)

// Config holds runtime-level settings not owned by any single NES
// component.
type Config struct {
	Audio AudioConfig `json:"audio"`

	configPath string
}

// AudioConfig controls the output stream Console.Read produces.
type AudioConfig struct {
	Enabled    bool    `json:"enabled"`
	SampleRate int     `json:"sample_rate"`
	Volume     float32 `json:"volume"`

	// MutedChannels holds the default mute state for
	// pulse1/pulse2/triangle/noise/dmc, in that order.
	MutedChannels [5]bool `json:"muted_channels"`
}

// New returns a Config with sensible NTSC defaults.
func New() *Config {
	return &Config{
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.8,
		},
	}
}

// LoadFromFile reads a JSON config file, writing out the defaults if
// none exists yet.
func (c *Config) LoadFromFile(path string) error {
	c.configPath = path

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return c.SaveToFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	c.validate()
	return nil
}

// SaveToFile writes the config as indented JSON.
func (c *Config) SaveToFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	c.configPath = path
	return nil
}

func (c *Config) validate() {
	if c.Audio.SampleRate <= 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		c.Audio.Volume = 0.8
	}
}

// DefaultConfigPath returns the conventional on-disk location.
func DefaultConfigPath() string {
	return "./config/gones.json"
}
