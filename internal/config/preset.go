package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ChannelPreset pre-configures one mixer channel.
type ChannelPreset struct {
	ID      int     `yaml:"id"`
	Mode    string  `yaml:"mode"` // off, sequencer, layer
	Opacity float64 `yaml:"opacity"`
	Pattern string  `yaml:"pattern"`
}

// Preset is an optional YAML file that configures the mixer at startup.
type Preset struct {
	PhysicsStyle string          `yaml:"physics_style"` // legacy, laban
	Seed         int64           `yaml:"seed"`
	FramesDir    string          `yaml:"frames_dir"`
	Channels     []ChannelPreset `yaml:"channels"`
}

// LoadPreset reads and parses a preset YAML file.
func LoadPreset(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var p Preset
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preset %s: %w", path, err)
	}

	for _, ch := range p.Channels {
		if ch.ID < 0 || ch.ID > 3 {
			return nil, fmt.Errorf("preset channel id %d out of range 0..3", ch.ID)
		}
	}
	return &p, nil
}
