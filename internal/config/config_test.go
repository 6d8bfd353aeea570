package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"CHOREO_PORT", "CHOREO_LOG_LEVEL", "CHOREO_SEED",
		"CHOREO_TICK_RATE", "CHOREO_PRESET",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.TickRate)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHOREO_PORT", "9000")
	t.Setenv("CHOREO_TICK_RATE", "120")
	t.Setenv("CHOREO_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != 9000 || cfg.TickRate != 120 || cfg.LogLevel != "debug" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("CHOREO_PORT", "not-a-port")

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Port)
	}
}

func TestLoadPreset_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	raw := `physics_style: laban
seed: 42
frames_dir: ./frames
channels:
  - id: 0
    mode: sequencer
    pattern: groove
  - id: 1
    mode: layer
    opacity: 0.6
    pattern: stutter
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("LoadPreset() error = %v", err)
	}

	if p.PhysicsStyle != "laban" {
		t.Errorf("PhysicsStyle = %q, want laban", p.PhysicsStyle)
	}
	if p.Seed != 42 {
		t.Errorf("Seed = %d, want 42", p.Seed)
	}
	if p.FramesDir != "./frames" {
		t.Errorf("FramesDir = %q", p.FramesDir)
	}
	if len(p.Channels) != 2 {
		t.Fatalf("Channels = %d, want 2", len(p.Channels))
	}
	if p.Channels[1].ID != 1 || p.Channels[1].Mode != "layer" || p.Channels[1].Opacity != 0.6 {
		t.Errorf("channel 1 = %+v", p.Channels[1])
	}
}

func TestLoadPreset_RejectsBadChannelID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	raw := "channels:\n  - id: 7\n    mode: layer\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadPreset(path); err == nil {
		t.Error("LoadPreset should reject channel id 7")
	}
}

func TestLoadPreset_MissingFile(t *testing.T) {
	if _, err := LoadPreset(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadPreset should fail on a missing file")
	}
}
