package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Window.Width != 1024 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 1024x720", cfg.Window.Width, cfg.Window.Height)
	}
	if want := filepath.Join("models", "BrucePose1.obj"); cfg.Models.Base != want {
		t.Errorf("Models.Base = %q, want %q", cfg.Models.Base, want)
	}
	if want := filepath.Join("models", "BrucePose3.obj"); cfg.Models.PoseB != want {
		t.Errorf("Models.PoseB = %q, want %q", cfg.Models.PoseB, want)
	}
	if cfg.Animation.AdjustStep != 0.1 || cfg.Animation.PulseStep != 0.2 || cfg.Animation.Overshoot != 1.1 {
		t.Errorf("animation = %+v, want steps 0.1/0.2 and overshoot 1.1", cfg.Animation)
	}
	if got := cfg.Animation.TickPeriod(); got != 4*time.Millisecond {
		t.Errorf("TickPeriod() = %v, want 4ms", got)
	}
	if cfg.Renderer.VSync == nil || !*cfg.Renderer.VSync {
		t.Errorf("VSync = %v, want on", cfg.Renderer.VSync)
	}
	if cfg.Renderer.ClearGrey == nil || *cfg.Renderer.ClearGrey != 0.4 || cfg.Workers != 3 {
		t.Errorf("clear grey %v workers %d, want 0.4 and 3", cfg.Renderer.ClearGrey, cfg.Workers)
	}
}

func TestLoadAndFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"window": {"title": "Bruce", "width": 800},
		"models": {"dir": "/data/poses", "pose_a": "left.obj"},
		"animation": {"tick_period_ms": 16},
		"renderer": {"vsync": true, "clear_grey": 0.1},
		"workers": 2
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-height", "600", "-novsync", "-base", "/abs/base.obj", "-profile"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := LoadWithFlags(*flags)
	if err != nil {
		t.Fatalf("LoadWithFlags() error = %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"title", cfg.Window.Title, "Bruce"},
		{"width", cfg.Window.Width, 800},
		{"height", cfg.Window.Height, 600},
		{"base", cfg.Models.Base, "/abs/base.obj"},
		{"pose a", cfg.Models.PoseA, filepath.Join("/data/poses", "left.obj")},
		{"pose b", cfg.Models.PoseB, filepath.Join("/data/poses", "BrucePose3.obj")},
		{"tick period", cfg.Animation.TickPeriod(), 16 * time.Millisecond},
		{"vsync", *cfg.Renderer.VSync, false},
		{"clear grey", *cfg.Renderer.ClearGrey, 0.1},
		{"workers", cfg.Workers, 2},
		{"profiling", cfg.Profiling, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestBlackClearColourIsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"renderer": {"clear_grey": 0}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadWithFlags(Flags{ConfigFile: path})
	if err != nil {
		t.Fatalf("LoadWithFlags() error = %v", err)
	}
	if cfg.Renderer.ClearGrey == nil || *cfg.Renderer.ClearGrey != 0 {
		t.Errorf("ClearGrey = %v, want 0", cfg.Renderer.ClearGrey)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil || !strings.HasPrefix(err.Error(), "config: read") {
		t.Errorf("Load(missing) error = %v, want config: read", err)
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.HasPrefix(err.Error(), "config: parse") {
		t.Errorf("Load(bad) error = %v, want config: parse", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "negative step", mutate: func(c *Config) { c.Animation.PulseStep = -0.2 }, wantErr: "pulse_step"},
		{name: "negative period", mutate: func(c *Config) { c.Animation.TickPeriodMs = -1 }, wantErr: "tick_period_ms"},
		{name: "negative width", mutate: func(c *Config) { c.Window.Width = -5 }, wantErr: "width"},
		{name: "grey out of range", mutate: func(c *Config) { *c.Renderer.ClearGrey = 2 }, wantErr: "clear_grey"},
		{name: "negative frame limit", mutate: func(c *Config) { c.Renderer.FrameLimit = -30 }, wantErr: "frame_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}
