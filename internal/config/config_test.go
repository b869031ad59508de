package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg InvadersConfig
	if err := yaml.Unmarshal(GetDefaultYAML("invaders"), &cfg); err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if cfg != DefaultInvadersConfig() {
		t.Errorf("embedded defaults differ from DefaultInvadersConfig:\n got %+v\nwant %+v", cfg, DefaultInvadersConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	if GetDefaultYAML("snake") != nil {
		t.Error("unknown game should have no default yaml")
	}
}

func TestLoadInvadersCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invaders.yaml")
	data := "player:\n  lives: 7\ntimers:\n  enemy_shoot: 1500\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInvaders(path)
	if err != nil {
		t.Fatalf("LoadInvaders: %v", err)
	}
	if cfg.Player.Lives != 7 || cfg.Timers.EnemyShoot != 1500 {
		t.Errorf("overrides not applied: lives=%d shoot=%d", cfg.Player.Lives, cfg.Timers.EnemyShoot)
	}
	// Unset fields keep their defaults.
	if cfg.Field.MaxX != 640 || cfg.Player.Step != 20 || cfg.Timers.EnemyMove != 30 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadInvadersErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "nope.yaml"), "failed to read config"},
		{"bad yaml", write("bad.yaml", "field: [1, 2\n"), "failed to parse config"},
		{"zero timer", write("timer.yaml", "timers:\n  projectile: 0\n"), "timer projectile must be positive"},
		{"bounds", write("bounds.yaml", "field:\n  min_x: 700\n"), "exceeds max_x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadInvaders(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestApplyInvadersPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		lives   int
		shoot   int
		enabled bool
		level   float64
	}{
		{DifficultyEasy, 5, 4000, true, 0.0},
		{DifficultyNormal, 3, 3000, true, 0.3},
		{DifficultyHard, 2, 2000, true, 0.7},
		{DifficultyFixed, 3, 3000, false, 0.0},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultInvadersConfig()
			ApplyInvadersPreset(&cfg, tt.preset)
			if cfg.Player.Lives != tt.lives {
				t.Errorf("lives = %d, want %d", cfg.Player.Lives, tt.lives)
			}
			if cfg.Timers.EnemyShoot != tt.shoot {
				t.Errorf("enemy_shoot = %d, want %d", cfg.Timers.EnemyShoot, tt.shoot)
			}
			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("enabled = %v, want %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.level {
				t.Errorf("initial level = %v, want %v", cfg.Difficulty.InitialLevel, tt.level)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	for _, p := range Presets {
		got, err := ParsePreset(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %q, %v", p, got, err)
		}
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDifficultyManagerSpeed(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 2.0},
	}
	dm := NewDifficultyManager(cfg)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 1.0},
		{50, 2.0},
		{100, 3.0},
		{500, 3.0},
	}
	for _, tt := range tests {
		if got := dm.Speed(1.0, tt.score, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Speed(1, %d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	dm.SetEnabled(false)
	if got := dm.Speed(1.0, 100, 0); got != 1.0 {
		t.Errorf("disabled Speed = %v, want 1", got)
	}

	dm.SetInitialLevel(0.5)
	if got := dm.Speed(1.0, 100, 0); got != 2.0 {
		t.Errorf("disabled Speed at level 0.5 = %v, want 2", got)
	}
}

func TestDifficultyManagerTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 1000},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
	})
	if got := dm.Level(0, 500); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Level at half time = %v, want 0.5", got)
	}
	if !dm.IsEnabled() {
		t.Error("manager should be enabled")
	}
}
