// Package config provides YAML-based game configuration loading and
// difficulty management for the invaders game.
package config

import (
	"errors"
	"fmt"
)

// InvadersConfig contains all tuning for the invaders game.
// Distances are in playfield units, timers in milliseconds.
type InvadersConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Bulwarks   BulwarkConfig    `yaml:"bulwarks"`
	Player     PlayerConfig     `yaml:"player"`
	Bullets    BulletConfig     `yaml:"bullets"`
	Timers     TimerConfig      `yaml:"timers"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the playfield geometry.
type FieldConfig struct {
	Width       int `yaml:"width"`
	Height      int `yaml:"height"`
	MinX        int `yaml:"min_x"`
	MaxX        int `yaml:"max_x"`
	BoundaryRow int `yaml:"boundary_row"` // Enemy fire resolves below it, player fire above
	ProbeGap    int `yaml:"probe_gap"`    // Line-of-fire probe start below the shooter
	ProbeStep   int `yaml:"probe_step"`
}

// EnemyConfig defines enemy ship size and movement.
type EnemyConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	DX     int `yaml:"dx"`
	DY     int `yaml:"dy"`
}

// BulwarkConfig defines bulwark size.
type BulwarkConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PlayerConfig defines the player cannon.
type PlayerConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Lives  int `yaml:"lives"`
	Step   int `yaml:"step"`
}

// BulletConfig defines projectile size and speeds.
type BulletConfig struct {
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	EnemySpeed   int `yaml:"enemy_speed"`
	PlayerSpeed  int `yaml:"player_speed"` // Negative: player fire travels up
	MuzzleOffset int `yaml:"muzzle_offset"`
}

// TimerConfig defines every timer interval in milliseconds.
type TimerConfig struct {
	EnemyShoot   int `yaml:"enemy_shoot"`
	EnemyMove    int `yaml:"enemy_move"`
	EnemyDescend int `yaml:"enemy_descend"`
	Projectile   int `yaml:"projectile"`
	Status       int `yaml:"status"`
	ShipRemove   int `yaml:"ship_remove"`
	Flash        int `yaml:"flash"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// Validate checks the values a session cannot run without.
func (c InvadersConfig) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field size %dx%d must be positive", c.Field.Width, c.Field.Height))
	}
	if c.Field.MinX > c.Field.MaxX {
		errs = append(errs, fmt.Errorf("field min_x %d exceeds max_x %d", c.Field.MinX, c.Field.MaxX))
	}
	if c.Field.ProbeStep <= 0 {
		errs = append(errs, errors.New("field probe_step must be positive"))
	}
	if c.Player.Lives <= 0 {
		errs = append(errs, errors.New("player lives must be positive"))
	}

	timers := []struct {
		name string
		ms   int
	}{
		{"enemy_shoot", c.Timers.EnemyShoot},
		{"enemy_move", c.Timers.EnemyMove},
		{"enemy_descend", c.Timers.EnemyDescend},
		{"projectile", c.Timers.Projectile},
		{"status", c.Timers.Status},
	}
	for _, t := range timers {
		if t.ms <= 0 {
			errs = append(errs, fmt.Errorf("timer %s must be positive, got %d", t.name, t.ms))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid invaders config: %w", err)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
