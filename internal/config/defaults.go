package config

import (
	_ "embed"
)

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

// DefaultInvadersConfig returns the default invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Field: FieldConfig{
			Width:       700,
			Height:      700,
			MinX:        10,
			MaxX:        640,
			BoundaryRow: 510,
			ProbeGap:    2,
			ProbeStep:   10,
		},
		Enemies: EnemyConfig{
			Width:  30,
			Height: 20,
			DX:     1,
			DY:     2,
		},
		Bulwarks: BulwarkConfig{
			Width:  60,
			Height: 25,
		},
		Player: PlayerConfig{
			Width:  40,
			Height: 20,
			Lives:  3,
			Step:   20,
		},
		Bullets: BulletConfig{
			Width:        2,
			Height:       5,
			EnemySpeed:   5,
			PlayerSpeed:  -5,
			MuzzleOffset: 5,
		},
		Timers: TimerConfig{
			EnemyShoot:   3000,
			EnemyMove:    30,
			EnemyDescend: 2000,
			Projectile:   30,
			Status:       1000,
			ShipRemove:   50,
			Flash:        100,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 630,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "invaders":
		return defaultInvadersYAML
	default:
		return nil
	}
}
