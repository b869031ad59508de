package sim

import "time"

// Tuning holds the playfield geometry, sprite sizes, speeds and timer
// intervals of a session. One virtual time unit is one millisecond.
type Tuning struct {
	Width  int
	Height int

	// Horizontal bounds enemies and the player reflect off.
	MinX int
	MaxX int

	// BoundaryRow splits the field: enemy fire only checks for hits at or
	// below it, player fire only at or above it.
	BoundaryRow int

	// Line-of-fire probe: starts ProbeGap below the shooter, steps ProbeStep.
	ProbeGap  int
	ProbeStep int

	ShipW, ShipH       int
	ShipDX, ShipDY     int
	BulwarkW, BulwarkH int
	PlayerW, PlayerH   int
	PlayerLives        int
	PlayerStep         int

	BulletW, BulletH  int
	EnemyBulletSpeed  int
	PlayerBulletSpeed int
	MuzzleOffset      int

	EnemyShootEvery   time.Duration
	EnemyMoveEvery    time.Duration
	EnemyDescendEvery time.Duration
	ProjectileEvery   time.Duration
	StatusEvery       time.Duration
	ShipRemoveDelay   time.Duration
	FlashDuration     time.Duration
}

// DefaultTuning returns the classic 700x700 field.
func DefaultTuning() Tuning {
	return Tuning{
		Width:       700,
		Height:      700,
		MinX:        10,
		MaxX:        640,
		BoundaryRow: 510,
		ProbeGap:    2,
		ProbeStep:   10,

		ShipW:       30,
		ShipH:       20,
		ShipDX:      1,
		ShipDY:      2,
		BulwarkW:    60,
		BulwarkH:    25,
		PlayerW:     40,
		PlayerH:     20,
		PlayerLives: 3,
		PlayerStep:  20,

		BulletW:           2,
		BulletH:           5,
		EnemyBulletSpeed:  5,
		PlayerBulletSpeed: -5,
		MuzzleOffset:      5,

		EnemyShootEvery:   3000 * time.Millisecond,
		EnemyMoveEvery:    30 * time.Millisecond,
		EnemyDescendEvery: 2000 * time.Millisecond,
		ProjectileEvery:   30 * time.Millisecond,
		StatusEvery:       1000 * time.Millisecond,
		ShipRemoveDelay:   50 * time.Millisecond,
		FlashDuration:     100 * time.Millisecond,
	}
}
