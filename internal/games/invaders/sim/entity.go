package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Kind is the variant of a playfield entity.
type Kind int

const (
	KindShip Kind = iota
	KindBulwark
	KindPlayer
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindBulwark:
		return "bulwark"
	case KindPlayer:
		return "player"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Capability flags what an entity can do.
type Capability uint8

const (
	CapAutoMove Capability = 1 << iota
	CapAutoShoot
	CapDamageCounter
	CapPlayerControlled
	CapScorer
)

// DamageState tracks the hit overlay and removal.
type DamageState int

const (
	StateNormal DamageState = iota
	StateFlashing
	StateRemoved
)

func (d DamageState) String() string {
	switch d {
	case StateNormal:
		return "normal"
	case StateFlashing:
		return "flashing"
	case StateRemoved:
		return "removed"
	default:
		return fmt.Sprintf("state(%d)", int(d))
	}
}

// Entity is a ship, bulwark or the player.
type Entity struct {
	ID   int
	Kind Kind
	Caps Capability
	Rect core.Rect

	DX, DY int

	// Points is the kill value for ships and the running score for the player.
	Points        int
	BarrierHealth int
	PlayerLives   int

	// AlienType is 0..2 for ships and selects sprite and colour.
	AlienType int

	state    DamageState
	flashGen int

	// playfield bookkeeping
	z      int
	placed bool
}

func newShip(id, alienType int, x, y int, t Tuning, points int) *Entity {
	return &Entity{
		ID:        id,
		Kind:      KindShip,
		Caps:      CapAutoMove | CapAutoShoot,
		Rect:      core.NewRect(x, y, t.ShipW, t.ShipH),
		DX:        t.ShipDX,
		DY:        t.ShipDY,
		Points:    points,
		AlienType: alienType,
	}
}

func newBulwark(id, x, y int, t Tuning, health int) *Entity {
	return &Entity{
		ID:            id,
		Kind:          KindBulwark,
		Caps:          CapDamageCounter,
		Rect:          core.NewRect(x, y, t.BulwarkW, t.BulwarkH),
		BarrierHealth: health,
	}
}

func newPlayer(id, x, y int, t Tuning) *Entity {
	return &Entity{
		ID:          id,
		Kind:        KindPlayer,
		Caps:        CapDamageCounter | CapPlayerControlled | CapScorer,
		Rect:        core.NewRect(x, y, t.PlayerW, t.PlayerH),
		PlayerLives: t.PlayerLives,
	}
}

// Has reports whether e carries capability c.
func (e *Entity) Has(c Capability) bool {
	return e.Caps&c != 0
}

func (e *Entity) State() DamageState {
	return e.state
}

// Alive is the liveness token read by the scheduler.
func (e *Entity) Alive() bool {
	return e.state != StateRemoved
}

// Dying reports a ship that was hit and is waiting for removal.
func (e *Entity) Dying() bool {
	return e.Kind == KindShip && e.state == StateFlashing
}

// Hittable reports whether a projectile can still strike e.
func (e *Entity) Hittable() bool {
	return e.Alive() && !e.Dying()
}

// Value is the points a player earns by hitting e.
func (e *Entity) Value() int {
	if e.Kind == KindShip {
		return e.Points
	}
	return 0
}

// AddPoints credits n points to a scoring entity. Others ignore it.
func (e *Entity) AddPoints(n int) {
	if e.Has(CapScorer) {
		e.Points += n
	}
}

func (e *Entity) Position() (int, int) {
	return e.Rect.X, e.Rect.Y
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d", e.Kind, e.ID)
}
