package sim

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Faction decides which half of the field a projectile resolves hits in.
type Faction int

const (
	FactionEnemy Faction = iota
	FactionPlayer
)

func (f Faction) String() string {
	if f == FactionPlayer {
		return "player"
	}
	return "enemy"
}

// ProjectileState is the lifecycle of a bullet.
type ProjectileState int

const (
	ProjectileInactive ProjectileState = iota
	ProjectileActive
	ProjectileSpent
)

// Projectile is a bullet travelling vertically at a fixed speed.
type Projectile struct {
	ID      int
	Faction Faction
	Rect    core.Rect
	DY      int

	state ProjectileState
	// owner is credited with points; lookup only, set for player bullets.
	owner *Entity
}

func (p *Projectile) State() ProjectileState {
	return p.state
}

// Alive keeps the advance timer running until the bullet is spent.
func (p *Projectile) Alive() bool {
	return p.state != ProjectileSpent
}

func (p *Projectile) Owner() *Entity {
	return p.owner
}

func (p *Projectile) Position() (int, int) {
	return p.Rect.X, p.Rect.Y
}

func (p *Projectile) String() string {
	return fmt.Sprintf("%s-bullet#%d", p.Faction, p.ID)
}

// inHitZone reports whether the bullet has crossed into the half of the
// field where it can strike something.
func (p *Projectile) inHitZone(boundary int) bool {
	if p.Faction == FactionEnemy {
		return p.Rect.Y >= boundary
	}
	return p.Rect.Y <= boundary
}
