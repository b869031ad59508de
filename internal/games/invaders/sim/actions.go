package sim

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// Reflect advances x by dx inside [lo, hi]. A step that reaches or crosses
// a bound reverses dx; any overshoot is folded back inside.
func Reflect(x, dx, lo, hi int) (int, int) {
	nx := x + dx
	switch {
	case nx < lo:
		nx = 2*lo - nx
		dx = -dx
	case nx > hi:
		nx = 2*hi - nx
		dx = -dx
	case nx == lo && dx < 0, nx == hi && dx > 0:
		dx = -dx
	}
	return core.Clamp(nx, lo, hi), dx
}

// MoveHorizontal takes one horizontal step, bouncing off the side bounds.
func (s *Session) MoveHorizontal(e *Entity) {
	if !e.Hittable() {
		return
	}
	x, dx := Reflect(e.Rect.X, e.DX, s.tuning.MinX, s.tuning.MaxX)
	e.DX = dx
	s.field.Move(e, x-e.Rect.X, 0)
}

// MoveVertical drops e by its vertical step and turns it around. A step
// that would leave the field is skipped; the turn still happens.
func (s *Session) MoveVertical(e *Entity) {
	if !e.Hittable() {
		return
	}
	dy := e.DY
	if e.Rect.Bottom()+dy > s.tuning.Height {
		dy = 0
	}
	s.field.Move(e, 0, dy)
	e.DX = -e.DX
	s.pace(e)
}

// pace rescales the horizontal speed of an enemy from the current score.
func (s *Session) pace(e *Entity) {
	if s.pacer == nil || !e.Has(CapAutoMove) || e.DX == 0 {
		return
	}
	ticks := int(s.sched.Now() / time.Millisecond)
	speed := s.pacer.Speed(float64(s.tuning.ShipDX), s.player.Points, ticks)
	mag := int(math.Round(speed))
	if mag < 1 {
		mag = 1
	}
	e.DX = core.Sign(e.DX) * mag
}

// NoObstructions reports whether the column below e is clear down to the
// boundary row.
func (s *Session) NoObstructions(e *Entity) bool {
	step := s.tuning.ProbeStep
	if step <= 0 {
		step = 1
	}
	x := e.Rect.CenterX()
	for y := e.Rect.Bottom() + s.tuning.ProbeGap; y < s.tuning.BoundaryRow; y += step {
		if occ, ok := s.field.ElementAt(x, y); ok && occ != e {
			return false
		}
	}
	return true
}

// Shoot fires an enemy bullet straight down when the line of fire is clear.
func (s *Session) Shoot(e *Entity) {
	if !e.Hittable() || !e.Has(CapAutoShoot) {
		return
	}
	if !s.NoObstructions(e) {
		return
	}
	r := e.Rect
	p := s.newProjectile(FactionEnemy, r.CenterX(), r.Bottom()-s.tuning.MuzzleOffset, s.tuning.EnemyBulletSpeed, nil)
	s.activate(p)
}

// Hit applies one hit to e according to its kind.
func (s *Session) Hit(e *Entity) {
	if !e.Hittable() {
		return
	}
	switch e.Kind {
	case KindShip:
		e.state = StateFlashing
		s.sched.SetTimeout(e, s.tuning.ShipRemoveDelay, func() { s.remove(e) })
	case KindBulwark:
		e.BarrierHealth--
		if e.BarrierHealth <= 0 {
			s.remove(e)
			return
		}
		s.flash(e)
	case KindPlayer:
		e.PlayerLives--
		if e.PlayerLives <= 0 {
			s.remove(e)
			return
		}
		s.flash(e)
	}
}

// flash shows the hit overlay for a while. A newer hit restarts it.
func (s *Session) flash(e *Entity) {
	e.state = StateFlashing
	e.flashGen++
	gen := e.flashGen
	s.sched.SetTimeout(e, s.tuning.FlashDuration, func() {
		if e.flashGen == gen && e.state == StateFlashing {
			e.state = StateNormal
		}
	})
}

func (s *Session) remove(e *Entity) {
	if e.state == StateRemoved {
		return
	}
	e.state = StateRemoved
	s.field.Remove(e)
}

func (s *Session) newProjectile(f Faction, x, y, dy int, owner *Entity) *Projectile {
	p := &Projectile{
		ID:      s.id(),
		Faction: f,
		Rect:    core.NewRect(x, y, s.tuning.BulletW, s.tuning.BulletH),
		DY:      dy,
		owner:   owner,
	}
	s.projectiles = append(s.projectiles, p)
	return p
}

func (s *Session) activate(p *Projectile) {
	p.state = ProjectileActive
	s.sched.SetInterval(p, s.tuning.ProjectileEvery, func() { s.advanceProjectile(p) })
}

// advanceProjectile moves a bullet one step and resolves what it strikes.
func (s *Session) advanceProjectile(p *Projectile) {
	if p.state != ProjectileActive {
		return
	}
	p.Rect = p.Rect.Translate(0, p.DY)

	if p.Rect.Y <= 0 || p.Rect.Y >= s.tuning.Height {
		p.state = ProjectileSpent
		return
	}
	if !p.inHitZone(s.tuning.BoundaryRow) {
		return
	}

	target, ok := s.field.ElementAt(p.Rect.X, p.Rect.Bottom())
	if !ok || !target.Hittable() {
		return
	}
	if p.Faction == FactionPlayer && p.owner != nil {
		p.owner.AddPoints(target.Value())
	}
	s.Hit(target)
	p.state = ProjectileSpent
}
