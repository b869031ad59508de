package sim

// Snapshot is a flat copy of session state for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     int64 // virtual milliseconds
	Begun    bool
	Terminal int
	Score    int
	Lives    int

	// Per entity: id, kind, x, y, dx, state, health.
	Entities []int
	// Per projectile: id, faction, x, y, state.
	Projectiles []int
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     s.sched.Now().Milliseconds(),
		Begun:    s.begun,
		Terminal: int(s.terminal),
		Score:    s.player.Points,
		Lives:    s.player.PlayerLives,
	}

	add := func(e *Entity) {
		health := e.BarrierHealth
		if e.Kind == KindPlayer {
			health = e.PlayerLives
		}
		snap.Entities = append(snap.Entities,
			e.ID, int(e.Kind), e.Rect.X, e.Rect.Y, e.DX, int(e.state), health)
	}
	for _, row := range s.rows {
		for _, e := range row {
			add(e)
		}
	}
	for _, b := range s.bulwarks {
		add(b)
	}
	add(s.player)

	for _, p := range s.projectiles {
		snap.Projectiles = append(snap.Projectiles,
			p.ID, int(p.Faction), p.Rect.X, p.Rect.Y, int(p.state))
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick) //#nosec G115 -- hash computation
	if snap.Begun {
		h = h*31 + 1
	}
	h = h*31 + uint64(snap.Terminal) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)    //#nosec G115 -- hash computation
	for _, v := range snap.Entities {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(len(snap.Projectiles))
	for _, v := range snap.Projectiles {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
