package sim

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layout"
)

// Terminal is the end state of a session.
type Terminal int

const (
	TerminalNone Terminal = iota
	TerminalWon
	TerminalLost
	// TerminalHalted means a timer callback failed and the session stopped.
	TerminalHalted
)

func (t Terminal) String() string {
	switch t {
	case TerminalWon:
		return "won"
	case TerminalLost:
		return "lost"
	case TerminalHalted:
		return "halted"
	default:
		return "running"
	}
}

// Pacer scales a base speed by progress. config.DifficultyManager
// satisfies it.
type Pacer interface {
	Speed(base float64, score, ticks int) float64
}

// Options are the optional collaborators of a session.
type Options struct {
	Logger *log.Logger
	Sink   ResultSink
	Pacer  Pacer
}

// Session is one game: entities, projectiles, the playfield index and the
// virtual clock that drives them.
type Session struct {
	tuning Tuning
	layout layout.Layout
	logger *log.Logger
	sink   ResultSink
	pacer  Pacer

	field *Playfield
	sched *Scheduler

	rows     [layout.RowCount][]*Entity
	bulwarks []*Entity
	player   *Entity

	projectiles []*Projectile
	lastBullet  *Projectile
	nextID      int

	total int
	// score and lives are the HUD counters, refreshed by CheckStatus.
	score int
	lives int

	begun    bool
	terminal Terminal
	result   *Result
	err      error
	sinkErr  error
}

// New builds a session from a layout. Enemy timers do not start until Begin;
// the status check runs from the start.
func New(l layout.Layout, t Tuning, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		tuning: t,
		layout: l,
		logger: logger,
		sink:   opts.Sink,
		pacer:  opts.Pacer,
		field:  NewPlayfield(t.Width, t.Height),
		sched:  NewScheduler(),
		total:  l.TotalPoints(),
	}

	for row, coords := range l.Rows {
		for _, c := range coords {
			e := newShip(s.id(), layout.AlienType(row), c.X, c.Y, t, l.RowPoints(row))
			s.rows[row] = append(s.rows[row], e)
			s.field.Add(e)
		}
	}
	for _, c := range l.Bulwarks {
		e := newBulwark(s.id(), c.X, c.Y, t, l.BulwarkLives)
		s.bulwarks = append(s.bulwarks, e)
		s.field.Add(e)
	}
	s.player = newPlayer(s.id(), l.Player.X, l.Player.Y, t)
	s.field.Add(s.player)

	s.score = s.player.Points
	s.lives = s.player.PlayerLives

	s.sched.SetInterval(s, t.StatusEvery, s.CheckStatus)
	return s
}

func (s *Session) id() int {
	s.nextID++
	return s.nextID
}

// Alive keeps the status timer running until the session ends.
func (s *Session) Alive() bool {
	return s.terminal == TerminalNone
}

func (s *Session) String() string {
	return "session"
}

// Begin starts the invasion: odd rows turn around and every enemy gets its
// shoot, move and descend timers. It only works once.
func (s *Session) Begin() bool {
	if s.begun || s.terminal != TerminalNone {
		return false
	}
	s.begun = true

	n := 0
	for row, ships := range s.rows {
		for _, e := range ships {
			if !e.Alive() {
				continue
			}
			if row == 1 || row == 3 {
				e.DX = -e.DX
			}
			s.sched.SetInterval(e, s.tuning.EnemyShootEvery, func() { s.Shoot(e) })
			s.sched.SetInterval(e, s.tuning.EnemyMoveEvery, func() { s.MoveHorizontal(e) })
			s.sched.SetInterval(e, s.tuning.EnemyDescendEvery, func() { s.MoveVertical(e) })
			n++
		}
	}
	s.logger.Info("invasion started", "enemies", n, "target", s.total)
	return true
}

// MoveLeft moves the player one step left.
func (s *Session) MoveLeft() { s.MovePlayer(-1) }

// MoveRight moves the player one step right.
func (s *Session) MoveRight() { s.MovePlayer(1) }

// MovePlayer sets the player's direction and takes one horizontal step.
// The player reflects off the side bounds like the enemies, so pressing
// into a wall bounces the ship back out by one step.
func (s *Session) MovePlayer(dir int) {
	if s.terminal != TerminalNone || !s.player.Alive() {
		return
	}
	s.player.DX = dir * s.tuning.PlayerStep
	s.MoveHorizontal(s.player)
}

// Fire creates a player bullet and launches it.
func (s *Session) Fire() bool {
	if s.CreateBullet(s.tuning.PlayerBulletSpeed) == nil {
		return false
	}
	return s.FireBullet()
}

// CreateBullet places an inactive bullet just above the player.
// An unfired bullet from an earlier call is replaced, not kept.
func (s *Session) CreateBullet(speed int) *Projectile {
	if s.terminal != TerminalNone || !s.player.Alive() {
		return nil
	}
	if prev := s.lastBullet; prev != nil && prev.state == ProjectileInactive {
		prev.state = ProjectileSpent
		s.prune()
	}
	r := s.player.Rect
	p := s.newProjectile(FactionPlayer, r.CenterX(), r.Y-(r.H-s.tuning.MuzzleOffset), speed, s.player)
	s.lastBullet = p
	return p
}

// FireBullet launches the most recently created bullet.
func (s *Session) FireBullet() bool {
	p := s.lastBullet
	if p == nil || p.state != ProjectileInactive || s.terminal != TerminalNone {
		return false
	}
	s.activate(p)
	return true
}

// Advance moves virtual time forward. It returns the callback error that
// halted the session, if one occurred during this call.
func (s *Session) Advance(dt time.Duration) error {
	if s.terminal != TerminalNone {
		return nil
	}
	if err := s.sched.Advance(dt); err != nil {
		s.halt(err)
		return err
	}
	s.prune()
	return nil
}

// CheckStatus refreshes the HUD counters and decides the outcome.
func (s *Session) CheckStatus() {
	if s.terminal != TerminalNone {
		return
	}
	s.score = s.player.Points
	s.lives = s.player.PlayerLives

	if s.score == s.total {
		s.finish(OutcomeWon)
		return
	}
	if s.lives == 0 {
		for _, b := range s.bulwarks {
			s.remove(b)
		}
		s.remove(s.player)
		s.finish(OutcomeLost)
	}
}

func (s *Session) finish(o Outcome) {
	if o == OutcomeWon {
		s.terminal = TerminalWon
	} else {
		s.terminal = TerminalLost
	}
	s.sched.Clear()
	for _, p := range s.projectiles {
		p.state = ProjectileSpent
	}
	s.prune()

	r := Result{Outcome: o, Points: s.score, Lives: s.lives}
	s.result = &r
	s.logger.Info("game over", "outcome", o, "points", r.Points, "lives", r.Lives, "tick", s.sched.Now())

	if s.sink == nil {
		return
	}
	if err := s.sink.WriteResult(r); err != nil {
		s.sinkErr = err
		s.logger.Error("result not recorded", "error", err)
		return
	}
	s.logger.Debug("result recorded", "outcome", o)
}

func (s *Session) halt(err error) {
	s.terminal = TerminalHalted
	s.err = err
	s.sched.Clear()

	var ce *CallbackError
	if errors.As(err, &ce) {
		s.logger.Error("timer callback failed",
			"entity", ce.Owner, "tick", ce.At, "x", ce.X, "y", ce.Y, "error", ce.Cause)
		return
	}
	s.logger.Error("session halted", "error", err)
}

// prune drops spent projectiles.
func (s *Session) prune() {
	live := s.projectiles[:0]
	for _, p := range s.projectiles {
		if p.state != ProjectileSpent {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(s.projectiles); i++ {
		s.projectiles[i] = nil
	}
	s.projectiles = live
}

func (s *Session) Tuning() Tuning { return s.tuning }
func (s *Session) Layout() layout.Layout { return s.layout }
func (s *Session) Playfield() *Playfield { return s.field }
func (s *Session) Scheduler() *Scheduler { return s.sched }
func (s *Session) Player() *Entity { return s.player }
func (s *Session) Bulwarks() []*Entity { return s.bulwarks }
func (s *Session) Row(i int) []*Entity { return s.rows[i] }
func (s *Session) Projectiles() []*Projectile { return s.projectiles }
func (s *Session) Now() time.Duration { return s.sched.Now() }
func (s *Session) Begun() bool { return s.begun }
func (s *Session) Terminal() Terminal { return s.terminal }
func (s *Session) Total() int { return s.total }

// Score is the HUD score as of the last status check.
func (s *Session) Score() int { return s.score }

// Lives is the HUD lives count as of the last status check.
func (s *Session) Lives() int { return s.lives }

// Result returns the final record once the session is won or lost.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}

// Err returns the callback failure that halted the session.
func (s *Session) Err() error { return s.err }

// SinkErr returns the error from writing the result record, if any.
func (s *Session) SinkErr() error { return s.sinkErr }

// Ships returns every ship still on the field, row by row.
func (s *Session) Ships() []*Entity {
	var out []*Entity
	for _, row := range s.rows {
		for _, e := range row {
			if e.Alive() {
				out = append(out, e)
			}
		}
	}
	return out
}
