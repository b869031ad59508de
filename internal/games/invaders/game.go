// Package invaders adapts the invaders simulation to the platform's Game
// interface: fixed ticks in, coloured screen cells out.
package invaders

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layout"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
	"github.com/vovakirdan/tui-invaders/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "invaders"

// configPath stores the custom config path set via CLI
var configPath string

// layoutPath stores the custom layout file set via CLI
var layoutPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// resultsPath is where the result record is written; empty disables it.
var resultsPath string

var logger = log.New(io.Discard)

func init() {
	registry.Register(ID, func() registry.Game { return New() })
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetLayoutPath sets the layout file. Empty selects the built-in layout.
func SetLayoutPath(path string) {
	layoutPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetResultsPath sets the result file written when a game ends.
func SetResultsPath(path string) {
	resultsPath = path
}

// SetLogger sets the logger handed to every new session.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Game implements Space Invaders on top of a sim.Session.
type Game struct {
	runtime    core.RuntimeConfig
	cfg        config.InvadersConfig
	layout     layout.Layout
	difficulty *config.DifficultyManager
	session    *sim.Session

	tickDuration time.Duration
	tickCount    int
	paused       bool

	// preset overrides the package-level preset when hasPreset is set.
	preset    config.DifficultyPreset
	hasPreset bool

	// err is a startup configuration error; the game does not run with one.
	err error

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a new invaders game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Reset loads configuration and the layout and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.err = nil
	g.paused = false
	g.tickCount = 0

	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		g.err = err
		cfg = config.DefaultInvadersConfig()
	}

	// Apply difficulty preset if set
	preset := difficultyPreset
	if g.hasPreset {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyInvadersPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	l := layout.Default()
	if layoutPath != "" {
		loaded, err := layout.Load(layoutPath)
		if err != nil && g.err == nil {
			g.err = err
		}
		if err == nil {
			l = loaded
		}
	}
	g.layout = l

	rate := runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	g.tickDuration = time.Second / time.Duration(rate)

	g.minScreenW = 40
	g.minScreenH = 16
	g.Resize(runtime.ScreenW, runtime.ScreenH)

	var pacer sim.Pacer
	if g.difficulty.IsEnabled() {
		pacer = g.difficulty
	}
	var sink sim.ResultSink
	if resultsPath != "" {
		sink = sim.FileSink{Path: resultsPath}
	}

	g.session = sim.New(l, TuningFromConfig(cfg), sim.Options{
		Logger: logger,
		Sink:   sink,
		Pacer:  pacer,
	})
}

// SetDifficulty selects a preset for this instance only. It takes effect on
// the next Reset. Unknown names select the classic game.
func (g *Game) SetDifficulty(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		p = ""
	}
	g.preset = p
	g.hasPreset = true
}

// Resize follows a terminal resize. The session keeps running; only the
// projection onto the screen changes.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.screenTooSmall = width < g.minScreenW || height < g.minScreenH
}

// TuningFromConfig converts the YAML configuration into session tuning.
func TuningFromConfig(cfg config.InvadersConfig) sim.Tuning {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return sim.Tuning{
		Width:       cfg.Field.Width,
		Height:      cfg.Field.Height,
		MinX:        cfg.Field.MinX,
		MaxX:        cfg.Field.MaxX,
		BoundaryRow: cfg.Field.BoundaryRow,
		ProbeGap:    cfg.Field.ProbeGap,
		ProbeStep:   cfg.Field.ProbeStep,

		ShipW:       cfg.Enemies.Width,
		ShipH:       cfg.Enemies.Height,
		ShipDX:      cfg.Enemies.DX,
		ShipDY:      cfg.Enemies.DY,
		BulwarkW:    cfg.Bulwarks.Width,
		BulwarkH:    cfg.Bulwarks.Height,
		PlayerW:     cfg.Player.Width,
		PlayerH:     cfg.Player.Height,
		PlayerLives: cfg.Player.Lives,
		PlayerStep:  cfg.Player.Step,

		BulletW:           cfg.Bullets.Width,
		BulletH:           cfg.Bullets.Height,
		EnemyBulletSpeed:  cfg.Bullets.EnemySpeed,
		PlayerBulletSpeed: cfg.Bullets.PlayerSpeed,
		MuzzleOffset:      cfg.Bullets.MuzzleOffset,

		EnemyShootEvery:   ms(cfg.Timers.EnemyShoot),
		EnemyMoveEvery:    ms(cfg.Timers.EnemyMove),
		EnemyDescendEvery: ms(cfg.Timers.EnemyDescend),
		ProjectileEvery:   ms(cfg.Timers.Projectile),
		StatusEvery:       ms(cfg.Timers.Status),
		ShipRemoveDelay:   ms(cfg.Timers.ShipRemove),
		FlashDuration:     ms(cfg.Timers.Flash),
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.err != nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	over := g.session.Terminal() != sim.TerminalNone

	// Handle restart
	if in.Has(core.ActionRestart) && over {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if over {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && g.session.Begun() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionBegin) {
		g.session.Begin()
	}
	for range in.Count(core.ActionLeft) {
		g.session.MoveLeft()
	}
	for range in.Count(core.ActionRight) {
		g.session.MoveRight()
	}
	for range in.Count(core.ActionFire) {
		g.session.Fire()
	}

	g.tickCount++
	// A failed callback halts the session; Render shows it.
	_ = g.session.Advance(g.tickDuration)

	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	t := g.session.Terminal()
	return core.GameState{
		Score:    g.session.Score(),
		Lives:    g.session.Lives(),
		Won:      t == sim.TerminalWon,
		GameOver: t != sim.TerminalNone || g.err != nil,
		Paused:   g.paused,
	}
}

// Err returns the startup configuration error or the failure that halted
// the session.
func (g *Game) Err() error {
	if g.err != nil {
		return g.err
	}
	if g.session != nil {
		return g.session.Err()
	}
	return nil
}

// Result returns the end-of-game record once the game is won or lost.
func (g *Game) Result() (sim.Result, bool) {
	if g.session == nil {
		return sim.Result{}, false
	}
	return g.session.Result()
}

// Session exposes the running simulation.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Snapshot returns the simulation state for determinism checks.
func (g *Game) Snapshot() sim.Snapshot {
	return g.session.Snapshot()
}
