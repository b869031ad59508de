package sim

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layout"
)

const tick = 30 * time.Millisecond

func testLayout(player layout.Coord, bulwarks []layout.Coord, rows ...[]layout.Coord) layout.Layout {
	l := layout.Layout{
		Player:       player,
		Bulwarks:     bulwarks,
		AlienPoints:  [layout.AlienTypes]int{30, 20, 10},
		BulwarkLives: 5,
	}
	copy(l.Rows[:], rows)
	return l
}

func advance(t *testing.T, s *Session, d time.Duration) {
	t.Helper()
	if err := s.Advance(d); err != nil {
		t.Fatalf("Advance(%v): %v", d, err)
	}
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name   string
		x, dx  int
		wantX  int
		wantDX int
	}{
		{"inside", 100, 1, 101, 1},
		{"reach right", 639, 1, 640, -1},
		{"reach left", 11, -1, 10, 1},
		{"cross right", 635, 20, 625, -20},
		{"cross left", 15, -20, 25, 20},
		{"leave right bound", 640, -1, 639, -1},
		{"leave left bound", 10, 1, 11, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, dx := Reflect(tt.x, tt.dx, 10, 640)
			if x != tt.wantX || dx != tt.wantDX {
				t.Errorf("Reflect(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.dx, x, dx, tt.wantX, tt.wantDX)
			}
		})
	}
}

func TestReflectStaysInBounds(t *testing.T) {
	for _, start := range []int{10, 11, 333, 639, 640} {
		for dx := -25; dx <= 25; dx++ {
			x, d := start, dx
			for i := 0; i < 2000; i++ {
				x, d = Reflect(x, d, 10, 640)
				if x < 10 || x > 640 {
					t.Fatalf("start=%d dx=%d: x=%d left bounds after %d steps", start, dx, x, i)
				}
			}
		}
	}
}

func TestEnemiesStayInBounds(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	s.Begin()

	for i := 0; i < 700; i++ {
		advance(t, s, tick)
		for _, e := range s.Ships() {
			if e.Rect.X < 10 || e.Rect.X > 640 {
				t.Fatalf("%v at x=%d after %v", e, e.Rect.X, s.Now())
			}
		}
	}
}

func TestBeginIsOneShot(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	first := s.Row(0)[0]
	x := first.Rect.X

	advance(t, s, 300*time.Millisecond)
	if first.Rect.X != x {
		t.Fatalf("ship moved before begin: x=%d", first.Rect.X)
	}

	if !s.Begin() {
		t.Fatal("first Begin() should start the invasion")
	}
	for row, want := range []int{1, -1, 1, -1, 1} {
		if got := s.Row(row)[0].DX; got != want {
			t.Errorf("row %d dx = %d, want %d", row, got, want)
		}
	}
	if s.Begin() {
		t.Error("second Begin() should be ignored")
	}
	if got := s.Row(1)[0].DX; got != -1 {
		t.Errorf("row 1 dx = %d after second Begin, want -1", got)
	}

	advance(t, s, 300*time.Millisecond)
	if first.Rect.X != x+10 {
		t.Errorf("after 300ms x = %d, want %d", first.Rect.X, x+10)
	}
}

func TestMoveVertical(t *testing.T) {
	tun := DefaultTuning()
	s := New(testLayout(layout.Coord{X: 600, Y: 640}, nil, []layout.Coord{{X: 100, Y: 100}}), tun, Options{})
	e := s.Row(0)[0]

	s.MoveVertical(e)
	if e.Rect.Y != 102 || e.DX != -1 {
		t.Errorf("after descent y=%d dx=%d, want y=102 dx=-1", e.Rect.Y, e.DX)
	}
	if got, ok := s.Playfield().ElementAt(101, 121); !ok || got != e {
		t.Error("playfield index not updated by descent")
	}
}

func TestMoveVerticalStopsAtFloor(t *testing.T) {
	s := New(testLayout(layout.Coord{X: 600, Y: 640}, nil, []layout.Coord{{X: 100, Y: 679}}), DefaultTuning(), Options{})
	e := s.Row(0)[0]

	s.MoveVertical(e)
	if e.Rect.Y != 679 {
		t.Errorf("y = %d, want 679", e.Rect.Y)
	}
	if e.DX != -1 {
		t.Errorf("dx = %d, want -1", e.DX)
	}
}

type fixedPacer float64

func (p fixedPacer) Speed(base float64, score, ticks int) float64 { return float64(p) }

func TestPacerScalesEnemySpeed(t *testing.T) {
	l := testLayout(layout.Coord{X: 600, Y: 640}, nil, []layout.Coord{{X: 100, Y: 100}})
	s := New(l, DefaultTuning(), Options{Pacer: fixedPacer(3.2)})
	e := s.Row(0)[0]

	s.MoveVertical(e)
	if e.DX != -3 {
		t.Errorf("dx = %d, want -3", e.DX)
	}

	s = New(l, DefaultTuning(), Options{Pacer: fixedPacer(0.1)})
	e = s.Row(0)[0]
	s.MoveVertical(e)
	if e.DX != -1 {
		t.Errorf("dx = %d, want speed floor of 1", e.DX)
	}
}

func TestNoObstructions(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})

	// row1 ship at x=305 sits above the row3 ship at x=320.
	blocked := s.Row(0)[1]
	s.Shoot(blocked)
	if n := len(s.Projectiles()); n != 0 {
		t.Errorf("obstructed ship fired %d bullets", n)
	}

	front := s.Row(4)[6]
	if !s.NoObstructions(front) {
		t.Fatal("front row ship should have a clear line of fire")
	}
	s.Shoot(front)
	ps := s.Projectiles()
	if len(ps) != 1 {
		t.Fatalf("front row ship fired %d bullets, want 1", len(ps))
	}
	p := ps[0]
	if p.Faction != FactionEnemy || p.State() != ProjectileActive || p.DY != 5 {
		t.Errorf("bullet = %+v", p)
	}
	if p.Rect.X != front.Rect.CenterX() || p.Rect.Y != front.Rect.Bottom()-5 {
		t.Errorf("bullet at (%d, %d), want (%d, %d)", p.Rect.X, p.Rect.Y, front.Rect.CenterX(), front.Rect.Bottom()-5)
	}
}

func TestEnemyBulletPassesEmptyBoundary(t *testing.T) {
	l := testLayout(layout.Coord{X: 600, Y: 640}, nil, []layout.Coord{{X: 300, Y: 100}})
	s := New(l, DefaultTuning(), Options{})
	s.Shoot(s.Row(0)[0])

	advance(t, s, 100*tick)
	ps := s.Projectiles()
	if len(ps) != 1 {
		t.Fatalf("bullet gone early, %d left", len(ps))
	}
	if y := ps[0].Rect.Y; y != 615 {
		t.Errorf("bullet y = %d, want 615", y)
	}

	advance(t, s, 20*tick)
	if n := len(s.Projectiles()); n != 0 {
		t.Errorf("%d bullets left after leaving the field", n)
	}
	if s.Player().PlayerLives != 3 {
		t.Errorf("player lives = %d, want 3", s.Player().PlayerLives)
	}
}

func TestEnemyBulletHitsPlayer(t *testing.T) {
	l := testLayout(layout.Coord{X: 300, Y: 640}, nil, []layout.Coord{{X: 300, Y: 100}})
	s := New(l, DefaultTuning(), Options{})
	s.Shoot(s.Row(0)[0])

	advance(t, s, 103*tick)
	if s.Player().PlayerLives != 3 {
		t.Fatalf("player hit early")
	}
	advance(t, s, tick)

	p := s.Player()
	if p.PlayerLives != 2 {
		t.Errorf("lives = %d, want 2", p.PlayerLives)
	}
	if p.State() != StateFlashing {
		t.Errorf("state = %v, want flashing", p.State())
	}
	if n := len(s.Projectiles()); n != 0 {
		t.Errorf("%d bullets left after the hit", n)
	}

	advance(t, s, 100*time.Millisecond)
	if p.State() != StateNormal {
		t.Errorf("state = %v after flash, want normal", p.State())
	}

	advance(t, s, time.Second)
	if s.Lives() != 2 {
		t.Errorf("HUD lives = %d, want 2", s.Lives())
	}
}

func TestBulletStopsAtBulwark(t *testing.T) {
	l := testLayout(layout.Coord{X: 300, Y: 640}, []layout.Coord{{X: 290, Y: 520}}, []layout.Coord{{X: 300, Y: 100}})
	s := New(l, DefaultTuning(), Options{})
	s.Shoot(s.Row(0)[0])

	advance(t, s, 3*time.Second)

	if got := s.Bulwarks()[0].BarrierHealth; got != 4 {
		t.Errorf("bulwark health = %d, want 4", got)
	}
	if s.Player().PlayerLives != 3 {
		t.Errorf("player lives = %d, want 3", s.Player().PlayerLives)
	}
}

func TestBulwarkRemovedAfterLivesHits(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	b := s.Bulwarks()[0]
	lives := s.Layout().BulwarkLives

	for i := 1; i < lives; i++ {
		s.Hit(b)
		if !b.Alive() {
			t.Fatalf("bulwark removed after %d hits", i)
		}
		if b.BarrierHealth != lives-i {
			t.Errorf("health = %d after %d hits, want %d", b.BarrierHealth, i, lives-i)
		}
	}

	s.Hit(b)
	if b.Alive() {
		t.Fatalf("bulwark alive after %d hits", lives)
	}
	if got, ok := s.Playfield().ElementAt(b.Rect.X+5, b.Rect.Y+5); ok {
		t.Errorf("removed bulwark still indexed: %v", got)
	}
}

func TestBulwarkFlashRestartsOnNewHit(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	b := s.Bulwarks()[1]

	s.Hit(b)
	advance(t, s, 60*time.Millisecond)
	s.Hit(b)
	advance(t, s, 60*time.Millisecond)
	if b.State() != StateFlashing {
		t.Errorf("state = %v, want flashing from the second hit", b.State())
	}
	advance(t, s, 50*time.Millisecond)
	if b.State() != StateNormal {
		t.Errorf("state = %v, want normal", b.State())
	}
}

func TestDyingShipIsNotHitTwice(t *testing.T) {
	l := testLayout(layout.Coord{X: 295, Y: 640}, nil, []layout.Coord{{X: 300, Y: 400}})
	s := New(l, DefaultTuning(), Options{})
	ship := s.Row(0)[0]

	// Two bullets travelling together reach the ship in the same tick.
	if !s.Fire() || !s.Fire() {
		t.Fatal("Fire() failed")
	}
	advance(t, s, 42*tick)

	if got := s.Player().Points; got != 30 {
		t.Errorf("points = %d, want 30", got)
	}
	if ship.State() != StateFlashing {
		t.Errorf("ship state = %v, want flashing", ship.State())
	}
	if n := len(s.Projectiles()); n != 1 {
		t.Errorf("%d bullets in flight, want the second one still travelling", n)
	}

	s.Hit(ship)
	advance(t, s, 50*time.Millisecond)
	if ship.Alive() {
		t.Error("ship should be removed 50ms after the hit")
	}
	if got := s.Player().Points; got != 30 {
		t.Errorf("points = %d after removal, want 30", got)
	}
}

func TestDyingShipStillBlocksLineOfFire(t *testing.T) {
	l := testLayout(layout.Coord{X: 600, Y: 640}, nil,
		[]layout.Coord{{X: 300, Y: 100}, {X: 300, Y: 300}})
	s := New(l, DefaultTuning(), Options{})
	upper, lower := s.Row(0)[0], s.Row(0)[1]

	if s.NoObstructions(upper) {
		t.Fatal("upper ship should be blocked by the ship below")
	}

	s.Hit(lower)
	if !lower.Dying() {
		t.Fatalf("lower ship state = %v, want dying", lower.State())
	}
	if s.NoObstructions(upper) {
		t.Error("a dying ship should still block until it is removed")
	}
	s.Shoot(upper)
	if n := len(s.Projectiles()); n != 0 {
		t.Errorf("blocked ship fired %d bullets", n)
	}

	advance(t, s, s.Tuning().ShipRemoveDelay)
	if lower.Alive() {
		t.Fatal("lower ship should be removed after the remove delay")
	}
	if !s.NoObstructions(upper) {
		t.Error("column should be clear once the dying ship is removed")
	}
}

func TestPlayerControls(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	p := s.Player()

	s.MoveLeft()
	if p.Rect.X != 310 {
		t.Errorf("x = %d after MoveLeft, want 310", p.Rect.X)
	}
	s.MoveRight()
	s.MoveRight()
	if p.Rect.X != 350 {
		t.Errorf("x = %d after two MoveRight, want 350", p.Rect.X)
	}
	for i := 0; i < 40; i++ {
		s.MoveRight()
	}
	if p.Rect.X < 10 || p.Rect.X > 640 {
		t.Errorf("player left the bounds: x=%d", p.Rect.X)
	}

	b := s.CreateBullet(-5)
	if b == nil || b.State() != ProjectileInactive {
		t.Fatalf("CreateBullet = %+v", b)
	}
	if b.Owner() != p {
		t.Error("player bullet should reference its owner")
	}
	if b.Rect.Y != p.Rect.Y-15 || b.Rect.X != p.Rect.CenterX() {
		t.Errorf("bullet at (%d, %d)", b.Rect.X, b.Rect.Y)
	}
	if !s.FireBullet() || b.State() != ProjectileActive {
		t.Error("FireBullet should activate the created bullet")
	}
	if s.FireBullet() {
		t.Error("FireBullet should not relaunch an active bullet")
	}
}

func TestPlayerBouncesOffWall(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	p := s.Player()
	tu := s.Tuning()

	presses := 0
	for p.Rect.X != tu.MinX {
		s.MoveLeft()
		presses++
		if presses > 100 {
			t.Fatalf("player never reached the left wall, x=%d", p.Rect.X)
		}
	}

	// Pressing into the wall reflects the step back inside.
	want := []int{30, 10, 30, 10}
	for i, w := range want {
		s.MoveLeft()
		if p.Rect.X != w {
			t.Errorf("press %d into the wall: x = %d, want %d", i+1, p.Rect.X, w)
		}
	}

	for i := 0; i < 100; i++ {
		s.MoveRight()
		if p.Rect.X < tu.MinX || p.Rect.X > tu.MaxX {
			t.Fatalf("player left the bounds: x=%d", p.Rect.X)
		}
	}
}

func TestCreateBulletReplacesUnfired(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})

	var created []*Projectile
	for i := 0; i < 5; i++ {
		b := s.CreateBullet(-5)
		if b == nil {
			t.Fatalf("CreateBullet #%d returned nil", i+1)
		}
		created = append(created, b)
	}

	if n := len(s.Projectiles()); n != 1 {
		t.Fatalf("%d projectiles after repeated CreateBullet, want 1", n)
	}
	last := created[len(created)-1]
	if s.Projectiles()[0] != last {
		t.Error("the newest bullet should be the one kept")
	}
	for i, b := range created[:len(created)-1] {
		if b.State() != ProjectileSpent {
			t.Errorf("replaced bullet #%d state = %v, want spent", i+1, b.State())
		}
	}

	if !s.FireBullet() || last.State() != ProjectileActive {
		t.Fatal("FireBullet should launch the newest bullet")
	}

	// A fired bullet is not replaced by the next one.
	next := s.CreateBullet(-5)
	if last.State() != ProjectileActive {
		t.Errorf("fired bullet state = %v after CreateBullet, want active", last.State())
	}
	if n := len(s.Projectiles()); n != 2 {
		t.Errorf("%d projectiles, want the fired bullet plus %v", n, next)
	}
}

func TestWinRequiresExactTotal(t *testing.T) {
	l := testLayout(layout.Coord{X: 330, Y: 640}, nil,
		[]layout.Coord{{X: 100, Y: 80}}, nil, nil, nil, []layout.Coord{{X: 200, Y: 240}})
	var got []Result
	s := New(l, DefaultTuning(), Options{Sink: SinkFunc(func(r Result) error {
		got = append(got, r)
		return nil
	})})
	if s.Total() != 40 {
		t.Fatalf("Total() = %d, want 40", s.Total())
	}

	s.Player().AddPoints(30)
	s.CheckStatus()
	if s.Terminal() != TerminalNone {
		t.Fatalf("terminal = %v with partial score", s.Terminal())
	}

	s.Player().AddPoints(10)
	advance(t, s, time.Second)
	if s.Terminal() != TerminalWon {
		t.Fatalf("terminal = %v, want won", s.Terminal())
	}
	if len(got) != 1 || got[0] != (Result{Outcome: OutcomeWon, Points: 40, Lives: 3}) {
		t.Errorf("recorded %+v", got)
	}
}

func TestPlayerBulletWinsGame(t *testing.T) {
	l := testLayout(layout.Coord{X: 295, Y: 640}, nil, []layout.Coord{{X: 300, Y: 400}})
	s := New(l, DefaultTuning(), Options{})
	s.Fire()

	advance(t, s, 2*time.Second)

	r, ok := s.Result()
	if !ok {
		t.Fatalf("no result, terminal = %v", s.Terminal())
	}
	if r.Outcome != OutcomeWon || r.Points != 30 || r.Lives != 3 {
		t.Errorf("result = %+v", r)
	}
	if s.Score() != 30 {
		t.Errorf("HUD score = %d, want 30", s.Score())
	}
}

func TestLoseClearsField(t *testing.T) {
	calls := 0
	s := New(layout.Default(), DefaultTuning(), Options{Sink: SinkFunc(func(Result) error {
		calls++
		return nil
	})})
	s.Begin()

	for i := 0; i < 3; i++ {
		s.Hit(s.Player())
	}
	if s.Player().Alive() {
		t.Fatal("player alive with no lives")
	}

	advance(t, s, time.Second)
	if s.Terminal() != TerminalLost {
		t.Fatalf("terminal = %v, want lost", s.Terminal())
	}
	for _, b := range s.Bulwarks() {
		if b.Alive() {
			t.Errorf("%v survived the loss", b)
		}
	}
	r, _ := s.Result()
	if r.Outcome != OutcomeLost || r.Lives != 0 {
		t.Errorf("result = %+v", r)
	}

	snap := s.Snapshot()
	now := s.Now()
	advance(t, s, 10*time.Second)
	s.MoveLeft()
	s.Fire()
	if s.Now() != now {
		t.Errorf("clock moved after the game ended: %v", s.Now())
	}
	after := s.Snapshot()
	if snap.Hash() != after.Hash() {
		t.Error("state changed after the game ended")
	}
	if calls != 1 {
		t.Errorf("result recorded %d times, want 1", calls)
	}
	if s.Begin() {
		t.Error("Begin() after the game ended")
	}
}

func TestSinkErrorIsKept(t *testing.T) {
	l := testLayout(layout.Coord{X: 330, Y: 640}, nil, []layout.Coord{{X: 100, Y: 80}})
	failure := errors.New("disk full")
	s := New(l, DefaultTuning(), Options{Sink: SinkFunc(func(Result) error { return failure })})

	s.Player().AddPoints(30)
	s.CheckStatus()

	if s.Terminal() != TerminalWon {
		t.Fatalf("terminal = %v, want won", s.Terminal())
	}
	if !errors.Is(s.SinkErr(), failure) {
		t.Errorf("SinkErr() = %v", s.SinkErr())
	}
}

func TestCallbackPanicHaltsSession(t *testing.T) {
	s := New(layout.Default(), DefaultTuning(), Options{})
	s.Scheduler().SetTimeout(s.Player(), 10*time.Millisecond, func() { panic("corrupt") })

	err := s.Advance(20 * time.Millisecond)
	var ce *CallbackError
	if !errors.As(err, &ce) {
		t.Fatalf("Advance error = %v, want *CallbackError", err)
	}
	if ce.X != 330 || ce.Y != 640 {
		t.Errorf("position = (%d, %d), want (330, 640)", ce.X, ce.Y)
	}
	if s.Terminal() != TerminalHalted {
		t.Errorf("terminal = %v, want halted", s.Terminal())
	}
	if s.Err() != err {
		t.Errorf("Err() = %v", s.Err())
	}
	if _, ok := s.Result(); ok {
		t.Error("halted session should have no result")
	}
	if err := s.Advance(time.Second); err != nil {
		t.Errorf("Advance after halt = %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		s := New(layout.Default(), DefaultTuning(), Options{})
		for i := 0; i < 1500; i++ {
			switch {
			case i == 5:
				s.Begin()
			case i%40 < 10:
				s.MoveLeft()
			case i%40 < 20:
				s.MoveRight()
			case i%7 == 0:
				s.Fire()
			}
			if err := s.Advance(16 * time.Millisecond); err != nil {
				t.Fatalf("Advance: %v", err)
			}
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	if a.Hash() != b.Hash() {
		t.Errorf("hashes differ: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Lives != b.Lives {
		t.Errorf("score/lives differ: %d/%d vs %d/%d", a.Score, a.Lives, b.Score, b.Lives)
	}
}

func TestResultLines(t *testing.T) {
	tests := []struct {
		name string
		r    Result
		want string
	}{
		{
			name: "won",
			r:    Result{Outcome: OutcomeWon, Points: 770, Lives: 2},
			want: "Congratulations! You vanquished the alien threat.\nYou earned 770 points and had 2 lives left.",
		},
		{
			name: "lost",
			r:    Result{Outcome: OutcomeLost, Points: 120},
			want: "You fell to the alien invaders. Better luck next time.\nYou earned 120 points before you fell.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultResultFile)
	r := Result{Outcome: OutcomeWon, Points: 630, Lives: 1}

	if err := (FileSink{Path: path}).WriteResult(r); err != nil {
		t.Fatalf("WriteResult: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != r.String() {
		t.Errorf("file = %q, want %q", data, r.String())
	}

	bad := FileSink{Path: filepath.Join(t.TempDir(), "missing", "Results.txt")}
	if err := bad.WriteResult(r); err == nil {
		t.Error("expected error writing into a missing directory")
	}
}
