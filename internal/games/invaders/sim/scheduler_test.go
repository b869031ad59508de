package sim

import (
	"errors"
	"testing"
	"time"
)

type token struct{ alive bool }

func (t *token) Alive() bool { return t.alive }

func TestSchedulerFiresInRegistrationOrder(t *testing.T) {
	s := NewScheduler()
	a, b := &token{true}, &token{true}
	var got []string

	s.SetInterval(a, 30*time.Millisecond, func() { got = append(got, "a") })
	s.SetInterval(b, 30*time.Millisecond, func() { got = append(got, "b") })
	s.SetTimeout(a, 30*time.Millisecond, func() { got = append(got, "t") })

	if err := s.Advance(60 * time.Millisecond); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	want := []string{"a", "b", "t", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fired %v, want %v", got, want)
			break
		}
	}
	if s.Now() != 60*time.Millisecond {
		t.Errorf("Now() = %v, want 60ms", s.Now())
	}
}

func TestSchedulerEarlierDueFirst(t *testing.T) {
	s := NewScheduler()
	owner := &token{true}
	var got []int

	s.SetTimeout(owner, 50*time.Millisecond, func() { got = append(got, 50) })
	s.SetTimeout(owner, 10*time.Millisecond, func() { got = append(got, 10) })

	if err := s.Advance(100 * time.Millisecond); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if len(got) != 2 || got[0] != 10 || got[1] != 50 {
		t.Errorf("fired %v, want [10 50]", got)
	}
}

func TestSchedulerDropsDeadOwners(t *testing.T) {
	s := NewScheduler()
	owner := &token{true}
	fired := 0

	s.SetInterval(owner, 10*time.Millisecond, func() {
		fired++
		owner.alive = false
	})
	s.SetTimeout(owner, 5*time.Millisecond, func() {})

	if err := s.Advance(100 * time.Millisecond); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if fired != 1 {
		t.Errorf("interval fired %d times, want 1", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestSchedulerTimerSetDuringCallback(t *testing.T) {
	s := NewScheduler()
	owner := &token{true}
	var at []time.Duration

	s.SetTimeout(owner, 10*time.Millisecond, func() {
		s.SetTimeout(owner, 10*time.Millisecond, func() { at = append(at, s.Now()) })
	})

	if err := s.Advance(15 * time.Millisecond); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if len(at) != 0 {
		t.Fatalf("nested timeout fired early at %v", at)
	}
	if err := s.Advance(10 * time.Millisecond); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if len(at) != 1 || at[0] != 20*time.Millisecond {
		t.Errorf("nested timeout fired at %v, want [20ms]", at)
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	owner := &token{true}
	fired := false
	s.SetInterval(owner, time.Millisecond, func() { fired = true })

	s.Clear()
	if err := s.Advance(time.Second); err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if fired {
		t.Error("cleared timer fired")
	}
}

func TestSchedulerRecoversPanics(t *testing.T) {
	s := NewScheduler()
	e := newShip(7, 0, 120, 80, DefaultTuning(), 30)
	after := false

	s.SetTimeout(e, 40*time.Millisecond, func() { panic("boom") })
	s.SetTimeout(e, 50*time.Millisecond, func() { after = true })

	err := s.Advance(100 * time.Millisecond)
	if err == nil {
		t.Fatal("expected error from panicking callback")
	}

	var ce *CallbackError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a *CallbackError", err)
	}
	if ce.Owner != "ship#7" {
		t.Errorf("Owner = %q, want ship#7", ce.Owner)
	}
	if ce.At != 40*time.Millisecond {
		t.Errorf("At = %v, want 40ms", ce.At)
	}
	if ce.X != 120 || ce.Y != 80 {
		t.Errorf("position = (%d, %d), want (120, 80)", ce.X, ce.Y)
	}
	if ce.Cause == nil || ce.Cause.Error() != "boom" {
		t.Errorf("Cause = %v, want boom", ce.Cause)
	}
	if after {
		t.Error("callbacks after the failure should not run")
	}
}

func TestSchedulerRecoversErrorPanics(t *testing.T) {
	s := NewScheduler()
	sentinel := errors.New("bad state")
	s.SetTimeout(&token{true}, time.Millisecond, func() { panic(sentinel) })

	err := s.Advance(time.Millisecond)
	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(%v, sentinel) = false", err)
	}
}
