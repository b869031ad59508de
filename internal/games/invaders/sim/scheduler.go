package sim

import (
	"container/heap"
	"fmt"
	"time"
)

// Liveness is implemented by anything that owns timers. A timer whose owner
// is no longer alive is dropped the next time it comes due, without running.
type Liveness interface {
	Alive() bool
}

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id     TimerID
	owner  Liveness
	due    time.Duration
	period time.Duration // zero for one-shot timers
	seq    uint64        // registration order, breaks ties between equal due times
	fn     func()
	index  int // heap position
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler runs interval and timeout callbacks on a single virtual timeline.
// Nothing runs on its own: time moves only when Advance is called, so a
// whole game can be replayed deterministically.
//
// Callbacks that come due at the same instant run in the order they were
// registered. Intervals keep their original registration slot when re-armed.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	seq    uint64
	queue  timerQueue
}

// NewScheduler creates an empty scheduler at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Pending returns the number of timers still queued, including ones whose
// owner has died but that have not come due yet.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// SetInterval runs fn every period while owner stays alive.
func (s *Scheduler) SetInterval(owner Liveness, period time.Duration, fn func()) TimerID {
	if period <= 0 {
		panic(fmt.Sprintf("sim: non-positive interval %v", period))
	}
	return s.schedule(owner, period, period, fn)
}

// SetTimeout runs fn once after delay, if owner is still alive by then.
func (s *Scheduler) SetTimeout(owner Liveness, delay time.Duration, fn func()) TimerID {
	return s.schedule(owner, delay, 0, fn)
}

func (s *Scheduler) schedule(owner Liveness, delay, period time.Duration, fn func()) TimerID {
	s.nextID++
	s.seq++
	heap.Push(&s.queue, &timer{
		id:     s.nextID,
		owner:  owner,
		due:    s.now + delay,
		period: period,
		seq:    s.seq,
		fn:     fn,
	})
	return s.nextID
}

// Clear drops every pending timer.
func (s *Scheduler) Clear() {
	s.queue = s.queue[:0]
}

// Advance moves virtual time forward by dt, running every callback that
// comes due on the way. A callback that panics stops the advance and is
// reported as a *CallbackError; time is left at the failing callback.
func (s *Scheduler) Advance(dt time.Duration) error {
	target := s.now + dt

	for len(s.queue) > 0 {
		next := s.queue[0]
		if next.due > target {
			break
		}
		heap.Pop(&s.queue)

		if !next.owner.Alive() {
			continue
		}

		s.now = next.due
		if err := s.fire(next); err != nil {
			return err
		}

		if next.period > 0 && next.owner.Alive() {
			next.due += next.period
			heap.Push(&s.queue, next)
		}
	}

	s.now = target
	return nil
}

// fire runs one callback, converting a panic into a CallbackError that
// carries the owner and its position.
func (s *Scheduler) fire(t *timer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = newCallbackError(t.owner, s.now, r)
		}
	}()
	t.fn()
	return nil
}
