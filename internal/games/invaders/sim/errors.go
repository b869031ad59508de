package sim

import (
	"fmt"
	"time"
)

// positioned is implemented by timer owners that have a playfield location.
type positioned interface {
	Position() (x, y int)
}

// CallbackError reports a timer callback that failed. It is never expected
// in normal play; the session halts and logs it.
type CallbackError struct {
	Owner string        // Description of the timer owner
	At    time.Duration // Virtual time of the failure
	X, Y  int           // Owner position, when it has one
	Cause error
}

func newCallbackError(owner Liveness, at time.Duration, recovered any) *CallbackError {
	ce := &CallbackError{
		Owner: fmt.Sprintf("%v", owner),
		At:    at,
	}
	if p, ok := owner.(positioned); ok {
		ce.X, ce.Y = p.Position()
	}
	if err, ok := recovered.(error); ok {
		ce.Cause = err
	} else {
		ce.Cause = fmt.Errorf("%v", recovered)
	}
	return ce
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("sim: callback for %s failed at %v (x=%d, y=%d): %v", e.Owner, e.At, e.X, e.Y, e.Cause)
}

func (e *CallbackError) Unwrap() error {
	return e.Cause
}
