package sim

import (
	"fmt"
	"os"
	"strings"
)

// DefaultResultFile is where FileSink writes when no path is set.
const DefaultResultFile = "Results.txt"

// Outcome is how a finished game ended.
type Outcome int

const (
	OutcomeWon Outcome = iota
	OutcomeLost
)

func (o Outcome) String() string {
	if o == OutcomeWon {
		return "win"
	}
	return "lose"
}

// Result is the end-of-game record.
type Result struct {
	Outcome Outcome
	Points  int
	Lives   int
}

// Lines returns the two sentences of the result record.
func (r Result) Lines() [2]string {
	if r.Outcome == OutcomeWon {
		return [2]string{
			"Congratulations! You vanquished the alien threat.",
			fmt.Sprintf("You earned %d points and had %d lives left.", r.Points, r.Lives),
		}
	}
	return [2]string{
		"You fell to the alien invaders. Better luck next time.",
		fmt.Sprintf("You earned %d points before you fell.", r.Points),
	}
}

func (r Result) String() string {
	lines := r.Lines()
	return strings.Join(lines[:], "\n")
}

// ResultSink receives the result of a session exactly once.
type ResultSink interface {
	WriteResult(Result) error
}

// FileSink writes the result record to a text file, replacing it.
type FileSink struct {
	Path string
}

func (f FileSink) WriteResult(r Result) error {
	path := f.Path
	if path == "" {
		path = DefaultResultFile
	}
	if err := os.WriteFile(path, []byte(r.String()), 0o644); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(Result) error

func (f SinkFunc) WriteResult(r Result) error {
	return f(r)
}
