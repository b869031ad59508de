package layout

import "fmt"

// StartupConfigError reports a layout that could not be read or understood.
// The game must not start when one is returned.
type StartupConfigError struct {
	Path string // File path, empty for in-memory input
	Line int    // 1-based line number, 0 when not tied to a line
	Key  string // Offending key, if any
	Err  error
}

func (e *StartupConfigError) Error() string {
	where := e.Path
	if where == "" {
		where = "layout"
	}
	if e.Line > 0 {
		where = fmt.Sprintf("%s:%d", where, e.Line)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s: %q: %v", where, e.Key, e.Err)
	}
	return fmt.Sprintf("%s: %v", where, e.Err)
}

func (e *StartupConfigError) Unwrap() error {
	return e.Err
}
