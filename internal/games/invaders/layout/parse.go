package layout

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Recognized keys.
const (
	KeyPlayerPosition   = "player position"
	KeyBulwarkLocations = "bulwark locations"
	KeyBulwarkLives     = "bulwark lives"
)

// RowKey returns the key for an enemy row (0-based).
func RowKey(row int) string {
	return fmt.Sprintf("row%d", row+1)
}

// PointsKey returns the key for an alien type's point value (0-based).
func PointsKey(alienType int) string {
	return fmt.Sprintf("alien%d points", alienType+1)
}

// value is one token on the right-hand side of a line.
type value struct {
	coord  Coord
	scalar bool
}

type entry struct {
	line   int
	values []value
}

// Load reads a layout from a file.
func Load(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, &StartupConfigError{Path: path, Err: err}
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		var sce *StartupConfigError
		if errors.As(err, &sce) {
			sce.Path = path
			return Layout{}, sce
		}
		return Layout{}, &StartupConfigError{Path: path, Err: err}
	}
	l.Source = path
	return l, nil
}

// ParseString parses a layout held in memory.
func ParseString(s string) (Layout, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads "key: value" lines until the first blank line or EOF.
// Keys are case-insensitive; unknown keys are ignored.
func Parse(r io.Reader) (Layout, error) {
	entries := make(map[string]entry)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}

		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return Layout{}, &StartupConfigError{Line: lineNo, Err: errors.New("missing ':' separator")}
		}
		key := strings.ToLower(strings.TrimSpace(line[:colon]))

		values, err := parseValues(line[colon+1:])
		if err != nil {
			return Layout{}, &StartupConfigError{Line: lineNo, Key: key, Err: err}
		}
		entries[key] = entry{line: lineNo, values: values}
	}
	if err := sc.Err(); err != nil {
		return Layout{}, &StartupConfigError{Err: fmt.Errorf("reading layout: %w", err)}
	}

	return build(entries)
}

// parseValues splits the value part of a line into tokens.
// Parentheses, commas and whitespace all separate tokens.
func parseValues(s string) ([]value, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', ',', '(', ')':
			return true
		}
		return false
	})

	values := make([]value, 0, len(fields))
	for _, tok := range fields {
		v, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func parseToken(tok string) (value, error) {
	parts := strings.Split(tok, "-")
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return value{}, fmt.Errorf("bad token %q", tok)
		}
		nums[i] = n
	}

	switch len(nums) {
	case 1:
		return value{coord: Coord{X: nums[0]}, scalar: true}, nil
	case 2:
		return value{coord: Coord{X: nums[0], Y: nums[1]}}, nil
	case 3:
		return value{coord: Coord{X: nums[0], Y: nums[1], Z: nums[2]}}, nil
	default:
		return value{}, fmt.Errorf("bad token %q: expected x-y or x-y-z", tok)
	}
}

// build assembles a Layout, reporting the first missing or malformed key.
func build(entries map[string]entry) (Layout, error) {
	var l Layout

	player, err := coords(entries, KeyPlayerPosition)
	if err != nil {
		return Layout{}, err
	}
	if len(player) == 0 {
		return Layout{}, keyError(entries, KeyPlayerPosition, errors.New("expected a coordinate"))
	}
	l.Player = player[0]

	if l.Bulwarks, err = coords(entries, KeyBulwarkLocations); err != nil {
		return Layout{}, err
	}

	for i := range l.Rows {
		if l.Rows[i], err = coords(entries, RowKey(i)); err != nil {
			return Layout{}, err
		}
	}

	for i := range l.AlienPoints {
		if l.AlienPoints[i], err = scalar(entries, PointsKey(i)); err != nil {
			return Layout{}, err
		}
		if l.AlienPoints[i] < 0 {
			return Layout{}, keyError(entries, PointsKey(i), errors.New("points must not be negative"))
		}
	}

	if l.BulwarkLives, err = scalar(entries, KeyBulwarkLives); err != nil {
		return Layout{}, err
	}
	if l.BulwarkLives <= 0 {
		return Layout{}, keyError(entries, KeyBulwarkLives, errors.New("must be greater than zero"))
	}

	return l, nil
}

func coords(entries map[string]entry, key string) ([]Coord, error) {
	e, ok := entries[key]
	if !ok {
		return nil, &StartupConfigError{Key: key, Err: errors.New("missing key")}
	}
	out := make([]Coord, 0, len(e.values))
	for _, v := range e.values {
		if v.scalar {
			return nil, keyError(entries, key, fmt.Errorf("expected coordinates, got %d", v.coord.X))
		}
		out = append(out, v.coord)
	}
	return out, nil
}

func scalar(entries map[string]entry, key string) (int, error) {
	e, ok := entries[key]
	if !ok {
		return 0, &StartupConfigError{Key: key, Err: errors.New("missing key")}
	}
	if len(e.values) != 1 || !e.values[0].scalar {
		return 0, keyError(entries, key, errors.New("expected a single integer"))
	}
	return e.values[0].coord.X, nil
}

func keyError(entries map[string]entry, key string, err error) error {
	return &StartupConfigError{Line: entries[key].line, Key: key, Err: err}
}
