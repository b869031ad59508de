// Package layout reads the starting positions and point values of a game of
// invaders. The format is a list of "key: value" lines terminated by a blank
// line:
//
//	player position: (330-640)
//	row1: (245-80) (305-80)
//	alien1 points: 30
//	bulwark lives: 5
//
// Values are either single integers or coordinate tokens "x-y" or "x-y-z".
package layout

import (
	_ "embed"
	"fmt"
)

// RowCount is the number of enemy rows in a layout.
const RowCount = 5

// AlienTypes is the number of distinct enemy types.
const AlienTypes = 3

//go:embed default.txt
var defaultLayout string

// Coord is a coordinate token. Z is zero when the token has two parts.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d-%d-%d", c.X, c.Y, c.Z)
}

// Layout holds everything needed to place the entities of one game.
type Layout struct {
	Player       Coord
	Bulwarks     []Coord
	Rows         [RowCount][]Coord
	AlienPoints  [AlienTypes]int
	BulwarkLives int

	// Source is the file the layout was read from, empty for the default.
	Source string
}

// AlienType returns the enemy type (0-based) used by a row.
// Rows 1-2 are type 1, rows 3-4 type 2, row 5 type 3.
func AlienType(row int) int {
	switch {
	case row < 2:
		return 0
	case row < 4:
		return 1
	default:
		return 2
	}
}

// RowPoints returns the point value of each ship in a row.
func (l Layout) RowPoints(row int) int {
	return l.AlienPoints[AlienType(row)]
}

// EnemyCount returns the total number of enemy ships.
func (l Layout) EnemyCount() int {
	n := 0
	for _, row := range l.Rows {
		n += len(row)
	}
	return n
}

// TotalPoints returns the score awarded for destroying every enemy.
// A session is won when the player's points reach exactly this value.
func (l Layout) TotalPoints() int {
	total := 0
	for i, row := range l.Rows {
		total += len(row) * l.RowPoints(i)
	}
	return total
}

// Default returns the embedded layout.
func Default() Layout {
	l, err := ParseString(defaultLayout)
	if err != nil {
		panic(fmt.Sprintf("layout: embedded default is invalid: %v", err))
	}
	return l
}
