package invaders

import (
	"fmt"

	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
)

// Text shown on the playfield.
const (
	BeginPrompt  = "CLICK ANYWHERE TO BEGIN"
	ControlsHelp = "Use A and D to move, and W to shoot."
	WinBanner    = "CONGRATULATIONS!"
	LoseBanner   = "BETTER LUCK NEXT TIME."
)

// Sprites by alien type; the flash sprite replaces them while hit.
var shipSprites = [...]string{"/MM\\", "{@@}", "<oo>"}

var shipColors = [...]core.Color{core.ColorMagenta, core.ColorCyan, core.ColorYellow}

const (
	flashGlyph      = '*'
	bulwarkGlyph    = '█'
	bulwarkHitGlyph = '▒'
	playerSprite    = "/^^\\"
	enemyShot       = '!'
	playerShot      = '|'
)

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.err != nil {
		g.renderError(dst, "CONFIGURATION ERROR", g.err)
		return
	}

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", g.minScreenW, g.minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg, core.ColorDefault)
		dst.DrawTextCentered(dst.Height()/2+1, hint, core.ColorGray)
		return
	}

	g.renderHUD(dst)
	g.renderEntities(dst)
	g.renderProjectiles(dst)
	g.renderOverlay(dst)
}

// renderHUD draws the score and lives counters.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("SCORE: %5d", g.session.Score()), core.ColorBrightWhite)
	lives := fmt.Sprintf("LIVES: %2d", g.session.Lives())
	dst.DrawTextColored(dst.Width()-len(lives)-1, 0, lives, core.ColorBrightWhite)
}

// cellRect maps a playfield rectangle to screen cells below the HUD row.
// Every visible sprite covers at least one cell.
func (g *Game) cellRect(dst *core.Screen, r core.Rect) core.Rect {
	t := g.session.Tuning()
	fieldH := dst.Height() - 1

	x0 := core.Scale(r.X, t.Width, dst.Width())
	x1 := core.Scale(r.Right(), t.Width, dst.Width())
	y0 := 1 + core.Scale(r.Y, t.Height, fieldH)
	y1 := 1 + core.Scale(r.Bottom(), t.Height, fieldH)
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

func (g *Game) renderEntities(dst *core.Screen) {
	for _, e := range g.session.Ships() {
		c := g.cellRect(dst, e.Rect)
		if e.State() == sim.StateFlashing {
			dst.DrawRect(c, flashGlyph, core.ColorBrightRed)
			continue
		}
		drawSprite(dst, c, shipSprites[e.AlienType%len(shipSprites)], shipColors[e.AlienType%len(shipColors)])
	}

	for _, b := range g.session.Bulwarks() {
		if !b.Alive() {
			continue
		}
		c := g.cellRect(dst, b.Rect)
		if b.State() == sim.StateFlashing {
			dst.DrawRect(c, bulwarkHitGlyph, core.ColorRed)
		} else {
			dst.DrawRect(c, bulwarkGlyph, core.ColorGreen)
		}
	}

	if p := g.session.Player(); p.Alive() {
		color := core.ColorBrightGreen
		if p.State() == sim.StateFlashing {
			color = core.ColorBrightRed
		}
		drawSprite(dst, g.cellRect(dst, p.Rect), playerSprite, color)
	}
}

func (g *Game) renderProjectiles(dst *core.Screen) {
	t := g.session.Tuning()
	fieldH := dst.Height() - 1
	for _, p := range g.session.Projectiles() {
		x := core.Scale(p.Rect.X, t.Width, dst.Width())
		y := 1 + core.Scale(p.Rect.Y, t.Height, fieldH)
		if p.Faction == sim.FactionPlayer {
			dst.SetColored(x, y, playerShot, core.ColorBrightWhite)
		} else {
			dst.SetColored(x, y, enemyShot, core.ColorYellow)
		}
	}
}

// drawSprite fills each row of r with the sprite text, stretched or cut to
// the cell width.
func drawSprite(dst *core.Screen, r core.Rect, sprite string, c core.Color) {
	glyphs := []rune(sprite)
	for y := r.Y; y < r.Y+r.H; y++ {
		for i := 0; i < r.W; i++ {
			dst.SetColored(r.X+i, y, glyphs[i*len(glyphs)/r.W], c)
		}
	}
}

// renderOverlay draws the start prompt, pause state and end banners.
func (g *Game) renderOverlay(dst *core.Screen) {
	mid := dst.Height() / 2

	switch g.session.Terminal() {
	case sim.TerminalWon:
		dst.DrawTextCentered(mid, WinBanner, core.ColorBrightGreen)
		dst.DrawTextCentered(mid+2, "R: restart  Q: quit", core.ColorGray)
		return
	case sim.TerminalLost:
		dst.DrawTextCentered(mid, LoseBanner, core.ColorBrightRed)
		dst.DrawTextCentered(mid+2, "R: restart  Q: quit", core.ColorGray)
		return
	case sim.TerminalHalted:
		g.renderError(dst, "SIMULATION HALTED", g.session.Err())
		return
	}

	if !g.session.Begun() {
		dst.DrawTextCentered(mid, BeginPrompt, core.ColorTeal)
		dst.DrawTextCentered(mid+2, ControlsHelp, core.ColorTeal)
		return
	}
	if g.paused {
		dst.DrawTextCentered(mid, "PAUSED", core.ColorBrightWhite)
		dst.DrawTextCentered(mid+2, "P: resume  Esc: leave", core.ColorGray)
	}
}

func (g *Game) renderError(dst *core.Screen, title string, err error) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, title, core.ColorBrightRed)
	if err == nil {
		return
	}
	msg := []rune(err.Error())
	width := max(1, dst.Width()-4)
	for i, y := 0, mid+1; i < len(msg) && y < dst.Height(); i, y = i+width, y+1 {
		end := min(len(msg), i+width)
		dst.DrawText(2, y, string(msg[i:end]))
	}
}
