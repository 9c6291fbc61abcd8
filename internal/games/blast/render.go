package blast

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

const (
	cellWidth    = 4  // Screen columns per board cell: " ██ "
	hudHeight    = 3  // Title, score line, hover line
	footerHeight = 2  // Message line and controls
	hudMinWidth  = 24 // "Score: 999999" and "Blasts: 9999" side by side
)

// palette maps engine color indices to screen colors.
var palette = []core.Color{
	core.ColorRed,
	core.ColorGreen,
	core.ColorBlue,
	core.ColorYellow,
	core.ColorMagenta,
	core.ColorCyan,
}

// boardSize returns the on-screen size of a board including its border.
func boardSize(rows, cols int) (w, h int) {
	return cols*cellWidth + 2, rows + 2
}

// minScreenSize returns the smallest screen that fits the HUD, the board
// and the footer.
func minScreenSize(rows, cols int) (w, h int) {
	w, h = boardSize(rows, cols)
	return max(w, hudMinWidth), h + hudHeight + footerHeight
}

// boardRect returns where the board box is drawn on the current screen.
func (g *Game) boardRect() core.Rect {
	w, h := boardSize(g.cfg.Board.Rows, g.cfg.Board.Columns)
	return core.Rect{X: (g.screenW - w) / 2, Y: hudHeight, W: w, H: h}
}

// cellOrigin returns the screen position of the left edge of cell p.
func (g *Game) cellOrigin(p engine.Pos) (x, y int) {
	r := g.boardRect()
	return r.X + 1 + p.Col*cellWidth, r.Y + 1 + p.Row
}

// cellAt maps a screen position to the board cell under it.
func (g *Game) cellAt(x, y int) (engine.Pos, bool) {
	r := g.boardRect()
	inner := core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
	if !inner.Contains(x, y) {
		return engine.Pos{}, false
	}
	return engine.P(y-inner.Y, (x-inner.X)/cellWidth), true
}

// glyph returns the two-rune block and color for a cell of the given tier.
// Bigger groups are drawn denser; tier C also switches to the bright color.
func glyph(color int, blastable bool, tier engine.Tier) (string, core.Color) {
	c := core.ColorWhite
	if color >= 0 && color < len(palette) {
		c = palette[color]
	}
	if !blastable {
		return "░░", c
	}
	switch tier {
	case engine.TierA:
		return "▓▓", c
	case engine.TierB:
		return "██", c
	case engine.TierC:
		return "██", c.Bright()
	default:
		return "▒▒", c
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.board == nil {
		return
	}

	box := g.boardRect()
	g.renderHUD(dst, box)
	g.renderBoard(dst, box)
	g.renderFooter(dst, box)
	g.renderOverlays(dst, box)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := minScreenSize(g.cfg.Board.Rows, g.cfg.Board.Columns)
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small")
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d", w, h))
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and the group under the cursor.
func (g *Game) renderHUD(dst *core.Screen, box core.Rect) {
	title := g.Title()
	dst.DrawText(box.X+(box.W-len(title))/2, 0, title)

	score := fmt.Sprintf("Score: %d", g.score)
	var info string
	if g.mode == ModeMoves {
		info = fmt.Sprintf("Moves: %d", g.movesLeft)
	} else {
		info = fmt.Sprintf("Blasts: %d", g.blasts)
	}

	// Narrow boards get a HUD wider than the box, centered on it.
	span := max(box.W, len(score)+1+len(info))
	x := max(0, box.X-(span-box.W)/2)
	dst.DrawText(x, 1, score)
	dst.DrawText(x+span-len(info), 1, info)

	if g.anim != nil {
		return
	}
	if grp, ok := g.board.GroupAt(g.cursor); ok {
		hover := fmt.Sprintf("Group: %d  Tier: %s", grp.Size(), grp.Tier)
		if !grp.Blastable {
			hover = "Group: 1"
		}
		_, c := glyph(grp.Color, true, engine.TierDefault)
		dst.DrawTextColored(x, 2, hover, c)
	}
}

// renderBoard draws the border, resting cells, falling cells and cursor.
func (g *Game) renderBoard(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)

	grid := g.board.Grid()
	for _, p := range grid.Positions() {
		if g.anim != nil && g.anim.Landing(p) {
			continue
		}
		slot, _ := grid.Get(p)
		if !slot.Occupied {
			continue
		}
		text, c := glyph(slot.Cell.Color, slot.Cell.Blastable, slot.Cell.Tier)
		if g.anim != nil {
			// Groups are rescanned once everything lands.
			text, c = glyph(slot.Cell.Color, true, engine.TierDefault)
		}
		x, y := g.cellOrigin(p)
		dst.DrawTextColored(x+1, y, text, c)
	}

	if g.anim != nil {
		for _, d := range g.anim.Falling() {
			row := int(d.row + 0.5)
			if row < 0 {
				continue
			}
			text, c := glyph(d.move.Color, true, engine.TierDefault)
			x, y := g.cellOrigin(engine.P(row, d.move.To.Col))
			dst.DrawTextColored(x+1, y, text, c)
		}
		return
	}

	if !g.gameOver {
		x, y := g.cellOrigin(g.cursor)
		dst.SetColored(x, y, '[', core.ColorBrightWhite)
		dst.SetColored(x+cellWidth-1, y, ']', core.ColorBrightWhite)
	}
}

// renderFooter draws the status message and control hints.
func (g *Game) renderFooter(dst *core.Screen, box core.Rect) {
	y := box.Bottom()
	if g.message != "" {
		dst.DrawTextCentered(y, g.message)
	}
	dst.DrawTextColored(0, y+1, centerPad(g.Controls(), g.screenW), core.ColorGray)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, box core.Rect) {
	if g.paused {
		g.drawOverlay(dst, box, "PAUSED", "Press P to resume")
		return
	}

	if g.gameOver {
		g.drawOverlay(dst, box,
			"OUT OF MOVES",
			fmt.Sprintf("Score: %d", g.score),
			fmt.Sprintf("Largest group: %d", g.largestGroup),
			"Press R to restart")
	}
}

// drawOverlay draws a text box centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, box core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len(line))
	}

	r := box.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, core.ColorWhite)
	for i, line := range lines {
		dst.DrawText(r.X+(r.W-len(line))/2, r.Y+1+i, line)
	}
}

// centerPad centers s in a field of width w, truncating if needed.
func centerPad(s string, w int) string {
	if len(s) >= w {
		return s[:core.Max(w, 0)]
	}
	left := (w - len(s)) / 2
	return strings.Repeat(" ", left) + s
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/HJKL: Move | Space/Click: Blast | P: Pause | R: Restart | Q: Quit"
}
