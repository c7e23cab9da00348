package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Visual characters for rendering
const (
	BlockGlyph = '█'
	GhostGlyph = '░'
)

const (
	cellWidth  = 2  // screen columns per arena cell
	panelWidth  = 11 // side panel next to each arena
	panelHeight = 22 // rows the panel needs, counting the spawn table
	seatGap     = 2
)

// kindColors maps piece kinds to palette colors.
var kindColors = map[engine.Kind]core.Color{
	engine.KindI: core.ColorCyan,
	engine.KindL: core.ColorOrange,
	engine.KindJ: core.ColorBlue,
	engine.KindO: core.ColorYellow,
	engine.KindZ: core.ColorRed,
	engine.KindS: core.ColorGreen,
	engine.KindT: core.ColorMagenta,
}

// KindColor returns the color a piece kind is drawn with.
func KindColor(k engine.Kind) core.Color {
	if c, ok := kindColors[k]; ok {
		return c
	}
	return core.ColorDefault
}

func (g *Game) boardSize() (w, h int) {
	return g.cfg.Arena.Width*cellWidth + 2, g.cfg.Arena.Height + 2
}

// layoutSize is the screen area every seat plus the title and help rows need.
func (g *Game) layoutSize() (w, h int) {
	bw, bh := g.boardSize()
	block := bw + 1 + panelWidth
	n := len(g.cpu)
	return n*block + (n-1)*seatGap, core.Max(bh, panelHeight) + 2
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		w, h := g.layoutSize()
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	w, h := g.layoutSize()
	x0 := core.Max(0, (dst.Width()-w)/2)
	y0 := core.Max(0, (dst.Height()-h)/2)

	dst.DrawTextWithColor(x0+(w-len(g.title))/2, y0, g.title, core.ColorBrightWhite)

	bw, _ := g.boardSize()
	block := bw + 1 + panelWidth + seatGap
	for i, s := range g.seats {
		g.renderSeat(dst, s, x0+i*block, y0+1)
	}

	help := g.helpText()
	dst.DrawTextWithColor(x0+core.Max(0, (w-len([]rune(help)))/2), y0+h-1, help, core.ColorGray)

	g.renderOverlay(dst)
}

// renderSeat draws one arena with its ghost, falling piece and side panel.
func (g *Game) renderSeat(dst *core.Screen, s *seat, x, y int) {
	p := s.player
	grid := p.Grid()
	bw, bh := g.boardSize()

	dst.DrawBoxWithColor(core.NewRect(x, y, bw, bh), core.ColorGray)

	cell := func(col, row int, r rune, c core.Color) {
		if row < 0 || row >= grid.Height() {
			return
		}
		px := x + 1 + col*cellWidth
		dst.SetWithColor(px, y+1+row, r, c)
		dst.SetWithColor(px+1, y+1+row, r, c)
	}

	piece := p.Piece()
	ghostRow := p.GhostRow()
	if ghostRow != piece.Pos.Row {
		eachCell(piece.Shape, engine.Position{Col: piece.Pos.Col, Row: ghostRow}, func(col, row int, _ engine.Kind) {
			cell(col, row, GhostGlyph, core.ColorDim)
		})
	}

	for row := 0; row < grid.Height(); row++ {
		for col := 0; col < grid.Width(); col++ {
			if k := grid.At(col, row); k != engine.KindNone {
				cell(col, row, BlockGlyph, KindColor(k))
			}
		}
	}

	eachCell(piece.Shape, piece.Pos, func(col, row int, k engine.Kind) {
		cell(col, row, BlockGlyph, KindColor(k))
	})

	g.renderPanel(dst, s, x+bw+1, y)
}

// eachCell calls fn for every solid cell of shape placed at pos.
func eachCell(shape engine.Shape, pos engine.Position, fn func(col, row int, k engine.Kind)) {
	for dy, line := range shape {
		for dx, k := range line {
			if k != engine.KindNone {
				fn(pos.Col+dx, pos.Row+dy, k)
			}
		}
	}
}

// renderPanel draws the seat label, next piece preview, counters and the
// per-kind spawn table.
func (g *Game) renderPanel(dst *core.Screen, s *seat, x, y int) {
	p := s.player
	stats := p.Stats()

	dst.DrawTextWithColor(x, y, g.seatLabel(s), core.ColorBrightWhite)

	dst.DrawTextWithColor(x, y+2, "NEXT", core.ColorGray)
	next := p.Next()
	eachCell(next, engine.Position{Col: 0, Row: 0}, func(col, row int, k engine.Kind) {
		dst.SetWithColor(x+col*cellWidth, y+3+row, BlockGlyph, KindColor(k))
		dst.SetWithColor(x+col*cellWidth+1, y+3+row, BlockGlyph, KindColor(k))
	})

	score := p.Score()
	if g.gameOver && s.id == g.final.Player {
		score = g.final.Score
	}

	rows := []struct {
		label string
		value string
	}{
		{"SCORE", fmt.Sprintf("%d", score)},
		{"LINES", fmt.Sprintf("%d", stats.Lines)},
		{"PIECES", fmt.Sprintf("%d", stats.Pieces)},
		{"TOP OUTS", fmt.Sprintf("%d", stats.TopOuts)},
		{"DROP", fmt.Sprintf("%dms", p.DropInterval().Milliseconds())},
	}
	for i, r := range rows {
		dst.DrawTextWithColor(x, y+7+i*2, r.label, core.ColorGray)
		dst.DrawTextWithColor(x, y+8+i*2, r.value, core.ColorWhite)
	}

	dst.DrawTextWithColor(x, y+17, "SPAWNS", core.ColorGray)
	counts := p.SpawnCounts()
	for i, k := range engine.Kinds {
		cx, cy := x+(i%2)*6, y+18+i/2
		dst.SetWithColor(cx, cy, []rune(k.String())[0], KindColor(k))
		dst.DrawTextWithColor(cx+1, cy, fmt.Sprintf("%-4d", counts[i]), core.ColorWhite)
	}
}

// seatLabel names a seat in the panel.
func (g *Game) seatLabel(s *seat) string {
	switch {
	case s.cpu && g.HumanSeats() == 0:
		return fmt.Sprintf("CPU %d", s.id)
	case s.cpu:
		return "CPU"
	case g.HumanSeats() > 1:
		return fmt.Sprintf("PLAYER %d", s.id)
	default:
		return "PLAYER"
	}
}

func (g *Game) helpText() string {
	switch g.mode {
	case ModeDuo:
		return "P1 A/D move Q/E rotate S/W drop   P2 H/K move Y/I rotate J/U drop   P pause"
	case ModeDemo:
		return "P pause  Q quit"
	default:
		return "←/→ move  ↑/X rotate  Z ccw  ↓ soft  SPACE hard  P pause  Q quit"
	}
}

// renderOverlay draws pause and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.gameOver:
		subtitle := fmt.Sprintf("Score: %d  Lines: %d  |  Press R to restart", g.final.Score, g.final.Lines)
		drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.paused:
		drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBoxWithColor(core.NewRect(boxX, boxY, boxW, boxH), core.ColorBrightWhite)

	dst.DrawTextWithColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
