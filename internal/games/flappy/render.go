package flappy

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// Visual characters for rendering
const (
	BodyChar     = '█'
	BeakChar     = '▶'
	EyeChar      = '•'
	ObstacleChar = '█'
	SmallToken   = '●'
	LargeToken   = '◉'
	GroundChar   = '═'
	EdgeChar     = '│'
)

// wingGlyphs animate the wing, indexed by actor phase.
var wingGlyphs = []rune{'▀', '━', '▄'}

// Render draws the current game state to the screen.
// It only reads the world.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}
	w := g.world
	vp := w.Viewport()

	drawFrame(dst, vp)

	width := g.cfg.Obstacles.Width
	gap := g.cfg.Obstacles.Gap
	for _, o := range w.Obstacles() {
		fillBox(dst, vp, o.TopBox(width), ObstacleChar, core.ColorBrown)
		fillBox(dst, vp, o.BottomBox(width, gap, vp.H), ObstacleChar, core.ColorBrown)
	}

	for _, t := range w.Tokens() {
		if t.Large {
			fillBox(dst, vp, t.Box(), LargeToken, core.ColorGold)
		} else {
			fillBox(dst, vp, t.Box(), SmallToken, core.ColorYellow)
		}
	}

	drawActor(dst, vp, w)
	g.drawHUD(dst, w)

	st := w.State()
	if st.Paused {
		drawCenteredMessage(dst, vp, "PAUSED", "Press P to resume")
	}
	if st.GameOver {
		g.drawGameOver(dst, vp, st)
	}
}

// drawFrame marks the world's right edge and floor when the terminal is
// larger than the world.
func drawFrame(dst *core.Screen, vp core.Viewport) {
	cols, rows := vp.Cols(), vp.Rows()
	if rows < dst.Height() {
		dst.DrawHLine(0, rows, core.Min(cols+1, dst.Width()), GroundChar, core.ColorDarkGray)
	}
	if cols < dst.Width() {
		for y := 0; y < core.Min(rows, dst.Height()); y++ {
			dst.SetColor(cols, y, EdgeChar, core.ColorDarkGray)
		}
	}
}

// fillBox paints the cells covering a world box, clipped to the world.
func fillBox(dst *core.Screen, vp core.Viewport, b core.Box, r rune, c core.Color) {
	if b.W <= 0 || b.H <= 0 {
		return
	}
	rect := vp.CellRect(b)
	x0 := core.Max(rect.X, 0)
	y0 := core.Max(rect.Y, 0)
	x1 := core.Min(rect.Right(), vp.Cols())
	y1 := core.Min(rect.Bottom(), vp.Rows())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(x, y, r, c)
		}
	}
}

// drawActor paints the actor in its tier color, blinking during grace.
func drawActor(dst *core.Screen, vp core.Viewport, w *World) {
	a := w.Actor()
	color := a.Color
	if w.GraceTicks() > 0 && (w.Frame()/4)%2 == 1 {
		color = core.ColorGray
	}

	fillBox(dst, vp, a.Box(), BodyChar, color)

	rect := vp.CellRect(a.Box())
	if rect.W < 2 {
		return
	}
	dst.SetColor(rect.Right()-1, rect.Y+rect.H/2, BeakChar, core.ColorBrightYellow)
	dst.SetColor(rect.Right()-2, rect.Y, EyeChar, core.ColorDefault)
	dst.SetColor(rect.X, rect.Y+rect.H/2, wingGlyphs[a.Phase%len(wingGlyphs)], core.ColorLightGray)
}

// drawHUD draws score, best, coins and the current belt.
func (g *Game) drawHUD(dst *core.Screen, w *World) {
	st := w.State()
	dst.DrawText(1, 0, fmt.Sprintf(" Score: %d  Best: %d ", st.Score, st.BestScore))

	coins := fmt.Sprintf(" Coins: %d ", st.Coins)
	dst.DrawTextColor(1, 1, coins, core.ColorYellow)

	if t, ok := w.Tier(); ok {
		label := fmt.Sprintf(" %s ", t.Name)
		x := w.Viewport().Cols() - utf8.RuneCountInString(label) - 1
		dst.DrawTextColor(x, 0, label, tierLabelColor(t.Color))
	}
}

// tierLabelColor keeps the belt label readable on dark terminals.
func tierLabelColor(c core.Color) core.Color {
	if c == core.ColorBlack {
		return core.ColorLightGray
	}
	return c
}

// drawGameOver draws the crash summary and the clickable buttons.
func (g *Game) drawGameOver(dst *core.Screen, vp core.Viewport, st core.GameState) {
	drawCenteredMessage(dst, vp, "You crashed!", fmt.Sprintf("Score: %d  |  Best: %d", st.Score, st.BestScore))

	tryAgain, revive := overlayButtons(vp)
	drawButton(dst, vp, tryAgain, "Try Again (R)", core.ColorGreen)
	if st.CanRevive {
		drawButton(dst, vp, revive, fmt.Sprintf("Revive -%d Coins (V)", g.cfg.Revive.Cost), core.ColorGold)
	}
}

// drawButton draws an outlined region with a centered label.
func drawButton(dst *core.Screen, vp core.Viewport, b core.Box, label string, c core.Color) {
	rect := vp.CellRect(b)
	if rect.H < 3 {
		rect.H = 3
	}
	dst.DrawRect(rect, ' ', core.ColorDefault)
	dst.DrawBox(rect, c)
	lx := rect.X + (rect.W-utf8.RuneCountInString(label))/2
	dst.DrawTextColor(lx, rect.Y+rect.H/2, label, c)
}

// drawCenteredMessage draws a message box above the middle of the world.
func drawCenteredMessage(dst *core.Screen, vp core.Viewport, title, subtitle string) {
	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (vp.Cols() - boxW) / 2
	_, midRow := vp.ToCell(0, vp.H/2)
	boxY := core.Max(midRow-boxH+1, 0)

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	titleX := boxX + (boxW-utf8.RuneCountInString(title))/2
	dst.DrawTextColor(titleX, boxY+1, title, core.ColorWhite)

	subtitleX := boxX + (boxW-utf8.RuneCountInString(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}
