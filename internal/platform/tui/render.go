package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/maenggu/internal/core"
	"github.com/vovakirdan/maenggu/internal/host"
	"github.com/vovakirdan/maenggu/internal/pet"
	"github.com/vovakirdan/maenggu/internal/sprite"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// stateColors tints the sprite by behaviour.
var stateColors = map[pet.AnimState]core.Color{
	pet.Idle:  core.ColorBrightWhite,
	pet.Walk:  core.ColorCyan,
	pet.Eat:   core.ColorOrange,
	pet.Happy: core.ColorMagenta,
	pet.Sleep: core.ColorGray,
}

// hudStyle renders the status line.
var hudStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				if !cell.IsContinuation() {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// SpriteFrame returns the art for the current snapshot, flipped when the
// pet faces left.
func SpriteFrame(pack *sprite.Pack, st pet.State) sprite.Frame {
	f := pack.Frame(st.Anim.State, st.Anim.FrameIndex)
	if st.Movement.Facing == pet.FacingLeft {
		f = sprite.Mirror(f)
	}
	return f
}

// spriteCells returns the sprite's top-left cell and its extent. A pet
// left outside a shrunken terminal is drawn at the nearest edge until it
// next moves.
func spriteCells(v *Viewport, pack *sprite.Pack, st pet.State) (col, row, w, h int) {
	col, row = v.ToCell(st.Movement.Position)
	w, h = pack.Size()
	cols, rows := v.Size()
	col = core.Clamp(col, 0, max(cols-w, 0))
	row = core.Clamp(row, 0, max(rows-hudRows-h, 0))
	return col, row, w, h
}

// HitSprite reports whether a cell lies on the sprite.
func HitSprite(v *Viewport, pack *sprite.Pack, st pet.State, col, row int) bool {
	sc, sr, w, h := spriteCells(v, pack, st)
	return col >= sc && col < sc+w && row >= sr && row < sr+h
}

// drawDeadZones shades play-area cells that no monitor covers.
func drawDeadZones(scr *core.Screen, v *Viewport) {
	monitors := v.Monitors()
	if len(monitors) == 0 {
		return
	}
	cols, rows := v.Size()
	for row := 0; row < rows-hudRows; row++ {
		for col := 0; col < cols; col++ {
			px := v.ToPixel(col, row)
			covered := false
			for _, m := range monitors {
				if m.Contains(px) {
					covered = true
					break
				}
			}
			if !covered {
				scr.SetCell(col, row, '░', core.ColorDim)
			}
		}
	}
}

// drawPet draws the sprite at its position.
func drawPet(scr *core.Screen, v *Viewport, pack *sprite.Pack, st pet.State) {
	col, row, _, _ := spriteCells(v, pack, st)
	color, ok := stateColors[st.Anim.State]
	if !ok {
		color = core.ColorDefault
	}
	scr.DrawLines(col, row, SpriteFrame(pack, st), color)
}

// floatRise is how many rows a floating text climbs over its lifetime.
const floatRise = 2

// drawFloatingTexts draws live texts rising from where they spawned.
func drawFloatingTexts(scr *core.Screen, v *Viewport, texts []host.FloatingText) {
	for _, t := range texts {
		col, row := v.ToCell(t.Position)
		row -= int(t.Progress * floatRise)
		color := core.ColorYellow
		if t.Progress > 0.6 {
			color = core.ColorGray
		}
		scr.DrawText(col, row, t.Text, color)
	}
}

// drawBubble draws a speech bubble centered above the sprite.
func drawBubble(scr *core.Screen, v *Viewport, pack *sprite.Pack, st pet.State, text string) {
	col, row, w, _ := spriteCells(v, pack, st)
	boxW := core.TextWidth(text) + 4
	x := col + w/2 - boxW/2
	y := row - 3
	if y < 0 {
		y = 0
	}
	cols, _ := v.Size()
	x = core.Clamp(x, 0, max(cols-boxW, 0))

	scr.FillRect(x, y, boxW, 3, ' ', core.ColorDefault)
	scr.DrawBox(x, y, boxW, 3, core.ColorBrightWhite)
	scr.DrawText(x+2, y+1, text, core.ColorBrightWhite)
}

// hudLine formats the status line.
func hudLine(st pet.State, snacks int) string {
	status := fmt.Sprintf(" 🍖 %d  %s", snacks, st.Anim.State)
	if st.Movement.Target != nil && st.Movement.Target.Kind == pet.TargetSummon {
		status += " (coming)"
	}
	return status
}

// RenderHUD renders the status line followed by the help text, if any.
func RenderHUD(st pet.State, snacks int, help string) string {
	line := hudStyle.Render(hudLine(st, snacks))
	if help != "" {
		line += "  " + help
	}
	return line
}

// Draw renders a snapshot of the play area into scr.
func Draw(scr *core.Screen, s *Session, st pet.State, texts []host.FloatingText, bubble string) {
	scr.Clear()
	drawDeadZones(scr, s.View)
	drawPet(scr, s.View, s.Pack, st)
	drawFloatingTexts(scr, s.View, texts)
	if bubble != "" {
		drawBubble(scr, s.View, s.Pack, st, bubble)
	}
}
