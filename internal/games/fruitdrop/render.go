package fruitdrop

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
)

const (
	fillRune  = '█'
	spinRune  = '•'
	guideRune = '┊'
	pulseLen  = 15 // frames per danger pulse phase
)

// Render draws the current round into dst.
func (g *Game) Render(dst *core.Screen) {
	if g.round == nil {
		return
	}
	if g.view.tooSmall {
		h := dst.Height()
		dst.DrawTextCentered(h/2-1, "Terminal too small", core.ColorBrightRed)
		dst.DrawTextCentered(h/2+1, fmt.Sprintf("need at least %dx%d", minCols+hudWidth+3, minRows+2), core.ColorGray)
		return
	}

	snap := g.round.Snapshot()
	v := g.view

	g.drawField(dst, snap)
	g.drawGuide(dst, snap)
	for _, p := range snap.Pieces {
		g.drawDisk(dst, p.Pos, p.Radius, p.Angle, g.setup.style(p.Rank), true)
	}
	if snap.Phase == rules.PhaseRunning {
		g.drawPreview(dst, snap)
	}
	g.drawEffects(dst, snap)

	if snap.Combo > 1 && snap.Phase == rules.PhaseRunning {
		g.centerInField(dst, v.oy+1, fmt.Sprintf(" COMBO x%d! ", snap.Combo), core.ColorBrightMagenta)
	}

	g.drawHUD(dst, snap)

	switch {
	case snap.Phase == rules.PhaseGameOver:
		g.drawGameOver(dst, snap)
	case g.paused:
		g.centerInField(dst, v.oy+v.rows/2, " PAUSED ", core.ColorBrightWhite)
		g.centerInField(dst, v.oy+v.rows/2+1, " p to resume ", core.ColorGray)
	}
}

func (g *Game) drawField(dst *core.Screen, snap rules.Snapshot) {
	v := g.view
	dst.DrawBox(core.NewRect(v.ox-1, v.oy-1, v.cols+2, v.rows+2), core.ColorWhite)

	// Wall thickness inside the box, when it spans at least a column.
	wallCols := int(g.setup.settings.WallThickness / v.upc)
	for i := 0; i < wallCols; i++ {
		dst.DrawVLine(v.ox+i, v.oy, v.rows, '▒', core.ColorGray)
		dst.DrawVLine(v.ox+v.cols-1-i, v.oy, v.rows, '▒', core.ColorGray)
	}

	_, row := v.cell(0, g.setup.settings.DangerY)
	line, color := '╌', core.ColorGray
	if snap.Danger {
		line = '━'
		color = core.ColorRed
		if (snap.Frame/pulseLen)%2 == 1 {
			color = core.ColorBrightRed
		}
	}
	dst.DrawHLine(v.ox+wallCols, row, v.cols-2*wallCols, line, color)
}

func (g *Game) drawGuide(dst *core.Screen, snap rules.Snapshot) {
	if snap.Phase != rules.PhaseRunning {
		return
	}
	v := g.view
	col, top := v.cell(snap.DropX, g.setup.settings.DropY)
	for row := top + 1; row < v.oy+v.rows; row++ {
		dst.SetColor(col, row, guideRune, core.ColorGray)
	}
}

func (g *Game) drawPreview(dst *core.Screen, snap rules.Snapshot) {
	style := g.setup.style(snap.Current)
	if !snap.CanDrop {
		style.Color = core.ColorGray
	}
	radius := g.setup.table.At(snap.Current).Radius
	g.drawDisk(dst, core.V(snap.DropX, g.setup.settings.DropY), radius, 0, style, false)
}

// drawDisk fills every cell whose center lies inside the circle, puts the
// rank glyph at the center and, for large disks, a spin marker.
func (g *Game) drawDisk(dst *core.Screen, pos core.Vec2, radius, angle float64, style pieceStyle, spin bool) {
	v := g.view
	c0, r0 := v.cell(pos.X-radius, pos.Y-radius)
	c1, r1 := v.cell(pos.X+radius, pos.Y+radius)
	rr := radius * radius

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if !v.inside(col, row) {
				continue
			}
			x, y := v.center(col, row)
			dx, dy := x-pos.X, y-pos.Y
			if dx*dx+dy*dy <= rr {
				dst.SetColor(col, row, fillRune, style.Color)
			}
		}
	}

	cc, cr := v.cell(pos.X, pos.Y)
	if v.inside(cc, cr) {
		dst.SetColor(cc, cr, style.Glyph, style.Color)
	}

	if !spin || radius < 1.5*v.upr {
		return
	}
	mc, mr := v.cell(pos.X+math.Cos(angle)*radius*0.6, pos.Y+math.Sin(angle)*radius*0.6)
	if v.inside(mc, mr) && (mc != cc || mr != cr) {
		dst.SetColor(mc, mr, spinRune, core.ColorBrightWhite)
	}
}

func (g *Game) drawEffects(dst *core.Screen, snap rules.Snapshot) {
	v := g.view
	for _, p := range snap.Particles {
		col, row := v.cell(p.Pos.X, p.Pos.Y)
		if !v.inside(col, row) {
			continue
		}
		r := '·'
		if p.Life > 0.5 {
			r = '*'
		}
		dst.SetColor(col, row, r, g.setup.style(p.Rank).Color)
	}

	for _, p := range snap.Popups {
		col, row := v.cell(p.Pos.X, p.Pos.Y)
		if row < v.oy || row >= v.oy+v.rows {
			continue
		}
		color := core.ColorBrightYellow
		if p.Life < 0.5 {
			color = core.ColorYellow
		}
		n := len([]rune(p.Text))
		start := max(v.ox, min(col-n/2, v.ox+v.cols-n))
		dst.DrawTextColor(start, row, p.Text, color)
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap rules.Snapshot) {
	x := g.view.hudX()
	y := g.view.oy

	dst.DrawTextColor(x, y, g.Title(), core.ColorBrightWhite)
	y += 2
	dst.DrawTextColor(x, y, fmt.Sprintf("Score   %d", snap.Score), core.ColorBrightYellow)
	y++
	dst.DrawTextColor(x, y, fmt.Sprintf("Best    %d", max(snap.Best, snap.Score)), core.ColorWhite)
	y++
	dst.DrawTextColor(x, y, fmt.Sprintf("Merges  %d", snap.Merges), core.ColorWhite)
	y += 2

	g.drawRankLine(dst, x, y, "Now ", snap.Current)
	y++
	g.drawRankLine(dst, x, y, "Next", snap.Next)
	y += 2

	switch {
	case g.mode.Hardcore:
		dst.DrawTextColor(x, y, "Hardcore: no continues", core.ColorGray)
	default:
		dst.DrawTextColor(x, y, fmt.Sprintf("Continues %d", snap.ContinuesLeft), core.ColorWhite)
	}
	y += 2

	for _, line := range []string{"←/→ or mouse  aim", "space/click   drop", "p pause  r restart", "q quit"} {
		dst.DrawTextColor(x, y, line, core.ColorGray)
		y++
	}

	if snap.Phase == rules.PhaseGameOver {
		y++
		for _, line := range wrap(ShareText(snap.Score, g.Title()), hudWidth-2) {
			dst.DrawTextColor(x, y, line, core.ColorCyan)
			y++
		}
	}
}

func (g *Game) drawRankLine(dst *core.Screen, x, y int, label string, rank int) {
	style := g.setup.style(rank)
	dst.DrawTextColor(x, y, label, core.ColorWhite)
	dst.SetColor(x+len(label)+1, y, style.Glyph, style.Color)
	dst.DrawTextColor(x+len(label)+3, y, g.RankName(rank), style.Color)
}

type panelLine struct {
	text  string
	color core.Color
}

func (g *Game) drawGameOver(dst *core.Screen, snap rules.Snapshot) {
	v := g.view
	lines := []panelLine{
		{"GAME OVER", core.ColorBrightRed},
		{fmt.Sprintf("Score: %d", snap.Score), core.ColorBrightYellow},
	}
	if snap.NewBest {
		lines = append(lines, panelLine{"New best!", core.ColorBrightGreen})
	} else {
		lines = append(lines, panelLine{fmt.Sprintf("Best: %d", snap.Best), core.ColorWhite})
	}

	switch {
	case snap.AwaitingAuth:
		lines = append(lines, panelLine{"Sponsor break...", core.ColorCyan})
	case snap.CanContinue:
		lines = append(lines, panelLine{fmt.Sprintf("c continue (%d left)", snap.ContinuesLeft), core.ColorBrightCyan})
	}
	width := min(v.cols-2, 26)
	for _, line := range wrap(ChallengeText(snap.Score, g.Title()), width-2) {
		lines = append(lines, panelLine{line, core.ColorCyan})
	}
	lines = append(lines, panelLine{"r restart  q quit", core.ColorGray})

	height := len(lines) + 2
	top := v.oy + (v.rows-height)/2
	left := v.ox + (v.cols-width)/2

	box := core.NewRect(left, top, width, height)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightRed)
	for i, l := range lines {
		g.centerInField(dst, top+1+i, l.text, l.color)
	}
}

// centerInField draws text centered on the field columns.
func (g *Game) centerInField(dst *core.Screen, row int, text string, c core.Color) {
	n := len([]rune(text))
	dst.DrawTextColor(g.view.ox+(g.view.cols-n)/2, row, text, c)
}

// wrap splits text into lines no longer than width, breaking at spaces.
func wrap(text string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, word := range strings.Fields(text) {
		if cur.Len() > 0 && len([]rune(cur.String()))+1+len([]rune(word)) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines
}
