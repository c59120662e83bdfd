package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-racer/internal/core"
)

// Visual characters for rendering
const (
	RoadChar   = '▓'
	EdgeChar   = '█'
	GrassChar  = '░'
	GrassAlt   = '▒'
	LaneChar   = '╎'
	HorizonRow = 3 // rows of HUD and sky above the road, at minimum
)

var (
	playerSprite = [2]string{"▟██▙", "◙  ◙"}
	carNear      = "▄█▄"
	carFar       = '▪'
)

// Render draws the road, traffic, the player's car and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 20 || h < 10 || g.pack == nil {
		dst.DrawTextCentered(h/2, "too small", core.ColorYellow)
		return
	}

	course := g.currentCourse()
	pal := course.Palette
	horizon := core.Max(HorizonRow, h/3)

	// Sky
	for y := 1; y < horizon; y++ {
		dst.DrawHLine(0, y, w, ' ', pal.Sky)
	}
	hills := int(g.pos*0.5) % w
	for x := 0; x < w; x++ {
		if (x+hills)%11 < 4 {
			dst.SetColored(x, horizon-1, '▁', pal.Grass)
		}
	}

	bottom := h - 1
	rows := bottom - horizon
	for y := horizon; y < bottom; y++ {
		center, half, ahead := g.project(y, horizon, rows, w)
		stripe := int(g.pos+ahead) % 2

		grass := GrassChar
		if stripe == 1 {
			grass = GrassAlt
		}
		dst.DrawHLine(0, y, w, grass, pal.Grass)

		left := int(center - half)
		right := int(center + half)
		for x := left; x <= right; x++ {
			dst.SetColored(x, y, RoadChar, pal.Road)
		}
		edge := pal.Edge
		if stripe == 1 {
			edge = core.ColorWhite
		}
		dst.SetColored(left, y, EdgeChar, edge)
		dst.SetColored(right, y, EdgeChar, edge)
		if stripe == 0 && half > 6 {
			dst.SetColored(int(center), y, LaneChar, core.ColorWhite)
		}
	}

	g.renderTraffic(dst, horizon, rows, w)
	g.renderPlayer(dst, w, h)
	g.renderHUD(dst, w, h)
	g.renderBanner(dst, horizon)
}

// project returns the road centre, half width and distance ahead in
// segments for screen row y.
func (g *Game) project(y, horizon, rows, w int) (center, half, ahead float64) {
	p := float64(y-horizon+1) / float64(rows) // 0 at the horizon, 1 at the bottom
	half = 1 + p*float64(w)*0.4
	ahead = (1/p - 1) * 3

	curve := g.currentCourse().CurveAt(int(g.pos + ahead))
	bend := curve * (1 - p) * (1 - p) * float64(w) * 0.5
	center = float64(w)/2 + bend - g.car.X*half
	return center, half, ahead
}

func (g *Game) renderTraffic(dst *core.Screen, horizon, rows, w int) {
	for _, c := range g.traffic.Cars {
		rel := c.Pos - g.pos
		if rel <= 0 || rel > 60 {
			continue
		}
		p := 1 / (rel/3 + 1)
		y := horizon + int(p*float64(rows)) - 1
		center, half, _ := g.project(y, horizon, rows, w)
		x := int(center + c.X*half)
		if p > 0.3 {
			dst.DrawTextColored(x-1, y, carNear, core.ColorRed)
		} else {
			dst.SetColored(x, y, carFar, core.ColorRed)
		}
	}
}

func (g *Game) renderPlayer(dst *core.Screen, w, h int) {
	x := w/2 - 2
	if g.car.Crash > 0 && (g.car.Crash/4)%2 == 0 {
		dst.DrawTextColored(x-1, h-3, "*BANG*", core.ColorBrightYellow)
		return
	}
	color := core.ColorBrightRed
	if g.controls.Brake > 0.1 {
		color = core.ColorOrange
	}
	dst.DrawTextColored(x, h-3, playerSprite[0], color)
	dst.DrawTextColored(x, h-2, playerSprite[1], core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, w, h int) {
	var clock string
	if g.timeTrial {
		clock = fmt.Sprintf("TIME %6.2f", g.Elapsed())
	} else {
		clock = fmt.Sprintf("TIME %3d", g.TimeLeft())
		if g.Frozen() {
			clock += " FROZEN"
		}
	}
	dst.DrawTextColored(1, 0, clock, core.ColorBrightYellow)

	score := fmt.Sprintf("SCORE %7d", g.score)
	dst.DrawTextColored(w/2-len(score)/2, 0, score, core.ColorBrightWhite)

	hi := fmt.Sprintf("HI %7d", core.Max(g.best, g.score))
	dst.DrawTextColored(w-len(hi)-1, 0, hi, core.ColorBrightCyan)

	gear := "LO"
	if g.controls.Gear == GearHigh {
		gear = "HI"
	}
	speed := fmt.Sprintf("%3d km/h %s", int(math.Round(g.car.Speed)), gear)
	dst.DrawTextColored(1, h-1, speed, core.ColorBrightWhite)

	stage := fmt.Sprintf("STAGE %d  %s", g.stage+1, g.currentCourse().Name)
	dst.DrawTextColored(w-len([]rune(stage))-1, h-1, stage, core.ColorBrightGreen)
}

func (g *Game) renderBanner(dst *core.Screen, horizon int) {
	y := horizon / 2
	switch g.phase {
	case PhaseReady:
		left := readySeconds - g.phaseTicks/core.Max(1, g.tickRate)
		dst.DrawTextCentered(y, fmt.Sprintf("READY  %d", core.Max(1, left)), core.ColorBrightYellow)
	case PhaseOver:
		title := "TIME UP"
		if g.timeTrial || g.stage >= len(g.pack.Courses) {
			title = "GOAL!"
		}
		score := fmt.Sprintf("SCORE %d", g.score)
		w := dst.Width()
		pw := core.Clamp(len(score)+6, 16, w)
		panel := core.NewRect((w-pw)/2, y-1, pw, 4)
		dst.DrawRect(panel, ' ', core.ColorDefault)
		dst.DrawBox(panel, core.ColorBrightYellow)
		dst.DrawTextCentered(y, title, core.ColorBrightRed)
		dst.DrawTextCentered(y+1, score, core.ColorBrightWhite)
	}
}
