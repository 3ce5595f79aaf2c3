package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"lostnaut/internal/game"
	"lostnaut/internal/physics"
	"lostnaut/internal/world"
)

// Terminal cells are about twice as tall as they are wide.
const cellAspect = 2.0

const (
	minScale     = 0.5
	maxScale     = 32
	defaultScale = 3
)

// Projection maps the XZ plane onto screen cells, centred on a world point.
// Scale is world units per column; +Z points down the screen.
type Projection struct {
	CX, CZ float32
	Scale  float32
	W, H   int
}

// Cell returns the screen cell containing world point (x, z).
func (p Projection) Cell(x, z float32) (col, row int, ok bool) {
	fc := (x-p.CX)/p.Scale + float32(p.W)/2
	fr := (z-p.CZ)/(p.Scale*cellAspect) + float32(p.H)/2
	col = int(math.Floor(float64(fc)))
	row = int(math.Floor(float64(fr)))
	ok = col >= 0 && col < p.W && row >= 0 && row < p.H
	return
}

// World returns the world XZ at the centre of a cell.
func (p Projection) World(col, row int) (x, z float32) {
	x = (float32(col)+0.5-float32(p.W)/2)*p.Scale + p.CX
	z = (float32(row)+0.5-float32(p.H)/2)*p.Scale*cellAspect + p.CZ
	return
}

var (
	styleDefault  = tcell.StyleDefault
	styleGround   = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleStep     = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHazard   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleShip     = tcell.StyleDefault.Foreground(tcell.ColorSilver).Bold(true)
	styleDog      = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleAgent    = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleItem     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	stylePrompt   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleTaskDone = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorNavy)
)

// Glyphs for surfaces relative to the player's feet.
const (
	glyphBelow  = '.'
	glyphStep   = '+'
	glyphWall   = '#'
	glyphHazard = '^'
	glyphShip   = 'S'
	glyphDog    = 'D'
	glyphAgent  = 'A'
	glyphPlayer = '@'
)

// stepHeight separates surfaces the player can hop onto from walls.
const stepHeight = 3

type footprint struct {
	bounds physics.AABB
	glyph  rune
	style  tcell.Style
}

// draw renders the map and the status lines.
func draw(screen tcell.Screen, s *game.Session, scale float32) {
	screen.Clear()
	w, h := screen.Size()
	if w <= 0 || h <= 2 {
		screen.Show()
		return
	}

	p := Projection{CX: s.Player.Position.X, CZ: s.Player.Position.Z, Scale: scale, W: w, H: h - 2}
	feet := s.Player.Feet().Y

	prints := footprints(s, feet)
	for row := 0; row < p.H; row++ {
		for col := 0; col < p.W; col++ {
			x, z := p.World(col, row)
			for i := len(prints) - 1; i >= 0; i-- {
				b := prints[i].bounds
				if x >= b.Min.X && x <= b.Max.X && z >= b.Min.Z && z <= b.Max.Z {
					screen.SetContent(col, row+1, prints[i].glyph, nil, prints[i].style)
					break
				}
			}
		}
	}

	for _, m := range s.Markers() {
		if col, row, ok := p.Cell(m.Position.X, m.Position.Z); ok {
			screen.SetContent(col, row+1, markerGlyph(m.Kind), nil, styleItem)
		}
	}
	for _, a := range s.Agents {
		if a.Dead {
			continue
		}
		if col, row, ok := p.Cell(a.Position.X, a.Position.Z); ok {
			screen.SetContent(col, row+1, glyphAgent, nil, styleAgent)
		}
	}
	if col, row, ok := p.Cell(s.Player.Position.X, s.Player.Position.Z); ok {
		screen.SetContent(col, row+1, glyphPlayer, nil, stylePlayer)
		forward, _ := s.Camera.Directions()
		fx, fz := s.Player.Position.X+forward.X*scale*1.5, s.Player.Position.Z+forward.Z*scale*cellAspect*1.5
		if c, r, ok := p.Cell(fx, fz); ok && (c != col || r != row) {
			screen.SetContent(c, r+1, headingGlyph(s.Camera.Yaw), nil, stylePlayer)
		}
	}

	drawStatus(screen, s, w, h)
	screen.Show()
}

// footprints lists what to draw, lowest top first, so higher surfaces win.
func footprints(s *game.Session, feet float32) []footprint {
	out := make([]footprint, 0, len(s.Scene.Volumes))
	for _, v := range s.Scene.Volumes {
		if v == s.Scene.Dog && !s.DogPresent() {
			continue
		}
		if !v.CollisionEnabled() {
			continue
		}
		b := v.WorldAABB()
		if b.Degenerate() {
			continue
		}
		f := footprint{bounds: b}
		switch {
		case v.IsHazard():
			f.glyph, f.style = glyphHazard, styleHazard
		case v == s.Scene.Ship:
			f.glyph, f.style = glyphShip, styleShip
		case v == s.Scene.Dog:
			f.glyph, f.style = glyphDog, styleDog
		default:
			f.glyph, f.style = surfaceGlyph(b.Max.Y - feet)
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].bounds.Max.Y < out[j].bounds.Max.Y
	})
	return out
}

func surfaceGlyph(rise float32) (rune, tcell.Style) {
	switch {
	case rise <= 0.01:
		return glyphBelow, styleGround
	case rise <= stepHeight:
		return glyphStep, styleStep
	default:
		return glyphWall, styleWall
	}
}

func markerGlyph(k world.MarkerKind) rune {
	switch k {
	case world.MarkerPlant:
		return 'p'
	case world.MarkerFuel:
		return 'f'
	default:
		return 't'
	}
}

// headingGlyph points along yaw, where 0 is +X (screen right) and -90 is
// -Z (screen up).
func headingGlyph(yaw float32) rune {
	a := math.Mod(float64(yaw), 360)
	if a < 0 {
		a += 360
	}
	glyphs := []rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}
	return glyphs[int(math.Floor((a+22.5)/45))%8]
}

func drawStatus(screen tcell.Screen, s *game.Session, w, h int) {
	for x := 0; x < w; x++ {
		screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	col := 0
	for _, t := range s.TaskLines() {
		style := styleStatus
		if t.State == world.TaskDone {
			style = styleTaskDone
		}
		col = putString(screen, col, 0, world.TaskMark(t.State)+" "+t.Label+"  ", style)
	}

	hud := s.HUD()
	info := fmt.Sprintf("t=%.0fs deaths=%d stomps=%d", hud.Time, hud.Deaths, hud.Stomps)
	if hud.Holding != "" {
		info = "holding " + hud.Holding + "  " + info
	}
	putString(screen, w-len(info)-1, 0, info, styleStatus)

	var bottom string
	style := styleDefault
	switch {
	case hud.Escaped:
		bottom, style = " ESCAPED! q to quit ", stylePrompt
	case hud.Cutscene:
		bottom, style = fmt.Sprintf(" Launching... ship at y=%.0f ", s.ShipPosition().Y), stylePrompt
	case hud.Prompt:
		bottom, style = " Press E ", stylePrompt
	default:
		bottom = "wasd move (WASD run)  space jump  e use  p reset  R restart  arrows/ijkl look  +/- zoom  q quit"
	}
	if len(bottom) > w {
		bottom = bottom[:w]
	}
	putString(screen, 0, h-1, bottom, style)
}

func putString(screen tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

// rowText reads a screen row back as a string, for tests and debugging.
func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}
