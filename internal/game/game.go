package game

import (
	"fmt"
	"time"

	"lostnaut/internal/audio"
	"lostnaut/internal/input"
	"lostnaut/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Recorder receives each frame's input in order.
type Recorder interface {
	Record(dt float32, in input.Snapshot) error
}

// Publisher receives each frame's state for spectators. It must not block.
type Publisher interface {
	Publish(st State)
}

// Game is the raylib window around a Session.
type Game struct {
	Session   *Session
	Renderer  *world.Renderer
	Controls  world.Controls
	DebugMode bool
	Title     string

	Recorder  Recorder
	Publisher Publisher

	cursorLocked bool

	// Debug timing (ms)
	updateMs float64
	drawMs   float64
}

func New(s *Session) *Game {
	return &Game{
		Session:  s,
		Renderer: world.NewRenderer(),
		Title:    "Lostnaut",
		Controls: world.Controls{
			DebugOutput: s.Resolver.DebugOutput(),
			Margin:      s.Resolver.Margin(),
		},
	}
}

// Run opens the window and plays until it is closed.
func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, g.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	rl.SetExitKey(rl.KeyEscape)
	rl.DisableCursor()
	g.cursorLocked = true

	if err := audio.Init(); err != nil {
		g.Session.logger.Printf("Audio: disabled: %v", err)
	}
	defer audio.Close()
	AttachSound(g.Session)

	g.Renderer.Initialize()
	defer g.Renderer.Unload()
	world.InitStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyF1) {
		g.DebugMode = !g.DebugMode
		g.Controls.Open = g.DebugMode
	}

	in := input.FromRaylib()
	if g.Recorder != nil {
		if err := g.Recorder.Record(deltaTime, in); err != nil {
			g.Session.logger.Printf("Replay: recording stopped: %v", err)
			g.Recorder = nil
		}
	}

	g.Session.Step(deltaTime, in)
	g.syncCursor()
	g.applyControls()
	g.Session.syncListener()

	if g.Publisher != nil {
		g.Publisher.Publish(g.Session.State())
	}

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

// syncCursor mirrors the session's cursor lock onto the window.
func (g *Game) syncCursor() {
	locked := g.Session.CursorLocked
	if locked == g.cursorLocked {
		return
	}
	if locked {
		rl.DisableCursor()
	} else {
		rl.EnableCursor()
	}
	g.cursorLocked = locked
}

func (g *Game) applyControls() {
	r := g.Session.Resolver
	if r.DebugOutput() != g.Controls.DebugOutput {
		r.SetDebugOutput(g.Controls.DebugOutput)
	}
	if r.Margin() != g.Controls.Margin {
		r.SetMargin(g.Controls.Margin)
	}
}

func (g *Game) Draw() {
	width := float32(rl.GetScreenWidth())
	height := float32(rl.GetScreenHeight())
	aspect := float32(1)
	if height > 0 {
		aspect = width / height
	}

	rl.BeginDrawing()

	drawStart := time.Now()
	g.Renderer.Draw(g.Session.View(aspect, g.Controls.Wireframes))
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.DrawUI()
	rl.EndDrawing()
}

func (g *Game) DrawUI() {
	hud := g.Session.HUD()
	hud.Stats = g.Renderer.Stats
	world.DrawHUD(hud, &g.Controls)

	if g.DebugMode {
		y := int32(rl.GetScreenHeight()) - 70
		rl.DrawFPS(10, y)
		rl.DrawText(fmt.Sprintf("Update: %.2f ms", g.updateMs), 10, y+22, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:   %.2f ms", g.drawMs), 10, y+40, 16, rl.Green)
	} else {
		rl.DrawText("WASD move, Shift run, Space jump, E interact, P reset, F5 restart, Tab cursor, F1 debug",
			10, int32(rl.GetScreenHeight())-26, 16, rl.DarkGray)
	}
}
