package tui

import (
	"bytes"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"lostnaut/internal/game"
	"lostnaut/internal/input"
	"lostnaut/internal/level"
)

const arena = `
name: arena
spawn: [0, 5, 0]
ship: { position: [40, 5, 40], size: [4, 4, 4] }
dog: { position: [30, 1, 40], size: [2, 2, 2] }
items:
  plant: [0, 3, -30]
  fuel: [10, 3, -30]
  treat: [20, 3, -30]
volumes:
  - { name: floor, position: [0, -1, 0], size: [200, 2, 200] }
  - { name: spike, position: [-20, 0.5, 0], size: [4, 1, 8], hazard: true }
`

func newApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	l, err := level.Parse([]byte(arena))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s := game.NewSession(l, game.Options{Logger: log.New(io.Discard, "", 0)})

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return New(screen, s), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeysHoldDecay(t *testing.T) {
	var k Keys
	t0 := time.Unix(100, 0)
	k.Handle(key('w'), t0)

	if !k.Snapshot(t0.Add(100*time.Millisecond), 0).Forward {
		t.Error("Expected forward held shortly after the press")
	}
	if k.Snapshot(t0.Add(holdDecay), 0).Forward {
		t.Error("Expected forward released after the hold decay")
	}

	k.Handle(key('D'), t0)
	s := k.Snapshot(t0, 0)
	if !s.Right || !s.Run {
		t.Errorf("Expected capital D to run right, got %+v", s)
	}

	k.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), t0)
	if s := k.Snapshot(t0, 12); s.MouseDX != -12 {
		t.Errorf("Expected look left as -12 pixels, got %f", s.MouseDX)
	}

	if k.Handle(key('z'), t0) {
		t.Error("z is not a control")
	}
	k.Reset()
	if s := k.Snapshot(t0, 1); s.Forward || s.MouseDX != 0 {
		t.Error("Expected nothing held after Reset")
	}
}

func TestProjection(t *testing.T) {
	p := Projection{CX: 10, CZ: -5, Scale: 2, W: 80, H: 22}

	col, row, ok := p.Cell(10, -5)
	if !ok || col != 40 || row != 11 {
		t.Errorf("Expected centre cell (40, 11), got (%d, %d)", col, row)
	}
	// One column is Scale units of X; one row is Scale*2 units of Z.
	if c, r, _ := p.Cell(12.5, -5+4.5); c != 41 || r != 12 {
		t.Errorf("Expected (41, 12), got (%d, %d)", c, r)
	}
	if _, _, ok := p.Cell(1000, 0); ok {
		t.Error("Expected far point off screen")
	}

	x, z := p.World(40, 11)
	if c, r, _ := p.Cell(x, z); c != 40 || r != 11 {
		t.Errorf("Expected World to land back in (40, 11), got (%d, %d)", c, r)
	}
}

func TestFrameDrawsMap(t *testing.T) {
	app, screen := newApp(t)
	now := time.Unix(0, 0)
	for i := 0; i < 90; i++ {
		now = now.Add(tickInterval)
		app.Frame(float32(tickInterval.Seconds()), now)
	}

	if r, _, _, _ := screen.GetContent(40, 12); r != glyphPlayer {
		t.Errorf("Expected player at the centre, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(20, 5); r != glyphBelow {
		t.Errorf("Expected floor around the player, got %q", r)
	}
	// The spike is 20 units west: about 7 columns at the default scale.
	row := rowText(screen, 12)
	if !strings.ContainsRune(row, glyphHazard) {
		t.Errorf("Expected the spike on the player's row, got %q", row)
	}
	if top := rowText(screen, 0); !strings.Contains(top, "[ ]") {
		t.Errorf("Expected the task list on the status line, got %q", top)
	}
	if bottom := rowText(screen, 23); !strings.Contains(bottom, "wasd") {
		t.Errorf("Expected help on the bottom line, got %q", bottom)
	}
}

func TestWalkingMovesPlayer(t *testing.T) {
	app, _ := newApp(t)
	now := time.Unix(0, 0)
	dt := float32(tickInterval.Seconds())

	for i := 0; i < 60; i++ {
		now = now.Add(tickInterval)
		app.Frame(dt, now)
	}
	startZ := app.Session.Player.Position.Z

	for i := 0; i < 60; i++ {
		now = now.Add(tickInterval)
		app.HandleEvent(key('w'), now)
		app.Frame(dt, now)
	}
	if z := app.Session.Player.Position.Z; z >= startZ-1 {
		t.Errorf("Expected the player to walk toward -Z, from %f got %f", startZ, z)
	}
}

func TestLookKeysTurnCamera(t *testing.T) {
	app, _ := newApp(t)
	now := time.Unix(0, 0)
	yaw := app.Session.Camera.Yaw

	now = now.Add(tickInterval)
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), now)
	app.Frame(0.5, now)

	// Frames are capped at MaxTimeStep, so half a second turns 12 degrees.
	if got := app.Session.Camera.Yaw - yaw; got < 11.9 || got > 12.1 {
		t.Errorf("Expected a 12 degree turn, got %f", got)
	}
}

func TestQuitAndZoom(t *testing.T) {
	app, _ := newApp(t)
	now := time.Now()

	app.HandleEvent(key('+'), now)
	if app.scale != defaultScale/2 {
		t.Errorf("Expected zoom in to halve the scale, got %f", app.scale)
	}
	for i := 0; i < 20; i++ {
		app.HandleEvent(key('-'), now)
	}
	if app.scale != maxScale {
		t.Errorf("Expected scale clamped to %v, got %f", maxScale, app.scale)
	}

	if !app.HandleEvent(key('w'), now) {
		t.Error("w should not quit")
	}
	if app.HandleEvent(key('q'), now) {
		t.Error("q should quit")
	}
	if app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), now) {
		t.Error("Escape should quit")
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		yaw  float32
		want rune
	}{
		{0, '>'},
		{90, 'v'},
		{180, '<'},
		{-90, '^'},
		{270, '^'},
		{-135, '\\'},
		{-45, '/'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.yaw); got != tt.want {
			t.Errorf("headingGlyph(%v): expected %q, got %q", tt.yaw, tt.want, got)
		}
	}
}

type failingRecorder struct{ calls int }

func (r *failingRecorder) Record(float32, input.Snapshot) error {
	r.calls++
	return errors.New("disk full")
}

func TestRestartKeyIsRecorded(t *testing.T) {
	app, _ := newApp(t)
	var got []input.Snapshot
	app.Recorder = recorderFunc(func(_ float32, in input.Snapshot) error {
		got = append(got, in)
		return nil
	})

	now := time.Unix(0, 0)
	dt := float32(tickInterval.Seconds())
	for i := 0; i < 30; i++ {
		now = now.Add(tickInterval)
		app.HandleEvent(key('w'), now)
		app.Frame(dt, now)
	}

	now = now.Add(tickInterval)
	app.HandleEvent(key('R'), now)
	app.Frame(dt, now)

	if app.Session.Stats.Frames != 0 {
		t.Errorf("Expected R to restart the session, got %d frames", app.Session.Stats.Frames)
	}
	if last := got[len(got)-1]; !last.Restart {
		t.Errorf("Expected the restart in the recorded input, got %+v", last)
	}
}

type recorderFunc func(dt float32, in input.Snapshot) error

func (f recorderFunc) Record(dt float32, in input.Snapshot) error { return f(dt, in) }

func TestRecorderErrorIsLogged(t *testing.T) {
	l, err := level.Parse([]byte(arena))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	s := game.NewSession(l, game.Options{Logger: log.New(&buf, "", 0)})
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)

	app := New(screen, s)
	rec := &failingRecorder{}
	app.Recorder = rec
	now := time.Unix(0, 0)
	for i := 0; i < 3; i++ {
		now = now.Add(tickInterval)
		app.Frame(float32(tickInterval.Seconds()), now)
	}

	if rec.calls != 1 || app.Recorder != nil {
		t.Errorf("Expected recording to stop after the first error, got %d calls", rec.calls)
	}
	if !strings.Contains(buf.String(), "Replay: recording stopped: disk full") {
		t.Errorf("Expected the error in the log, got %q", buf.String())
	}
}
