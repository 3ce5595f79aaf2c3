// Package tui plays the game in a terminal: a top-down map drawn with tcell,
// driven by the same Session as the raylib window.
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"lostnaut/internal/components"
	"lostnaut/internal/game"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

// lookRate is how fast the look keys turn the camera, in degrees per second.
const lookRate = 120

type App struct {
	screen  tcell.Screen
	Session *game.Session
	keys    Keys
	scale   float32

	Recorder  game.Recorder
	Publisher game.Publisher

	lastTick time.Time
	quit     bool
}

func New(screen tcell.Screen, s *game.Session) *App {
	return &App{
		screen:  screen,
		Session: s,
		scale:   defaultScale,
	}
}

// HandleEvent applies a terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			a.quit = true
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				a.quit = true
				return false
			case '+', '=':
				a.zoom(0.5)
				return true
			case '-', '_':
				a.zoom(2)
				return true
			}
		}
		a.keys.Handle(ev, now)

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) zoom(f float32) {
	a.scale *= f
	if a.scale < minScale {
		a.scale = minScale
	}
	if a.scale > maxScale {
		a.scale = maxScale
	}
}

// Frame steps the session by dt with the keys held at now, then redraws.
func (a *App) Frame(dt float32, now time.Time) {
	if dt > components.MaxTimeStep {
		dt = components.MaxTimeStep
	}
	look := lookRate * dt / a.Session.Camera.LookSpeed
	in := a.keys.Snapshot(now, look)

	if a.Recorder != nil {
		if err := a.Recorder.Record(dt, in); err != nil {
			a.Session.Logger().Printf("Replay: recording stopped: %v", err)
			a.Recorder = nil
		}
	}
	a.Session.Step(dt, in)
	if a.Publisher != nil {
		a.Publisher.Publish(a.Session.State())
	}
	draw(a.screen, a.Session, a.scale)
}

// Run polls events and ticks frames until quit or ctx is done.
func (a *App) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.lastTick = time.Now()
	for !a.quit {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !a.HandleEvent(ev, time.Now()) {
				return
			}
		case now := <-ticker.C:
			dt := float32(now.Sub(a.lastTick).Seconds())
			a.lastTick = now
			a.Frame(dt, now)
		}
	}
}
