package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"lostnaut/internal/input"
)

// Terminals report key presses and auto-repeats but never releases, so a
// key counts as held for holdDecay after its last report.
const holdDecay = 150 * time.Millisecond

type control int

const (
	ctlForward control = iota
	ctlBack
	ctlLeft
	ctlRight
	ctlRun
	ctlJump
	ctlInteract
	ctlReset
	ctlToggleCursor
	ctlRestart
	ctlLookLeft
	ctlLookRight
	ctlLookUp
	ctlLookDown
	numControls
)

// Keys tracks when each control was last reported.
type Keys struct {
	last [numControls]time.Time
}

func (k *Keys) press(c control, now time.Time) {
	k.last[c] = now
}

func (k *Keys) held(c control, now time.Time) bool {
	t := k.last[c]
	return !t.IsZero() && now.Sub(t) < holdDecay
}

// Handle records a key event. It reports whether the key is a game control.
func (k *Keys) Handle(ev *tcell.EventKey, now time.Time) bool {
	controls := keyControls(ev)
	for _, c := range controls {
		k.press(c, now)
	}
	return len(controls) > 0
}

// Snapshot is the held state at now. Look keys become a mouse delta of
// lookPixels per frame.
func (k *Keys) Snapshot(now time.Time, lookPixels float32) input.Snapshot {
	s := input.Snapshot{
		Forward:      k.held(ctlForward, now),
		Back:         k.held(ctlBack, now),
		Left:         k.held(ctlLeft, now),
		Right:        k.held(ctlRight, now),
		Run:          k.held(ctlRun, now),
		Jump:         k.held(ctlJump, now),
		Interact:     k.held(ctlInteract, now),
		Reset:        k.held(ctlReset, now),
		ToggleCursor: k.held(ctlToggleCursor, now),
		Restart:      k.held(ctlRestart, now),
	}
	if k.held(ctlLookLeft, now) {
		s.MouseDX -= lookPixels
	}
	if k.held(ctlLookRight, now) {
		s.MouseDX += lookPixels
	}
	if k.held(ctlLookUp, now) {
		s.MouseDY -= lookPixels
	}
	if k.held(ctlLookDown, now) {
		s.MouseDY += lookPixels
	}
	return s
}

func (k *Keys) Reset() {
	k.last = [numControls]time.Time{}
}

// keyControls maps a key to the controls it drives. Capital WASD runs.
func keyControls(ev *tcell.EventKey) []control {
	switch ev.Key() {
	case tcell.KeyLeft:
		return []control{ctlLookLeft}
	case tcell.KeyRight:
		return []control{ctlLookRight}
	case tcell.KeyUp:
		return []control{ctlLookUp}
	case tcell.KeyDown:
		return []control{ctlLookDown}
	case tcell.KeyTab:
		return []control{ctlToggleCursor}
	case tcell.KeyRune:
	default:
		return nil
	}

	switch ev.Rune() {
	case 'w':
		return []control{ctlForward}
	case 's':
		return []control{ctlBack}
	case 'a':
		return []control{ctlLeft}
	case 'd':
		return []control{ctlRight}
	case 'W':
		return []control{ctlForward, ctlRun}
	case 'S':
		return []control{ctlBack, ctlRun}
	case 'A':
		return []control{ctlLeft, ctlRun}
	case 'D':
		return []control{ctlRight, ctlRun}
	case ' ':
		return []control{ctlJump}
	case 'e', 'E':
		return []control{ctlInteract}
	case 'p', 'P':
		return []control{ctlReset}
	case 'R':
		return []control{ctlRestart}
	case 'j':
		return []control{ctlLookLeft}
	case 'l':
		return []control{ctlLookRight}
	case 'i':
		return []control{ctlLookUp}
	case 'k':
		return []control{ctlLookDown}
	}
	return nil
}
