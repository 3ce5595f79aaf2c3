// Package input turns device state into per-frame snapshots the game can
// replay. Raylib, the terminal driver and recorded replays all produce the
// same Snapshot.
package input

// Snapshot is the held state of every game control for one frame.
type Snapshot struct {
	Forward      bool    `json:"f,omitempty"`
	Back         bool    `json:"b,omitempty"`
	Left         bool    `json:"l,omitempty"`
	Right        bool    `json:"r,omitempty"`
	Run          bool    `json:"run,omitempty"`
	Jump         bool    `json:"jump,omitempty"`
	Interact     bool    `json:"use,omitempty"`
	Reset        bool    `json:"reset,omitempty"`
	ToggleCursor bool    `json:"cursor,omitempty"`
	Restart      bool    `json:"restart,omitempty"`
	MouseDX      float32 `json:"dx,omitempty"`
	MouseDY      float32 `json:"dy,omitempty"`
}

// Axes returns the walk axes in [-1, 1]: forward is positive, right is
// positive.
func (s Snapshot) Axes() (forward, strafe float32) {
	if s.Forward {
		forward++
	}
	if s.Back {
		forward--
	}
	if s.Right {
		strafe++
	}
	if s.Left {
		strafe--
	}
	return
}

// Pressed holds the controls that went down this frame.
type Pressed struct {
	Jump         bool
	Interact     bool
	Reset        bool
	ToggleCursor bool
	Restart      bool
}

func (p Pressed) Any() bool {
	return p.Jump || p.Interact || p.Reset || p.ToggleCursor || p.Restart
}

// Edges turns held state into press events. The zero value treats every
// control as released.
type Edges struct {
	prev Snapshot
}

// Update records s and returns the controls that were up last frame and are
// down now.
func (e *Edges) Update(s Snapshot) Pressed {
	p := Pressed{
		Jump:         s.Jump && !e.prev.Jump,
		Interact:     s.Interact && !e.prev.Interact,
		Reset:        s.Reset && !e.prev.Reset,
		ToggleCursor: s.ToggleCursor && !e.prev.ToggleCursor,
		Restart:      s.Restart && !e.prev.Restart,
	}
	e.prev = s
	return p
}

func (e *Edges) Reset() {
	e.prev = Snapshot{}
}
