package input

import rl "github.com/gen2brain/raylib-go/raylib"

// FromRaylib polls the window's keyboard and mouse. Mouse motion is only
// reported while the cursor is captured.
func FromRaylib() Snapshot {
	s := Snapshot{
		Forward:      rl.IsKeyDown(rl.KeyW),
		Back:         rl.IsKeyDown(rl.KeyS),
		Left:         rl.IsKeyDown(rl.KeyA),
		Right:        rl.IsKeyDown(rl.KeyD),
		Run:          rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift),
		Jump:         rl.IsKeyDown(rl.KeySpace),
		Interact:     rl.IsKeyDown(rl.KeyE),
		Reset:        rl.IsKeyDown(rl.KeyP),
		ToggleCursor: rl.IsKeyDown(rl.KeyTab),
		Restart:      rl.IsKeyDown(rl.KeyF5),
	}
	if rl.IsCursorHidden() {
		d := rl.GetMouseDelta()
		s.MouseDX = d.X
		s.MouseDY = d.Y
	}
	return s
}
