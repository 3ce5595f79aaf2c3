package components

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func approx(a, b float32) bool {
	return absf(a-b) < 1e-3
}

func TestJumpTrajectory(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	if !c.Jump() {
		t.Fatal("Expected jump from the ground to succeed")
	}
	if c.Grounded {
		t.Error("Jump should leave the ground")
	}

	// 1/16 s keeps every step exact in float32.
	const dt = 0.0625
	for k := 1; k <= 20; k++ {
		delta := c.Tick(dt)
		want := 35 - 1.875*float32(k)
		if c.Velocity.Y != want {
			t.Fatalf("Step %d: expected vy %v, got %v", k, want, c.Velocity.Y)
		}
		if delta.Y != want*dt {
			t.Fatalf("Step %d: expected dy %v, got %v", k, want*dt, delta.Y)
		}
	}
}

func TestJumpIgnoredWhileAirborne(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Jump()
	c.Tick(0.05)
	vy := c.Velocity.Y

	if c.Jump() {
		t.Error("Second jump in the air should be rejected")
	}
	if c.Velocity.Y != vy {
		t.Errorf("Airborne jump changed vy from %v to %v", vy, c.Velocity.Y)
	}
}

func TestTickClampsTimeStep(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Grounded = false

	delta := c.Tick(1.0)
	if !approx(c.Velocity.Y, -3) {
		t.Errorf("Expected vy -3 after a clamped step, got %v", c.Velocity.Y)
	}
	if !approx(delta.Y, -0.3) {
		t.Errorf("Expected dy -0.3, got %v", delta.Y)
	}
}

func TestTerminalFall(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Grounded = false

	for i := 0; i < 100; i++ {
		c.Tick(0.1)
	}
	if c.Velocity.Y != -50 {
		t.Errorf("Expected terminal velocity -50, got %v", c.Velocity.Y)
	}
}

func TestGroundedDrift(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Velocity.Y = -7
	c.Tick(0.016)
	if c.Velocity.Y != groundedDrift {
		t.Errorf("Expected grounded vy %v, got %v", groundedDrift, c.Velocity.Y)
	}

	c.Velocity.Y = 0
	c.Tick(0.016)
	if c.Velocity.Y != 0 {
		t.Errorf("Grounded character at rest should stay at 0, got %v", c.Velocity.Y)
	}
}

func TestApplyMovementInput(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Velocity.Y = 4

	c.ApplyMovementInput(rl.Vector3{X: 3, Y: 100, Z: 4}, false)
	if !approx(c.Velocity.X, 18) || !approx(c.Velocity.Z, 24) {
		t.Errorf("Expected walk velocity (18, 24), got (%v, %v)", c.Velocity.X, c.Velocity.Z)
	}
	if c.Velocity.Y != 4 {
		t.Errorf("Movement input changed vy to %v", c.Velocity.Y)
	}

	c.ApplyMovementInput(rl.Vector3{X: -1}, true)
	if !approx(c.Velocity.X, -60) || c.Velocity.Z != 0 {
		t.Errorf("Expected run velocity (-60, 0), got (%v, %v)", c.Velocity.X, c.Velocity.Z)
	}

	c.ApplyMovementInput(rl.Vector3{X: 1e-5, Y: 9}, true)
	if c.Velocity.X != 0 || c.Velocity.Z != 0 {
		t.Errorf("Expected stop on negligible input, got (%v, %v)", c.Velocity.X, c.Velocity.Z)
	}
}

func TestGroundAndCeilingContacts(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Jump()

	c.OnGroundContact(0)
	if c.Grounded {
		t.Error("Rising character should not be grounded by a floor contact")
	}

	c.OnCeilingContact()
	if c.Velocity.Y != 0 {
		t.Errorf("Ceiling should stop upward motion, got vy %v", c.Velocity.Y)
	}

	c.Velocity.Y = -12
	c.OnCeilingContact()
	if c.Velocity.Y != -12 {
		t.Errorf("Ceiling should not affect a fall, got vy %v", c.Velocity.Y)
	}

	c.OnGroundContact(0)
	if !c.Grounded || c.Velocity.Y != 0 {
		t.Errorf("Expected grounded at rest, got grounded=%v vy=%v", c.Grounded, c.Velocity.Y)
	}
}

func TestLandedTransition(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Jump()

	c.BeginFrame()
	c.Velocity.Y = -1
	c.OnGroundContact(0)
	if !c.Landed() {
		t.Error("Expected a landing")
	}

	c.BeginFrame()
	if c.Landed() {
		t.Error("Landing should only be reported once")
	}
}

func TestBounceAndReset(t *testing.T) {
	c := NewCharacterController(DefaultTuning())
	c.Bounce(10)
	if c.Grounded || c.Velocity.Y != 10 {
		t.Errorf("Expected airborne with vy 10, got grounded=%v vy=%v", c.Grounded, c.Velocity.Y)
	}

	c.Velocity.X = 5
	c.Reset()
	if c.Velocity != (rl.Vector3{}) || !c.Grounded || !c.WasGrounded {
		t.Errorf("Reset left state %+v", c)
	}
}
