package game

import (
	"lostnaut/internal/components"
	"lostnaut/internal/input"
	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Probe depths used to keep ground contact while sliding along a wall
	// and while walking off tiny steps.
	wallGroundProbe = 0.2
	edgeGroundProbe = 0.3

	// Vertical speed at or below which a grounded player counts as resting.
	restingSpeed = 0.1

	stompBounce = 10.0
)

// Player is the first-person character. Position is the eye point; the feet
// are EyeHeight below it.
type Player struct {
	Position   rl.Vector3
	Spawn      rl.Vector3
	EyeHeight  float32
	Controller *components.CharacterController
}

func NewPlayer(spawn rl.Vector3, eyeHeight float32, t components.Tuning) *Player {
	return &Player{
		Position:   spawn,
		Spawn:      spawn,
		EyeHeight:  eyeHeight,
		Controller: components.NewCharacterController(t),
	}
}

func (p *Player) Feet() rl.Vector3 {
	return rl.Vector3{X: p.Position.X, Y: p.Position.Y - p.EyeHeight, Z: p.Position.Z}
}

// Respawn puts the player back at spawn, at rest.
func (p *Player) Respawn() {
	p.Position = p.Spawn
	p.Controller.Reset()
}

// walkDirection turns the held walk keys into a world direction on the
// camera's horizontal plane.
func walkDirection(in input.Snapshot, forward, right rl.Vector3) rl.Vector3 {
	f, s := in.Axes()
	return rl.Vector3Add(rl.Vector3Scale(forward, f), rl.Vector3Scale(right, s))
}

// move integrates one step and resolves it against the level. It returns the
// hazard contact when the step touched one; the position is then left
// unchanged so the caller can respawn.
func (p *Player) move(dt float32, r *physics.Resolver) (physics.Contact, bool) {
	c := p.Controller
	c.BeginFrame()

	proposed := rl.Vector3Add(p.Position, c.Tick(dt))
	contact, hit := r.ResolveAll(&proposed, p.EyeHeight)

	onGround := false
	if hit {
		if contact.Hazard() {
			return contact, true
		}
		switch contact.Face {
		case physics.FaceTop:
			c.OnGroundContact(proposed.Y)
			onGround = true
		case physics.FaceBottom:
			c.OnCeilingContact()
		default:
			// Wall contact must not cost ground contact.
			onGround = p.groundWithin(r, proposed, wallGroundProbe)
		}
	} else if c.Grounded && c.Velocity.Y <= restingSpeed {
		onGround = p.groundWithin(r, proposed, edgeGroundProbe)
	}

	if onGround && contact.Face != physics.FaceTop {
		c.Grounded = true
	}
	if !onGround {
		c.Grounded = false
	}

	p.Position = proposed
	return contact, false
}

// groundWithin reports whether a floor lies within depth below the eye
// point at.
func (p *Player) groundWithin(r *physics.Resolver, at rl.Vector3, depth float32) bool {
	at.Y -= depth
	return r.WouldResolve(at, p.EyeHeight).Face == physics.FaceTop
}
