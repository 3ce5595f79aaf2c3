package components

import (
	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Prober is the slice of the resolver a PatrolAgent needs.
type Prober interface {
	ResolveAll(point *rl.Vector3, eyeHeight float32) (physics.Contact, bool)
	WouldResolve(point rl.Vector3, eyeHeight float32) physics.Contact
}

const (
	agentMoveSpeed = 15.0
	agentGravity   = 30.0
	agentSize      = 10.0

	// Cliff probe: head 3 above the floor and 3 ahead, feet 2 below the floor.
	cliffLookAhead = 3.0
	cliffProbeRise = 3.0
	cliffProbeEye  = 5.0

	// Extra vertical reach above the agent's head for the player overlap
	// test.
	overlapHeadroom = 2.0
)

// Overlap classifies contact between a patrol agent and the player.
type Overlap int

const (
	OverlapNone Overlap = iota
	OverlapStomp
	OverlapHit
)

func (o Overlap) String() string {
	switch o {
	case OverlapStomp:
		return "stomp"
	case OverlapHit:
		return "hit"
	default:
		return "none"
	}
}

// PatrolAgent walks back and forth along X within PatrolRange of its spawn.
// Walls and cliff edges turn it around. Position is at the agent's feet.
type PatrolAgent struct {
	Position    rl.Vector3
	Spawn       rl.Vector3
	PatrolRange float32
	Direction   float32 // +1 or -1 along X
	VerticalVel float32
	Dead        bool

	Width, Height, Depth float32
	MoveSpeed            float32
}

func NewPatrolAgent(spawn rl.Vector3, patrolRange float32) *PatrolAgent {
	return &PatrolAgent{
		Position:    spawn,
		Spawn:       spawn,
		PatrolRange: patrolRange,
		Direction:   1,
		Width:       agentSize,
		Height:      agentSize,
		Depth:       agentSize,
		MoveSpeed:   agentMoveSpeed,
	}
}

// Update advances the agent one step against the level. Past the leash the
// agent turns only while still heading away from spawn; it does not flip on
// every frame it spends beyond range.
func (a *PatrolAgent) Update(dt float32, p Prober) {
	if a.Dead {
		return
	}
	if dt > MaxTimeStep {
		dt = MaxTimeStep
	}

	a.VerticalVel -= agentGravity * dt

	next := a.Position
	next.X += a.MoveSpeed * a.Direction * dt
	next.Y += a.VerticalVel * dt

	head := rl.Vector3{X: next.X, Y: next.Y + a.Height, Z: next.Z}
	if c, ok := p.ResolveAll(&head, a.Height); ok {
		next = rl.Vector3{X: head.X, Y: head.Y - a.Height, Z: head.Z}

		switch c.Face {
		case physics.FaceTop:
			a.VerticalVel = 0
			if !a.groundAhead(next, p) {
				a.turn()
			}
		case physics.FaceLeft, physics.FaceRight:
			a.turn()
		}
	}

	// Only turn while heading outward, so an agent shoved past the leash
	// walks back instead of flipping every frame.
	if offset := next.X - a.Spawn.X; absf(offset) > a.PatrolRange && offset*a.Direction > 0 {
		a.turn()
	}

	a.Position = next
}

// groundAhead probes a short way in front of and below feet.
func (a *PatrolAgent) groundAhead(feet rl.Vector3, p Prober) bool {
	probe := rl.Vector3{
		X: feet.X + a.Direction*cliffLookAhead,
		Y: feet.Y + cliffProbeRise,
		Z: feet.Z,
	}
	return p.WouldResolve(probe, cliffProbeEye).Hit()
}

func (a *PatrolAgent) turn() {
	a.Direction = -a.Direction
}

// Yaw is the facing angle in degrees about Y.
func (a *PatrolAgent) Yaw() float32 {
	if a.Direction > 0 {
		return 90
	}
	return -90
}

// Bounds is the agent's box, feet at the bottom face.
func (a *PatrolAgent) Bounds() physics.AABB {
	return physics.AABB{
		Min: rl.Vector3{X: a.Position.X - a.Width/2, Y: a.Position.Y, Z: a.Position.Z - a.Depth/2},
		Max: rl.Vector3{X: a.Position.X + a.Width/2, Y: a.Position.Y + a.Height, Z: a.Position.Z + a.Depth/2},
	}
}

// CheckPlayerOverlap tests the player's eye point against the agent. A
// falling player above mid-height stomps the agent, which dies; any other
// overlap is a hit.
func (a *PatrolAgent) CheckPlayerOverlap(playerPos, playerVel rl.Vector3) Overlap {
	if a.Dead {
		return OverlapNone
	}

	halfW := a.Width / 2
	halfD := a.Depth / 2
	inX := playerPos.X > a.Position.X-halfW && playerPos.X < a.Position.X+halfW
	inZ := playerPos.Z > a.Position.Z-halfD && playerPos.Z < a.Position.Z+halfD
	inY := playerPos.Y > a.Position.Y && playerPos.Y < a.Position.Y+a.Height+overlapHeadroom
	if !inX || !inY || !inZ {
		return OverlapNone
	}

	if playerVel.Y < 0 && playerPos.Y > a.Position.Y+a.Height*0.5 {
		a.Dead = true
		return OverlapStomp
	}
	return OverlapHit
}

// Reset puts the agent back at its spawn, alive.
func (a *PatrolAgent) Reset() {
	a.Position = a.Spawn
	a.Direction = 1
	a.VerticalVel = 0
	a.Dead = false
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
