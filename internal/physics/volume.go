package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Volume is a static piece of level geometry the Resolver can push a probe
// out of. Implementations are owned by whoever builds the level; the Resolver
// only keeps references.
type Volume interface {
	Name() string
	WorldAABB() AABB
	CollisionEnabled() bool

	// UsesOrientedCollision selects resolution in the volume's local frame.
	// ModelTransform and LocalBounds are only consulted when it returns true.
	UsesOrientedCollision() bool
	ModelTransform() rl.Matrix
	LocalBounds() AABB

	// IsHazard is read by the frame driver, never by the Resolver.
	IsHazard() bool
}

// Face identifies which side of a volume a probe was pushed out of.
type Face int

const (
	FaceNone Face = iota
	FaceTop
	FaceBottom
	FaceLeft
	FaceRight
	FaceFront
	FaceBack
)

func (f Face) String() string {
	switch f {
	case FaceTop:
		return "TOP"
	case FaceBottom:
		return "BOTTOM"
	case FaceLeft:
		return "LEFT"
	case FaceRight:
		return "RIGHT"
	case FaceFront:
		return "FRONT"
	case FaceBack:
		return "BACK"
	default:
		return "NONE"
	}
}

// Side reports the four vertical faces.
func (f Face) Side() bool {
	return f == FaceLeft || f == FaceRight || f == FaceFront || f == FaceBack
}

// Contact is the outcome of one resolution. Face is FaceNone exactly when
// Volume is nil.
type Contact struct {
	Volume Volume
	Face   Face
	Point  rl.Vector3
}

func (c Contact) Hit() bool {
	return c.Volume != nil
}

// Hazard reports whether the struck volume is a hazard.
func (c Contact) Hazard() bool {
	return c.Volume != nil && c.Volume.IsHazard()
}
