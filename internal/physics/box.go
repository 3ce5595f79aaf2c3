package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Box is an axis-aligned volume stored directly in world space.
type Box struct {
	name    string
	bounds  AABB
	enabled bool
}

func NewBox(name string, center, size rl.Vector3) *Box {
	return &Box{name: name, bounds: NewAABBFromCenter(center, size), enabled: true}
}

// NewBoxFromBounds keeps min/max as given. Swapped or flat X/Z extents make
// the box degenerate and it will never resolve.
func NewBoxFromBounds(name string, bounds AABB) *Box {
	return &Box{name: name, bounds: bounds, enabled: true}
}

func (b *Box) Name() string                { return b.name }
func (b *Box) WorldAABB() AABB             { return b.bounds }
func (b *Box) CollisionEnabled() bool      { return b.enabled }
func (b *Box) UsesOrientedCollision() bool { return false }
func (b *Box) ModelTransform() rl.Matrix   { return rl.MatrixIdentity() }
func (b *Box) LocalBounds() AABB           { return b.bounds }
func (b *Box) IsHazard() bool              { return false }

func (b *Box) SetEnabled(enabled bool) { b.enabled = enabled }

// SetCenter moves the box without changing its size.
func (b *Box) SetCenter(center rl.Vector3) {
	b.bounds = NewAABBFromCenter(center, b.bounds.Size())
}

// OrientedBox is a box with its own position, rotation (degrees, applied
// X then Y then Z) and scale. Local bounds are in model space; a unit cube
// scaled by Scale is the usual setup.
type OrientedBox struct {
	name     string
	local    AABB
	position rl.Vector3
	rotation rl.Vector3
	scale    rl.Vector3
	enabled  bool

	model rl.Matrix
	world AABB
}

func NewOrientedBox(name string, local AABB, position, rotation, scale rl.Vector3) *OrientedBox {
	o := &OrientedBox{
		name:     name,
		local:    local,
		position: position,
		rotation: rotation,
		scale:    scale,
		enabled:  true,
	}
	o.rebuild()
	return o
}

// UnitCube is the local bounds of a cube mesh centred on the origin.
func UnitCube() AABB {
	return AABB{Min: rl.Vector3{X: -0.5, Y: -0.5, Z: -0.5}, Max: rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}}
}

func (o *OrientedBox) rebuild() {
	o.model = modelMatrix(o.position, o.rotation, o.scale)
	o.world = o.local.Transform(o.model)
}

func (o *OrientedBox) Name() string                { return o.name }
func (o *OrientedBox) WorldAABB() AABB             { return o.world }
func (o *OrientedBox) CollisionEnabled() bool      { return o.enabled }
func (o *OrientedBox) UsesOrientedCollision() bool { return true }
func (o *OrientedBox) ModelTransform() rl.Matrix   { return o.model }
func (o *OrientedBox) LocalBounds() AABB           { return o.local }
func (o *OrientedBox) IsHazard() bool              { return false }

func (o *OrientedBox) Position() rl.Vector3 { return o.position }
func (o *OrientedBox) Rotation() rl.Vector3 { return o.rotation }
func (o *OrientedBox) Scale() rl.Vector3    { return o.scale }

func (o *OrientedBox) SetEnabled(enabled bool) { o.enabled = enabled }

// SetPosition moves the box and refreshes its cached transform.
func (o *OrientedBox) SetPosition(position rl.Vector3) {
	o.position = position
	o.rebuild()
}

// Hazard wraps a volume so the frame driver treats contact with it as fatal.
// Resolution is unchanged.
type Hazard struct {
	Volume
}

func NewHazard(v Volume) *Hazard {
	return &Hazard{Volume: v}
}

func (h *Hazard) IsHazard() bool { return true }

// Reposition moves a Box or OrientedBox, looking through hazard wrappers.
// It reports false for volumes that cannot be moved.
func Reposition(v Volume, p rl.Vector3) bool {
	switch t := v.(type) {
	case *Box:
		t.SetCenter(p)
	case *OrientedBox:
		t.SetPosition(p)
	case *Hazard:
		return Reposition(t.Volume, p)
	default:
		return false
	}
	return true
}

// SetCollisionEnabled toggles a Box or OrientedBox, looking through hazard
// wrappers.
func SetCollisionEnabled(v Volume, enabled bool) bool {
	switch t := v.(type) {
	case *Box:
		t.SetEnabled(enabled)
	case *OrientedBox:
		t.SetEnabled(enabled)
	case *Hazard:
		return SetCollisionEnabled(t.Volume, enabled)
	default:
		return false
	}
	return true
}
