package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside the box, faces included.
func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// NearXZ is the cheap broad-phase: p is within slop of the box footprint.
func (a AABB) NearXZ(p rl.Vector3, slop float32) bool {
	return p.X >= a.Min.X-slop && p.X <= a.Max.X+slop &&
		p.Z >= a.Min.Z-slop && p.Z <= a.Max.Z+slop
}

// Degenerate reports boxes that cannot produce a meaningful push-out.
// A zero Y extent is allowed (thin floors); zero or inverted X/Z is not.
func (a AABB) Degenerate() bool {
	return a.Max.X <= a.Min.X || a.Max.Z <= a.Min.Z || a.Max.Y < a.Min.Y
}

// Corners returns the 8 corners, bottom face first.
func (a AABB) Corners() [8]rl.Vector3 {
	return [8]rl.Vector3{
		{X: a.Min.X, Y: a.Min.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Min.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Min.Y, Z: a.Max.Z},
		{X: a.Min.X, Y: a.Min.Y, Z: a.Max.Z},
		{X: a.Min.X, Y: a.Max.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Max.Y, Z: a.Min.Z},
		{X: a.Max.X, Y: a.Max.Y, Z: a.Max.Z},
		{X: a.Min.X, Y: a.Max.Y, Z: a.Max.Z},
	}
}

// Transform returns the axis-aligned bounds of the box after m is applied.
func (a AABB) Transform(m rl.Matrix) AABB {
	corners := a.Corners()
	first := rl.Vector3Transform(corners[0], m)
	out := AABB{Min: first, Max: first}
	for _, c := range corners[1:] {
		w := rl.Vector3Transform(c, m)
		out.Min = vmin(out.Min, w)
		out.Max = vmax(out.Max, w)
	}
	return out
}
