package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// orientedSlop is added to the local bounding-sphere radius in the
// oriented broad-phase.
const orientedSlop = 2.0

// orientedFrame caches a volume's model transform and its inverse for one
// resolution.
type orientedFrame struct {
	model   rl.Matrix
	inverse rl.Matrix
}

// newOrientedFrame returns false when model cannot be inverted.
func newOrientedFrame(model rl.Matrix) (orientedFrame, bool) {
	if absf(rl.MatrixDeterminant(model)) < singularDeterminant {
		return orientedFrame{}, false
	}
	return orientedFrame{model: model, inverse: rl.MatrixInvert(model)}, true
}

func (f orientedFrame) toLocal(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(p, f.inverse)
}

func (f orientedFrame) toWorld(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Transform(p, f.model)
}

// worldNormal maps a local face normal into world space. Normals go through
// the inverse transpose, so non-uniform scale keeps them perpendicular to
// the face.
func (f orientedFrame) worldNormal(face Face) rl.Vector3 {
	inv := f.inverse
	var n rl.Vector3
	switch face {
	case FaceTop:
		n = rl.Vector3{X: inv.M1, Y: inv.M5, Z: inv.M9}
	case FaceBottom:
		n = rl.Vector3{X: -inv.M1, Y: -inv.M5, Z: -inv.M9}
	case FaceRight:
		n = rl.Vector3{X: inv.M0, Y: inv.M4, Z: inv.M8}
	case FaceLeft:
		n = rl.Vector3{X: -inv.M0, Y: -inv.M4, Z: -inv.M8}
	case FaceFront:
		n = rl.Vector3{X: inv.M2, Y: inv.M6, Z: inv.M10}
	case FaceBack:
		n = rl.Vector3{X: -inv.M2, Y: -inv.M6, Z: -inv.M10}
	}
	return rl.Vector3Normalize(n)
}

// nearSegment is the oriented broad-phase: the local probe segment must come
// within the bounding sphere of bounds, plus slop.
func nearSegment(bounds AABB, feet, head rl.Vector3) bool {
	center := bounds.Center()
	radius := rl.Vector3Length(bounds.Size())*0.5 + orientedSlop

	d := rl.Vector3Subtract(head, feet)
	var t float32
	if dd := rl.Vector3DotProduct(d, d); dd > 0 {
		t = clampf(rl.Vector3DotProduct(rl.Vector3Subtract(center, feet), d)/dd, 0, 1)
	}
	closest := rl.Vector3Add(feet, rl.Vector3Scale(d, t))
	return rl.Vector3Distance(closest, center) <= radius
}

// resolveOriented pushes point out of a box given in local space. Eye height
// and margin stay in world units: a Top hit puts the world feet on the face
// and rebuilds the head straight above them, other hits move the head along
// the world-space face normal.
func resolveOriented(local AABB, model rl.Matrix, point *rl.Vector3, eyeHeight, margin float32) Face {
	if local.Degenerate() {
		return FaceNone
	}
	frame, ok := newOrientedFrame(model)
	if !ok {
		return FaceNone
	}

	worldFeet := rl.Vector3{X: point.X, Y: point.Y - eyeHeight, Z: point.Z}
	head := frame.toLocal(*point)
	feet := frame.toLocal(worldFeet)

	if !nearSegment(local, feet, head) {
		return FaceNone
	}

	hit, ok := classifyProbe(local, head, feet)
	if !ok {
		return FaceNone
	}

	onFace := frame.toWorld(hit.onFace)
	if hit.face == FaceTop {
		*point = rl.Vector3{X: onFace.X, Y: onFace.Y + eyeHeight + margin, Z: onFace.Z}
		return hit.face
	}
	*point = rl.Vector3Add(onFace, rl.Vector3Scale(frame.worldNormal(hit.face), margin))
	return hit.face
}
