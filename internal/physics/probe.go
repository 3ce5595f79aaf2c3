package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// broadPhaseSlop widens the XZ footprint for the early-out test.
const broadPhaseSlop = 1.0

// probeHit is the outcome of resolving one probe against one box, expressed
// in the box's own frame.
type probeHit struct {
	face Face
	// onFace is the probe's contact point moved onto the struck face, before
	// the margin is applied. For Top it is the feet, otherwise the head.
	onFace rl.Vector3
}

// classifyProbe runs the Top, Bottom, Side cascade for a probe whose head and
// feet are already expressed in the same frame as bounds. The caller decides
// how to turn onFace into a final position.
func classifyProbe(bounds AABB, head, feet rl.Vector3) (probeHit, bool) {
	insideX := head.X >= bounds.Min.X && head.X <= bounds.Max.X
	insideZ := head.Z >= bounds.Min.Z && head.Z <= bounds.Max.Z
	if !insideX || !insideZ {
		return probeHit{}, false
	}

	top := bounds.Max.Y
	bottom := bounds.Min.Y

	if feet.Y < top && head.Y > top {
		p := feet
		p.Y = top
		return probeHit{face: FaceTop, onFace: p}, true
	}

	if head.Y > bottom && feet.Y < bottom {
		p := head
		p.Y = bottom
		return probeHit{face: FaceBottom, onFace: p}, true
	}

	if feet.Y < top && head.Y > bottom {
		left := head.X - bounds.Min.X
		right := bounds.Max.X - head.X
		back := head.Z - bounds.Min.Z
		front := bounds.Max.Z - head.Z

		p := head
		shortest := min(left, right, back, front)
		switch shortest {
		case left:
			p.X = bounds.Min.X
			return probeHit{face: FaceLeft, onFace: p}, true
		case right:
			p.X = bounds.Max.X
			return probeHit{face: FaceRight, onFace: p}, true
		case back:
			p.Z = bounds.Min.Z
			return probeHit{face: FaceBack, onFace: p}, true
		default:
			p.Z = bounds.Max.Z
			return probeHit{face: FaceFront, onFace: p}, true
		}
	}

	return probeHit{}, false
}

// resolveAxisAligned pushes point out of a world-space box. It returns the
// face struck, or FaceNone with point untouched.
func resolveAxisAligned(bounds AABB, point *rl.Vector3, eyeHeight, margin float32) Face {
	if bounds.Degenerate() || !bounds.NearXZ(*point, broadPhaseSlop) {
		return FaceNone
	}

	head := *point
	feet := rl.Vector3{X: head.X, Y: head.Y - eyeHeight, Z: head.Z}

	hit, ok := classifyProbe(bounds, head, feet)
	if !ok {
		return FaceNone
	}

	switch hit.face {
	case FaceTop:
		point.Y = bounds.Max.Y + eyeHeight + margin
	case FaceBottom:
		point.Y = bounds.Min.Y - margin
	case FaceLeft:
		point.X = bounds.Min.X - margin
	case FaceRight:
		point.X = bounds.Max.X + margin
	case FaceBack:
		point.Z = bounds.Min.Z - margin
	case FaceFront:
		point.Z = bounds.Max.Z + margin
	}
	return hit.face
}
