package world

import (
	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	clipNear = 0.1
	clipFar  = 2000.0
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum builds the culling frustum for camera at the given aspect
// ratio.
func ExtractFrustum(camera rl.Camera3D, aspect float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, clipNear, clipFar)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, clipNear, clipFar)
	}

	return FrustumFromMatrix(rl.MatrixMultiply(view, proj))
}

// FrustumFromMatrix extracts the planes of a combined view-projection
// matrix (Gribb/Hartmann).
func FrustumFromMatrix(vp rl.Matrix) Frustum {
	row := func(sign float32, x, y, z, w float32) Plane {
		return normalizePlane(Plane{
			normal: rl.Vector3{
				X: vp.M3 + sign*x,
				Y: vp.M7 + sign*y,
				Z: vp.M11 + sign*z,
			},
			distance: vp.M15 + sign*w,
		})
	}

	var f Frustum
	f.planes[0] = row(1, vp.M0, vp.M4, vp.M8, vp.M12)   // left
	f.planes[1] = row(-1, vp.M0, vp.M4, vp.M8, vp.M12)  // right
	f.planes[2] = row(1, vp.M1, vp.M5, vp.M9, vp.M13)   // bottom
	f.planes[3] = row(-1, vp.M1, vp.M5, vp.M9, vp.M13)  // top
	f.planes[4] = row(1, vp.M2, vp.M6, vp.M10, vp.M14)  // near
	f.planes[5] = row(-1, vp.M2, vp.M6, vp.M10, vp.M14) // far
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsAABB is conservative: it rejects a box only when all of it lies
// behind one plane.
func (f *Frustum) ContainsAABB(b physics.AABB) bool {
	for i := 0; i < 6; i++ {
		n := f.planes[i].normal
		// The corner furthest along the plane normal.
		p := b.Min
		if n.X >= 0 {
			p.X = b.Max.X
		}
		if n.Y >= 0 {
			p.Y = b.Max.Y
		}
		if n.Z >= 0 {
			p.Z = b.Max.Z
		}
		if rl.Vector3DotProduct(n, p)+f.planes[i].distance < 0 {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}
