package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type RaycastHit struct {
	Volume   Volume
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Raycast returns the closest enabled volume hit by the ray, tested against
// world bounds. Used for the drop shadow and ground readout, so oriented
// volumes are approximated by their world AABB.
func (r *Resolver) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if rl.Vector3Length(direction) == 0 {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	var closest RaycastHit
	closest.Distance = maxDistance
	hit := false

	for _, v := range r.volumes {
		if v == nil || !v.CollisionEnabled() {
			continue
		}
		if h, ok := raycastAABB(origin, direction, v.WorldAABB(), maxDistance); ok && h.Distance < closest.Distance {
			closest = h
			closest.Volume = v
			hit = true
		}
	}
	return closest, hit
}

// raycastAABB is the slab test. A ray starting inside the box reports the
// exit point.
func raycastAABB(origin, direction rl.Vector3, box AABB, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	slab := func(o, d, lo, hi float32) bool {
		if d == 0 {
			return o >= lo && o <= hi
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		return tmin <= tmax
	}

	if !slab(origin.X, direction.X, box.Min.X, box.Max.X) ||
		!slab(origin.Y, direction.Y, box.Min.Y, box.Max.Y) ||
		!slab(origin.Z, direction.Z, box.Min.Z, box.Max.Z) {
		return RaycastHit{}, false
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	var normal rl.Vector3
	const epsilon = 0.001
	switch {
	case absf(point.X-box.Min.X) < epsilon:
		normal = rl.Vector3{X: -1}
	case absf(point.X-box.Max.X) < epsilon:
		normal = rl.Vector3{X: 1}
	case absf(point.Y-box.Min.Y) < epsilon:
		normal = rl.Vector3{Y: -1}
	case absf(point.Y-box.Max.Y) < epsilon:
		normal = rl.Vector3{Y: 1}
	case absf(point.Z-box.Min.Z) < epsilon:
		normal = rl.Vector3{Z: -1}
	default:
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// GroundBelow casts straight down from p and returns the height of the first
// surface, if any within maxDrop.
func (r *Resolver) GroundBelow(p rl.Vector3, maxDrop float32) (float32, bool) {
	h, ok := r.Raycast(p, rl.Vector3{Y: -1}, maxDrop)
	if !ok {
		return 0, false
	}
	return h.Point.Y, true
}
