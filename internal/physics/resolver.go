package physics

import (
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultMargin is the gap left between a resolved probe and the face it hit.
const DefaultMargin = 0.1

// Policy decides what ResolveAll does when several volumes penetrate the
// probe in the same call.
type Policy int

const (
	// CompoundAll resolves against every penetrating volume in registration
	// order, each push-out starting from the previous result. The last hit
	// is reported.
	CompoundAll Policy = iota
	// FirstHit stops at the first volume that resolves.
	FirstHit
)

func (p Policy) String() string {
	if p == FirstHit {
		return "first-hit"
	}
	return "compound"
}

// ParsePolicy accepts the names Policy.String returns. Anything else is
// CompoundAll and ok is false.
func ParsePolicy(s string) (p Policy, ok bool) {
	switch s {
	case "first-hit":
		return FirstHit, true
	case "compound", "":
		return CompoundAll, true
	default:
		return CompoundAll, false
	}
}

// Resolver keeps a registry of static volumes and pushes vertical probes
// (a head point plus an eye height) out of them. It does not own the
// volumes. Not safe for concurrent use.
type Resolver struct {
	volumes []Volume
	margin  float32
	policy  Policy
	debug   bool
	logger  *log.Logger
	last    Contact
}

func NewResolver() *Resolver {
	return &Resolver{
		margin: DefaultMargin,
		logger: log.Default(),
	}
}

// Register appends v unless it is nil or already registered.
func (r *Resolver) Register(v Volume) {
	if v == nil || r.indexOf(v) >= 0 {
		return
	}
	r.volumes = append(r.volumes, v)
}

// Unregister removes v if present. Relative order of the rest is kept.
func (r *Resolver) Unregister(v Volume) {
	if i := r.indexOf(v); i >= 0 {
		r.volumes = append(r.volumes[:i], r.volumes[i+1:]...)
	}
}

func (r *Resolver) Clear() {
	r.volumes = nil
	r.last = Contact{}
}

// Volumes returns a copy of the registry in registration order.
func (r *Resolver) Volumes() []Volume {
	out := make([]Volume, len(r.volumes))
	copy(out, r.volumes)
	return out
}

func (r *Resolver) Len() int { return len(r.volumes) }

func (r *Resolver) indexOf(v Volume) int {
	for i, existing := range r.volumes {
		if existing == v {
			return i
		}
	}
	return -1
}

func (r *Resolver) Margin() float32          { return r.margin }
func (r *Resolver) SetMargin(margin float32) { r.margin = margin }
func (r *Resolver) Policy() Policy           { return r.policy }
func (r *Resolver) SetPolicy(p Policy)       { r.policy = p }
func (r *Resolver) DebugOutput() bool        { return r.debug }
func (r *Resolver) SetDebugOutput(on bool)   { r.debug = on }

// SetLogger redirects debug output. A nil logger restores the default.
func (r *Resolver) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	r.logger = l
}

// LastContact is the contact retained by the most recent ResolveAll.
func (r *Resolver) LastContact() Contact { return r.last }

// ResolveAll resolves point against every enabled volume and mutates it in
// place. It reports the last successful contact and whether any volume
// resolved.
func (r *Resolver) ResolveAll(point *rl.Vector3, eyeHeight float32) (Contact, bool) {
	r.last = Contact{}
	if point == nil {
		return r.last, false
	}

	for _, v := range r.volumes {
		face := r.resolveVolume(v, point, eyeHeight)
		if face == FaceNone {
			continue
		}
		r.last = Contact{Volume: v, Face: face, Point: *point}
		if r.debug {
			r.logContact(v, face, *point, eyeHeight)
		}
		if r.policy == FirstHit {
			break
		}
	}
	return r.last, r.last.Hit()
}

// Resolve runs the single-volume algorithm against v. The registry and the
// last contact are not consulted.
func (r *Resolver) Resolve(v Volume, point *rl.Vector3, eyeHeight float32) bool {
	if point == nil {
		return false
	}
	return r.resolveVolume(v, point, eyeHeight) != FaceNone
}

// WouldResolve answers what ResolveAll would report for point without
// moving it and without touching LastContact. Hits are logged as queries
// when debug output is on.
func (r *Resolver) WouldResolve(point rl.Vector3, eyeHeight float32) Contact {
	var c Contact
	for _, v := range r.volumes {
		face := r.resolveVolume(v, &point, eyeHeight)
		if face == FaceNone {
			continue
		}
		c = Contact{Volume: v, Face: face, Point: point}
		if r.debug {
			r.logger.Printf("Physics: query hit %q on %s face at (%.2f, %.2f, %.2f)",
				v.Name(), face, point.X, point.Y, point.Z)
		}
		if r.policy == FirstHit {
			break
		}
	}
	return c
}

// IsPointInside tests p against the world bounds of v, faces included.
func (r *Resolver) IsPointInside(v Volume, p rl.Vector3) bool {
	if v == nil {
		return false
	}
	return v.WorldAABB().Contains(p)
}

func (r *Resolver) resolveVolume(v Volume, point *rl.Vector3, eyeHeight float32) Face {
	if v == nil || !v.CollisionEnabled() {
		return FaceNone
	}
	if v.UsesOrientedCollision() {
		return resolveOriented(v.LocalBounds(), v.ModelTransform(), point, eyeHeight, r.margin)
	}
	return resolveAxisAligned(v.WorldAABB(), point, eyeHeight, r.margin)
}

func (r *Resolver) logContact(v Volume, face Face, p rl.Vector3, eyeHeight float32) {
	r.logger.Printf("Physics: collision with %q on %s face", v.Name(), face)
	r.logger.Printf("Physics:   probe (%.2f, %.2f, %.2f), feet y %.2f", p.X, p.Y, p.Z, p.Y-eyeHeight)
	if v.UsesOrientedCollision() {
		lb := v.LocalBounds()
		r.logger.Printf("Physics:   local min (%.2f, %.2f, %.2f) max (%.2f, %.2f, %.2f)",
			lb.Min.X, lb.Min.Y, lb.Min.Z, lb.Max.X, lb.Max.Y, lb.Max.Z)
	}
	wb := v.WorldAABB()
	r.logger.Printf("Physics:   world min (%.2f, %.2f, %.2f) max (%.2f, %.2f, %.2f)",
		wb.Min.X, wb.Min.Y, wb.Min.Z, wb.Max.X, wb.Max.Y, wb.Max.Z)
}
