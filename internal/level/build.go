package level

import (
	"lostnaut/internal/components"
	"lostnaut/internal/physics"
)

// Scene is a level turned into live objects.
type Scene struct {
	// Volumes is in registration order; Specs runs parallel to it.
	Volumes []physics.Volume
	Specs   []VolumeSpec

	Ship   physics.Volume
	Dog    physics.Volume
	Agents []*components.PatrolAgent

	byName map[string]int
}

// Build creates the level's volumes and agents. Nothing is registered yet.
func (l *Level) Build() *Scene {
	specs := l.allVolumes()
	s := &Scene{
		Volumes: make([]physics.Volume, 0, len(specs)),
		Specs:   specs,
		byName:  make(map[string]int, len(specs)),
	}
	for i, spec := range specs {
		v := spec.Volume()
		s.Volumes = append(s.Volumes, v)
		s.byName[spec.Name] = i
	}
	s.Ship = s.Volumes[len(specs)-2]
	s.Dog = s.Volumes[len(specs)-1]

	for _, a := range l.Agents {
		s.Agents = append(s.Agents, components.NewPatrolAgent(a.Spawn.Vector(), a.Patrol))
	}
	return s
}

// Volume builds the physics volume described by the spec.
func (v VolumeSpec) Volume() physics.Volume {
	var out physics.Volume
	switch v.Kind {
	case KindOriented:
		out = physics.NewOrientedBox(v.Name, physics.UnitCube(), v.Position.Vector(), v.Rotation.Vector(), v.Size.Vector())
	default:
		out = physics.NewBox(v.Name, v.Position.Vector(), v.Size.Vector())
	}
	if v.Disabled {
		physics.SetCollisionEnabled(out, false)
	}
	if v.Hazard {
		out = physics.NewHazard(out)
	}
	return out
}

// Register adds every volume to r in order.
func (s *Scene) Register(r *physics.Resolver) {
	for _, v := range s.Volumes {
		r.Register(v)
	}
}

// ByName returns the named volume and its spec.
func (s *Scene) ByName(name string) (physics.Volume, VolumeSpec, bool) {
	i, ok := s.byName[name]
	if !ok {
		return nil, VolumeSpec{}, false
	}
	return s.Volumes[i], s.Specs[i], true
}
