package world

import (
	"lostnaut/internal/components"
	"lostnaut/internal/level"
	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MarkerKind is what a pickup marker represents.
type MarkerKind int

const (
	MarkerPlant MarkerKind = iota
	MarkerFuel
	MarkerTreat
)

// Marker is an item lying in the world.
type Marker struct {
	Kind     MarkerKind
	Position rl.Vector3
}

// Frame is everything the renderer needs for one frame. The game fills it;
// world never reaches back into game state.
type Frame struct {
	Camera     rl.Camera3D
	Aspect     float32
	Scene      *level.Scene
	Agents     []*components.PatrolAgent
	DogPresent bool
	Markers    []Marker

	// Player feet and the ground height below them, for the drop shadow.
	Feet      rl.Vector3
	Ground    float32
	HasGround bool

	// Wireframes outlines every collision box.
	Wireframes bool
}

// DrawStats counts what the last Draw call submitted.
type DrawStats struct {
	Volumes int
	Culled  int
}

var (
	colorGround   = rl.NewColor(86, 125, 70, 255)
	colorPlatform = rl.NewColor(139, 105, 70, 255)
	colorMountain = rl.NewColor(120, 118, 128, 255)
	colorHazard   = rl.NewColor(200, 40, 40, 255)
	colorShip     = rl.NewColor(190, 195, 205, 255)
	colorDog      = rl.NewColor(210, 140, 60, 255)
	colorAgent    = rl.NewColor(120, 200, 80, 255)
	colorSky      = rl.NewColor(135, 170, 215, 255)
	colorShadow   = rl.NewColor(0, 0, 0, 90)
)

const markerRadius = 0.8

type Renderer struct {
	cube   rl.Model
	loaded bool
	Stats  DrawStats
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Initialize needs an open window.
func (r *Renderer) Initialize() {
	r.cube = rl.LoadModelFromMesh(rl.GenMeshCube(1, 1, 1))
	r.loaded = true
}

func (r *Renderer) Draw(f Frame) {
	rl.ClearBackground(colorSky)
	rl.BeginMode3D(f.Camera)

	frustum := ExtractFrustum(f.Camera, f.Aspect)
	visible := cull(&frustum, f)
	r.Stats = DrawStats{Volumes: len(visible), Culled: len(f.Scene.Volumes) - len(visible)}

	for _, i := range visible {
		r.drawVolume(f.Scene.Volumes[i], volumeColor(f.Scene, i), f.Wireframes)
	}

	for _, a := range f.Agents {
		if a.Dead {
			continue
		}
		b := a.Bounds()
		if !frustum.ContainsAABB(b) {
			continue
		}
		rl.DrawCubeV(b.Center(), b.Size(), colorAgent)
		rl.DrawCubeWiresV(b.Center(), b.Size(), rl.DarkGreen)

		// Eye on the leading side.
		eye := b.Center()
		eye.X += a.Direction * a.Width / 2
		eye.Y += a.Height / 4
		rl.DrawSphere(eye, a.Height/10, rl.Black)
	}

	for _, m := range f.Markers {
		if frustum.ContainsSphere(m.Position, markerRadius) {
			rl.DrawSphere(m.Position, markerRadius, markerColor(m.Kind))
		}
	}

	if f.HasGround {
		shadow := rl.Vector3{X: f.Feet.X, Y: f.Ground + 0.05, Z: f.Feet.Z}
		rl.DrawCylinder(shadow, 0.6, 0.6, 0.02, 12, colorShadow)
	}

	rl.EndMode3D()
}

func (r *Renderer) drawVolume(v physics.Volume, color rl.Color, wires bool) {
	if v.UsesOrientedCollision() && r.loaded {
		r.cube.Transform = v.ModelTransform()
		rl.DrawModel(r.cube, rl.Vector3{}, 1, color)
		if wires {
			rl.DrawModelWires(r.cube, rl.Vector3{}, 1, rl.Black)
		}
		return
	}
	b := v.WorldAABB()
	rl.DrawCubeV(b.Center(), b.Size(), color)
	if wires {
		rl.DrawCubeWiresV(b.Center(), b.Size(), rl.Black)
	}
}

func (r *Renderer) Unload() {
	if r.loaded {
		rl.UnloadModel(r.cube)
		r.loaded = false
	}
}

// cull returns the indices of scene volumes worth drawing.
func cull(frustum *Frustum, f Frame) []int {
	out := make([]int, 0, len(f.Scene.Volumes))
	for i, v := range f.Scene.Volumes {
		if v == f.Scene.Dog && !f.DogPresent {
			continue
		}
		b := v.WorldAABB()
		if b.Degenerate() || !frustum.ContainsAABB(b) {
			continue
		}
		out = append(out, i)
	}
	return out
}

func volumeColor(s *level.Scene, i int) rl.Color {
	v := s.Volumes[i]
	switch {
	case v.IsHazard():
		return colorHazard
	case v == s.Ship:
		return colorShip
	case v == s.Dog:
		return colorDog
	}
	switch classify(s.Specs[i]) {
	case classGround:
		return colorGround
	case classMountain:
		return colorMountain
	default:
		return colorPlatform
	}
}

type volumeClass int

const (
	classPlatform volumeClass = iota
	classGround
	classMountain
)

// classify picks a palette entry from the shape of a volume: wide flat slabs
// read as ground, tall ones as rock.
func classify(spec level.VolumeSpec) volumeClass {
	size := spec.Size
	switch {
	case size[1] > 20 && size[1] >= size[0]/4:
		return classMountain
	case size[0] >= 200 && size[2] >= 200:
		return classGround
	default:
		return classPlatform
	}
}

func markerColor(k MarkerKind) rl.Color {
	switch k {
	case MarkerPlant:
		return rl.Lime
	case MarkerFuel:
		return rl.Orange
	default:
		return rl.Brown
	}
}
