package world

import (
	"testing"

	"lostnaut/internal/level"
	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func testCamera() rl.Camera3D {
	return rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 2, Z: 0},
		Target:     rl.Vector3{X: 0, Y: 2, Z: -1},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       60,
		Projection: rl.CameraPerspective,
	}
}

func box(center rl.Vector3, half float32) physics.AABB {
	return physics.NewAABBFromCenter(center, rl.Vector3{X: half * 2, Y: half * 2, Z: half * 2})
}

func TestFrustumContains(t *testing.T) {
	f := ExtractFrustum(testCamera(), 16.0/9.0)

	tests := []struct {
		name string
		b    physics.AABB
		want bool
	}{
		{"ahead", box(rl.Vector3{Y: 2, Z: -20}, 1), true},
		{"behind", box(rl.Vector3{Y: 2, Z: 20}, 1), false},
		{"far left", box(rl.Vector3{X: -200, Y: 2, Z: -10}, 1), false},
		{"straddling the camera", box(rl.Vector3{Y: 2}, 5), true},
		{"beyond far plane", box(rl.Vector3{Y: 2, Z: -5000}, 1), false},
		{"large box beside", box(rl.Vector3{X: -60, Y: 2, Z: -10}, 55), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsAABB(tt.b); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFrustumSphere(t *testing.T) {
	f := ExtractFrustum(testCamera(), 1)
	if !f.ContainsPoint(rl.Vector3{Y: 2, Z: -10}) {
		t.Error("Expected point ahead to be inside")
	}
	if f.ContainsPoint(rl.Vector3{Y: 2, Z: 10}) {
		t.Error("Expected point behind to be outside")
	}
	if !f.ContainsSphere(rl.Vector3{Y: 2, Z: 1}, 2) {
		t.Error("Expected sphere reaching past the near plane to intersect")
	}
}

func TestCullSkipsDepartedDog(t *testing.T) {
	l := &level.Level{
		Name:      "cull",
		EyeHeight: 2,
		Ship:      level.VolumeSpec{Name: "Ship", Position: level.Vec3{0, 2, -20}, Size: level.Vec3{4, 4, 4}},
		Dog:       level.VolumeSpec{Name: "Dog", Position: level.Vec3{5, 1, -20}, Size: level.Vec3{2, 2, 2}},
		Volumes: []level.VolumeSpec{
			{Name: "Front", Position: level.Vec3{0, 0, -30}, Size: level.Vec3{10, 2, 10}},
			{Name: "Back", Position: level.Vec3{0, 0, 30}, Size: level.Vec3{10, 2, 10}},
		},
	}
	scene := l.Build()
	f := ExtractFrustum(testCamera(), 1)

	frame := Frame{Scene: scene, DogPresent: true}
	if got := cull(&f, frame); len(got) != 3 {
		t.Errorf("Expected front, ship and dog visible, got %v", got)
	}

	frame.DogPresent = false
	got := cull(&f, frame)
	if len(got) != 2 {
		t.Fatalf("Expected 2 visible, got %v", got)
	}
	for _, i := range got {
		if scene.Volumes[i] == scene.Dog {
			t.Error("Dog should not be drawn once it has left")
		}
	}
}

func TestVolumeColors(t *testing.T) {
	scene := level.Default().Build()

	for i, v := range scene.Volumes {
		c := volumeColor(scene, i)
		switch {
		case v.IsHazard():
			if c != colorHazard {
				t.Errorf("Expected hazard color for %s", v.Name())
			}
		case v.Name() == "Ground":
			if c != colorGround {
				t.Errorf("Expected ground color for Ground, got %v", c)
			}
		case v.Name() == "Mountain6":
			if c != colorMountain {
				t.Errorf("Expected mountain color for Mountain6, got %v", c)
			}
		case v.Name() == "Platform1":
			if c != colorPlatform {
				t.Errorf("Expected platform color for Platform1, got %v", c)
			}
		}
	}
	if c := volumeColor(scene, len(scene.Volumes)-2); c != colorShip {
		t.Errorf("Expected ship color, got %v", c)
	}
}

func TestTaskStyles(t *testing.T) {
	if TaskMark(TaskDone) != "[x]" || TaskMark(TaskOpen) != "[ ]" || TaskMark(TaskCarrying) != "[~]" {
		t.Error("Unexpected task marks")
	}
	if TaskColor(TaskDone) == TaskColor(TaskOpen) {
		t.Error("Done and open tasks should differ in color")
	}
}
