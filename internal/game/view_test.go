package game

import (
	"testing"

	"lostnaut/internal/input"
	"lostnaut/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestMarkersFollowTasks(t *testing.T) {
	s := newSession(t, arena)
	if got := len(s.Markers()); got != 3 {
		t.Fatalf("Expected 3 markers, got %d", got)
	}

	s.Tasks.Holding = ItemPlant
	s.Tasks.RecordKill(rl.Vector3{X: 5, Y: 2})
	markers := s.Markers()
	if len(markers) != 3 {
		t.Fatalf("Expected fuel, treat and a dropped treat, got %d", len(markers))
	}
	for _, m := range markers {
		if m.Kind == world.MarkerPlant {
			t.Error("Held plant should not be drawn in the world")
		}
	}
	if last := markers[len(markers)-1]; last.Kind != world.MarkerTreat || last.Position.X != 5 {
		t.Errorf("Expected the dropped treat last, got %+v", last)
	}
}

func TestTaskLines(t *testing.T) {
	s := newSession(t, arena)
	s.Tasks.Holding = ItemFuel
	s.Tasks.PlantDelivered = true

	lines := s.TaskLines()
	if len(lines) != 4 {
		t.Fatalf("Expected 4 task lines, got %d", len(lines))
	}
	if lines[0].State != world.TaskDone {
		t.Errorf("Expected plant done, got %v", lines[0].State)
	}
	if lines[1].State != world.TaskCarrying {
		t.Errorf("Expected fuel carried, got %v", lines[1].State)
	}
	if lines[2].State != world.TaskOpen || lines[3].State != world.TaskOpen {
		t.Error("Expected the rest open")
	}
	if lines[0].Label != TaskDeliverPlant.String() {
		t.Errorf("Expected label %q, got %q", TaskDeliverPlant.String(), lines[0].Label)
	}
}

func TestViewAndHUD(t *testing.T) {
	s := newSession(t, arena)
	run(s, 60, input.Snapshot{})

	v := s.View(16.0/9.0, true)
	if v.Scene != s.Scene || !v.DogPresent || !v.Wireframes {
		t.Error("Expected the view to carry the scene and flags")
	}
	if !v.HasGround || !approx(v.Ground, 0) {
		t.Errorf("Expected ground at 0 below the player, got %v %f", v.HasGround, v.Ground)
	}
	if v.Camera.Position != s.Player.Position {
		t.Errorf("Expected camera at the eye, got %v", v.Camera.Position)
	}

	h := s.HUD()
	if !h.Grounded || h.Holding != "" || len(h.Tasks) != 4 {
		t.Errorf("Unexpected HUD %+v", h)
	}
}
