package game

import (
	"testing"

	"lostnaut/internal/level"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var testSite = Site{
	Ship:   rl.Vector3{X: 0, Y: 0, Z: 0},
	Dog:    rl.Vector3{X: 50, Y: 0, Z: 0},
	HasDog: true,
}

func testTasks() Tasks {
	return NewTasks(level.Items{
		Plant: level.Vec3{100, 2, 0},
		Fuel:  level.Vec3{102, 2, 0},
		Treat: level.Vec3{200, 2, 0},
	})
}

func TestPickUpPriority(t *testing.T) {
	tasks := testTasks()
	eye := rl.Vector3{X: 101, Y: 2, Z: 0}

	res := tasks.Interact(eye, rl.Vector3{X: 1}, testSite)
	if res.PickedUp != ItemPlant || tasks.Holding != ItemPlant {
		t.Errorf("Expected plant first when both are in reach, got %v", res.PickedUp)
	}

	tasks = testTasks()
	tasks.PlantDelivered = true
	tasks.Interact(eye, rl.Vector3{X: 1}, testSite)
	if tasks.Holding != ItemFuel {
		t.Errorf("Expected fuel once the plant is delivered, got %v", tasks.Holding)
	}
}

func TestNothingInReach(t *testing.T) {
	tasks := testTasks()
	res := tasks.Interact(rl.Vector3{X: 150}, rl.Vector3{X: 1}, testSite)
	if res.PickedUp != ItemNone || res.Launch || res.Dropped != ItemNone {
		t.Errorf("Expected no effect, got %+v", res)
	}
	if tasks.PromptVisible(rl.Vector3{X: 150}, testSite) {
		t.Error("No prompt expected away from everything")
	}
}

func TestDroppedTreats(t *testing.T) {
	tasks := testTasks()
	if !tasks.RecordKill(rl.Vector3{X: 20, Y: 2}) {
		t.Error("First kill should complete the alien task")
	}
	if tasks.RecordKill(rl.Vector3{X: 40, Y: 2}) {
		t.Error("Second kill should not complete it again")
	}
	if tasks.AliensKilled != 2 || len(tasks.Dropped) != 2 {
		t.Fatalf("Expected 2 kills and 2 treats, got %d and %d", tasks.AliensKilled, len(tasks.Dropped))
	}

	eye := rl.Vector3{X: 40, Y: 3}
	if !tasks.PromptVisible(eye, testSite) {
		t.Error("Expected prompt next to a dropped treat")
	}
	res := tasks.Interact(eye, rl.Vector3{X: 1}, testSite)
	if res.PickedUp != ItemTreat {
		t.Fatalf("Expected to pick up a treat, got %v", res.PickedUp)
	}
	if len(tasks.Dropped) != 1 || tasks.Dropped[0].X != 20 {
		t.Errorf("Expected the far treat to remain, got %v", tasks.Dropped)
	}

	// Feed the dog.
	res = tasks.Interact(rl.Vector3{X: 45}, rl.Vector3{X: 1}, testSite)
	if !tasks.DogFed || len(res.Completed) != 1 || res.Completed[0] != TaskFeedDog {
		t.Errorf("Expected the dog fed, got %+v", res)
	}
	if tasks.PromptVisible(rl.Vector3{X: 20, Y: 3}, testSite) {
		t.Error("Dropped treats are useless once the dog is fed")
	}
}

func TestDropPlacement(t *testing.T) {
	tests := []struct {
		name string
		eye  rl.Vector3
		want rl.Vector3
	}{
		{"low", rl.Vector3{X: 150, Y: 4}, rl.Vector3{X: 153, Y: 2.5}},
		{"high", rl.Vector3{X: 150, Y: 30}, rl.Vector3{X: 153, Y: 29.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks := testTasks()
			tasks.Holding = ItemFuel

			res := tasks.Interact(tt.eye, rl.Vector3{X: 1}, testSite)
			if res.Dropped != ItemFuel || tasks.Holding != ItemNone {
				t.Fatalf("Expected fuel dropped, got %+v", res)
			}
			if !approx(tasks.Fuel.X, tt.want.X) || !approx(tasks.Fuel.Y, tt.want.Y) {
				t.Errorf("Expected fuel at %v, got %v", tt.want, tasks.Fuel)
			}
		})
	}
}

func TestTreatCannotGoToShip(t *testing.T) {
	tasks := testTasks()
	tasks.Holding = ItemTreat

	if tasks.PromptVisible(rl.Vector3{X: 5}, testSite) {
		t.Error("Treat at the ship should not prompt")
	}
	res := tasks.Interact(rl.Vector3{X: 5}, rl.Vector3{X: 1}, testSite)
	if res.Dropped != ItemTreat || tasks.DogFed {
		t.Errorf("Expected the treat dropped, got %+v", res)
	}
}

func TestDogGone(t *testing.T) {
	tasks := testTasks()
	tasks.Holding = ItemTreat
	site := testSite
	site.HasDog = false

	if tasks.PromptVisible(site.Dog, site) {
		t.Error("No prompt once the dog has boarded")
	}
}

func TestLaunchNeedsAllTasks(t *testing.T) {
	tasks := testTasks()
	tasks.PlantDelivered = true
	tasks.FuelDelivered = true
	tasks.DogFed = true

	eye := rl.Vector3{X: 3}
	if res := tasks.Interact(eye, rl.Vector3{X: 1}, testSite); res.Launch {
		t.Error("Launch needs the alien task too")
	}

	tasks.AlienDefeated = true
	if !tasks.AllDone() || tasks.DoneCount() != 4 {
		t.Fatalf("Expected all done, got %d", tasks.DoneCount())
	}
	if !tasks.PromptVisible(eye, testSite) {
		t.Error("Expected boarding prompt")
	}
	if res := tasks.Interact(eye, rl.Vector3{X: 1}, testSite); !res.Launch {
		t.Error("Expected launch")
	}
	if res := tasks.Interact(rl.Vector3{X: 30}, rl.Vector3{X: 1}, testSite); res.Launch {
		t.Error("Launch needs the ship in reach")
	}
}

func TestProgress(t *testing.T) {
	tasks := testTasks()
	if p := tasks.Progress(TaskDeliverPlant); p != ProgressOpen {
		t.Errorf("Expected open, got %v", p)
	}
	tasks.Holding = ItemPlant
	if p := tasks.Progress(TaskDeliverPlant); p != ProgressCarrying {
		t.Errorf("Expected carrying, got %v", p)
	}
	if tasks.ItemVisible(ItemPlant) {
		t.Error("A held item is not in the world")
	}
	tasks.Holding = ItemNone
	tasks.PlantDelivered = true
	if p := tasks.Progress(TaskDeliverPlant); p != ProgressDone {
		t.Errorf("Expected done, got %v", p)
	}
	if tasks.ItemVisible(ItemPlant) {
		t.Error("A delivered item is not in the world")
	}
	if !tasks.ItemVisible(ItemFuel) {
		t.Error("Fuel should be visible")
	}
}

func TestCutsceneTimeline(t *testing.T) {
	var c Cutscene
	if l, f := c.Update(1); l || f || c.Timer != 0 {
		t.Fatal("Inactive cutscene should not advance")
	}

	c.Start()
	launches, ends := 0, 0
	for i := 0; i < 20; i++ {
		l, f := c.Update(0.5)
		if l {
			launches++
			if c.Timer <= launchDelay {
				t.Errorf("Launched too early at %f", c.Timer)
			}
		}
		if f {
			ends++
		}
	}

	if launches != 1 || ends != 1 {
		t.Errorf("Expected one launch and one end, got %d and %d", launches, ends)
	}
	if !c.Finished || c.Active {
		t.Error("Expected finished")
	}
	// Launch on the 1.5 s step, then speed 50 + 80(t-1) per step of 0.5 s.
	var want float32
	for tm := float32(1.5); tm <= 10; tm += 0.5 {
		want += (launchBaseSpeed + (tm-launchDelay)*launchAccel) * 0.5
	}
	if absf(c.Offset-want) > 0.01 {
		t.Errorf("Expected offset %f, got %f", want, c.Offset)
	}
}

func TestEventListeners(t *testing.T) {
	var e Event[int]
	var got []int
	e.AddListener(func(v int) { got = append(got, v) })
	e.AddListener(nil)
	e.AddListener(func(v int) { got = append(got, v*10) })

	e.Invoke(2)
	if len(got) != 2 || got[0] != 2 || got[1] != 20 {
		t.Errorf("Expected [2 20], got %v", got)
	}
	if e.GetListenerCount() != 2 {
		t.Errorf("Expected 2 listeners, got %d", e.GetListenerCount())
	}

	var all Events
	all.Died.AddListener(func(Death) {})
	all.Reset()
	if all.Died.GetListenerCount() != 0 {
		t.Error("Expected listeners cleared")
	}
}
