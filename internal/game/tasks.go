package game

import (
	"lostnaut/internal/level"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	interactDistance = 5.0
	depositDistance  = 12.0

	dropAhead   = 3.0
	lowDropY    = 2.5
	lowEyeLimit = 10.0
	dropBelow   = 0.5

	// Stand-in distance to the dog once it has boarded the ship.
	noDogDistance = 1000.0
)

type Item int

const (
	ItemNone Item = iota
	ItemPlant
	ItemFuel
	ItemTreat
)

func (i Item) String() string {
	switch i {
	case ItemPlant:
		return "plant"
	case ItemFuel:
		return "fuel"
	case ItemTreat:
		return "treat"
	default:
		return "none"
	}
}

type Task int

const (
	TaskDeliverPlant Task = iota
	TaskDeliverFuel
	TaskFeedDog
	TaskDefeatAlien
)

var allTasks = [...]Task{TaskDeliverPlant, TaskDeliverFuel, TaskFeedDog, TaskDefeatAlien}

func (t Task) String() string {
	switch t {
	case TaskDeliverPlant:
		return "Deliver Plant to Ship"
	case TaskDeliverFuel:
		return "Deliver Fuel to Ship"
	case TaskFeedDog:
		return "Feed the Dog"
	default:
		return "Defeat an Alien"
	}
}

// Progress of a single task for the HUD.
type Progress int

const (
	ProgressOpen Progress = iota
	ProgressCarrying
	ProgressDone
)

// Tasks tracks the item hunt. Positions are where each item currently lies;
// a held item keeps its last position but is not in the world.
type Tasks struct {
	Plant rl.Vector3
	Fuel  rl.Vector3
	Treat rl.Vector3

	// Dropped holds treats left by stomped aliens that are still on the
	// ground.
	Dropped []rl.Vector3

	Holding Item

	PlantDelivered bool
	FuelDelivered  bool
	DogFed         bool
	AlienDefeated  bool
	AliensKilled   int
}

func NewTasks(items level.Items) Tasks {
	return Tasks{
		Plant: items.Plant.Vector(),
		Fuel:  items.Fuel.Vector(),
		Treat: items.Treat.Vector(),
	}
}

func (t *Tasks) Done(task Task) bool {
	switch task {
	case TaskDeliverPlant:
		return t.PlantDelivered
	case TaskDeliverFuel:
		return t.FuelDelivered
	case TaskFeedDog:
		return t.DogFed
	default:
		return t.AlienDefeated
	}
}

func (t *Tasks) AllDone() bool {
	return t.PlantDelivered && t.FuelDelivered && t.DogFed && t.AlienDefeated
}

func (t *Tasks) DoneCount() int {
	n := 0
	for _, task := range allTasks {
		if t.Done(task) {
			n++
		}
	}
	return n
}

func (t *Tasks) Progress(task Task) Progress {
	if t.Done(task) {
		return ProgressDone
	}
	switch {
	case task == TaskDeliverPlant && t.Holding == ItemPlant,
		task == TaskDeliverFuel && t.Holding == ItemFuel,
		task == TaskFeedDog && t.Holding == ItemTreat:
		return ProgressCarrying
	}
	return ProgressOpen
}

// ItemVisible reports whether item should be drawn at its position.
func (t *Tasks) ItemVisible(item Item) bool {
	if t.Holding == item {
		return false
	}
	switch item {
	case ItemPlant:
		return !t.PlantDelivered
	case ItemFuel:
		return !t.FuelDelivered
	case ItemTreat:
		return !t.DogFed
	}
	return false
}

// RecordKill counts a stomped alien and leaves a treat at drop. It reports
// whether this completed the alien task.
func (t *Tasks) RecordKill(drop rl.Vector3) bool {
	t.AliensKilled++
	t.Dropped = append(t.Dropped, drop)
	if t.AlienDefeated {
		return false
	}
	t.AlienDefeated = true
	return true
}

// pickable returns the item a pick-up at eye would take, in priority order,
// and the index of the dropped treat it would take (-1 for none).
func (t *Tasks) pickable(eye rl.Vector3) (Item, int) {
	switch {
	case !t.PlantDelivered && rl.Vector3Distance(eye, t.Plant) < interactDistance:
		return ItemPlant, -1
	case !t.FuelDelivered && rl.Vector3Distance(eye, t.Fuel) < interactDistance:
		return ItemFuel, -1
	case !t.DogFed && rl.Vector3Distance(eye, t.Treat) < interactDistance:
		return ItemTreat, -1
	case !t.DogFed:
		for i, d := range t.Dropped {
			if rl.Vector3Distance(eye, d) < interactDistance {
				return ItemTreat, i
			}
		}
	}
	return ItemNone, -1
}

// Site is where deliveries go. HasDog is false once the dog has boarded.
type Site struct {
	Ship   rl.Vector3
	Dog    rl.Vector3
	HasDog bool
}

func (s Site) dogDistance(eye rl.Vector3) float32 {
	if !s.HasDog {
		return noDogDistance
	}
	return rl.Vector3Distance(eye, s.Dog)
}

// Interaction is what one interact press did.
type Interaction struct {
	PickedUp  Item
	Completed []Task
	Dropped   Item
	Launch    bool
}

// Interact handles the interact key for a player whose eye is at eye,
// looking along view.
func (t *Tasks) Interact(eye, view rl.Vector3, site Site) Interaction {
	var out Interaction
	nearShip := rl.Vector3Distance(eye, site.Ship) < depositDistance

	if t.Holding == ItemNone {
		item, dropped := t.pickable(eye)
		if item != ItemNone {
			if dropped >= 0 {
				t.Dropped = append(t.Dropped[:dropped], t.Dropped[dropped+1:]...)
			}
			t.Holding = item
			out.PickedUp = item
		}
		if t.AllDone() && nearShip {
			out.Launch = true
		}
		return out
	}

	switch {
	case t.Holding == ItemPlant && nearShip:
		t.PlantDelivered = true
		out.Completed = append(out.Completed, TaskDeliverPlant)
	case t.Holding == ItemFuel && nearShip:
		t.FuelDelivered = true
		out.Completed = append(out.Completed, TaskDeliverFuel)
	case t.Holding == ItemTreat && site.dogDistance(eye) < depositDistance:
		t.DogFed = true
		out.Completed = append(out.Completed, TaskFeedDog)
	default:
		at := dropPoint(eye, view)
		switch t.Holding {
		case ItemPlant:
			t.Plant = at
		case ItemFuel:
			t.Fuel = at
		case ItemTreat:
			t.Treat = at
		}
		out.Dropped = t.Holding
	}
	t.Holding = ItemNone
	return out
}

// dropPoint puts an item a few units ahead: at ground height when the
// player is low, otherwise just under eye level.
func dropPoint(eye, view rl.Vector3) rl.Vector3 {
	p := rl.Vector3Add(eye, rl.Vector3Scale(view, dropAhead))
	if eye.Y < lowEyeLimit {
		p.Y = lowDropY
	} else {
		p.Y = eye.Y - dropBelow
	}
	return p
}

// PromptVisible reports whether an interact press at eye would do
// something other than drop.
func (t *Tasks) PromptVisible(eye rl.Vector3, site Site) bool {
	nearShip := rl.Vector3Distance(eye, site.Ship) < depositDistance

	if t.AllDone() && nearShip {
		return true
	}
	switch t.Holding {
	case ItemNone:
		item, _ := t.pickable(eye)
		return item != ItemNone
	case ItemPlant, ItemFuel:
		return nearShip
	case ItemTreat:
		return site.dogDistance(eye) < depositDistance
	}
	return false
}
