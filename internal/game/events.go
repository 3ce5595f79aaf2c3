package game

import rl "github.com/gen2brain/raylib-go/raylib"

// Event is a multi-cast event. Listeners run in the order they were added,
// on the goroutine that invokes the event.
type Event[T any] struct {
	listeners []func(T)
}

// AddListener adds a callback to be invoked when the event fires
func (e *Event[T]) AddListener(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

func (e *Event[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *Event[T]) Invoke(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}

// GetListenerCount returns the number of registered listeners (for debugging)
func (e *Event[T]) GetListenerCount() int {
	return len(e.listeners)
}

// DeathCause says why the player was sent back to spawn.
type DeathCause int

const (
	DeathHazard DeathCause = iota
	DeathAgent
	DeathManualReset
)

func (c DeathCause) String() string {
	switch c {
	case DeathHazard:
		return "hazard"
	case DeathAgent:
		return "alien"
	default:
		return "reset"
	}
}

type Death struct {
	Cause    DeathCause
	Volume   string // hazard name, if any
	Position rl.Vector3
}

type Stomp struct {
	Agent int
	Drop  rl.Vector3
}

// Events is every notification a Session raises. Listeners must not step
// the session.
type Events struct {
	Died          Event[Death]
	Stomped       Event[Stomp]
	Jumped        Event[rl.Vector3]
	Landed        Event[rl.Vector3]
	PickedUp      Event[Item]
	TaskCompleted Event[Task]
	LaunchStarted Event[float32]
	Escaped       Event[float32]
}

// Reset drops every listener.
func (e *Events) Reset() {
	e.Died.RemoveAllListeners()
	e.Stomped.RemoveAllListeners()
	e.Jumped.RemoveAllListeners()
	e.Landed.RemoveAllListeners()
	e.PickedUp.RemoveAllListeners()
	e.TaskCompleted.RemoveAllListeners()
	e.LaunchStarted.RemoveAllListeners()
	e.Escaped.RemoveAllListeners()
}
