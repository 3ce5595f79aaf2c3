// Package game runs the platformer: the per-frame driver that moves the
// player against the level, updates the aliens and tracks the item hunt,
// plus the raylib window that draws it.
package game

import (
	"log"

	"lostnaut/internal/camera"
	"lostnaut/internal/components"
	"lostnaut/internal/input"
	"lostnaut/internal/level"
	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stats are the per-run counters kept for records and the HUD.
type Stats struct {
	Frames int
	Time   float64
	Deaths int
	Stomps int
	Jumps  int
}

// Session is one play-through of a level. It is driven entirely by Step,
// so a window, a terminal or a replay file can all run it.
type Session struct {
	Level    *level.Level
	Scene    *level.Scene
	Resolver *physics.Resolver
	Player   *Player
	Camera   *camera.FPSCamera
	Agents   []*components.PatrolAgent
	Tasks    Tasks
	Cutscene Cutscene
	Events   Events
	Stats    Stats

	// Contact is the player's resolver contact from the latest frame.
	Contact physics.Contact

	// CursorLocked gates mouse look. It starts locked and flips on the
	// cursor toggle key.
	CursorLocked bool

	edges    input.Edges
	shipHome rl.Vector3
	dogAway  bool
	logger   *log.Logger
}

// Options tweak a new Session. The zero value matches the shipped game.
type Options struct {
	Policy      physics.Policy
	DebugOutput bool
	Logger      *log.Logger
}

func NewSession(l *level.Level, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := physics.NewResolver()
	r.SetMargin(l.Margin)
	r.SetPolicy(opts.Policy)
	r.SetDebugOutput(opts.DebugOutput)
	r.SetLogger(logger)

	scene := l.Build()
	scene.Register(r)

	spawn := l.Spawn.Vector()
	s := &Session{
		Level:        l,
		Scene:        scene,
		Resolver:     r,
		Player:       NewPlayer(spawn, l.EyeHeight, l.Tuning.Apply(components.DefaultTuning())),
		Camera:       camera.New(spawn),
		Agents:       scene.Agents,
		Tasks:        NewTasks(l.Items),
		CursorLocked: true,
		shipHome:     l.Ship.Position.Vector(),
		logger:       logger,
	}
	return s
}

// Step advances the session by one frame of dt seconds with the controls
// held in in.
func (s *Session) Step(dt float32, in input.Snapshot) {
	if dt < 0 {
		dt = 0
	}
	s.Stats.Frames++
	s.Stats.Time += float64(dt)

	pressed := s.edges.Update(in)
	if pressed.Restart {
		s.Restart()
		// Controls still held across the restart must not fire again.
		s.edges.Update(in)
		return
	}

	if s.Cutscene.Active {
		s.stepCutscene(dt)
	} else {
		s.stepPlayer(dt, in, pressed)
	}

	s.stepAgents(dt)

	if !s.Cutscene.Active {
		s.Camera.Position = s.Player.Position
	}
}

func (s *Session) stepPlayer(dt float32, in input.Snapshot, pressed input.Pressed) {
	p := s.Player

	if pressed.Interact {
		s.interact()
		if s.Cutscene.Active {
			return
		}
	}
	if pressed.ToggleCursor {
		s.CursorLocked = !s.CursorLocked
	}
	if s.CursorLocked {
		s.Camera.Look(in.MouseDX, in.MouseDY)
	}
	if pressed.Reset {
		s.die(DeathManualReset, "")
	}

	forward, right := s.Camera.Directions()
	p.Controller.ApplyMovementInput(walkDirection(in, forward, right), in.Run)

	if pressed.Jump && p.Controller.Jump() {
		s.Stats.Jumps++
		s.Events.Jumped.Invoke(p.Position)
	}

	contact, dead := p.move(dt, s.Resolver)
	s.Contact = contact
	if dead {
		s.die(DeathHazard, contact.Volume.Name())
		return
	}
	if p.Controller.Landed() {
		s.Events.Landed.Invoke(p.Feet())
	}
}

func (s *Session) stepAgents(dt float32) {
	for i, a := range s.Agents {
		if a.Dead {
			continue
		}
		a.Update(dt, s.Resolver)
		if s.Cutscene.Active {
			continue
		}

		switch a.CheckPlayerOverlap(s.Player.Position, s.Player.Controller.Velocity) {
		case components.OverlapHit:
			s.die(DeathAgent, "")
		case components.OverlapStomp:
			drop := a.Position
			drop.Y += 2
			s.Stats.Stomps++
			s.Player.Controller.Bounce(stompBounce)
			s.Events.Stomped.Invoke(Stomp{Agent: i, Drop: drop})
			if s.Tasks.RecordKill(drop) {
				s.completed(TaskDefeatAlien)
			}
		}
	}
}

func (s *Session) interact() {
	res := s.Tasks.Interact(s.Player.Position, s.Camera.ViewDirection(), s.site())
	if res.PickedUp != ItemNone {
		s.Events.PickedUp.Invoke(res.PickedUp)
	}
	for _, t := range res.Completed {
		s.completed(t)
	}
	if res.Launch {
		s.logger.Printf("Game: all tasks complete, launching")
		s.Cutscene.Start()
		s.CursorLocked = false
		s.Camera.Position = cutsceneEye
		s.Camera.LookAt(cutsceneTarget)
	}
}

func (s *Session) stepCutscene(dt float32) {
	if !s.dogAway {
		s.Resolver.Unregister(s.Scene.Dog)
		s.dogAway = true
	}
	if dt > components.MaxTimeStep {
		dt = components.MaxTimeStep
	}

	launched, finished := s.Cutscene.Update(dt)
	if launched {
		s.logger.Printf("Game: ship launching")
		s.Events.LaunchStarted.Invoke(float32(s.Stats.Time))
	}
	if s.Cutscene.Launched {
		physics.Reposition(s.Scene.Ship, s.ShipPosition())
	}

	s.Camera.Position = cutsceneEye
	s.Camera.LookAt(cutsceneTarget)

	if finished {
		s.logger.Printf("Game: escaped after %.1fs", s.Stats.Time)
		s.CursorLocked = true
		s.Events.Escaped.Invoke(float32(s.Stats.Time))
	}
}

func (s *Session) completed(t Task) {
	s.logger.Printf("Game: task complete: %s", t)
	s.Events.TaskCompleted.Invoke(t)
}

func (s *Session) die(cause DeathCause, volume string) {
	s.Events.Died.Invoke(Death{Cause: cause, Volume: volume, Position: s.Player.Position})
	if cause != DeathManualReset {
		s.Stats.Deaths++
	}
	s.Player.Respawn()
}

func (s *Session) site() Site {
	return Site{
		Ship:   s.shipHome,
		Dog:    s.Level.Dog.Position.Vector(),
		HasDog: !s.dogAway,
	}
}

// ShipPosition is where the ship is now, including any launch offset.
func (s *Session) ShipPosition() rl.Vector3 {
	p := s.shipHome
	p.Y += s.Cutscene.Offset
	return p
}

// DogPresent is false once the dog has boarded the ship.
func (s *Session) DogPresent() bool {
	return !s.dogAway
}

// Escaped reports a finished launch sequence.
func (s *Session) Escaped() bool {
	return s.Cutscene.Finished
}

// PromptVisible mirrors the "Press E" hint: true when the interact key
// would pick something up, deliver it or board the ship.
func (s *Session) PromptVisible() bool {
	if s.Cutscene.Active {
		return false
	}
	return s.Tasks.PromptVisible(s.Player.Position, s.site())
}

// GroundHeight is the surface height straight below the player, for the
// drop shadow and the HUD.
func (s *Session) GroundHeight() (float32, bool) {
	return s.Resolver.GroundBelow(s.Player.Feet(), groundReadoutDepth)
}

const groundReadoutDepth = 500

// Logger is where the session and its resolver write diagnostics.
func (s *Session) Logger() *log.Logger { return s.logger }

// Restart rebuilds the level's moving parts and puts everything back at the
// start. Listeners stay attached.
func (s *Session) Restart() {
	s.Resolver.Clear()
	s.Scene = s.Level.Build()
	s.Scene.Register(s.Resolver)
	s.Agents = s.Scene.Agents

	s.Player.Respawn()
	s.Camera = camera.New(s.Player.Spawn)
	s.Tasks = NewTasks(s.Level.Items)
	s.Cutscene = Cutscene{}
	s.Stats = Stats{}
	s.Contact = physics.Contact{}
	s.CursorLocked = true
	s.edges.Reset()
	s.dogAway = false
}
