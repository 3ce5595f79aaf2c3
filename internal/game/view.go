package game

import (
	"lostnaut/internal/world"
)

// Markers lists the items lying in the world: the three task items while
// they are neither held nor delivered, plus every dropped treat.
func (s *Session) Markers() []world.Marker {
	out := make([]world.Marker, 0, 3+len(s.Tasks.Dropped))
	if s.Tasks.ItemVisible(ItemPlant) {
		out = append(out, world.Marker{Kind: world.MarkerPlant, Position: s.Tasks.Plant})
	}
	if s.Tasks.ItemVisible(ItemFuel) {
		out = append(out, world.Marker{Kind: world.MarkerFuel, Position: s.Tasks.Fuel})
	}
	if s.Tasks.ItemVisible(ItemTreat) {
		out = append(out, world.Marker{Kind: world.MarkerTreat, Position: s.Tasks.Treat})
	}
	for _, d := range s.Tasks.Dropped {
		out = append(out, world.Marker{Kind: world.MarkerTreat, Position: d})
	}
	return out
}

// TaskLines is the HUD task list in display order.
func (s *Session) TaskLines() []world.TaskLine {
	lines := make([]world.TaskLine, 0, len(allTasks))
	for _, t := range allTasks {
		var state world.TaskState
		switch s.Tasks.Progress(t) {
		case ProgressDone:
			state = world.TaskDone
		case ProgressCarrying:
			state = world.TaskCarrying
		default:
			state = world.TaskOpen
		}
		lines = append(lines, world.TaskLine{Label: t.String(), State: state})
	}
	return lines
}

// View assembles the renderer input for the current frame.
func (s *Session) View(aspect float32, wireframes bool) world.Frame {
	ground, ok := s.GroundHeight()
	return world.Frame{
		Camera:     s.Camera.GetRaylibCamera(),
		Aspect:     aspect,
		Scene:      s.Scene,
		Agents:     s.Agents,
		DogPresent: s.DogPresent(),
		Markers:    s.Markers(),
		Feet:       s.Player.Feet(),
		Ground:     ground,
		HasGround:  ok && !s.Cutscene.Active,
		Wireframes: wireframes,
	}
}

// HUD assembles the overlay content for the current frame.
func (s *Session) HUD() world.HUD {
	h := world.HUD{
		Tasks:    s.TaskLines(),
		Prompt:   s.PromptVisible(),
		Cutscene: s.Cutscene.Active,
		Escaped:  s.Escaped(),
		Time:     s.Stats.Time,
		Deaths:   s.Stats.Deaths,
		Stomps:   s.Stats.Stomps,
		Position: s.Player.Position,
		Grounded: s.Player.Controller.Grounded,
	}
	if s.Tasks.Holding != ItemNone {
		h.Holding = s.Tasks.Holding.String()
	}
	return h
}
