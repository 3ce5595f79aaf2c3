package game

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"lostnaut/internal/level"
)

// AgentState is one alien in a State.
type AgentState struct {
	Position  level.Vec3 `json:"pos"`
	Direction float32    `json:"dir"`
	Dead      bool       `json:"dead,omitempty"`
}

// State is a plain copy of what a frame looks like, for spectators,
// replays and the terminal view.
type State struct {
	Frame    int        `json:"frame"`
	Time     float64    `json:"time"`
	Position level.Vec3 `json:"pos"`
	Velocity level.Vec3 `json:"vel"`
	Grounded bool       `json:"grounded"`
	Yaw      float32    `json:"yaw"`
	Pitch    float32    `json:"pitch"`

	Holding   string   `json:"holding,omitempty"`
	TasksDone []string `json:"tasks_done,omitempty"`
	Prompt    bool     `json:"prompt,omitempty"`

	Deaths int `json:"deaths"`
	Stomps int `json:"stomps"`

	Agents  []AgentState `json:"agents"`
	Dropped []level.Vec3 `json:"dropped,omitempty"`

	Ship      level.Vec3 `json:"ship"`
	Cutscene  bool       `json:"cutscene,omitempty"`
	Escaped   bool       `json:"escaped,omitempty"`
	LastFace  string     `json:"last_face,omitempty"`
	LastTouch string     `json:"last_touch,omitempty"`
}

// State captures the session as it is now.
func (s *Session) State() State {
	c := s.Player.Controller
	st := State{
		Frame:    s.Stats.Frames,
		Time:     s.Stats.Time,
		Position: level.FromVector(s.Player.Position),
		Velocity: level.FromVector(c.Velocity),
		Grounded: c.Grounded,
		Yaw:      s.Camera.Yaw,
		Pitch:    s.Camera.Pitch,
		Prompt:   s.PromptVisible(),
		Deaths:   s.Stats.Deaths,
		Stomps:   s.Stats.Stomps,
		Ship:     level.FromVector(s.ShipPosition()),
		Cutscene: s.Cutscene.Active,
		Escaped:  s.Escaped(),
		Agents:   make([]AgentState, 0, len(s.Agents)),
	}
	if s.Tasks.Holding != ItemNone {
		st.Holding = s.Tasks.Holding.String()
	}
	for _, t := range allTasks {
		if s.Tasks.Done(t) {
			st.TasksDone = append(st.TasksDone, t.String())
		}
	}
	for _, a := range s.Agents {
		st.Agents = append(st.Agents, AgentState{
			Position:  level.FromVector(a.Position),
			Direction: a.Direction,
			Dead:      a.Dead,
		})
	}
	for _, d := range s.Tasks.Dropped {
		st.Dropped = append(st.Dropped, level.FromVector(d))
	}
	if last := s.Contact; last.Hit() {
		st.LastFace = last.Face.String()
		st.LastTouch = last.Volume.Name()
	}
	return st
}

// Digest fingerprints the state, for checking that a replay reproduced a
// run exactly.
func (st State) Digest() string {
	raw, err := json.Marshal(st)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
