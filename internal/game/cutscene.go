package game

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	cutsceneDuration = 10.0
	launchDelay      = 1.0
	launchBaseSpeed  = 50.0
	launchAccel      = 80.0
)

var (
	cutsceneEye    = rl.Vector3{X: 120, Y: 20, Z: 0}
	cutsceneTarget = rl.Vector3{X: 0, Y: 20, Z: 0}
)

// Cutscene is the escape sequence: a short pause, then the ship climbs with
// increasing speed until the sequence ends.
type Cutscene struct {
	Active   bool
	Launched bool
	Finished bool
	Timer    float32
	Offset   float32 // ship height above its resting position
}

func (c *Cutscene) Start() {
	*c = Cutscene{Active: true}
}

// Update advances the cutscene by dt and reports the frames on which the
// ship lifts off and the sequence ends.
func (c *Cutscene) Update(dt float32) (launched, finished bool) {
	if !c.Active {
		return false, false
	}
	c.Timer += dt

	if c.Timer > launchDelay && !c.Launched {
		c.Launched = true
		launched = true
	}
	if c.Launched {
		speed := launchBaseSpeed + (c.Timer-launchDelay)*launchAccel
		c.Offset += speed * dt
	}

	if c.Timer >= cutsceneDuration {
		c.Active = false
		c.Finished = true
		finished = true
	}
	return launched, finished
}
