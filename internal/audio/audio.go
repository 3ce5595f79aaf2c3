package audio

import (
	"math"
	"sync"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// DefaultMaxDistance is how far a positioned sound carries.
const DefaultMaxDistance = 80.0

// Listener represents the audio listener position and orientation
type Listener struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
}

// Manager mixes sound effects into the speaker.
type Manager struct {
	mu       sync.Mutex
	listener Listener
	mixer    *beep.Mixer
	volume   float64
	muted    bool
}

var globalManager *Manager

// Init opens the speaker. Without it every Play call is a no-op, so callers
// can treat a failure as non-fatal.
func Init() error {
	if globalManager != nil {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	m := &Manager{
		mixer:  &beep.Mixer{},
		volume: 1,
		listener: Listener{
			Forward: rl.Vector3{Z: -1},
			Right:   rl.Vector3{X: 1},
		},
	}
	speaker.Play(m.mixer)
	globalManager = m
	return nil
}

// Close stops everything and releases the speaker.
func Close() {
	if globalManager == nil {
		return
	}
	speaker.Lock()
	globalManager.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	globalManager = nil
}

// Enabled reports whether Init succeeded.
func Enabled() bool {
	return globalManager != nil
}

// SetMasterVolume scales every effect; 0 mutes.
func SetMasterVolume(v float64) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.volume = v
	globalManager.muted = v <= 0
}

// SetListener updates the listener position and orientation
func SetListener(pos, forward, up rl.Vector3) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.listener = NewListener(pos, forward, up)
}

// NewListener normalizes forward and derives the right vector from up.
func NewListener(pos, forward, up rl.Vector3) Listener {
	l := Listener{Position: pos}

	// Normalize forward, default to -Z if zero
	if fwdLen := rl.Vector3Length(forward); fwdLen > 0.001 {
		l.Forward = rl.Vector3Scale(forward, 1.0/fwdLen)
	} else {
		l.Forward = rl.Vector3{X: 0, Y: 0, Z: -1}
	}

	// forward × up points to the listener's right
	right := rl.Vector3CrossProduct(l.Forward, up)
	if rightLen := rl.Vector3Length(right); rightLen > 0.001 {
		l.Right = rl.Vector3Scale(right, 1.0/rightLen)
	} else {
		l.Right = rl.Vector3{X: 1, Y: 0, Z: 0}
	}
	return l
}

// Spatialize returns the gain (0..1) and pan (-1 left .. 1 right) for a
// sound at pos heard by l. Falloff is linear up to maxDistance; sounds
// behind the listener are slightly quieter.
func Spatialize(l Listener, pos rl.Vector3, maxDistance float32) (gain, pan float32) {
	toSource := rl.Vector3Subtract(pos, l.Position)
	distance := rl.Vector3Length(toSource)
	if distance >= maxDistance {
		return 0, 0
	}
	gain = 1 - distance/maxDistance

	if distance > 0.001 {
		direction := rl.Vector3Scale(toSource, 1.0/distance)
		pan = rl.Vector3DotProduct(direction, l.Right)
		if pan < -1 {
			pan = -1
		} else if pan > 1 {
			pan = 1
		}

		if frontDot := rl.Vector3DotProduct(direction, l.Forward); frontDot < 0 {
			gain *= 0.7 + 0.3*float32(math.Abs(float64(frontDot)))
		}
	}
	return gain, pan
}

// Play starts an effect at full volume, centred.
func Play(s Sound) {
	play(s, 1, 0)
}

// PlayAt starts an effect positioned in the world.
func PlayAt(s Sound, pos rl.Vector3) {
	if globalManager == nil {
		return
	}
	globalManager.mu.Lock()
	l := globalManager.listener
	globalManager.mu.Unlock()

	gain, pan := Spatialize(l, pos, DefaultMaxDistance)
	if gain <= 0 {
		return
	}
	play(s, gain, pan)
}

func play(s Sound, gain, pan float32) {
	m := globalManager
	if m == nil {
		return
	}
	m.mu.Lock()
	vol := m.volume * float64(gain)
	muted := m.muted
	m.mu.Unlock()
	if muted {
		return
	}

	streamer := Synthesize(s)
	if streamer == nil {
		return
	}
	out := &effects.Pan{Streamer: withVolume(streamer, vol), Pan: float64(pan)}

	speaker.Lock()
	m.mixer.Add(out)
	speaker.Unlock()
}

// withVolume applies a linear gain. effects.Volume works in log2 steps, so
// zero is handled as silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
