package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Sound names a synthesized effect.
type Sound int

const (
	SoundJump Sound = iota
	SoundLand
	SoundStomp
	SoundDeath
	SoundPickup
	SoundTask
	SoundLaunch
)

func (s Sound) String() string {
	switch s {
	case SoundJump:
		return "jump"
	case SoundLand:
		return "land"
	case SoundStomp:
		return "stomp"
	case SoundDeath:
		return "death"
	case SoundPickup:
		return "pickup"
	case SoundTask:
		return "task"
	case SoundLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

type waveType int

const (
	waveSine waveType = iota
	waveSquare
	waveNoise
)

// tone is a fixed-length oscillator whose frequency slides linearly from
// freq to endFreq.
type tone struct {
	freq, endFreq float64
	wave          waveType
	phase         float64
	pos, length   int
	seed          uint32
}

func newTone(freq, endFreq float64, d time.Duration, wave waveType) *tone {
	return &tone{freq: freq, endFreq: endFreq, wave: wave, length: sampleRate.N(d), seed: 22695477}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.length {
			return i, i > 0
		}
		progress := float64(t.pos) / float64(t.length)
		freq := t.freq + (t.endFreq-t.freq)*progress

		var v float64
		switch t.wave {
		case waveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case waveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case waveNoise:
			t.seed = t.seed*1664525 + 1013904223
			v = float64(t.seed)/float64(math.MaxUint32)*2 - 1
		}

		samples[i][0] = v
		samples[i][1] = v
		t.phase += freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer        beep.Streamer
	pos             int
	attack, release int
	total           int
}

func newEnvelope(s beep.Streamer, total, attack, release time.Duration) *envelope {
	return &envelope{
		streamer: s,
		total:    sampleRate.N(total),
		attack:   sampleRate.N(attack),
		release:  sampleRate.N(release),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if remaining := e.total - e.pos; e.release > 0 && remaining < e.release {
			vol = math.Max(float64(remaining)/float64(e.release), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

func shaped(freq, endFreq float64, d time.Duration, wave waveType, gain float64) beep.Streamer {
	s := newEnvelope(newTone(freq, endFreq, d, wave), d, 5*time.Millisecond, d/2)
	return withVolume(s, gain)
}

// Synthesize builds a fresh streamer for s. Every call returns an
// independent stream.
func Synthesize(s Sound) beep.Streamer {
	switch s {
	case SoundJump:
		return shaped(330, 660, 120*time.Millisecond, waveSquare, 0.25)
	case SoundLand:
		return shaped(140, 70, 80*time.Millisecond, waveSine, 0.5)
	case SoundStomp:
		return beep.Seq(
			shaped(880, 440, 60*time.Millisecond, waveSquare, 0.3),
			shaped(220, 110, 90*time.Millisecond, waveSine, 0.5),
		)
	case SoundDeath:
		return beep.Mix(
			shaped(400, 60, 500*time.Millisecond, waveSine, 0.5),
			shaped(0, 0, 300*time.Millisecond, waveNoise, 0.15),
		)
	case SoundPickup:
		return shaped(880, 1320, 100*time.Millisecond, waveSine, 0.4)
	case SoundTask:
		return beep.Seq(
			shaped(987.77, 987.77, 90*time.Millisecond, waveSquare, 0.25),
			shaped(1318.51, 1318.51, 220*time.Millisecond, waveSquare, 0.25),
		)
	case SoundLaunch:
		return beep.Mix(
			shaped(50, 200, 3*time.Second, waveSine, 0.5),
			shaped(0, 0, 3*time.Second, waveNoise, 0.2),
		)
	default:
		return nil
	}
}
