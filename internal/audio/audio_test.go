package audio

import (
	"testing"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func drain(t *testing.T, s Sound) int {
	t.Helper()
	st := Synthesize(s)
	if st == nil {
		t.Fatalf("No streamer for %v", s)
	}
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := st.Stream(buf)
		total += n
		for _, smp := range buf[:n] {
			if smp[0] > 1.01 || smp[0] < -1.01 {
				t.Fatalf("%v: sample out of range: %f", s, smp[0])
			}
		}
		if !ok {
			return total
		}
	}
	t.Fatalf("%v never finished", s)
	return 0
}

func TestSynthesizeLengths(t *testing.T) {
	if got, want := drain(t, SoundJump), sampleRate.N(120*time.Millisecond); got != want {
		t.Errorf("Expected %d jump samples, got %d", want, got)
	}
	want := sampleRate.N(60*time.Millisecond) + sampleRate.N(90*time.Millisecond)
	if got := drain(t, SoundStomp); got != want {
		t.Errorf("Expected %d stomp samples, got %d", want, got)
	}
	for _, s := range []Sound{SoundLand, SoundDeath, SoundPickup, SoundTask, SoundLaunch} {
		if drain(t, s) == 0 {
			t.Errorf("%v produced no samples", s)
		}
	}
	if Synthesize(Sound(99)) != nil {
		t.Error("Unknown sound should not synthesize")
	}
}

func TestSpatialize(t *testing.T) {
	l := NewListener(rl.Vector3{}, rl.Vector3{Z: -1}, rl.Vector3{Y: 1})
	if l.Right.X < 0.99 {
		t.Fatalf("Expected right to be +X, got %v", l.Right)
	}

	gain, pan := Spatialize(l, rl.Vector3{X: 20}, 80)
	if gain < 0.74 || gain > 0.76 {
		t.Errorf("Expected gain 0.75, got %f", gain)
	}
	if pan < 0.99 {
		t.Errorf("Expected hard right, got %f", pan)
	}

	_, pan = Spatialize(l, rl.Vector3{X: -20}, 80)
	if pan > -0.99 {
		t.Errorf("Expected hard left, got %f", pan)
	}

	front, _ := Spatialize(l, rl.Vector3{Z: -20}, 80)
	behind, _ := Spatialize(l, rl.Vector3{Z: 20}, 80)
	if behind >= front {
		t.Errorf("Expected sounds behind to be quieter: %f vs %f", behind, front)
	}

	if gain, _ := Spatialize(l, rl.Vector3{X: 100}, 80); gain != 0 {
		t.Errorf("Expected silence out of range, got %f", gain)
	}
	if gain, pan := Spatialize(l, rl.Vector3{}, 80); gain != 1 || pan != 0 {
		t.Errorf("Expected full centred gain at the listener, got %f %f", gain, pan)
	}
}

func TestPlayWithoutInit(t *testing.T) {
	if Enabled() {
		t.Skip("speaker already open")
	}
	Play(SoundJump)
	PlayAt(SoundStomp, rl.Vector3{})
	SetMasterVolume(0.5)
	Close()
}
