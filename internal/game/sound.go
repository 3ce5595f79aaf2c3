package game

import (
	"lostnaut/internal/audio"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// AttachSound plays an effect for each session event. It is safe to call
// whether or not audio.Init succeeded.
func AttachSound(s *Session) {
	s.Events.Jumped.AddListener(func(rl.Vector3) {
		audio.Play(audio.SoundJump)
	})
	s.Events.Landed.AddListener(func(feet rl.Vector3) {
		audio.PlayAt(audio.SoundLand, feet)
	})
	s.Events.Stomped.AddListener(func(st Stomp) {
		audio.PlayAt(audio.SoundStomp, st.Drop)
	})
	s.Events.Died.AddListener(func(d Death) {
		if d.Cause != DeathManualReset {
			audio.Play(audio.SoundDeath)
		}
	})
	s.Events.PickedUp.AddListener(func(Item) {
		audio.Play(audio.SoundPickup)
	})
	s.Events.TaskCompleted.AddListener(func(Task) {
		audio.Play(audio.SoundTask)
	})
	s.Events.LaunchStarted.AddListener(func(float32) {
		audio.PlayAt(audio.SoundLaunch, s.ShipPosition())
	})
}

// syncListener puts the audio listener at the camera.
func (s *Session) syncListener() {
	audio.SetListener(s.Camera.Position, s.Camera.ViewDirection(), rl.Vector3{Y: 1})
}
