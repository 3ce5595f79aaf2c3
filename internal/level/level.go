// Package level loads level files: static volumes, the player spawn, patrol
// agents, task items and movement tuning.
package level

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"lostnaut/internal/components"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned, wrapped, for level files that parse but break a
// rule.
var ErrInvalid = errors.New("invalid level")

//go:embed default.yaml
var defaultYAML []byte

const (
	KindBox      = "box"
	KindOriented = "oriented"
)

// Vec3 is written as a three element list in level files.
type Vec3 [3]float32

func (v Vec3) Vector() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func FromVector(v rl.Vector3) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// VolumeSpec describes one static volume. Size is the full extent of a unit
// cube scaled to it; for oriented volumes it is the model scale.
type VolumeSpec struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Position Vec3   `yaml:"position"`
	Size     Vec3   `yaml:"size"`
	Rotation Vec3   `yaml:"rotation,omitempty"`
	Hazard   bool   `yaml:"hazard,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

type AgentSpec struct {
	Spawn  Vec3    `yaml:"spawn"`
	Patrol float32 `yaml:"patrol"`
}

type Items struct {
	Plant Vec3 `yaml:"plant"`
	Fuel  Vec3 `yaml:"fuel"`
	Treat Vec3 `yaml:"treat"`
}

// Tuning overrides the player's movement constants. Zero fields keep the
// defaults.
type Tuning struct {
	Gravity      float32 `yaml:"gravity,omitempty"`
	JumpStrength float32 `yaml:"jump_strength,omitempty"`
	WalkSpeed    float32 `yaml:"walk_speed,omitempty"`
	RunSpeed     float32 `yaml:"run_speed,omitempty"`
	TerminalFall float32 `yaml:"terminal_fall,omitempty"`
}

// Apply returns base with every non-zero override applied.
func (t Tuning) Apply(base components.Tuning) components.Tuning {
	if t.Gravity != 0 {
		base.Gravity = t.Gravity
	}
	if t.JumpStrength != 0 {
		base.JumpStrength = t.JumpStrength
	}
	if t.WalkSpeed != 0 {
		base.WalkSpeed = t.WalkSpeed
	}
	if t.RunSpeed != 0 {
		base.RunSpeed = t.RunSpeed
	}
	if t.TerminalFall != 0 {
		base.TerminalFall = t.TerminalFall
	}
	return base
}

type Level struct {
	Name      string  `yaml:"name"`
	Spawn     Vec3    `yaml:"spawn"`
	EyeHeight float32 `yaml:"eye_height"`
	Margin    float32 `yaml:"margin"`

	Ship    VolumeSpec   `yaml:"ship"`
	Dog     VolumeSpec   `yaml:"dog"`
	Items   Items        `yaml:"items"`
	Volumes []VolumeSpec `yaml:"volumes"`
	Agents  []AgentSpec  `yaml:"agents,omitempty"`
	Tuning  Tuning       `yaml:"tuning,omitempty"`
}

func defaults() Level {
	return Level{
		Name:      "untitled",
		Spawn:     Vec3{0, 5, 0},
		EyeHeight: 2,
	}
}

// Default returns the built-in level.
func Default() *Level {
	l, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("level: embedded default: %v", err))
	}
	return l
}

// Load reads and validates a level file. An empty path loads the built-in
// level.
func Load(path string) (*Level, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse checks raw against the level schema, decodes it and applies
// defaults.
func Parse(raw []byte) (*Level, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	l := defaults()
	if err := yaml.Unmarshal(raw, &l); err != nil {
		return nil, fmt.Errorf("level yaml: %w", err)
	}
	l.Normalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Normalize fills in kinds and lower-cases them.
func (l *Level) Normalize() {
	norm := func(v *VolumeSpec, fallback string) {
		v.Kind = strings.ToLower(strings.TrimSpace(v.Kind))
		if v.Kind == "" {
			v.Kind = fallback
		}
	}
	for i := range l.Volumes {
		norm(&l.Volumes[i], KindBox)
	}
	norm(&l.Ship, KindOriented)
	norm(&l.Dog, KindOriented)
	if l.Ship.Name == "" {
		l.Ship.Name = "Spaceship"
	}
	if l.Dog.Name == "" {
		l.Dog.Name = "Dog"
	}
}

// Validate enforces the rules the schema cannot express.
func (l *Level) Validate() error {
	if l.EyeHeight <= 0 {
		return fmt.Errorf("%w: eye_height must be positive", ErrInvalid)
	}
	if l.Margin < 0 {
		return fmt.Errorf("%w: margin must not be negative", ErrInvalid)
	}

	seen := make(map[string]bool, len(l.Volumes)+2)
	for _, v := range l.allVolumes() {
		if v.Name == "" {
			return fmt.Errorf("%w: volume without a name", ErrInvalid)
		}
		if seen[v.Name] {
			return fmt.Errorf("%w: duplicate volume %q", ErrInvalid, v.Name)
		}
		seen[v.Name] = true

		if v.Kind != KindBox && v.Kind != KindOriented {
			return fmt.Errorf("%w: volume %q: unknown kind %q", ErrInvalid, v.Name, v.Kind)
		}
		if v.Size[0] <= 0 || v.Size[1] <= 0 || v.Size[2] <= 0 {
			return fmt.Errorf("%w: volume %q: size must be positive", ErrInvalid, v.Name)
		}
		if v.Kind == KindBox && v.Rotation != (Vec3{}) {
			return fmt.Errorf("%w: volume %q: rotation needs kind %q", ErrInvalid, v.Name, KindOriented)
		}
	}

	for i, a := range l.Agents {
		if a.Patrol <= 0 {
			return fmt.Errorf("%w: agent %d: patrol must be positive", ErrInvalid, i)
		}
	}
	return nil
}

// allVolumes lists volumes in registration order: level geometry, then the
// ship, then the dog.
func (l *Level) allVolumes() []VolumeSpec {
	out := make([]VolumeSpec, 0, len(l.Volumes)+2)
	out = append(out, l.Volumes...)
	return append(out, l.Ship, l.Dog)
}

// Digest identifies the level's content, for matching replays to levels.
func (l *Level) Digest() string {
	raw, err := yaml.Marshal(l)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:8])
}
