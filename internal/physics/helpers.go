package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// singularDeterminant is the cutoff below which a model transform is treated
// as non-invertible.
const singularDeterminant = 1e-8

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func vmin(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Min(float64(a.X), float64(b.X))),
		Y: float32(math.Min(float64(a.Y), float64(b.Y))),
		Z: float32(math.Min(float64(a.Z), float64(b.Z))),
	}
}

func vmax(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: float32(math.Max(float64(a.X), float64(b.X))),
		Y: float32(math.Max(float64(a.Y), float64(b.Y))),
		Z: float32(math.Max(float64(a.Z), float64(b.Z))),
	}
}

// modelMatrix builds scale, then rotation (X, Y, Z order, degrees), then
// translation. Same convention the renderer uses for DrawModelEx.
func modelMatrix(position, rotation, scale rl.Vector3) rl.Matrix {
	rx := float64(rotation.X) * math.Pi / 180
	ry := float64(rotation.Y) * math.Pi / 180
	rz := float64(rotation.Z) * math.Pi / 180

	rotX := rl.MatrixRotateX(float32(rx))
	rotY := rl.MatrixRotateY(float32(ry))
	rotZ := rl.MatrixRotateZ(float32(rz))
	rot := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	m := rl.MatrixMultiply(rl.MatrixScale(scale.X, scale.Y, scale.Z), rot)
	return rl.MatrixMultiply(m, rl.MatrixTranslate(position.X, position.Y, position.Z))
}
