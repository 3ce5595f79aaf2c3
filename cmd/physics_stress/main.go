// Stress test timing the collision resolver against growing volume registries
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"lostnaut/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	probes := flag.Int("probes", 2000, "probes per registry size")
	oriented := flag.Float64("oriented", 0.3, "share of volumes that are rotated")
	policy := flag.String("policy", "compound", "resolver policy: compound or first-hit")
	flag.Parse()

	p, ok := physics.ParsePolicy(*policy)
	if !ok {
		fmt.Printf("unknown policy %q, using %s\n", *policy, p)
	}

	// Test various registry sizes
	testCounts := []int{10, 50, 100, 500, 1000, 2000, 5000}

	for _, count := range testCounts {
		testResolver(count, *probes, float32(*oriented), p)
	}
}

func testResolver(count, probes int, orientedShare float32, policy physics.Policy) {
	rng := rand.New(rand.NewSource(42)) // Consistent results

	// Spread volumes over a square that grows with count to keep density
	// reasonable
	spawnSize := float32(100.0) + float32(count)/2.0

	r := physics.NewResolver()
	r.SetPolicy(policy)
	for i := 0; i < count; i++ {
		pos := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * 20,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		size := rl.Vector3{
			X: 2 + rng.Float32()*10,
			Y: 1 + rng.Float32()*8,
			Z: 2 + rng.Float32()*10,
		}
		name := fmt.Sprintf("v%d", i)
		if rng.Float32() < orientedShare {
			rot := rl.Vector3{Y: rng.Float32() * 360}
			r.Register(physics.NewOrientedBox(name, physics.UnitCube(), pos, rot, size))
		} else {
			r.Register(physics.NewBox(name, pos, size))
		}
	}

	points := make([]rl.Vector3, probes)
	for i := range points {
		points[i] = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32() * 25,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
	}

	// Warm up
	for _, pt := range points {
		r.WouldResolve(pt, 2)
	}

	// Time the pure query
	wouldStart := time.Now()
	var wouldHits int
	for _, pt := range points {
		if r.WouldResolve(pt, 2).Hit() {
			wouldHits++
		}
	}
	wouldTime := time.Since(wouldStart) / time.Duration(probes)

	// Time the mutating resolve
	resolveStart := time.Now()
	var resolveHits int
	for _, pt := range points {
		p := pt
		if _, hit := r.ResolveAll(&p, 2); hit {
			resolveHits++
		}
	}
	resolveTime := time.Since(resolveStart) / time.Duration(probes)

	fmt.Printf("%5d volumes: WouldResolve %8v (%4d hits) | ResolveAll %8v (%4d hits)\n",
		count, wouldTime, wouldHits, resolveTime, resolveHits)
}
