// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package integrator implements the velocity-Verlet kick-drift-kick loop
// that drives the octree, per spec.md §4.4. Each step rebuilds the tree,
// walks it per body under the θ-criterion, and advances kinematic state.
package integrator

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/octree"
)

// Sink receives a snapshot of all bodies every save_every steps (spec.md
// §1, §4.4). Implementations own the slice contents after the call
// returns (spec.md §5 Resource policy).
type Sink interface {
	Save(step int, bodies []body.Body) error
}

// Params holds the integrator's tunable knobs (spec.md §3 Configuration
// record, dt/theta/n_steps/save_every fields).
type Params struct {
	Dt        float64
	Theta     float64
	NSteps    int
	SaveEvery int
	// Workers bounds the goroutine pool used for the per-body force walk
	// (spec.md §5); 0 or 1 means run the walk single-threaded.
	Workers int
}

// Run evolves bodies in place for p.NSteps steps, calling sink.Save for
// step 0 (the initial state) and for every step that is a multiple of
// p.SaveEvery, per spec.md §4.4; the final step is saved only when
// p.NSteps is such a multiple. cancel, if non-nil, is polled between steps
// only (spec.md §5: "cancellation points occur only between steps").
func Run(bodies []body.Body, p Params, sink Sink, cancel func() bool) error {
	if p.Dt <= 0 {
		chk.Panic("integrator: Run: dt must be > 0, got %v", p.Dt)
	}
	if p.Theta <= 0 || p.Theta > 1 {
		chk.Panic("integrator: Run: theta must be in (0,1], got %v", p.Theta)
	}

	warnedOnce := false

	if err := save(sink, 0, bodies); err != nil {
		return err
	}

	for step := 1; step <= p.NSteps; step++ {
		if cancel != nil && cancel() {
			break
		}

		tree := octree.Build(bodies)
		if tree.Expanded() && !warnedOnce {
			io.Pfyel("integrator: step %d: a body left the unit cube; root cube expanded\n", step)
			warnedOnce = true
		}

		forces := forceWalk(tree, bodies, p.Theta, p.Workers)

		// First half-kick and drift.
		for i := range bodies {
			b := &bodies[i]
			half := forces[i].Scale(0.5 * p.Dt)
			b.P = b.P.Add(half)
			b.R = b.R.Add(b.Velocity().Scale(p.Dt))
		}

		// Second half-kick against the SAME pre-drift tree (spec.md §4.4
		// step 3: this specification mandates the pre-drift-tree variant
		// for bit-compatibility with the source, not a rebuild).
		forces2 := forceWalk(tree, bodies, p.Theta, p.Workers)
		for i := range bodies {
			b := &bodies[i]
			half := forces2[i].Scale(0.5 * p.Dt)
			b.P = b.P.Add(half)
			if math.IsNaN(b.P[0]) || math.IsNaN(b.R[0]) {
				chk.Panic("integrator: Run: NaN state at step %d, body %d", step, i)
			}
		}

		if step%p.SaveEvery == 0 {
			if err := save(sink, step, bodies); err != nil {
				return err
			}
		}
	}
	return nil
}

func save(sink Sink, step int, bodies []body.Body) error {
	snap := make([]body.Body, len(bodies))
	copy(snap, bodies)
	return sink.Save(step, snap)
}

// forceWalk computes the net force on every body against tree, under the
// θ-criterion. The tree is read-only during the walk, so the work is
// split across a goroutine pool (spec.md §5); each body's slot in forces
// is written by exactly one goroutine, so there is no read-modify-write
// race even though kinematic updates are applied afterwards by the caller.
func forceWalk(tree *octree.Tree, bodies []body.Body, theta float64, workers int) []body.Vec3 {
	n := len(bodies)
	forces := make([]body.Vec3, n)

	if workers <= 1 {
		for i := range bodies {
			forces[i] = tree.ForceOn(&bodies[i], theta)
		}
		return forces
	}

	var wg sync.WaitGroup
	chunk := (n + workers - 1) / workers
	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				forces[i] = tree.ForceOn(&bodies[i], theta)
			}
		}(start, end)
	}
	wg.Wait()
	return forces
}
