// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/integrator"
	"github.com/jdOchoa2/Barnes-Hut/model"
)

func sampleBodies() []body.Body {
	return []body.Body{
		{M: 1, R: body.Vec3{0.1, 0.2, 0.3}, P: body.Vec3{0.01, 0.02, 0.03}},
		{M: 2, R: body.Vec3{0.4, 0.5, 0.6}, P: body.Vec3{-0.01, 0, 0.1}},
		{M: 4e6, R: body.Vec3{0.5, 0.5, 0.5}, P: body.Vec3{}},
	}
}

// Test_store01 checks that WriteInitialState/ReadInitialState round-trip
// bodies exactly (spec.md §6 Initial State artifact).
func Test_store01(tst *testing.T) {
	chk.PrintTitle("store01: initial state round-trip")

	bodies := sampleBodies()
	path := filepath.Join(tst.TempDir(), "InitialState.bin")
	if err := WriteInitialState(path, rowsFromBodies(bodies)); err != nil {
		tst.Fatalf("WriteInitialState failed: %v", err)
	}

	got, err := ReadInitialState(path, len(bodies))
	if err != nil {
		tst.Fatalf("ReadInitialState failed: %v", err)
	}
	for i := range bodies {
		chk.Scalar(tst, "mass", 1e-12, got[i].M, bodies[i].M)
		for k := 0; k < 3; k++ {
			chk.Scalar(tst, "R", 1e-12, got[i].R[k], bodies[i].R[k])
			chk.Scalar(tst, "P", 1e-12, got[i].P[k], bodies[i].P[k])
		}
	}
}

// Test_store02 checks that EvolutionWriter appends one snapshot per Save
// call and ReadEvolutionSnapshot seeks to the right offset (spec.md §6
// Evolution artifact).
func Test_store02(tst *testing.T) {
	chk.PrintTitle("store02: evolution snapshot seek")

	bodies := sampleBodies()
	path := filepath.Join(tst.TempDir(), "Evolution.bin")

	w, err := NewEvolutionWriter(path)
	if err != nil {
		tst.Fatalf("NewEvolutionWriter failed: %v", err)
	}
	// snapshot 0: original bodies; snapshot 1: shifted by +1 in x.
	shifted := make([]body.Body, len(bodies))
	copy(shifted, bodies)
	for i := range shifted {
		shifted[i].R[0] += 1.0
	}
	if err := w.Save(0, bodies); err != nil {
		tst.Fatalf("Save(0) failed: %v", err)
	}
	if err := w.Save(1, shifted); err != nil {
		tst.Fatalf("Save(1) failed: %v", err)
	}
	if err := w.Close(); err != nil {
		tst.Fatalf("Close failed: %v", err)
	}

	snap0, err := ReadEvolutionSnapshot(path, len(bodies), 0)
	if err != nil {
		tst.Fatalf("ReadEvolutionSnapshot(0) failed: %v", err)
	}
	snap1, err := ReadEvolutionSnapshot(path, len(bodies), 1)
	if err != nil {
		tst.Fatalf("ReadEvolutionSnapshot(1) failed: %v", err)
	}
	chk.Scalar(tst, "snap0[0].R.x", 1e-12, snap0[0].R[0], bodies[0].R[0])
	chk.Scalar(tst, "snap1[0].R.x", 1e-12, snap1[0].R[0], bodies[0].R[0]+1.0)
}

// Test_store03 checks that NormalVector returns a unit vector for a range
// of inclination/ascending-node pairs (spec.md §6).
func Test_store03(tst *testing.T) {
	chk.PrintTitle("store03: normal vector is unit length")

	for _, alpha := range []float64{0, 0.1, 0.5} {
		for _, beta := range []float64{0, 0.3, 1.2} {
			n := NormalVector(alpha, beta)
			norm := n.Norm()
			if norm < 0.999 || norm > 1.001 {
				tst.Errorf("alpha=%v beta=%v: |n| = %v, want ~1", alpha, beta, norm)
			}
		}
	}
}

// Test_store04 is spec.md §8 end-to-end scenario 6: two back-to-back runs
// of Spiral with N=500, n_steps=50 must produce byte-identical Evolution
// artifacts.
func Test_store04(tst *testing.T) {
	chk.PrintTitle("store04: reproducible full Spiral runs")

	runOnce := func(path string) {
		rows := model.GenerateTilted(model.Spiral, 500, 0, 0)
		bodies := bodiesFromRows(rows)

		w, err := NewEvolutionWriter(path)
		if err != nil {
			tst.Fatalf("NewEvolutionWriter failed: %v", err)
		}
		p := integrator.Params{Dt: 0.01, Theta: 0.3, NSteps: 50, SaveEvery: 1}
		if err := integrator.Run(bodies, p, w, nil); err != nil {
			tst.Fatalf("integrator.Run failed: %v", err)
		}
		if err := w.Close(); err != nil {
			tst.Fatalf("Close failed: %v", err)
		}
	}

	dir := tst.TempDir()
	path1 := filepath.Join(dir, "Evolution1.bin")
	path2 := filepath.Join(dir, "Evolution2.bin")
	runOnce(path1)
	runOnce(path2)

	b1, err := os.ReadFile(path1)
	if err != nil {
		tst.Fatalf("cannot read %q: %v", path1, err)
	}
	b2, err := os.ReadFile(path2)
	if err != nil {
		tst.Fatalf("cannot read %q: %v", path2, err)
	}
	if !bytes.Equal(b1, b2) {
		tst.Errorf("two identical Spiral runs produced different Evolution artifacts")
	}
}
