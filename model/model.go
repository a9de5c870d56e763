// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements the initial-condition generators: Kepler disk,
// Bessel (exponential) disk, and Spiral (Sérsic bulge + exponential disk).
// Each generator consumes package sampler and produces a flat N×7 array of
// (m, x, y, z, px, py, pz) rows, per spec.md §4.2.
package model

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
	"github.com/jdOchoa2/Barnes-Hut/body"
)

// Tag names a model generator.
type Tag int

const (
	Kepler Tag = iota
	Bessel
	Spiral
)

// ParseTag maps a configuration string to a Tag. Unknown names are a
// ConfigError (spec.md §7).
func ParseTag(name string) Tag {
	switch name {
	case "Kepler", "kepler", "kepler_galaxy":
		return Kepler
	case "Bessel", "bessel", "bessel_galaxy":
		return Bessel
	case "Spiral", "spiral", "spiral_galaxy":
		return Spiral
	}
	chk.Panic("model: ParseTag: unknown model tag %q", name)
	return -1
}

// seed is fixed for reproducibility across all generators (spec.md §4.1).
const seed = 10

// eR returns the in-plane radial unit direction for azimuth gamma, tilt
// alpha and orientation beta (spec.md §4.2).
func eR(gamma, alpha, beta float64) body.Vec3 {
	return body.Vec3{
		math.Cos(gamma)*math.Cos(alpha) + math.Sin(gamma)*math.Cos(beta)*math.Sin(alpha),
		math.Sin(gamma)*math.Cos(beta)*math.Cos(alpha) - math.Cos(gamma)*math.Sin(alpha),
		math.Sin(gamma) * math.Sin(beta),
	}
}

// eT returns the in-plane tangential unit direction, per spec.md §4.2.
func eT(gamma, alpha, beta float64) body.Vec3 {
	return body.Vec3{
		-(math.Sin(gamma)*math.Cos(alpha) - math.Cos(gamma)*math.Cos(beta)*math.Sin(alpha)),
		math.Cos(gamma)*math.Cos(beta)*math.Cos(alpha) + math.Sin(gamma)*math.Sin(alpha),
		math.Cos(gamma) * math.Sin(beta),
	}
}

// Row is one (m,x,y,z,px,py,pz) output record.
type Row [7]float64

// uniformAzimuths draws N azimuths in [0,2pi) from the shared deterministic
// stream. Each generator calls this after seeding rnd with the fixed seed
// so that identical configs reproduce identical output (spec.md §4.2
// Contract: Determinism).
func uniformAzimuths(n int) []float64 {
	g := make([]float64, n)
	for i := range g {
		g[i] = rnd.Float64(0, 2*math.Pi)
	}
	return g
}

// uniformMasses draws N masses in [lo,hi].
func uniformMasses(n int, lo, hi float64) []float64 {
	m := make([]float64, n)
	for i := range m {
		m[i] = rnd.Float64(lo, hi)
	}
	return m
}

// Generate dispatches to the generator named by tag.
func Generate(tag Tag, n int) []Row {
	return GenerateTilted(tag, n, 0, 0)
}

// GenerateTilted is Generate with explicit inclination (alpha) and
// ascending-node (beta) angles, per the Configuration record (spec.md §3).
func GenerateTilted(tag Tag, n int, alpha, beta float64) []Row {
	if n < 2 {
		chk.Panic("model: GenerateTilted: N must be >= 2, got %d", n)
	}
	switch tag {
	case Kepler:
		return kepler(n, alpha, beta)
	case Bessel:
		return bessel(n, alpha, beta)
	case Spiral:
		return spiral(n, alpha, beta)
	}
	chk.Panic("model: GenerateTilted: unknown tag %d", tag)
	return nil
}
