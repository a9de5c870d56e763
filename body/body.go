// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package body holds the Body record and the physical constants shared by
// the sampler, model generators, octree and integrator packages.
package body

import "math"

// Vec3 is a 3-vector in internal (unit-cube) coordinates.
type Vec3 [3]float64

// Add returns u+v.
func (u Vec3) Add(v Vec3) Vec3 {
	return Vec3{u[0] + v[0], u[1] + v[1], u[2] + v[2]}
}

// Sub returns u-v.
func (u Vec3) Sub(v Vec3) Vec3 {
	return Vec3{u[0] - v[0], u[1] - v[1], u[2] - v[2]}
}

// Scale returns s*u.
func (u Vec3) Scale(s float64) Vec3 {
	return Vec3{s * u[0], s * u[1], s * u[2]}
}

// Dot returns the scalar product u.v.
func (u Vec3) Dot(v Vec3) float64 {
	return u[0]*v[0] + u[1]*v[1] + u[2]*v[2]
}

// Cross returns u x v.
func (u Vec3) Cross(v Vec3) Vec3 {
	return Vec3{
		u[1]*v[2] - u[2]*v[1],
		u[2]*v[0] - u[0]*v[2],
		u[0]*v[1] - u[1]*v[0],
	}
}

// Norm returns |u|.
func (u Vec3) Norm() float64 {
	return math.Sqrt(u.Dot(u))
}

// Body is a massive point: mass (M☉), position r (kpc, internal unit-cube
// coordinates) and momentum p = m*v (mass*kpc/Gyr; see design note on
// momentum vs velocity). Invariant: M > 0.
type Body struct {
	M float64 // mass, solar masses; must be > 0
	R Vec3    // position, internal unit-cube coordinates
	P Vec3    // momentum m*v, internal units
}

// Velocity returns p/m.
func (b *Body) Velocity() Vec3 {
	return b.P.Scale(1.0 / b.M)
}

// Physical constants (spec.md §3).
const (
	// G is the gravitational constant in kpc^3 Msun^-1 Gyr^-2, before the
	// once-per-run domain rescaling described in spec.md §9.
	G = 4.4985022e-6

	// MBH is the central black hole mass used by the Kepler and Spiral
	// generators, in solar masses.
	MBH = 4.0e6

	// MinStarMass and MaxStarMass bound the stellar mass distribution used
	// by every generator, in solar masses.
	MinStarMass = 1.0
	MaxStarMass = 50.0

	// Center is the coordinate of the galaxy's center in the unit cube.
	CenterX, CenterY, CenterZ = 0.5, 0.5, 0.5
)

// Center is the galaxy center as a Vec3.
func Center() Vec3 { return Vec3{CenterX, CenterY, CenterZ} }

// ScaledG is the gravitational constant actually used by the model
// generators and the integrator. It starts at the unscaled physical value
// and is multiplied exactly once per run by RescaleG (spec.md §9: "take
// care to rescale exactly once per simulation run; double-rescaling is a
// subtle and observable bug").
var ScaledG = G

// rescaled guards against RescaleG being invoked more than once.
var rescaled = false

// RescaleG applies the domain rescaling (0.4/iniRadiusKpc)^3 to ScaledG so
// that internal coordinates stay inside the unit cube while physical radii
// scale to iniRadiusKpc (spec.md §3). It panics if called a second time in
// the same process, since double-rescaling would silently corrupt results.
func RescaleG(iniRadiusKpc float64) {
	if rescaled {
		panic("body: RescaleG: G has already been rescaled once this run")
	}
	ScaledG *= (0.4 / iniRadiusKpc) * (0.4 / iniRadiusKpc) * (0.4 / iniRadiusKpc)
	rescaled = true
}
