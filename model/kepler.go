// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/sampler"
)

// iniRKepler is the internal disk radius used by the Kepler and Spiral
// generators (spec.md §4.2).
const iniRKepler = 0.4

// kepler builds an N-1 star disk with areal-uniform radial density and a
// central black hole at rest, per spec.md §4.2.
func kepler(n int, alpha, beta float64) []Row {
	rows := make([]Row, n)
	nStars := n - 1

	// sampler.Sample seeds the shared gosl rnd stream itself; it must run
	// before any other draw from that stream, or the later draws would
	// rewind and repeat it (see package sampler).
	radii := sampler.Sample(func(x float64) float64 { return x }, nStars, seed)
	masses := uniformMasses(nStars, body.MinStarMass, body.MaxStarMass)
	gammas := uniformAzimuths(nStars)

	center := body.Center()
	for i := 0; i < nStars; i++ {
		r := radii[i] * iniRKepler
		er := eR(gammas[i], alpha, beta)
		et := eT(gammas[i], alpha, beta)
		pos := center.Add(er.Scale(r))

		v := math.Sqrt(body.ScaledG * body.MBH / r)
		mom := et.Scale(masses[i] * v)

		rows[i] = Row{masses[i], pos[0], pos[1], pos[2], mom[0], mom[1], mom[2]}
	}

	rows[nStars] = Row{body.MBH, center[0], center[1], center[2], 0, 0, 0}
	return rows
}
