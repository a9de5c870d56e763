// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gosl/rnd"
	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/sampler"
)

// Spiral generator constants (spec.md §4.2).
const (
	bulgeConst  = 2.5
	discConst   = 0.2
	bulgeRadius = 0.2 // fraction of iniRKepler marking the bulge/disc boundary
	bulgeSemi   = 0.072
	discHalfZ   = 0.02
)

func spiralDensity(x float64) float64 {
	f1 := func(u float64) float64 { return math.Exp(-math.Pow(u, 0.25) / bulgeConst) }
	if x < bulgeRadius {
		return x * f1(x)
	}
	f2 := f1(bulgeRadius) * math.Exp(-(x-bulgeRadius)/discConst)
	return x * f2
}

// spiral builds an N-1 unit-mass star disk with a Sérsic-like bulge and
// exponential disc, plus a central black hole, per spec.md §4.2.
func spiral(n int, alpha, beta float64) []Row {
	rows := make([]Row, n)
	nStars := n - 1

	// sampler.Sample seeds the shared gosl rnd stream itself; it must run
	// before any other draw from that stream, or the later draws would
	// rewind and repeat it (see package sampler).
	radii := sampler.Sample(spiralDensity, nStars, seed)
	gammas := uniformAzimuths(nStars)

	center := body.Center()
	for i := 0; i < nStars; i++ {
		r := radii[i] * iniRKepler

		// Vertical offset: ellipsoidal within the bulge, uniform band
		// outside it. beta_i is computed locally per body and never
		// written back to beta, so tilt never leaks across iterations
		// (spec.md §9 open question).
		var z float64
		if r < bulgeRadius*iniRKepler {
			a := bulgeSemi * math.Sqrt(1-(r/(bulgeRadius*iniRKepler))*(r/(bulgeRadius*iniRKepler)))
			z = rnd.Float64(-a, a)
		} else {
			z = rnd.Float64(-discHalfZ, discHalfZ)
		}
		betaI := beta + math.Atan(z/r)
		rEff := math.Sqrt(r*r + z*z)

		er := eR(gammas[i], alpha, betaI)
		et := eT(gammas[i], alpha, betaI)
		pos := center.Add(er.Scale(rEff))

		v := math.Sqrt(body.ScaledG * body.MBH / rEff)
		mom := et.Scale(body.MinStarMass * v)

		rows[i] = Row{body.MinStarMass, pos[0], pos[1], pos[2], mom[0], mom[1], mom[2]}
	}

	rows[nStars] = Row{body.MBH, center[0], center[1], center[2], 0, 0, 0}
	return rows
}
