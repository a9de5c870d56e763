// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sampler implements inverse-CDF sampling of arbitrary 1-D
// densities on [0,1], used by the model generators to place bodies
// radially according to a chosen surface-density profile.
package sampler

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/rnd"
	"gonum.org/v1/gonum/integrate/quad"
)

// Density is a non-negative function defined on [0,1].
type Density func(x float64) float64

// quadPoints is the number of fixed Gauss-Legendre nodes used to evaluate
// Z = ∫₀¹ f and the CDF integrals. The same fixed rule is used for every
// density, with no adaptive subdivision, including piecewise densities
// such as the Spiral profile whose slope jumps at its bulge boundary.
const quadPoints = 256

// x0 is the root-finder's starting guess, per spec.md §4.1.
const x0 = 1.0e-3

// Sample draws N samples in [0,1] distributed proportionally to f, using a
// PRNG seeded deterministically by seed. It calls rnd.Init(seed) itself, so
// callers must treat Sample as the first draw from the shared gosl rnd
// stream in any given call chain: calling it after other rnd.Float64 draws
// would rewind the stream and repeat them, and calling it again afterwards
// to draw something else would replay Sample's own uniforms. Root-finder
// failures are fatal (NumericError, spec.md §7) since a non-convergent
// sample cannot be used.
func Sample(f Density, n int, seed int64) []float64 {
	z := quad.Fixed(f, 0, 1, quadPoints, nil, 0)
	if math.IsNaN(z) || math.IsInf(z, 0) || z <= 0 {
		chk.Panic("sampler: Sample: normalisation integral is non-finite or non-positive: Z=%v", z)
	}
	g := func(x float64) float64 { return f(x) / z }

	rnd.Init(seed)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		u := rnd.Float64(0, 1)
		out[i] = invert(g, u)
	}
	return out
}

// invert solves ∫₀^x g(t)dt = u for x, starting the search at x0.
func invert(g Density, u float64) float64 {
	var nls num.NlSolver
	nls.Init(1, func(fx, x []float64) error {
		fx[0] = quad.Fixed(g, 0, x[0], quadPoints, nil, 0) - u
		return nil
	}, nil, nil, true, false, map[string]float64{"lSearch": 0})
	x := []float64{x0}
	nls.SetTols(1e-12, 1e-12, 1e-15, num.EPS)
	if err := nls.Solve(x, true); err != nil {
		chk.Panic("sampler: invert: root solver failed to converge for u=%v: %v", u, err)
	}
	if math.IsNaN(x[0]) || math.IsInf(x[0], 0) {
		chk.Panic("sampler: invert: non-finite root for u=%v", u)
	}
	if x[0] < 0 {
		return 0
	}
	if x[0] > 1 {
		return 1
	}
	return x[0]
}
