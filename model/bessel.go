// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/jdOchoa2/Barnes-Hut/body"
	"github.com/jdOchoa2/Barnes-Hut/sampler"
)

// iniRBessel is the internal disk radius used by the Bessel generator
// (spec.md §4.2).
const iniRBessel = 0.5

// rdInternal is the exponential disk scale length, in internal units
// (spec.md §4.2).
const rdInternal = 0.1

// bessel builds an N-star exponential disk with no central black hole,
// per spec.md §4.2.
func bessel(n int, alpha, beta float64) []Row {
	rows := make([]Row, n)

	// sampler.Sample seeds the shared gosl rnd stream itself; it must run
	// before any other draw from that stream, or the later draws would
	// rewind and repeat it (see package sampler).
	f := func(x float64) float64 { return x * math.Exp(-x/rdInternal) }
	radii := sampler.Sample(f, n, seed)
	masses := uniformMasses(n, body.MinStarMass, body.MaxStarMass)
	gammas := uniformAzimuths(n)

	rMax := iniRBessel
	rd := rdInternal * rMax
	mTotal := 0.0
	for _, m := range masses {
		mTotal += m
	}
	denom := rd*rd - (rMax*rMax+rMax*rd)*math.Exp(-rMax/rd)
	if denom <= 0 {
		chk.Panic("model: bessel: surface density denominator is non-positive (Rd/Rmax out of range): %v", denom)
	}
	sigma := mTotal / (2 * math.Pi * denom)

	center := body.Center()
	for i := 0; i < n; i++ {
		r := radii[i] * rMax
		er := eR(gammas[i], alpha, beta)
		et := eT(gammas[i], alpha, beta)
		pos := center.Add(er.Scale(r))

		y := r / (2 * rd)
		v2 := 4 * math.Pi * body.ScaledG * sigma * y * y * (besselI0(y)*besselK0(y) - besselI1(y)*besselK1(y))
		if v2 < 0 {
			v2 = 0
		}
		v := math.Sqrt(v2)
		mom := et.Scale(masses[i] * v)

		rows[i] = Row{masses[i], pos[0], pos[1], pos[2], mom[0], mom[1], mom[2]}
	}
	return rows
}

// The modified Bessel function approximations below follow Abramowitz &
// Stegun 9.8.1-9.8.8. Neither gosl nor the retrieval pack ships modified
// Bessel functions of the second kind, so they are implemented directly
// here (see DESIGN.md); the exponential-disk rotation curve is the only
// caller.

func besselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		t := x / 3.75
		t2 := t * t
		return 1.0 + t2*(3.5156229+t2*(3.0899424+t2*(1.2067492+
			t2*(0.2659732+t2*(0.0360768+t2*0.0045813)))))
	}
	t := 3.75 / ax
	return (math.Exp(ax) / math.Sqrt(ax)) * (0.39894228 + t*(0.01328592+
		t*(0.00225319+t*(-0.00157565+t*(0.00916281+t*(-0.02057706+
			t*(0.02635537+t*(-0.01647633+t*0.00392377))))))))
}

func besselI1(x float64) float64 {
	ax := math.Abs(x)
	var result float64
	if ax < 3.75 {
		t := x / 3.75
		t2 := t * t
		result = ax * (0.5 + t2*(0.87890594+t2*(0.51498869+t2*(0.15084934+
			t2*(0.02658733+t2*(0.00301532+t2*0.00032411))))))
	} else {
		t := 3.75 / ax
		result = 0.02282967 + t*(-0.02895312+t*(0.01787654-t*0.00420059))
		result = 0.39894228 + t*(-0.03988024+t*(-0.00362018+t*(0.00163801+
			t*(-0.01031555+t*result))))
		result *= math.Exp(ax) / math.Sqrt(ax)
	}
	if x < 0 {
		return -result
	}
	return result
}

func besselK0(x float64) float64 {
	if x <= 2.0 {
		t := x * x / 4.0
		return -math.Log(x/2.0)*besselI0(x) + (-0.57721566 + t*(0.42278420+
			t*(0.23069756+t*(0.03488590+t*(0.00262698+t*(0.00010750+t*0.0000074))))))
	}
	t := 2.0 / x
	return (math.Exp(-x) / math.Sqrt(x)) * (1.25331414 + t*(-0.07832358+
		t*(0.02189568+t*(-0.01062446+t*(0.00587872+t*(-0.00251540+t*0.00053208))))))
}

func besselK1(x float64) float64 {
	if x <= 2.0 {
		t := x * x / 4.0
		return math.Log(x/2.0)*besselI1(x) + (1.0/x)*(1.0+t*(0.15443144+
			t*(-0.67278579+t*(-0.18156897+t*(-0.01919402+t*(-0.00110404+t*(-0.00004686)))))))
	}
	t := 2.0 / x
	return (math.Exp(-x) / math.Sqrt(x)) * (1.25331414 + t*(0.23498619+
		t*(-0.03655620+t*(0.01504268+t*(-0.00780353+t*(0.00325614+t*(-0.00068245)))))))
}
