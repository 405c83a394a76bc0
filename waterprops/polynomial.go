// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import "github.com/cpmech/gosl/chk"

// PolynomialFit is a piecewise polynomial segment, valid on [XMin,XMax],
// with coefficients ordered highest-degree-first (Horner form).
type PolynomialFit struct {
	XMin   float64   `json:"x_min"`
	XMax   float64   `json:"x_max"`
	Degree int       `json:"degree"`
	Coeffs []float64 `json:"coeffs"`
}

// Contains returns whether x falls within [XMin,XMax].
func (p *PolynomialFit) Contains(x float64) bool {
	return x >= p.XMin && x <= p.XMax
}

// Eval evaluates the polynomial at x using Horner's method, regardless of
// whether x falls within [XMin,XMax] (callers decide on extrapolation).
func (p *PolynomialFit) Eval(x float64) float64 {
	y := 0.0
	for _, c := range p.Coeffs {
		y = y*x + c
	}
	return y
}

// piecewiseFit is a set of PolynomialFit segments assumed sorted by XMin and
// spanning a contiguous domain.
type piecewiseFit []PolynomialFit

// Eval finds the segment containing x and evaluates it; if x falls outside
// every segment it clamps to the nearest segment and evaluates there, which
// is the "extrapolate with the boundary polynomial" policy used throughout
// the saturation dome (steep near the critical point, but bounded callers
// already clamp upstream per §4.1 edge policies).
func (f piecewiseFit) Eval(x float64) float64 {
	if len(f) == 0 {
		chk.Panic("waterprops: piecewise fit has no segments")
	}
	for i := range f {
		if f[i].Contains(x) {
			return f[i].Eval(x)
		}
	}
	if x < f[0].XMin {
		return f[0].Eval(x)
	}
	return f[len(f)-1].Eval(x)
}
