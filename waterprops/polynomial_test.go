// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_polynomial_horner_eval(tst *testing.T) {

	//verbose()
	chk.PrintTitle("polynomial Horner evaluation")

	// p(x) = 2x^2 + 3x + 1
	p := PolynomialFit{XMin: -10, XMax: 10, Degree: 2, Coeffs: []float64{2, 3, 1}}
	got := p.Eval(2)
	want := 2*4.0 + 3*2.0 + 1.0
	if got != want {
		tst.Errorf("Eval(2) = %g, want %g", got, want)
	}
}

func Test_piecewise_fit_clamps_outside_domain(tst *testing.T) {

	//verbose()
	chk.PrintTitle("piecewise fit clamps outside its domain")

	f := piecewiseFit{
		{XMin: 0, XMax: 10, Degree: 1, Coeffs: []float64{1, 0}},
		{XMin: 10, XMax: 20, Degree: 1, Coeffs: []float64{2, -10}},
	}
	below := f.Eval(-5)
	above := f.Eval(30)
	if below != f[0].Eval(-5) {
		tst.Errorf("below-domain eval should clamp to first segment")
	}
	if above != f[1].Eval(30) {
		tst.Errorf("above-domain eval should clamp to last segment")
	}
}
