// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rk45 implements the Dormand-Prince DOPRI5 embedded Runge-Kutta
// engine of §4.5: a 7-stage, 5th-order solution with a 4th-order embedded
// error estimate, adaptive step-size control, and the DAE-aware stage loop
// that applies the constraint operators between every kᵢ evaluation.
package rk45

// tableau holds the seven DOPRI5 coefficients c, a, b5, b4, computed once
// and reused every step, in the style of the teacher's DynCoefs holding
// θ1,θ2,α1..α8 as a small struct of named constants (fem/dyncoefs.go) rather
// than recomputing them inline at each call site.
type tableauT struct {
	c  [7]float64
	a  [7][6]float64 // a[i][j], j < i, 0-indexed stage i (stage 1 has no predecessors)
	b5 [7]float64     // 5th-order solution weights
	b4 [7]float64     // 4th-order embedded estimate weights
}

// dopri5 is the standard Dormand-Prince 5(4) tableau.
var dopri5 = tableauT{
	c: [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1},
	a: [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	},
	b5: [7]float64{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84, 0},
	b4: [7]float64{5179.0 / 57600, 0, 7571.0 / 16695, 393.0 / 640, -92097.0 / 339200, 187.0 / 2100, 1.0 / 40},
}
