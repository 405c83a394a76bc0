// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "math"

const decayHeatFloor = 0.01 // 1% (Neutronics scales the fraction by NominalPower), the curve's lower clamp

// DecayHeatFraction follows the closed-form ANS-style curve 0.07·t^-0.2 for
// t seconds since scram, clamped below at 1%. For t < 1 s the fraction is
// held at its t=1s value (0.07) to avoid the t->0 singularity; this is a
// simplified, deliberately non-isotope-resolved curve (§4.3, and see
// DESIGN.md for why the per-isotope Bateman-equation approach some
// references use is out of scope here).
func DecayHeatFraction(tSinceScram float64) float64 {
	t := tSinceScram
	if t < 1.0 {
		t = 1.0
	}
	f := 0.07 * math.Pow(t, -0.2)
	if f < decayHeatFloor {
		return decayHeatFloor
	}
	return f
}
