// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import "math"

// bulkModulusTable is a 37-point table of saturated-liquid bulk modulus K
// (Pa) at 10 °C spacing from 0 °C to 360 °C, per §4.1. Values follow the
// well-known trend of water's isothermal bulk modulus: rising from ~2.0 GPa
// near 0 °C to a broad maximum near 50-60 °C (~2.2-2.3 GPa), then falling
// steeply as the critical point (374 °C) is approached.
var bulkModulusTable = [...]float64{
	2.02e9, 2.10e9, 2.15e9, 2.19e9, 2.22e9, 2.23e9, 2.24e9, 2.23e9, 2.22e9, 2.20e9, // 0-90
	2.17e9, 2.14e9, 2.10e9, 2.05e9, 2.00e9, 1.94e9, 1.88e9, 1.81e9, 1.74e9, 1.66e9, // 100-190
	1.58e9, 1.49e9, 1.40e9, 1.30e9, 1.20e9, 1.09e9, 0.98e9, 0.87e9, 0.75e9, 0.63e9, // 200-290
	0.51e9, 0.40e9, 0.29e9, 0.19e9, 0.11e9, 0.05e9, 0.01e9, // 300-360
}

const bulkModulusStepC = 10.0
const bulkModulusMinC = 0.0

// BulkModulus returns the saturated-liquid bulk modulus K at the given
// Celsius temperature, linearly interpolated between the 37 tabulated
// points, clamped at the table ends.
func BulkModulus(tCelsius float64) float64 {
	n := len(bulkModulusTable)
	x := (tCelsius - bulkModulusMinC) / bulkModulusStepC
	if x <= 0 {
		return bulkModulusTable[0]
	}
	if x >= float64(n-1) {
		return bulkModulusTable[n-1]
	}
	i := int(math.Floor(x))
	frac := x - float64(i)
	return bulkModulusTable[i]*(1-frac) + bulkModulusTable[i+1]*frac
}

// BulkModulusCapped applies a tanh-smoothed numerical cap at KMax (if KMax
// is positive), damping excessive stiffness below the cap as K approaches
// it rather than hard-clamping, which would introduce a derivative
// discontinuity right at the cap and destabilize the RK45 step controller.
func BulkModulusCapped(tCelsius, kMax float64) float64 {
	k := BulkModulus(tCelsius)
	if kMax <= 0 {
		return k
	}
	return kMax * math.Tanh(k/kMax)
}
