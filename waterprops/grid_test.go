// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_grid_interpolate_exact_hit(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid interpolation returns exact hit for a tabulated point")

	b := testBackend(tst)
	pt := b.Grid.Points[len(b.Grid.Points)/2]

	T, P, ok := b.Grid.InterpolateVapor(pt.U, pt.V)
	if !ok {
		tst.Errorf("expected interpolation to succeed at a tabulated point")
		return
	}
	if T != pt.T || P != pt.P {
		tst.Errorf("exact hit should reproduce the tabulated value exactly: got T=%g P=%g want T=%g P=%g", T, P, pt.T, pt.P)
	}
}

func Test_grid_interpolate_between_points(tst *testing.T) {

	//verbose()
	chk.PrintTitle("grid interpolation blends nearby points")

	b := testBackend(tst)
	a := b.Grid.Points[0]
	c := b.Grid.Points[1]
	midU := (a.U + c.U) / 2
	midV := (a.V + c.V) / 2

	_, _, ok := b.Grid.InterpolateVapor(midU, midV)
	if !ok {
		tst.Errorf("expected interpolation to succeed between two tabulated points")
	}
}
