// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraints

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

func testBackend(tst *testing.T) *waterprops.Backend {
	b, err := waterprops.DefaultBackend()
	if err != nil {
		tst.Fatalf("DefaultBackend failed: %v", err)
	}
	return b
}

// Test_ncg01 is scenario S1: flow node V=1.0 m³, mass=900 kg, T held at
// 350 K, add 1.0 mol N2. Expected ΔP_total ≈ 2910 Pa above the pure-steam
// pressure, within 1 Pa.
func Test_ncg01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("NCG partial pressure: single species")

	b := testBackend(tst)
	s := simstate.New()

	T := 350.0
	uf := b.Dome.SatLiquidEnergy(T)
	mass, V := 900.0, 1.0
	n := &simstate.FlowNode{
		ID: "n1", Mass: mass, U: uf * mass, Volume: V,
		NCG: map[string]float64{"N2": 1.0},
	}
	s.FlowNodes["n1"] = n

	c := FluidStateConstraint{Backend: b, PressureModel: HybridPressure}
	out, err := c.ApplyConstraints(s)
	if err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	got := out.FlowNodes["n1"].Fluid.PartialPressureNCG
	want := 1.0 * gasConstantR * T / V
	if math.Abs(got-want) > 1.0 {
		tst.Errorf("NCG partial pressure = %.4g Pa, want %.4g Pa", got, want)
	}
}

// Test_ncg02 is scenario S2: V=0.5 m³, T=400 K, NCG {N2:0.78, O2:0.21}.
// Expected NCG partial pressure ≈ 6586 Pa, within 0.2% relative error.
func Test_ncg02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("NCG partial pressure: air mixture")

	b := testBackend(tst)
	s := simstate.New()

	T := 400.0
	uf := b.Dome.SatLiquidEnergy(T)
	mass, V := 250.0, 0.5
	s.FlowNodes["n1"] = &simstate.FlowNode{
		ID: "n1", Mass: mass, U: uf * mass, Volume: V,
		NCG: map[string]float64{"N2": 0.78, "O2": 0.21},
	}

	c := FluidStateConstraint{Backend: b, PressureModel: HybridPressure}
	out, err := c.ApplyConstraints(s)
	if err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	got := out.FlowNodes["n1"].Fluid.PartialPressureNCG
	want := 0.99 * gasConstantR * T / V
	if math.Abs(got-want)/want > 0.002 {
		tst.Errorf("NCG partial pressure = %.6g Pa, want %.6g Pa (rel err %.4g)",
			got, want, math.Abs(got-want)/want)
	}
}

func Test_fluidstate_does_not_mutate_input(tst *testing.T) {

	//verbose()
	chk.PrintTitle("FluidStateConstraint returns a new state, does not mutate input")

	b := testBackend(tst)
	s := simstate.New()
	T := 350.0
	uf := b.Dome.SatLiquidEnergy(T)
	mass, V := 100.0, 0.12
	s.FlowNodes["n1"] = &simstate.FlowNode{ID: "n1", Mass: mass, U: uf * mass, Volume: V}

	before := s.FlowNodes["n1"].Fluid

	c := FluidStateConstraint{Backend: b, PressureModel: PureGridPressure}
	_, err := c.ApplyConstraints(s)
	if err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	after := s.FlowNodes["n1"].Fluid
	if before != after {
		tst.Errorf("input state's FluidState changed: before=%+v after=%+v", before, after)
	}
}
