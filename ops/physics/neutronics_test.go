// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

// Test_point_kinetics_steady_state is testable property 7: with ρ=0, N and C
// remain constant to within integration tolerance for 100 s of simulated
// time. This isolates Neutronics with simple forward-Euler integration
// (the RK45 engine is tested separately) since the property is about the
// rate operator's own fixed point, not the step controller.
func Test_point_kinetics_steady_state(tst *testing.T) {

	//verbose()
	chk.PrintTitle("point kinetics property 7: steady state at ρ=0")

	nts := &simstate.NeutronicsState{
		Power:        1e6,
		NominalPower: 1e6,
		Lambda:       2e-5,
		Beta:         0.0065,
		DecayConst:   0.1,
	}
	// C = β/(Λ·λ)·N at equilibrium for ρ=0.
	nts.Precursor = nts.Beta / (nts.Lambda * nts.DecayConst) * (nts.Power / nts.NominalPower)

	s := simstate.New()
	s.Neutronics = nts

	dt := 0.001
	steps := int(100.0 / dt)
	op := Neutronics{}
	for i := 0; i < steps; i++ {
		r := simstate.NewRates()
		if err := op.ComputeRates(s, r); err != nil {
			tst.Fatalf("ComputeRates failed: %v", err)
		}
		s.Neutronics.Power += dt * r.Neutronics.DPowerDt
		s.Neutronics.Precursor += dt * r.Neutronics.DPrecursorDt
	}

	if math.Abs(s.Neutronics.Power-1e6)/1e6 > 1e-3 {
		tst.Errorf("power drifted from steady state: %g (expected ~1e6)", s.Neutronics.Power)
	}
}

// Test_scram_power_decreases is testable property 9: after triggerScram,
// power monotonically decreases for the first 10 s and is bounded below by
// the decay-heat fraction thereafter.
func Test_scram_power_decreases(tst *testing.T) {

	//verbose()
	chk.PrintTitle("point kinetics property 9: scram decreases power, floors at decay heat")

	nts := &simstate.NeutronicsState{
		Power:              1e6,
		NominalPower:       1e6,
		Lambda:             1e-4,
		Beta:               0.0065,
		DecayConst:         0.1,
		ControlRodWorth:    -0.01,
		ControlRodPosition: 1,
		Scrammed:           true,
	}
	nts.Precursor = nts.Beta / nts.Lambda / nts.DecayConst

	s := simstate.New()
	s.Neutronics = nts

	dt := 0.0005
	op := Neutronics{}
	last := nts.Power
	steps10s := int(10.0 / dt)
	for i := 0; i < steps10s; i++ {
		r := simstate.NewRates()
		if err := op.ComputeRates(s, r); err != nil {
			tst.Fatalf("ComputeRates failed: %v", err)
		}
		s.Neutronics.Power += dt * r.Neutronics.DPowerDt
		s.Neutronics.Precursor += dt * r.Neutronics.DPrecursorDt
		s.Neutronics.TimeSinceScram += dt
		if s.Neutronics.Power > last+1e-6*nts.NominalPower {
			tst.Errorf("power increased during scram at t=%.3fs: %g -> %g", s.Neutronics.TimeSinceScram, last, s.Neutronics.Power)
		}
		last = s.Neutronics.Power
	}

	floor := DecayHeatFraction(s.Neutronics.TimeSinceScram) * nts.NominalPower
	if s.Neutronics.Power < floor*0.5 {
		tst.Errorf("power %g fell far below decay-heat floor %g", s.Neutronics.Power, floor)
	}
}
