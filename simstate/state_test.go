// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstate

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func sampleState() *State {
	s := New()
	s.FlowNodes["n1"] = &FlowNode{ID: "n1", Mass: 100, U: 1e8, Volume: 1, NCG: map[string]float64{"N2": 1.0}}
	s.ThermalNodes["t1"] = &ThermalNode{ID: "t1", T: 600, M: 50, Cp: 400}
	s.Pumps["p1"] = &PumpState{ID: "p1", Running: true, TargetSpeed: 1, EffectiveSpeed: 0.5}
	s.Neutronics = &NeutronicsState{CoreID: "core1", Power: 1e9, NominalPower: 1e9, Precursor: 1.0}
	return s
}

func Test_clone_is_independent(tst *testing.T) {

	//verbose()
	chk.PrintTitle("clone produces an independent copy")

	s := sampleState()
	c := s.Clone()

	c.FlowNodes["n1"].Mass = 999
	c.FlowNodes["n1"].NCG["N2"] = 42
	c.ThermalNodes["t1"].T = 1
	c.Neutronics.Power = 1

	if s.FlowNodes["n1"].Mass == 999 {
		tst.Errorf("mutating clone's flow node mass affected original")
	}
	if s.FlowNodes["n1"].NCG["N2"] == 42 {
		tst.Errorf("mutating clone's NCG map affected original")
	}
	if s.ThermalNodes["t1"].T == 1 {
		tst.Errorf("mutating clone's thermal node affected original")
	}
	if s.Neutronics.Power == 1 {
		tst.Errorf("mutating clone's neutronics affected original")
	}
}

func Test_clone_does_not_carry_pending_events(tst *testing.T) {

	//verbose()
	chk.PrintTitle("clone does not duplicate the pending-events mailbox")

	s := sampleState()
	s.PushEvent(Event{Kind: "burst", NodeID: "n1"})
	c := s.Clone()
	if len(c.PendingEvents) != 0 {
		tst.Errorf("expected clone to start with an empty mailbox, got %d events", len(c.PendingEvents))
	}
	events := s.DrainEvents()
	if len(events) != 1 {
		tst.Errorf("expected 1 drained event, got %d", len(events))
	}
	if len(s.PendingEvents) != 0 {
		tst.Errorf("expected mailbox cleared after drain")
	}
}

func Test_apply_rates_integrates_and_clamps_pump(tst *testing.T) {

	//verbose()
	chk.PrintTitle("apply rates integrates state and clamps pump speed")

	s := sampleState()
	r := NewRates()
	r.AddFlowNode("n1", -1.0, -1000.0)
	r.AddThermalNode("t1", 2.0)
	r.AddPump("p1", 10.0) // would overshoot TargetSpeed=1

	out := ApplyRates(s, r, 1.0)

	if out.FlowNodes["n1"].Mass != 99 {
		tst.Errorf("expected mass 99, got %g", out.FlowNodes["n1"].Mass)
	}
	if out.ThermalNodes["t1"].T != 602 {
		tst.Errorf("expected T 602, got %g", out.ThermalNodes["t1"].T)
	}
	if out.Pumps["p1"].EffectiveSpeed != 1.0 {
		tst.Errorf("expected pump speed clamped to target 1.0, got %g", out.Pumps["p1"].EffectiveSpeed)
	}
	if s.FlowNodes["n1"].Mass != 100 {
		tst.Errorf("ApplyRates must not mutate the input state")
	}
}

func Test_rates_add_and_scale(tst *testing.T) {

	//verbose()
	chk.PrintTitle("rates bag add and scale are element-wise")

	a := NewRates()
	a.AddFlowNode("n1", 1, 2)
	b := NewRates()
	b.AddFlowNode("n1", 3, 4)

	sum := a.Add(b)
	if sum.FlowNodes["n1"].DMassDt != 4 || sum.FlowNodes["n1"].DEnergyDt != 6 {
		tst.Errorf("unexpected sum: %+v", sum.FlowNodes["n1"])
	}

	scaled := a.Scale(2)
	if scaled.FlowNodes["n1"].DMassDt != 2 || scaled.FlowNodes["n1"].DEnergyDt != 4 {
		tst.Errorf("unexpected scale: %+v", scaled.FlowNodes["n1"])
	}
}
