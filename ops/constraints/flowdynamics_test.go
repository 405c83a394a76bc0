// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraints

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

func Test_flowdynamics_clamps_pump_backflow(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flow dynamics clamps negative flow on a running pump connection")

	s := simstate.New()
	s.FlowNodes["a"] = &simstate.FlowNode{ID: "a", Mass: 10, Volume: 0.1, Fluid: simstate.FluidState{P: 2e5}}
	s.FlowNodes["b"] = &simstate.FlowNode{ID: "b", Mass: 10, Volume: 0.1, Fluid: simstate.FluidState{P: 2e5}}
	s.FlowConnections["c1"] = &simstate.FlowConnection{
		ID: "c1", From: "a", To: "b", MassFlowRate: -5, PumpID: "p1",
	}
	s.Pumps["p1"] = &simstate.PumpState{ID: "p1", Running: true, EffectiveSpeed: 1}

	out, err := FlowDynamicsConstraint{}.ApplyConstraints(s)
	if err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	if out.FlowConnections["c1"].MassFlowRate != 0 {
		tst.Errorf("expected pump connection flow clamped to 0, got %g", out.FlowConnections["c1"].MassFlowRate)
	}
	if s.FlowConnections["c1"].MassFlowRate != -5 {
		tst.Errorf("ApplyConstraints must not mutate the input state")
	}
}

func Test_flowdynamics_clamps_check_valve(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flow dynamics clamps negative flow through a check valve")

	s := simstate.New()
	s.FlowNodes["a"] = &simstate.FlowNode{ID: "a", Mass: 10, Volume: 0.1, Fluid: simstate.FluidState{P: 2e5}}
	s.FlowNodes["b"] = &simstate.FlowNode{ID: "b", Mass: 10, Volume: 0.1, Fluid: simstate.FluidState{P: 2e5}}
	s.FlowConnections["c1"] = &simstate.FlowConnection{
		ID: "c1", From: "a", To: "b", MassFlowRate: -3, CheckValveID: "cv1",
	}
	s.CheckValves["cv1"] = &simstate.CheckValveState{ID: "cv1", FlowConnectionID: "c1"}

	out, err := FlowDynamicsConstraint{}.ApplyConstraints(s)
	if err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	if out.FlowConnections["c1"].MassFlowRate != 0 {
		tst.Errorf("expected check-valve connection flow clamped to 0, got %g", out.FlowConnections["c1"].MassFlowRate)
	}
}

func Test_flowdynamics_display_flow_is_informational(tst *testing.T) {

	//verbose()
	chk.PrintTitle("flow dynamics computes a steady-state display flow without touching integrated ṁ")

	s := simstate.New()
	s.FlowNodes["a"] = &simstate.FlowNode{ID: "a", Mass: 100, Volume: 0.1, Fluid: simstate.FluidState{P: 3e5}}
	s.FlowNodes["b"] = &simstate.FlowNode{ID: "b", Mass: 100, Volume: 0.1, Fluid: simstate.FluidState{P: 1e5}}
	s.FlowConnections["c1"] = &simstate.FlowConnection{
		ID: "c1", From: "a", To: "b", Area: 1e-3, ResistanceK: 2, MassFlowRate: 0.4,
	}

	out, err := FlowDynamicsConstraint{}.ApplyConstraints(s)
	if err != nil {
		tst.Fatalf("ApplyConstraints failed: %v", err)
	}
	conn := out.FlowConnections["c1"]
	if conn.DisplayMassFlowRate <= 0 {
		tst.Errorf("expected a positive steady-state display flow for positive driving ΔP, got %g", conn.DisplayMassFlowRate)
	}
	if conn.MassFlowRate != 0.4 {
		tst.Errorf("display flow computation must not perturb the integrated ṁ, got %g", conn.MassFlowRate)
	}
}
