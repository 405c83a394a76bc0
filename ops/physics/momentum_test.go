// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

// Test_check_valve_blocks_reverse_flow checks the check-valve override on a
// connection with no pump: under a reverse driving ΔP, ṁ stays ≥ 0 over 1 s.
// Integrated here with simple forward-Euler since the property concerns the
// rate operator's override logic, not the RK45 step controller.
func Test_check_valve_blocks_reverse_flow(tst *testing.T) {

	//verbose()
	chk.PrintTitle("momentum property 8: check valve holds ṁ ≥ 0 under reverse ΔP")

	s := simstate.New()
	s.FlowNodes["a"] = &simstate.FlowNode{ID: "a", Mass: 100, Volume: 0.1, Fluid: simstate.FluidState{T: 400, P: 1e5}}
	s.FlowNodes["b"] = &simstate.FlowNode{ID: "b", Mass: 100, Volume: 0.1, Fluid: simstate.FluidState{T: 400, P: 5e5}}
	s.FlowConnections["c1"] = &simstate.FlowConnection{
		ID: "c1", From: "a", To: "b", Area: 1e-3, Length: 1, MassFlowRate: 0.5,
		CheckValveID: "cv1",
	}
	s.CheckValves["cv1"] = &simstate.CheckValveState{ID: "cv1", FlowConnectionID: "c1", CrackingPressure: 1000}

	op := FlowMomentum{}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		r := simstate.NewRates()
		if err := op.ComputeRates(s, r); err != nil {
			tst.Fatalf("ComputeRates failed: %v", err)
		}
		s.FlowConnections["c1"].MassFlowRate += dt * r.FlowConnections["c1"]
		if s.FlowConnections["c1"].MassFlowRate < 0 {
			tst.Errorf("ṁ went negative at t=%.3fs: %g", float64(i+1)*dt, s.FlowConnections["c1"].MassFlowRate)
		}
	}
}

// Test_pump_backflow_blocked is scenario S6: a running pump driving against
// a closed downstream valve brings ṁ to ≈0 within the 2 s run and ṁ stays
// ≥ 0 throughout.
func Test_pump_backflow_blocked(tst *testing.T) {

	//verbose()
	chk.PrintTitle("scenario S6: running pump blocks backflow against a closed valve")

	s := simstate.New()
	s.FlowNodes["a"] = &simstate.FlowNode{ID: "a", Mass: 100, Volume: 0.1, Fluid: simstate.FluidState{T: 400, P: 1e5}}
	s.FlowNodes["b"] = &simstate.FlowNode{ID: "b", Mass: 100, Volume: 0.1, Fluid: simstate.FluidState{T: 400, P: 8e5}}
	s.FlowConnections["c1"] = &simstate.FlowConnection{
		ID: "c1", From: "a", To: "b", Area: 1e-3, Length: 1, MassFlowRate: 0.3,
		PumpID: "p1", ValveID: "v1",
	}
	s.Pumps["p1"] = &simstate.PumpState{ID: "p1", Running: true, EffectiveSpeed: 1, RatedHead: 20}
	s.Valves["v1"] = &simstate.ValveState{ID: "v1", Position: 0}

	op := FlowMomentum{}
	dt := 0.001
	for i := 0; i < 2000; i++ {
		r := simstate.NewRates()
		if err := op.ComputeRates(s, r); err != nil {
			tst.Fatalf("ComputeRates failed: %v", err)
		}
		s.FlowConnections["c1"].MassFlowRate += dt * r.FlowConnections["c1"]
		if s.FlowConnections["c1"].MassFlowRate < 0 {
			tst.Errorf("ṁ went negative at t=%.3fs: %g", float64(i+1)*dt, s.FlowConnections["c1"].MassFlowRate)
		}
	}
	if s.FlowConnections["c1"].MassFlowRate > 1e-6 {
		tst.Errorf("expected connection flow to settle near 0, got %g", s.FlowConnections["c1"].MassFlowRate)
	}
}
