// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

func Test_convection_cools_solid_warms_fluid(tst *testing.T) {

	//verbose()
	chk.PrintTitle("convection moves heat from hot solid into cooler fluid")

	s := simstate.New()
	s.ThermalNodes["clad"] = &simstate.ThermalNode{ID: "clad", T: 600, M: 5, Cp: 400}
	s.FlowNodes["coolant"] = &simstate.FlowNode{
		ID: "coolant", Mass: 50, U: 1e6, Volume: 0.05, HydraulicDiam: 0.01, FlowArea: 1e-3,
		Fluid: simstate.FluidState{T: 550},
	}
	s.ConvectionConnections["cv1"] = &simstate.ConvectionConnection{
		ID: "cv1", SolidNodeID: "clad", FluidNodeID: "coolant", SurfaceArea: 0.2,
	}
	s.FlowConnections["f1"] = &simstate.FlowConnection{ID: "f1", From: "in", To: "coolant", MassFlowRate: 5}

	r := simstate.NewRates()
	if err := (Convection{}).ComputeRates(s, r); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	if r.ThermalNodes["clad"] >= 0 {
		tst.Errorf("expected clad to cool, got dT/dt=%g", r.ThermalNodes["clad"])
	}
	if r.FlowNodes["coolant"].DEnergyDt <= 0 {
		tst.Errorf("expected coolant to gain energy, got dU/dt=%g", r.FlowNodes["coolant"].DEnergyDt)
	}
}

func Test_convection_no_flow_falls_back_to_natural(tst *testing.T) {

	//verbose()
	chk.PrintTitle("convection falls back to natural-convection coefficient with no local flow")

	s := simstate.New()
	s.ThermalNodes["clad"] = &simstate.ThermalNode{ID: "clad", T: 500, M: 5, Cp: 400}
	s.FlowNodes["coolant"] = &simstate.FlowNode{
		ID: "coolant", Mass: 50, U: 1e6, Volume: 0.05,
		Fluid: simstate.FluidState{T: 400},
	}
	s.ConvectionConnections["cv1"] = &simstate.ConvectionConnection{
		ID: "cv1", SolidNodeID: "clad", FluidNodeID: "coolant", SurfaceArea: 0.2,
	}

	r := simstate.NewRates()
	if err := (Convection{}).ComputeRates(s, r); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	if r.ThermalNodes["clad"] >= 0 {
		tst.Errorf("expected clad to still cool under natural convection, got dT/dt=%g", r.ThermalNodes["clad"])
	}
}
