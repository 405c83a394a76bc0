// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

func Test_conduction_flows_hot_to_cold(tst *testing.T) {

	//verbose()
	chk.PrintTitle("conduction moves heat from the hotter node to the colder one")

	s := simstate.New()
	s.ThermalNodes["hot"] = &simstate.ThermalNode{ID: "hot", T: 600, M: 10, Cp: 400}
	s.ThermalNodes["cold"] = &simstate.ThermalNode{ID: "cold", T: 400, M: 10, Cp: 400}
	s.ThermalConnections["c1"] = &simstate.ThermalConnection{ID: "c1", From: "hot", To: "cold", Conductance: 50}

	r := simstate.NewRates()
	if err := (Conduction{}).ComputeRates(s, r); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	if r.ThermalNodes["hot"] >= 0 {
		tst.Errorf("expected hot node to cool, got dT/dt=%g", r.ThermalNodes["hot"])
	}
	if r.ThermalNodes["cold"] <= 0 {
		tst.Errorf("expected cold node to warm, got dT/dt=%g", r.ThermalNodes["cold"])
	}
	if r.ThermalNodes["hot"] != -r.ThermalNodes["cold"] {
		tst.Errorf("equal mass/cp nodes should exchange equal and opposite dT/dt: %g vs %g",
			r.ThermalNodes["hot"], r.ThermalNodes["cold"])
	}
}
