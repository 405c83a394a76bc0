// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rk45

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

func scrammableState() *simstate.State {
	s := simstate.New()
	s.ThermalNodes["fuel"] = &simstate.ThermalNode{ID: "fuel", T: 600, M: 2000, Cp: 300, IsFuel: true, MaxTemperature: 1200}
	s.Neutronics = &simstate.NeutronicsState{
		CoreID: "core1", FuelNodeID: "fuel",
		Power: 3e9, NominalPower: 3e9,
		Lambda: 2e-5, Beta: 0.0065, DecayConst: 0.1,
		ControlRodPosition: 1,
	}
	return s
}

func Test_trigger_scram_inserts_rods_and_flags_scrammed(tst *testing.T) {

	//verbose()
	chk.PrintTitle("TriggerScram inserts control rods and marks the core scrammed")

	s := scrammableState()
	out := TriggerScram(s, "operator action")

	if !out.Neutronics.Scrammed {
		tst.Errorf("expected Scrammed to be true after TriggerScram")
	}
	if out.Neutronics.ControlRodPosition != 0 {
		tst.Errorf("expected control rods fully inserted, got position=%g", out.Neutronics.ControlRodPosition)
	}
	if out.Neutronics.TimeSinceScram != 0 {
		tst.Errorf("expected TimeSinceScram reset to 0, got %g", out.Neutronics.TimeSinceScram)
	}
	if s.Neutronics.Scrammed {
		tst.Errorf("TriggerScram must not mutate the input state")
	}
	events := out.DrainEvents()
	if len(events) != 1 || events[0].Kind != "scram" {
		tst.Errorf("expected exactly one scram event, got %+v", events)
	}
}

func Test_check_scram_conditions_flags_overtemperature(tst *testing.T) {

	//verbose()
	chk.PrintTitle("CheckScramConditions flags a fuel node over its temperature ceiling")

	s := scrammableState()
	if shouldScram, _ := CheckScramConditions(s); shouldScram {
		tst.Errorf("expected no scram condition at nominal temperature")
	}

	s.ThermalNodes["fuel"].T = 1300
	shouldScram, reason := CheckScramConditions(s)
	if !shouldScram {
		tst.Errorf("expected a scram condition once fuel exceeds MaxTemperature")
	}
	if reason == "" {
		tst.Errorf("expected a non-empty reason")
	}
}

func Test_check_scram_conditions_flags_a_burst_component(tst *testing.T) {

	//verbose()
	chk.PrintTitle("CheckScramConditions flags an already-burst component")

	s := scrammableState()
	s.Bursts["b1"] = &simstate.BurstState{ID: "b1", NodeID: "fuel", ComponentLabel: "pressurizer", IsBurst: true}

	shouldScram, reason := CheckScramConditions(s)
	if !shouldScram {
		tst.Errorf("expected a scram condition once a monitored component has burst")
	}
	if reason == "" {
		tst.Errorf("expected a non-empty reason")
	}
}

func Test_check_scram_conditions_quiet_once_already_scrammed(tst *testing.T) {

	//verbose()
	chk.PrintTitle("CheckScramConditions doesn't re-report once the core is already scrammed")

	s := scrammableState()
	s.Neutronics.Scrammed = true
	s.ThermalNodes["fuel"].T = 1300

	if shouldScram, _ := CheckScramConditions(s); shouldScram {
		tst.Errorf("expected no further scram condition once already scrammed")
	}
}
