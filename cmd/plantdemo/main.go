// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// plantdemo is a headless smoke-test harness: it builds a plant (from a
// JSON definition file, or a small built-in loop if none is given) and
// advances it for a fixed simulated duration, printing a one-line summary
// per frame in the teacher's io.Pf status-line idiom.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/erickball/meltdown-sub001/diag"
	"github.com/erickball/meltdown-sub001/plant"
	"github.com/erickball/meltdown-sub001/rk45"
	"github.com/erickball/meltdown-sub001/simstate"
)

func main() {
	defFile := flag.String("def", "", "path to a plant definition JSON file (built-in demo loop if empty)")
	durationS := flag.Float64("duration", 60, "simulated seconds to advance")
	frameDtS := flag.Float64("framedt", 1.0, "simulated seconds per reported frame")
	verbose := flag.Bool("v", false, "enable diagnostic warnings")
	flag.Parse()

	diag.Verbose = *verbose

	def, err := loadDefinition(*defFile)
	if err != nil {
		io.Pfred("ERROR: %v\n", err)
		os.Exit(1)
	}

	s, reg, err := plant.Build(def)
	if err != nil {
		io.Pfred("ERROR: %v\n", err)
		os.Exit(1)
	}

	io.PfWhite("\nmeltdown-sub001 plant demo\n\n")

	cfg := rk45.DefaultConfig()
	engine := rk45.NewEngine(reg, cfg)

	elapsed := 0.0
	for elapsed < *durationS {
		s, err = engine.Advance(s, *frameDtS)
		if err != nil {
			io.Pfred("ERROR: advance failed at t=%.3f: %v\n", elapsed, err)
			os.Exit(1)
		}
		elapsed += *frameDtS

		if shouldScram, reason := rk45.CheckScramConditions(s); shouldScram {
			io.Pfred("SCRAM: %s\n", reason)
			s = rk45.TriggerScram(s, reason)
		}

		reportFrame(s, &engine.Metrics)
		for _, e := range s.DrainEvents() {
			io.Pfyel("%s\n", diag.Describe(e))
		}
	}

	io.Pf("\ndone: advanced to t=%.3f s over %d accepted steps (%d rejected)\n",
		s.Time, engine.Metrics.TotalSteps, engine.Metrics.Rejects)
}

func reportFrame(s *simstate.State, m *rk45.Metrics) {
	if s.Neutronics != nil {
		io.Pf("t=%8.3f s  power=%10.4g W  dt=%.4g  steps=%d  rejects=%d\n",
			s.Time, s.Neutronics.Power, m.CurrentDt, m.TotalSteps, m.Rejects)
		return
	}
	io.Pf("t=%8.3f s  dt=%.4g  steps=%d  rejects=%d\n", s.Time, m.CurrentDt, m.TotalSteps, m.Rejects)
}

func loadDefinition(path string) (*plant.Definition, error) {
	if path == "" {
		return builtinDemoDefinition(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, chk.Err("plantdemo: failed to read definition file %q: %v", path, err)
	}
	var def plant.Definition
	if err := json.Unmarshal(raw, &def); err != nil {
		return nil, chk.Err("plantdemo: failed to parse definition file %q: %v", path, err)
	}
	return &def, nil
}

// builtinDemoDefinition is a one-fuel-node, one-coolant-loop plant with a
// running pump and a steam-drum burst record, just large enough to exercise
// every operator Build wires in without requiring an external file.
func builtinDemoDefinition() *plant.Definition {
	return &plant.Definition{
		ThermalNodes: []plant.ThermalNodeDef{
			{ID: "fuel", T: 600, M: 2000, Cp: 300, IsFuel: true},
			{ID: "clad", T: 600, M: 200, Cp: 330,
				Oxidation: &plant.OxidationDef{TotalZrMass: 50, CoolantNodeID: "coolant"}},
		},
		FlowNodes: []plant.FlowNodeDef{
			{ID: "coolant", Mass: 5000, U: 5000 * 1.1e6, Volume: 10, Height: 3},
			{ID: "steamdrum", Mass: 1000, U: 1000 * 2.5e6, Volume: 20, Elevation: 5},
		},
		ThermalConnections: []plant.ThermalConnectionDef{
			{ID: "fuel-clad", From: "fuel", To: "clad", Conductance: 5e4},
		},
		ConvectionConnections: []plant.ConvectionConnectionDef{
			{ID: "clad-coolant", SolidNodeID: "clad", FluidNodeID: "coolant", SurfaceArea: 40},
		},
		FlowConnections: []plant.FlowConnectionDef{
			{ID: "loop", From: "coolant", To: "steamdrum", Area: 0.05, Length: 10, ResistanceK: 2, MassFlowRate: 300, PumpID: "rcp1"},
		},
		Neutronics: &plant.NeutronicsDef{
			CoreID: "core1", FuelNodeID: "fuel", CoolantNodeID: "coolant",
			Power: 3e9, NominalPower: 3e9,
			Lambda: 2e-5, Beta: 0.0065, DecayConst: 0.1, Precursor: 3250,
			ControlRodPosition: 1,
		},
		Pumps: []plant.PumpDef{
			{ID: "rcp1", Running: true, TargetSpeed: 1, EffectiveSpeed: 1, RatedHead: 50, RatedFlow: 300, Efficiency: 0.8, FlowConnectionID: "loop", RampUpTime: 5, CoastDownTime: 10},
		},
		Bursts: []plant.BurstDef{
			{ID: "drum-burst", NodeID: "steamdrum", ComponentLabel: "steam drum", BurstThresholdPa: 2e7},
		},
		BurstSeed: 1,
	}
}
