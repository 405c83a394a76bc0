// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plant

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"

	"github.com/erickball/meltdown-sub001/ops"
	"github.com/erickball/meltdown-sub001/ops/constraints"
	"github.com/erickball/meltdown-sub001/ops/physics"
	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

// Build resolves a Definition into a ready-to-run State and the fixed
// operator Registry of §4.3/§4.4, in the teacher's allocate-then-populate
// style (compare inp.Data driving a mesh/solver assembly in main.go):
// every id-keyed entity is copied into its simstate form, then the
// registry is wired with one instance of every rate/constraint operator
// the assembled state could exercise.
func Build(def *Definition) (*simstate.State, *ops.Registry, error) {
	backend, err := loadBackend(def)
	if err != nil {
		return nil, nil, chk.Err("plant: failed to load water property tables: %v", err)
	}
	backend.KMax = def.BulkModulusCapPa

	s := simstate.New()
	buildThermalNodes(s, def.ThermalNodes)
	buildFlowNodes(s, def.FlowNodes)
	buildThermalConnections(s, def.ThermalConnections)
	buildConvectionConnections(s, def.ConvectionConnections)
	buildFlowConnections(s, def.FlowConnections)
	buildNeutronics(s, def.Neutronics)
	buildPumps(s, def.Pumps)
	buildValves(s, def.Valves)
	buildCheckValves(s, def.CheckValves)
	buildBursts(s, def.Bursts, def.BurstSeed)

	reg := ops.NewRegistry()
	reg.Parallel = def.ParallelRates

	reg.RegisterRate(physics.Conduction{})
	reg.RegisterRate(physics.Convection{})
	reg.RegisterRate(physics.HeatGeneration{})
	reg.RegisterRate(physics.Neutronics{})
	reg.RegisterRate(physics.Oxidation{})
	reg.RegisterRate(physics.PumpSpeed{})
	reg.RegisterRate(physics.FluidFlow{Backend: backend})
	reg.RegisterRate(physics.FlowMomentum{Backend: backend})
	if len(def.Turbines) > 0 || len(def.Condensers) > 0 {
		reg.RegisterRate(physics.Turbine{
			Turbines:   turbineConfigs(def.Turbines),
			Condensers: condenserConfigs(def.Condensers),
		})
	}

	reg.RegisterConstraint(constraints.FluidStateConstraint{Backend: backend, PressureModel: constraints.HybridPressure})
	reg.RegisterConstraint(constraints.FlowDynamicsConstraint{})
	reg.RegisterConstraint(&constraints.BurstCheck{Seed: def.BurstSeed})

	return s, reg, nil
}

// loadBackend loads the water property tables a Definition names, falling
// back to the bundled default tables (waterprops.DefaultBackend) when
// neither WaterDome nor WaterGrid is supplied — the common case for a
// plant definition file that just wants "the" water, not a bespoke table.
func loadBackend(def *Definition) (*waterprops.Backend, error) {
	if len(def.WaterDome) == 0 && len(def.WaterGrid) == 0 {
		return waterprops.DefaultBackend()
	}
	return waterprops.Load(def.WaterDome, def.WaterGrid)
}

func buildThermalNodes(s *simstate.State, defs []ThermalNodeDef) {
	for _, d := range defs {
		n := &simstate.ThermalNode{
			ID: d.ID, Label: d.Label,
			T: d.T, M: d.M, Cp: d.Cp, K: d.K,
			CharacteristicLength: d.CharacteristicLength,
			SurfaceArea:          d.SurfaceArea,
			HeatGeneration:       d.HeatGeneration,
			MaxTemperature:       d.MaxTemperature,
			IsFuel:               d.IsFuel,
		}
		if d.Oxidation != nil {
			n.Oxidation = &simstate.OxidationRecord{
				TotalZrMass:   d.Oxidation.TotalZrMass,
				ThresholdK:    d.Oxidation.ThresholdK,
				CoolantNodeID: d.Oxidation.CoolantNodeID,
			}
		}
		s.ThermalNodes[d.ID] = n
	}
}

func buildFlowNodes(s *simstate.State, defs []FlowNodeDef) {
	for _, d := range defs {
		n := &simstate.FlowNode{
			ID: d.ID, Label: d.Label,
			Mass: d.Mass, U: d.U,
			Volume:        d.Volume,
			HydraulicDiam: d.HydraulicDiam,
			FlowArea:      d.FlowArea,
			Elevation:     d.Elevation,
			Height:        d.Height,
			ContainerID:   d.ContainerID,
		}
		if d.NCG != nil {
			n.NCG = make(map[string]float64, len(d.NCG))
			for species, moles := range d.NCG {
				n.NCG[species] = moles
			}
		}
		if d.HeatSink != nil {
			n.HeatSink = &simstate.HeatSinkProps{UA: d.HeatSink.UA, SinkTemp: d.HeatSink.SinkTemp, MaxPower: d.HeatSink.MaxPower}
		}
		s.FlowNodes[d.ID] = n
	}
}

func buildThermalConnections(s *simstate.State, defs []ThermalConnectionDef) {
	for _, d := range defs {
		s.ThermalConnections[d.ID] = &simstate.ThermalConnection{
			ID: d.ID, From: d.From, To: d.To, Conductance: d.Conductance,
		}
	}
}

func buildConvectionConnections(s *simstate.State, defs []ConvectionConnectionDef) {
	for _, d := range defs {
		s.ConvectionConnections[d.ID] = &simstate.ConvectionConnection{
			ID: d.ID, SolidNodeID: d.SolidNodeID, FluidNodeID: d.FluidNodeID, SurfaceArea: d.SurfaceArea,
		}
	}
}

func buildFlowConnections(s *simstate.State, defs []FlowConnectionDef) {
	for _, d := range defs {
		s.FlowConnections[d.ID] = &simstate.FlowConnection{
			ID: d.ID, From: d.From, To: d.To,
			Area: d.Area, HydraulicDiam: d.HydraulicDiam, Length: d.Length,
			FromElevation: d.FromElevation, ToElevation: d.ToElevation,
			ResistanceK:  d.ResistanceK,
			MassFlowRate: d.MassFlowRate,
			IsCheckValve: d.IsCheckValve,
			PumpID:       d.PumpID, ValveID: d.ValveID, CheckValveID: d.CheckValveID,
		}
	}
}

func buildNeutronics(s *simstate.State, d *NeutronicsDef) {
	if d == nil {
		return
	}
	s.Neutronics = &simstate.NeutronicsState{
		CoreID: d.CoreID, FuelNodeID: d.FuelNodeID, CoolantNodeID: d.CoolantNodeID,
		Power: d.Power, NominalPower: d.NominalPower,
		Reactivity: d.Reactivity, Lambda: d.Lambda, Beta: d.Beta, DecayConst: d.DecayConst,
		Precursor: d.Precursor,
		DopplerCoeff: d.DopplerCoeff, CoolantTempCoeff: d.CoolantTempCoeff, CoolantDensityCoeff: d.CoolantDensityCoeff,
		ReferenceFuelTemp: d.ReferenceFuelTemp, ReferenceCoolantTemp: d.ReferenceCoolantTemp, ReferenceCoolantDensity: d.ReferenceCoolantDensity,
		ControlRodPosition: d.ControlRodPosition, ControlRodWorth: d.ControlRodWorth,
		DecayHeatFraction: d.DecayHeatFraction, Scrammed: d.Scrammed,
	}
}

func buildPumps(s *simstate.State, defs []PumpDef) {
	for _, d := range defs {
		s.Pumps[d.ID] = &simstate.PumpState{
			ID: d.ID, Running: d.Running,
			TargetSpeed: d.TargetSpeed, EffectiveSpeed: d.EffectiveSpeed,
			RatedHead: d.RatedHead, RatedFlow: d.RatedFlow, Efficiency: d.Efficiency,
			FlowConnectionID: d.FlowConnectionID,
			RampUpTime:       d.RampUpTime, CoastDownTime: d.CoastDownTime,
		}
	}
}

func buildValves(s *simstate.State, defs []ValveDef) {
	for _, d := range defs {
		s.Valves[d.ID] = &simstate.ValveState{
			ID: d.ID, Position: d.Position, FailPosition: d.FailPosition, FlowConnectionID: d.FlowConnectionID,
		}
	}
}

func buildCheckValves(s *simstate.State, defs []CheckValveDef) {
	for _, d := range defs {
		s.CheckValves[d.ID] = &simstate.CheckValveState{
			ID: d.ID, FlowConnectionID: d.FlowConnectionID, CrackingPressure: d.CrackingPressure,
		}
	}
}

// burstThresholdJitterFraction bounds the deterministic per-build jitter
// applied to each burst record's nominal threshold (simstate.BurstState's
// own doc comment: "sampled once at sim start, deterministic seed"), so two
// otherwise-identical units in the same plant don't burst at the exact same
// instant.
const burstThresholdJitterFraction = 0.05

func buildBursts(s *simstate.State, defs []BurstDef, seed int64) {
	if len(defs) == 0 {
		return
	}
	rnd.Init(int(seed))
	for _, d := range defs {
		s.Bursts[d.ID] = &simstate.BurstState{
			ID: d.ID, NodeID: d.NodeID, ComponentLabel: d.ComponentLabel,
			BurstThresholdPa: sampleBurstThreshold(d.BurstThresholdPa),
			ShellNodeID:      d.ShellNodeID,
		}
	}
}

// sampleBurstThreshold draws the deterministic jitter around a nominal
// overpressure threshold, grounded on BurstCheck's own breakFraction jitter
// in ops/constraints/burstcheck.go.
func sampleBurstThreshold(nominal float64) float64 {
	jitter := 1 + burstThresholdJitterFraction*(2*rnd.Float64(0, 1)-1)
	return nominal * jitter
}

func turbineConfigs(defs []TurbineDef) []physics.TurbineConfig {
	out := make([]physics.TurbineConfig, len(defs))
	for i, d := range defs {
		out[i] = physics.TurbineConfig{
			ID: d.ID, InletID: d.InletID, OutletID: d.OutletID,
			Efficiency: d.Efficiency, PressureExponent: d.PressureExponent,
		}
	}
	return out
}

func condenserConfigs(defs []CondenserDef) []physics.CondenserConfig {
	out := make([]physics.CondenserConfig, len(defs))
	for i, d := range defs {
		out[i] = physics.CondenserConfig{ID: d.ID, NodeID: d.NodeID, UA: d.UA, SinkTemp: d.SinkTemp}
	}
	return out
}
