// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
)

const standbyPowerFraction = 0.01 // 1% of nominal power, the standby-branch threshold
const standbyPrecursorFloor = 1e-10

// Neutronics implements point kinetics with one delayed precursor group,
// dN/dt = (ρ-β)/Λ·N + λ·C, dC/dt = β/Λ·N - λ·C with N = P/P_nom, plus the
// standby branch that bypasses kinetics once scrammed, sub-1%-power and
// still de-reactive, per §4.3.
type Neutronics struct{}

func (Neutronics) Name() string { return "neutronics" }

func (Neutronics) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	nts := s.Neutronics
	if nts == nil {
		return nil
	}

	rho := Reactivity(s, nts)
	N := nts.Power / nts.NominalPower

	inStandby := nts.Scrammed && N < standbyPowerFraction && rho < 0
	if inStandby {
		decayFrac := DecayHeatFraction(nts.TimeSinceScram)
		targetPower := decayFrac * nts.NominalPower
		// power "tracks" the decay-heat curve: drive it there over one
		// nominal precursor lifetime instead of snapping, so the rate bag
		// stays finite and the RK45 sanity check sees a bounded derivative.
		tau := 1.0
		if nts.DecayConst > 0 {
			tau = 1.0 / nts.DecayConst
		}
		r.Neutronics.DPowerDt += (targetPower - nts.Power) / tau
		r.Neutronics.DPrecursorDt += (standbyPrecursorFloor - nts.Precursor) * nts.DecayConst
		return nil
	}

	dNdt := (rho-nts.Beta)/nts.Lambda*N + nts.DecayConst*nts.Precursor
	dCdt := nts.Beta/nts.Lambda*N - nts.DecayConst*nts.Precursor

	r.Neutronics.DPowerDt += dNdt * nts.NominalPower
	r.Neutronics.DPrecursorDt += dCdt
	return nil
}

// Reactivity returns ρ = ρ_rod + ρ_Doppler + ρ_coolantTemp + ρ_coolantDensity,
// evaluated against the linked fuel/coolant nodes (falling back to a
// label-matched node if the id is not found, per §4.3).
func Reactivity(s *simstate.State, nts *simstate.NeutronicsState) float64 {
	rhoRod := RodReactivity(nts.ControlRodPosition, nts.ControlRodWorth)

	var rhoDoppler, rhoCoolantTemp, rhoCoolantDensity float64
	if fuel := findThermalNode(s, nts.FuelNodeID); fuel != nil {
		rhoDoppler = nts.DopplerCoeff * (fuel.T - nts.ReferenceFuelTemp)
	}
	if coolant := findFlowNode(s, nts.CoolantNodeID); coolant != nil {
		rhoCoolantTemp = nts.CoolantTempCoeff * (coolant.Fluid.T - nts.ReferenceCoolantTemp)
		if coolant.Volume > 0 {
			density := coolant.Mass / coolant.Volume
			rhoCoolantDensity = nts.CoolantDensityCoeff * (density - nts.ReferenceCoolantDensity)
		}
	}
	return rhoRod + rhoDoppler + rhoCoolantTemp + rhoCoolantDensity
}

// RodReactivity is a linear interpolation of control-rod worth between fully
// inserted (position=0) and fully withdrawn (position=1). It is the only
// rod-worth shape implemented; there is no S-curve option (see DESIGN.md).
func RodReactivity(position, worth float64) float64 {
	p := math.Max(0, math.Min(1, position))
	return p * worth
}

func findThermalNode(s *simstate.State, id string) *simstate.ThermalNode {
	if n, ok := s.ThermalNodes[id]; ok {
		return n
	}
	for _, n := range s.ThermalNodes {
		if n.Label == id {
			return n
		}
	}
	return nil
}

func findFlowNode(s *simstate.State, id string) *simstate.FlowNode {
	if n, ok := s.FlowNodes[id]; ok {
		return n
	}
	for _, n := range s.FlowNodes {
		if n.Label == id {
			return n
		}
	}
	return nil
}
