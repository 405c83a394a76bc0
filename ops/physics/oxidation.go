// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

// Baker-Just correlation constants (parabolic oxide growth rate constant
// K(T) = A·exp(-Ea/(R·T)), here applied directly to the oxidized-fraction
// rate rather than oxide thickness, since this model carries no cladding
// geometry).
const (
	bakerJustA          = 2.0e6 // 1/s, pre-exponential factor
	bakerJustEaOverR    = 22890.0 // K, activation energy / gas constant
	oxidationThresholdK = 1100.0  // K

	zrMolarMass = 0.09122 // kg/mol
	h2MolarMass = 0.002016 // kg/mol
	molesH2PerMoleZr = 2.0

	zrOxidationEnthalpy = 586000.0 // J/mol Zr, exothermic heat of reaction
)

// Oxidation implements cladding Zr + 2H2O -> ZrO2 + 2H2 oxidation: an
// Arrhenius Baker-Just rate gated at 1100 K, 2 mol H2 per mol Zr reacted,
// heat release added to the cladding's own dT/dt, and the reaction rate
// scaled by the coolant node's steam availability, per §4.3.
type Oxidation struct{}

func (Oxidation) Name() string { return "oxidation" }

func (Oxidation) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for id, n := range s.ThermalNodes {
		ox := n.Oxidation
		if ox == nil {
			continue
		}
		threshold := oxidationThresholdK
		if ox.ThresholdK > 0 {
			threshold = ox.ThresholdK
		}
		if n.T < threshold {
			continue
		}
		if ox.OxidizedFraction >= 1 {
			continue
		}

		steamFactor := steamAvailability(s, ox.CoolantNodeID)
		if steamFactor <= 0 {
			continue
		}

		dFractionDt := bakerJustA * math.Exp(-bakerJustEaOverR/n.T) * steamFactor
		remaining := 1 - ox.OxidizedFraction
		if dFractionDt > remaining {
			dFractionDt = remaining
		}

		molarZrRate := dFractionDt * ox.TotalZrMass / zrMolarMass
		molarH2Rate := molesH2PerMoleZr * molarZrRate
		massH2Rate := molarH2Rate * h2MolarMass

		r.AddOxidation(id, dFractionDt, massH2Rate)

		if n.M > 0 && n.Cp > 0 {
			heatRate := molarZrRate * zrOxidationEnthalpy
			r.AddThermalNode(id, heatRate/(n.M*n.Cp))
		}
	}
	return nil
}

// steamAvailability gates the oxidation rate by how "steam-rich" the linked
// coolant node is: liquid-submerged cladding sees no steam (factor 0);
// vapor/supercritical coolant is fully steam (factor 1); two-phase coolant
// scales with quality.
func steamAvailability(s *simstate.State, coolantNodeID string) float64 {
	if coolantNodeID == "" {
		return 1 // no coolant node configured: assume unlimited steam
	}
	n, ok := s.FlowNodes[coolantNodeID]
	if !ok {
		return 1
	}
	switch n.Fluid.Phase {
	case waterprops.Vapor, waterprops.Supercritical:
		return 1
	case waterprops.Liquid:
		return 0
	default: // two-phase: scale with vapor mass fraction
		x := n.Fluid.Quality
		if x < 0 {
			x = 0
		}
		if x > 1 {
			x = 1
		}
		return x
	}
}
