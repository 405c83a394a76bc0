// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rk45

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
)

const (
	preSanityMinMassKg          = 0.1
	preSanityMaxSpecVolMLPerKg  = 1e7
	postSanityPressureFraction  = 0.2
	postSanityMassOvershoot     = 1.2 // 20% over the throughput-implied change
	postSanityMinTempK          = 250
	postSanityMaxTempK          = 2500
	postSanityFlowFraction      = 0.2
	postSanityFlowFloorKgPerSec = 100
)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// PreSanityCheck implements §4.5 step 5: a cheap check run on every raw
// stage value y_i before it is handed to the constraint operators, catching
// the kind of blowup (negative mass, NaN, an absurd specific volume) that
// would otherwise make FluidStateConstraint panic or return nonsense.
func PreSanityCheck(s *simstate.State) error {
	for id, n := range s.FlowNodes {
		if !finite(n.Mass) || !finite(n.U) || !finite(n.Volume) {
			return &StageFailureError{EntityID: id, Field: "mass/U/volume", Message: "non-finite value"}
		}
		if n.Mass < preSanityMinMassKg {
			return &StageFailureError{EntityID: id, Field: "mass", Message: "below the 0.1 kg floor"}
		}
		if n.U < 0 {
			return &StageFailureError{EntityID: id, Field: "U", Message: "negative internal energy"}
		}
		if n.Volume > 0 {
			specificVolumeMLPerKg := (n.Volume / n.Mass) * 1e6
			if specificVolumeMLPerKg > preSanityMaxSpecVolMLPerKg {
				return &StageFailureError{EntityID: id, Field: "volume", Message: "specific volume exceeds 1e7 mL/kg"}
			}
		}
	}
	for id, n := range s.ThermalNodes {
		if !finite(n.T) {
			return &StageFailureError{EntityID: id, Field: "T", Message: "non-finite temperature"}
		}
	}
	for id, c := range s.FlowConnections {
		if !finite(c.MassFlowRate) {
			return &StageFailureError{EntityID: id, Field: "MassFlowRate", Message: "non-finite flow rate"}
		}
	}
	if s.Neutronics != nil {
		if !finite(s.Neutronics.Power) || !finite(s.Neutronics.Precursor) {
			return &StageFailureError{EntityID: s.Neutronics.CoreID, Field: "Power/Precursor", Message: "non-finite neutronics state"}
		}
	}
	return nil
}

// SanityScore implements §4.5 step 6: a post-constraint check comparing the
// accepted candidate against the state the step started from. A score of
// 1.0 sits right at the edge each sub-check treats as acceptable; the
// caller multiplies this by RelTol to fold it into the effective error.
func SanityScore(prev, cur *simstate.State, dt float64) float64 {
	score := 0.0
	for id, n := range cur.FlowNodes {
		p0, ok := prev.FlowNodes[id]
		if !ok {
			continue
		}
		if p0.Fluid.P > 0 {
			relP := math.Abs(n.Fluid.P-p0.Fluid.P) / p0.Fluid.P
			score = math.Max(score, relP/postSanityPressureFraction)
		}
		if p0.Mass > 0 {
			relMass := math.Abs(n.Mass-p0.Mass) / p0.Mass
			throughput := totalThroughput(prev, id)
			expected := throughput * dt / p0.Mass
			if expected > 0 {
				score = math.Max(score, relMass/(postSanityMassOvershoot*expected))
			} else if relMass > postSanityPressureFraction {
				score = math.Max(score, relMass/postSanityPressureFraction)
			}
		}
		if n.Fluid.T > 0 && (n.Fluid.T < postSanityMinTempK || n.Fluid.T > postSanityMaxTempK) {
			score = math.Max(score, 2.0)
		}
	}
	for id, c := range cur.FlowConnections {
		p0, ok := prev.FlowConnections[id]
		if !ok {
			continue
		}
		scale := math.Max(postSanityFlowFloorKgPerSec, math.Abs(p0.MassFlowRate))
		rel := math.Abs(c.MassFlowRate-p0.MassFlowRate) / scale
		score = math.Max(score, rel/postSanityFlowFraction)
	}
	return score
}

// totalThroughput sums the magnitude of mass flow into and out of a node
// over every connection touching it, the reference scale SanityScore uses
// to judge whether a mass change is plausible given the flow through the
// node.
func totalThroughput(s *simstate.State, nodeID string) float64 {
	total := 0.0
	for _, c := range s.FlowConnections {
		if c.From == nodeID || c.To == nodeID {
			total += math.Abs(c.MassFlowRate)
		}
	}
	return total
}
