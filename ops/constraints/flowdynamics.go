// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraints

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
)

// FlowDynamicsConstraint recomputes a display-only steady-state ṁ for every
// flow connection and clamps the integrated ṁ to non-negative on connections
// a running pump or a check valve requires to be one-way, per §4.4.
type FlowDynamicsConstraint struct{}

func (FlowDynamicsConstraint) Name() string { return "flow-dynamics" }

func (FlowDynamicsConstraint) ApplyConstraints(s *simstate.State) (*simstate.State, error) {
	out := s.Clone()

	for _, c := range out.FlowConnections {
		from, ok1 := out.FlowNodes[c.From]
		to, ok2 := out.FlowNodes[c.To]
		if ok1 && ok2 {
			c.DisplayMassFlowRate = steadyStateFlow(c, from, to)
		} else {
			c.DisplayMassFlowRate = c.MassFlowRate
		}

		if c.PumpID != "" {
			if pump, ok := out.Pumps[c.PumpID]; ok && pump.Running && pump.EffectiveSpeed > 0.01 {
				if c.MassFlowRate < 0 {
					c.MassFlowRate = 0
				}
			}
		}
		if c.CheckValveID != "" && c.MassFlowRate < 0 {
			c.MassFlowRate = 0
		}
	}
	return out, nil
}

// steadyStateFlow mirrors the zero-inertance orifice equation of §4.3,
// evaluated here purely for host display — it never feeds back into the
// integrated ṁ.
func steadyStateFlow(c *simstate.FlowConnection, from, to *simstate.FlowNode) float64 {
	if c.ResistanceK <= 0 || c.Area <= 0 {
		return c.MassFlowRate
	}
	dP := from.Fluid.TotalPressure() - to.Fluid.TotalPressure()
	upstream := from
	if dP < 0 {
		upstream = to
	}
	if upstream.Volume <= 0 {
		return c.MassFlowRate
	}
	rho := upstream.Mass / upstream.Volume
	sign := 1.0
	if dP < 0 {
		sign = -1.0
	}
	return sign * c.Area * math.Sqrt(2*math.Abs(dP)/(rho*c.ResistanceK))
}
