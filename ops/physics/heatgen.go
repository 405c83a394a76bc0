// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/erickball/meltdown-sub001/simstate"

// HeatGeneration splits the reactor power evenly over the fuel-flagged
// thermal nodes, contributing dT/dt = (P_reactor/nFuel)/(m·c_p) to each, and
// contributes dT/dt = heatGeneration/(m·c_p) to every other node with a
// nonzero static HeatGeneration, per §4.3.
type HeatGeneration struct{}

func (HeatGeneration) Name() string { return "heat-generation" }

func (HeatGeneration) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	var reactorPower float64
	var fuelCount int
	if s.Neutronics != nil {
		reactorPower = s.Neutronics.Power
	}
	for _, n := range s.ThermalNodes {
		if n.IsFuel {
			fuelCount++
		}
	}

	for id, n := range s.ThermalNodes {
		if n.M <= 0 || n.Cp <= 0 {
			continue
		}
		if n.IsFuel && fuelCount > 0 {
			r.AddThermalNode(id, (reactorPower/float64(fuelCount))/(n.M*n.Cp))
			continue
		}
		if n.HeatGeneration != 0 {
			r.AddThermalNode(id, n.HeatGeneration/(n.M*n.Cp))
		}
	}
	return nil
}
