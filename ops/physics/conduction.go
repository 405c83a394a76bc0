// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package physics implements the rate operator set of §4.3: conduction,
// convection, heat generation, point-kinetics neutronics, fluid mass/energy
// transport, flow momentum, pump speed, turbine/condenser, cladding
// oxidation.
package physics

import "github.com/erickball/meltdown-sub001/simstate"

// Conduction contributes dT/dt = ±Q/(m·c_p) across every ThermalConnection,
// Q = G·(T_from - T_to).
type Conduction struct{}

func (Conduction) Name() string { return "conduction" }

func (Conduction) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for _, c := range s.ThermalConnections {
		from, ok1 := s.ThermalNodes[c.From]
		to, ok2 := s.ThermalNodes[c.To]
		if !ok1 || !ok2 {
			continue
		}
		Q := c.Conductance * (from.T - to.T)
		if from.M > 0 && from.Cp > 0 {
			r.AddThermalNode(c.From, -Q/(from.M*from.Cp))
		}
		if to.M > 0 && to.Cp > 0 {
			r.AddThermalNode(c.To, Q/(to.M*to.Cp))
		}
	}
	return nil
}
