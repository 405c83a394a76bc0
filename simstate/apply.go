// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstate

// ApplyRates returns a new State with y <- y + dt*ẏ for every integrable
// quantity, per §4.2. Derived fluid fields (T,P,phase,x) are left untouched
// here — they are re-derived by FluidStateConstraint on the next constraint
// pass, not by this function.
func ApplyRates(s *State, r *Rates, dt float64) *State {
	out := s.Clone()
	out.Time = s.Time + dt

	for id, rate := range r.FlowNodes {
		n, ok := out.FlowNodes[id]
		if !ok {
			continue
		}
		n.Mass += dt * rate.DMassDt
		n.U += dt * rate.DEnergyDt
	}

	for id, dMdot := range r.FlowConnections {
		c, ok := out.FlowConnections[id]
		if !ok {
			continue
		}
		c.MassFlowRate += dt * dMdot
	}

	for id, dT := range r.ThermalNodes {
		n, ok := out.ThermalNodes[id]
		if !ok {
			continue
		}
		n.T += dt * dT
	}

	for id, rate := range r.Oxidation {
		n, ok := out.ThermalNodes[id]
		if !ok || n.Oxidation == nil {
			continue
		}
		n.Oxidation.OxidizedFraction += dt * rate.DOxidizedFractionDt
		n.Oxidation.H2Generated += dt * rate.DH2GeneratedDt
		if n.Oxidation.OxidizedFraction > 1 {
			n.Oxidation.OxidizedFraction = 1
		}
	}

	for id, dSpeed := range r.Pumps {
		p, ok := out.Pumps[id]
		if !ok {
			continue
		}
		p.EffectiveSpeed += dt * dSpeed
		if p.EffectiveSpeed < 0 {
			p.EffectiveSpeed = 0
		}
		if p.EffectiveSpeed > p.TargetSpeed {
			p.EffectiveSpeed = p.TargetSpeed
		}
	}

	if out.Neutronics != nil {
		out.Neutronics.Power += dt * r.Neutronics.DPowerDt
		out.Neutronics.Precursor += dt * r.Neutronics.DPrecursorDt
		if out.Neutronics.Scrammed {
			out.Neutronics.TimeSinceScram += dt
		}
	}

	return out
}
