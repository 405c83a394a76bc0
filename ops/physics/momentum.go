// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

const gravity = 9.80665 // m/s²

// quasiStaticRelaxTime is the time constant used to relax a zero-inertance
// connection's ṁ toward its steady-state value. §4.3 describes the
// zero-inertance branch as emitting the steady-state ṁ "directly", but a
// rate operator may only ever return derivatives (it must not mutate
// state), so the steady-state value is approached by fast relaxation
// instead of an instantaneous set — at this time constant the connection
// reaches its quasi-static value well within one RK45 step at typical dt.
const quasiStaticRelaxTime = 0.01 // s

const valveCloseTau = 0.1 // s, §4.3's 100 ms valve/check-valve decay constant

// FlowMomentum implements dṁ/dt for every flow connection, per §4.3:
// inertance-integrated connections get the full momentum balance; connections
// without inertance relax toward the quasi-static orifice-flow solution.
// Pump, valve and check-valve overrides are applied last.
type FlowMomentum struct {
	Backend *waterprops.Backend
}

func (FlowMomentum) Name() string { return "flow-momentum" }

func (op FlowMomentum) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for id, c := range s.FlowConnections {
		from, ok1 := s.FlowNodes[c.From]
		to, ok2 := s.FlowNodes[c.To]
		if !ok1 || !ok2 {
			continue
		}

		dPDriving := op.pressureAt(from, c.FromElevation) - op.pressureAt(to, c.ToElevation)
		// pressureAt covers the head inside each node; the connection's own
		// Δz (to - from) adds the head between its ends.
		dPGravity := 0.0
		if c.ElevationDelta != 0 {
			dPGravity = -upstreamDensity(c, from, to) * gravity * c.ElevationDelta
		}

		dPPump := 0.0
		if c.PumpID != "" {
			if pump, ok := s.Pumps[c.PumpID]; ok && pump.Running {
				rhoUp := upstreamDensity(c, from, to)
				dPPump = rhoUp * gravity * pump.RatedHead * pump.EffectiveSpeed
			}
		}

		dPFriction := frictionTerm(c, from, to)

		var dMdot float64
		if c.Inertance() > 0 {
			rhoUp := upstreamDensity(c, from, to)
			dMdot = c.Area * (dPDriving + dPGravity + dPPump - dPFriction) / (rhoUp * c.Length)
		} else {
			target := quasiStaticFlow(c, from, to, dPDriving+dPPump)
			dMdot = (target - c.MassFlowRate) / quasiStaticRelaxTime
		}

		dMdot = applyValveOverride(s, c, dMdot)
		dMdot = applyCheckValveOverride(s, c, dPDriving+dPPump, dMdot)
		dMdot = applyPumpBackflowBlock(s, c, dPDriving+dPPump, dMdot)

		r.AddFlowConnection(id, dMdot)
	}
	return nil
}

// pressureAt returns the connection-local pressure at a node endpoint,
// including the hydrostatic head of the liquid column above localElev:
// two-phase nodes only count the column below the liquid level; single-phase
// liquid nodes count the full column; vapor/supercritical nodes get no
// hydrostatic term.
func (op FlowMomentum) pressureAt(n *simstate.FlowNode, localElev float64) float64 {
	base := n.Fluid.TotalPressure()
	if n.Height <= 0 {
		return base
	}
	switch n.Fluid.Phase {
	case waterprops.Liquid:
		headAbove := math.Max(0, n.Height-localElev)
		rho := n.Mass / n.Volume
		return base + rho*gravity*headAbove
	case waterprops.TwoPhase:
		liquidLevel := (1 - n.Fluid.Quality) * n.Height
		if localElev >= liquidLevel {
			return base
		}
		headAbove := liquidLevel - localElev
		rho := liquidDensity(op.Backend, n.Fluid.T)
		return base + rho*gravity*headAbove
	default:
		return base
	}
}

func liquidDensity(b *waterprops.Backend, T float64) float64 {
	if b == nil {
		return 1000.0 // fallback when no backend is wired (e.g. isolated unit tests)
	}
	v := b.Dome.SatLiquidVolume(T)
	if v <= 0 {
		return 1000.0
	}
	return 1 / v
}

func upstreamDensity(c *simstate.FlowConnection, from, to *simstate.FlowNode) float64 {
	upstream := from
	if c.MassFlowRate < 0 {
		upstream = to
	}
	if upstream.Volume <= 0 {
		return 1000.0
	}
	return upstream.Mass / upstream.Volume
}

func frictionTerm(c *simstate.FlowConnection, from, to *simstate.FlowNode) float64 {
	if c.ResistanceK <= 0 {
		return 0
	}
	rho := upstreamDensity(c, from, to)
	mdot := c.MassFlowRate
	if rho <= 0 || c.Area <= 0 {
		return 0
	}
	velocity := mdot / (rho * c.Area)
	return 0.5 * rho * c.ResistanceK * velocity * math.Abs(velocity)
}

// quasiStaticFlow solves ṁ = sign(ΔP)·A·√(2|ΔP|/(ρ·K)) for a zero-inertance
// connection, per §4.3.
func quasiStaticFlow(c *simstate.FlowConnection, from, to *simstate.FlowNode, dP float64) float64 {
	if c.ResistanceK <= 0 || c.Area <= 0 {
		return 0
	}
	rho := upstreamDensity(c, from, to)
	sign := 1.0
	if dP < 0 {
		sign = -1.0
	}
	return sign * c.Area * math.Sqrt(2*math.Abs(dP)/(rho*c.ResistanceK))
}

// applyValveOverride forces dṁ/dt = -ṁ/τ for connections hosting a
// near-closed valve (position < 0.01), overriding the momentum-derived rate.
func applyValveOverride(s *simstate.State, c *simstate.FlowConnection, dMdot float64) float64 {
	if c.ValveID == "" {
		return dMdot
	}
	v, ok := s.Valves[c.ValveID]
	if !ok || v.Position >= 0.01 {
		return dMdot
	}
	return -c.MassFlowRate / valveCloseTau
}

// applyCheckValveOverride forces the same decay when the forward driving
// pressure falls below the check valve's cracking pressure.
func applyCheckValveOverride(s *simstate.State, c *simstate.FlowConnection, dPDriving float64, dMdot float64) float64 {
	if c.CheckValveID == "" {
		return dMdot
	}
	cv, ok := s.CheckValves[c.CheckValveID]
	if ok && dPDriving < cv.CrackingPressure {
		return -c.MassFlowRate / valveCloseTau
	}
	return dMdot
}

// applyPumpBackflowBlock zeroes dṁ/dt when a running pump's connection has
// ṁ ≤ 0 and a negative driving ΔP: the impeller blocks backflow.
func applyPumpBackflowBlock(s *simstate.State, c *simstate.FlowConnection, dP float64, dMdot float64) float64 {
	if c.PumpID == "" {
		return dMdot
	}
	pump, ok := s.Pumps[c.PumpID]
	if !ok || !pump.Running {
		return dMdot
	}
	if c.MassFlowRate <= 0 && dP < 0 {
		return 0
	}
	return dMdot
}
