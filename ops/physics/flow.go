// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

// FluidFlow transports mass and energy along every FlowConnection at its
// current ṁ, choosing the upstream node by sign of ṁ and the phase drawn by
// comparing the connection's local elevation to the upstream node's liquid
// level, per §4.3.
type FluidFlow struct {
	Backend *waterprops.Backend
}

func (FluidFlow) Name() string { return "fluid-flow" }

func (op FluidFlow) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for _, c := range s.FlowConnections {
		if c.MassFlowRate == 0 {
			continue
		}
		upstreamID, downstreamID, localElev := op.upstreamOf(c)
		upstream, ok := s.FlowNodes[upstreamID]
		if !ok {
			continue
		}
		if _, ok := s.FlowNodes[downstreamID]; !ok {
			continue
		}

		h := op.specificEnthalpy(upstream, localElev)
		mdot := math.Abs(c.MassFlowRate)

		r.AddFlowNode(upstreamID, -mdot, -mdot*h)
		r.AddFlowNode(downstreamID, mdot, mdot*h)
	}
	return nil
}

// upstreamOf returns (upstreamID, downstreamID, the connection's elevation
// local to the upstream node).
func (FluidFlow) upstreamOf(c *simstate.FlowConnection) (upstream, downstream string, localElev float64) {
	if c.MassFlowRate >= 0 {
		return c.From, c.To, c.FromElevation
	}
	return c.To, c.From, c.ToElevation
}

// specificEnthalpy picks bulk or phase-specific saturated enthalpy for the
// fluid drawn from node n at the connection's local elevation localElev.
func (op FluidFlow) specificEnthalpy(n *simstate.FlowNode, localElev float64) float64 {
	bulk := n.U/n.Mass + n.Fluid.P*n.Volume/n.Mass

	if n.Fluid.Phase != waterprops.TwoPhase || op.Backend == nil || n.Height <= 0 {
		return bulk
	}

	// liquid occupies the node from its base up to a level set by (1-x);
	// this ignores the density difference between phases, an explicit
	// simplification (no CFD void-fraction model, §1 Non-goals).
	liquidLevel := (1 - n.Fluid.Quality) * n.Height
	drawsVapor := localElev > liquidLevel
	drawsLiquid := localElev < liquidLevel*0.5 // distinctly below the level, not just at the interface

	T := n.Fluid.T
	P := n.Fluid.TotalPressure()
	switch {
	case drawsVapor && n.Fluid.Quality > 0.99:
		return op.Backend.Dome.SatVaporEnergy(T) + P*op.Backend.Dome.SatVaporVolume(T)
	case drawsLiquid && n.Fluid.Quality < 0.01:
		return op.Backend.Dome.SatLiquidEnergy(T) + P*op.Backend.Dome.SatLiquidVolume(T)
	case drawsVapor:
		hf := op.Backend.Dome.SatLiquidEnergy(T) + P*op.Backend.Dome.SatLiquidVolume(T)
		return hf + op.Backend.Dome.LatentHeat(T)
	case drawsLiquid:
		return op.Backend.Dome.SatLiquidEnergy(T) + P*op.Backend.Dome.SatLiquidVolume(T)
	default:
		return bulk
	}
}
