// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraints implements the three fixed-order algebraic-closure
// operators of §4.4: FluidStateConstraint, FlowDynamicsConstraint and
// BurstCheck.
package constraints

import (
	"github.com/cpmech/gosl/io"

	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

// gasConstantR is the universal gas constant, J/(mol·K), used by the Dalton's
// law NCG partial-pressure term.
const gasConstantR = 8.314

// PressureModel selects how FluidStateConstraint resolves liquid-node
// pressure. The two variants are both valid per §9's open question; this
// repo defaults to Hybrid (see DESIGN.md for why).
type PressureModel int

const (
	// HybridPressure borrows a base pressure from the nearest connected
	// two-phase/vapor node (by BFS over flow connections) and adds a
	// bulk-modulus correction for the node's own density deviation from
	// the saturated-liquid reference. This lets a subcooled liquid branch
	// track the pressure of the boiling/vapor region it is plumbed to,
	// instead of resolving an isolated saturation-anchored pressure that
	// ignores the rest of the loop.
	HybridPressure PressureModel = iota
	// PureGridPressure uses the water backend's own saturation-anchored
	// inversion (Backend.CalculateState's liquid branch) unmodified.
	PureGridPressure
)

// FluidStateConstraint resolves (T,P,phase,quality) for every flow node from
// (mass,U,V) via the water backend, adds the NCG partial-pressure
// contribution, and chooses between the hybrid and pure-grid liquid pressure
// paths, per §4.4.
type FluidStateConstraint struct {
	Backend       *waterprops.Backend
	PressureModel PressureModel
}

func (FluidStateConstraint) Name() string { return "fluid-state" }

func (c FluidStateConstraint) ApplyConstraints(s *simstate.State) (*simstate.State, error) {
	out := s.Clone()
	basePressures := propagateBasePressures(s)

	for id, n := range out.FlowNodes {
		if n.Mass <= 0 || n.Volume <= 0 {
			continue
		}
		st, err := c.Backend.CalculateState(n.Mass, n.U, n.Volume)
		if err != nil {
			io.Pfred("fluid-state: node %s did not resolve: %v\n", id, err)
			continue
		}

		p := st.P
		if st.Phase == waterprops.Liquid && c.PressureModel == HybridPressure {
			p = c.hybridLiquidPressure(n, st, basePressures[id])
		}

		n.Fluid.T = st.T
		n.Fluid.Phase = st.Phase
		n.Fluid.Quality = st.Quality
		n.Fluid.P = p
		n.Fluid.PartialPressureNCG = ncgPartialPressure(n, st.T)
	}
	return out, nil
}

// hybridLiquidPressure implements the Hybrid branch of §4.4: a bulk-modulus
// correction around the node's own saturated-liquid density, riding on a base
// pressure borrowed from the nearest two-phase/vapor node rather than the
// backend's own saturation-anchored value.
func (c FluidStateConstraint) hybridLiquidPressure(n *simstate.FlowNode, st waterprops.State, base float64) float64 {
	vf := c.Backend.Dome.SatLiquidVolume(st.T)
	if vf <= 0 {
		return st.P
	}
	rhoBase := 1 / vf
	rho := n.Mass / n.Volume
	K := waterprops.BulkModulusCapped(st.T-273.15, c.Backend.KMax)
	dP := K * (rho - rhoBase) / rhoBase

	if base == 0 {
		base = st.P
	}
	p := base + dP
	if n.Height > 0 {
		// single-phase liquid: half the column's head is added, i.e. the
		// pressure at the node's mid-height.
		p += rho * gravityConstant * n.Height * 0.5
	}
	return p
}

const gravityConstant = 9.80665 // m/s²

// propagateBasePressures implements the BFS of §4.4: every two-phase or
// vapor/supercritical node (from the *previous* consistent state, since this
// runs before the current pass resolves phases) seeds its own pressure; every
// node reachable from one by flow connections inherits the nearest seed's
// pressure. Liquid-only subnetworks with no two-phase/vapor neighbor are left
// unseeded (0), and hybridLiquidPressure falls back to the backend's own
// pressure in that case.
func propagateBasePressures(s *simstate.State) map[string]float64 {
	base := map[string]float64{}
	visited := map[string]bool{}
	queue := make([]string, 0, len(s.FlowNodes))

	for id, n := range s.FlowNodes {
		switch n.Fluid.Phase {
		case waterprops.TwoPhase, waterprops.Vapor, waterprops.Supercritical:
			base[id] = n.Fluid.P
			visited[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		p := base[id]
		for _, conn := range s.FlowConnections {
			var neighbor string
			switch id {
			case conn.From:
				neighbor = conn.To
			case conn.To:
				neighbor = conn.From
			default:
				continue
			}
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			base[neighbor] = p
			queue = append(queue, neighbor)
		}
	}
	return base
}

// ncgPartialPressure implements Dalton's law (§4.4's [ADDED] note, testable
// property 6): P_NCG = Σ nᵢ·R·T/V.
func ncgPartialPressure(n *simstate.FlowNode, T float64) float64 {
	moles := n.NCGTotalMoles()
	if moles <= 0 || n.Volume <= 0 {
		return 0
	}
	return moles * gasConstantR * T / n.Volume
}
