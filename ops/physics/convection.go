// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
	"github.com/erickball/meltdown-sub001/waterprops"
)

// fluidProps is a minimal phase-dependent property set used only to form a
// Reynolds/Prandtl-based convection coefficient; it does not attempt
// IAPYF-IF97 accuracy (explicitly out of scope, §1).
type fluidProps struct {
	viscosity    float64 // Pa·s
	conductivity float64 // W/(m·K)
	prandtl      float64
}

var liquidProps = fluidProps{viscosity: 2.8e-4, conductivity: 0.6, prandtl: 1.0}
var vaporProps = fluidProps{viscosity: 1.5e-5, conductivity: 0.03, prandtl: 1.0}

func propsFor(phase waterprops.Phase) fluidProps {
	if phase == waterprops.Vapor || phase == waterprops.Supercritical {
		return vaporProps
	}
	return liquidProps
}

// Convection implements h = max(h_natural, h_Dittus-Boelter), Q = h·A·(T_solid
// - T_fluid), per §4.3.
type Convection struct{}

func (Convection) Name() string { return "convection" }

func (Convection) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for _, c := range s.ConvectionConnections {
		solid, ok1 := s.ThermalNodes[c.SolidNodeID]
		fluid, ok2 := s.FlowNodes[c.FluidNodeID]
		if !ok1 || !ok2 || c.SurfaceArea <= 0 {
			continue
		}
		h := convectionCoefficient(fluid, localMassFlowRate(s, c.FluidNodeID))
		Q := h * c.SurfaceArea * (solid.T - fluid.Fluid.T)
		if solid.M > 0 && solid.Cp > 0 {
			r.AddThermalNode(c.SolidNodeID, -Q/(solid.M*solid.Cp))
		}
		r.AddFlowNode(c.FluidNodeID, 0, Q)
	}
	return nil
}

// convectionCoefficient blends a fixed natural-convection estimate with a
// Dittus-Boelter forced-convection correlation driven by the node's local
// mass flow rate.
func convectionCoefficient(n *simstate.FlowNode, mdot float64) float64 {
	const hNatural = 200.0 // W/(m²·K), rough still-water estimate

	props := propsFor(n.Fluid.Phase)
	if n.HydraulicDiam <= 0 || n.FlowArea <= 0 || mdot <= 0 {
		return hNatural
	}
	rho := n.Mass / n.Volume
	velocity := mdot / (rho * n.FlowArea)
	re := rho * velocity * n.HydraulicDiam / props.viscosity
	if re <= 0 {
		return hNatural
	}
	nu := 0.023 * math.Pow(re, 0.8) * math.Pow(props.prandtl, 0.4)
	hForced := nu * props.conductivity / n.HydraulicDiam
	return math.Max(hNatural, hForced)
}

// localMassFlowRate sums |ṁ| over every flow connection incident to nodeID,
// the approximation §4.3 calls "Re from local ṁ" when no single connection
// is distinguished as "the" flow through a convective surface.
func localMassFlowRate(s *simstate.State, nodeID string) float64 {
	total := 0.0
	for _, c := range s.FlowConnections {
		if c.From == nodeID || c.To == nodeID {
			total += math.Abs(c.MassFlowRate)
		}
	}
	return total
}
