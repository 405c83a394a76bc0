// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"math"

	"github.com/erickball/meltdown-sub001/simstate"
)

// TurbineConfig names the inlet/outlet flow nodes of one turbine stage and
// its isentropic efficiency. Static configuration, not part of the
// integrable state — assembled by plant.Build from the plant definition,
// the same way a ConvectionConnection names its two endpoints.
type TurbineConfig struct {
	ID       string
	InletID  string
	OutletID string
	Efficiency float64 // η, 0..1
	PressureExponent float64 // default 0.3 per §4.3's (P_out/P_in)^0.3 term
}

// CondenserConfig names one condenser/heat-sink flow node and its UA.
type CondenserConfig struct {
	ID      string
	NodeID  string
	UA      float64 // W/K
	SinkTemp float64 // K
}

const condenserMaxPower = 800e6 // W, §4.3's 800 MW cap
const condenserQualityScale = 0.1

// Turbine implements turbine work extraction and condenser heat rejection,
// per §4.3.
type Turbine struct {
	Turbines   []TurbineConfig
	Condensers []CondenserConfig
}

func (Turbine) Name() string { return "turbine-condenser" }

func (op Turbine) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for _, t := range op.Turbines {
		inlet, ok1 := s.FlowNodes[t.InletID]
		outlet, ok2 := s.FlowNodes[t.OutletID]
		if !ok1 || !ok2 {
			continue
		}
		conn := connectionBetween(s, t.InletID, t.OutletID)
		if conn == nil {
			continue
		}
		mdot := math.Abs(conn.MassFlowRate)
		if mdot == 0 || inlet.Fluid.P <= 0 {
			continue
		}
		hIn := inlet.U/inlet.Mass + inlet.Fluid.P*inlet.Volume/inlet.Mass
		exponent := t.PressureExponent
		if exponent == 0 {
			exponent = 0.3
		}
		pressureRatio := outlet.Fluid.P / inlet.Fluid.P
		W := mdot * t.Efficiency * (hIn - hIn*math.Pow(pressureRatio, exponent))
		r.AddFlowNode(t.OutletID, 0, -W)
	}

	for _, cnd := range op.Condensers {
		n, ok := s.FlowNodes[cnd.NodeID]
		if !ok {
			continue
		}
		Q := cnd.UA * math.Max(0, n.Fluid.T-cnd.SinkTemp)
		if Q > condenserMaxPower {
			Q = condenserMaxPower
		}
		Q *= math.Min(1, n.Fluid.Quality/condenserQualityScale)
		r.AddFlowNode(cnd.NodeID, 0, -Q)
	}
	return nil
}

func connectionBetween(s *simstate.State, fromID, toID string) *simstate.FlowConnection {
	for _, c := range s.FlowConnections {
		if c.From == fromID && c.To == toID {
			return c
		}
	}
	return nil
}
