// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraints

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"

	"github.com/erickball/meltdown-sub001/simstate"
)

const atmosphericPressure = 101325.0 // Pa

// atmosphereNodeID names the synthetic FlowNode BurstCheck lazily creates as
// the break target for a burst record with neither ShellNodeID nor
// ContainerID set, i.e. one that vents straight to atmosphere (spec.md §3:
// "Break connections created by burst are bidirectional from the burst node
// to its container, or atmosphere").
const atmosphereNodeID = "atmosphere"

// The synthetic atmosphere node is sized far larger than anything a burst
// could displace over one simulation run, so it behaves as a constant-T/P
// boundary rather than a real finite reservoir: mass/energy flowing into or
// out of it move its own (mass, U, V) by a negligible fraction. The values
// below put it near standard liquid-water conditions (300 K, 1 atm).
const (
	atmosphereMassKg         = 1e12
	atmosphereSpecificVolume = 1.003e-3 // m³/kg, liquid water near 300 K / 1 atm
	atmosphereSpecificEnergy = 1.12e5   // J/kg, liquid water near 300 K / 1 atm
)

// breakOrificeResistanceK is the loss coefficient given to a newly opened
// burst connection; breakFlowArea is the fully-open reference area, scaled
// down by the current BreakFraction.
const breakOrificeResistanceK = 50.0
const breakFlowArea = 0.01 // m²

// breakFractionJitterAmplitude bounds the deterministic per-step jitter
// applied to the quadratic overpressure ramp. Jitter can push the raw ramp
// value up or down, but BreakFraction itself is clamped to only ever grow
// (property 10), so the jitter cannot violate monotonicity.
const breakFractionJitterAmplitude = 0.05

// BurstCheck implements the LOCA-style overpressure rupture model of §4.4:
// on first exceedance of BurstThresholdPa it marks the record burst, samples
// a break location, and opens an orifice connection into the node's
// container (or HX shell); on every pass thereafter it grows BreakFraction
// via a quadratic ramp in overpressure, grounded on the teacher's
// `rnd.Variables`/`rnd.GetDistribution` usage in inp/sim.go for
// deterministic, seeded randomness (the simpler package-level sampling
// functions here, rather than the distribution-fitting API that file uses).
type BurstCheck struct {
	Seed int64

	seeded bool
}

func (*BurstCheck) Name() string { return "burst-check" }

func (b *BurstCheck) ApplyConstraints(s *simstate.State) (*simstate.State, error) {
	if !b.seeded {
		rnd.Init(int(b.Seed))
		b.seeded = true
	}

	out := s.Clone()
	for id, burst := range out.Bursts {
		node, ok := out.FlowNodes[burst.NodeID]
		if !ok {
			continue
		}

		gauge := gaugePressure(out, burst, node)
		over := gauge - burst.BurstThresholdPa

		if !burst.IsBurst {
			if over <= 0 {
				continue
			}
			burst.IsBurst = true
			burst.BreakLocation = rnd.Float64(0, 1)
			out.PushEvent(simstate.Event{
				Kind:    "burst",
				NodeID:  burst.NodeID,
				Message: io.Sf("%s (%s) exceeded burst threshold", burst.ComponentLabel, id),
			})
		}

		if frac := breakFraction(over, burst.BurstThresholdPa); frac > burst.BreakFraction {
			burst.BreakFraction = frac
		}

		b.updateBreakConnection(out, id, burst, node)
	}
	return out, nil
}

// gaugePressure implements §4.4's "gauge pressure relative to its container,
// or to shell for HX-tube records, or to atmosphere".
func gaugePressure(s *simstate.State, b *simstate.BurstState, node *simstate.FlowNode) float64 {
	ref := atmosphericPressure
	switch {
	case b.ShellNodeID != "":
		if shell, ok := s.FlowNodes[b.ShellNodeID]; ok {
			ref = shell.Fluid.TotalPressure()
		}
	case node.ContainerID != "":
		if container, ok := s.FlowNodes[node.ContainerID]; ok {
			ref = container.Fluid.TotalPressure()
		}
	}
	return node.Fluid.TotalPressure() - ref
}

// breakFraction is the quadratic ramp in overpressure with bounded jitter.
func breakFraction(over, threshold float64) float64 {
	if threshold <= 0 || over <= 0 {
		return 0
	}
	ratio := over / threshold
	ramp := ratio * ratio
	jitter := 1 + breakFractionJitterAmplitude*(2*rnd.Float64(0, 1)-1)
	frac := ramp * jitter
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac
}

// updateBreakConnection creates the break flow connection on first burst and
// widens its area as BreakFraction grows thereafter.
func (b *BurstCheck) updateBreakConnection(s *simstate.State, burstID string, burst *simstate.BurstState, node *simstate.FlowNode) {
	target := burst.ShellNodeID
	if target == "" {
		target = node.ContainerID
	}
	if target == "" {
		ensureAtmosphereNode(s)
		target = atmosphereNodeID
	}

	if burst.BreakConnectionID == "" {
		connID := burstID + "-break"
		s.FlowConnections[connID] = &simstate.FlowConnection{
			ID:          connID,
			From:        burst.NodeID,
			To:          target,
			Area:        breakFlowArea * burst.BreakFraction,
			ResistanceK: breakOrificeResistanceK,
			IsBreak:     true,
		}
		burst.BreakConnectionID = connID
		return
	}
	if conn, ok := s.FlowConnections[burst.BreakConnectionID]; ok {
		conn.Area = breakFlowArea * burst.BreakFraction
	}
}

// ensureAtmosphereNode lazily creates the shared atmosphere sink node the
// first time any burst record needs one; a no-op on every later call or
// every other burst record sharing the same plant.
func ensureAtmosphereNode(s *simstate.State) {
	if _, ok := s.FlowNodes[atmosphereNodeID]; ok {
		return
	}
	s.FlowNodes[atmosphereNodeID] = &simstate.FlowNode{
		ID:     atmosphereNodeID,
		Label:  "atmosphere",
		Mass:   atmosphereMassKg,
		U:      atmosphereMassKg * atmosphereSpecificEnergy,
		Volume: atmosphereMassKg * atmosphereSpecificVolume,
	}
}
