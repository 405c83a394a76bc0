// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rk45

import (
	"github.com/cpmech/gosl/io"

	"github.com/erickball/meltdown-sub001/simstate"
)

// TriggerScram is the host-callable entry point alongside Advance/SingleStep:
// it clones the state, fully inserts the control rods, and marks the core
// scrammed (TimeSinceScram resets to 0 and is then advanced every step by
// simstate.ApplyRates). Point kinetics keep governing power until it falls
// below 1% of nominal with negative reactivity; from then on Neutronics'
// standby branch drives power along DecayHeatFraction.
func TriggerScram(s *simstate.State, reason string) *simstate.State {
	out := s.Clone()
	if out.Neutronics != nil {
		out.Neutronics.Scrammed = true
		out.Neutronics.TimeSinceScram = 0
		out.Neutronics.ControlRodPosition = 0
	}
	out.PushEvent(simstate.Event{Kind: "scram", NodeID: scramNodeID(out), Message: reason})
	return out
}

// CheckScramConditions evaluates the threshold conditions a host would poll
// to decide whether to call TriggerScram: a fuel node at or above its
// MaxTemperature ceiling, or a monitored component that has already burst.
// It is read-only; the caller decides whether and when to act on the result.
func CheckScramConditions(s *simstate.State) (shouldScram bool, reason string) {
	if s.Neutronics != nil && s.Neutronics.Scrammed {
		return false, ""
	}
	for _, n := range s.ThermalNodes {
		if n.IsFuel && n.MaxTemperature > 0 && n.T >= n.MaxTemperature {
			return true, io.Sf("%s exceeded maximum temperature (%.1f K >= %.1f K)", n.ID, n.T, n.MaxTemperature)
		}
	}
	for id, b := range s.Bursts {
		if b.IsBurst {
			return true, io.Sf("%s (%s) has burst", b.ComponentLabel, id)
		}
	}
	return false, ""
}

func scramNodeID(s *simstate.State) string {
	if s.Neutronics != nil {
		return s.Neutronics.FuelNodeID
	}
	return ""
}
