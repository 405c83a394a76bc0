// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import "github.com/erickball/meltdown-sub001/simstate"

// PumpSpeed implements dEffectiveSpeed/dt = +target/rampUpTime while running
// below target, -1/coastDownTime while spooling down, zero at rest, per
// §4.3.
type PumpSpeed struct{}

func (PumpSpeed) Name() string { return "pump-speed" }

func (PumpSpeed) ComputeRates(s *simstate.State, r *simstate.Rates) error {
	for id, p := range s.Pumps {
		switch {
		case p.Running && p.EffectiveSpeed < p.TargetSpeed:
			if p.RampUpTime > 0 {
				r.AddPump(id, p.TargetSpeed/p.RampUpTime)
			}
		case !p.Running && p.EffectiveSpeed > 0:
			if p.CoastDownTime > 0 {
				r.AddPump(id, -1.0/p.CoastDownTime)
			}
		}
	}
	return nil
}
