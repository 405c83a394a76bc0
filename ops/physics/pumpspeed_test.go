// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

func Test_pumpspeed_ramps_up_and_coasts_down(tst *testing.T) {

	//verbose()
	chk.PrintTitle("pump speed ramps toward target and coasts down to rest")

	s := simstate.New()
	s.Pumps["rampingUp"] = &simstate.PumpState{ID: "rampingUp", Running: true, TargetSpeed: 1, EffectiveSpeed: 0.2, RampUpTime: 5}
	s.Pumps["coasting"] = &simstate.PumpState{ID: "coasting", Running: false, EffectiveSpeed: 0.3, CoastDownTime: 10}
	s.Pumps["atRest"] = &simstate.PumpState{ID: "atRest", Running: false, EffectiveSpeed: 0}
	s.Pumps["atTarget"] = &simstate.PumpState{ID: "atTarget", Running: true, TargetSpeed: 1, EffectiveSpeed: 1, RampUpTime: 5}

	r := simstate.NewRates()
	if err := (PumpSpeed{}).ComputeRates(s, r); err != nil {
		tst.Fatalf("ComputeRates failed: %v", err)
	}
	if want := 1.0 / 5; r.Pumps["rampingUp"] != want {
		tst.Errorf("expected rampingUp dSpeed/dt=%g, got %g", want, r.Pumps["rampingUp"])
	}
	if want := -1.0 / 10; r.Pumps["coasting"] != want {
		tst.Errorf("expected coasting dSpeed/dt=%g, got %g", want, r.Pumps["coasting"])
	}
	if r.Pumps["atRest"] != 0 {
		tst.Errorf("expected pump at rest to have zero dSpeed/dt, got %g", r.Pumps["atRest"])
	}
	if r.Pumps["atTarget"] != 0 {
		tst.Errorf("expected pump at target to have zero dSpeed/dt, got %g", r.Pumps["atTarget"])
	}
}
