// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ops defines the two operator interfaces the RK45 engine drives —
// RateOperator and ConstraintOperator, per §4 of SPEC_FULL.md — and a
// registry that holds them in registration order, mirroring the teacher's
// ele.Element interface plus its factory.go allocator-map pattern, adapted
// from "one interface, many concrete cell types, a name->allocator map" to
// "two interfaces, a small fixed set of physics operators, a registration
// slice" since the operator set here is static at compile time (§9).
package ops

import "github.com/erickball/meltdown-sub001/simstate"

// RateOperator reads a state (already made consistent by constraints) and
// contributes time derivatives into a Rates bag. It must be pure: it may
// read s but must not retain or mutate it.
type RateOperator interface {
	Name() string
	ComputeRates(s *simstate.State, r *simstate.Rates) error
}

// ConstraintOperator reads a state and returns a new state with algebraic
// closure applied (thermodynamic consistency, flow clamping, burst
// detection). Constraint operators run in fixed registration order, once per
// RK45 stage and once more after each accepted step.
type ConstraintOperator interface {
	Name() string
	ApplyConstraints(s *simstate.State) (*simstate.State, error)
}
