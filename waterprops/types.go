// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package waterprops implements the process-wide water property backend: it
// maps (mass, internal energy, volume) to (temperature, pressure, phase,
// quality) using a tabulated saturation dome plus a compressed-liquid/vapor
// (u,v) grid, per §4.1 of SPEC_FULL.md. The package is pure and safe for
// concurrent use once Load has returned.
package waterprops

import "github.com/cpmech/gosl/io"

// Phase tags the thermodynamic region of a water state.
type Phase int

const (
	Liquid Phase = iota
	Vapor
	TwoPhase
	Supercritical
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Liquid:
		return "liquid"
	case Vapor:
		return "vapor"
	case TwoPhase:
		return "two-phase"
	case Supercritical:
		return "supercritical"
	default:
		return "unknown"
	}
}

// State is the closure result of calculateState: the unique (T,P,phase,x)
// consistent with a given (mass,U,V).
type State struct {
	T       float64 // temperature, K
	P       float64 // pressure, Pa
	Phase   Phase
	Quality float64 // vapor mass fraction; 0 for liquid, 1 for vapor
}

// InvalidInputError reports a non-finite or non-physical input to a pure
// backend function, per §7's InvalidInput error taxonomy entry.
type InvalidInputError struct {
	Op      string
	Mass    float64
	U       float64
	V       float64
	Message string
}

func (e *InvalidInputError) Error() string {
	return io.Sf("waterprops: %s: %s (mass=%g u=%g v=%g)", e.Op, e.Message, e.Mass, e.U, e.V)
}

// Verbose enables Pf-style diagnostic printing for edge-case resolutions
// (dome/grid extrapolation, ideal-gas fallback). Mirrors io.Verbose's role
// in the teacher's own packages.
var Verbose = false

func logf(format string, args ...interface{}) {
	if Verbose {
		io.Pfyel("waterprops: "+format+"\n", args...)
	}
}
