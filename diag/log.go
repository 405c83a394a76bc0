// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package diag carries the core's soft diagnostic channel: Pf-style
// warnings that never interrupt the solver, grounded on the teacher's own
// io.Verbose/io.Pf* convention (e.g. mdl/*'s use of io.Pfyel for
// non-fatal notices).
package diag

import "github.com/cpmech/gosl/io"

// Verbose enables diagnostic printing. Off by default; the host (or a test)
// turns it on to see step-rejection and sanity-check chatter.
var Verbose = false

// Warnf prints a yellow warning line when Verbose is enabled. Used for
// conditions the solver handles itself (step rejection, sanity-score
// degradation) that are not errors per §7's taxonomy.
func Warnf(format string, args ...interface{}) {
	if Verbose {
		io.Pfyel("diag: "+format+"\n", args...)
	}
}

// Errf prints a red diagnostic line, reserved for the fatal-diagnostic path
// (dt cannot shrink further and the state is still rejected).
func Errf(format string, args ...interface{}) {
	if Verbose {
		io.Pfred("diag: "+format+"\n", args...)
	}
}
