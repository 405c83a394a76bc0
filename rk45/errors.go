// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rk45

import "github.com/cpmech/gosl/io"

// sentinelStageError is the fixed large error value §4.5 step 5 assigns a
// stage that fails pre-sanity: it is folded into the PI controller's
// err/tol ratio like any other error estimate, not surfaced as a Go error
// by itself, so a single huge-but-finite number does the job.
const sentinelStageError = 1e10

// StageFailureError reports a catastrophic stage value caught by
// PreSanityCheck before it ever reaches a constraint or rate operator
// (non-finite field, mass below the floor, specific volume blown up). The
// engine treats this the same as a very large RK45 error estimate: shrink
// dt and retry, it is not propagated to the caller of Advance unless dt is
// already at MinDt.
type StageFailureError struct {
	EntityID string
	Field    string
	Message  string
}

func (e *StageFailureError) Error() string {
	return io.Sf("rk45: stage failure at %s.%s: %s", e.EntityID, e.Field, e.Message)
}

// FatalDiagnosticError is returned by Advance when dt has shrunk to MinDt
// and the step is still rejected: the engine cannot make progress without
// violating the caller's floor, and retrying further would just spin.
type FatalDiagnosticError struct {
	EntityID string
	Message  string
}

func (e *FatalDiagnosticError) Error() string {
	return io.Sf("rk45: fatal, dt at floor and step still rejected (entity %s): %s", e.EntityID, e.Message)
}
