// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package diag

import (
	"github.com/cpmech/gosl/io"

	"github.com/erickball/meltdown-sub001/simstate"
)

// Event kinds pushed onto State.PendingEvents. BurstCheck pushes "burst"
// (§7's BurstEvent entry); rk45.TriggerScram also pushes a "scram" event,
// whose kind is not named here.
const (
	EventKindBurst = "burst"
)

// Describe renders a pendingEvents entry as a single human-readable line,
// the same Sf-then-print idiom the teacher's mdl/* packages use for
// diagnostic text.
func Describe(e simstate.Event) string {
	return io.Sf("[%s] node=%s: %s", e.Kind, e.NodeID, e.Message)
}
