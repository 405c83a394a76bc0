// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import (
	_ "embed"
)

//go:embed data/saturation_dome.json
var defaultDomeJSON []byte

//go:embed data/pvt_grid.json
var defaultGridJSON []byte

// DefaultBackend builds a Backend from the bundled saturation dome and (u,v)
// grid data, the same tables every plant.Build call uses unless a test or
// tool supplies its own via Load. KMax defaults to 0 (uncapped).
func DefaultBackend() (*Backend, error) {
	return Load(defaultDomeJSON, defaultGridJSON)
}
