// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
)

// Region tags a single-phase (u,v) grid point, per §6's schema.
type Region int

const (
	CompressedLiquid Region = iota
	VaporRegion
	SupercriticalRegion
)

func parseRegion(s string) Region {
	switch s {
	case "compressed_liquid":
		return CompressedLiquid
	case "vapor":
		return VaporRegion
	case "supercritical":
		return SupercriticalRegion
	default:
		return VaporRegion
	}
}

// GridPoint is one tabulated single-phase (u,v) grid point, SI units.
type GridPoint struct {
	U      float64 // J/kg
	V      float64 // m³/kg
	LogV   float64 // log10(v), cached for IDW distance in (log v, u) space
	T      float64 // K
	P      float64 // Pa
	Region Region
}

type rawGridFile struct {
	NPoints int `json:"n_points"`
	Points  []struct {
		U      float64 `json:"u"`
		V      float64 `json:"v"`
		TK     float64 `json:"T_K"`
		TC     float64 `json:"T_C"`
		PMPa   float64 `json:"P_MPa"`
		Region string  `json:"region"`
		Curve  string  `json:"curve,omitempty"`
	} `json:"points"`
}

// Grid holds the single-phase (u,v) grid used for vapor/supercritical state
// interpolation (step 6 of §4.1).
type Grid struct {
	Points []GridPoint
}

// LoadGrid parses a (u,v) grid JSON document (schema per §6) and converts
// u (kJ/kg) and v (m³/kg) to SI.
func LoadGrid(data []byte) (*Grid, error) {
	var raw rawGridFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chk.Err("waterprops: cannot parse (u,v) grid data: %v", err)
	}
	g := &Grid{Points: make([]GridPoint, len(raw.Points))}
	for i, p := range raw.Points {
		u := p.U * 1e3
		v := p.V
		g.Points[i] = GridPoint{
			U:      u,
			V:      v,
			LogV:   math.Log10(v),
			T:      p.TK,
			P:      p.PMPa * 1e6,
			Region: parseRegion(p.Region),
		}
	}
	if len(g.Points) == 0 {
		return nil, chk.Err("waterprops: (u,v) grid data is empty")
	}
	return g, nil
}

// gridNeighbor is a scored candidate for inverse-distance weighting.
type gridNeighbor struct {
	pt   *GridPoint
	dist float64
}

// maxVaporGridSearchDist bounds how far (in the scaled (log10 v, MJ/kg u)
// metric used below) the nearest tabulated point may be before a query is
// treated as outside the grid's coverage. The bundled grid's own points sit
// a median of ~0.05 and at most ~0.3 from their nearest neighbor, so this
// leaves ample room for legitimate interpolation while still rejecting a
// (u,v) query the table was never meant to cover.
const maxVaporGridSearchDist = 1.0

// InterpolateVapor performs inverse-distance-weighted interpolation of
// (T,P) in (log10 v, u) space over the k nearest grid cells, per step 6 of
// §4.1. Returns ok=false if the grid has no points within a sane search
// radius, in which case the caller falls back to the ideal-gas estimate.
func (g *Grid) InterpolateVapor(u, v float64) (T, P float64, ok bool) {
	const k = 6
	logV := math.Log10(v)

	neighbors := make([]gridNeighbor, 0, len(g.Points))
	for i := range g.Points {
		p := &g.Points[i]
		// weight u and log(v) comparably; u spans ~10^6, log10(v) spans ~O(1-3),
		// so scale u into a compatible unit (MJ/kg) before distance is taken.
		du := (p.U - u) / 1e6
		dlv := p.LogV - logV
		d := math.Sqrt(du*du + dlv*dlv)
		neighbors = append(neighbors, gridNeighbor{p, d})
	}
	sortByDistance(neighbors)
	if len(neighbors) == 0 || neighbors[0].dist > maxVaporGridSearchDist {
		return 0, 0, false
	}
	n := k
	if n > len(neighbors) {
		n = len(neighbors)
	}

	// exact hit (or extremely close): avoid dividing by ~0 distance
	if neighbors[0].dist < 1e-9 {
		return neighbors[0].pt.T, neighbors[0].pt.P, true
	}

	var wSum, tSum, pSum float64
	for i := 0; i < n; i++ {
		w := 1.0 / (neighbors[i].dist * neighbors[i].dist)
		wSum += w
		tSum += w * neighbors[i].pt.T
		pSum += w * neighbors[i].pt.P
	}
	if wSum == 0 {
		return 0, 0, false
	}
	return tSum / wSum, pSum / wSum, true
}

// sortByDistance is a tiny insertion sort; grid neighbor lists are at most a
// few hundred points so an O(n log n) stdlib sort would be overkill ritual.
func sortByDistance(ns []gridNeighbor) {
	for i := 1; i < len(ns); i++ {
		for j := i; j > 0 && ns[j].dist < ns[j-1].dist; j-- {
			ns[j], ns[j-1] = ns[j-1], ns[j]
		}
	}
}
