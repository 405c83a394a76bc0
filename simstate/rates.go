// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstate

// FlowNodeRate is the pair of integrated derivatives carried per flow node.
type FlowNodeRate struct {
	DMassDt   float64
	DEnergyDt float64
}

// NeutronicsRate is the pair of integrated derivatives carried for the
// single neutronics core.
type NeutronicsRate struct {
	DPowerDt     float64
	DPrecursorDt float64
}

// OxidationRate is the pair of integrated derivatives carried for a thermal
// node's OxidationRecord.
type OxidationRate struct {
	DOxidizedFractionDt float64
	DH2GeneratedDt      float64
}

// Rates is the bag of time derivatives every rate operator contributes to,
// keyed by entity id exactly like the State it was computed from (§9's
// map-keyed state note — an index-arena version is the natural next step in
// a systems-language port, not attempted here). Rate operators only ever add
// into this bag; they never read another operator's contribution.
type Rates struct {
	FlowNodes       map[string]FlowNodeRate
	FlowConnections map[string]float64 // dṁ/dt
	ThermalNodes    map[string]float64 // dT/dt
	Pumps           map[string]float64 // dEffectiveSpeed/dt
	Oxidation       map[string]OxidationRate
	Neutronics      NeutronicsRate
}

// NewRates returns an empty Rates bag with every map initialized.
func NewRates() *Rates {
	return &Rates{
		FlowNodes:       map[string]FlowNodeRate{},
		FlowConnections: map[string]float64{},
		ThermalNodes:    map[string]float64{},
		Pumps:           map[string]float64{},
		Oxidation:       map[string]OxidationRate{},
	}
}

// AddFlowNode accumulates into the named flow node's rate entry.
func (r *Rates) AddFlowNode(id string, dMass, dEnergy float64) {
	e := r.FlowNodes[id]
	e.DMassDt += dMass
	e.DEnergyDt += dEnergy
	r.FlowNodes[id] = e
}

// AddFlowConnection accumulates into the named connection's dṁ/dt.
func (r *Rates) AddFlowConnection(id string, dMdot float64) {
	r.FlowConnections[id] += dMdot
}

// AddThermalNode accumulates into the named thermal node's dT/dt.
func (r *Rates) AddThermalNode(id string, dT float64) {
	r.ThermalNodes[id] += dT
}

// AddPump accumulates into the named pump's dEffectiveSpeed/dt.
func (r *Rates) AddPump(id string, dSpeed float64) {
	r.Pumps[id] += dSpeed
}

// AddOxidation accumulates into the named thermal node's oxidation rate
// entry.
func (r *Rates) AddOxidation(id string, dFraction, dH2 float64) {
	e := r.Oxidation[id]
	e.DOxidizedFractionDt += dFraction
	e.DH2GeneratedDt += dH2
	r.Oxidation[id] = e
}

// Add returns r + other, element-wise, following la.VecAdd2's
// scaled-accumulate style generalized to a map-keyed bag: every entry present
// in either bag appears in the result.
func (r *Rates) Add(other *Rates) *Rates {
	out := NewRates()
	addFlowNodes(out.FlowNodes, r.FlowNodes, 1)
	addFlowNodes(out.FlowNodes, other.FlowNodes, 1)
	addScalars(out.FlowConnections, r.FlowConnections, 1)
	addScalars(out.FlowConnections, other.FlowConnections, 1)
	addScalars(out.ThermalNodes, r.ThermalNodes, 1)
	addScalars(out.ThermalNodes, other.ThermalNodes, 1)
	addScalars(out.Pumps, r.Pumps, 1)
	addScalars(out.Pumps, other.Pumps, 1)
	addOxidation(out.Oxidation, r.Oxidation, 1)
	addOxidation(out.Oxidation, other.Oxidation, 1)
	out.Neutronics.DPowerDt = r.Neutronics.DPowerDt + other.Neutronics.DPowerDt
	out.Neutronics.DPrecursorDt = r.Neutronics.DPrecursorDt + other.Neutronics.DPrecursorDt
	return out
}

// Scale returns a copy of r with every derivative multiplied by k, the
// operation RK45 uses to form Σ aᵢⱼ·kⱼ and the 5th/4th order solutions.
func (r *Rates) Scale(k float64) *Rates {
	out := NewRates()
	addFlowNodes(out.FlowNodes, r.FlowNodes, k)
	addScalars(out.FlowConnections, r.FlowConnections, k)
	addScalars(out.ThermalNodes, r.ThermalNodes, k)
	addScalars(out.Pumps, r.Pumps, k)
	addOxidation(out.Oxidation, r.Oxidation, k)
	out.Neutronics.DPowerDt = r.Neutronics.DPowerDt * k
	out.Neutronics.DPrecursorDt = r.Neutronics.DPrecursorDt * k
	return out
}

func addFlowNodes(dst, src map[string]FlowNodeRate, scale float64) {
	for id, v := range src {
		e := dst[id]
		e.DMassDt += v.DMassDt * scale
		e.DEnergyDt += v.DEnergyDt * scale
		dst[id] = e
	}
}

func addOxidation(dst, src map[string]OxidationRate, scale float64) {
	for id, v := range src {
		e := dst[id]
		e.DOxidizedFractionDt += v.DOxidizedFractionDt * scale
		e.DH2GeneratedDt += v.DH2GeneratedDt * scale
		dst[id] = e
	}
}

func addScalars(dst, src map[string]float64, scale float64) {
	for id, v := range src {
		dst[id] += v * scale
	}
}
