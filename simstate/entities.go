// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package simstate holds the plant-wide state aggregate: thermal nodes, flow
// nodes, connections, neutronics, pumps, valves and burst records (§3 of
// SPEC_FULL.md), plus the StateRates bag and the clone/apply helpers that let
// the RK45 engine treat a SimulationState as a single integrable vector
// without knowing anything about its physics.
package simstate

import "github.com/erickball/meltdown-sub001/waterprops"

// ThermalNode is a solid thermal mass: fuel, cladding, structure, containment
// wall, etc.
type ThermalNode struct {
	ID    string
	Label string

	T float64 // temperature, K
	M float64 // mass, kg
	Cp float64 // specific heat, J/(kg·K)
	K  float64 // conductivity, W/(m·K)

	CharacteristicLength float64 // m
	SurfaceArea          float64 // m²

	HeatGeneration float64 // static W, added every step to non-fuel nodes; fuel nodes take reactor power instead
	MaxTemperature float64 // K, informational ceiling for host alarms

	IsFuel bool // receives reactor power via HeatGeneration rate operator

	Oxidation *OxidationRecord // nil unless this node models Zr cladding
}

// OxidationRecord tracks the cumulative state of the Baker-Just cladding
// oxidation reaction for one thermal node.
type OxidationRecord struct {
	TotalZrMass      float64 // kg, initial unoxidized zirconium inventory
	OxidizedFraction float64 // [0,1], cumulative fraction of TotalZrMass reacted
	H2Generated      float64 // kg, cumulative hydrogen produced
	ThresholdK       float64 // K, below which the reaction rate is treated as zero
	CoolantNodeID    string  // FlowNode whose steam fraction gates the reaction rate
}

// GetCopy returns a deep copy, following the teacher's por.State convention.
func (o *OxidationRecord) GetCopy() *OxidationRecord {
	if o == nil {
		return nil
	}
	cp := *o
	return &cp
}

// FluidState is the derived thermodynamic state of a FlowNode: the four
// quantities the water backend resolves from (mass, U, V).
type FluidState struct {
	T       float64 // K
	P       float64 // Pa, steam/liquid partial pressure (excludes NCG)
	Phase   waterprops.Phase
	Quality float64 // vapor mass fraction, 0..1

	PartialPressureNCG float64 // Pa, added to P to get the node's total pressure
}

// TotalPressure is P plus the NCG partial pressure contribution.
func (f FluidState) TotalPressure() float64 {
	return f.P + f.PartialPressureNCG
}

// FlowNode is a fluid control volume.
type FlowNode struct {
	ID    string
	Label string

	Mass float64 // kg, integrated
	U    float64 // J, total internal energy, integrated

	Fluid FluidState // derived each constraint pass

	NCG map[string]float64 // species name -> moles; nil means no NCG

	Volume           float64 // m³
	HydraulicDiam    float64 // m
	FlowArea         float64 // m²
	Elevation        float64 // m, node centerline elevation
	Height           float64 // m, 0 means "unknown", used for liquid-level estimate
	ContainerID      string  // optional enclosing containment volume id

	HeatSink *HeatSinkProps // nil unless this node models a passive heat sink
}

// HeatSinkProps configures a node as a fixed-temperature or UA-limited heat
// sink (used by the turbine/condenser operator).
type HeatSinkProps struct {
	UA       float64 // W/K
	SinkTemp float64 // K
	MaxPower float64 // W, cap on extracted heat
}

// NCGTotalMoles returns the total moles of non-condensible gas in the node,
// zero for a nil or empty map.
func (n *FlowNode) NCGTotalMoles() float64 {
	total := 0.0
	for _, moles := range n.NCG {
		total += moles
	}
	return total
}

// MassFloor is the minimum permitted FlowNode.Mass; a constraint or rate
// operator that would push mass below this must be rejected by the solver's
// sanity check instead of silently clamping.
const MassFloor = 1e-6 // kg

// ThermalConnection is a static conductive link between two thermal nodes.
type ThermalConnection struct {
	ID         string
	From, To   string // ThermalNode ids
	Conductance float64 // W/K
}

// ConvectionConnection links one thermal node to one flow node; the
// heat-transfer coefficient is computed per step from the flow operator, not
// stored here.
type ConvectionConnection struct {
	ID          string
	SolidNodeID string
	FluidNodeID string
	SurfaceArea float64 // m²
}

// FlowConnection is a static flow path between two flow nodes, carrying one
// integrated or quasi-static mass flow rate.
type FlowConnection struct {
	ID       string
	From, To string // FlowNode ids

	Area           float64 // m², A
	HydraulicDiam  float64 // m
	Length         float64 // m, L
	ElevationDelta float64 // m, Δz, to - from
	FromElevation  float64 // m, optional sub-node elevation override
	ToElevation    float64 // m
	ResistanceK    float64 // dimensionless loss coefficient K

	MassFlowRate float64 // kg/s, ṁ, integrated if Inertance > 0

	DisplayMassFlowRate float64 // kg/s, steady-state estimate for host display only, written by FlowDynamicsConstraint

	IsCheckValve bool
	IsBreak      bool // true for connections created by BurstCheck

	PumpID       string // non-empty if this connection hosts a pump
	ValveID      string // non-empty if this connection hosts a throttle valve
	CheckValveID string // non-empty if guarded by a distinct check-valve record
}

// Inertance returns L/A, or 0 if Area is 0 (quasi-static connection).
func (c *FlowConnection) Inertance() float64 {
	if c.Area <= 0 {
		return 0
	}
	return c.Length / c.Area
}

// NeutronicsState is the single point-kinetics core in the plant.
type NeutronicsState struct {
	CoreID        string
	FuelNodeID    string
	CoolantNodeID string

	Power        float64 // W
	NominalPower float64 // W, P_nom

	Reactivity float64 // ρ, dimensionless (Δk/k)
	Lambda     float64 // Λ, prompt neutron generation time, s
	Beta       float64 // β, delayed neutron fraction
	DecayConst float64 // λ, effective precursor decay constant, 1/s

	Precursor float64 // C, normalized precursor concentration

	// reactivity feedback coefficients, evaluated against the linked
	// fuel/coolant nodes relative to ReferenceFuelTemp/ReferenceCoolantTemp/
	// ReferenceCoolantDensity
	DopplerCoeff         float64 // Δρ per K of fuel temperature
	CoolantTempCoeff     float64 // Δρ per K of coolant temperature
	CoolantDensityCoeff  float64 // Δρ per (kg/m³) of coolant density
	ReferenceFuelTemp    float64 // K
	ReferenceCoolantTemp float64 // K
	ReferenceCoolantDensity float64 // kg/m³

	ControlRodPosition float64 // 0 = fully inserted, 1 = fully withdrawn
	ControlRodWorth    float64 // Δρ between fully inserted and fully withdrawn

	DecayHeatFraction float64 // fraction of NominalPower tracked in standby

	Scrammed     bool
	TimeSinceScram float64 // s, since triggerScram; only meaningful if Scrammed
}

// PumpState is a single motor-driven pump hosted on one FlowConnection.
type PumpState struct {
	ID string

	Running      bool
	TargetSpeed  float64 // fraction of rated speed, 0..1 (typically 1 when running)
	EffectiveSpeed float64 // integrated, clamped to [0, TargetSpeed]

	RatedHead float64 // m of fluid column at rated speed/flow
	RatedFlow float64 // kg/s
	Efficiency float64 // 0..1

	FlowConnectionID string

	RampUpTime   float64 // s, time constant to spool up to target
	CoastDownTime float64 // s, time constant to spool down to 0
}

// ValveState is a throttle valve hosted on one FlowConnection.
type ValveState struct {
	ID string

	Position     float64 // 0 (closed) .. 1 (open)
	FailPosition float64 // position assumed on loss of control power

	FlowConnectionID string
}

// CheckValveState is a one-way valve hosted on one FlowConnection.
type CheckValveState struct {
	ID string

	FlowConnectionID string
	CrackingPressure float64 // Pa, forward ΔP below which the valve is shut
}

// BurstState tracks one monitored component for LOCA-style overpressure
// rupture.
type BurstState struct {
	ID string

	NodeID         string
	ComponentLabel string

	IsBurst bool

	BurstThresholdPa float64 // sampled once at sim start, deterministic seed
	BreakFraction    float64 // [0,1], monotone non-decreasing once burst
	BreakLocation    float64 // arbitrary normalized position, sampled at burst time

	ShellNodeID string // non-empty for HX-tube ruptures; reference pressure is shell side, not container

	BreakConnectionID string // non-empty once the break flow connection has been created
}
