// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plant is the smallest possible stand-in for the out-of-scope
// plant factory (§6): a flat JSON document naming the already-lowered graph
// of thermal/flow nodes and connections from §3, and a Build function that
// resolves it into a ready-to-run simstate.State plus ops.Registry. It has
// no notion of author-facing components (tanks, pipes, pumps-as-UI-objects)
// the way the teacher's inp.Data does for finite-element meshes — only ids
// and the numeric parameters the physics operators need.
package plant

import "encoding/json"

// ThermalNodeDef is the wire form of simstate.ThermalNode.
type ThermalNodeDef struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`

	T  float64 `json:"t"`
	M  float64 `json:"mass"`
	Cp float64 `json:"cp"`
	K  float64 `json:"k,omitempty"`

	CharacteristicLength float64 `json:"characteristicLength,omitempty"`
	SurfaceArea          float64 `json:"surfaceArea,omitempty"`

	HeatGeneration float64 `json:"heatGeneration,omitempty"`
	MaxTemperature float64 `json:"maxTemperature,omitempty"`

	IsFuel bool `json:"isFuel,omitempty"`

	Oxidation *OxidationDef `json:"oxidation,omitempty"`
}

// OxidationDef is the wire form of simstate.OxidationRecord.
type OxidationDef struct {
	TotalZrMass   float64 `json:"totalZrMass"`
	ThresholdK    float64 `json:"thresholdK,omitempty"`
	CoolantNodeID string  `json:"coolantNodeId,omitempty"`
}

// HeatSinkDef is the wire form of simstate.HeatSinkProps.
type HeatSinkDef struct {
	UA       float64 `json:"ua"`
	SinkTemp float64 `json:"sinkTemp"`
	MaxPower float64 `json:"maxPower"`
}

// FlowNodeDef is the wire form of simstate.FlowNode.
type FlowNodeDef struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`

	Mass float64 `json:"mass"`
	U    float64 `json:"u"`

	NCG map[string]float64 `json:"ncg,omitempty"`

	Volume        float64 `json:"volume"`
	HydraulicDiam float64 `json:"hydraulicDiam,omitempty"`
	FlowArea      float64 `json:"flowArea,omitempty"`
	Elevation     float64 `json:"elevation,omitempty"`
	Height        float64 `json:"height,omitempty"`
	ContainerID   string  `json:"containerId,omitempty"`

	HeatSink *HeatSinkDef `json:"heatSink,omitempty"`
}

// ThermalConnectionDef is the wire form of simstate.ThermalConnection.
type ThermalConnectionDef struct {
	ID          string  `json:"id"`
	From        string  `json:"from"`
	To          string  `json:"to"`
	Conductance float64 `json:"conductance"`
}

// ConvectionConnectionDef is the wire form of simstate.ConvectionConnection.
type ConvectionConnectionDef struct {
	ID          string  `json:"id"`
	SolidNodeID string  `json:"solidNodeId"`
	FluidNodeID string  `json:"fluidNodeId"`
	SurfaceArea float64 `json:"surfaceArea"`
}

// FlowConnectionDef is the wire form of simstate.FlowConnection.
type FlowConnectionDef struct {
	ID   string `json:"id"`
	From string `json:"from"`
	To   string `json:"to"`

	Area           float64 `json:"area,omitempty"`
	HydraulicDiam  float64 `json:"hydraulicDiam,omitempty"`
	Length         float64 `json:"length,omitempty"`
	FromElevation  float64 `json:"fromElevation,omitempty"`
	ToElevation    float64 `json:"toElevation,omitempty"`
	ResistanceK    float64 `json:"resistanceK,omitempty"`
	MassFlowRate   float64 `json:"massFlowRate,omitempty"`

	IsCheckValve bool `json:"isCheckValve,omitempty"`

	PumpID       string `json:"pumpId,omitempty"`
	ValveID      string `json:"valveId,omitempty"`
	CheckValveID string `json:"checkValveId,omitempty"`
}

// NeutronicsDef is the wire form of simstate.NeutronicsState. A Definition
// with a nil Neutronics models a plant with no reactor core (e.g. a
// turbine-island-only fixture).
type NeutronicsDef struct {
	CoreID        string `json:"coreId"`
	FuelNodeID    string `json:"fuelNodeId"`
	CoolantNodeID string `json:"coolantNodeId"`

	Power        float64 `json:"power"`
	NominalPower float64 `json:"nominalPower"`

	Reactivity float64 `json:"reactivity,omitempty"`
	Lambda     float64 `json:"lambda"`
	Beta       float64 `json:"beta"`
	DecayConst float64 `json:"decayConst"`
	Precursor  float64 `json:"precursor"`

	DopplerCoeff            float64 `json:"dopplerCoeff,omitempty"`
	CoolantTempCoeff        float64 `json:"coolantTempCoeff,omitempty"`
	CoolantDensityCoeff     float64 `json:"coolantDensityCoeff,omitempty"`
	ReferenceFuelTemp       float64 `json:"referenceFuelTemp,omitempty"`
	ReferenceCoolantTemp    float64 `json:"referenceCoolantTemp,omitempty"`
	ReferenceCoolantDensity float64 `json:"referenceCoolantDensity,omitempty"`

	ControlRodPosition float64 `json:"controlRodPosition"`
	ControlRodWorth    float64 `json:"controlRodWorth"`

	DecayHeatFraction float64 `json:"decayHeatFraction,omitempty"`
	Scrammed          bool    `json:"scrammed,omitempty"`
}

// PumpDef is the wire form of simstate.PumpState.
type PumpDef struct {
	ID string `json:"id"`

	Running        bool    `json:"running,omitempty"`
	TargetSpeed    float64 `json:"targetSpeed,omitempty"`
	EffectiveSpeed float64 `json:"effectiveSpeed,omitempty"`

	RatedHead  float64 `json:"ratedHead"`
	RatedFlow  float64 `json:"ratedFlow"`
	Efficiency float64 `json:"efficiency,omitempty"`

	FlowConnectionID string `json:"flowConnectionId"`

	RampUpTime    float64 `json:"rampUpTime,omitempty"`
	CoastDownTime float64 `json:"coastDownTime,omitempty"`
}

// ValveDef is the wire form of simstate.ValveState.
type ValveDef struct {
	ID string `json:"id"`

	Position     float64 `json:"position"`
	FailPosition float64 `json:"failPosition,omitempty"`

	FlowConnectionID string `json:"flowConnectionId"`
}

// CheckValveDef is the wire form of simstate.CheckValveState.
type CheckValveDef struct {
	ID string `json:"id"`

	FlowConnectionID string  `json:"flowConnectionId"`
	CrackingPressure float64 `json:"crackingPressure,omitempty"`
}

// BurstDef is the wire form of simstate.BurstState.
type BurstDef struct {
	ID string `json:"id"`

	NodeID         string `json:"nodeId"`
	ComponentLabel string `json:"componentLabel,omitempty"`

	BurstThresholdPa float64 `json:"burstThresholdPa"`
	ShellNodeID      string  `json:"shellNodeId,omitempty"`
}

// TurbineDef is the wire form of physics.TurbineConfig.
type TurbineDef struct {
	ID               string  `json:"id"`
	InletID          string  `json:"inletId"`
	OutletID         string  `json:"outletId"`
	Efficiency       float64 `json:"efficiency"`
	PressureExponent float64 `json:"pressureExponent,omitempty"`
}

// CondenserDef is the wire form of physics.CondenserConfig.
type CondenserDef struct {
	ID       string  `json:"id"`
	NodeID   string  `json:"nodeId"`
	UA       float64 `json:"ua"`
	SinkTemp float64 `json:"sinkTemp"`
}

// Definition is the complete JSON document for one plant instance: the
// water property tables (per §6's saturation dome / (u,v) grid schemas,
// passed through verbatim to waterprops.Load) plus the lowered node/
// connection graph.
type Definition struct {
	WaterDome json.RawMessage `json:"waterDome"`
	WaterGrid json.RawMessage `json:"waterGrid"`

	// BulkModulusCapPa caps the bulk modulus used by the liquid branch of
	// the water backend (§4.1); 0 disables the cap.
	BulkModulusCapPa float64 `json:"bulkModulusCapPa,omitempty"`

	ThermalNodes          []ThermalNodeDef          `json:"thermalNodes,omitempty"`
	FlowNodes             []FlowNodeDef             `json:"flowNodes,omitempty"`
	ThermalConnections    []ThermalConnectionDef    `json:"thermalConnections,omitempty"`
	ConvectionConnections []ConvectionConnectionDef `json:"convectionConnections,omitempty"`
	FlowConnections       []FlowConnectionDef       `json:"flowConnections,omitempty"`

	Neutronics *NeutronicsDef `json:"neutronics,omitempty"`

	Pumps       []PumpDef       `json:"pumps,omitempty"`
	Valves      []ValveDef      `json:"valves,omitempty"`
	CheckValves []CheckValveDef `json:"checkValves,omitempty"`
	Bursts      []BurstDef      `json:"bursts,omitempty"`

	Turbines   []TurbineDef   `json:"turbines,omitempty"`
	Condensers []CondenserDef `json:"condensers,omitempty"`

	// BurstSeed seeds BurstCheck's deterministic jitter; two Builds of the
	// same Definition with the same seed reproduce identical burst timing.
	BurstSeed int64 `json:"burstSeed,omitempty"`

	// ParallelRates opts the assembled registry into goroutine-fanned-out
	// rate evaluation, per ops.Registry.Parallel.
	ParallelRates bool `json:"parallelRates,omitempty"`
}
