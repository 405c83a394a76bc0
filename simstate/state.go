// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package simstate

// Event is a host-visible occurrence pushed onto State.PendingEvents by
// BurstCheck or by rk45.TriggerScram. The host drains and clears the queue
// after each advance; the core never reads it back.
type Event struct {
	Kind    string // "burst" or "scram"
	NodeID  string
	Message string
}

// SimulationState is the complete, value-type plant state at one instant.
// All entities are owned here; operators receive read-only views and either
// return a StateRates bag (rate operators) or a new owned State (constraint
// operators) — they never mutate the State passed to them.
type State struct {
	Time float64 // s, simulation time

	ThermalNodes map[string]*ThermalNode
	FlowNodes    map[string]*FlowNode

	ThermalConnections    map[string]*ThermalConnection
	ConvectionConnections map[string]*ConvectionConnection
	FlowConnections       map[string]*FlowConnection

	Neutronics *NeutronicsState

	Pumps       map[string]*PumpState
	Valves      map[string]*ValveState
	CheckValves map[string]*CheckValveState
	Bursts      map[string]*BurstState

	PendingEvents []Event
}

// New returns an empty State with all maps initialized, ready for a plant
// builder to populate.
func New() *State {
	return &State{
		ThermalNodes:          map[string]*ThermalNode{},
		FlowNodes:             map[string]*FlowNode{},
		ThermalConnections:    map[string]*ThermalConnection{},
		ConvectionConnections: map[string]*ConvectionConnection{},
		FlowConnections:       map[string]*FlowConnection{},
		Pumps:                 map[string]*PumpState{},
		Valves:                map[string]*ValveState{},
		CheckValves:           map[string]*CheckValveState{},
		Bursts:                map[string]*BurstState{},
	}
}

// Clone produces an independent owned copy: deep for every map and pointed-to
// struct, value-copy for primitives. This is the only allocation of
// non-trivial size on the RK45 hot path (one per stage) and the natural
// synchronization point per §5.
func (s *State) Clone() *State {
	c := &State{
		Time:         s.Time,
		ThermalNodes: make(map[string]*ThermalNode, len(s.ThermalNodes)),
		FlowNodes:    make(map[string]*FlowNode, len(s.FlowNodes)),

		ThermalConnections:    make(map[string]*ThermalConnection, len(s.ThermalConnections)),
		ConvectionConnections: make(map[string]*ConvectionConnection, len(s.ConvectionConnections)),
		FlowConnections:       make(map[string]*FlowConnection, len(s.FlowConnections)),

		Pumps:       make(map[string]*PumpState, len(s.Pumps)),
		Valves:      make(map[string]*ValveState, len(s.Valves)),
		CheckValves: make(map[string]*CheckValveState, len(s.CheckValves)),
		Bursts:      make(map[string]*BurstState, len(s.Bursts)),
	}

	for id, n := range s.ThermalNodes {
		cp := *n
		cp.Oxidation = n.Oxidation.GetCopy()
		c.ThermalNodes[id] = &cp
	}
	for id, n := range s.FlowNodes {
		cp := *n
		if n.NCG != nil {
			cp.NCG = make(map[string]float64, len(n.NCG))
			for k, v := range n.NCG {
				cp.NCG[k] = v
			}
		}
		if n.HeatSink != nil {
			hs := *n.HeatSink
			cp.HeatSink = &hs
		}
		c.FlowNodes[id] = &cp
	}
	for id, v := range s.ThermalConnections {
		cp := *v
		c.ThermalConnections[id] = &cp
	}
	for id, v := range s.ConvectionConnections {
		cp := *v
		c.ConvectionConnections[id] = &cp
	}
	for id, v := range s.FlowConnections {
		cp := *v
		c.FlowConnections[id] = &cp
	}
	for id, v := range s.Pumps {
		cp := *v
		c.Pumps[id] = &cp
	}
	for id, v := range s.Valves {
		cp := *v
		c.Valves[id] = &cp
	}
	for id, v := range s.CheckValves {
		cp := *v
		c.CheckValves[id] = &cp
	}
	for id, v := range s.Bursts {
		cp := *v
		c.Bursts[id] = &cp
	}
	if s.Neutronics != nil {
		n := *s.Neutronics
		c.Neutronics = &n
	}

	// PendingEvents is intentionally NOT copied: it is a mailbox the host
	// drains after each advance, not part of the integrable state, and
	// cloning it would silently duplicate events across RK45 stages.
	return c
}

// PushEvent appends to the pending-events mailbox.
func (s *State) PushEvent(e Event) {
	s.PendingEvents = append(s.PendingEvents, e)
}

// DrainEvents returns and clears the pending-events mailbox; the host calls
// this once per advance.
func (s *State) DrainEvents() []Event {
	events := s.PendingEvents
	s.PendingEvents = nil
	return events
}
