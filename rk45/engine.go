// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rk45

import (
	"math"
	"time"

	"github.com/erickball/meltdown-sub001/diag"
	"github.com/erickball/meltdown-sub001/ops"
	"github.com/erickball/meltdown-sub001/simstate"
)

// Config tunes the adaptive step-size controller. Zero-valued fields mean
// "use DefaultConfig's value" only if the caller starts from DefaultConfig;
// Engine itself does not fill in zeros.
type Config struct {
	MinDt float64 // s, floor below which a rejected step becomes fatal
	MaxDt float64 // s, ceiling the PI controller will not grow past
	InitialDt float64 // s, dt the engine starts its first Advance with

	RelTol float64 // dimensionless, the tolerance the L2 error/sanity score are compared against

	SafetyFactor float64 // PI controller safety margin, teacher idiom default 0.9
	MinShrink    float64 // floor on dt_new/dt_old after a rejection, default 0.1
	MaxGrowth    float64 // ceiling on dt_new/dt_old after an acceptance, default 5

	MaxStepsPerFrame int     // subcycle budget per Advance call
	MaxWallTimeMs    float64 // wall-clock budget per Advance call
}

// DefaultConfig returns the tuning used across the testable-properties
// suite and the demo harness: conservative bounds, no stall on the first
// call.
func DefaultConfig() Config {
	return Config{
		MinDt:            1e-6,
		MaxDt:            1.0,
		InitialDt:        0.01,
		RelTol:           1e-4,
		SafetyFactor:     0.9,
		MinShrink:        0.1,
		MaxGrowth:        5,
		MaxStepsPerFrame: 500,
		MaxWallTimeMs:    200,
	}
}

// maxRetriesPerStep bounds how many times a single accepted-or-fatal step
// attempt will shrink dt before giving up and returning FatalDiagnosticError;
// it exists purely as a backstop against an infinite loop, MinDt is the
// real floor.
const maxRetriesPerStep = 64

// Engine drives a simstate.State forward with the registry's operators
// using the embedded DOPRI5(4) method of §4.5, including the DAE-aware
// constraint pass between every stage.
type Engine struct {
	Registry *ops.Registry
	Config   Config

	currentDt float64
	Metrics   Metrics
}

// NewEngine returns an Engine ready to Advance, seeded with cfg.InitialDt.
func NewEngine(reg *ops.Registry, cfg Config) *Engine {
	return &Engine{Registry: reg, Config: cfg, currentDt: cfg.InitialDt}
}

// stageResult carries one kᵢ together with the constraint-consistent state
// it was sampled from, since later stages and the error norm both need the
// consistent y, not the raw pre-constraint guess.
type stageResult struct {
	consistent *simstate.State
	k          *simstate.Rates
}

// Advance integrates the state forward by exactly requestedDt, subcycling
// as many accepted RK45 steps as necessary, and returns the new state. If
// the frame's step or wall-time budget runs out first, FrameBudgetExceeded
// is set on e.Metrics and the returned state stops short of requestedDt;
// the time actually covered is not returned separately.
func (e *Engine) Advance(s *simstate.State, requestedDt float64) (*simstate.State, error) {
	e.Metrics.startFrame()
	start := time.Now()

	cur, err := e.Registry.ApplyConstraints(s)
	if err != nil {
		return nil, err
	}

	remaining := requestedDt
	for remaining > 1e-10 {
		if e.Metrics.StepsThisFrame >= e.Config.MaxStepsPerFrame {
			e.Metrics.FrameBudgetExceeded = true
			diag.Warnf("advance: MaxStepsPerFrame (%d) reached with %.6g s remaining", e.Config.MaxStepsPerFrame, remaining)
			break
		}
		if elapsedMs := float64(time.Since(start)) / 1e6; elapsedMs >= e.Config.MaxWallTimeMs {
			e.Metrics.FrameBudgetExceeded = true
			diag.Warnf("advance: MaxWallTimeMs (%.0f) reached with %.6g s remaining", e.Config.MaxWallTimeMs, remaining)
			break
		}

		dt := e.currentDt
		if dt > remaining {
			dt = remaining
		}
		if dt > e.Config.MaxDt {
			dt = e.Config.MaxDt
		}

		next, usedDt, err := e.SingleStep(cur, dt)
		if err != nil {
			return nil, err
		}
		cur = next
		remaining -= usedDt
		e.Metrics.CurrentDt = e.currentDt
	}

	if e.Metrics.TotalSteps > 0 {
		elapsedS := time.Since(start).Seconds()
		if elapsedS > 0 {
			e.Metrics.RealTimeRatio = (requestedDt - remaining) / elapsedS
		}
	}
	e.Metrics.IsFallingBehind = e.Metrics.FrameBudgetExceeded

	return cur, nil
}

// SingleStep attempts one RK45 step starting from the already
// constraint-consistent state y0, shrinking dt on rejection until it
// accepts or falls below MinDt. It returns the accepted state and the dt
// actually used, which is smaller than the requested dt when a rejection
// shrank it.
func (e *Engine) SingleStep(y0 *simstate.State, dt float64) (*simstate.State, float64, error) {
	for attempt := 0; attempt < maxRetriesPerStep; attempt++ {
		candidate, effErr, sanityFailed, err := e.attempt(y0, dt)
		if err != nil {
			// A stage itself blew up (non-finite, mass floor, ...): treat
			// exactly like a huge RK45 error and shrink hard.
			e.Metrics.recordReject()
			dt = e.shrinkFor(dt, sentinelStageError, true)
			e.currentDt = dt
			if dt <= e.Config.MinDt {
				return nil, 0, &FatalDiagnosticError{EntityID: "", Message: err.Error()}
			}
			continue
		}

		tol := e.Config.RelTol
		if effErr <= tol || dt <= e.Config.MinDt {
			grown := e.growFor(dt, effErr, tol)
			e.currentDt = grown
			e.Metrics.recordAccepted(dt)
			return candidate, dt, nil
		}

		e.Metrics.recordReject()
		dt = e.shrinkFor(dt, effErr, sanityFailed)
		e.currentDt = dt
		if dt < e.Config.MinDt {
			dt = e.Config.MinDt
		}
	}
	return nil, 0, &FatalDiagnosticError{Message: "exceeded maxRetriesPerStep without accepting or reaching MinDt"}
}

// attempt runs the full 7-stage DOPRI5 procedure once at the given dt and
// reports whether the candidate is acceptable, without touching e.currentDt
// or e.Metrics — SingleStep owns all step-size and bookkeeping decisions.
func (e *Engine) attempt(y0 *simstate.State, dt float64) (candidate *simstate.State, effectiveError float64, sanityFailed bool, err error) {
	stages := make([]stageResult, 7)

	// Step 1: k1 from y0 itself, after one more constraint pass (y0 should
	// already be consistent, but the contract in §4.5 is explicit that
	// every stage, including the first, starts from a constrained state).
	consistent0, err := e.Registry.ApplyConstraints(y0)
	if err != nil {
		return nil, 0, false, err
	}
	k1, err := e.Registry.ComputeRates(consistent0)
	if err != nil {
		return nil, 0, false, err
	}
	stages[0] = stageResult{consistent: consistent0, k: k1}

	for i := 1; i < 7; i++ {
		combined := combineRates(dopri5.a[i][:i], stages[:i])
		raw := simstate.ApplyRates(consistent0, combined, dt)
		if err := PreSanityCheck(raw); err != nil {
			return nil, 0, false, err
		}
		consistent, err := e.Registry.ApplyConstraints(raw)
		if err != nil {
			return nil, 0, false, err
		}
		k, err := e.Registry.ComputeRates(consistent)
		if err != nil {
			return nil, 0, false, err
		}
		stages[i] = stageResult{consistent: consistent, k: k}
	}

	// Step 3/4: 5th order solution and the 4th/5th order error vector.
	sol5 := combineRates(dopri5.b5[:], stages)
	errCoeffs := make([]float64, 7)
	for i := range errCoeffs {
		errCoeffs[i] = dopri5.b5[i] - dopri5.b4[i]
	}
	errRates := combineRates(errCoeffs, stages)

	rawY5 := simstate.ApplyRates(consistent0, sol5, dt)
	if err := PreSanityCheck(rawY5); err != nil {
		return nil, 0, false, err
	}
	y5, err := e.Registry.ApplyConstraints(rawY5)
	if err != nil {
		return nil, 0, false, err
	}

	rkError := errorNorm(consistent0, errRates, dt)
	sanity := SanityScore(consistent0, y5, dt)
	tol := e.Config.RelTol
	effectiveError = math.Max(rkError, sanity*tol)
	sanityFailed = sanity*tol > rkError

	return y5, effectiveError, sanityFailed, nil
}

// combineRates forms Σ coeffs[i]·stages[i].k, the Σaᵢⱼkⱼ / Σb5ᵢkᵢ / Σb4ᵢkᵢ
// combination every stage and the final solution need.
func combineRates(coeffs []float64, stages []stageResult) *simstate.Rates {
	out := simstate.NewRates()
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		out = out.Add(stages[i].k.Scale(c))
	}
	return out
}

// shrinkFor computes the PI-controller dt after a rejection: the usual
// safety·(tol/err)^0.2 law, clamped to MinShrink, with an extra ×0.25 kick
// when the rejection came from the sanity score rather than the raw RK
// error (§4.5 step 7).
func (e *Engine) shrinkFor(dt, err float64, sanityFailed bool) float64 {
	tol := e.Config.RelTol
	if err <= 0 {
		err = 1e-300
	}
	factor := e.Config.SafetyFactor * math.Pow(tol/err, 0.2)
	if sanityFailed {
		factor *= 0.25
	}
	if factor < e.Config.MinShrink {
		factor = e.Config.MinShrink
	}
	if factor > 1 {
		factor = 1
	}
	return dt * factor
}

// growFor computes the PI-controller dt after an acceptance, using the same
// law as shrinkFor but clamped on the growth side (MaxGrowth) and never
// shrunk below 1 since an accepted step should never be punished.
func (e *Engine) growFor(dt, err, tol float64) float64 {
	if err <= 0 {
		err = 1e-300
	}
	factor := e.Config.SafetyFactor * math.Pow(tol/err, 0.2)
	if factor > e.Config.MaxGrowth {
		factor = e.Config.MaxGrowth
	}
	if factor < 1 {
		factor = 1
	}
	next := dt * factor
	if next > e.Config.MaxDt {
		next = e.Config.MaxDt
	}
	return next
}

// errorNorm implements §4.5 step 4: the L2 norm of the 5th/4th order
// difference, with each component normalized by the current magnitude of
// the quantity it belongs to (mass, |U|, a 100 kg/s or current-flow
// reference, 1000 K, power, precursor), plus a 0.3x throughput term added
// to the mass component, which raises the error of a node passing a lot of
// fluid through a small inventory even when its net mass rate is small.
func errorNorm(y0 *simstate.State, errRates *simstate.Rates, dt float64) float64 {
	sumSq := 0.0

	for id, n0 := range y0.FlowNodes {
		rate, ok := errRates.FlowNodes[id]
		if !ok {
			continue
		}
		massScale := math.Max(n0.Mass, 1e-6)
		throughput := totalThroughput(y0, id)
		massTerm := math.Abs(dt*rate.DMassDt)/massScale + 0.3*(throughput*dt)/massScale
		energyScale := math.Max(math.Abs(n0.U), 1.0)
		energyTerm := math.Abs(dt*rate.DEnergyDt) / energyScale
		sumSq += massTerm*massTerm + energyTerm*energyTerm
	}

	for id, n0 := range y0.FlowConnections {
		drate, ok := errRates.FlowConnections[id]
		if !ok {
			continue
		}
		scale := math.Max(100, math.Abs(n0.MassFlowRate))
		term := math.Abs(dt*drate) / scale
		sumSq += term * term
	}

	for id := range y0.ThermalNodes {
		drate, ok := errRates.ThermalNodes[id]
		if !ok {
			continue
		}
		term := math.Abs(dt*drate) / 1000.0
		sumSq += term * term
	}

	if y0.Neutronics != nil {
		powerScale := math.Max(math.Abs(y0.Neutronics.Power), 1.0)
		precScale := math.Max(math.Abs(y0.Neutronics.Precursor), 1e-6)
		pTerm := math.Abs(dt*errRates.Neutronics.DPowerDt) / powerScale
		cTerm := math.Abs(dt*errRates.Neutronics.DPrecursorDt) / precScale
		sumSq += pTerm*pTerm + cTerm*cTerm
	}

	return math.Sqrt(sumSq)
}
