// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import (
	"math"
)

// waterGasConstant is R/M for water, J/(kg·K): 8.314 / 0.018015.
const waterGasConstant = 461.52

// steamCv is a rough constant-volume specific heat used only by the dilute
// ideal-gas fallback of step 6, §4.1; it is not meant to be an accurate
// superheated-steam property, only a closed-form bridge when the grid has
// no nearby tabulated cell.
const steamCv = 1380.0

// twoPhaseLowEnergyBand is the "near the triple point" threshold (§4.1 step
// 2) below which the liquid saturation line's density anomaly requires
// comparing against v_f(u) instead of inverting v_f(T) directly.
const twoPhaseLowEnergyBand = 50e3 // J/kg

// Backend answers thermodynamic queries by combining the saturation dome
// and the single-phase (u,v) grid. It is immutable and safe for concurrent
// use once constructed by Load.
type Backend struct {
	Dome *Dome
	Grid *Grid

	// KMax optionally caps the bulk modulus used in the liquid branch (0
	// disables the cap), per §4.1's bulk-modulus numerical-cap policy.
	KMax float64
}

// Load constructs a Backend from the raw JSON bytes of the saturation dome
// and (u,v) grid files (schemas per §6). Loading is idempotent: calling it
// twice with the same bytes produces equivalent, independent Backends.
func Load(domeJSON, gridJSON []byte) (*Backend, error) {
	dome, err := LoadDome(domeJSON)
	if err != nil {
		return nil, err
	}
	grid, err := LoadGrid(gridJSON)
	if err != nil {
		return nil, err
	}
	return &Backend{Dome: dome, Grid: grid}, nil
}

// CalculateState implements the algorithm of §4.1: map (mass, U, V) to the
// unique (T,P,phase,quality) consistent with the water property tables.
func (b *Backend) CalculateState(mass, U, V float64) (State, error) {
	if !isPositiveFinite(mass) || !isFinite(U) || !isPositiveFinite(V) {
		return State{}, &InvalidInputError{Op: "CalculateState", Mass: mass, U: U, V: V,
			Message: "mass and volume must be positive and finite; energy must be finite"}
	}
	rho := mass / V
	v := V / mass
	u := U / mass

	if b.isInsideTwoPhaseDome(u, v) {
		return b.twoPhaseState(u, v, mass, U, V)
	}

	rhoCrit := b.Dome.RhoCrit
	isLiquid := rho > 0.5*rhoCrit || u < 1.8e6

	var st State
	var err error
	if isLiquid {
		st, err = b.liquidState(u, v)
	} else {
		st, err = b.vaporState(u, v, rho)
	}
	if err != nil {
		return State{}, err
	}

	if err := b.validate(st, mass, U, V); err != nil {
		return State{}, err
	}
	return st, nil
}

// isInsideTwoPhaseDome implements §4.1 step 2.
func (b *Backend) isInsideTwoPhaseDome(u, v float64) bool {
	vc := b.Dome.VCrit
	if v <= vc {
		if u < twoPhaseLowEnergyBand {
			T := b.Dome.TemperatureFromLiquidEnergy(u)
			vf := b.Dome.SatLiquidVolume(T)
			return v > vf
		}
		uf := b.saturatedLiquidEnergyAtVolume(v)
		return u <= uf
	}
	ug := b.saturatedVaporEnergyAtVolume(v)
	return u <= ug
}

// saturatedLiquidEnergyAtVolume finds u_f at the saturated-liquid state
// with specific volume v, by bisecting T against v_f(T) (monotone outside
// the density-anomaly band handled separately in isInsideTwoPhaseDome).
func (b *Backend) saturatedLiquidEnergyAtVolume(v float64) float64 {
	T := b.solveMonotone(v, b.Dome.SatLiquidVolume)
	return b.Dome.SatLiquidEnergy(T)
}

// saturatedVaporEnergyAtVolume finds u_g at the saturated-vapor state with
// specific volume v, per §4.1 step 2: near the critical point it
// extrapolates linearly in log(v) between the last tabulated vapor row and
// the critical point; otherwise it bisects v_g(T) (monotone decreasing in T).
func (b *Backend) saturatedVaporEnergyAtVolume(v float64) float64 {
	lastRaw := b.Dome.Raw[len(b.Dome.Raw)-1]
	if v <= lastRaw.Vg {
		logV1, u1 := math.Log10(lastRaw.Vg), lastRaw.Ug
		logV2, u2 := math.Log10(b.Dome.VCrit), b.Dome.UCrit
		if logV2 == logV1 {
			return u2
		}
		frac := (math.Log10(v) - logV1) / (logV2 - logV1)
		return u1 + frac*(u2-u1)
	}
	T := b.solveMonotone(v, b.Dome.SatVaporVolume)
	return b.Dome.SatVaporEnergy(T)
}

// solveMonotone bisects T in [TTriple, TCrit] for f(T) == target. f may be
// monotonically increasing or decreasing on that interval; direction is
// detected from the endpoint values.
func (b *Backend) solveMonotone(target float64, f func(float64) float64) float64 {
	lo, hi := TTriple, b.Dome.TCrit
	flo := f(lo) - target
	fhi := f(hi) - target
	if flo*fhi > 0 {
		if math.Abs(flo) < math.Abs(fhi) {
			return lo
		}
		return hi
	}
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		fmid := f(mid) - target
		if math.Abs(fmid) < 1e-9 || hi-lo < 1e-9 {
			return mid
		}
		if flo*fmid <= 0 {
			hi = mid
		} else {
			lo, flo = mid, fmid
		}
	}
	return 0.5 * (lo + hi)
}

// twoPhaseState implements §4.1 step 3: binary search for the unique T
// where quality-by-volume equals quality-by-energy.
func (b *Backend) twoPhaseState(u, v, mass, U, V float64) (State, error) {
	g := func(T float64) float64 {
		vf := b.Dome.SatLiquidVolume(T)
		vg := b.Dome.SatVaporVolume(T)
		uf := b.Dome.SatLiquidEnergy(T)
		ug := b.Dome.SatVaporEnergy(T)
		xv := (v - vf) / (vg - vf)
		xu := (u - uf) / (ug - uf)
		return xv - xu
	}
	lo, hi := TTriple, b.Dome.TCrit-1e-6
	glo, ghi := g(lo), g(hi)
	T := hi
	if glo*ghi <= 0 {
		for i := 0; i < 100; i++ {
			mid := 0.5 * (lo + hi)
			gmid := g(mid)
			if math.Abs(gmid) < 1e-10 || hi-lo < 1e-10 {
				T = mid
				break
			}
			if glo*gmid <= 0 {
				hi = mid
				ghi = gmid
			} else {
				lo, glo = mid, gmid
			}
			T = mid
		}
	} else if math.Abs(glo) < math.Abs(ghi) {
		T = lo
	}

	vf := b.Dome.SatLiquidVolume(T)
	vg := b.Dome.SatVaporVolume(T)
	x := (v - vf) / (vg - vf)
	if x < 0 {
		x = 0
	}
	if x > 1 {
		x = 1
	}
	st := State{T: T, P: b.Dome.SaturationPressure(T), Phase: TwoPhase, Quality: x}
	if err := b.validate(st, mass, U, V); err != nil {
		return State{}, err
	}
	return st, nil
}

// liquidState implements §4.1 step 5: saturation-anchored inversion.
func (b *Backend) liquidState(u, v float64) (State, error) {
	Tsat := b.Dome.TemperatureFromLiquidEnergy(u)
	vf := b.Dome.SatLiquidVolume(Tsat)
	const tol = 1e-3
	if v > vf*(1+tol) {
		return State{}, &InvalidInputError{Op: "liquidState", U: u, V: v,
			Message: "specific volume exceeds saturated-liquid volume at this energy; caller should have detected two-phase"}
	}
	Psat := b.Dome.SaturationPressure(Tsat)
	K := BulkModulusCapped(Tsat-273.15, b.KMax)
	P := Psat + K*math.Abs(v-vf)/vf
	return State{T: Tsat, P: P, Phase: Liquid, Quality: 0}, nil
}

// vaporState implements §4.1 step 6: IDW interpolation over the (u,v) grid,
// falling back to an ideal-gas estimate for dilute states the grid does not
// cover.
func (b *Backend) vaporState(u, v, rho float64) (State, error) {
	T, P, ok := b.Grid.InterpolateVapor(u, v)
	if ok {
		phase := Vapor
		if T > b.Dome.TCrit && P > b.Dome.PCrit {
			phase = Supercritical
		}
		return State{T: T, P: P, Phase: phase, Quality: 1}, nil
	}

	rhoCrit := b.Dome.RhoCrit
	ugTriple := b.Dome.SatVaporEnergy(TTriple)
	dilute := rho < 0.1*rhoCrit && u > ugTriple
	if !dilute {
		return State{}, &InvalidInputError{Op: "vaporState", U: u, V: v,
			Message: "no grid cell found and state is not dilute enough for the ideal-gas fallback"}
	}
	logf("vapor state outside grid coverage, falling back to ideal-gas estimate (u=%g v=%g)", u, v)
	T = u / steamCv
	Z := idealGasZFactor(rho / rhoCrit)
	P = Z * rho * waterGasConstant * T
	return State{T: T, P: P, Phase: Vapor, Quality: 1}, nil
}

// idealGasZFactor is a tabulated low-order compressibility-factor
// approximation, used only in the dilute fallback of vaporState; it
// reduces to Z≈1 for ρ≪ρ_crit as required by an ideal-gas limit.
func idealGasZFactor(rhoR float64) float64 {
	z := 1.0 - 0.7*rhoR + 0.3*rhoR*rhoR
	if z < 0.3 {
		z = 0.3
	}
	return z
}

// validate implements §4.1 step 7's range checks.
func (b *Backend) validate(st State, mass, U, V float64) error {
	if !isFinite(st.T) || !isFinite(st.P) {
		return &InvalidInputError{Op: "validate", Mass: mass, U: U, V: V, Message: "non-finite resolved state"}
	}
	if st.P < 1e3 || st.P > 10*b.Dome.PCrit {
		return &InvalidInputError{Op: "validate", Mass: mass, U: U, V: V,
			Message: "resolved pressure outside plausible range"}
	}
	if st.T < TTriple || st.T > 3000 {
		return &InvalidInputError{Op: "validate", Mass: mass, U: U, V: V,
			Message: "resolved temperature outside plausible range"}
	}
	return nil
}

// DistanceFromSaturation returns a signed measure (in mL/kg, i.e. v units
// ×1000) of how far (u,v) is from the saturation line, computed as
// v − v_sat at fixed u: on the liquid side (v ≤ v_c) it is negative for
// compressed liquid and positive inside the dome; on the vapor side it is
// negative inside the dome and positive for superheated vapor. No operator
// in this module calls it.
func (b *Backend) DistanceFromSaturation(u, v float64) float64 {
	vc := b.Dome.VCrit
	var vSat float64
	if v <= vc {
		if u < twoPhaseLowEnergyBand {
			T := b.Dome.TemperatureFromLiquidEnergy(u)
			vSat = b.Dome.SatLiquidVolume(T)
		} else {
			T := b.solveMonotone(u, b.Dome.SatLiquidEnergy)
			vSat = b.Dome.SatLiquidVolume(T)
		}
	} else {
		T := b.solveMonotone(u, b.Dome.SatVaporEnergy)
		vSat = b.Dome.SatVaporVolume(T)
	}
	return (v - vSat) * 1000
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func isPositiveFinite(x float64) bool {
	return isFinite(x) && x > 0
}
