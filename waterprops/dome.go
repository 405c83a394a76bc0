// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package waterprops

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
)

// TTriple is the triple-point temperature of water, K.
const TTriple = 273.16

// rawDomeFile mirrors the saturation dome JSON schema of SPEC_FULL.md §6.
// Units on disk: T in K (T_C also supplied), P in MPa, u in kJ/kg, v in m³/kg.
type rawDomeFile struct {
	CriticalPoint struct {
		TK   float64 `json:"T_K"`
		TC   float64 `json:"T_C"`
		PMPa float64 `json:"P_MPa"`
		Uc   float64 `json:"u_c"`
		Vc   float64 `json:"v_c"`
	} `json:"critical_point"`
	UgMax struct {
		TK float64 `json:"T_K"`
		Ug float64 `json:"u_g"`
	} `json:"u_g_max"`
	Polynomials struct {
		PSatFromT        []PolynomialFit `json:"P_sat_from_T"`
		UfFromT          []PolynomialFit `json:"u_f_from_T"`
		VfFromT          []PolynomialFit `json:"v_f_from_T"`
		UgFromT          []PolynomialFit `json:"u_g_from_T"`
		VgFromT          []PolynomialFit `json:"v_g_from_T"`
		TFromUf          []PolynomialFit `json:"T_from_u_f"`
		TFromUgAscending []PolynomialFit `json:"T_from_u_g_ascending"`
		TFromUgDescend   []PolynomialFit `json:"T_from_u_g_descending"`
	} `json:"polynomials"`
	RawData []struct {
		TK   float64  `json:"T_K"`
		TC   float64  `json:"T_C"`
		PMPa float64  `json:"P_MPa"`
		Uf   float64  `json:"u_f"`
		Vf   float64  `json:"v_f"`
		Ug   float64  `json:"u_g"`
		Vg   float64  `json:"v_g"`
		Hf   *float64 `json:"h_f,omitempty"`
		Hg   *float64 `json:"h_g,omitempty"`
	} `json:"raw_data"`
}

// RawPoint is one tabulated saturation record, converted to SI (K, Pa,
// J/kg, m³/kg).
type RawPoint struct {
	T  float64
	P  float64
	Uf float64
	Vf float64
	Ug float64
	Vg float64
}

// Dome holds the saturation-dome table and polynomial fits used to answer
// every saturation-line query in §4.1.
type Dome struct {
	TCrit float64
	PCrit float64
	UCrit float64
	VCrit float64
	RhoCrit float64

	UgMaxT float64 // temperature at which u_g is maximal, as read from the dome file
	UgMaxU float64

	pSatFromT        piecewiseFit
	uFFromT          piecewiseFit
	vFFromT          piecewiseFit
	uGFromT          piecewiseFit
	vGFromT          piecewiseFit
	tFromUf          piecewiseFit
	tFromUgAscending piecewiseFit
	tFromUgDescend   piecewiseFit

	Raw []RawPoint
}

// LoadDome parses a saturation dome JSON document (schema per
// SPEC_FULL.md §6) and converts every tabulated quantity to SI units.
func LoadDome(data []byte) (*Dome, error) {
	var raw rawDomeFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, chk.Err("waterprops: cannot parse saturation dome data: %v", err)
	}
	d := &Dome{
		TCrit:   raw.CriticalPoint.TK,
		PCrit:   raw.CriticalPoint.PMPa * 1e6,
		UCrit:   raw.CriticalPoint.Uc * 1e3,
		VCrit:   raw.CriticalPoint.Vc,
		UgMaxT:  raw.UgMax.TK,
		UgMaxU:  raw.UgMax.Ug * 1e3,
		pSatFromT:        raw.Polynomials.PSatFromT,
		uFFromT:          raw.Polynomials.UfFromT,
		vFFromT:          raw.Polynomials.VfFromT,
		uGFromT:          raw.Polynomials.UgFromT,
		vGFromT:          raw.Polynomials.VgFromT,
		tFromUf:          raw.Polynomials.TFromUf,
		tFromUgAscending: raw.Polynomials.TFromUgAscending,
		tFromUgDescend:   raw.Polynomials.TFromUgDescend,
	}
	if d.VCrit > 0 {
		d.RhoCrit = 1.0 / d.VCrit
	}
	d.Raw = make([]RawPoint, len(raw.RawData))
	for i, r := range raw.RawData {
		d.Raw[i] = RawPoint{
			T:  r.TK,
			P:  r.PMPa * 1e6,
			Uf: r.Uf * 1e3,
			Vf: r.Vf,
			Ug: r.Ug * 1e3,
			Vg: r.Vg,
		}
	}
	if len(d.pSatFromT) == 0 || len(d.Raw) == 0 {
		return nil, chk.Err("waterprops: saturation dome data is incomplete")
	}
	return d, nil
}

// SaturationPressure returns P_sat(T) in Pa for T in [T_triple, T_crit].
func (d *Dome) SaturationPressure(T float64) float64 {
	return d.pSatFromT.Eval(T) * 1e6
}

// SaturationTemperature inverts P_sat(T) by bisection; P_sat_from_T has no
// closed-form inverse in the dome data, only T_from_u_f/u_g, so root-finding
// is the correct approach here (property 4 requires this round-trip to
// agree with SaturationPressure to within 0.1 K).
func (d *Dome) SaturationTemperature(P float64) float64 {
	lo, hi := TTriple, d.TCrit
	flo := d.SaturationPressure(lo) - P
	fhi := d.SaturationPressure(hi) - P
	if flo*fhi > 0 {
		// outside the tabulated range; clamp to the nearer bound
		if math.Abs(flo) < math.Abs(fhi) {
			return lo
		}
		return hi
	}
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		fmid := d.SaturationPressure(mid) - P
		if math.Abs(fmid) < 1e-6*P || hi-lo < 1e-9 {
			return mid
		}
		if flo*fmid <= 0 {
			hi = mid
			fhi = fmid
		} else {
			lo = mid
			flo = fmid
		}
	}
	return 0.5 * (lo + hi)
}

// SatLiquidEnergy returns u_f(T) in J/kg.
func (d *Dome) SatLiquidEnergy(T float64) float64 { return d.uFFromT.Eval(T) * 1e3 }

// SatLiquidVolume returns v_f(T) in m³/kg.
func (d *Dome) SatLiquidVolume(T float64) float64 { return d.vFFromT.Eval(T) }

// SatVaporEnergy returns u_g(T) in J/kg.
func (d *Dome) SatVaporEnergy(T float64) float64 { return d.uGFromT.Eval(T) * 1e3 }

// SatVaporVolume returns v_g(T) in m³/kg.
func (d *Dome) SatVaporVolume(T float64) float64 { return d.vGFromT.Eval(T) }

// TemperatureFromLiquidEnergy inverts u_f(T) using the dedicated polynomial
// fit (the liquid branch is single-valued in u away from the density
// anomaly, so no ascending/descending split is needed, unlike u_g).
func (d *Dome) TemperatureFromLiquidEnergy(u float64) float64 {
	return d.tFromUf.Eval(u / 1e3)
}

// LatentHeat returns h_fg(T) = (u_g + P_sat*v_g) - (u_f + P_sat*v_f), J/kg.
func (d *Dome) LatentHeat(T float64) float64 {
	P := d.SaturationPressure(T)
	hf := d.SatLiquidEnergy(T) + P*d.SatLiquidVolume(T)
	hg := d.SatVaporEnergy(T) + P*d.SatVaporVolume(T)
	return hg - hf
}
