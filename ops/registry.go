// Copyright 2026 The Meltdown Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"sync"

	"github.com/cpmech/gosl/chk"

	"github.com/erickball/meltdown-sub001/simstate"
)

// Registry holds the physics operator set in registration order. Rate
// operators are summed; constraint operators are applied in sequence, each
// seeing the output of the previous one.
type Registry struct {
	rateOps       []RateOperator
	constraintOps []ConstraintOperator

	// Parallel opts into evaluating rate operators concurrently, per §5's
	// "implementations are free to parallelize... so long as writes into
	// the rate bag are disjoint" allowance. Defaults to false: gofem itself
	// is single-threaded/MPI-parallel, not goroutine-parallel within a
	// step, so there is no teacher idiom to follow here and the safer
	// default is sequential.
	Parallel bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RegisterRate appends a rate operator. Order does not affect ComputeRates'
// output (rate operators are pure and summed), but it does affect the order
// errors are reported in when Parallel is false.
func (reg *Registry) RegisterRate(op RateOperator) {
	reg.rateOps = append(reg.rateOps, op)
}

// RegisterConstraint appends a constraint operator. Order matters:
// constraint operators run in registration order, each consuming the
// previous one's output state.
func (reg *Registry) RegisterConstraint(op ConstraintOperator) {
	reg.constraintOps = append(reg.constraintOps, op)
}

// RateOperators returns the registered rate operators in registration order.
func (reg *Registry) RateOperators() []RateOperator {
	return reg.rateOps
}

// ConstraintOperators returns the registered constraint operators in
// registration order.
func (reg *Registry) ConstraintOperators() []ConstraintOperator {
	return reg.constraintOps
}

// ComputeRates sums the contribution of every registered rate operator into
// one Rates bag.
func (reg *Registry) ComputeRates(s *simstate.State) (*simstate.Rates, error) {
	if reg.Parallel {
		return reg.computeRatesParallel(s)
	}
	total := simstate.NewRates()
	for _, op := range reg.rateOps {
		if err := op.ComputeRates(s, total); err != nil {
			return nil, chk.Err("ops: rate operator %q failed: %v", op.Name(), err)
		}
	}
	return total, nil
}

// computeRatesParallel evaluates every rate operator into its own private
// Rates bag concurrently, then merges them with Rates.Add — each operator's
// writes are disjoint from every other's by construction (they never share a
// bag), so no mutex is needed on the hot path.
func (reg *Registry) computeRatesParallel(s *simstate.State) (*simstate.Rates, error) {
	n := len(reg.rateOps)
	partials := make([]*simstate.Rates, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, op := range reg.rateOps {
		i, op := i, op
		go func() {
			defer wg.Done()
			r := simstate.NewRates()
			if err := op.ComputeRates(s, r); err != nil {
				errs[i] = chk.Err("ops: rate operator %q failed: %v", op.Name(), err)
				return
			}
			partials[i] = r
		}()
	}
	wg.Wait()

	total := simstate.NewRates()
	for i, r := range partials {
		if errs[i] != nil {
			return nil, errs[i]
		}
		total = total.Add(r)
	}
	return total, nil
}

// ApplyConstraints runs every registered constraint operator in order,
// feeding each one the previous one's output state.
func (reg *Registry) ApplyConstraints(s *simstate.State) (*simstate.State, error) {
	cur := s
	for _, op := range reg.constraintOps {
		next, err := op.ApplyConstraints(cur)
		if err != nil {
			return nil, chk.Err("ops: constraint operator %q failed: %v", op.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
