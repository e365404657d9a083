// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package quadrature implements the sampling half of a parallel Monte Carlo
// integrator: the fixed integrand, the split of a sample budget across
// workers, the per-worker sampling loop, and the per-round result table the
// workers write into.
//
// Nothing in this package spawns goroutines. Orchestration, timing and
// reporting live in internal/sweep.
package quadrature

import (
	"errors"
	"fmt"
)

// Request validation errors. Validate wraps one of these so callers can
// branch with errors.Is.
var (
	ErrInvalidBounds = errors.New("invalid limits: lower bound must be less than upper bound")
	ErrZeroBound     = errors.New("invalid value of a or b: zero not allowed")
	ErrNoSamples     = errors.New("sample count must be positive")
	ErrNoWorkers     = errors.New("worker count must be positive")
)

// Request is one integration job: the interval, the total sample budget and
// the largest worker count to evaluate. When Profile is set every worker
// count from 1 to MaxWorkers is measured; otherwise only MaxWorkers is.
type Request struct {
	Lower      float64
	Upper      float64
	Samples    int
	MaxWorkers int
	Profile    bool
}

// Validate reports the first invariant r violates, or nil.
func (r Request) Validate() error {
	switch {
	case !(r.Lower < r.Upper):
		return fmt.Errorf("%w (a=%g, b=%g)", ErrInvalidBounds, r.Lower, r.Upper)
	case r.Lower == 0 || r.Upper == 0:
		return fmt.Errorf("%w (a=%g, b=%g)", ErrZeroBound, r.Lower, r.Upper)
	case r.Samples < 1:
		return fmt.Errorf("%w (n=%d)", ErrNoSamples, r.Samples)
	case r.MaxWorkers < 1:
		return fmt.Errorf("%w (threads=%d)", ErrNoWorkers, r.MaxWorkers)
	}
	return nil
}

// Width returns Upper - Lower.
func (r Request) Width() float64 { return r.Upper - r.Lower }

// Steps returns the worker counts to run, in execution order. The first
// entry is the speedup baseline.
func (r Request) Steps() []int {
	if !r.Profile {
		return []int{r.MaxWorkers}
	}
	steps := make([]int, 0, r.MaxWorkers)
	for w := 1; w <= r.MaxWorkers; w++ {
		steps = append(steps, w)
	}
	return steps
}
