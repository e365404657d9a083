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


package quadrature

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrEmptyShare is returned by Worker.Run when the worker was given no
// samples, which happens when the sample budget is smaller than the worker
// count. The mean of zero samples is undefined, so the round cannot complete.
var ErrEmptyShare = errors.New("worker has no samples to draw")

// Source is a private stream of uniform values in [0, 1). *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
}

// SourceFactory builds the random source owned by worker i. It is called
// once per worker per round, on the orchestrating goroutine.
type SourceFactory func(worker int) Source

// SeededSources returns a factory that gives every worker index its own PCG
// stream derived from seed. Equal seeds reproduce a round exactly.
func SeededSources(seed uint64) SourceFactory {
	return func(worker int) Source {
		return rand.New(rand.NewPCG(seed, uint64(worker)+1))
	}
}

// Worker draws Samples abscissas uniformly from the open interval
// (Lower, Upper), averages Integrand over them and stores the mean in its slot.
type Worker struct {
	Index     int
	Samples   int
	Lower     float64
	Upper     float64
	Integrand Integrand // nil means Sinc(Lower, Upper)
	Source    Source
}

// Run executes the sampling loop and performs the worker's single write to
// out. It returns the stored mean.
func (w Worker) Run(out Slot) (float64, error) {
	if w.Samples <= 0 {
		return 0, fmt.Errorf("worker %d: %w", w.Index, ErrEmptyShare)
	}
	f := w.Integrand
	if f == nil {
		f = Sinc(w.Lower, w.Upper)
	}
	width := w.Upper - w.Lower

	var sum float64
	for i := 0; i < w.Samples; i++ {
		sum += f(w.abscissa(width))
	}
	mean := sum / float64(w.Samples)

	if err := out.Store(mean); err != nil {
		return 0, fmt.Errorf("worker %d: %w", w.Index, err)
	}
	return mean, nil
}

// abscissa draws x in (Lower, Upper). Float64 can return 0, and rounding can
// land on Upper; both endpoints are redrawn.
func (w Worker) abscissa(width float64) float64 {
	for {
		x := w.Lower + width*w.Source.Float64()
		if x > w.Lower && x < w.Upper {
			return x
		}
	}
}
