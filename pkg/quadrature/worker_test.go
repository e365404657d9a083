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
	"math"
	"testing"
)

// seqSource replays a fixed list of draws, cycling when exhausted.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// simpson integrates f over [a, b] with n (even) subintervals.
func simpson(f func(float64) float64, a, b float64, n int) float64 {
	h := (b - a) / float64(n)
	sum := f(a) + f(b)
	for i := 1; i < n; i++ {
		x := a + float64(i)*h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}
	return sum * h / 3
}

func TestSinc(t *testing.T) {
	h := Sinc(1, 10)
	if got, want := h(1), math.Sin(1)*9; math.Abs(got-want) > 1e-15 {
		t.Errorf("h(1) = %v, want %v", got, want)
	}
	if got := h(math.Pi); math.Abs(got) > 1e-15 {
		t.Errorf("h(pi) = %v, want ~0", got)
	}
}

func TestWorker_EmptyShare(t *testing.T) {
	tbl := NewResultTable(1)
	w := Worker{Index: 0, Samples: 0, Lower: 1, Upper: 2, Source: SeededSources(1)(0)}
	if _, err := w.Run(tbl.Slot(0)); !errors.Is(err, ErrEmptyShare) {
		t.Fatalf("Run() = %v, want ErrEmptyShare", err)
	}
	if _, err := tbl.Partials(); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("slot must stay empty after a failed run, got %v", err)
	}
}

func TestWorker_OpenInterval(t *testing.T) {
	var seen []float64
	record := func(x float64) float64 {
		seen = append(seen, x)
		return x
	}
	// 0 maps to Lower and must be redrawn.
	src := &seqSource{vals: []float64{0, 0.5, 0, 0.25}}
	tbl := NewResultTable(1)
	w := Worker{Samples: 2, Lower: 2, Upper: 6, Integrand: record, Source: src}
	mean, err := w.Run(tbl.Slot(0))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(seen) != 2 || seen[0] != 4 || seen[1] != 3 {
		t.Fatalf("sampled %v, want [4 3]", seen)
	}
	if mean != 3.5 {
		t.Fatalf("mean = %v, want 3.5", mean)
	}
	partials, _ := tbl.Partials()
	if partials[0] != mean {
		t.Fatalf("stored %v, want %v", partials[0], mean)
	}
}

func TestWorker_DoubleRunRejected(t *testing.T) {
	tbl := NewResultTable(1)
	w := Worker{Samples: 10, Lower: 1, Upper: 2, Source: SeededSources(3)(0)}
	if _, err := w.Run(tbl.Slot(0)); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if _, err := w.Run(tbl.Slot(0)); !errors.Is(err, ErrSlotWritten) {
		t.Fatalf("second Run = %v, want ErrSlotWritten", err)
	}
}

func TestSeededSources_Reproducible(t *testing.T) {
	run := func(seed uint64, index int) float64 {
		tbl := NewResultTable(1)
		w := Worker{Index: index, Samples: 1000, Lower: 1, Upper: 10, Source: SeededSources(seed)(index)}
		m, err := w.Run(tbl.Slot(0))
		if err != nil {
			t.Fatalf("Run() error: %v", err)
		}
		return m
	}
	if a, b := run(42, 0), run(42, 0); a != b {
		t.Errorf("same seed and index gave %v and %v", a, b)
	}
	if a, b := run(42, 0), run(42, 1); a == b {
		t.Errorf("different worker indexes shared a stream: %v", a)
	}
}

func TestWorker_Convergence(t *testing.T) {
	const lower, upper = 1.0, 10.0
	want := simpson(func(x float64) float64 { return math.Sin(x) / x }, lower, upper, 10000)

	tbl := NewResultTable(1)
	w := Worker{Samples: 1_000_000, Lower: lower, Upper: upper, Source: SeededSources(2024)(0)}
	got, err := w.Run(tbl.Slot(0))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("estimate %.6f, want %.6f +/- 0.01", got, want)
	}
}
