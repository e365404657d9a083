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
)

var (
	// ErrSlotWritten is returned when a worker stores into its slot twice.
	ErrSlotWritten = errors.New("result slot already written")
	// ErrSlotEmpty is returned when a table is read before every slot was written.
	ErrSlotEmpty = errors.New("result slot never written")
)

// cells are padded to 128 bytes so that neighbouring workers finishing at
// the same time do not bounce one cache line between cores.
const cellPad = 128 - 16

type cell struct {
	value   float64
	written bool
	_       [cellPad]byte
}

// ResultTable holds one partial estimate per worker index for a single round.
//
// There is no lock. Each worker receives the Slot for its own index at spawn
// time and is the only goroutine that touches that cell; the round's join
// orders every Store before Partials or Mean is called.
type ResultTable struct {
	cells []cell
}

// NewResultTable allocates a table with one empty slot per worker.
func NewResultTable(workers int) *ResultTable {
	return &ResultTable{cells: make([]cell, workers)}
}

// Len returns the number of slots.
func (t *ResultTable) Len() int { return len(t.cells) }

// Slot returns the write handle for worker i.
func (t *ResultTable) Slot(i int) Slot {
	return Slot{c: &t.cells[i], index: i}
}

// Partials returns a copy of every stored estimate in index order.
func (t *ResultTable) Partials() ([]float64, error) {
	out := make([]float64, len(t.cells))
	for i := range t.cells {
		if !t.cells[i].written {
			return nil, fmt.Errorf("slot %d: %w", i, ErrSlotEmpty)
		}
		out[i] = t.cells[i].value
	}
	return out, nil
}

// Mean aggregates the round: (1/w) * sum of partials, each worker weighted
// equally regardless of its realized sample count.
func (t *ResultTable) Mean() (float64, error) {
	partials, err := t.Partials()
	if err != nil {
		return 0, err
	}
	return Aggregate(partials), nil
}

// Aggregate returns the equal-weight mean of partials. The sum is divided
// once at the end so that identical partials aggregate to themselves exactly.
func Aggregate(partials []float64) float64 {
	if len(partials) == 0 {
		return 0
	}
	var sum float64
	for _, p := range partials {
		sum += p
	}
	return sum / float64(len(partials))
}

// Slot is a single-writer handle onto one cell of a ResultTable.
type Slot struct {
	c     *cell
	index int
}

// Index returns the worker index this slot belongs to.
func (s Slot) Index() int { return s.index }

// Store records the worker's partial estimate. A slot accepts one write.
func (s Slot) Store(v float64) error {
	if s.c.written {
		return fmt.Errorf("slot %d: %w", s.index, ErrSlotWritten)
	}
	s.c.value = v
	s.c.written = true
	return nil
}
