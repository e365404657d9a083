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


// Package sinks holds the output adapters for sweep records: CSV and aligned
// tables for terminals and files, JSONL for audit logs, and a Redis list for
// collecting results from many runs in one place.
package sinks

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"integrate/internal/sweep"
)

// Row renders r as the five output columns, in Header order. Floats use the
// shortest representation that round-trips.
func Row(r sweep.Record) []string {
	return []string{
		strconv.Itoa(r.Workers),
		strconv.FormatInt(r.ElapsedMicros(), 10),
		formatFloat(r.Speedup),
		formatFloat(r.Efficiency),
		formatFloat(r.Estimate),
	}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// Entry is the JSON shape of a record in the JSONL file and the Redis list.
type Entry struct {
	ID         string  `json:"id"`
	RunID      string  `json:"run_id"`
	Workers    int     `json:"num_threads"`
	TimeUS     int64   `json:"time_us"`
	Speedup    float64 `json:"speedup"`
	Efficiency float64 `json:"efficiency"`
	Integral   float64 `json:"integral"`
	TsUnixMs   int64   `json:"ts_unix_ms"`
}

// NewEntry stamps r with a fresh record id and the current time.
func NewEntry(runID string, r sweep.Record) Entry {
	return Entry{
		ID:         uuid.NewString(),
		RunID:      runID,
		Workers:    r.Workers,
		TimeUS:     r.ElapsedMicros(),
		Speedup:    r.Speedup,
		Efficiency: r.Efficiency,
		Integral:   r.Estimate,
		TsUnixMs:   time.Now().UnixMilli(),
	}
}
