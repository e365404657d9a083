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


package sweep

import (
	"context"
	"time"
)

// Header names the record fields in output order.
var Header = []string{"num_threads", "time", "speedup", "efficiency", "integral"}

// Record is the measured outcome of one sweep step.
type Record struct {
	Workers    int
	Elapsed    time.Duration
	Speedup    float64
	Efficiency float64
	Estimate   float64
}

// ElapsedMicros returns Elapsed in whole microseconds, the unit rows are
// printed in.
func (r Record) ElapsedMicros() int64 { return r.Elapsed.Microseconds() }

// Sink receives records in sweep order. Flush is called once, after the last
// record, and must commit everything emitted so far.
type Sink interface {
	Emit(ctx context.Context, r Record) error
	Flush(ctx context.Context) error
}
