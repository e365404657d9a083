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
	"fmt"
	"io"
	"strings"

	"integrate/internal/config"
)

// WriteSummary prints a columnar end-of-run report of records followed by
// the configured settings.
func WriteSummary(w io.Writer, runID string, records []Record, settings map[string]string) {
	sep := strings.Repeat("-", 60)
	fmt.Fprintf(w, "Sweep summary %s\n", runID)
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-18s %20s\n", "Metric", "Value")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-18s %20d\n", "Rounds", len(records))
	if len(records) > 0 {
		best := records[0]
		for _, r := range records[1:] {
			if r.Speedup > best.Speedup {
				best = r
			}
		}
		last := records[len(records)-1]
		fmt.Fprintf(w, "%-18s %20d\n", "Baseline (us)", records[0].ElapsedMicros())
		fmt.Fprintf(w, "%-18s %20s\n", "Best speedup", fmt.Sprintf("%.3f @ %d", best.Speedup, best.Workers))
		fmt.Fprintf(w, "%-18s %20.3f\n", "Efficiency there", best.Efficiency)
		fmt.Fprintf(w, "%-18s %20.6f\n", "Final estimate", last.Estimate)
	}
	fmt.Fprintln(w, sep)

	if len(settings) == 0 {
		return
	}
	keys := config.SortedKeys(settings)
	fmt.Fprintf(w, "Configured settings\n")
	fmt.Fprintln(w, sep)
	fmt.Fprintf(w, "%-30s %24s\n", "Name", "Value")
	fmt.Fprintln(w, sep)
	for _, k := range keys {
		fmt.Fprintf(w, "%-30s %24s\n", k, settings[k])
	}
	fmt.Fprintln(w, sep)
}
