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


// Package config loads run settings from flags, INTEGRATE_* environment
// variables and an optional config file, and keeps a registry of the
// effective values for the end-of-run summary.
package config

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

var (
	// settings holds human-readable configuration captured at runtime.
	settingsMu sync.RWMutex
	settings   = make(map[string]string)
)

// Set captures a named knob for final printing.
func Set(name string, value string) {
	settingsMu.Lock()
	settings[name] = value
	settingsMu.Unlock()
}

func SetInt(name string, v int) { Set(name, fmt.Sprintf("%d", v)) }
func SetUint64(name string, v uint64) { Set(name, fmt.Sprintf("%d", v)) }
func SetDuration(name string, d time.Duration) { Set(name, d.String()) }
func SetFloat64(name string, f float64) { Set(name, fmt.Sprintf("%g", f)) }
func SetBool(name string, b bool) { Set(name, fmt.Sprintf("%t", b)) }

// Snapshot returns a copy of the registry for stable iteration.
func Snapshot() map[string]string {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	out := make(map[string]string, len(settings))
	for k, v := range settings {
		out[k] = v
	}
	return out
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// resetForTests clears the registry.
func resetForTests() {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	for k := range settings {
		delete(settings, k)
	}
}
