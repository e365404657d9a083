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


// Package hostinfo reads facts about the machine a sweep runs on. Speedup
// figures are only meaningful next to the core count that produced them.
package hostinfo

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/sirupsen/logrus"
)

// Host describes the machine. Fields that could not be read are left zero.
type Host struct {
	CPUModel      string
	CPUMhz        float64
	LogicalCores  int
	PhysicalCores int
	MemTotal      uint64
	GoMaxProcs    int
}

// Collect gathers what it can. The error reports the first probe that failed;
// the returned Host is usable either way.
func Collect() (Host, error) {
	h := Host{GoMaxProcs: runtime.GOMAXPROCS(0)}
	var firstErr error
	note := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	if infos, err := cpu.Info(); err != nil {
		note(fmt.Errorf("cpu info: %w", err))
	} else if len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
		h.CPUMhz = infos[0].Mhz
	}
	if n, err := cpu.Counts(true); err != nil {
		note(fmt.Errorf("logical cores: %w", err))
	} else {
		h.LogicalCores = n
	}
	if n, err := cpu.Counts(false); err != nil {
		note(fmt.Errorf("physical cores: %w", err))
	} else {
		h.PhysicalCores = n
	}
	if vm, err := mem.VirtualMemory(); err != nil {
		note(fmt.Errorf("virtual memory: %w", err))
	} else {
		h.MemTotal = vm.Total
	}
	return h, firstErr
}

// Fields renders h for structured logging.
func (h Host) Fields() logrus.Fields {
	return logrus.Fields{
		"cpu_model":      h.CPUModel,
		"cpu_mhz":        h.CPUMhz,
		"logical_cores":  h.LogicalCores,
		"physical_cores": h.PhysicalCores,
		"mem_total_mib":  h.MemTotal >> 20,
		"gomaxprocs":     h.GoMaxProcs,
	}
}

// ProcessMeter reports the user+system CPU time consumed by this process.
type ProcessMeter struct {
	p *process.Process
}

// NewProcessMeter attaches to the current process.
func NewProcessMeter() (*ProcessMeter, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("attach to pid %d: %w", os.Getpid(), err)
	}
	return &ProcessMeter{p: p}, nil
}

func (m *ProcessMeter) CPUTime() (time.Duration, error) {
	t, err := m.p.Times()
	if err != nil {
		return 0, err
	}
	return time.Duration((t.User + t.System) * float64(time.Second)), nil
}
