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


package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"integrate/internal/sweep"
)

// JSONLSink appends records to a JSONL file for audit and later comparison
// across runs.
type JSONLSink struct {
	mu    sync.Mutex
	f     *os.File
	w     *bufio.Writer
	runID string
}

// NewJSONLSink opens (or creates) path in append mode. Call Close when done.
func NewJSONLSink(path, runID string) (*JSONLSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLSink{f: f, w: bufio.NewWriterSize(f, 64<<10), runID: runID}, nil
}

func (s *JSONLSink) Emit(_ context.Context, r sweep.Record) error {
	e := NewEntry(s.runID, r)
	s.mu.Lock()
	defer s.mu.Unlock()
	return json.NewEncoder(s.w).Encode(&e)
}

func (s *JSONLSink) Flush(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.w.Flush(); err != nil {
		_ = s.f.Close()
		return err
	}
	return s.f.Close()
}

// ReadAllJSONL reads every entry from a JSONL results file. Lines that do not
// decode are skipped.
func ReadAllJSONL(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err == nil {
			out = append(out, e)
		}
	}
	return out, scanner.Err()
}
