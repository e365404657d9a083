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
	"errors"
	"fmt"
	"sync"
)

// ErrRecorderClosed is returned by Record after Close.
var ErrRecorderClosed = errors.New("recorder closed")

// Recorder forwards each round's record to the sink unchanged and keeps a
// copy for the end-of-run summary.
type Recorder struct {
	sink Sink

	mu      sync.Mutex
	records []Record
	closed  bool
}

// NewRecorder returns a recorder writing to sink.
func NewRecorder(sink Sink) *Recorder {
	return &Recorder{sink: sink}
}

// Record emits r. A sink error is returned as-is wrapped with the step.
func (r *Recorder) Record(ctx context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRecorderClosed
	}
	if err := r.sink.Emit(ctx, rec); err != nil {
		return fmt.Errorf("emit record for %d workers: %w", rec.Workers, err)
	}
	r.records = append(r.records, rec)
	return nil
}

// Close flushes the sink. Calling it again is a no-op.
func (r *Recorder) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true
	if err := r.sink.Flush(ctx); err != nil {
		return fmt.Errorf("flush sink: %w", err)
	}
	return nil
}

// Records returns a copy of everything emitted so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Record(nil), r.records...)
}
