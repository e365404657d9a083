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
	"context"
	"encoding/csv"
	"io"

	"integrate/internal/sweep"
)

// CSVSink writes a header row followed by one row per record. The header is
// written with the first record, so a sweep rejected up front prints nothing.
type CSVSink struct {
	w           *csv.Writer
	closer      io.Closer
	wroteHeader bool
}

// NewCSVSink writes to w. The sink never closes w.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

func (s *CSVSink) Emit(_ context.Context, r sweep.Record) error {
	if !s.wroteHeader {
		if err := s.w.Write(sweep.Header); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	return s.w.Write(Row(r))
}

func (s *CSVSink) Flush(context.Context) error {
	s.w.Flush()
	return s.w.Error()
}

func (s *CSVSink) Close() error {
	s.w.Flush()
	err := s.w.Error()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
