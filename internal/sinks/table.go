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
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"integrate/internal/sweep"
)

// TableSink renders records as right-aligned columns. Column widths depend on
// every row, so nothing reaches the writer until Flush.
type TableSink struct {
	tw          *tabwriter.Writer
	closer      io.Closer
	wroteHeader bool
}

// NewTableSink writes to w. The sink never closes w.
func NewTableSink(w io.Writer) *TableSink {
	return &TableSink{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)}
}

func (s *TableSink) Emit(_ context.Context, r sweep.Record) error {
	if !s.wroteHeader {
		if err := s.line(sweep.Header); err != nil {
			return err
		}
		s.wroteHeader = true
	}
	return s.line(Row(r))
}

func (s *TableSink) line(cols []string) error {
	_, err := fmt.Fprintf(s.tw, "%s\t\n", strings.Join(cols, "\t"))
	return err
}

func (s *TableSink) Flush(context.Context) error { return s.tw.Flush() }

func (s *TableSink) Close() error {
	err := s.tw.Flush()
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
