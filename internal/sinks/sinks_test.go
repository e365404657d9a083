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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"integrate/internal/sweep"
)

var sample = []sweep.Record{
	{Workers: 1, Elapsed: 1200 * time.Microsecond, Speedup: 1, Efficiency: 1, Estimate: 0.7125},
	{Workers: 2, Elapsed: 600 * time.Microsecond, Speedup: 2, Efficiency: 1, Estimate: 0.71},
}

func emitAll(t *testing.T, s sweep.Sink) {
	t.Helper()
	ctx := context.Background()
	for _, r := range sample {
		if err := s.Emit(ctx, r); err != nil {
			t.Fatalf("Emit: %v", err)
		}
	}
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestRow(t *testing.T) {
	got := strings.Join(Row(sample[0]), ",")
	if want := "1,1200,1,1,0.7125"; got != want {
		t.Fatalf("Row() = %q, want %q", got, want)
	}
}

func TestCSVSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVSink(&buf)
	emitAll(t, s)
	want := "num_threads,time,speedup,efficiency,integral\n1,1200,1,1,0.7125\n2,600,2,1,0.71\n"
	if buf.String() != want {
		t.Fatalf("csv output:\n%q\nwant:\n%q", buf.String(), want)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestCSVSink_NoRecordsNoHeader(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSVSink(&buf)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestTableSink(t *testing.T) {
	var buf bytes.Buffer
	s := NewTableSink(&buf)
	if err := s.Emit(context.Background(), sample[0]); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("table must buffer until Flush, got %q", buf.String())
	}
	if err := s.Emit(context.Background(), sample[1]); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "num_threads") || !strings.Contains(lines[2], "0.71") {
		t.Fatalf("unexpected table:\n%s", buf.String())
	}
	if len(lines[1]) != len(lines[2]) {
		t.Fatalf("rows not aligned:\n%s", buf.String())
	}
}

func TestJSONLSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.jsonl")
	s, err := NewJSONLSink(path, "run-42")
	if err != nil {
		t.Fatalf("NewJSONLSink: %v", err)
	}
	emitAll(t, s)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, err := ReadAllJSONL(path)
	if err != nil {
		t.Fatalf("ReadAllJSONL: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	e := entries[1]
	if e.RunID != "run-42" || e.Workers != 2 || e.TimeUS != 600 || e.Integral != 0.71 {
		t.Fatalf("unexpected entry: %+v", e)
	}
	if e.ID == "" || e.ID == entries[0].ID {
		t.Fatalf("entries need distinct ids: %q %q", entries[0].ID, e.ID)
	}
}

func TestReadAllJSONL_SkipsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.jsonl")
	body := "not json\n{\"run_id\":\"r\",\"num_threads\":3}\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := ReadAllJSONL(path)
	if err != nil {
		t.Fatalf("ReadAllJSONL: %v", err)
	}
	if len(entries) != 1 || entries[0].Workers != 3 {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}
