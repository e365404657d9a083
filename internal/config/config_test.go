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


package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(viper.New(), newFlags(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Sink != "csv" || s.Out != "-" || s.Seed != 0 || s.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if s.RedisTTL != 24*time.Hour || s.RedisKey != "integrate:results" {
		t.Fatalf("unexpected redis defaults: %+v", s)
	}
}

func TestLoad_FlagsAndEnv(t *testing.T) {
	t.Setenv("INTEGRATE_SEED", "99")
	t.Setenv("INTEGRATE_METRICS_ADDR", ":9191")
	s, err := Load(viper.New(), newFlags(t, "--sink=table", "--seed=7"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Sink != "table" {
		t.Errorf("Sink = %q, want table", s.Sink)
	}
	if s.Seed != 7 {
		t.Errorf("Seed = %d, want flag value 7 over env", s.Seed)
	}
	if s.MetricsAddr != ":9191" {
		t.Errorf("MetricsAddr = %q, want env value :9191", s.MetricsAddr)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "integrate.yaml")
	body := "sink: jsonl\nout: " + filepath.Join(dir, "out.jsonl") + "\nseed: 5\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(viper.New(), newFlags(t, "--config="+path))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Sink != "jsonl" || s.Seed != 5 || !strings.HasSuffix(s.Out, "out.jsonl") {
		t.Fatalf("config file not applied: %+v", s)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	if _, err := Load(viper.New(), newFlags(t, "--config=/does/not/exist.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestSettings_Validate(t *testing.T) {
	testCases := []struct {
		name string
		s    Settings
		ok   bool
	}{
		{"CSV", Settings{Sink: "csv", Out: "-"}, true},
		{"Unknown Sink", Settings{Sink: "kafka"}, false},
		{"JSONL To Stdout", Settings{Sink: "jsonl", Out: "-"}, false},
		{"JSONL To File", Settings{Sink: "jsonl", Out: "r.jsonl"}, true},
		{"KeepAlive Without Metrics", Settings{Sink: "csv", KeepAlive: true}, false},
		{"KeepAlive With Metrics", Settings{Sink: "csv", KeepAlive: true, MetricsAddr: ":9090"}, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if tc.ok && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("Validate() = nil, want error")
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	resetForTests()
	t.Cleanup(resetForTests)

	Settings{Sink: "redis", RedisAddr: "localhost:6379", RedisTTL: time.Minute, Seed: 3}.Record()
	SetInt("lower_bound", 1)
	SetFloat64("ratio", 0.5)

	snap := Snapshot()
	if snap["sink"] != "redis" || snap["redis_ttl"] != "1m0s" || snap["seed"] != "3" {
		t.Fatalf("unexpected snapshot: %v", snap)
	}
	if snap["lower_bound"] != "1" || snap["ratio"] != "0.5" {
		t.Fatalf("unexpected typed setters: %v", snap)
	}
	keys := SortedKeys(snap)
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("warn", &buf)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if logger.GetLevel() != logrus.WarnLevel {
		t.Fatalf("level = %v, want warn", logger.GetLevel())
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if _, err := NewLogger("loud", &buf); err == nil {
		t.Fatalf("expected error for bad level")
	}
}
