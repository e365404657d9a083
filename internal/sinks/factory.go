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
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"integrate/internal/sweep"
)

// Sink is a sweep.Sink that owns resources released by Close.
type Sink interface {
	sweep.Sink
	io.Closer
}

// Options configures BuildSink.
type Options struct {
	RunID     string
	Out       string    // file path; "" or "-" means Stdout
	Stdout    io.Writer // defaults to os.Stdout
	RedisAddr string    // empty uses LoggingPusher
	RedisKey  string
	RedisTTL  time.Duration
	Logger    logrus.FieldLogger
}

// BuildSink returns the sink named by adapter.
func BuildSink(adapter string, opts Options) (Sink, error) {
	switch adapter {
	case "", "csv":
		w, c, err := openOutput(opts)
		if err != nil {
			return nil, err
		}
		s := NewCSVSink(w)
		s.closer = c
		return s, nil
	case "table":
		w, c, err := openOutput(opts)
		if err != nil {
			return nil, err
		}
		s := NewTableSink(w)
		s.closer = c
		return s, nil
	case "jsonl":
		if opts.Out == "" || opts.Out == "-" {
			return nil, fmt.Errorf("jsonl sink requires an output file")
		}
		s, err := NewJSONLSink(opts.Out, opts.RunID)
		if err != nil {
			return nil, fmt.Errorf("open jsonl sink: %w", err)
		}
		return s, nil
	case "redis":
		var client ListPusher
		if opts.RedisAddr != "" {
			client = NewGoRedisPusher(opts.RedisAddr)
		} else {
			log := opts.Logger
			if log == nil {
				log = logrus.StandardLogger()
			}
			client = LoggingPusher{Log: log}
		}
		key := opts.RedisKey
		if key == "" {
			key = "integrate:results"
		}
		return NewRedisSink(client, key, opts.RunID, opts.RedisTTL), nil
	default:
		return nil, fmt.Errorf("unknown sink adapter: %s", adapter)
	}
}

// openOutput resolves the writer for text sinks. The closer is nil for stdout.
func openOutput(opts Options) (io.Writer, io.Closer, error) {
	if opts.Out == "" || opts.Out == "-" {
		if opts.Stdout != nil {
			return opts.Stdout, nil, nil
		}
		return os.Stdout, nil, nil
	}
	f, err := os.Create(opts.Out)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return f, f, nil
}
