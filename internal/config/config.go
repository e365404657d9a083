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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. INTEGRATE_SINK.
const EnvPrefix = "INTEGRATE"

// Settings are the knobs of a run that are not part of the integration
// request itself.
type Settings struct {
	Seed        uint64        // 0 seeds from the clock
	Sink        string        // csv | table | jsonl | redis
	Out         string        // output path for csv/table/jsonl; "-" is stdout
	RedisAddr   string        // empty logs pushes instead of sending them
	RedisKey    string        // list key prefix; the run id is appended
	RedisTTL    time.Duration // expiry of the result list
	MetricsAddr string        // serve /metrics here when non-empty
	Pushgateway string        // push run metrics here when non-empty
	LogLevel    string
	KeepAlive   bool // keep serving /metrics after the sweep until interrupted
}

// RegisterFlags defines every setting on fs with its default.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Optional config file (yaml, toml or json); flags and env override it")
	fs.Uint64("seed", 0, "Base seed for the per-worker random streams; 0 seeds from the clock")
	fs.String("sink", "csv", "Output sink: csv, table, jsonl or redis")
	fs.String("out", "-", "Output file for csv, table and jsonl sinks; - writes to stdout")
	fs.String("redis-addr", "", "Redis address for the redis sink; empty logs the pushes instead")
	fs.String("redis-key", "integrate:results", "Redis list key prefix; the run id is appended")
	fs.Duration("redis-ttl", 24*time.Hour, "Expiry applied to the Redis result list")
	fs.String("metrics-addr", "", "If non-empty, expose Prometheus /metrics on this address (e.g., :9090)")
	fs.String("pushgateway", "", "If non-empty, push round metrics to this Pushgateway URL after the sweep")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	fs.Bool("keep-alive", false, "Keep serving /metrics after the sweep until interrupted")
}

// Load resolves settings from fs, the environment and the optional config
// file named by the "config" flag, in that order of precedence.
func Load(v *viper.Viper, fs *pflag.FlagSet) (Settings, error) {
	if err := v.BindPFlags(fs); err != nil {
		return Settings{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	s := Settings{
		Seed:        v.GetUint64("seed"),
		Sink:        strings.ToLower(v.GetString("sink")),
		Out:         v.GetString("out"),
		RedisAddr:   v.GetString("redis-addr"),
		RedisKey:    v.GetString("redis-key"),
		RedisTTL:    v.GetDuration("redis-ttl"),
		MetricsAddr: v.GetString("metrics-addr"),
		Pushgateway: v.GetString("pushgateway"),
		LogLevel:    v.GetString("log-level"),
		KeepAlive:   v.GetBool("keep-alive"),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings that would otherwise fail late, after rounds ran.
func (s Settings) Validate() error {
	switch s.Sink {
	case "csv", "table", "jsonl", "redis":
	default:
		return fmt.Errorf("unknown sink %q", s.Sink)
	}
	if s.Sink == "jsonl" && (s.Out == "" || s.Out == "-") {
		return errors.New("jsonl sink needs --out to name a file")
	}
	if s.KeepAlive && s.MetricsAddr == "" {
		return errors.New("--keep-alive requires --metrics-addr")
	}
	return nil
}

// Record copies the settings into the registry.
func (s Settings) Record() {
	SetUint64("seed", s.Seed)
	Set("sink", s.Sink)
	Set("out", s.Out)
	if s.Sink == "redis" {
		Set("redis_addr", s.RedisAddr)
		Set("redis_key", s.RedisKey)
		SetDuration("redis_ttl", s.RedisTTL)
	}
	Set("metrics_addr", s.MetricsAddr)
	Set("pushgateway", s.Pushgateway)
	Set("log_level", s.LogLevel)
	SetBool("keep_alive", s.KeepAlive)
}
