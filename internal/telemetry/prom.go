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


// Package telemetry exposes opt-in Prometheus metrics for sweep rounds. When
// disabled, every Observe function is a no-op, so the controller can call
// them unconditionally.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Config controls the telemetry module.
//
//   - MetricsAddr, when non-empty, starts a dedicated HTTP server serving /metrics.
//   - Pushgateway, when non-empty, is the base URL Push sends the run's metrics to.
type Config struct {
	Enabled     bool
	MetricsAddr string
	Pushgateway string
	Job         string // pushgateway job label; defaults to "integrate"
}

// Round is what the controller knows about one finished round.
type Round struct {
	Workers    int
	Realized   int
	Dropped    int
	Elapsed    time.Duration
	Speedup    float64
	Efficiency float64
	Estimate   float64
}

var (
	modEnabled atomic.Bool
	current    atomic.Value // Config

	roundsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "integrate_rounds_total",
		Help: "Total sweep rounds completed",
	})
	samplesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "integrate_samples_total",
		Help: "Total integrand evaluations across all completed rounds",
	})
	droppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "integrate_samples_dropped_total",
		Help: "Samples left unassigned by the uniform split (budget mod workers)",
	})
	faultsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "integrate_round_faults_total",
		Help: "Rounds aborted by a worker fault",
	})
	roundDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "integrate_round_duration_seconds",
		Help:    "Wall-clock time of a round from first spawn to barrier join",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 20),
	}, []string{"workers"})
	speedupGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "integrate_speedup_ratio",
		Help: "Baseline round time divided by this round's time",
	}, []string{"workers"})
	efficiencyGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "integrate_efficiency_ratio",
		Help: "Speedup divided by worker count",
	}, []string{"workers"})
	estimateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "integrate_estimate",
		Help: "Integral estimate of the most recent round",
	})
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		roundsTotal, samplesTotal, droppedTotal, faultsTotal,
		roundDuration, speedupGauge, efficiencyGauge, estimateGauge,
	}
}

func init() {
	prometheus.MustRegister(collectors()...)
}

// Enable configures the module. Safe to call more than once; the last call wins.
// It returns the metrics server if MetricsAddr was set, so the caller can shut it down.
func Enable(cfg Config) *http.Server {
	if cfg.Job == "" {
		cfg.Job = "integrate"
	}
	current.Store(cfg)
	modEnabled.Store(cfg.Enabled)
	if cfg.Enabled && cfg.MetricsAddr != "" {
		return startMetricsEndpoint(cfg.MetricsAddr)
	}
	return nil
}

// Enabled reports whether the module is active.
func Enabled() bool { return modEnabled.Load() }

// ObserveRound records a completed round.
func ObserveRound(r Round) {
	if !modEnabled.Load() {
		return
	}
	label := strconv.Itoa(r.Workers)
	roundsTotal.Inc()
	samplesTotal.Add(float64(r.Realized))
	if r.Dropped > 0 {
		droppedTotal.Add(float64(r.Dropped))
	}
	roundDuration.WithLabelValues(label).Observe(r.Elapsed.Seconds())
	speedupGauge.WithLabelValues(label).Set(r.Speedup)
	efficiencyGauge.WithLabelValues(label).Set(r.Efficiency)
	estimateGauge.Set(r.Estimate)
}

// ObserveFault counts a round aborted by a worker fault.
func ObserveFault() {
	if !modEnabled.Load() {
		return
	}
	faultsTotal.Inc()
}

// Push sends this process's round metrics to the configured Pushgateway,
// grouped by run id. It is a no-op when disabled or no gateway is set.
func Push(ctx context.Context, runID string) error {
	if !modEnabled.Load() {
		return nil
	}
	cfg, _ := current.Load().(Config)
	if cfg.Pushgateway == "" {
		return nil
	}
	if runID == "" {
		return errors.New("telemetry: push requires a run id")
	}
	p := push.New(cfg.Pushgateway, cfg.Job).Grouping("run_id", runID)
	for _, c := range collectors() {
		p = p.Collector(c)
	}
	if err := p.PushContext(ctx); err != nil {
		return fmt.Errorf("push to %s: %w", cfg.Pushgateway, err)
	}
	return nil
}

// startMetricsEndpoint exposes /metrics on addr in a background goroutine.
func startMetricsEndpoint(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
	return server
}
