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


// Package sweep runs parallel quadrature rounds for a sequence of worker
// counts and reports each round's timing relative to the first one.
//
// A round builds a fresh result table, splits the sample budget, spawns one
// goroutine per worker, waits for all of them, and aggregates their partial
// means. Rounds never overlap, so each round's timing is clean and the first
// round's time is available as the speedup baseline for every later round.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"integrate/internal/telemetry"
	"integrate/pkg/quadrature"
)

// CPUMeter reports the process's cumulative CPU time. It is used to log how
// many cores a round actually kept busy.
type CPUMeter interface {
	CPUTime() (time.Duration, error)
}

// Config tunes a Controller. The zero value is usable.
type Config struct {
	// Seed derives every worker's random stream. 0 seeds from the clock.
	Seed uint64
	// Sources overrides Seed with an explicit per-worker source factory.
	Sources quadrature.SourceFactory
	// Integrand overrides the sinc integrand. Intended for tests.
	Integrand quadrature.Integrand
	Logger    logrus.FieldLogger
	Meter     CPUMeter
	RunID     string
}

// Controller executes the sweep for one request.
type Controller struct {
	cfg     Config
	sources quadrature.SourceFactory
	rec     *Recorder
	log     logrus.FieldLogger
}

// NewController returns a controller that reports through rec.
func NewController(cfg Config, rec *Recorder) *Controller {
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	if cfg.RunID != "" {
		log = log.WithField("run_id", cfg.RunID)
	}

	sources := cfg.Sources
	if sources == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		log.WithField("seed", seed).Debug("seeding worker streams")
		sources = quadrature.SeededSources(seed)
	}
	return &Controller{cfg: cfg, sources: sources, rec: rec, log: log}
}

type roundResult struct {
	share    quadrature.Share
	elapsed  time.Duration
	estimate float64
	cpu      time.Duration // -1 when no meter is available
}

// Run validates req and executes one round per step, emitting a record after
// each. It returns the records emitted so far together with the first fault;
// a failed round emits nothing and ends the sweep. The recorder is flushed on
// every return path.
//
// ctx is only checked between rounds. A round in progress always runs to
// completion.
func (c *Controller) Run(ctx context.Context, req quadrature.Request) (_ []Record, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	defer func() {
		if cerr := c.rec.Close(context.WithoutCancel(ctx)); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	c.log.WithFields(logrus.Fields{
		"lower":       req.Lower,
		"upper":       req.Upper,
		"samples":     req.Samples,
		"max_workers": req.MaxWorkers,
		"profile":     req.Profile,
	}).Info("starting sweep")

	var baseline time.Duration
	for i, w := range req.Steps() {
		if err := ctx.Err(); err != nil {
			return c.rec.Records(), fmt.Errorf("sweep interrupted before %d workers: %w", w, err)
		}

		res, err := c.round(req, w)
		if err != nil {
			telemetry.ObserveFault()
			c.log.WithError(err).WithField("workers", w).Error("round failed")
			return c.rec.Records(), fmt.Errorf("round with %d workers: %w", w, err)
		}
		if i == 0 {
			baseline = res.elapsed
		}

		speedup := float64(baseline) / float64(res.elapsed)
		rec := Record{
			Workers:    w,
			Elapsed:    res.elapsed,
			Speedup:    speedup,
			Efficiency: speedup / float64(w),
			Estimate:   res.estimate,
		}
		c.observe(rec, res)
		if err := c.rec.Record(ctx, rec); err != nil {
			return c.rec.Records(), err
		}
	}
	return c.rec.Records(), nil
}

// round runs w workers to completion and aggregates their partials.
func (c *Controller) round(req quadrature.Request, w int) (roundResult, error) {
	share := quadrature.Partition(req.Samples, w)
	table := quadrature.NewResultTable(w)

	workers := make([]quadrature.Worker, w)
	for i := range workers {
		workers[i] = quadrature.Worker{
			Index:     i,
			Samples:   share.PerWorker,
			Lower:     req.Lower,
			Upper:     req.Upper,
			Integrand: c.cfg.Integrand,
			Source:    c.sources(i),
		}
	}

	cpuStart := c.cpuTime()
	var g errgroup.Group
	start := time.Now()
	for i := range workers {
		worker, slot := workers[i], table.Slot(i)
		g.Go(func() error {
			mean, err := worker.Run(slot)
			if err != nil {
				return err
			}
			c.log.WithFields(logrus.Fields{
				"workers": w,
				"worker":  worker.Index,
				"mean":    mean,
			}).Debug("worker finished")
			return nil
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)
	if err != nil {
		return roundResult{share: share}, err
	}
	// A zero reading would make the speedup ratio undefined.
	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}

	estimate, err := table.Mean()
	if err != nil {
		return roundResult{share: share}, err
	}

	cpu := time.Duration(-1)
	if cpuStart >= 0 {
		if end := c.cpuTime(); end >= 0 {
			cpu = end - cpuStart
		}
	}
	return roundResult{share: share, elapsed: elapsed, estimate: estimate, cpu: cpu}, nil
}

func (c *Controller) cpuTime() time.Duration {
	if c.cfg.Meter == nil {
		return -1
	}
	d, err := c.cfg.Meter.CPUTime()
	if err != nil {
		c.log.WithError(err).Debug("cpu meter unavailable")
		return -1
	}
	return d
}

func (c *Controller) observe(rec Record, res roundResult) {
	telemetry.ObserveRound(telemetry.Round{
		Workers:    rec.Workers,
		Realized:   res.share.Realized(),
		Dropped:    res.share.Dropped,
		Elapsed:    rec.Elapsed,
		Speedup:    rec.Speedup,
		Efficiency: rec.Efficiency,
		Estimate:   rec.Estimate,
	})

	fields := logrus.Fields{
		"workers":            rec.Workers,
		"samples_per_worker": res.share.PerWorker,
		"dropped":            res.share.Dropped,
		"elapsed":            rec.Elapsed,
		"speedup":            rec.Speedup,
		"efficiency":         rec.Efficiency,
		"estimate":           rec.Estimate,
	}
	if res.cpu >= 0 {
		fields["cpu_util"] = res.cpu.Seconds() / rec.Elapsed.Seconds()
	}
	c.log.WithFields(fields).Info("round complete")
}
