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


// Command integrate estimates the integral of sin(x)/x over [lower, upper] by
// Monte Carlo sampling split across concurrent workers, and reports how the
// round time scales with the worker count.
//
//	integrate 1 10 1000000 8            one round with 8 workers
//	integrate 1 10 1000000 8 profile    rounds with 1, 2, ... 8 workers
//	integrate -- -10 -1 100000 4        negative bounds go after "--"
//
// Rows go to stdout (or --out) as num_threads,time,speedup,efficiency,integral
// with time in microseconds. Logs and the end-of-run summary go to stderr.
//
// Exit status is 1 for bad arguments or settings and 2 when the sweep fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"integrate/internal/config"
	"integrate/internal/hostinfo"
	"integrate/internal/sinks"
	"integrate/internal/sweep"
	"integrate/internal/telemetry"
	"integrate/pkg/quadrature"
)

// exitError carries the process exit status for a failure.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func exitCode(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func main() {
	cmd := newRootCmd(os.Stdout, os.Stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "integrate: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "integrate <lower> <upper> <samples> <max_workers> [profile]",
		Short:         "Parallel Monte Carlo quadrature of sin(x)/x with a worker-count sweep",
		Args:          cobra.RangeArgs(4, 5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args)
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return err
			}
			settings, err := config.Load(viper.New(), cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(settings.LogLevel, stderr)
			if err != nil {
				return err
			}
			return run(cmd.Context(), req, settings, logger, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func run(parent context.Context, req quadrature.Request, settings config.Settings, logger *logrus.Logger, stdout, stderr io.Writer) error {
	runID := uuid.NewString()
	log := logger.WithField("run_id", runID)

	settings.Record()
	config.SetFloat64("lower", req.Lower)
	config.SetFloat64("upper", req.Upper)
	config.SetInt("samples", req.Samples)
	config.SetInt("max_workers", req.MaxWorkers)
	config.SetBool("profile", req.Profile)

	srv := telemetry.Enable(telemetry.Config{
		Enabled:     settings.MetricsAddr != "" || settings.Pushgateway != "",
		MetricsAddr: settings.MetricsAddr,
		Pushgateway: settings.Pushgateway,
	})
	if srv != nil {
		log.WithField("addr", settings.MetricsAddr).Info("serving /metrics")
	}

	host, err := hostinfo.Collect()
	if err != nil {
		log.WithError(err).Warn("host info incomplete")
	}
	log.WithFields(host.Fields()).Info("host")

	sink, err := sinks.BuildSink(settings.Sink, sinks.Options{
		RunID:     runID,
		Out:       settings.Out,
		Stdout:    stdout,
		RedisAddr: settings.RedisAddr,
		RedisKey:  settings.RedisKey,
		RedisTTL:  settings.RedisTTL,
		Logger:    log,
	})
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			log.WithError(cerr).Warn("close sink")
		}
	}()

	var meter sweep.CPUMeter
	if pm, err := hostinfo.NewProcessMeter(); err != nil {
		log.WithError(err).Debug("cpu meter disabled")
	} else {
		meter = pm
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctrl := sweep.NewController(sweep.Config{
		Seed:   settings.Seed,
		Logger: logger,
		Meter:  meter,
		RunID:  runID,
	}, sweep.NewRecorder(sink))
	records, runErr := ctrl.Run(ctx, req)

	sweep.WriteSummary(stderr, runID, records, config.Snapshot())

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	if err := telemetry.Push(pushCtx, runID); err != nil {
		log.WithError(err).Warn("pushgateway")
	}
	cancel()

	if settings.KeepAlive && srv != nil && runErr == nil {
		log.Info("sweep done; serving /metrics until interrupted")
		<-ctx.Done()
	}
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("metrics server shutdown")
		}
	}

	if runErr != nil {
		return &exitError{code: 2, err: runErr}
	}
	return nil
}
