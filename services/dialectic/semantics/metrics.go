// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package semantics

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for semantics operations.
var (
	tracer = otel.Tracer("dialectica.semantics")
	meter  = otel.Meter("dialectica.semantics")
)

// Metrics for extension computation.
var (
	computeLatency     metric.Float64Histogram
	computeTotal       metric.Int64Counter
	candidatesExamined metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		computeLatency, err = meter.Float64Histogram(
			"semantics_compute_duration_seconds",
			metric.WithDescription("Duration of extension family computations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		computeTotal, err = meter.Int64Counter(
			"semantics_compute_total",
			metric.WithDescription("Total number of extension family computations"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		candidatesExamined, err = meter.Int64Histogram(
			"semantics_candidates_examined",
			metric.WithDescription("Conflict-free candidate sets examined per computation"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// recordCompute records one computation's metrics. Metric failures are
// ignored; observability must never fail a computation.
func recordCompute(ctx context.Context, kind Kind, numArgs, candidates int, start time.Time, err error) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("kind", kind.String()),
		attribute.Bool("error", err != nil),
	)
	computeLatency.Record(ctx, time.Since(start).Seconds(), attrs)
	computeTotal.Add(ctx, 1, attrs)
	candidatesExamined.Record(ctx, int64(candidates),
		metric.WithAttributes(
			attribute.String("kind", kind.String()),
			attribute.Int("num_arguments", numArgs),
		),
	)
}
