// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package repair

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for repair planning.
var (
	tracer = otel.Tracer("dialectica.repair")
	meter  = otel.Meter("dialectica.repair")
)

var (
	planLatency metric.Float64Histogram
	planTotal   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		planLatency, err = meter.Float64Histogram(
			"repair_plan_duration_seconds",
			metric.WithDescription("Duration of repair planning runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		planTotal, err = meter.Int64Counter(
			"repair_plan_total",
			metric.WithDescription("Total repair planning runs by outcome"),
		)
		if err != nil {
			metricsErr = err
		}
	})
	return metricsErr
}

// recordPlan records one planning run. Metric failures are ignored;
// observability must never fail a plan.
func recordPlan(ctx context.Context, status Status, strategy Strategy, start time.Time) {
	if initMetrics() != nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("status", status.String()),
		attribute.String("strategy", string(strategy)),
	)
	planLatency.Record(ctx, time.Since(start).Seconds(), attrs)
	planTotal.Add(ctx, 1, attrs)
}
