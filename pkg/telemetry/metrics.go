// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jllopis/maestro/pkg/errors"
)

const meterName = "maestro/orchestrator"

// OrchestratorMetrics records role inference, switching and task counters.
// A nil *OrchestratorMetrics is valid and records nothing.
type OrchestratorMetrics struct {
	inferences metric.Int64Counter
	confidence metric.Float64Histogram
	switches   metric.Int64Counter
	tasks      metric.Int64Counter
	errors     metric.Int64Counter
}

// NewOrchestratorMetrics creates the instruments on mp.
// A nil provider falls back to the global meter provider.
func NewOrchestratorMetrics(mp metric.MeterProvider) (*OrchestratorMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	inferences, err := meter.Int64Counter(
		"maestro.role.inferences",
		metric.WithDescription("Role inference calls by chosen role"),
	)
	if err != nil {
		return nil, err
	}

	confidence, err := meter.Float64Histogram(
		"maestro.role.confidence",
		metric.WithDescription("Confidence of role inference decisions"),
		metric.WithExplicitBucketBoundaries(0.3, 0.5, 0.65, 0.8, 0.95),
	)
	if err != nil {
		return nil, err
	}

	switches, err := meter.Int64Counter(
		"maestro.role.switches",
		metric.WithDescription("Role switches by target role"),
	)
	if err != nil {
		return nil, err
	}

	tasks, err := meter.Int64Counter(
		"maestro.tasks.executed",
		metric.WithDescription("Executed tasks by role and status"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"maestro.errors.total",
		metric.WithDescription("Orchestrator errors by code and operation"),
	)
	if err != nil {
		return nil, err
	}

	return &OrchestratorMetrics{
		inferences: inferences,
		confidence: confidence,
		switches:   switches,
		tasks:      tasks,
		errors:     errs,
	}, nil
}

// RecordInference counts one inference and its confidence.
func (m *OrchestratorMetrics) RecordInference(ctx context.Context, role string, confidence float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String(AttrRoleKey, role))
	m.inferences.Add(ctx, 1, attrs)
	m.confidence.Record(ctx, confidence, attrs)
}

// RecordSwitch counts one role switch.
func (m *OrchestratorMetrics) RecordSwitch(ctx context.Context, role string) {
	if m == nil {
		return
	}
	m.switches.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrRoleKey, role)))
}

// RecordTask counts one task run.
func (m *OrchestratorMetrics) RecordTask(ctx context.Context, role, status string) {
	if m == nil {
		return
	}
	m.tasks.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrRoleKey, role),
		attribute.String(AttrTaskStatus, status),
	))
}

// RecordError counts an error for the given operation.
func (m *OrchestratorMetrics) RecordError(ctx context.Context, err error, operation string) {
	if m == nil || err == nil {
		return
	}
	oe := errors.As(err)
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrErrorCode, string(oe.Code)),
		attribute.String(AttrOperation, operation),
		attribute.String("recoverable", oe.RecoverableString()),
	))
}
