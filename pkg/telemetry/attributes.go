// Copyright 2026 © The Maestro Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry provides logging, OpenTelemetry setup and orchestrator
// attributes and metrics.
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by spans, metrics and log records.
const (
	// Role attributes
	AttrRoleKey        = "maestro.role.key"
	AttrRoleName       = "maestro.role.name"
	AttrRolePrevious   = "maestro.role.previous"
	AttrRoleReason     = "maestro.role.reason"
	AttrRoleConfidence = "maestro.role.confidence"

	// Inference attributes
	AttrInputLength = "maestro.input.length"
	AttrProblemType = "maestro.situation.problem_type"
	AttrUrgency     = "maestro.situation.urgency"
	AttrDefaulted   = "maestro.inference.defaulted"

	// Task attributes
	AttrTaskID     = "maestro.task.id"
	AttrTaskName   = "maestro.task.name"
	AttrTaskStatus = "maestro.task.status"

	// Run attributes
	AttrRunID = "maestro.run.id"

	// Error attributes
	AttrErrorCode = "error.code"
	AttrOperation = "maestro.operation"
)

// RoleAttributes returns the attributes describing a role.
func RoleAttributes(key, name string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String(AttrRoleKey, key)}
	if name != "" {
		attrs = append(attrs, attribute.String(AttrRoleName, name))
	}
	return attrs
}

// SituationAttributes returns inference hint attributes, skipping empty values.
func SituationAttributes(problemType, urgency string) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if problemType != "" {
		attrs = append(attrs, attribute.String(AttrProblemType, problemType))
	}
	if urgency != "" {
		attrs = append(attrs, attribute.String(AttrUrgency, urgency))
	}
	return attrs
}

// TaskAttributes returns the attributes describing a task run.
func TaskAttributes(id, name, status string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrTaskID, id),
		attribute.String(AttrTaskName, name),
		attribute.String(AttrTaskStatus, status),
	}
}
