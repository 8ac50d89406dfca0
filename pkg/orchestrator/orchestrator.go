// Copyright 2026 © The Maestro Authors
// SPDX-License-Identifier: Apache-2.0

// Package orchestrator routes free-text requests to project roles, switches the
// active role and executes tasks under it, reporting progress to a console.
//
// All state is in memory and owned by a single Orchestrator value. Nothing is
// persisted between runs.
package orchestrator

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jllopis/maestro/pkg/console"
	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
	"github.com/jllopis/maestro/pkg/roles"
	"github.com/jllopis/maestro/pkg/telemetry"
)

const tracerName = "maestro/orchestrator"

// DefaultRole is the role active after construction unless overridden.
const DefaultRole core.RoleKey = "project_manager"

// RoleSwitch records one change of the active role.
type RoleSwitch struct {
	From   core.RoleKey
	To     core.RoleKey
	Reason string
	At     time.Time
}

// DecisionRecord records one role inference.
type DecisionRecord struct {
	Input     string
	Situation *core.Situation
	Decision  core.Decision
	At        time.Time
}

// Orchestrator holds the role catalog, the active role and the run history.
type Orchestrator struct {
	mu sync.Mutex

	catalog     *core.RoleCatalog
	defaultRole core.RoleKey
	current     core.RoleKey

	out     *console.Printer
	logger  *slog.Logger
	tracer  trace.Tracer
	emitter core.EventEmitter
	metrics *telemetry.OrchestratorMetrics
	now     func() time.Time

	startedAt time.Time
	switches  []RoleSwitch
	tasks     []*core.Task
	decisions []DecisionRecord
}

// Option configures an Orchestrator instance.
type Option func(*Orchestrator) error

// WithCatalog replaces the embedded role catalog.
func WithCatalog(c *core.RoleCatalog) Option {
	return func(o *Orchestrator) error {
		if c == nil || c.Len() == 0 {
			return errors.New(errors.CodeInvalidInput, "role catalog is empty", nil)
		}
		o.catalog = c
		return nil
	}
}

// WithDefaultRole sets the role active after construction and used when
// inference finds no signal.
func WithDefaultRole(key core.RoleKey) Option {
	return func(o *Orchestrator) error {
		o.defaultRole = key
		return nil
	}
}

// WithOutput sets the console destination. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) error {
		o.out = console.New(w)
		return nil
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) error {
		o.logger = l
		return nil
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) error {
		if tp != nil {
			o.tracer = tp.Tracer(tracerName)
		}
		return nil
	}
}

// WithEventEmitter sets the event sink. nil discards events.
func WithEventEmitter(e core.EventEmitter) Option {
	return func(o *Orchestrator) error {
		o.emitter = e
		return nil
	}
}

// WithMetrics sets the metric recorder.
func WithMetrics(m *telemetry.OrchestratorMetrics) Option {
	return func(o *Orchestrator) error {
		o.metrics = m
		return nil
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) error {
		o.now = now
		return nil
	}
}

// New creates an Orchestrator with the embedded catalog and DefaultRole active.
func New(opts ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultRole: DefaultRole,
		emitter:     core.NoopEventEmitter{},
		now:         time.Now,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.catalog == nil {
		c, err := roles.Default()
		if err != nil {
			return nil, err
		}
		o.catalog = c
	}
	if _, ok := o.catalog.Get(o.defaultRole); !ok {
		return nil, errors.New(errors.CodeNotFound, "default role is not in the catalog", nil).
			WithContext("role", string(o.defaultRole))
	}
	if o.out == nil {
		o.out = console.New(os.Stdout)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.emitter == nil {
		o.emitter = core.NoopEventEmitter{}
	}
	if o.metrics == nil {
		m, err := telemetry.NewOrchestratorMetrics(nil)
		if err != nil {
			return nil, errors.New(errors.CodeInternal, "create metrics", err)
		}
		o.metrics = m
	}
	o.current = o.defaultRole
	o.startedAt = o.now()
	return o, nil
}

// Roles returns the role catalog.
func (o *Orchestrator) Roles() *core.RoleCatalog {
	return o.catalog
}

// CurrentRole returns the active role key.
func (o *Orchestrator) CurrentRole() core.RoleKey {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

// Switches returns a copy of the role switch history.
func (o *Orchestrator) Switches() []RoleSwitch {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]RoleSwitch(nil), o.switches...)
}

// Tasks returns a copy of the executed tasks.
func (o *Orchestrator) Tasks() []core.Task {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]core.Task, 0, len(o.tasks))
	for _, t := range o.tasks {
		out = append(out, *t)
	}
	return out
}

// Decisions returns a copy of the inference history.
func (o *Orchestrator) Decisions() []DecisionRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]DecisionRecord(nil), o.decisions...)
}

func (o *Orchestrator) role(key core.RoleKey) core.Role {
	r, _ := o.catalog.Get(key)
	return r
}

func (o *Orchestrator) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if id, ok := core.RunID(ctx); ok {
		attrs = append(attrs, attribute.String(telemetry.AttrRunID, id))
	}
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
