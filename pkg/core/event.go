package core

import (
	"context"
	"time"
)

// EventType identifies a semantic event emitted by the orchestrator.
type EventType string

const (
	EventRoleDetermined EventType = "role.determined"
	EventRoleSwitched   EventType = "role.switched"
	EventTaskStarted    EventType = "task.started"
	EventTaskCompleted  EventType = "task.completed"
	EventStatusReported EventType = "status.reported"
	EventSummaryReady   EventType = "summary.ready"
)

// Event captures a semantic orchestrator event.
type Event struct {
	Type      EventType
	Role      RoleKey
	TaskID    string
	Timestamp time.Time
	Payload   map[string]any
}

// EventEmitter receives semantic events.
type EventEmitter interface {
	Emit(ctx context.Context, event Event)
}

// NoopEventEmitter is a default no-op implementation.
type NoopEventEmitter struct{}

// Emit implements EventEmitter.
func (NoopEventEmitter) Emit(_ context.Context, _ Event) {}

// EventRecorder keeps every emitted event in memory.
type EventRecorder struct {
	Events []Event
}

// Emit implements EventEmitter.
func (r *EventRecorder) Emit(_ context.Context, event Event) {
	r.Events = append(r.Events, event)
}

// Types returns the recorded event types in emission order.
func (r *EventRecorder) Types() []EventType {
	out := make([]EventType, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Type)
	}
	return out
}

// NewEvent builds an event with the current timestamp.
func NewEvent(eventType EventType, role RoleKey, taskID string, payload map[string]any) Event {
	return Event{
		Type:      eventType,
		Role:      role,
		TaskID:    taskID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
