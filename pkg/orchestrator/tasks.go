package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
	"github.com/jllopis/maestro/pkg/telemetry"
)

// SwitchRole makes key the active role. Unknown keys leave the active role
// unchanged and return a NOT_FOUND error.
func (o *Orchestrator) SwitchRole(ctx context.Context, key core.RoleKey, reason string) error {
	ctx, span := o.startSpan(ctx, "Orchestrator.SwitchRole",
		attribute.String(telemetry.AttrRoleKey, string(key)),
		attribute.String(telemetry.AttrRoleReason, reason),
	)
	defer span.End()

	next, ok := o.catalog.Get(key)
	if !ok {
		err := errors.New(errors.CodeNotFound, fmt.Sprintf("unknown role %q", key), nil).
			WithContext("role", string(key))
		o.fail(ctx, span, err, "switch_role")
		return err
	}

	o.mu.Lock()
	prev := o.role(o.current)
	o.switches = append(o.switches, RoleSwitch{From: prev.Key, To: key, Reason: reason, At: o.now()})
	o.current = key
	o.mu.Unlock()

	span.SetAttributes(attribute.String(telemetry.AttrRolePrevious, string(prev.Key)))
	o.metrics.RecordSwitch(ctx, string(key))
	o.emitter.Emit(ctx, core.NewEvent(core.EventRoleSwitched, key, "", map[string]any{
		"from":   string(prev.Key),
		"reason": reason,
	}))
	o.logger.InfoContext(ctx, "orchestrator.role.switch",
		slog.String("from", string(prev.Key)),
		slog.String("to", string(key)),
		slog.String("reason", reason),
	)

	o.out.Line("🔄 Role switch: %s %s → %s %s", prev.Emoji, prev.Name, next.Emoji, o.out.Accent(next.Name))
	o.out.Line("   Reason: %s", reason)
	return nil
}

// ExecuteTask runs a task under the active role and records it.
func (o *Orchestrator) ExecuteTask(ctx context.Context, name, input string) error {
	ctx, span := o.startSpan(ctx, "Orchestrator.ExecuteTask")
	defer span.End()

	if strings.TrimSpace(name) == "" {
		err := errors.New(errors.CodeInvalidInput, "task name must not be empty", nil)
		o.fail(ctx, span, err, "execute_task")
		return err
	}

	o.mu.Lock()
	role := o.role(o.current)
	task := core.NewTask(name, input, role.Key)
	o.tasks = append(o.tasks, task)
	task.Start()
	o.mu.Unlock()

	o.emitter.Emit(ctx, core.NewEvent(core.EventTaskStarted, role.Key, task.ID, map[string]any{
		"task":  name,
		"input": input,
	}))
	o.out.Line("%s %s is working on: %s", role.Emoji, o.out.Accent(role.Name), name)
	if input != "" {
		o.out.Line("   Input: %s", input)
	}

	caps := role.TopCapabilities(2)
	if len(caps) > 0 {
		o.out.Line("   Applying: %s", strings.Join(caps, ", "))
	}

	output := fmt.Sprintf("%s delivered %q", role.Name, name)
	if len(caps) > 0 {
		output += " using " + strings.Join(caps, ", ")
	}
	o.mu.Lock()
	task.Complete(output)
	o.mu.Unlock()

	span.SetAttributes(telemetry.TaskAttributes(task.ID, name, string(task.Status))...)
	span.SetAttributes(telemetry.RoleAttributes(string(role.Key), role.Name)...)
	o.metrics.RecordTask(ctx, string(role.Key), string(task.Status))
	o.emitter.Emit(ctx, core.NewEvent(core.EventTaskCompleted, role.Key, task.ID, map[string]any{
		"output": output,
	}))
	o.logger.InfoContext(ctx, "orchestrator.task.complete",
		slog.String("task_id", task.ID),
		slog.String("task", name),
		slog.String("role", string(role.Key)),
		slog.Duration("duration", task.Duration()),
	)

	o.out.Line("   ✅ Completed %s", o.out.Muted("(task "+shortID(task.ID)+")"))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
