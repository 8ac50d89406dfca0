package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jllopis/maestro/pkg/core"
)

// Status is a point-in-time view of the orchestrator.
type Status struct {
	Current   core.Role
	Switches  int
	Tasks     int
	Decisions int
	LastTask  *core.Task
}

// Summary aggregates the run history.
type Summary struct {
	Tasks             int
	Switches          int
	Decisions         int
	AverageConfidence float64
	TasksByRole       []RoleCount
	Elapsed           time.Duration
}

// RoleCount is the number of tasks a role executed.
type RoleCount struct {
	Role  core.Role
	Count int
}

// Status returns the current status.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	st := Status{
		Current:   o.role(o.current),
		Switches:  len(o.switches),
		Tasks:     len(o.tasks),
		Decisions: len(o.decisions),
	}
	if n := len(o.tasks); n > 0 {
		last := *o.tasks[n-1]
		st.LastTask = &last
	}
	return st
}

// Summary aggregates the history. TasksByRole follows catalog order and
// omits roles that ran no task.
func (o *Orchestrator) Summary() Summary {
	o.mu.Lock()
	defer o.mu.Unlock()

	counts := make(map[core.RoleKey]int)
	for _, t := range o.tasks {
		counts[t.Role]++
	}
	var byRole []RoleCount
	for _, r := range o.catalog.All() {
		if n := counts[r.Key]; n > 0 {
			byRole = append(byRole, RoleCount{Role: r, Count: n})
		}
	}

	var total float64
	for _, d := range o.decisions {
		total += d.Decision.Confidence
	}
	avg := 0.0
	if len(o.decisions) > 0 {
		avg = total / float64(len(o.decisions))
	}

	return Summary{
		Tasks:             len(o.tasks),
		Switches:          len(o.switches),
		Decisions:         len(o.decisions),
		AverageConfidence: avg,
		TasksByRole:       byRole,
		Elapsed:           o.now().Sub(o.startedAt),
	}
}

// ShowStatus prints the current status.
func (o *Orchestrator) ShowStatus(ctx context.Context) error {
	ctx, span := o.startSpan(ctx, "Orchestrator.ShowStatus")
	defer span.End()

	st := o.Status()
	o.out.Line("📊 Project status")
	o.out.Line("   Current role: %s %s", st.Current.Emoji, o.out.Accent(st.Current.Name))
	o.out.Line("   Role switches: %d", st.Switches)
	o.out.Line("   Tasks executed: %d", st.Tasks)
	o.out.Line("   Role decisions: %d", st.Decisions)
	if st.LastTask != nil {
		o.out.Line("   Last task: %s (%s)", st.LastTask.Name, st.LastTask.Status)
	} else {
		o.out.Line("   Last task: none")
	}

	o.emitter.Emit(ctx, core.NewEvent(core.EventStatusReported, st.Current.Key, "", map[string]any{
		"tasks":    st.Tasks,
		"switches": st.Switches,
	}))
	o.logger.DebugContext(ctx, "orchestrator.status", slog.String("role", string(st.Current.Key)))
	return nil
}

// GenerateProjectSummary prints the aggregated run history.
func (o *Orchestrator) GenerateProjectSummary(ctx context.Context) error {
	ctx, span := o.startSpan(ctx, "Orchestrator.GenerateProjectSummary")
	defer span.End()

	s := o.Summary()
	o.out.Line("📑 Project summary")
	o.out.Line("   Tasks executed: %d", s.Tasks)
	o.out.Line("   Role switches: %d", s.Switches)
	o.out.Line("   Role decisions: %d (average confidence %.2f)", s.Decisions, s.AverageConfidence)
	if len(s.TasksByRole) > 0 {
		o.out.Line("   Tasks by role:")
		width := 0
		for _, rc := range s.TasksByRole {
			if len(rc.Role.Name) > width {
				width = len(rc.Role.Name)
			}
		}
		for _, rc := range s.TasksByRole {
			o.out.Line("     %s %-*s %s", rc.Role.Emoji, width, rc.Role.Name, strings.Repeat("■", rc.Count)+fmt.Sprintf(" %d", rc.Count))
		}
	}
	o.out.Line("   Elapsed: %s", s.Elapsed.Round(time.Millisecond))

	o.emitter.Emit(ctx, core.NewEvent(core.EventSummaryReady, "", "", map[string]any{
		"tasks":     s.Tasks,
		"switches":  s.Switches,
		"decisions": s.Decisions,
	}))
	o.logger.InfoContext(ctx, "orchestrator.summary",
		slog.Int("tasks", s.Tasks),
		slog.Int("switches", s.Switches),
		slog.Int("decisions", s.Decisions),
	)
	return nil
}
