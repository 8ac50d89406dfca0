package demo

import (
	"context"
	"io"
	"strings"

	"github.com/jllopis/maestro/pkg/console"
	"github.com/jllopis/maestro/pkg/orchestrator"
)

// Basic constructs an orchestrator writing to w and runs RunBasic with it.
func Basic(ctx context.Context, w io.Writer, opts ...orchestrator.Option) error {
	o, err := orchestrator.New(append([]orchestrator.Option{orchestrator.WithOutput(w)}, opts...)...)
	if err != nil {
		return err
	}
	return RunBasic(ctx, w, o)
}

// RunBasic runs the basic demo against o.
func RunBasic(ctx context.Context, w io.Writer, o Orchestrator) error {
	script, err := LoadScript()
	if err != nil {
		return err
	}
	s := script.Basic
	p := console.New(w)

	p.Banner(s.Title)

	p.Section("Example 1: Role inference")
	for i, input := range s.Inputs {
		d, err := o.DetermineRole(ctx, input, nil)
		if err != nil {
			return err
		}
		role, err := lookup(o, d.Role)
		if err != nil {
			return err
		}
		p.Line("%d. %q", i+1, input)
		p.Line("   → %s %s (confidence: %v)", role.Emoji, p.Accent(role.Name), d.Confidence)
	}

	p.Section("Example 2: Role switch and task execution")
	if err := o.SwitchRole(ctx, s.Switch.Role, s.Switch.Reason); err != nil {
		return err
	}
	if err := o.ExecuteTask(ctx, s.Task.Name, s.Task.Input); err != nil {
		return err
	}

	p.Section("Example 3: Project status")
	if err := o.ShowStatus(ctx); err != nil {
		return err
	}

	p.Section("Example 4: All roles")
	for i, role := range o.Roles().All() {
		p.Line("%d. %s %s", i+1, role.Emoji, p.Accent(role.Name))
		p.Line("   Priority: %d | Capabilities: %s", role.Priority, strings.Join(role.TopCapabilities(2), ", "))
	}

	p.Blank()
	p.Success("✅ Basic demo complete!")
	p.Line("💡 Tip: run the advanced-workflow demo for multi-step workflows")
	return nil
}
