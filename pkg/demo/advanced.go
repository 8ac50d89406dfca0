package demo

import (
	"context"
	"fmt"
	"io"

	"github.com/jllopis/maestro/pkg/console"
	"github.com/jllopis/maestro/pkg/orchestrator"
)

// Advanced constructs an orchestrator writing to w and runs RunAdvanced with it.
func Advanced(ctx context.Context, w io.Writer, opts ...orchestrator.Option) error {
	o, err := orchestrator.New(append([]orchestrator.Option{orchestrator.WithOutput(w)}, opts...)...)
	if err != nil {
		return err
	}
	return RunAdvanced(ctx, w, o)
}

// RunAdvanced runs the advanced workflow demo against o.
func RunAdvanced(ctx context.Context, w io.Writer, o Orchestrator) error {
	script, err := LoadScript()
	if err != nil {
		return err
	}
	s := script.Advanced
	p := console.New(w)

	p.Banner(s.Title)

	for i, wf := range s.Workflows {
		p.Section(sectionTitle(i+1, wf.Title))
		for n, step := range wf.Steps {
			p.Blank()
			p.Line("%s %d:", wf.StepLabel, n+1)
			if err := o.SwitchRole(ctx, step.Role, wf.Reason); err != nil {
				return err
			}
			if err := o.ExecuteTask(ctx, step.Task, step.Input); err != nil {
				return err
			}
		}
	}

	p.Section(sectionTitle(len(s.Workflows)+1, s.ScenariosTitle))
	for i, sc := range s.Scenarios {
		situation := sc.Context
		p.Blank()
		p.Line("Scenario %d: %s", i+1, sc.Input)
		d, err := o.DetermineRole(ctx, sc.Input, &situation)
		if err != nil {
			return err
		}
		role, err := lookup(o, d.Role)
		if err != nil {
			return err
		}
		p.Line("Decision: %s %s (confidence: %v)", role.Emoji, p.Accent(role.Name), d.Confidence)
		p.Line("Expected: %s", p.Muted(sc.Expected))

		if err := o.SwitchRole(ctx, d.Role, s.ScenarioReason); err != nil {
			return err
		}
		if err := o.ExecuteTask(ctx, s.ScenarioTask, sc.Input); err != nil {
			return err
		}
	}

	p.Section("Run statistics")
	if err := o.GenerateProjectSummary(ctx); err != nil {
		return err
	}

	p.Blank()
	p.Success("✅ Advanced workflow demo complete!")
	p.Line("🎯 Showed the orchestrator handling a multi-role project end to end")
	return nil
}

func sectionTitle(n int, title string) string {
	return fmt.Sprintf("Advanced example %d: %s", n, title)
}
