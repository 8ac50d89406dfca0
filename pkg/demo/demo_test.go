package demo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
	"github.com/jllopis/maestro/pkg/orchestrator"
	"github.com/jllopis/maestro/pkg/roles"
	"github.com/jllopis/maestro/pkg/telemetry"
)

// recorder is an Orchestrator that logs every call in order.
type recorder struct {
	catalog   *core.RoleCatalog
	decisions map[string]core.Decision
	failOn    string
	calls     []string
}

func newRecorder(t *testing.T) *recorder {
	t.Helper()
	catalog, err := roles.Default()
	if err != nil {
		t.Fatalf("roles.Default failed: %v", err)
	}
	return &recorder{catalog: catalog, decisions: map[string]core.Decision{}}
}

func (r *recorder) record(call string) error {
	r.calls = append(r.calls, call)
	if r.failOn != "" && strings.HasPrefix(call, r.failOn) {
		return errors.New(errors.CodeInternal, "scripted failure", nil)
	}
	return nil
}

func (r *recorder) Roles() *core.RoleCatalog { return r.catalog }

func (r *recorder) DetermineRole(_ context.Context, input string, situation *core.Situation) (core.Decision, error) {
	call := "DetermineRole(" + input + ")"
	if situation != nil {
		call = fmt.Sprintf("DetermineRole(%s|%s|%s)", input, situation.ProblemType, situation.Urgency)
	}
	if err := r.record(call); err != nil {
		return core.Decision{}, err
	}
	if d, ok := r.decisions[input]; ok {
		return d, nil
	}
	return core.Decision{Role: r.catalog.Keys()[0], Confidence: 0.5}, nil
}

func (r *recorder) SwitchRole(_ context.Context, key core.RoleKey, reason string) error {
	return r.record(fmt.Sprintf("SwitchRole(%s|%s)", key, reason))
}

func (r *recorder) ExecuteTask(_ context.Context, name, input string) error {
	return r.record(fmt.Sprintf("ExecuteTask(%s|%s)", name, input))
}

func (r *recorder) ShowStatus(_ context.Context) error {
	return r.record("ShowStatus")
}

func (r *recorder) GenerateProjectSummary(_ context.Context) error {
	return r.record("GenerateProjectSummary")
}

func assertCalls(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d calls, got %d:\n%s", len(want), len(got), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func mustScript(t *testing.T) *Script {
	t.Helper()
	s, err := LoadScript()
	if err != nil {
		t.Fatalf("LoadScript failed: %v", err)
	}
	return s
}

func TestScriptTables(t *testing.T) {
	s := mustScript(t)

	if n := len(s.Basic.Inputs); n != 6 {
		t.Errorf("expected 6 basic inputs, got %d", n)
	}
	if len(s.Advanced.Workflows) != 2 {
		t.Fatalf("expected 2 workflows, got %d", len(s.Advanced.Workflows))
	}
	if n := len(s.Advanced.Workflows[0].Steps); n != 9 {
		t.Errorf("expected 9 e-commerce steps, got %d", n)
	}
	if n := len(s.Advanced.Workflows[1].Steps); n != 6 {
		t.Errorf("expected 6 growth steps, got %d", n)
	}
	if n := len(s.Advanced.Scenarios); n != 3 {
		t.Errorf("expected 3 scenarios, got %d", n)
	}

	catalog, _ := roles.Default()
	for _, wf := range s.Advanced.Workflows {
		for i, step := range wf.Steps {
			if _, ok := catalog.Get(step.Role); !ok {
				t.Errorf("%s step %d uses unknown role %q", wf.Title, i+1, step.Role)
			}
			if step.Task == "" || step.Input == "" {
				t.Errorf("%s step %d is incomplete", wf.Title, i+1)
			}
		}
	}
	for i, sc := range s.Advanced.Scenarios {
		if sc.Context.ProblemType == "" || sc.Context.Urgency == "" || sc.Expected == "" {
			t.Errorf("scenario %d is incomplete: %+v", i+1, sc)
		}
	}
}

func TestRunBasicCallSequence(t *testing.T) {
	s := mustScript(t).Basic
	rec := newRecorder(t)
	rec.decisions[s.Inputs[0]] = core.Decision{Role: "operations_director", Confidence: 0.8}
	rec.decisions[s.Inputs[3]] = core.Decision{Role: "developer", Confidence: 0.95}

	var buf bytes.Buffer
	if err := RunBasic(context.Background(), &buf, rec); err != nil {
		t.Fatalf("RunBasic failed: %v", err)
	}

	var want []string
	for _, in := range s.Inputs {
		want = append(want, "DetermineRole("+in+")")
	}
	want = append(want,
		"SwitchRole(operations_director|User growth analysis request)",
		"ExecuteTask(User growth data analysis|Analyze user behavior and growth trends)",
		"ShowStatus",
	)
	assertCalls(t, rec.calls, want)

	out := buf.String()
	for _, in := range s.Inputs {
		if !strings.Contains(out, fmt.Sprintf("%q", in)) {
			t.Errorf("expected quoted input %q in output", in)
		}
	}
	for _, want := range []string{"Operations Director", "📈", "(confidence: 0.8)", "(confidence: 0.95)", "(confidence: 0.5)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRunBasicListsEveryRoleOnce(t *testing.T) {
	rec := newRecorder(t)
	var buf bytes.Buffer
	if err := RunBasic(context.Background(), &buf, rec); err != nil {
		t.Fatalf("RunBasic failed: %v", err)
	}
	out := buf.String()
	listing := out[strings.Index(out, "Example 4"):]

	last := -1
	for i, r := range rec.catalog.All() {
		entry := fmt.Sprintf("%d. %s", i+1, r.Emoji)
		pos := strings.Index(listing, entry)
		if pos < 0 {
			t.Fatalf("role %s missing from listing:\n%s", r.Key, listing)
		}
		if pos <= last {
			t.Errorf("role %s listed out of catalog order", r.Key)
		}
		last = pos
		if strings.Count(listing, r.Name) != 1 {
			t.Errorf("expected %s listed exactly once", r.Name)
		}
		caps := fmt.Sprintf("Priority: %d | Capabilities: %s, %s", r.Priority, r.Capabilities[0], r.Capabilities[1])
		if !strings.Contains(listing, caps) {
			t.Errorf("expected %q in listing", caps)
		}
		if len(r.Capabilities) > 2 && strings.Contains(listing, r.Capabilities[2]) {
			t.Errorf("listing should show at most two capabilities for %s", r.Key)
		}
	}
}

func TestRunBasicShortCapabilityLists(t *testing.T) {
	catalog, err := core.NewRoleCatalog(
		core.Role{Key: "solo", Emoji: "🎻", Name: "Soloist", Priority: 1, Capabilities: []string{"Playing"}},
		core.Role{Key: "mute", Emoji: "🤐", Name: "Mime", Priority: 2},
	)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	rec := &recorder{catalog: catalog, decisions: map[string]core.Decision{}}

	var buf bytes.Buffer
	if err := RunBasic(context.Background(), &buf, rec); err != nil {
		t.Fatalf("RunBasic failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Priority: 1 | Capabilities: Playing") {
		t.Errorf("expected single capability listed, got:\n%s", out)
	}
	if !strings.Contains(out, "Priority: 2 | Capabilities: ") {
		t.Errorf("expected empty capability list, got:\n%s", out)
	}
}

func TestRunAdvancedCallSequence(t *testing.T) {
	s := mustScript(t).Advanced
	rec := newRecorder(t)
	inferred := []core.RoleKey{"system_architect", "operations_director", "product_designer"}
	for i, sc := range s.Scenarios {
		rec.decisions[sc.Input] = core.Decision{Role: inferred[i], Confidence: 0.95}
	}

	var buf bytes.Buffer
	if err := RunAdvanced(context.Background(), &buf, rec); err != nil {
		t.Fatalf("RunAdvanced failed: %v", err)
	}

	var want []string
	for _, wf := range s.Workflows {
		for _, step := range wf.Steps {
			want = append(want,
				fmt.Sprintf("SwitchRole(%s|%s)", step.Role, wf.Reason),
				fmt.Sprintf("ExecuteTask(%s|%s)", step.Task, step.Input),
			)
		}
	}
	for i, sc := range s.Scenarios {
		want = append(want,
			fmt.Sprintf("DetermineRole(%s|%s|%s)", sc.Input, sc.Context.ProblemType, sc.Context.Urgency),
			fmt.Sprintf("SwitchRole(%s|Recommended by the decision engine)", inferred[i]),
			fmt.Sprintf("ExecuteTask(Problem analysis and solution planning|%s)", sc.Input),
		)
	}
	want = append(want, "GenerateProjectSummary")
	assertCalls(t, rec.calls, want)

	if len(rec.calls) != 9*2+6*2+3*3+1 {
		t.Fatalf("unexpected call count %d", len(rec.calls))
	}

	out := buf.String()
	for _, sc := range s.Scenarios {
		if !strings.Contains(out, sc.Expected) {
			t.Errorf("expected scenario outcome %q printed", sc.Expected)
		}
	}
	for _, want := range []string{"Step 9:", "Growth step 6:", "Scenario 3:", "System Architect", "(confidence: 0.95)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "Step 10:") || strings.Contains(out, "Growth step 7:") {
		t.Errorf("unexpected extra steps in output")
	}
}

func TestDriversPropagateErrors(t *testing.T) {
	tests := []struct {
		name      string
		run       func(context.Context, io.Writer, Orchestrator) error
		failOn    string
		wantCalls int
	}{
		{name: "basic inference", run: RunBasic, failOn: "DetermineRole", wantCalls: 1},
		{name: "basic switch", run: RunBasic, failOn: "SwitchRole", wantCalls: 7},
		{name: "basic status", run: RunBasic, failOn: "ShowStatus", wantCalls: 9},
		{name: "advanced switch", run: RunAdvanced, failOn: "SwitchRole", wantCalls: 1},
		{name: "advanced execute", run: RunAdvanced, failOn: "ExecuteTask", wantCalls: 2},
		{name: "advanced summary", run: RunAdvanced, failOn: "GenerateProjectSummary", wantCalls: 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder(t)
			rec.failOn = tt.failOn
			err := tt.run(context.Background(), io.Discard, rec)
			if !errors.HasCode(err, errors.CodeInternal) {
				t.Fatalf("expected scripted failure to propagate, got %v", err)
			}
			if len(rec.calls) != tt.wantCalls {
				t.Fatalf("expected %d calls before stopping, got %d: %v", tt.wantCalls, len(rec.calls), rec.calls)
			}
		})
	}
}

func TestDriversRejectUnknownInferredRole(t *testing.T) {
	rec := newRecorder(t)
	rec.decisions[mustScript(t).Basic.Inputs[0]] = core.Decision{Role: "astronaut", Confidence: 1}
	err := RunBasic(context.Background(), io.Discard, rec)
	if !errors.HasCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func quietOptions() []orchestrator.Option {
	return []orchestrator.Option{orchestrator.WithLogger(telemetry.NewLogger(io.Discard, "info", "text"))}
}

func TestBasicEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	if err := Basic(context.Background(), &buf, quietOptions()...); err != nil {
		t.Fatalf("Basic failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Basic Demo",
		"Example 1: Role inference",
		"(confidence: 0.8)",
		"Role switch",
		"User growth analysis request",
		"is working on: User growth data analysis",
		"Project status",
		"Tasks executed: 1",
		"Example 4: All roles",
		"DevOps Engineer",
		"Basic demo complete!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestAdvancedEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	if err := Advanced(context.Background(), &buf, quietOptions()...); err != nil {
		t.Fatalf("Advanced failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Advanced example 1: E-commerce platform end-to-end delivery",
		"Advanced example 2: User growth optimization initiative",
		"Advanced example 3: Intelligent decision showcase",
		"Recommended by the decision engine",
		"Project summary",
		"Tasks executed: 18",
		"Role switches: 18",
		"Role decisions: 3",
		"Advanced workflow demo complete!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}
