package demo

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
)

//go:embed script.yaml
var scriptYAML []byte

// Step is one scripted role/task/input triple.
type Step struct {
	Role  core.RoleKey `yaml:"role"`
	Task  string       `yaml:"task"`
	Input string       `yaml:"input"`
}

// Workflow is an ordered list of steps sharing a switch reason.
type Workflow struct {
	Title     string `yaml:"title"`
	StepLabel string `yaml:"step_label"`
	Reason    string `yaml:"reason"`
	Steps     []Step `yaml:"steps"`
}

// Scenario is an inference input shown next to its expected outcome.
// Expected is informational and never compared.
type Scenario struct {
	Input    string         `yaml:"input"`
	Expected string         `yaml:"expected"`
	Context  core.Situation `yaml:"context"`
}

// BasicScript drives RunBasic.
type BasicScript struct {
	Title  string   `yaml:"title"`
	Inputs []string `yaml:"inputs"`
	Switch struct {
		Role   core.RoleKey `yaml:"role"`
		Reason string       `yaml:"reason"`
	} `yaml:"switch"`
	Task struct {
		Name  string `yaml:"name"`
		Input string `yaml:"input"`
	} `yaml:"task"`
}

// AdvancedScript drives RunAdvanced.
type AdvancedScript struct {
	Title          string     `yaml:"title"`
	Workflows      []Workflow `yaml:"workflows"`
	ScenariosTitle string     `yaml:"scenarios_title"`
	ScenarioReason string     `yaml:"scenario_reason"`
	ScenarioTask   string     `yaml:"scenario_task"`
	Scenarios      []Scenario `yaml:"scenarios"`
}

// Script holds the static tables of both drivers.
type Script struct {
	Basic    BasicScript    `yaml:"basic"`
	Advanced AdvancedScript `yaml:"advanced"`
}

// LoadScript decodes the embedded script.
func LoadScript() (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(scriptYAML, &s); err != nil {
		return nil, errors.New(errors.CodeInternal, "decode demo script", err)
	}
	return &s, nil
}
