// Copyright 2026 © The Maestro Authors
// SPDX-License-Identifier: Apache-2.0

// Package demo holds the two scripted demo drivers.
//
// RunBasic walks a handful of inputs through role inference, performs one
// switch and one task, shows the status and lists the roles. RunAdvanced
// replays two multi-step workflows and a set of decision scenarios, then asks
// for the project summary. Both run strictly in script order, make no calls
// beyond the scripted ones and return the first orchestrator error unchanged.
package demo

import (
	"context"
	"fmt"

	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
)

// Orchestrator is the surface the drivers call.
type Orchestrator interface {
	Roles() *core.RoleCatalog
	DetermineRole(ctx context.Context, input string, situation *core.Situation) (core.Decision, error)
	SwitchRole(ctx context.Context, key core.RoleKey, reason string) error
	ExecuteTask(ctx context.Context, name, input string) error
	ShowStatus(ctx context.Context) error
	GenerateProjectSummary(ctx context.Context) error
}

func lookup(o Orchestrator, key core.RoleKey) (core.Role, error) {
	r, ok := o.Roles().Get(key)
	if !ok {
		return core.Role{}, errors.New(errors.CodeNotFound, fmt.Sprintf("role %q is not in the catalog", key), nil)
	}
	return r, nil
}
