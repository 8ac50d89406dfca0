// Copyright 2026 © The Maestro Authors
// SPDX-License-Identifier: Apache-2.0

// Package roles loads role catalogs from YAML.
//
// The default catalog is embedded in the binary; a user catalog with the same
// shape can replace it through the roles.file configuration key.
package roles

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jllopis/maestro/pkg/core"
	"github.com/jllopis/maestro/pkg/errors"
)

//go:embed roles.yaml
var defaultCatalog []byte

type catalogFile struct {
	Roles []core.Role `yaml:"roles"`
}

// Default returns the embedded role catalog.
func Default() (*core.RoleCatalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads a role catalog from path.
func LoadFile(path string) (*core.RoleCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(errors.CodeConfig, "read role catalog", err).
			WithContext("path", path)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML role catalog.
func Parse(data []byte) (*core.RoleCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.New(errors.CodeInvalidInput, "decode role catalog", err)
	}
	if len(file.Roles) == 0 {
		return nil, errors.New(errors.CodeInvalidInput, "role catalog is empty", nil)
	}
	for i, r := range file.Roles {
		if strings.TrimSpace(r.Name) == "" {
			return nil, errors.New(errors.CodeInvalidInput, fmt.Sprintf("role #%d has no name", i+1), nil).
				WithContext("key", string(r.Key))
		}
		file.Roles[i].Keywords = normalizeKeywords(r.Keywords)
	}
	catalog, err := core.NewRoleCatalog(file.Roles...)
	if err != nil {
		return nil, errors.New(errors.CodeInvalidInput, "invalid role catalog", err)
	}
	return catalog, nil
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	for _, kw := range in {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
