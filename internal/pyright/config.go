// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package pyright

import (
	"slices"

	"github.com/pkg/errors"
)

// ConfigName is the file Pyright reads from the root of a workspace.
const ConfigName = "pyrightconfig.json"

// Schema selects which of the two document shapes is generated.
type Schema string

const (
	// ExecutionEnvironments emits one execution environment per project,
	// with paths relative to the root.
	ExecutionEnvironments Schema = "execution-environments"
	// ExtraPaths emits a flat list of absolute site-packages directories.
	ExtraPaths Schema = "extra-paths"
)

var Schemas = []Schema{ExecutionEnvironments, ExtraPaths}

func ParseSchema(s string) (Schema, error) {
	for _, schema := range Schemas {
		if string(schema) == s {
			return schema, nil
		}
	}
	return "", errors.Errorf("unknown schema %q", s)
}

// TypeCheckingModes are the values Pyright accepts for typeCheckingMode.
var TypeCheckingModes = []string{"off", "basic", "standard", "strict"}

const DefaultTypeCheckingMode = "strict"

func ValidateTypeCheckingMode(mode string) error {
	if !slices.Contains(TypeCheckingModes, mode) {
		return errors.Errorf("unknown type checking mode %q", mode)
	}
	return nil
}

// Config is a generated document.
type Config interface {
	// Len is the number of entries derived from projects.
	Len() int
}

type ExecutionEnvironment struct {
	Root       string   `json:"root"`
	ExtraPaths []string `json:"extraPaths"`
	Venv       string   `json:"venv"`
}

type ExecutionEnvironmentsConfig struct {
	TypeCheckingMode      string                 `json:"typeCheckingMode"`
	Exclude               []string               `json:"exclude"`
	ExecutionEnvironments []ExecutionEnvironment `json:"executionEnvironments"`
}

func (c *ExecutionEnvironmentsConfig) Len() int { return len(c.ExecutionEnvironments) }

type ExtraPathsConfig struct {
	ExtraPaths []string `json:"extraPaths"`
}

func (c *ExtraPathsConfig) Len() int { return len(c.ExtraPaths) }
