// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package venv

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"go.jetify.com/pyrightgen/internal/fileutil"
)

// Layout names the conventional files and directories that make a directory
// a Python project.
type Layout struct {
	// EnvDir is the name of the virtual environment directory, e.g. ".venv".
	EnvDir string
	// Descriptor is the project manifest, e.g. "pyproject.toml".
	Descriptor string
	// SourceDir is used as the project's source root when it exists.
	SourceDir string
}

func DefaultLayout() Layout {
	return Layout{
		EnvDir:     ".venv",
		Descriptor: "pyproject.toml",
		SourceDir:  "src",
	}
}

func (l Layout) Validate() error {
	for field, name := range map[string]string{
		"envDir":     l.EnvDir,
		"descriptor": l.Descriptor,
		"sourceDir":  l.SourceDir,
	} {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return errors.Errorf("%s must be a plain file or directory name, got %q", field, name)
		}
	}
	return nil
}

// Policy decides which directories holding an environment count as projects.
type Policy string

const (
	// MarkerPair requires both the descriptor file and the environment
	// directory.
	MarkerPair Policy = "marker-pair"
	// EnvironmentOnly accepts any directory with an environment directory.
	EnvironmentOnly Policy = "env-only"
)

var Policies = []Policy{MarkerPair, EnvironmentOnly}

func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies {
		if string(p) == s {
			return p, nil
		}
	}
	return "", errors.Errorf("unknown policy %q", s)
}

// Accepts reports whether dir is a project root under this policy. It only
// checks for the existence of the markers directly inside dir.
func (p Policy) Accepts(dir string, layout Layout) bool {
	if !fileutil.IsDir(filepath.Join(dir, layout.EnvDir)) {
		return false
	}
	switch p {
	case EnvironmentOnly:
		return true
	case MarkerPair:
		return fileutil.IsFile(filepath.Join(dir, layout.Descriptor))
	}
	return false
}
