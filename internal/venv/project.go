// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package venv

import (
	"path/filepath"

	"go.jetify.com/pyrightgen/internal/cuecfg"
	"go.jetify.com/pyrightgen/internal/debug"
	"go.jetify.com/pyrightgen/internal/fileutil"
)

// Project is a directory that holds a virtual environment and was accepted
// by a Policy.
type Project struct {
	// Dir is the project directory.
	Dir string
	// Venv is the environment directory inside Dir.
	Venv string
	// HasDescriptor is true when Dir also contains the descriptor file.
	HasDescriptor bool

	layout Layout
}

func newProject(dir string, layout Layout) *Project {
	return &Project{
		Dir:           dir,
		Venv:          filepath.Join(dir, layout.EnvDir),
		HasDescriptor: fileutil.IsFile(filepath.Join(dir, layout.Descriptor)),
		layout:        layout,
	}
}

// SourceRoot returns the source directory if the project has one, otherwise
// the project directory itself.
func (p *Project) SourceRoot() string {
	src := filepath.Join(p.Dir, p.layout.SourceDir)
	if fileutil.IsDir(src) {
		return src
	}
	return p.Dir
}

type pyProject struct {
	Project struct {
		Name string `toml:"name"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name string `toml:"name"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// Name returns the project name declared in pyproject.toml, falling back to
// the directory name.
func (p *Project) Name() string {
	fallback := filepath.Base(p.Dir)
	if !p.HasDescriptor || filepath.Ext(p.layout.Descriptor) != ".toml" {
		return fallback
	}
	proj := pyProject{}
	if err := cuecfg.ParseFile(filepath.Join(p.Dir, p.layout.Descriptor), &proj); err != nil {
		debug.Log("ignoring unreadable %s: %v", p.layout.Descriptor, err)
		return fallback
	}
	switch {
	case proj.Project.Name != "":
		return proj.Project.Name
	case proj.Tool.Poetry.Name != "":
		return proj.Tool.Poetry.Name
	}
	return fallback
}
