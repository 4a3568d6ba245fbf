// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package gencli

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.jetify.com/pyrightgen/internal/fileutil"
	"go.jetify.com/pyrightgen/internal/gencli/usererr"
	"go.jetify.com/pyrightgen/internal/pyright"
	"go.jetify.com/pyrightgen/internal/settings"
)

// configFlags are shared by every command that scans a repository. Flags
// left empty fall back to pyrightgen.json and then to the built-in defaults.
type configFlags struct {
	root      string
	overrides settings.Settings
}

func (f *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&f.root, "root", "", "directory to scan and write to (default: current directory)")
	cmd.Flags().StringVar(
		&f.overrides.Policy, "policy", "",
		"which directories count as projects: marker-pair or env-only (default: marker-pair)")
	cmd.Flags().StringArrayVar(
		&f.overrides.Exclude, "exclude", nil,
		"glob, relative to the root, of directories to skip (repeatable)")
	cmd.Flags().StringVar(
		&f.overrides.EnvDir, "env-dir", "", "name of the virtual environment directory (default: .venv)")
	cmd.Flags().StringVar(
		&f.overrides.Descriptor, "descriptor", "", "name of the project descriptor file (default: pyproject.toml)")
	_ = cmd.Flags().MarkHidden("env-dir")
	_ = cmd.Flags().MarkHidden("descriptor")
}

// options resolves the root directory and builds generator options from
// the flags, pyrightgen.json and defaults, in that order of precedence.
func (f *configFlags) options() (*pyright.Options, error) {
	root := f.root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WithStack(err)
		}
		root = wd
	}
	root, err := fileutil.AbsDir(root)
	if err != nil {
		return nil, usererr.WithUserMessage(err, "Cannot scan %q.", f.root)
	}

	s, err := settings.Load(root)
	if err != nil {
		return nil, usererr.New("Invalid %s: %v", settings.FileName, err)
	}
	opts, err := s.Merge(&f.overrides).Options(root)
	if err != nil {
		return nil, usererr.New("Invalid settings: %v", err)
	}
	return opts, nil
}
