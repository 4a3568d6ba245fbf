// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package gencli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"go.jetify.com/pyrightgen/internal/gencli/usererr"
	"go.jetify.com/pyrightgen/internal/pyright"
	"go.jetify.com/pyrightgen/internal/ux"
	"go.jetify.com/pyrightgen/internal/venv"
)

type generateCmdFlags struct {
	config configFlags
	dryRun bool
}

func (f *generateCmdFlags) register(cmd *cobra.Command) {
	f.config.register(cmd)
	cmd.Flags().StringVar(
		&f.config.overrides.Schema, "schema", "",
		"shape of the generated file: execution-environments or extra-paths (default: execution-environments)")
	cmd.Flags().StringVar(
		&f.config.overrides.Mode, "mode", "",
		"strict fails on any unresolved project, permissive skips it (default: strict)")
	cmd.Flags().StringVar(
		&f.config.overrides.PythonVersion, "python-version", "",
		"python version used to locate site-packages, e.g. 3.12 (default: read from each environment)")
	cmd.Flags().StringVar(
		&f.config.overrides.TypeCheckingMode, "type-checking-mode", "",
		"value of typeCheckingMode: off, basic, standard or strict (default: strict)")
	cmd.Flags().BoolVar(
		&f.dryRun, "dry-run", false, "print the configuration instead of writing it")
}

func runGenerateCmd(cmd *cobra.Command, flags *generateCmdFlags) error {
	opts, err := flags.config.options()
	if err != nil {
		return err
	}
	opts.DryRun = flags.dryRun
	opts.Stdout = cmd.OutOrStdout()
	opts.Stderr = cmd.ErrOrStderr()

	result, err := pyright.Generate(cmd.Context(), opts)
	switch {
	case errors.Is(err, pyright.ErrNoEnvironments):
		return usererr.New(
			"No environments found under %s. Nothing was written.\n"+
				"Projects need a %s directory%s. Use --mode permissive to write an empty configuration.",
			opts.Root, opts.Layout.EnvDir, descriptorHint(opts))
	case errors.Is(err, venv.ErrSitePackagesNotFound):
		return usererr.WithUserMessage(err,
			"Could not locate site-packages for every environment. Nothing was written.")
	case err != nil:
		return err
	}

	if opts.DryRun {
		return nil
	}
	noun := "environments"
	if opts.Schema == pyright.ExtraPaths {
		noun = "extra paths"
	}
	ux.Fsuccess(cmd.ErrOrStderr(), "Generated %s with %d %s\n", pyright.ConfigName, result.Config.Len(), noun)
	return nil
}

func descriptorHint(opts *pyright.Options) string {
	if opts.Policy != venv.MarkerPair {
		return ""
	}
	return " and a " + opts.Layout.Descriptor + " file"
}
