// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package gencli

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"go.jetify.com/pyrightgen/internal/fileutil"
	"go.jetify.com/pyrightgen/internal/ux"
	"go.jetify.com/pyrightgen/internal/venv"
)

func listCmd() *cobra.Command {
	flags := &configFlags{}
	command := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the Python projects that would be included, without writing anything",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListCmd(cmd, flags)
		},
	}
	flags.register(command)
	return command
}

func runListCmd(cmd *cobra.Command, flags *configFlags) error {
	opts, err := flags.options()
	if err != nil {
		return err
	}
	projects, err := venv.Find(cmd.Context(), opts.Root, venv.FindOpts{
		Layout:  opts.Layout,
		Policy:  opts.Policy,
		Exclude: opts.Exclude,
	})
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		ux.Finfo(cmd.ErrOrStderr(), "No projects found under %s\n", opts.Root)
		return nil
	}

	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		src, err := fileutil.Resolve(opts.Root, p.SourceRoot(), fileutil.Relative)
		if err != nil {
			return err
		}
		venvPath, err := fileutil.Resolve(opts.Root, p.Venv, fileutil.Relative)
		if err != nil {
			return err
		}
		rows = append(rows, []string{p.Name(), src, venvPath, lo.Ternary(p.HasDescriptor, "yes", "no")})
	}
	return ux.Ftable(cmd.OutOrStdout(), []string{"Name", "Root", "Venv", "Descriptor"}, rows)
}
