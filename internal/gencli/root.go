// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package gencli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"go.jetify.com/pyrightgen/internal/debug"
	"go.jetify.com/pyrightgen/internal/gencli/midcobra"
	"go.jetify.com/pyrightgen/internal/ux"
)

var (
	debugMiddleware = &midcobra.DebugMiddleware{}
	traceMiddleware = &midcobra.TraceMiddleware{}
)

type rootCmdFlags struct {
	quiet bool
}

func RootCmd() *cobra.Command {
	flags := rootCmdFlags{}
	genFlags := &generateCmdFlags{}
	command := &cobra.Command{
		Use:   "pyrightgen",
		Short: "Generate a pyrightconfig.json for every Python environment in a repository",
		Long: "Scan a directory tree for Python projects with a virtual environment " +
			"and write a pyrightconfig.json that points Pyright at each of them. " +
			"Defaults can be stored in a pyrightgen.json file at the root.",
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.quiet {
				cmd.SetErr(io.Discard)
			}
			ux.DisableColorUnlessTerminal(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerateCmd(cmd, genFlags)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	genFlags.register(command)

	command.AddCommand(listCmd())
	command.AddCommand(versionCmd())

	// Register the "all" command to list all commands, including hidden ones.
	command.AddCommand(&cobra.Command{
		Use:    "all",
		Short:  "List all commands, including hidden ones",
		Hidden: true,
		Run: func(cmd *cobra.Command, args []string) {
			listAllCommands(cmd.OutOrStdout(), command, "")
		},
	})

	command.PersistentFlags().BoolVarP(
		&flags.quiet, "quiet", "q", false, "suppresses logs")
	debugMiddleware.AttachToFlag(command.PersistentFlags(), "debug")
	traceMiddleware.AttachToFlag(command.PersistentFlags(), "trace")

	return command
}

func Execute(ctx context.Context, args []string) int {
	defer debug.Recover()
	exe := midcobra.New(RootCmd())
	exe.AddMiddleware(traceMiddleware)
	exe.AddMiddleware(debugMiddleware)
	return exe.Execute(ctx, args)
}

func Main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := Execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

func listAllCommands(w io.Writer, cmd *cobra.Command, indent string) {
	fmt.Fprintf(w, "%s%-20s%s\n", indent, cmd.Use, cmd.Short)
	for _, childCmd := range cmd.Commands() {
		listAllCommands(w, childCmd, indent+"\t")
	}
}
