// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cmdutil

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"go.jetify.com/pyrightgen/internal/debug"
)

// Output runs name with arg and returns its trimmed stdout. When the command
// fails, the error includes whatever it printed to stderr.
func Output(ctx context.Context, name string, arg ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	debug.Log("running command: %s", cmd)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", errors.Wrapf(err, "running %s", name)
		}
		return "", errors.Wrapf(err, "running %s: %s", name, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
