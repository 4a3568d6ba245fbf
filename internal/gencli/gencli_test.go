// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package gencli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jetify.com/pyrightgen/internal/build"
	"go.jetify.com/pyrightgen/internal/gencli/usererr"
	"go.jetify.com/pyrightgen/internal/pyright"
	"go.jetify.com/pyrightgen/internal/settings"
)

func makeTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := RootCmd()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestGenerateCommand(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"proj_a/pyproject.toml", "proj_a/.venv/",
		"proj_b/.venv/",
	)

	_, stderr, err := run(t, "--root", root)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Generated pyrightconfig.json with 1 environments")
	assert.FileExists(t, filepath.Join(root, pyright.ConfigName))

	_, stderr, err = run(t, "--root", root, "--policy", "env-only")
	require.NoError(t, err)
	assert.Contains(t, stderr, "with 2 environments")
}

func TestGenerateCommandQuiet(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/pyproject.toml", "a/.venv/")

	_, stderr, err := run(t, "--root", root, "-q")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestGenerateCommandUsesSettingsFile(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/.venv/")
	require.NoError(t, os.WriteFile(
		filepath.Join(root, settings.FileName),
		[]byte("{\n  // no pyproject.toml in this repo\n  \"policy\": \"env-only\",\n}\n"),
		0o644,
	))

	stdout, _, err := run(t, "--root", root, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"venv": "a/.venv"`)
	assert.NoFileExists(t, filepath.Join(root, pyright.ConfigName))

	// Flags take precedence over the file.
	_, _, err = run(t, "--root", root, "--policy", "marker-pair")
	require.Error(t, err)
}

func TestGenerateCommandNoEnvironments(t *testing.T) {
	root := t.TempDir()

	_, _, err := run(t, "--root", root)
	require.Error(t, err)
	userErr, ok := usererr.Extract(err)
	require.True(t, ok)
	assert.Contains(t, userErr.Error(), "No environments found")
	assert.NoFileExists(t, filepath.Join(root, pyright.ConfigName))

	_, stderr, err := run(t, "--root", root, "--mode", "permissive")
	require.NoError(t, err)
	assert.Contains(t, stderr, "with 0 environments")
}

func TestGenerateCommandInvalidFlags(t *testing.T) {
	root := t.TempDir()
	tests := [][]string{
		{"--policy", "everything"},
		{"--schema", "toml"},
		{"--mode", "lenient"},
		{"--type-checking-mode", "paranoid"},
		{"--python-version", "latest"},
		{"--exclude", "[broken"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, err := run(t, append([]string{"--root", root}, args...)...)
			assert.Error(t, err)
		})
	}

	_, _, err := run(t, "--root", filepath.Join(root, "missing"))
	assert.Error(t, err)

	_, _, err = run(t, "unexpected-arg")
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"svc/pyproject.toml", "svc/src/", "svc/.venv/",
		"tools/.venv/",
	)
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "svc", "pyproject.toml"),
		[]byte("[project]\nname = \"billing\"\n"),
		0o644,
	))

	stdout, _, err := run(t, "list", "--root", root, "--policy", "env-only")
	require.NoError(t, err)
	assert.Contains(t, stdout, "billing")
	assert.Contains(t, stdout, "svc/src")
	assert.Contains(t, stdout, "tools/.venv")
	assert.NoFileExists(t, filepath.Join(root, pyright.ConfigName))

	_, stderr, err := run(t, "list", "--root", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stderr, "No projects found")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, build.Version+"\n", stdout)

	stdout, _, err = run(t, "version", "-v")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Platform:")
}

func TestExecuteExitCodes(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root, "a/pyproject.toml", "a/.venv/")

	assert.Equal(t, 0, Execute(context.Background(), []string{"--root", root, "-q"}))
	assert.Equal(t, 1, Execute(context.Background(), []string{"--root", t.TempDir(), "-q"}))
}
