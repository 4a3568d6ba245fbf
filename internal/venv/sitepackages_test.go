// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package venv

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersionTag(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "3.11", want: "python3.11"},
		{in: "3.11.4", want: "python3.11"},
		{in: "3.12.1.final.0", want: "python3.12"},
		{in: "python3.13", want: "python3.13"},
		{in: " 3.10 ", want: "python3.10"},
		{in: "3", wantErr: true},
		{in: "latest", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersionTag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTagFromPyvenvCfg(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		found   bool
	}{
		{
			name:    "venv",
			content: "home = /usr/bin\ninclude-system-site-packages = false\nversion = 3.11.4\n",
			want:    "python3.11",
			found:   true,
		},
		{
			name:    "uv",
			content: "home = /opt/python/bin\nimplementation = CPython\nuv = 0.4.0\nversion_info = 3.12.5\n",
			want:    "python3.12",
			found:   true,
		},
		{
			name:    "comments and blank lines",
			content: "# written by virtualenv\n\nhome = /usr/bin\nversion_info = 3.10.14.final.0\n",
			want:    "python3.10",
			found:   true,
		},
		{
			name:    "no version",
			content: "home = /usr/bin\n",
			found:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "pyvenv.cfg"), []byte(tt.content), 0o644))
			got, found := tagFromPyvenvCfg(dir)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}

	_, found := tagFromPyvenvCfg(t.TempDir())
	assert.False(t, found)
}

func TestTagResolverOverrideWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pyvenv.cfg"), []byte("version = 3.9.1\n"), 0o644))

	r := &TagResolver{Override: "3.13"}
	tag, err := r.Resolve(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "python3.13", tag)
}

func TestTagResolverAsksInterpreterOnce(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as a fake interpreter")
	}
	bin := t.TempDir()
	counter := filepath.Join(bin, "calls")
	fake := filepath.Join(bin, "fakepython")
	script := "#!/bin/sh\necho x >> " + counter + "\necho python3.10\n"
	require.NoError(t, os.WriteFile(fake, []byte(script), 0o755))

	r := &TagResolver{Interpreters: []string{"pyrightgen-missing-python", fake}}
	for i := 0; i < 3; i++ {
		tag, err := r.Resolve(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "python3.10", tag)
	}

	calls, err := os.ReadFile(counter)
	require.NoError(t, err)
	assert.Equal(t, "x\n", string(calls))
}

func TestTagResolverNoInterpreter(t *testing.T) {
	r := &TagResolver{Interpreters: []string{"pyrightgen-missing-python"}}
	_, err := r.Resolve(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestSitePackages(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX environment layout")
	}
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	makeTree(t, root,
		"ok/pyproject.toml", "ok/.venv/pyvenv.cfg", "ok/.venv/lib/python3.11/site-packages/",
		"wrongver/pyproject.toml", "wrongver/.venv/lib/python3.9/site-packages/",
	)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ok/.venv/pyvenv.cfg"), []byte("version = 3.11.2\n"), 0o644))

	r := &TagResolver{}
	ok := newProject(filepath.Join(root, "ok"), DefaultLayout())
	dir, err := ok.SitePackages(context.Background(), r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ok", ".venv", "lib", "python3.11", "site-packages"), dir)

	wrong := newProject(filepath.Join(root, "wrongver"), DefaultLayout())
	_, err = wrong.SitePackages(context.Background(), &TagResolver{Override: "3.11"})
	assert.ErrorIs(t, err, ErrSitePackagesNotFound)
}

func TestSitePackagesResolvesSymlinkedEnv(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX environment layout")
	}
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	makeTree(t, root, "envs/shared/lib/python3.12/site-packages/", "proj/pyproject.toml")
	if err := os.Symlink(filepath.Join(root, "envs", "shared"), filepath.Join(root, "proj", ".venv")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	p := newProject(filepath.Join(root, "proj"), DefaultLayout())
	dir, err := p.SitePackages(context.Background(), &TagResolver{Override: "3.12"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "envs", "shared", "lib", "python3.12", "site-packages"), dir)
}
