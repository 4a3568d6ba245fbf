// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package venv

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyAccepts(t *testing.T) {
	root := t.TempDir()
	makeTree(t, root,
		"both/pyproject.toml", "both/.venv/",
		"envonly/.venv/",
		"desconly/pyproject.toml",
		"envfile/.venv",
		"descdir/pyproject.toml/", "descdir/.venv/",
	)
	layout := DefaultLayout()

	tests := []struct {
		dir        string
		markerPair bool
		envOnly    bool
	}{
		{"both", true, true},
		{"envonly", false, true},
		{"desconly", false, false},
		{"envfile", false, false},
		{"descdir", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.dir, func(t *testing.T) {
			dir := filepath.Join(root, tt.dir)
			assert.Equal(t, tt.markerPair, MarkerPair.Accepts(dir, layout))
			assert.Equal(t, tt.envOnly, EnvironmentOnly.Accepts(dir, layout))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("env-only")
	require.NoError(t, err)
	assert.Equal(t, EnvironmentOnly, p)

	_, err = ParsePolicy("everything")
	assert.Error(t, err)
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, DefaultLayout().Validate())

	bad := DefaultLayout()
	bad.EnvDir = "nested/.venv"
	assert.Error(t, bad.Validate())

	bad = DefaultLayout()
	bad.Descriptor = ""
	assert.Error(t, bad.Validate())
}
