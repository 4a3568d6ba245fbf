// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

// Package settings loads the optional pyrightgen.json file that sets defaults
// for a repository. The file may contain comments and trailing commas.
package settings

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	pkgerrors "github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/tailscale/hujson"

	"go.jetify.com/pyrightgen/internal/pyright"
	"go.jetify.com/pyrightgen/internal/venv"
)

const FileName = "pyrightgen.json"

type Settings struct {
	EnvDir           string   `json:"envDir,omitempty"`
	Descriptor       string   `json:"descriptor,omitempty"`
	SourceDir        string   `json:"sourceDir,omitempty"`
	Policy           string   `json:"policy,omitempty"`
	Schema           string   `json:"schema,omitempty"`
	Mode             string   `json:"mode,omitempty"`
	Exclude          []string `json:"exclude,omitempty"`
	PythonVersion    string   `json:"pythonVersion,omitempty"`
	TypeCheckingMode string   `json:"typeCheckingMode,omitempty"`
}

func Default() *Settings {
	layout := venv.DefaultLayout()
	return &Settings{
		EnvDir:           layout.EnvDir,
		Descriptor:       layout.Descriptor,
		SourceDir:        layout.SourceDir,
		Policy:           string(venv.MarkerPair),
		Schema:           string(pyright.ExecutionEnvironments),
		Mode:             string(pyright.Strict),
		TypeCheckingMode: pyright.DefaultTypeCheckingMode,
	}
}

// Load returns the defaults overlaid with root/pyrightgen.json, if present.
func Load(root string) (*Settings, error) {
	path := filepath.Join(root, FileName)
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	fromFile, err := LoadBytes(b)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "parsing %s", path)
	}
	return Default().Merge(fromFile), nil
}

func LoadBytes(b []byte) (*Settings, error) {
	jsonb, err := hujson.Standardize(slices.Clone(b))
	if err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	dec := json.NewDecoder(bytes.NewReader(jsonb))
	dec.DisallowUnknownFields()
	s := &Settings{}
	if err := dec.Decode(s); err != nil {
		return nil, pkgerrors.WithStack(err)
	}
	return s, nil
}

// Merge returns a copy of s with every field that is set in other replacing
// the value in s. Exclude patterns are appended.
func (s *Settings) Merge(other *Settings) *Settings {
	merged := *s
	merged.EnvDir = lo.CoalesceOrEmpty(other.EnvDir, s.EnvDir)
	merged.Descriptor = lo.CoalesceOrEmpty(other.Descriptor, s.Descriptor)
	merged.SourceDir = lo.CoalesceOrEmpty(other.SourceDir, s.SourceDir)
	merged.Policy = lo.CoalesceOrEmpty(other.Policy, s.Policy)
	merged.Schema = lo.CoalesceOrEmpty(other.Schema, s.Schema)
	merged.Mode = lo.CoalesceOrEmpty(other.Mode, s.Mode)
	merged.PythonVersion = lo.CoalesceOrEmpty(other.PythonVersion, s.PythonVersion)
	merged.TypeCheckingMode = lo.CoalesceOrEmpty(other.TypeCheckingMode, s.TypeCheckingMode)
	merged.Exclude = lo.Uniq(append(slices.Clone(s.Exclude), other.Exclude...))
	return &merged
}

// Options validates the settings and converts them into generator options.
func (s *Settings) Options(root string) (*pyright.Options, error) {
	layout := venv.Layout{EnvDir: s.EnvDir, Descriptor: s.Descriptor, SourceDir: s.SourceDir}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	policy, err := venv.ParsePolicy(s.Policy)
	if err != nil {
		return nil, err
	}
	schema, err := pyright.ParseSchema(s.Schema)
	if err != nil {
		return nil, err
	}
	mode, err := pyright.ParseMode(s.Mode)
	if err != nil {
		return nil, err
	}
	if err := pyright.ValidateTypeCheckingMode(s.TypeCheckingMode); err != nil {
		return nil, err
	}
	if s.PythonVersion != "" {
		if _, err := venv.ParseVersionTag(s.PythonVersion); err != nil {
			return nil, err
		}
	}
	return &pyright.Options{
		Root:             root,
		Layout:           layout,
		Policy:           policy,
		Schema:           schema,
		Mode:             mode,
		Exclude:          s.Exclude,
		PythonVersion:    s.PythonVersion,
		TypeCheckingMode: s.TypeCheckingMode,
	}, nil
}
