// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package pyright

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.jetify.com/pyrightgen/internal/cuecfg"
	"go.jetify.com/pyrightgen/internal/debug"
	"go.jetify.com/pyrightgen/internal/fileutil"
	"go.jetify.com/pyrightgen/internal/ux"
	"go.jetify.com/pyrightgen/internal/venv"
)

var ErrNoEnvironments = errors.New("no environments found")

// Mode controls what happens when a project's paths cannot be derived.
type Mode string

const (
	// Strict aborts the run on the first project that cannot be resolved and
	// fails when nothing was found. Nothing is written in either case.
	Strict Mode = "strict"
	// Permissive skips unresolvable projects with a warning and writes a
	// document even when it is empty.
	Permissive Mode = "permissive"
)

var Modes = []Mode{Strict, Permissive}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.Errorf("unknown mode %q", s)
}

type Options struct {
	// Root is scanned and receives the config file. Must be absolute.
	Root             string
	Layout           venv.Layout
	Policy           venv.Policy
	Schema           Schema
	Mode             Mode
	Exclude          []string
	PythonVersion    string
	TypeCheckingMode string
	// DryRun prints the document to Stdout instead of writing it.
	DryRun bool

	Stdout io.Writer
	Stderr io.Writer

	// Interpreters overrides the interpreters asked for a version tag.
	Interpreters []string
}

type Result struct {
	// Path is the written file; empty on a dry run.
	Path   string
	Config Config
}

// Generate scans opts.Root and writes the resulting config file. The file is
// only written once every project has been resolved, so a failed run leaves
// any previous file untouched.
func Generate(ctx context.Context, opts *Options) (*Result, error) {
	defer debug.FunctionTimer().End()

	if !filepath.IsAbs(opts.Root) {
		return nil, errors.Errorf("root must be absolute, got %q", opts.Root)
	}
	projects, err := venv.Find(ctx, opts.Root, venv.FindOpts{
		Layout:  opts.Layout,
		Policy:  opts.Policy,
		Exclude: opts.Exclude,
	})
	if err != nil {
		return nil, err
	}
	debug.Log("found %d projects under %s", len(projects), opts.Root)

	cfg, err := Build(ctx, opts, projects)
	if err != nil {
		return nil, err
	}

	if opts.DryRun {
		data, err := cuecfg.MarshalJSON(cfg)
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintln(opts.Stdout, string(data))
		return &Result{Config: cfg}, errors.WithStack(err)
	}

	path := filepath.Join(opts.Root, ConfigName)
	if err := cuecfg.WriteFile(path, cfg); err != nil {
		return nil, err
	}
	return &Result{Path: path, Config: cfg}, nil
}

// Build derives the document for projects without touching the output file.
func Build(ctx context.Context, opts *Options, projects []*venv.Project) (Config, error) {
	var cfg Config
	var err error
	switch opts.Schema {
	case ExecutionEnvironments:
		cfg, err = buildExecutionEnvironments(opts, projects)
	case ExtraPaths:
		cfg, err = buildExtraPaths(ctx, opts, projects)
	default:
		return nil, errors.Errorf("unknown schema %q", opts.Schema)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Len() == 0 && opts.Mode != Permissive {
		return nil, errors.Wrapf(ErrNoEnvironments, "under %s", opts.Root)
	}
	return cfg, nil
}

func buildExecutionEnvironments(opts *Options, projects []*venv.Project) (Config, error) {
	typeCheckingMode := lo.Ternary(opts.TypeCheckingMode == "", DefaultTypeCheckingMode, opts.TypeCheckingMode)
	if err := ValidateTypeCheckingMode(typeCheckingMode); err != nil {
		return nil, err
	}

	cfg := &ExecutionEnvironmentsConfig{
		TypeCheckingMode:      typeCheckingMode,
		Exclude:               lo.Uniq(append([]string{"**/" + opts.Layout.EnvDir}, opts.Exclude...)),
		ExecutionEnvironments: []ExecutionEnvironment{},
	}
	for _, project := range projects {
		env, err := executionEnvironment(opts.Root, project)
		if err != nil {
			if skipErr := skip(opts, project, err); skipErr != nil {
				return nil, skipErr
			}
			continue
		}
		cfg.ExecutionEnvironments = append(cfg.ExecutionEnvironments, env)
	}
	return cfg, nil
}

func executionEnvironment(root string, project *venv.Project) (ExecutionEnvironment, error) {
	src, err := fileutil.Resolve(root, project.SourceRoot(), fileutil.Relative)
	if err != nil {
		return ExecutionEnvironment{}, err
	}
	venvPath, err := fileutil.Resolve(root, project.Venv, fileutil.Relative)
	if err != nil {
		return ExecutionEnvironment{}, err
	}
	return ExecutionEnvironment{
		Root:       src,
		ExtraPaths: []string{src},
		Venv:       venvPath,
	}, nil
}

func buildExtraPaths(ctx context.Context, opts *Options, projects []*venv.Project) (Config, error) {
	resolver := &venv.TagResolver{
		Override:     opts.PythonVersion,
		Interpreters: opts.Interpreters,
	}
	paths := []string{}
	for _, project := range projects {
		dir, err := project.SitePackages(ctx, resolver)
		if err != nil {
			if skipErr := skip(opts, project, err); skipErr != nil {
				return nil, skipErr
			}
			continue
		}
		paths = append(paths, dir)
	}
	return &ExtraPathsConfig{ExtraPaths: lo.Uniq(paths)}, nil
}

// skip reports a project that could not be resolved. It returns the error
// that should abort the run, or nil when the project is skipped instead.
func skip(opts *Options, project *venv.Project, err error) error {
	if opts.Mode != Permissive {
		return errors.WithMessagef(err, "resolving project %s", project.Dir)
	}
	if opts.Stderr != nil {
		ux.Fwarning(opts.Stderr, "skipping %s: %v\n", project.Dir, err)
	}
	return nil
}
