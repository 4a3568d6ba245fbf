// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package venv

import (
	"context"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"go.jetify.com/pyrightgen/internal/debug"
	"go.jetify.com/pyrightgen/internal/fileutil"
)

// Version control metadata never contains environments.
var skippedDirs = []string{".git", ".hg", ".svn"}

type FindOpts struct {
	Layout Layout
	Policy Policy
	// Exclude holds doublestar patterns matched against slash-separated paths
	// relative to the root. Matching directories are not descended into.
	Exclude []string
	// Visit, when set, is called once for every directory that is read.
	Visit func(dir string)
}

// Find walks root and returns the projects it contains in lexical order.
//
// Directories are processed from an explicit stack. An environment directory
// is never pushed onto the stack, so nothing inside it is ever read, and the
// directory holding it is offered to the policy instead. Symlinked
// directories are not followed.
func Find(ctx context.Context, root string, opts FindOpts) ([]*Project, error) {
	defer debug.FunctionTimer().End()

	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	projects := []*Project{}
	stack := []string{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if opts.Visit != nil {
			opts.Visit(dir)
		}

		// os.ReadDir sorts entries by name.
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", dir)
		}

		hasEnv := false
		var children []string
		for _, entry := range entries {
			name := entry.Name()
			if name == opts.Layout.EnvDir {
				hasEnv = true
				continue
			}
			if !entry.IsDir() || slices.Contains(skippedDirs, name) {
				continue
			}
			child := filepath.Join(dir, name)
			if excluded, err := isExcluded(root, child, opts.Exclude); err != nil {
				return nil, err
			} else if excluded {
				debug.Log("skipping excluded directory %s", child)
				continue
			}
			children = append(children, child)
		}

		if hasEnv && opts.Policy.Accepts(dir, opts.Layout) {
			debug.Log("found project %s", dir)
			projects = append(projects, newProject(dir, opts.Layout))
		}

		// Push in reverse so that children are popped in lexical order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return projects, nil
}

func isExcluded(root, dir string, patterns []string) (bool, error) {
	if len(patterns) == 0 {
		return false, nil
	}
	rel, err := fileutil.Resolve(root, dir, fileutil.Relative)
	if err != nil {
		return false, err
	}
	for _, pattern := range patterns {
		// Patterns were validated up front, so Match cannot fail here.
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true, nil
		}
	}
	return false, nil
}
