// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package fileutil

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type PathMode int

const (
	// Relative makes the target relative to base and uses forward slashes so
	// the result is the same on every platform.
	Relative PathMode = iota
	// Absolute makes the target absolute and resolves every symlink in it.
	Absolute
)

// Resolve is the one place that turns a filesystem path into the form written
// to a config file. Both base and target may be relative to the working
// directory.
func Resolve(base, target string, mode PathMode) (string, error) {
	switch mode {
	case Relative:
		absBase, err := filepath.Abs(base)
		if err != nil {
			return "", errors.WithStack(err)
		}
		absTarget, err := filepath.Abs(target)
		if err != nil {
			return "", errors.WithStack(err)
		}
		rel, err := filepath.Rel(absBase, absTarget)
		if err != nil {
			return "", errors.Wrapf(err, "%s is not reachable from %s", target, base)
		}
		return filepath.ToSlash(rel), nil
	case Absolute:
		abs, err := filepath.Abs(target)
		if err != nil {
			return "", errors.WithStack(err)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", errors.WithStack(err)
		}
		return resolved, nil
	}
	return "", errors.Errorf("unknown path mode %d", mode)
}

// AbsDir returns the absolute, cleaned form of dir and verifies that it is a
// directory.
func AbsDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WithStack(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}
