// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package venv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"go.jetify.com/pyrightgen/internal/cmdutil"
	"go.jetify.com/pyrightgen/internal/debug"
	"go.jetify.com/pyrightgen/internal/envir"
	"go.jetify.com/pyrightgen/internal/fileutil"
)

var ErrSitePackagesNotFound = errors.New("site-packages directory not found")

var versionRe = regexp.MustCompile(`^(?:python)?(\d+)\.(\d+)`)

// ParseVersionTag turns "3.11", "3.11.4", "3.12.1.final.0" or "python3.11"
// into the directory name used under lib/, e.g. "python3.11".
func ParseVersionTag(version string) (string, error) {
	m := versionRe.FindStringSubmatch(strings.TrimSpace(version))
	if m == nil {
		return "", errors.Errorf("cannot parse python version %q", version)
	}
	return fmt.Sprintf("python%s.%s", m[1], m[2]), nil
}

const versionScript = `import sys; print("python%d.%d" % sys.version_info[:2])`

// TagResolver finds the version tag of an environment. The interpreter is
// asked at most once per resolver.
type TagResolver struct {
	// Override, when set, is used for every environment.
	Override string
	// Interpreters are tried in order when an environment does not record
	// its version. Defaults to $PYRIGHTGEN_PYTHON, python3, python.
	Interpreters []string

	hostDone bool
	hostTag  string
	hostErr  error
}

func (r *TagResolver) Resolve(ctx context.Context, venvDir string) (string, error) {
	if r.Override != "" {
		return ParseVersionTag(r.Override)
	}
	if tag, ok := tagFromPyvenvCfg(venvDir); ok {
		return tag, nil
	}
	return r.hostInterpreterTag(ctx)
}

func (r *TagResolver) hostInterpreterTag(ctx context.Context) (string, error) {
	if r.hostDone {
		return r.hostTag, r.hostErr
	}
	r.hostDone = true

	interpreters := r.Interpreters
	if len(interpreters) == 0 {
		interpreters = []string{"python3", "python"}
		if py := os.Getenv(envir.PyrightgenPython); py != "" {
			interpreters = append([]string{py}, interpreters...)
		}
	}
	python, ok := cmdutil.LookPathFirst(interpreters...)
	if !ok {
		r.hostErr = errors.Errorf("no python interpreter found on %s (tried %s)",
			envir.Path, strings.Join(interpreters, ", "))
		return "", r.hostErr
	}
	out, err := cmdutil.Output(ctx, python, "-c", versionScript)
	if err != nil {
		r.hostErr = err
		return "", err
	}
	r.hostTag, r.hostErr = ParseVersionTag(out)
	debug.Log("host interpreter %s reports %s", python, r.hostTag)
	return r.hostTag, r.hostErr
}

// tagFromPyvenvCfg reads the version recorded by venv, virtualenv or uv when
// the environment was created. pyvenv.cfg is a section-less ini file.
func tagFromPyvenvCfg(venvDir string) (string, bool) {
	path := filepath.Join(venvDir, "pyvenv.cfg")
	if !fileutil.IsFile(path) {
		return "", false
	}
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		debug.Log("ignoring %s: %v", path, err)
		return "", false
	}
	section := cfg.Section(ini.DefaultSection)
	for _, key := range []string{"version_info", "version"} {
		if !section.HasKey(key) {
			continue
		}
		if tag, err := ParseVersionTag(section.Key(key).String()); err == nil {
			return tag, true
		}
	}
	return "", false
}

// SitePackagesDir returns where an environment installs third-party packages.
func SitePackagesDir(venvDir, tag string) string {
	if runtime.GOOS == "windows" {
		return filepath.Join(venvDir, "Lib", "site-packages")
	}
	return filepath.Join(venvDir, "lib", tag, "site-packages")
}

// SitePackages returns the absolute, symlink-free site-packages directory of
// the project's environment. The error wraps ErrSitePackagesNotFound when the
// directory does not exist or its version cannot be determined.
func (p *Project) SitePackages(ctx context.Context, r *TagResolver) (string, error) {
	tag := ""
	if runtime.GOOS != "windows" {
		var err error
		if tag, err = r.Resolve(ctx, p.Venv); err != nil {
			return "", errors.Wrapf(ErrSitePackagesNotFound, "%s: %v", p.Venv, err)
		}
	}
	dir := SitePackagesDir(p.Venv, tag)
	if !fileutil.IsDir(dir) {
		return "", errors.Wrapf(ErrSitePackagesNotFound, "%s", dir)
	}
	return fileutil.Resolve(p.Dir, dir, fileutil.Absolute)
}
