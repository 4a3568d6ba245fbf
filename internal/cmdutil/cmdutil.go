// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cmdutil

import (
	"os/exec"
)

// Exists indicates if the command exists
func Exists(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}

// LookPathFirst returns the resolved path of the first command that exists.
func LookPathFirst(commands ...string) (string, bool) {
	for _, command := range commands {
		if path, err := exec.LookPath(command); err == nil {
			return path, true
		}
	}
	return "", false
}
