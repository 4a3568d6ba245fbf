// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package envir

import (
	"os"
	"strconv"
)

func IsDebugEnabled() bool {
	enabled, _ := strconv.ParseBool(os.Getenv(PyrightgenDebug))
	return enabled
}

func IsExecTimeEnabled() bool {
	enabled, _ := strconv.ParseBool(os.Getenv(PyrightgenPrintExecTime))
	return enabled
}

// NoColorRequested reports whether the user opted out of colored output.
// See https://no-color.org
func NoColorRequested() bool {
	return os.Getenv(NoColor) != ""
}

func IsCI() bool {
	ci, err := strconv.ParseBool(os.Getenv("CI"))
	return ci && err == nil
}
