// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package envir

const (
	PyrightgenDebug         = "PYRIGHTGEN_DEBUG"
	PyrightgenPrintExecTime = "PYRIGHTGEN_PRINT_EXEC_TIME"

	// PyrightgenPython overrides the interpreter asked for a version tag
	// when neither a flag nor pyvenv.cfg provides one.
	PyrightgenPython = "PYRIGHTGEN_PYTHON"

	NoColor = "NO_COLOR"
)

// system
const (
	Path = "PATH"
)
