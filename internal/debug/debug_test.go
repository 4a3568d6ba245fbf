// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package debug

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarliestStackTrace(t *testing.T) {
	inner := errors.New("inner")
	outer := fmt.Errorf("outer: %w", errors.WithMessage(inner, "middle"))

	st := EarliestStackTrace(outer)
	require.Error(t, st)
	assert.Equal(t, inner, st)
}

func TestEarliestStackTraceNone(t *testing.T) {
	plain := fmt.Errorf("plain")
	assert.NoError(t, EarliestStackTrace(plain))
}

func TestLogOnlyWhenEnabled(t *testing.T) {
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		enabled = false
		SetOutput(os.Stderr)
	})

	enabled = false
	Log("hidden %d", 1)
	assert.Empty(t, buf.String())

	enabled = true
	Log("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}
