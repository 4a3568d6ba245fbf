// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cuecfg

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

const Indent = "  "

// MarshalJSON marshals the given value to JSON. It does not HTML escape and
// adds standard indentation.
func MarshalJSON(v any) ([]byte, error) {
	buff := &bytes.Buffer{}
	e := json.NewEncoder(buff)
	e.SetIndent("", Indent)
	e.SetEscapeHTML(false)
	if err := e.Encode(v); err != nil {
		return nil, errors.WithStack(err)
	}
	return bytes.TrimRight(buff.Bytes(), "\n"), nil
}

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
