// Copyright 2025 Jetify Inc. and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package cuecfg

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func Marshal(valuePtr any, extension string) ([]byte, error) {
	switch extension {
	case ".json":
		return MarshalJSON(valuePtr)
	case ".toml":
		return marshalToml(valuePtr)
	}
	return nil, errors.Errorf("Unsupported file format '%s' for config file", extension)
}

func Unmarshal(data []byte, extension string, valuePtr any) error {
	switch extension {
	case ".json":
		return errors.WithStack(unmarshalJSON(data, valuePtr))
	case ".toml":
		return errors.WithStack(unmarshalToml(data, valuePtr))
	}
	return errors.Errorf("Unsupported file format '%s' for config file", extension)
}

func ParseFile(path string, valuePtr any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WithStack(err)
	}
	return Unmarshal(data, filepath.Ext(path), valuePtr)
}

// WriteFile marshals value based on the extension of path and writes it,
// truncating any existing file. The output always ends with a newline.
func WriteFile(path string, value any) error {
	data, err := Marshal(value, filepath.Ext(path))
	if err != nil {
		return errors.WithStack(err)
	}
	data = append(data, '\n')
	return errors.WithStack(os.WriteFile(path, data, 0o644))
}
