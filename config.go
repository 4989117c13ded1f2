// Copyright (c) 2026, the Stamp project contributors
//
// SPDX-License-Identifier: Apache-2.0

package stamp

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the name of the template manifest
const DefaultConfigFile = "stamp.yaml"

// LoadConfig reads a template manifest in YAML format. A relative source
// directory in the manifest is resolved against the manifest location, the
// target directory and Force are never part of a manifest and always come
// from the caller.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfigBytes(data)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}

	if cfg.SourceDirectory != "" && !filepath.IsAbs(cfg.SourceDirectory) {
		cfg.SourceDirectory = filepath.Join(filepath.Dir(path), cfg.SourceDirectory)
	}
	if cfg.SourceDirectory == "" {
		cfg.SourceDirectory = filepath.Dir(path)
	}

	return cfg, nil
}

// LoadConfigBytes parses a template manifest. A relative source directory is
// left as given and resolves against the working directory.
func LoadConfigBytes(data []byte) (*Config, error) {
	cfg := &Config{}

	err := yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
