// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package layout

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Encode writes the persistent part of s as YAML.
func Encode(w io.Writer, s Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("layout: encode: %w", err)
	}
	return enc.Close()
}

// Decode reads YAML settings. Fields missing from the input keep their
// default values; the result is validated against field bounds.
func Decode(r io.Reader) (Settings, error) {
	s := Defaults()
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && err != io.EOF {
		return Settings{}, fmt.Errorf("layout: decode: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
