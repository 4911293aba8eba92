// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package resources is the table of files compiled into dualview.
//
// Every entry has a compiled-in default. LoadFiles can replace entries with
// files found in a directory; lookups prefer a loaded override over the
// default. Names are matched case-insensitively.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// OverlayName is the name of the overlay image drawn over the composite.
const OverlayName = "overlay.png"

//go:embed data
var data embed.FS

// ErrNotFound is returned by Open for names missing from the table.
var ErrNotFound = errors.New("resources: file not found")

type entry struct {
	name       string
	defaultBuf []byte
	customBuf  []byte
}

// Table is a set of named files. It is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries []*entry
}

// File is a named default for NewTable.
type File struct {
	Name string
	Data []byte
}

// NewTable creates a table with the given defaults.
func NewTable(files ...File) *Table {
	t := &Table{}
	for _, f := range files {
		t.entries = append(t.entries, &entry{name: f.Name, defaultBuf: f.Data})
	}
	return t
}

// Default returns a table holding the compiled-in files.
func Default() *Table {
	var files []File
	err := fs.WalkDir(data, "data", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		b, err := data.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, File{Name: path.Base(p), Data: b})
		return nil
	})
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(fmt.Sprintf("resources: reading embedded files: %v", err))
	}
	return NewTable(files...)
}

func (t *Table) lookup(name string) *entry {
	for _, e := range t.entries {
		if strings.EqualFold(e.name, name) {
			return e
		}
	}
	return nil
}

// GetFile returns the contents of name, or nil if it is not in the table.
// The returned slice must not be modified.
func (t *Table) GetFile(name string) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.lookup(name)
	if e == nil {
		return nil
	}
	if e.customBuf != nil {
		return e.customBuf
	}
	return e.defaultBuf
}

// GetFileSize returns the size of name, or 0 if it is not in the table.
func (t *Table) GetFileSize(name string) int {
	return len(t.GetFile(name))
}

// Open is GetFile returning ErrNotFound for unknown names.
func (t *Table) Open(name string) ([]byte, error) {
	b := t.GetFile(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return b, nil
}

// Names lists the table's file names.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.name
	}
	return names
}

// LoadFiles drops previous overrides, then loads dir/<name> for every entry
// that exists in fsys. It reports whether at least one override was loaded.
// Missing files are skipped; other read errors are returned after all
// entries have been tried.
func (t *Table) LoadFiles(fsys afero.Fs, dir string) (bool, error) {
	t.Clear()

	t.mu.Lock()
	defer t.mu.Unlock()

	var (
		loaded bool
		errs   []error
	)
	for _, e := range t.entries {
		b, err := afero.ReadFile(fsys, path.Join(dir, e.name))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		e.customBuf = b
		loaded = true
	}
	return loaded, errors.Join(errs...)
}

// Clear drops every loaded override.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range t.entries {
		e.customBuf = nil
	}
}
