// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package translate

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Sink receives generated files. Names are slash-separated and relative
// to the output root.
type Sink interface {
	WriteFile(name string, data []byte) error
}

// DirSink writes files below Root, creating directories as needed.
type DirSink struct {
	Root string
}

// WriteFile writes data to Root/name.
func (s DirSink) WriteFile(name string, data []byte) error {
	path := filepath.Join(s.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// MemSink keeps files in memory.
type MemSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemSink returns an empty MemSink.
func NewMemSink() *MemSink {
	return &MemSink{files: make(map[string][]byte)}
}

// WriteFile stores a copy of data under name.
func (s *MemSink) WriteFile(name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = slices.Clone(data)
	return nil
}

// File returns the contents stored under name.
func (s *MemSink) File(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return string(data), ok
}

// Names returns the stored file names, sorted.
func (s *MemSink) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Sorted(maps.Keys(s.files))
}
