// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package model defines the namespaced type model built from a schema document.
package model

import "strings"

// Separator joins namespace segments in their textual form.
const Separator = "::"

// Path is a sequence of snake_case namespace segments, outermost first.
// The empty Path denotes the root (native types live there).
type Path []string

// ParsePath splits a "::"-delimited namespace. Empty segments are dropped.
func ParsePath(s string) Path {
	if s == "" {
		return nil
	}
	var p Path
	for _, seg := range strings.Split(s, Separator) {
		if seg != "" {
			p = append(p, seg)
		}
	}
	return p
}

// String returns the "::"-delimited form of p.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// IsRoot reports whether p is the empty path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Child returns a new path with seg appended. p is not modified.
func (p Path) Child(seg string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// Last returns the innermost segment, or "" for the root.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns p without its innermost segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Equal reports whether p and o have the same segments.
func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether o is a (possibly equal) prefix of p.
func (p Path) HasPrefix(o Path) bool {
	return len(o) <= len(p) && p[:len(o)].Equal(o)
}
