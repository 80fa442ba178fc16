// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrEntryNotFound is returned when a key has no entry.
	ErrEntryNotFound = errors.New("entry not found")
	// ErrNotObject is returned when an entry holds a subtree where an object was expected.
	ErrNotObject = errors.New("entry is not an object")
	// ErrNotTree is returned when an entry holds an object where a subtree was expected.
	ErrNotTree = errors.New("entry is not a subtree")
)

// Entry is a tree member: exactly one of Object and Tree is set.
type Entry struct {
	Object *ObjectNode
	Tree   *Tree
}

// IsObject reports whether e holds an object.
func (e *Entry) IsObject() bool {
	return e.Object != nil
}

// Tree is an insertion-ordered mapping from entry key to Entry.
type Tree struct {
	keys    []string
	entries map[string]*Entry
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{entries: make(map[string]*Entry)}
}

// Len returns the number of entries.
func (t *Tree) Len() int {
	return len(t.keys)
}

// Keys returns the entry keys in insertion order.
func (t *Tree) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Get returns the entry at key.
func (t *Tree) Get(key string) (*Entry, bool) {
	e, ok := t.entries[key]
	return e, ok
}

// Object returns the object at key.
func (t *Tree) Object(key string) (*ObjectNode, error) {
	e, ok := t.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, key)
	}
	if e.Object == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotObject, key)
	}
	return e.Object, nil
}

// Subtree returns the subtree at key.
func (t *Tree) Subtree(key string) (*Tree, error) {
	e, ok := t.entries[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, key)
	}
	if e.Tree == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotTree, key)
	}
	return e.Tree, nil
}

func (t *Tree) put(key string, e *Entry) {
	if _, ok := t.entries[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.entries[key] = e
}

// AddObject stores obj at key. An existing object at key is replaced in place;
// an existing subtree is an error.
func (t *Tree) AddObject(key string, obj *ObjectNode) error {
	if e, ok := t.entries[key]; ok && e.Tree != nil {
		return fmt.Errorf("%w: %s", ErrNotObject, key)
	}
	t.put(key, &Entry{Object: obj})
	return nil
}

// GetOrAddTree returns the subtree at key, creating it when absent.
func (t *Tree) GetOrAddTree(key string) (*Tree, error) {
	if e, ok := t.entries[key]; ok {
		if e.Tree == nil {
			return nil, fmt.Errorf("%w: %s", ErrNotTree, key)
		}
		return e.Tree, nil
	}
	sub := NewTree()
	t.put(key, &Entry{Tree: sub})
	return sub, nil
}

// GetOrAddPath walks p from t, creating missing subtrees.
func (t *Tree) GetOrAddPath(p Path) (*Tree, error) {
	cur := t
	for i, seg := range p {
		next, err := cur.GetOrAddTree(seg)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p[:i+1], err)
		}
		cur = next
	}
	return cur, nil
}

// Lookup returns the subtree at p.
func (t *Tree) Lookup(p Path) (*Tree, bool) {
	cur := t
	for _, seg := range p {
		e, ok := cur.entries[seg]
		if !ok || e.Tree == nil {
			return nil, false
		}
		cur = e.Tree
	}
	return cur, true
}

// IsReducible reports whether t holds exactly one entry, that entry is an
// object, and its key is name. Such a subtree is emitted as a single file.
func (t *Tree) IsReducible(name string) bool {
	if len(t.keys) != 1 || t.keys[0] != name {
		return false
	}
	return t.entries[name].Object != nil
}

// WalkFunc is called for each entry during Walk. dir is the path of the
// subtree holding the entry.
type WalkFunc func(dir Path, key string, e *Entry) error

// Walk visits every entry depth-first in insertion order.
func (t *Tree) Walk(fn WalkFunc) error {
	return t.walk(nil, fn)
}

func (t *Tree) walk(dir Path, fn WalkFunc) error {
	for _, key := range t.keys {
		e := t.entries[key]
		if err := fn(dir, key, e); err != nil {
			return err
		}
		if e.Tree != nil {
			if err := e.Tree.walk(dir.Child(key), fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Objects returns every object in the tree in walk order.
func (t *Tree) Objects() []*ObjectNode {
	var out []*ObjectNode
	_ = t.Walk(func(_ Path, _ string, e *Entry) error {
		if e.Object != nil {
			out = append(out, e.Object)
		}
		return nil
	})
	return out
}
