// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memObject is a stored value plus its content type.
type memObject struct {
	data        string
	contentType string
}

// Memory is an in-memory Store used by tests and local development.
// Safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memObject

	// FailPut, when set, makes Put return the given error for keys matching
	// the predicate. Lets tests exercise partial-write failure paths.
	FailPut func(key string) error
}

// NewMemory returns an empty in-memory object store.
func NewMemory() *Memory {
	return &Memory{objects: make(map[string]memObject)}
}

// Get retrieves an object as a string.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return "", false, nil
	}
	return obj.data, true, nil
}

// GetBytes retrieves an object's bytes and content type.
func (m *Memory) GetBytes(_ context.Context, key string) ([]byte, string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false, nil
	}
	return []byte(obj.data), obj.contentType, true, nil
}

// Put stores an object.
func (m *Memory) Put(_ context.Context, key, content, contentType string) error {
	if m.FailPut != nil {
		if err := m.FailPut(key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{data: content, contentType: contentType}
	return nil
}

// Delete removes an object. Missing keys are ignored.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// List returns all keys under prefix in lexical order.
func (m *Memory) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
