package kv

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("store is closed")

// Memory is an in-process Store. FailWrites makes every Set fail, which lets
// callers exercise their write-failure paths.
type Memory struct {
	data       map[string]string
	closed     bool
	FailWrites bool
}

func NewMemory() *Memory {
	return &Memory{data: map[string]string{}}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	if m.closed {
		return ErrClosed
	}
	if m.FailWrites {
		return errors.New("write refused")
	}
	m.data[key] = value
	return nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}
