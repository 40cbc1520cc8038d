package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
)

// mockConverter wraps the source in a paragraph and returns fixed PDF bytes.
type mockConverter struct {
	mu     sync.Mutex
	err    error
	inputs []bookfmt.Input
}

func (m *mockConverter) Convert(_ context.Context, input bookfmt.Input) (*bookfmt.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	res := &bookfmt.ConvertResult{HTML: "<p>" + strings.TrimSpace(input.Markdown) + "</p>"}
	if input.PDF {
		res.PDF = []byte("%PDF-mock")
	}
	return res, nil
}

func (m *mockConverter) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inputs)
}

// mockPool hands out a single shared converter. With drained set it hands
// out nothing yet reports no init error.
type mockPool struct {
	conv    Converter
	size    int
	initErr error
	drained bool

	mu       sync.Mutex
	acquired int
	released int
	closed   bool
}

func newMockPool(conv Converter, size int) *mockPool {
	return &mockPool{conv: conv, size: size}
}

func (p *mockPool) Acquire() Converter {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initErr != nil || p.drained {
		return nil
	}
	p.acquired++
	return p.conv
}

func (p *mockPool) Release(Converter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.released++
}

func (p *mockPool) Size() int        { return p.size }
func (p *mockPool) InitError() error { return p.initErr }

func (p *mockPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv captures output and serves stdin from the given text. The pool
// factory records the options it receives.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *mockPool
}

func newTestEnv(stdin string, conv Converter) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   newMockPool(conv, 2),
	}
	te.Environment = &Environment{
		Stdin:  strings.NewReader(stdin),
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, _ ...bookfmt.Option) Pool {
			te.pool.size = size
			return te.pool
		},
	}
	return te
}

var errMock = errors.New("mock failure")
