package main

import (
	"context"
	"errors"
	"testing"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
)

func TestPoolAdapter(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(2)
	defer func() { _ = pool.Close() }()

	if pool.Size() != 2 {
		t.Errorf("Size() = %d, want 2", pool.Size())
	}

	conv := pool.Acquire()
	if conv == nil {
		t.Fatalf("Acquire() = nil, InitError() = %v", pool.InitError())
	}
	res, err := conv.Convert(context.Background(), bookfmt.Input{Markdown: "hello"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if res.HTML == "" {
		t.Error("empty HTML")
	}
	pool.Release(conv)
}

func TestPoolAdapter_InitError(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1, bookfmt.WithEngine("unknown"))
	defer func() { _ = pool.Close() }()

	// An untyped nil, so callers can compare against nil.
	if conv := pool.Acquire(); conv != nil {
		t.Fatalf("Acquire() = %v, want nil", conv)
	}
	if !errors.Is(pool.InitError(), bookfmt.ErrInvalidEngine) {
		t.Errorf("InitError() = %v, want ErrInvalidEngine", pool.InitError())
	}
}

func TestPoolAdapter_ReleaseForeign(t *testing.T) {
	t.Parallel()

	pool := newConverterPool(1)
	defer func() { _ = pool.Close() }()

	defer func() {
		if recover() == nil {
			t.Error("Release of a foreign converter did not panic")
		}
	}()
	pool.Release(&mockConverter{})
}
