package main

import (
	"context"
	"fmt"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
)

// Converter is the part of bookfmt.Converter the CLI uses.
type Converter interface {
	Convert(ctx context.Context, input bookfmt.Input) (*bookfmt.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ Converter = (*bookfmt.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() Converter
	Release(Converter)
	Size() int
	InitError() error
	Close() error
}

// poolAdapter exposes a bookfmt.ConverterPool as a Pool.
type poolAdapter struct {
	pool *bookfmt.ConverterPool
}

var _ Pool = (*poolAdapter)(nil)

func newConverterPool(size int, opts ...bookfmt.Option) Pool {
	return &poolAdapter{pool: bookfmt.NewConverterPool(size, opts...)}
}

// Acquire returns nil, not a typed nil, when the converter could not be
// created.
func (a *poolAdapter) Acquire() Converter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release panics on a Converter the pool did not hand out.
func (a *poolAdapter) Release(c Converter) {
	conv, ok := c.(*bookfmt.Converter)
	if !ok {
		panic("poolAdapter.Release: unexpected type")
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int        { return a.pool.Size() }
func (a *poolAdapter) InitError() error { return a.pool.InitError() }
func (a *poolAdapter) Close() error     { return a.pool.Close() }

// initError explains a nil Acquire. The pool may have no error recorded, as
// when it was closed, so the cause is only wrapped when there is one.
func initError(pool Pool) error {
	if err := pool.InitError(); err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	return ErrConverterInit
}
