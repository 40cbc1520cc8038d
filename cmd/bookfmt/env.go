package main

import (
	"io"
	"os"

	bookfmt "github.com/raj05122001/textbook-machine-sub001"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// NewPool builds the converter pool once options are known.
	NewPool func(size int, opts ...bookfmt.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		NewPool: newConverterPool,
	}
}
