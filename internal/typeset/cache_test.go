package typeset

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestCached_Render(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	next := Func(func(latex string, opts Options) (string, error) {
		calls.Add(1)
		if latex == "bad" {
			return "", ErrParse
		}
		if opts.DisplayMode {
			return "D:" + latex, nil
		}
		return "I:" + latex, nil
	})

	c := NewCached(next, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := c.Render("x", Options{})
		if err != nil || got != "I:x" {
			t.Fatalf("Render() = %q, %v", got, err)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("inner renderer called %d times, want 1", n)
	}

	got, err := c.Render("x", Options{DisplayMode: true})
	if err != nil || got != "D:x" {
		t.Errorf("display Render() = %q, %v; want separate entry", got, err)
	}

	if _, err := c.Render("bad", Options{}); !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
	if _, err := c.Render("bad", Options{}); !errors.Is(err, ErrParse) {
		t.Errorf("error = %v, want ErrParse", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (errors are not cached)", c.Len())
	}
}

func TestNewCached_NoExpiration(t *testing.T) {
	t.Parallel()

	c := NewCached(NewUnicode(), 0)
	if _, err := c.Render(`\alpha`, Options{}); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
