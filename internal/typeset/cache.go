package typeset

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Cached memoizes successful renders of another Renderer. Textbooks repeat
// the same expressions often, and MathML conversion dominates typesetting.
type Cached struct {
	next  Renderer
	cache *cache.Cache
}

// NewCached wraps next with a cache whose entries expire after ttl.
// A ttl of zero or less keeps entries until the process exits.
func NewCached(next Renderer, ttl time.Duration) *Cached {
	cleanup := ttl * 2
	if ttl <= 0 {
		ttl, cleanup = cache.NoExpiration, 0
	}
	return &Cached{next: next, cache: cache.New(ttl, cleanup)}
}

func (c *Cached) Render(latex string, opts Options) (string, error) {
	key := cacheKey(latex, opts)
	if v, ok := c.cache.Get(key); ok {
		return v.(string), nil
	}

	markup, err := c.next.Render(latex, opts)
	if err != nil {
		return "", err
	}
	c.cache.Set(key, markup, cache.DefaultExpiration)
	return markup, nil
}

// Len returns the number of cached expressions.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

func cacheKey(latex string, opts Options) string {
	prefix := "i"
	if opts.DisplayMode {
		prefix = "d"
	}
	if opts.ThrowOnError {
		prefix += "!"
	}
	return prefix + ":" + latex
}

// Compile-time interface check.
var _ Renderer = (*Cached)(nil)
