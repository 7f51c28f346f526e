package fragment

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache maps fragment paths to sanitized content. It is safe for
// concurrent use and may be shared by several loaders.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	group   singleflight.Group
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]string)}
}

func (c *Cache) Get(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	content, ok := c.entries[path]
	return content, ok
}

func (c *Cache) Put(path, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = content
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// load returns the cached content for path, calling fetch at most once
// for concurrent misses on the same path. The shared fetch outlives any
// single caller; a caller whose ctx ends stops waiting for it.
func (c *Cache) load(ctx context.Context, path string, fetch func(context.Context) (string, error)) (string, error) {
	if content, ok := c.Get(path); ok {
		return content, nil
	}
	ch := c.group.DoChan(path, func() (any, error) {
		if content, ok := c.Get(path); ok {
			return content, nil
		}
		content, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return "", err
		}
		c.Put(path, content)
		return content, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}
