package cache

import (
	"errors"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/gg-lottie/internal/logging"
	"github.com/gogpu/gg-lottie/model"
)

// ErrNotFound is returned by CompositionCache.Get for unknown keys.
var ErrNotFound = errors.New("cache: composition not found")

// CompositionCache stores parsed compositions by key. Concurrent loads of
// the same key share one parse. The zero value is not usable; use
// NewCompositionCache.
type CompositionCache struct {
	policy Policy[*model.Composition]
	group  singleflight.Group
	opts   []model.Option
}

// NewCompositionCache creates a cache backed by policy. A nil policy keeps
// every composition. opts are passed to every parse.
func NewCompositionCache(policy Policy[*model.Composition], opts ...model.Option) *CompositionCache {
	if policy == nil {
		policy = NewStrong[string, *model.Composition]()
	}
	return &CompositionCache{policy: policy, opts: opts}
}

// Get returns the composition stored for key.
func (c *CompositionCache) Get(key string) (*model.Composition, error) {
	if comp, ok := c.policy.Get(key); ok {
		return comp, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
}

// Put stores comp under key, replacing any previous entry.
func (c *CompositionCache) Put(key string, comp *model.Composition) {
	c.policy.Set(key, comp)
}

// Load returns the composition for key, parsing data on a miss. Failed
// parses are not cached.
func (c *CompositionCache) Load(key string, data []byte) (*model.Composition, error) {
	return c.load(key, func() (*model.Composition, error) {
		return model.Parse(data, c.opts...)
	})
}

// LoadFile returns the composition for the file at path, keyed by its
// cleaned path.
func (c *CompositionCache) LoadFile(path string) (*model.Composition, error) {
	key := filepath.Clean(path)
	return c.load(key, func() (*model.Composition, error) {
		return model.ParseFile(key, c.opts...)
	})
}

func (c *CompositionCache) load(key string, parse func() (*model.Composition, error)) (*model.Composition, error) {
	if comp, ok := c.policy.Get(key); ok {
		logging.Logger().Debug("lottie: composition cache hit", "key", key)
		return comp, nil
	}
	v, err, shared := c.group.Do(key, func() (any, error) {
		if comp, ok := c.policy.Get(key); ok {
			return comp, nil
		}
		comp, err := parse()
		if err != nil {
			return nil, err
		}
		c.policy.Set(key, comp)
		return comp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load composition %q: %w", key, err)
	}
	logging.Logger().Debug("lottie: composition cache miss", "key", key, "shared", shared)
	return v.(*model.Composition), nil
}

// Remove drops key and reports whether it was cached.
func (c *CompositionCache) Remove(key string) bool {
	c.group.Forget(key)
	return c.policy.Delete(key)
}

// Clear drops every composition.
func (c *CompositionCache) Clear() {
	c.policy.Clear()
}

// Len returns the number of cached compositions.
func (c *CompositionCache) Len() int {
	return c.policy.Len()
}

// Stats returns the statistics of the underlying policy.
func (c *CompositionCache) Stats() Stats {
	return c.policy.Stats()
}
