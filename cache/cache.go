// Package cache holds large objects that are expensive to build and never
// change once built, so that every search can share one copy. Board
// contexts are the main user.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type LoadFunc[K comparable, V any] func(key K) (V, error)

type Cache[K comparable, V any] struct {
	sync.Mutex
	objects  map[K]V
	loadFunc LoadFunc[K, V]
}

func New[K comparable, V any](loadFunc func(K) (V, error)) *Cache[K, V] {
	return &Cache[K, V]{objects: make(map[K]V), loadFunc: loadFunc}
}

// Get returns the object for key, loading it on first use. Failed loads are
// not cached.
func (c *Cache[K, V]) Get(key K) (V, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Interface("key", key).Msg("getting obj from cache")
		return obj, nil
	}
	log.Debug().Interface("key", key).Msg("loading into cache")
	obj, err := c.loadFunc(key)
	if err != nil {
		var zero V
		return zero, err
	}
	c.objects[key] = obj
	return obj, nil
}

func (c *Cache[K, V]) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.objects)
}
