// Package memo is a keyed memoizer for expensive deterministic
// functions whose answer is constant per exact input, e.g. building a
// projection transformer between two coordinate reference systems.
// It complements the containment-keyed cache in the root package.
//
// Keys are serialized by a pluggable KeyCodec (deterministic CBOR by
// default) and hashed into the backing ristretto store. Admission is
// probabilistic under pressure: a rejected install simply recomputes
// on a later call, which is sound for deterministic functions.
package memo

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto"

	"github.com/unkn0wn-root/geocache/internal/keyhash"
)

// DefaultMaxSize matches the conventional transformer-cache bound.
const DefaultMaxSize = 64

// Options tune a memo Cache. All fields have defaults.
type Options struct {
	MaxSize  int64    // max memoized values; 0 => DefaultMaxSize
	KeyCodec KeyCodec // nil => deterministic CBOR
}

// Cache memoizes compute results per key.
type Cache[K comparable, V any] struct {
	store *ristretto.Cache
	codec KeyCodec
}

// New builds a memo cache.
func New[K comparable, V any](opts Options) (*Cache[K, V], error) {
	if opts.MaxSize < 0 {
		return nil, errors.New("memo: max size must be positive")
	}
	maxSize := opts.MaxSize
	if maxSize == 0 {
		maxSize = DefaultMaxSize
	}
	codec := opts.KeyCodec
	if codec == nil {
		c, err := NewCBORKey()
		if err != nil {
			return nil, err
		}
		codec = c
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxSize * 10,
		MaxCost:     maxSize,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache[K, V]{store: store, codec: codec}, nil
}

// MustNew is New that panics on error. Handy for package-level caches.
func MustNew[K comparable, V any](opts Options) *Cache[K, V] {
	c, err := New[K, V](opts)
	if err != nil {
		panic(err)
	}
	return c
}

// Do returns the memoized value for key, invoking compute on a miss
// and installing its result. Compute errors propagate and nothing is
// installed.
func (c *Cache[K, V]) Do(key K, compute func() (V, error)) (V, error) {
	var zero V
	sk, err := c.storageKey(key)
	if err != nil {
		return zero, err
	}

	if raw, ok := c.store.Get(sk); ok {
		if v, ok := raw.(V); ok {
			return v, nil
		}
		// self-heal: drop unexpected entry shape
		c.store.Del(sk)
	}

	v, err := compute()
	if err != nil {
		return zero, err
	}
	c.store.Set(sk, v, 1)
	// ristretto applies Sets asynchronously; wait so the next Do observes it
	c.store.Wait()
	return v, nil
}

// Close releases the backing store.
func (c *Cache[K, V]) Close() {
	c.store.Wait()
	c.store.Close()
}

func (c *Cache[K, V]) storageKey(key K) (string, error) {
	b, err := c.codec.EncodeKey(key)
	if err != nil {
		return "", fmt.Errorf("memo: encode key: %w", err)
	}
	return keyhash.Key("memo", b), nil
}
