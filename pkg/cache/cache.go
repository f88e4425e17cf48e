// Package cache remembers signatures that have already verified, so a
// repeated (public key, message, signature) triple skips the curve work.
package cache

import (
	"encoding/binary"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/blake2b"
)

// DefaultCapacity is the number of entries kept by default
const DefaultCapacity = 10000

// Key identifies a verified triple
type Key [blake2b.Size256]byte

// KeyOf derives the cache key for a triple. Each part is length-prefixed
// so that different splits of the same bytes never collide.
func KeyOf(publicKey, message, signature []byte) Key {
	h, _ := blake2b.New256(nil)

	var prefix [4]byte
	for _, part := range [][]byte{publicKey, message, signature} {
		binary.BigEndian.PutUint32(prefix[:], uint32(len(part)))
		h.Write(prefix[:])
		h.Write(part)
	}

	var k Key
	h.Sum(k[:0])
	return k
}

// Stats reports cache activity
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Size      int
	Capacity  int
}

// Cache is a bounded LRU set of verified triples. It is safe for
// concurrent use. A Cache with capacity <= 0 stores nothing.
type Cache struct {
	capacity int
	entries  *lru.Cache[Key, struct{}]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most capacity entries
func New(capacity int) *Cache {
	c := &Cache{}
	if capacity <= 0 {
		return c
	}

	entries, err := lru.NewWithEvict(capacity, func(Key, struct{}) {
		c.evictions.Add(1)
	})
	if err != nil {
		return c
	}
	c.capacity = capacity
	c.entries = entries
	return c
}

// Enabled reports whether the cache stores anything
func (c *Cache) Enabled() bool {
	return c != nil && c.entries != nil
}

// Contains reports whether the triple is known to verify
func (c *Cache) Contains(publicKey, message, signature []byte) bool {
	if !c.Enabled() {
		return false
	}
	return c.Get(KeyOf(publicKey, message, signature))
}

// Get reports whether k is present and marks it recently used
func (c *Cache) Get(k Key) bool {
	if !c.Enabled() {
		return false
	}
	if _, ok := c.entries.Get(k); !ok {
		c.misses.Add(1)
		return false
	}
	c.hits.Add(1)
	return true
}

// Add records a verified triple
func (c *Cache) Add(publicKey, message, signature []byte) {
	if !c.Enabled() {
		return
	}
	c.Put(KeyOf(publicKey, message, signature))
}

// Put inserts k, evicting the least recently used entry when full
func (c *Cache) Put(k Key) {
	if !c.Enabled() {
		return
	}
	c.entries.Add(k, struct{}{})
}

// Len returns the number of entries
func (c *Cache) Len() int {
	if !c.Enabled() {
		return 0
	}
	return c.entries.Len()
}

// Purge removes all entries. Hit and miss counters are kept.
func (c *Cache) Purge() {
	if !c.Enabled() {
		return
	}
	c.entries.Purge()
}

// Stats returns a snapshot of the counters
func (c *Cache) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
		Capacity:  c.capacity,
	}
}
