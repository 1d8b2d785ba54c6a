/*
NAME
  cache.go

DESCRIPTION
  cache.go implements the per-BlockSpec FIFO descriptor cache of spec.md
  §3/§4.1: a ring buffer of at most K resident (block top-left →
  BlockDescriptor) entries, K derived from a memory budget. The cache is
  exclusively owned and mutated by the descriptor engine that holds it
  (§5); it is cleared on every new image or pyramid level.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package descriptor

import (
	"github.com/ausocean/hogdetect/config"
	"github.com/ausocean/hogdetect/gradient"
)

const bytesPerFloat = 4 // per §3: "descriptor length × 4 bytes per block spec"

type blockKey struct{ X, Y int }

// Cache is a FIFO cache of BlockDescriptors for one BlockSpec, over one
// gradient field at a time.
type Cache struct {
	spec     config.BlockSpec
	capacity int
	field    *gradient.Field

	order []blockKey          // FIFO eviction order, oldest first
	data  map[blockKey]Vector // resident entries

	hits, misses int
}

// CacheCapacity derives K from a megabyte budget and a descriptor length,
// per §4.1: "capacity is derived from a megabyte budget divided by
// (descriptor length × 4 bytes), with minimum 1."
func CacheCapacity(budgetMB float64, descriptorLen int) int {
	if descriptorLen <= 0 {
		return 1
	}
	budgetBytes := budgetMB * 1024 * 1024
	k := int(budgetBytes / float64(descriptorLen*bytesPerFloat))
	if k < 1 {
		k = 1
	}
	return k
}

// NewCache builds a Cache for spec with capacity K.
func NewCache(spec config.BlockSpec, capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		spec:     spec,
		capacity: capacity,
		data:     make(map[blockKey]Vector, capacity),
	}
}

// Reset clears the cache and rebinds it to a new gradient field, per the
// "cleared on every new input image or resampled pyramid level" rule.
func (c *Cache) Reset(field *gradient.Field) {
	c.field = field
	c.order = c.order[:0]
	c.data = make(map[blockKey]Vector, c.capacity)
	c.hits, c.misses = 0, 0
}

// Get returns the BlockDescriptor for the block at (x0, y0), computing
// and inserting it on a cache miss. Repeated calls at the same key within
// one field return the exact same stored vector (cache-consistency
// invariant of §8), never a freshly recomputed one.
func (c *Cache) Get(x0, y0 int) (Vector, error) {
	key := blockKey{x0, y0}
	if v, ok := c.data[key]; ok {
		c.hits++
		return v, nil
	}
	c.misses++

	v, err := Compute(c.field, c.spec, x0, y0)
	if err != nil {
		return nil, err
	}
	c.insert(key, v)
	return v, nil
}

// insert adds key/v to the cache, evicting the oldest entry first if the
// FIFO is already at capacity.
func (c *Cache) insert(key blockKey, v Vector) {
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.data, oldest)
	}
	c.order = append(c.order, key)
	c.data[key] = v
}

// Stats returns cumulative hit/miss counts since the last Reset, for
// diagnostic logging.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }
