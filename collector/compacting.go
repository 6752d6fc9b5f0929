package collector

import (
	"fmt"

	"github.com/fogfish/opts"
)

const defaultThreshold = 1000

// Compacting is a Collector for very large registries. A removed entry
// leaves a tombstone in its slot and the slice is only rebuilt once the
// number of tombstones reaches the threshold, so frequent single removals
// cost O(1) each. Entries keep their insertion order.
//
// Each subscription is held at most once. A Compacting collector is not
// safe for concurrent use.
type Compacting struct {
	entries   []Unsubscriber
	index     map[Unsubscriber]int
	removed   int
	threshold int
	destroyed bool
}

// WithThreshold sets how many tombstones trigger a rebuild.
var WithThreshold = opts.ForName[Compacting, int]("threshold")

// NewCompacting creates an empty Compacting collector.
func NewCompacting(options ...opts.Option[Compacting]) *Compacting {
	c := &Compacting{
		index:     make(map[Unsubscriber]int),
		threshold: defaultThreshold,
	}
	if err := opts.Apply(c, options); err != nil {
		panic(err)
	}
	if c.threshold <= 0 {
		panic(fmt.Sprintf("collector: threshold must be positive, got %d", c.threshold))
	}
	return c
}

// Collect adds subscriptions. Nil entries and entries already held are skipped.
func (c *Compacting) Collect(subs ...Unsubscriber) {
	if c.destroyed {
		return
	}
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		mustBeComparable(sub)
		if _, ok := c.index[sub]; ok {
			continue
		}
		c.index[sub] = len(c.entries)
		c.entries = append(c.entries, sub)
	}
}

// Unsubscribe unsubscribes sub and tombstones its slot.
func (c *Compacting) Unsubscribe(sub Unsubscriber) {
	if c.destroyed || sub == nil {
		return
	}
	sub.Unsubscribe()
	if !isComparable(sub) {
		return
	}
	idx, ok := c.index[sub]
	if !ok {
		return
	}
	delete(c.index, sub)
	c.entries[idx] = nil
	c.removed++
	if c.removed >= c.threshold {
		c.Compact()
	}
}

// Compact drops every tombstone now.
func (c *Compacting) Compact() {
	if c.removed == 0 {
		return
	}
	live := c.entries[:0]
	for _, sub := range c.entries {
		if sub == nil {
			continue
		}
		c.index[sub] = len(live)
		live = append(live, sub)
	}
	clear(c.entries[len(live):])
	c.entries = live
	c.removed = 0
}

// UnsubscribeAll unsubscribes every collected subscription, last in first out.
func (c *Compacting) UnsubscribeAll() {
	if c.destroyed {
		return
	}
	for len(c.entries) > 0 {
		last := len(c.entries) - 1
		sub := c.entries[last]
		c.entries[last] = nil
		c.entries = c.entries[:last]
		if sub == nil {
			continue
		}
		delete(c.index, sub)
		sub.Unsubscribe()
	}
	c.removed = 0
}

// Size returns the number of live subscriptions.
func (c *Compacting) Size() int {
	return len(c.entries) - c.removed
}

// Tombstones returns the number of removed slots waiting for compaction.
func (c *Compacting) Tombstones() int {
	return c.removed
}

// Destroy unsubscribes everything and retires the collector.
func (c *Compacting) Destroy() {
	if c.destroyed {
		return
	}
	c.UnsubscribeAll()
	c.entries = nil
	c.index = nil
	c.destroyed = true
}

// IsDestroyed reports whether Destroy was called.
func (c *Compacting) IsDestroyed() bool {
	return c.destroyed
}
