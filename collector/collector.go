package collector

import (
	"fmt"
	"reflect"
	"slices"
)

// Unsubscriber is the part of a subscription handle a collector needs.
// *herald.Subscription satisfies it.
//
// Collectors find handles by comparing them, so the dynamic type must be
// comparable. Pointer handles always are. Collect panics on a handle whose
// type is not (for example a struct value holding a slice), and Unsubscribe
// only forwards the call for one.
type Unsubscriber interface {
	Unsubscribe()
}

func isComparable(sub Unsubscriber) bool {
	return reflect.TypeOf(sub).Comparable()
}

func mustBeComparable(sub Unsubscriber) {
	if !isComparable(sub) {
		panic(fmt.Sprintf("collector: handle of type %T is not comparable", sub))
	}
}

// Collector keeps subscriptions so they can be torn down together.
// Removing one entry swaps it with the last entry, so the order of the
// remaining entries is not preserved.
//
// After Destroy every method is a no-op. A Collector is not safe for
// concurrent use.
type Collector struct {
	entries   []Unsubscriber
	destroyed bool
}

// New creates an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Collect adds subscriptions. Nil entries are skipped.
func (c *Collector) Collect(subs ...Unsubscriber) {
	if c.destroyed {
		return
	}
	for _, sub := range subs {
		if sub == nil {
			continue
		}
		mustBeComparable(sub)
		c.entries = append(c.entries, sub)
	}
}

// Unsubscribe unsubscribes sub and forgets it.
func (c *Collector) Unsubscribe(sub Unsubscriber) {
	if c.destroyed || sub == nil {
		return
	}
	sub.Unsubscribe()
	if !isComparable(sub) {
		return
	}
	idx := slices.Index(c.entries, sub)
	if idx < 0 {
		return
	}
	last := len(c.entries) - 1
	c.entries[idx] = c.entries[last]
	c.entries[last] = nil
	c.entries = c.entries[:last]
}

// UnsubscribeAll unsubscribes every collected subscription, last in first out.
func (c *Collector) UnsubscribeAll() {
	if c.destroyed {
		return
	}
	for len(c.entries) > 0 {
		last := len(c.entries) - 1
		sub := c.entries[last]
		c.entries[last] = nil
		c.entries = c.entries[:last]
		sub.Unsubscribe()
	}
}

// Size returns the number of collected subscriptions.
func (c *Collector) Size() int {
	return len(c.entries)
}

// Destroy unsubscribes everything and retires the collector.
func (c *Collector) Destroy() {
	if c.destroyed {
		return
	}
	c.UnsubscribeAll()
	c.entries = nil
	c.destroyed = true
}

// IsDestroyed reports whether Destroy was called.
func (c *Collector) IsDestroyed() bool {
	return c.destroyed
}
