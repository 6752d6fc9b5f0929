package broker

import (
	"slices"
	"sync"

	"github.com/alphadose/haxmap"
	"github.com/casualjim/herald"
	"github.com/fogfish/opts"
)

// Broker hands out named observables of one value type. Topics are created
// on first use with the broker's options and the topic name as the
// observable name.
//
// The registry itself may be shared between goroutines; the observables it
// returns are not safe for concurrent use.
type Broker[T any] struct {
	topics  *haxmap.Map[string, *herald.Observable[T]]
	options []opts.Option[herald.Observable[T]]
	// mu serializes replacing and removing topics.
	mu sync.Mutex
}

// Local creates an in-process broker. options are applied to every topic.
func Local[T any](options ...opts.Option[herald.Observable[T]]) *Broker[T] {
	return &Broker[T]{
		topics:  haxmap.New[string, *herald.Observable[T]](),
		options: options,
	}
}

// Topic returns the observable registered under name, creating it when it
// does not exist yet or when the previous one was destroyed.
func (b *Broker[T]) Topic(name string) *herald.Observable[T] {
	topic, _ := b.topics.GetOrCompute(name, func() *herald.Observable[T] {
		return b.newTopic(name)
	})
	if !topic.IsDestroyed() {
		return topic
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if current, ok := b.topics.Get(name); ok && !current.IsDestroyed() {
		return current
	}
	topic = b.newTopic(name)
	b.topics.Set(name, topic)
	return topic
}

func (b *Broker[T]) newTopic(name string) *herald.Observable[T] {
	var zero T
	options := append(slices.Clone(b.options), herald.WithName[T](name))
	return herald.New(zero, options...)
}

// Lookup returns the live observable registered under name, if any.
func (b *Broker[T]) Lookup(name string) (*herald.Observable[T], bool) {
	topic, ok := b.topics.Get(name)
	if !ok || topic.IsDestroyed() {
		return nil, false
	}
	return topic, true
}

// Remove destroys the topic registered under name and forgets it.
// It reports whether a topic was registered.
func (b *Broker[T]) Remove(name string) bool {
	b.mu.Lock()
	topic, ok := b.topics.Get(name)
	if ok {
		b.topics.Del(name)
	}
	b.mu.Unlock()
	if !ok {
		return false
	}
	topic.Destroy()
	return true
}

// Names returns the registered topic names, sorted.
func (b *Broker[T]) Names() []string {
	names := make([]string, 0, b.topics.Len())
	b.topics.ForEach(func(name string, _ *herald.Observable[T]) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// Len returns the number of registered topics.
func (b *Broker[T]) Len() int {
	return int(b.topics.Len())
}

// Destroy destroys every topic and empties the broker.
func (b *Broker[T]) Destroy() {
	for _, name := range b.Names() {
		b.Remove(name)
	}
}
