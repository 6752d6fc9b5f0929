package herald

import (
	"iter"
	"log/slog"
	"slices"
	"weak"

	"github.com/casualjim/herald/pkg/slogx"
	"github.com/fogfish/opts"
)

// Nexter is anything that accepts values through Next. Every Observable is a
// Nexter, so one observable can subscribe another.
type Nexter[T any] interface {
	Next(T)
}

var _ Nexter[int] = (*Observable[int])(nil)

// Observable holds a current value and broadcasts every new value to its
// subscriptions, synchronously and in subscription order.
//
// An Observable is not safe for concurrent use. Listeners may subscribe,
// unsubscribe, destroy the observable or call Next again while a value is
// being delivered; removals and destruction requested during delivery take
// effect once the outermost Next returns.
type Observable[T any] struct {
	name        string
	value       T
	subscribers []*Subscription[T]
	pending     []*Subscription[T]
	filter      *Filter[T]

	disabled       bool
	destroyed      bool
	destroyPending bool
	emitting       int

	// sorter is set by Ordered; order key changes call it.
	sorter     func()
	descending bool

	logger  *slog.Logger
	onErr   ErrorHandler
	metrics *Metrics
}

// New creates an Observable holding initial.
func New[T any](initial T, options ...opts.Option[Observable[T]]) *Observable[T] {
	o := &Observable[T]{
		name:   "observable",
		value:  initial,
		logger: slog.Default(),
	}
	if err := opts.Apply(o, options); err != nil {
		panic(err)
	}
	if o.onErr == nil {
		o.onErr = LoggingErrorHandler(o.logger.With(slogx.Observable(o.name)))
	}
	return o
}

// Name returns the name given with WithName.
func (o *Observable[T]) Name() string {
	return o.name
}

// Next stores value and delivers it to every subscription.
//
// Nothing happens when the observable is disabled or destroyed, or when an
// attached filter rejects the value; in those cases the current value is
// left untouched.
func (o *Observable[T]) Next(value T) {
	if o.destroyed || o.disabled {
		return
	}
	if o.filter != nil && !o.filter.allows(value) {
		o.metrics.rejected(o.name)
		return
	}
	o.value = value
	o.metrics.emitted(o.name)
	o.broadcast(value)
}

func (o *Observable[T]) broadcast(value T) {
	o.emitting++
	defer func() {
		o.emitting--
		if o.emitting == 0 {
			o.settle()
		}
	}()
	// The length is re-read on every iteration: subscriptions added by a
	// listener receive the value in this same pass.
	for i := 0; i < len(o.subscribers); i++ {
		o.subscribers[i].Send(value)
	}
}

// settle applies removals and destruction that were requested during delivery.
func (o *Observable[T]) settle() {
	if o.destroyPending {
		o.finalize()
		return
	}
	if len(o.pending) == 0 {
		return
	}
	for _, sub := range o.pending {
		o.remove(sub)
	}
	clear(o.pending)
	o.pending = o.pending[:0]
	o.metrics.size(o.name, len(o.subscribers))
}

// Stream calls Next for each value in order. It stops as soon as the
// observable is disabled or destroyed, even when a listener does so midway.
func (o *Observable[T]) Stream(values ...T) {
	o.StreamSeq(slices.Values(values))
}

// StreamSeq is Stream over an iterator.
func (o *Observable[T]) StreamSeq(values iter.Seq[T]) {
	for v := range values {
		if o.destroyed || o.disabled {
			return
		}
		o.Next(v)
	}
}

// Subscribe registers listener. It returns nil when the observable is
// destroyed or listener is nil. The first error handler given receives
// the listener's failures; without one the observable's default is used.
func (o *Observable[T]) Subscribe(listener func(T), onErr ...ErrorHandler) *Subscription[T] {
	if o.destroyed || listener == nil {
		return nil
	}
	sub := o.newSubscription(onErr)
	sub.listener = sub.wrap(typed(listener), onErr)
	o.add(sub)
	return sub
}

// SubscribeTo forwards every value to target, typically another Observable.
func (o *Observable[T]) SubscribeTo(target Nexter[T], onErr ...ErrorHandler) *Subscription[T] {
	if target == nil {
		return nil
	}
	return o.Subscribe(target.Next, onErr...)
}

// SubscribeAll registers several listeners behind one subscription. They are
// called in order and a failure in one does not keep the others from running.
// Nil listeners are skipped; it returns nil when none is left.
func (o *Observable[T]) SubscribeAll(listeners []func(T), onErr ...ErrorHandler) *Subscription[T] {
	if o.destroyed {
		return nil
	}
	listeners = slices.DeleteFunc(slices.Clone(listeners), func(fn func(T)) bool { return fn == nil })
	if len(listeners) == 0 {
		return nil
	}
	sub := o.newSubscription(onErr)
	g := &Group[T, T]{sub: sub}
	for _, fn := range listeners {
		g.Add(fn, onErr...)
	}
	o.add(sub)
	return sub
}

// Pipe registers a subscription whose values go through a chain of steps
// before reaching its listener. The subscription counts towards Size right
// away; finish the chain with Subscribe or Group. A pipe that never gets a
// listener unsubscribes itself on the first value it receives.
// It returns nil when the observable is destroyed.
func (o *Observable[T]) Pipe() *Pipe[T, T] {
	if o.destroyed {
		return nil
	}
	sub := o.newSubscription(nil)
	o.add(sub)
	return &Pipe[T, T]{sub: sub}
}

func (o *Observable[T]) newSubscription(onErr []ErrorHandler) *Subscription[T] {
	return newSubscription(weak.Make(o), firstHandler(onErr, o.onErr))
}

func (o *Observable[T]) add(sub *Subscription[T]) {
	o.subscribers = append(o.subscribers, sub)
	o.metrics.size(o.name, len(o.subscribers))
}

func (o *Observable[T]) remove(sub *Subscription[T]) {
	if idx := slices.Index(o.subscribers, sub); idx >= 0 {
		o.subscribers = slices.Delete(o.subscribers, idx, idx+1)
		sub.detach()
	}
}

// Unsubscribe removes sub. During delivery the removal is queued and applied
// when the current Next returns, so every subscription is visited exactly once.
func (o *Observable[T]) Unsubscribe(sub *Subscription[T]) {
	if o.destroyed || sub == nil {
		return
	}
	if o.emitting > 0 {
		o.pending = append(o.pending, sub)
		return
	}
	o.remove(sub)
	o.metrics.size(o.name, len(o.subscribers))
}

// UnsubscribeAll removes every subscription. During delivery the current
// value still reaches the subscriptions that have not been visited yet.
func (o *Observable[T]) UnsubscribeAll() {
	if o.destroyed {
		return
	}
	if o.emitting > 0 {
		o.pending = append(o.pending, o.subscribers...)
		return
	}
	for _, sub := range o.subscribers {
		sub.detach()
	}
	clear(o.subscribers)
	o.subscribers = o.subscribers[:0]
	o.metrics.size(o.name, 0)
}

// Destroy ends the observable for good: Next, Subscribe and Pipe stop
// working immediately. The value and the subscriptions are dropped right
// away, or once the current delivery has finished when called from a listener.
func (o *Observable[T]) Destroy() {
	if o.destroyed {
		return
	}
	o.destroyed = true
	if o.emitting > 0 {
		o.destroyPending = true
		return
	}
	o.finalize()
}

func (o *Observable[T]) finalize() {
	var zero T
	o.value = zero
	for _, sub := range o.subscribers {
		sub.detach()
	}
	o.subscribers = nil
	o.pending = nil
	o.filter = nil
	o.destroyPending = false
	o.metrics.size(o.name, 0)
}

// IsDestroyed reports whether Destroy was called.
func (o *Observable[T]) IsDestroyed() bool {
	return o.destroyed
}

// Disable makes Next a no-op until Enable is called. Subscriptions are kept.
func (o *Observable[T]) Disable() {
	o.disabled = true
}

// Enable undoes Disable.
func (o *Observable[T]) Enable() {
	o.disabled = false
}

// IsEnabled reports whether Next currently delivers.
func (o *Observable[T]) IsEnabled() bool {
	return !o.disabled
}

// Size returns the number of registered subscriptions, paused ones included.
func (o *Observable[T]) Size() int {
	return len(o.subscribers)
}

// Value returns the current value. The boolean is false once the observable
// is destroyed.
func (o *Observable[T]) Value() (T, bool) {
	if o.destroyed {
		var zero T
		return zero, false
	}
	return o.value, true
}

// AddFilter attaches the observable-level filter, creating it on first use,
// and returns it for configuration. Filter predicates that panic reject the
// value and report to onErr. It returns nil when the observable is destroyed.
func (o *Observable[T]) AddFilter(onErr ...ErrorHandler) *Filter[T] {
	if o.destroyed {
		return nil
	}
	if o.filter == nil {
		o.filter = &Filter[T]{onErr: firstHandler(onErr, o.onErr)}
	}
	return o.filter
}

func (o *Observable[T]) resort() {
	if o.sorter != nil {
		o.sorter()
	}
}
