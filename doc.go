/*
Package herald provides typed, in-process value broadcasting: an Observable
holds a current value and synchronously notifies its subscriptions each time
a new value is pushed with Next.

The package is built around a handful of types:

  - Observable: the publish point. It stores the latest value, keeps its
    subscriptions in delivery order and can be disabled, re-enabled and
    destroyed.
  - Subscription: the handle returned when registering a listener. It can be
    paused, resumed, re-ranked and unsubscribed, and stays safe to use after
    its observable is gone.
  - Pipe: a builder that attaches a chain of steps (filters, switches,
    transforms, unsubscribe conditions) to a subscription. The chain runs once
    per value, also when the result fans out to a Group of listeners.
  - Filter: an observable-level chain deciding whether Next proceeds at all.
  - Ordered: an Observable that delivers by subscription order key.

# Basic Usage

	prices := herald.New(0.0)
	sub := prices.Subscribe(func(p float64) {
	    fmt.Println("price", p)
	})
	defer sub.Unsubscribe()

	prices.Next(9.99)

# Chains

A pipe evaluates its steps in order. A step that does not let the value
through drops it silently; an unsubscribe step ends the subscription instead
of delivering. Type-changing steps are package functions:

	herald.Map(
	    prices.Pipe().Filter(func(p float64) bool { return p > 0 }),
	    func(p float64) int { return int(p * 100) },
	).Subscribe(storeCents)

	prices.Pipe().
	    Switch().
	    Case(func(p float64) bool { return p < 1 }).
	    Case(func(p float64) bool { return p > 1000 }).
	    Group().
	    Add(alert).
	    Add(audit)

# Delivery semantics

Delivery is synchronous and an Observable is not safe for concurrent use.
Listeners may unsubscribe themselves or others, subscribe new listeners, call
Next again or destroy the observable while a value is being delivered. Every
subscription registered when Next starts is visited exactly once; removals and
destruction requested meanwhile take effect when the outermost Next returns.

A listener or chain step that panics does not stop the delivery: the panic is
recovered and handed to that subscription's ErrorHandler, which logs through
slog unless configured otherwise. Calls on a destroyed observable or on a
stale subscription are silently ignored.

# Related packages

The collector package tears groups of subscriptions down together and the
broker package keeps observables by topic name.
*/
package herald
