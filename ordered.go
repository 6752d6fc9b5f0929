package herald

import (
	"slices"

	"github.com/fogfish/opts"
)

// Ordered is an Observable that delivers to its subscriptions sorted by
// their order key (Subscription.SetOrder), ascending unless configured with
// Descending. Setting a key resorts the subscriptions at once, so a listener
// can re-rank subscriptions that have not been visited yet in the current
// delivery. Subscriptions sharing a key have no guaranteed relative order.
// Subscriptions without a key are delivered after all keyed ones, in either
// direction.
type Ordered[T any] struct {
	*Observable[T]
}

// NewOrdered creates an Ordered observable holding initial.
func NewOrdered[T any](initial T, options ...opts.Option[Observable[T]]) *Ordered[T] {
	o := &Ordered[T]{Observable: New(initial, options...)}
	o.sorter = func() { o.SortByOrder() }
	return o
}

// SortByOrder sorts the subscriptions with the active direction.
// It returns false when the observable is destroyed.
func (o *Ordered[T]) SortByOrder() bool {
	if o.destroyed {
		return false
	}
	slices.SortFunc(o.subscribers, func(a, b *Subscription[T]) int {
		return compareOrder(a, b, o.descending)
	})
	return true
}

// SortAscending delivers from the lowest order key to the highest and resorts.
func (o *Ordered[T]) SortAscending() bool {
	o.descending = false
	return o.SortByOrder()
}

// SortDescending delivers from the highest order key to the lowest and resorts.
func (o *Ordered[T]) SortDescending() bool {
	o.descending = true
	return o.SortByOrder()
}
