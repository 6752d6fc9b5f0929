package herald

import (
	"cmp"
	"weak"

	"github.com/casualjim/herald/internal/chain"
	"github.com/casualjim/herald/pkg/uuidx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type listener struct {
	fn    func(any)
	onErr ErrorHandler
}

// Subscription is the handle of one registration on an Observable.
//
// The handle does not keep its observable alive. Every method is safe to call
// on a nil handle, on a handle that was unsubscribed and on a handle whose
// observable is gone; those calls do nothing.
type Subscription[S any] struct {
	id       string
	owner    weak.Pointer[Observable[S]]
	listener *listener
	group    *orderedmap.OrderedMap[string, *listener]
	steps    []chain.Step
	onErr    ErrorHandler

	paused   bool
	order    int
	hasOrder bool
}

func newSubscription[S any](owner weak.Pointer[Observable[S]], onErr ErrorHandler) *Subscription[S] {
	return &Subscription[S]{
		id:    uuidx.NewString(),
		owner: owner,
		onErr: onErr,
	}
}

// ID returns the subscription's unique id.
func (s *Subscription[S]) ID() string {
	if s == nil {
		return ""
	}
	return s.id
}

// Send delivers value to this subscription's listeners. The owning
// observable calls it for every emission.
//
// A subscription without any listener is defunct and unsubscribes itself.
// Paused subscriptions and subscriptions whose observable is gone ignore
// the value. When a chain is attached it runs once per value, however many
// listeners the subscription fans out to.
func (s *Subscription[S]) Send(value S) {
	if s == nil {
		return
	}
	if s.listener == nil && s.groupLen() == 0 {
		s.Unsubscribe()
		return
	}
	owner := s.owner.Value()
	if owner == nil || s.paused {
		return
	}
	if len(s.steps) == 0 {
		s.deliver(owner, value)
		return
	}

	flow := chain.New(value)
	outcome, err := chain.Run(s.steps, &flow)
	if err != nil {
		owner.metrics.failed(owner.name)
		s.onErr(value, err)
		return
	}
	switch outcome {
	case chain.Unsubscribe:
		s.Unsubscribe()
	case chain.Deliver:
		s.deliver(owner, flow.Payload)
		if flow.Once {
			s.Unsubscribe()
		}
	}
}

func (s *Subscription[S]) deliver(owner *Observable[S], payload any) {
	primary, group := s.listener, s.group
	if primary != nil {
		invoke(owner, primary, payload)
	}
	if group == nil || group.Len() == 0 {
		return
	}
	// Members may add or remove members while being called; everyone present
	// now gets the payload once.
	members := make([]*listener, 0, group.Len())
	for pair := group.Oldest(); pair != nil; pair = pair.Next() {
		members = append(members, pair.Value)
	}
	for _, l := range members {
		invoke(owner, l, payload)
	}
}

func invoke[S any](owner *Observable[S], l *listener, payload any) {
	err := chain.Call(func() error {
		l.fn(payload)
		return nil
	})
	if err != nil {
		owner.metrics.failed(owner.name)
		l.onErr(payload, err)
		return
	}
	owner.metrics.delivered(owner.name)
}

func (s *Subscription[S]) groupLen() int {
	if s.group == nil {
		return 0
	}
	return s.group.Len()
}

// wrap pairs fn with its error handler, falling back to the subscription's.
func (s *Subscription[S]) wrap(fn func(any), onErr []ErrorHandler) *listener {
	return &listener{fn: fn, onErr: firstHandler(onErr, s.onErr)}
}

// typed adapts a typed listener to the untyped payload carried by a chain.
func typed[T any](fn func(T)) func(any) {
	return func(v any) {
		t, _ := v.(T)
		fn(t)
	}
}

// predicate adapts a typed predicate the same way.
func predicate[T any](pred func(T) bool) func(any) bool {
	return func(v any) bool {
		t, _ := v.(T)
		return pred(t)
	}
}

// Unsubscribe detaches the subscription from its observable. It is idempotent.
func (s *Subscription[S]) Unsubscribe() {
	if s == nil {
		return
	}
	if owner := s.owner.Value(); owner != nil {
		owner.Unsubscribe(s)
	}
	s.owner = weak.Pointer[Observable[S]]{}
	s.listener = nil
	s.group = nil
	s.steps = nil
}

// detach forgets the owner once the observable has dropped the subscription.
func (s *Subscription[S]) detach() {
	s.owner = weak.Pointer[Observable[S]]{}
}

// IsSubscribed reports whether the subscription is still attached to a live observable.
func (s *Subscription[S]) IsSubscribed() bool {
	if s == nil {
		return false
	}
	owner := s.owner.Value()
	return owner != nil && !owner.destroyed
}

// Pause stops deliveries to this subscription without unregistering it.
func (s *Subscription[S]) Pause() {
	if s != nil {
		s.paused = true
	}
}

// Resume undoes Pause.
func (s *Subscription[S]) Resume() {
	if s != nil {
		s.paused = false
	}
}

// IsPaused reports whether the subscription is paused.
func (s *Subscription[S]) IsPaused() bool {
	return s != nil && s.paused
}

// Order returns the subscription's order key. The boolean is false when no
// key is set.
func (s *Subscription[S]) Order() (int, bool) {
	if s == nil || !s.hasOrder {
		return 0, false
	}
	return s.order, true
}

// SetOrder sets the order key. On an Ordered observable the subscribers are
// resorted immediately, even in the middle of a delivery. When the
// observable is gone or destroyed the key is cleared instead.
func (s *Subscription[S]) SetOrder(order int) {
	if s == nil {
		return
	}
	owner := s.owner.Value()
	if owner == nil || owner.destroyed {
		s.order, s.hasOrder = 0, false
		return
	}
	s.order, s.hasOrder = order, true
	owner.resort()
}

// compareOrder ranks subscriptions by order key. Subscriptions without a key
// come after keyed ones in either direction, so appending a new subscription
// keeps the list sorted.
func compareOrder[S any](a, b *Subscription[S], descending bool) int {
	switch {
	case a.hasOrder && !b.hasOrder:
		return -1
	case !a.hasOrder && b.hasOrder:
		return 1
	case !a.hasOrder:
		return 0
	case descending:
		return cmp.Compare(b.order, a.order)
	default:
		return cmp.Compare(a.order, b.order)
	}
}
