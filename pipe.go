package herald

import (
	"github.com/casualjim/herald/internal/chain"
	"github.com/casualjim/herald/pkg/uuidx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Pipe builds the chain of a subscription created with Observable.Pipe.
// S is the type the observable emits, T the type of the payload at this
// point of the chain. Steps run in the order they were added, once per value.
//
// All methods return the builder so calls can be chained; on a nil Pipe
// (the observable was destroyed) they do nothing and return nil.
type Pipe[S, T any] struct {
	sub *Subscription[S]
}

func (p *Pipe[S, T]) push(steps ...chain.Step) {
	p.sub.steps = append(p.sub.steps, steps...)
}

// Filter lets a value through only when every predicate holds. Predicates
// are evaluated in order and evaluation stops at the first one that fails.
func (p *Pipe[S, T]) Filter(preds ...func(T) bool) *Pipe[S, T] {
	if p == nil {
		return nil
	}
	for _, pred := range preds {
		p.push(chain.Gate(predicate(pred)))
	}
	return p
}

// Reject drops a value as soon as one of the predicates holds.
func (p *Pipe[S, T]) Reject(preds ...func(T) bool) *Pipe[S, T] {
	if p == nil {
		return nil
	}
	for _, pred := range preds {
		p.push(chain.Reject(predicate(pred)))
	}
	return p
}

// UnsubscribeIf ends the subscription, without delivering, on the first
// value for which a predicate holds.
func (p *Pipe[S, T]) UnsubscribeIf(preds ...func(T) bool) *Pipe[S, T] {
	if p == nil {
		return nil
	}
	for _, pred := range preds {
		p.push(chain.UnsubscribeIf(predicate(pred)))
	}
	return p
}

// UnsubscribeUnless ends the subscription, without delivering, on the first
// value for which a predicate does not hold.
func (p *Pipe[S, T]) UnsubscribeUnless(preds ...func(T) bool) *Pipe[S, T] {
	if p == nil {
		return nil
	}
	for _, pred := range preds {
		p.push(chain.UnsubscribeUnless(predicate(pred)))
	}
	return p
}

// Once ends the subscription after the first value that makes it through
// the whole chain has been delivered.
func (p *Pipe[S, T]) Once() *Pipe[S, T] {
	if p == nil {
		return nil
	}
	p.push(chain.Once())
	return p
}

// Switch starts a set of cases: the value is delivered when any case
// matches and dropped when none does. A matching case ends the chain, so
// the switch is the last thing in a pipe.
func (p *Pipe[S, T]) Switch() *Switch[S, T] {
	if p == nil {
		return nil
	}
	return &Switch[S, T]{pipe: p, cases: &chain.Cases{}}
}

// Subscribe attaches the listener that receives what comes out of the chain
// and returns the subscription handle.
func (p *Pipe[S, T]) Subscribe(listener func(T), onErr ...ErrorHandler) *Subscription[S] {
	if p == nil || listener == nil {
		return nil
	}
	if h := firstHandler(onErr, nil); h != nil {
		p.sub.onErr = h
	}
	p.sub.listener = p.sub.wrap(typed(listener), onErr)
	return p.sub
}

// SubscribeTo forwards what comes out of the chain to target.
func (p *Pipe[S, T]) SubscribeTo(target Nexter[T], onErr ...ErrorHandler) *Subscription[S] {
	if p == nil || target == nil {
		return nil
	}
	return p.Subscribe(target.Next, onErr...)
}

// Group turns the subscription into a fan-out group: the chain runs once
// per value and its result goes to every listener added to the group.
func (p *Pipe[S, T]) Group() *Group[S, T] {
	if p == nil {
		return nil
	}
	return &Group[S, T]{sub: p.sub}
}

// Subscription returns the handle of the subscription being built.
func (p *Pipe[S, T]) Subscription() *Subscription[S] {
	if p == nil {
		return nil
	}
	return p.sub
}

// Switch collects the cases of Pipe.Switch.
type Switch[S, T any] struct {
	pipe  *Pipe[S, T]
	cases *chain.Cases
}

// Case adds one case.
func (c *Switch[S, T]) Case(pred func(T) bool) *Switch[S, T] {
	if c == nil {
		return nil
	}
	c.pipe.push(c.cases.Case(predicate(pred)))
	return c
}

// Cases adds several cases at once.
func (c *Switch[S, T]) Cases(preds ...func(T) bool) *Switch[S, T] {
	for _, pred := range preds {
		c = c.Case(pred)
	}
	return c
}

// Subscribe attaches the listener, see Pipe.Subscribe.
func (c *Switch[S, T]) Subscribe(listener func(T), onErr ...ErrorHandler) *Subscription[S] {
	if c == nil {
		return nil
	}
	return c.pipe.Subscribe(listener, onErr...)
}

// SubscribeTo forwards to target, see Pipe.SubscribeTo.
func (c *Switch[S, T]) SubscribeTo(target Nexter[T], onErr ...ErrorHandler) *Subscription[S] {
	if c == nil {
		return nil
	}
	return c.pipe.SubscribeTo(target, onErr...)
}

// Group turns the subscription into a fan-out group, see Pipe.Group.
func (c *Switch[S, T]) Group() *Group[S, T] {
	if c == nil {
		return nil
	}
	return c.pipe.Group()
}

// Group is a set of listeners sharing one subscription and one chain
// evaluation per value. Listeners are called in the order they were added;
// a failing listener reports to its own error handler and does not keep
// the others from running.
type Group[S, T any] struct {
	sub *Subscription[S]
}

// Add appends a listener to the group.
func (g *Group[S, T]) Add(fn func(T), onErr ...ErrorHandler) *Group[S, T] {
	g.Attach(fn, onErr...)
	return g
}

// AddTarget appends target's Next to the group.
func (g *Group[S, T]) AddTarget(target Nexter[T], onErr ...ErrorHandler) *Group[S, T] {
	if target == nil {
		return g
	}
	return g.Add(target.Next, onErr...)
}

// Attach appends a listener and returns an id that Remove accepts.
// It returns an empty id when nothing was added.
func (g *Group[S, T]) Attach(fn func(T), onErr ...ErrorHandler) string {
	if g == nil || fn == nil {
		return ""
	}
	if g.sub.group == nil {
		g.sub.group = orderedmap.New[string, *listener]()
	}
	id := uuidx.NewString()
	g.sub.group.Set(id, g.sub.wrap(typed(fn), onErr))
	return id
}

// Remove detaches the listener with the given id. The subscription stays
// registered; once its group is empty and it has no other listener it
// unsubscribes itself on the next value.
func (g *Group[S, T]) Remove(id string) bool {
	if g == nil || g.sub.group == nil {
		return false
	}
	_, ok := g.sub.group.Delete(id)
	return ok
}

// Len returns the number of listeners in the group.
func (g *Group[S, T]) Len() int {
	if g == nil {
		return 0
	}
	return g.sub.groupLen()
}

// Subscription returns the group's subscription handle.
func (g *Group[S, T]) Subscription() *Subscription[S] {
	if g == nil {
		return nil
	}
	return g.sub
}
