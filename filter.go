package herald

import "github.com/casualjim/herald/internal/chain"

// Filter is the observable-level chain created by Observable.AddFilter.
// It runs once per Next, before any subscription sees the value; a rejected
// value is neither stored nor delivered. Filter steps never change the value.
type Filter[T any] struct {
	steps []chain.Step
	onErr ErrorHandler
}

// Allow lets a value through only when every predicate holds.
func (f *Filter[T]) Allow(preds ...func(T) bool) *Filter[T] {
	if f == nil {
		return nil
	}
	for _, pred := range preds {
		f.steps = append(f.steps, chain.Gate(predicate(pred)))
	}
	return f
}

// Deny rejects a value as soon as one of the predicates holds.
func (f *Filter[T]) Deny(preds ...func(T) bool) *Filter[T] {
	if f == nil {
		return nil
	}
	for _, pred := range preds {
		f.steps = append(f.steps, chain.Reject(predicate(pred)))
	}
	return f
}

// Switch starts a set of cases: a value passes when any case matches.
func (f *Filter[T]) Switch() *FilterSwitch[T] {
	if f == nil {
		return nil
	}
	return &FilterSwitch[T]{filter: f, cases: &chain.Cases{}}
}

// Len returns the number of steps in the filter.
func (f *Filter[T]) Len() int {
	if f == nil {
		return 0
	}
	return len(f.steps)
}

func (f *Filter[T]) allows(value T) bool {
	if len(f.steps) == 0 {
		return true
	}
	flow := chain.New(value)
	outcome, err := chain.Run(f.steps, &flow)
	if err != nil {
		f.onErr(value, err)
		return false
	}
	return outcome == chain.Deliver
}

// FilterSwitch collects the cases of Filter.Switch.
type FilterSwitch[T any] struct {
	filter *Filter[T]
	cases  *chain.Cases
}

// Case adds one case.
func (c *FilterSwitch[T]) Case(pred func(T) bool) *FilterSwitch[T] {
	if c == nil {
		return nil
	}
	c.filter.steps = append(c.filter.steps, c.cases.Case(predicate(pred)))
	return c
}

// Cases adds several cases at once.
func (c *FilterSwitch[T]) Cases(preds ...func(T) bool) *FilterSwitch[T] {
	for _, pred := range preds {
		c = c.Case(pred)
	}
	return c
}

// Filter returns the filter the switch belongs to.
func (c *FilterSwitch[T]) Filter() *Filter[T] {
	if c == nil {
		return nil
	}
	return c.filter
}
