package chain

// Gate authorizes the value when pred holds.
func Gate(pred func(any) bool) Step {
	return func(f *Flow) error {
		f.Available = pred(f.Payload)
		return nil
	}
}

// Reject authorizes the value when pred does not hold.
func Reject(pred func(any) bool) Step {
	return func(f *Flow) error {
		f.Available = !pred(f.Payload)
		return nil
	}
}

// UnsubscribeIf tears the subscription down when pred holds and passes the value otherwise.
func UnsubscribeIf(pred func(any) bool) Step {
	return func(f *Flow) error {
		f.Unsubscribe = pred(f.Payload)
		f.Available = true
		return nil
	}
}

// UnsubscribeUnless tears the subscription down when pred does not hold.
func UnsubscribeUnless(pred func(any) bool) Step {
	return func(f *Flow) error {
		f.Unsubscribe = !pred(f.Payload)
		f.Available = true
		return nil
	}
}

// Once passes the value and marks the flow so the subscription ends after delivery.
func Once() Step {
	return func(f *Flow) error {
		f.Once = true
		f.Available = true
		return nil
	}
}

// Transform replaces the payload with fn's result.
func Transform(fn func(any) (any, error)) Step {
	return func(f *Flow) error {
		v, err := fn(f.Payload)
		if err != nil {
			return err
		}
		f.Payload = v
		f.Available = true
		return nil
	}
}

// Cases tracks how many case steps belong to one switch so each case can tell
// whether it is the last one at evaluation time.
type Cases struct {
	n int
}

// Len returns the number of cases added so far.
func (c *Cases) Len() int {
	return c.n
}

// Case returns the next case step of the switch.
//
// Every case passes the value on. A matching case breaks out of the chain so
// the value is delivered. Only the last case, when it does not match, drops
// the value: a switch delivers when any case matches.
func (c *Cases) Case(pred func(any) bool) Step {
	idx := c.n
	c.n++
	return func(f *Flow) error {
		f.Available = true
		if pred(f.Payload) {
			f.Break = true
			return nil
		}
		if idx == c.n-1 {
			f.Available = false
		}
		return nil
	}
}
