package chain

import (
	"errors"
	"fmt"
)

// ErrPanic wraps a value recovered from a panicking step or callback.
var ErrPanic = errors.New("callback panicked")

// Outcome is the result of running a chain against a Flow.
type Outcome int

const (
	// Dropped means a step did not authorize delivery. It is not an error.
	Dropped Outcome = iota
	// Deliver means the final payload should be handed to the listeners.
	Deliver
	// Unsubscribe means the owning subscription must be torn down without delivery.
	Unsubscribe
)

func (o Outcome) String() string {
	switch o {
	case Dropped:
		return "dropped"
	case Deliver:
		return "deliver"
	case Unsubscribe:
		return "unsubscribe"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Flow is the per-evaluation state threaded through a chain.
// A new Flow is built for every evaluation so nested emissions never share one.
type Flow struct {
	Payload     any
	Available   bool
	Break       bool
	Unsubscribe bool
	// Once asks the subscription to tear itself down after a successful delivery.
	Once bool
}

// New returns a Flow carrying payload.
func New(payload any) Flow {
	return Flow{Payload: payload}
}

// Step is one link of a chain.
type Step func(*Flow) error

// Run evaluates steps in order against f.
//
// Before each step Available is reset to false. A step that leaves it false
// stops the chain and drops the value. A step that sets Unsubscribe stops the
// chain and requests teardown. A step that sets Break stops the chain and
// delivers the payload as it is. A step error (or panic) drops the value and
// is returned to the caller.
func Run(steps []Step, f *Flow) (Outcome, error) {
	for _, step := range steps {
		f.Available = false
		if err := Call(func() error { return step(f) }); err != nil {
			return Dropped, err
		}
		if f.Unsubscribe {
			return Unsubscribe, nil
		}
		if !f.Available {
			return Dropped, nil
		}
		if f.Break {
			break
		}
	}
	return Deliver, nil
}

// Call invokes fn and converts a panic into an error wrapping ErrPanic.
func Call(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return fn()
}

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("%w: %w", ErrPanic, err)
	}
	return fmt.Errorf("%w: %v", ErrPanic, r)
}
