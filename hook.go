package herald

import (
	"log/slog"
	"slices"

	"github.com/casualjim/herald/internal/chain"
	"github.com/casualjim/herald/pkg/slogx"
)

// ErrListenerPanic is wrapped by the error an ErrorHandler receives when a
// listener, predicate or transform panicked.
var ErrListenerPanic = chain.ErrPanic

// ErrorHandler receives delivery errors: a listener or a chain step that
// panicked or failed for value. Handlers run synchronously inside Next and
// must not panic.
type ErrorHandler func(value any, err error)

// LoggingErrorHandler returns an ErrorHandler that logs the failure and carries on.
// A nil logger uses slog.Default at the time of the failure.
func LoggingErrorHandler(logger *slog.Logger) ErrorHandler {
	return func(value any, err error) {
		l := logger
		if l == nil {
			l = slog.Default()
		}
		l.Error("delivery failed", slogx.Error(err), slog.Any("value", value))
	}
}

// DiscardErrors ignores every delivery error.
func DiscardErrors(any, error) {}

// CompositeErrorHandler fans one delivery error out to several handlers, in order.
func CompositeErrorHandler(handlers ...ErrorHandler) ErrorHandler {
	handlers = slices.DeleteFunc(slices.Clone(handlers), func(h ErrorHandler) bool { return h == nil })
	return func(value any, err error) {
		for h := range slices.Values(handlers) {
			h(value, err)
		}
	}
}

func firstHandler(handlers []ErrorHandler, fallback ErrorHandler) ErrorHandler {
	for _, h := range handlers {
		if h != nil {
			return h
		}
	}
	return fallback
}
