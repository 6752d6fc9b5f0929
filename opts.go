package herald

import (
	"log/slog"

	"github.com/fogfish/opts"
)

// WithName names the observable. The name shows up in log records and as the
// "observable" label of its metrics.
func WithName[T any](name string) opts.Option[Observable[T]] {
	return opts.ForName[Observable[T], string]("name")(name)
}

// WithLogger sets the logger used by the default error handler.
func WithLogger[T any](logger *slog.Logger) opts.Option[Observable[T]] {
	return opts.Type[Observable[T]](func(o *Observable[T]) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	})
}

// WithErrorHandler replaces the error handler subscriptions and filters fall
// back to when none is given at subscribe time.
func WithErrorHandler[T any](handler ErrorHandler) opts.Option[Observable[T]] {
	return opts.Type[Observable[T]](func(o *Observable[T]) error {
		o.onErr = handler
		return nil
	})
}

// WithMetrics reports emissions, deliveries and subscriber counts to m.
// Series are keyed by the observable's name, so observables sharing m need
// distinct names (WithName); unnamed ones all report as "observable" and
// overwrite each other's subscriber gauge. broker.Local names its topics.
func WithMetrics[T any](m *Metrics) opts.Option[Observable[T]] {
	return opts.ForName[Observable[T], *Metrics]("metrics")(m)
}

// Descending makes an Ordered observable deliver from the highest order key
// to the lowest. It has no effect on a plain Observable.
func Descending[T any]() opts.Option[Observable[T]] {
	return opts.Type[Observable[T]](func(o *Observable[T]) error {
		o.descending = true
		return nil
	})
}
