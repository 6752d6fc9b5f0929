// Package broker keeps named herald observables so unrelated parts of an
// application can meet on a topic name instead of passing observables around.
//
// Example usage:
//
//	b := broker.Local[Order]()
//	sub := b.Topic("orders").Subscribe(func(o Order) {
//	    slog.Info("order placed", "id", o.ID)
//	})
//	defer sub.Unsubscribe()
//
//	b.Topic("orders").Next(Order{ID: "42"})
//
// Topics start with the zero value of T. Removing a topic destroys its
// observable; asking for the same name again creates a fresh one.
package broker
