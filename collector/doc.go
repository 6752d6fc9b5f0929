// Package collector gathers subscription handles so they can be torn down
// as a group, for example when the component that created them goes away.
//
// Two registries are provided:
//
//   - Collector removes an entry by swapping it with the last one. It is the
//     right choice for small and medium registries.
//   - Compacting leaves a tombstone in place of a removed entry and rebuilds
//     its storage once enough tombstones have accumulated, amortizing the cost
//     of frequent removals from very large registries.
//
// Example usage:
//
//	subs := collector.New()
//	subs.Collect(
//	    prices.Subscribe(render),
//	    herald.Map(prices.Pipe(), toCents).Subscribe(store),
//	)
//	defer subs.Destroy()
//
// Collectors only rely on the Unsubscribe method of a handle; they never own
// the observables the subscriptions belong to.
package collector
