// Package reactive defines the observable store contract consumed by the
// reaction control wrapper, plus a small in-memory engine that satisfies it.
//
// Contract:
//   - Store.Get returns the latest written value for a key.
//   - Store.Set applies a mutation immediately; outside a transaction it is
//     flushed as its own transaction.
//   - Store.Transaction runs fn and, once the outermost transaction returns,
//     notifies every listener that depends on at least one changed key
//     exactly once with the batched changes.
//
// Data flow:
//
//	Factory(snapshot) -> Store -> Subscribe(listener, keys...) -> []Change
//
// Annotations control whether a key notifies at all (Observable, Structural)
// or is stored silently (Plain). Dependency tracking is not implemented:
// listeners declare the keys they depend on explicitly.
package reactive
