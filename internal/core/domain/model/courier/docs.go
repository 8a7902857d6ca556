// Package courier contains the Courier aggregate.
//
// A courier is a worker account that claims pending orders and delivers
// them. Besides identity and credentials the aggregate owns the dispatch
// state machine around availability: an active, available courier is
// eligible for new work; claiming an order loads the courier and clears the
// availability flag; completing it unloads the courier and restores the
// flag. The current and lifetime order counters feed the reporting surface.
//
// All state changes go through aggregate methods so the invariant "a loaded
// courier is never available" holds everywhere, including restoration from
// storage.
package courier
