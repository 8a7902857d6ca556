// Package order contains the order aggregate: the lifecycle state machine
// (pending -> processing -> completed), the contact-info snapshots frozen at
// transition time, and the timestamp invariants that go with them.
//
// The aggregate enforces every transition rule in memory; persistence
// adapters additionally guard claim and completion with conditional updates
// so that concurrent claimants resolve to exactly one winner.
package order
