// Package services contains application services that coordinate
// transactions, repositories and external transports around the domain
// model. NotificationDispatcher executes outbox messages; the
// AvailabilityRegistry owns every write to courier availability state.
package services
