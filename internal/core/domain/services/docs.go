// Package services contains stateless domain services: operations that span
// aggregates without owning state of their own. NotificationFanout plans the
// per-recipient notification records for a dispatch; the transactional
// machinery around it lives in the application layer.
package services
