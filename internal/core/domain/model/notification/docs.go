// Package notification contains the Notification aggregate: durable
// per-recipient messages written by the dispatch flow. The record is the
// source of truth for the in-app feed; the push transport is best effort on
// top of it.
package notification
