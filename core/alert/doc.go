// Package alert delivers operator notifications to a chat webhook.
//
// Alerts are strictly fire-and-forget: the sink bounds its own delivery
// timeout, logs its own failures, and never propagates an error to the
// caller. A failure class that needs human attention (cache projection
// failure, enrichment provider outage, unrecoverable persistence error)
// produces exactly one structured message with a priority, a correlation
// RayID, the affected subject, and a recommended action.
package alert
