// Package pos receives change notifications from the external point-of-sale
// system and keeps local state reconciled with them.
//
// Delivery contract: notifications are pushed over HTTP, signed, delivered
// at least once, and not necessarily in send order. The handler verifies the
// signature over the exact raw request bytes before any JSON parsing, then
// hands the canonical event to the reconciliation engine.
//
// Response codes follow the sender's retry protocol: 200 for processed or
// harmlessly ignored, 403 for signature failures (never retried), 400 for
// structurally invalid payloads, 500 for persistence failures the sender
// should redeliver.
package pos
