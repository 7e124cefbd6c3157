// Package events is the seam between committed ledger state changes and the
// external consumers that react to them (dashboards, webhooks, notifications).
// Emission is fire-and-forget: a slow or failed consumer never blocks or fails
// the ledger operation that produced the event.
package events

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType names the kind of state change an event describes.
type EventType string

const (
	TypeTransactionUpdate EventType = "transaction_update"
	TypeBalanceChange     EventType = "balance_change"
	TypeCustomerUpdate    EventType = "customer_update"
)

// Event is one committed state change, addressed to a single company's consumers.
type Event struct {
	ID         string      `json:"id"` // ULID, sortable by emission time
	Type       EventType   `json:"type"`
	CompanyID  string      `json:"companyID"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurredAt"`
}

// Publisher is the port ledger services emit through after each successful
// commit. Implementations must not return errors to the caller; delivery
// problems are theirs to log and swallow.
type Publisher interface {
	Publish(evt Event)
}

// New builds an event stamped with a fresh ULID and the current time.
func New(eventType EventType, companyID string, payload interface{}) Event {
	return Event{
		ID:         ulid.Make().String(),
		Type:       eventType,
		CompanyID:  companyID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}
