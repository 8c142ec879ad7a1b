package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// EventJournalEntryCreated is emitted once per successful posting.
	EventJournalEntryCreated = "journal.entry.created"
	// EventSchemaVersion is the envelope schema version.
	EventSchemaVersion = "v1"
)

// EventEnvelope is the outbox record consumers deduplicate by EventID.
type EventEnvelope struct {
	EventID       string              `json:"eventId"`
	EventType     string              `json:"eventType"`
	SchemaVersion string              `json:"schemaVersion"`
	OccurredAt    time.Time           `json:"occurredAt"`
	CompanyID     string              `json:"companyId"`
	Source        string              `json:"source"`
	Payload       JournalEventPayload `json:"payload"`
}

// JournalEventPayload summarizes the journal entry an event refers to.
type JournalEventPayload struct {
	JournalEntryID string          `json:"journalEntryId"`
	CompanyID      string          `json:"companyId"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
}
