package models

import "time"

// OutboxEvent is a row of the outbox_events table. Payload holds the full
// JSON envelope; PublishedAt stays NULL until a relay ships it.
type OutboxEvent struct {
	EventID       string     `db:"event_id"`
	EventType     string     `db:"event_type"`
	SchemaVersion string     `db:"schema_version"`
	CompanyID     string     `db:"company_id"`
	Source        string     `db:"source"`
	OccurredAt    time.Time  `db:"occurred_at"`
	Payload       []byte     `db:"payload"`
	PublishedAt   *time.Time `db:"published_at"`
}
