package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	"github.com/SscSPs/bookkeeping_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to its header row and line rows.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, []models.JournalLine) {
	header := models.JournalEntry{
		JournalID:    d.JournalID,
		CompanyID:    d.CompanyID,
		SourceType:   string(d.SourceType),
		SourceID:     d.SourceID,
		JournalDate:  d.JournalDate,
		Description:  d.Description,
		CurrencyCode: d.CurrencyCode,
		Status:       models.JournalStatus(d.Status),
		LocationID:   d.LocationID,
		TotalDebit:   d.TotalDebit,
		TotalCredit:  d.TotalCredit,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			JournalID: d.JournalID,
			LineNo:    i + 1,
			AccountID: l.AccountID,
			Debit:     l.Debit,
			Credit:    l.Credit,
			Memo:      l.Memo,
		}
	}
	return header, lines
}

// ToDomainJournalEntry rebuilds a domain JournalEntry. Lines must already be in line_no order.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:    m.JournalID,
		CompanyID:    m.CompanyID,
		SourceType:   domain.SourceType(m.SourceType),
		SourceID:     m.SourceID,
		JournalDate:  m.JournalDate,
		Description:  m.Description,
		CurrencyCode: m.CurrencyCode,
		Status:       domain.JournalStatus(m.Status),
		LocationID:   m.LocationID,
		TotalDebit:   m.TotalDebit,
		TotalCredit:  m.TotalCredit,
		Lines:        make([]domain.JournalLine, len(lines)),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	for i, l := range lines {
		d.Lines[i] = domain.JournalLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit, Memo: l.Memo}
	}
	return d
}

// ToModelOutboxEvent serializes an event envelope into an outbox row.
func ToModelOutboxEvent(e domain.EventEnvelope) (models.OutboxEvent, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return models.OutboxEvent{}, fmt.Errorf("marshal event %s: %w", e.EventID, err)
	}
	return models.OutboxEvent{
		EventID:       e.EventID,
		EventType:     e.EventType,
		SchemaVersion: e.SchemaVersion,
		CompanyID:     e.CompanyID,
		Source:        e.Source,
		OccurredAt:    e.OccurredAt,
		Payload:       payload,
	}, nil
}
