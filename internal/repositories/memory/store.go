// Package memory provides in-process implementations of the ledger ports.
// They back the service tests and single-node deployments without Postgres.
package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_engine/internal/utils/pagination"
)

type journalKey struct {
	companyID  string
	sourceType domain.SourceType
	sourceID   string
}

// state is the unguarded data behind Store. Callers must hold Store.mu.
type state struct {
	accounts map[string][]domain.Account
	journals map[journalKey]domain.JournalEntry
	order    []journalKey
	events   []domain.EventEnvelope
}

func newState() *state {
	return &state{
		accounts: make(map[string][]domain.Account),
		journals: make(map[journalKey]domain.JournalEntry),
	}
}

func (s *state) clone() *state {
	c := newState()
	for company, accounts := range s.accounts {
		c.accounts[company] = append([]domain.Account(nil), accounts...)
	}
	for k, v := range s.journals {
		c.journals[k] = v
	}
	c.order = append([]journalKey(nil), s.order...)
	c.events = append([]domain.EventEnvelope(nil), s.events...)
	return c
}

// Store keeps accounts, journal entries and outbox events in memory.
// Transactions are serialized and roll back by restoring a snapshot.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

var (
	_ portsrepo.LedgerStore        = (*Store)(nil)
	_ portsrepo.TransactionManager = (*Store)(nil)
	_ portsrepo.JournalReader      = (*Store)(nil)
	_ portsrepo.LedgerTx           = (*txView)(nil)
)

// WithinTx runs fn against a private view of the store. Any error from fn
// discards every write it made.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, &txView{st: s.st, now: s.now}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (s *Store) FindAccount(ctx context.Context, companyID string, q portsrepo.AccountQuery) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().FindAccount(ctx, companyID, q)
}

func (s *Store) ListAccountCodes(ctx context.Context, companyID string, accountType *domain.AccountType) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListAccountCodes(ctx, companyID, accountType)
}

func (s *Store) CreateAccount(ctx context.Context, companyID, code, name string, accountType domain.AccountType) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateAccount(ctx, companyID, code, name, accountType)
}

func (s *Store) FindJournalEntryBySource(ctx context.Context, companyID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().FindJournalEntryBySource(ctx, companyID, sourceType, sourceID)
}

func (s *Store) ListJournalEntries(_ context.Context, companyID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	limit = pagination.NormalizeLimit(limit)

	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", err)
		}
		cursor = &c
	}

	s.mu.Lock()
	var entries []domain.JournalEntry
	for _, k := range s.st.order {
		if k.companyID != companyID {
			continue
		}
		e := s.st.journals[k]
		if cursor != nil && !cursor.After(e.JournalDate, e.CreatedAt, e.JournalID) {
			continue
		}
		e.Lines = nil
		entries = append(entries, e)
	}
	s.mu.Unlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		return pagination.Cursor{JournalDate: a.JournalDate, CreatedAt: a.CreatedAt, JournalID: a.JournalID}.
			After(b.JournalDate, b.CreatedAt, b.JournalID)
	})

	if len(entries) <= limit {
		return entries, nil, nil
	}
	last := entries[limit-1]
	token := pagination.EncodeToken(pagination.Cursor{JournalDate: last.JournalDate, CreatedAt: last.CreatedAt, JournalID: last.JournalID})
	return entries[:limit], &token, nil
}

// Accounts returns a copy of a company's accounts in creation order.
func (s *Store) Accounts(companyID string) []domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Account(nil), s.st.accounts[companyID]...)
}

// JournalEntries returns every saved entry in save order.
func (s *Store) JournalEntries() []domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.JournalEntry, 0, len(s.st.order))
	for _, k := range s.st.order {
		out = append(out, s.st.journals[k])
	}
	return out
}

// Events returns the outbox contents in append order.
func (s *Store) Events() []domain.EventEnvelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.EventEnvelope(nil), s.st.events...)
}

func (s *Store) view() *txView {
	return &txView{st: s.st, now: s.now}
}

// txView implements LedgerTx over state without locking.
type txView struct {
	st  *state
	now func() time.Time
}

func (v *txView) FindAccount(_ context.Context, companyID string, q portsrepo.AccountQuery) (*domain.Account, error) {
	for _, acc := range v.st.accounts[companyID] {
		if q.Name != "" && acc.Name != q.Name {
			continue
		}
		if q.AccountType != "" && acc.AccountType != q.AccountType {
			continue
		}
		if q.Code != "" && acc.Code != q.Code {
			continue
		}
		found := acc
		return &found, nil
	}
	return nil, apperrors.ErrNotFound
}

func (v *txView) ListAccountCodes(_ context.Context, companyID string, accountType *domain.AccountType) ([]string, error) {
	var codes []string
	for _, acc := range v.st.accounts[companyID] {
		if accountType != nil && acc.AccountType != *accountType {
			continue
		}
		codes = append(codes, acc.Code)
	}
	return codes, nil
}

func (v *txView) CreateAccount(_ context.Context, companyID, code, name string, accountType domain.AccountType) (*domain.Account, error) {
	for _, acc := range v.st.accounts[companyID] {
		if acc.Code == code {
			return nil, apperrors.ErrDuplicateCode
		}
	}
	now := v.now()
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	v.st.accounts[companyID] = append(v.st.accounts[companyID], acc)
	return &acc, nil
}

func (v *txView) FindJournalEntryBySource(_ context.Context, companyID string, sourceType domain.SourceType, sourceID string) (*domain.JournalEntry, error) {
	entry, ok := v.st.journals[journalKey{companyID, sourceType, sourceID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	entry.Lines = append([]domain.JournalLine(nil), entry.Lines...)
	return &entry, nil
}

func (v *txView) SaveJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	key := journalKey{entry.CompanyID, entry.SourceType, entry.SourceID}
	if _, exists := v.st.journals[key]; exists {
		return apperrors.ErrAlreadyPosted
	}
	entry.Lines = append([]domain.JournalLine(nil), entry.Lines...)
	v.st.journals[key] = entry
	v.st.order = append(v.st.order, key)
	return nil
}

func (v *txView) AppendEvent(_ context.Context, event domain.EventEnvelope) error {
	v.st.events = append(v.st.events, event)
	return nil
}
