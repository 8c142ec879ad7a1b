package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
)

func TestStore_CreateAccountRejectsDuplicateCode(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, err := s.CreateAccount(ctx, "c1", "2100", "Tax Payable", domain.Liability)
	require.NoError(t, err)

	_, err = s.CreateAccount(ctx, "c1", "2100", "Other", domain.Asset)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	// Codes are unique per company only.
	_, err = s.CreateAccount(ctx, "c2", "2100", "Tax Payable", domain.Liability)
	assert.NoError(t, err)
}

func TestStore_FindAccountAndListCodes(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	_, _ = s.CreateAccount(ctx, "c1", "1100", "Accounts Receivable", domain.Asset)
	_, _ = s.CreateAccount(ctx, "c1", "2100", "Tax Payable", domain.Liability)

	acc, err := s.FindAccount(ctx, "c1", portsrepo.AccountQuery{Name: "Tax Payable", AccountType: domain.Liability})
	require.NoError(t, err)
	assert.Equal(t, "2100", acc.Code)

	_, err = s.FindAccount(ctx, "c1", portsrepo.AccountQuery{Name: "Tax Payable", AccountType: domain.Asset})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = s.FindAccount(ctx, "c2", portsrepo.AccountQuery{Name: "Tax Payable"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := s.ListAccountCodes(ctx, "c1", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1100", "2100"}, all)

	liab := domain.Liability
	onlyLiab, err := s.ListAccountCodes(ctx, "c1", &liab)
	require.NoError(t, err)
	assert.Equal(t, []string{"2100"}, onlyLiab)
}

func TestStore_WithinTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		_, err := tx.CreateAccount(ctx, "c1", "2100", "Tax Payable", domain.Liability)
		require.NoError(t, err)
		require.NoError(t, tx.AppendEvent(ctx, domain.EventEnvelope{EventID: "e1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Accounts("c1"))
	assert.Empty(t, s.Events())
}

func TestStore_SaveJournalEntryIsUniquePerSource(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	entry := domain.JournalEntry{
		JournalID:  "j1",
		CompanyID:  "c1",
		SourceType: domain.SourceInvoice,
		SourceID:   "INV-1",
		Lines: []domain.JournalLine{
			domain.DebitLine("ar", decimal.RequireFromString("10.00")),
			domain.CreditLine("sales", decimal.RequireFromString("10.00")),
		},
	}

	err := s.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.SaveJournalEntry(ctx, entry)
	})
	require.NoError(t, err)

	entry.JournalID = "j2"
	err = s.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		return tx.SaveJournalEntry(ctx, entry)
	})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyPosted)

	found, err := s.FindJournalEntryBySource(ctx, "c1", domain.SourceInvoice, "INV-1")
	require.NoError(t, err)
	assert.Equal(t, "j1", found.JournalID)
	assert.Len(t, found.Lines, 2)
	assert.Len(t, s.JournalEntries(), 1)
}

func TestStore_ListJournalEntriesPagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	save := func(id, sourceID, company string, day int, created time.Duration) {
		entry := domain.JournalEntry{
			JournalID:   id,
			CompanyID:   company,
			SourceType:  domain.SourceInvoice,
			SourceID:    sourceID,
			JournalDate: base.AddDate(0, 0, day),
			Lines:       []domain.JournalLine{domain.DebitLine("ar", decimal.NewFromInt(1)), domain.CreditLine("sales", decimal.NewFromInt(1))},
			AuditFields: domain.AuditFields{CreatedAt: base.Add(created)},
		}
		require.NoError(t, s.WithinTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
			return tx.SaveJournalEntry(ctx, entry)
		}))
	}
	save("j1", "INV-1", "c1", 0, time.Hour)
	save("j2", "INV-2", "c1", 2, time.Hour)
	save("j3", "INV-3", "c1", 1, 2*time.Hour)
	save("j4", "INV-4", "c1", 1, time.Hour)
	save("other", "INV-1", "c2", 5, time.Hour)

	page, next, err := s.ListJournalEntries(ctx, "c1", 2, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	require.Len(t, page, 2)
	assert.Equal(t, "j2", page[0].JournalID)
	assert.Equal(t, "j3", page[1].JournalID)
	assert.Empty(t, page[0].Lines)

	page, next, err = s.ListJournalEntries(ctx, "c1", 2, next)
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, page, 2)
	assert.Equal(t, "j4", page[0].JournalID)
	assert.Equal(t, "j1", page[1].JournalID)

	bad := "%%%"
	_, _, err = s.ListJournalEntries(ctx, "c1", 2, &bad)
	assert.Equal(t, 400, apperrors.HTTPStatus(err))
}

func TestLocker_AcquireReleaseAndExpiry(t *testing.T) {
	ctx := context.Background()
	l := NewLocker()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	token, err := l.Acquire(ctx, "posting:c1:INVOICE:1", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "posting:c1:INVOICE:1", time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrLockHeld)

	// A stale token does not release someone else's lock.
	require.NoError(t, l.Release(ctx, "posting:c1:INVOICE:1", "not-the-token"))
	_, err = l.Acquire(ctx, "posting:c1:INVOICE:1", time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrLockHeld)

	require.NoError(t, l.Release(ctx, "posting:c1:INVOICE:1", token))
	_, err = l.Acquire(ctx, "posting:c1:INVOICE:1", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = l.Acquire(ctx, "posting:c1:INVOICE:1", time.Minute)
	assert.NoError(t, err, "expired lock can be taken over")

	l.SetUnavailable(true)
	_, err = l.Acquire(ctx, "posting:c1:BILL:1", time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrLockUnavailable)
}
