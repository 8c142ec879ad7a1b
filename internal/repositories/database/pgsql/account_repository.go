package pgsql

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/SscSPs/bookkeeping_engine/internal/apperrors"
	"github.com/SscSPs/bookkeeping_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_engine/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_engine/internal/models"
	"github.com/SscSPs/bookkeeping_engine/internal/utils/mapping"
)

// PgxAccountRepository implements LedgerStore over the accounts table.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(db dbtx) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.LedgerStore = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, company_id, code, name, account_type, report_group, is_active,
		created_at, created_by, last_updated_at, last_updated_by`

// FindAccount returns the oldest account matching every non-empty field of q.
func (r *PgxAccountRepository) FindAccount(ctx context.Context, companyID string, q portsrepo.AccountQuery) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE company_id = $1
		  AND ($2 = '' OR name = $2)
		  AND ($3 = '' OR account_type = $3)
		  AND ($4 = '' OR code = $4)
		ORDER BY created_at, code
		LIMIT 1;
	`
	rows, err := r.DB.Query(ctx, query, companyID, q.Name, string(q.AccountType), q.Code)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to query accounts", err)
	}
	modelAcc, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan account", err)
	}
	acc := mapping.ToDomainAccount(modelAcc)
	return &acc, nil
}

// ListAccountCodes returns every code in the company, optionally for one account type.
func (r *PgxAccountRepository) ListAccountCodes(ctx context.Context, companyID string, accountType *domain.AccountType) ([]string, error) {
	typeFilter := ""
	if accountType != nil {
		typeFilter = string(*accountType)
	}
	query := `
		SELECT code
		FROM accounts
		WHERE company_id = $1 AND ($2 = '' OR account_type = $2)
		ORDER BY code;
	`
	rows, err := r.DB.Query(ctx, query, companyID, typeFilter)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list account codes", err)
	}
	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan account codes", err)
	}
	return codes, nil
}

// CreateAccount inserts under a savepoint so a unique violation leaves the
// surrounding transaction usable for the caller's retry.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, companyID, code, name string, accountType domain.AccountType) (*domain.Account, error) {
	now := time.Now().UTC()
	acc := domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   companyID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "SYSTEM",
			LastUpdatedAt: now,
			LastUpdatedBy: "SYSTEM",
		},
	}
	m := mapping.ToModelAccount(acc)

	sp, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, sp)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = sp.Exec(ctx, query,
		m.AccountID, m.CompanyID, m.Code, m.Name, m.AccountType, m.ReportGroup, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateCode
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to insert account "+code, err)
	}
	if err := r.Commit(ctx, sp); err != nil {
		return nil, err
	}
	return &acc, nil
}
