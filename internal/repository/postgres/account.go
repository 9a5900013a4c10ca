package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/postline/postline-auth/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

const accountColumns = `id, handle, email, secret_hash, account_type, created_at, updated_at`

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *AccountRepository) GetByHandle(ctx context.Context, handle string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE handle = $1`
	return r.getOne(ctx, query, handle)
}

// GetByEmail returns one account for the email. While a local/federated
// conflict is open both types can hold the email; the password account
// wins the single-match lookup.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1
			  ORDER BY CASE account_type WHEN 'local' THEN 0 ELSE 1 END
			  LIMIT 1`
	return r.getOne(ctx, query, email)
}

func (r *AccountRepository) GetByHandleOrEmail(ctx context.Context, handle, email string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE handle = $1 OR email = $2 LIMIT 1`
	return r.getOne(ctx, query, handle, email)
}

func (r *AccountRepository) ListByEmail(ctx context.Context, email string) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by email: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Handle, &a.Email, &a.SecretHash, &a.Type, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return accounts, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query := `INSERT INTO accounts (id, handle, email, secret_hash, account_type, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + accountColumns

	var saved model.Account
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Handle, account.Email, account.SecretHash, account.Type,
		account.CreatedAt, account.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Handle, &saved.Email, &saved.SecretHash, &saved.Type,
		&saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, model.ErrDuplicate
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}

func (r *AccountRepository) getOne(ctx context.Context, query string, args ...any) (model.Account, error) {
	var a model.Account
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&a.ID, &a.Handle, &a.Email, &a.SecretHash, &a.Type, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
