package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/postline/postline-auth/internal/model"
)

func (r *AccountRepository) AppendRefreshCredential(ctx context.Context, accountID uuid.UUID, credentialHash []byte) error {
	const query = `
        INSERT INTO refresh_credentials (id, account_id, credential_hash, created_at)
        VALUES ($1, $2, $3, NOW())
    `

	if _, err := r.db.Exec(ctx, query, uuid.New(), accountID, credentialHash); err != nil {
		return fmt.Errorf("failed to append refresh credential: %w", err)
	}
	return nil
}

// SwapRefreshCredential removes the old credential and inserts the new one
// in a single transaction. The conditional DELETE is the rotation gate:
// when two rotations race on the same credential the row lock serializes
// them and the second DELETE affects zero rows, so exactly one caller ever
// swaps.
func (r *AccountRepository) SwapRefreshCredential(ctx context.Context, accountID uuid.UUID, oldHash, newHash []byte) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
        DELETE FROM refresh_credentials
        WHERE account_id = $1 AND credential_hash = $2
    `, accountID, oldHash)
	if err != nil {
		return fmt.Errorf("failed to remove refresh credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCredentialNotFound
	}

	if _, err := tx.Exec(ctx, `
        INSERT INTO refresh_credentials (id, account_id, credential_hash, created_at)
        VALUES ($1, $2, $3, NOW())
    `, uuid.New(), accountID, newHash); err != nil {
		return fmt.Errorf("failed to add refresh credential: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit credential swap: %w", err)
	}
	return nil
}
