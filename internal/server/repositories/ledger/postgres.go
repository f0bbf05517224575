// Package ledger moves time credits between user balances. The transfer is a
// single stored-function call so the balance check, debit and credit commit
// or fail as one unit on the database side.
package ledger

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/timebank/internal/dbx"
)

// PostgresRepository implements credit transfers over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Transfer debits amount from the sender and credits it to the receiver.
// The function re-checks the sender balance under a row lock and raises if
// it cannot cover the amount; that raise surfaces here as a wrapped db
// error.
func (r *PostgresRepository) Transfer(ctx context.Context, senderID string, receiverID string, amount int) error {
	query := `SELECT transfer_credits($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, senderID, receiverID, amount); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
