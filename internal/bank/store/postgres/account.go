package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"girobank/internal/bank"
	"girobank/pkg/platform/sentinel"
)

// AccountStore persists accounts in the accounts table.
type AccountStore struct {
	pool *pgxpool.Pool
}

// NewAccountStore creates an AccountStore on the pool.
func NewAccountStore(pool *pgxpool.Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

func (s *AccountStore) Save(ctx context.Context, account *bank.Account) error {
	db := q(ctx, s.pool)
	if !account.Saved() {
		var id int64
		err := db.QueryRow(ctx,
			`INSERT INTO accounts (name, balance_cents) VALUES ($1, $2) RETURNING id`,
			account.Name(), account.Balance().Cents()).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert account: %w", err)
		}
		return account.AssignID(id)
	}
	_, err := db.Exec(ctx,
		`UPDATE accounts SET name = $2, balance_cents = $3 WHERE id = $1`,
		account.ID(), account.Name(), account.Balance().Cents())
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// FindByNo resolves an account number. Inside a transaction the row is
// locked so concurrent balance mutations serialize per account.
func (s *AccountStore) FindByNo(ctx context.Context, no bank.AccountNo) (*bank.Account, error) {
	query := `SELECT id, name, balance_cents FROM accounts WHERE id = $1`
	if inTx(ctx) {
		query += ` FOR UPDATE`
	}
	var (
		id    int64
		name  string
		cents int64
	)
	err := q(ctx, s.pool).QueryRow(ctx, query, no.Int64()).Scan(&id, &name, &cents)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	balance, err := bank.AmountFromCents(cents)
	if err != nil {
		return nil, fmt.Errorf("stored balance out of range: %w", err)
	}
	return bank.RehydrateAccount(id, name, balance), nil
}

func (s *AccountStore) DeleteAll(ctx context.Context) error {
	_, err := q(ctx, s.pool).Exec(ctx, `DELETE FROM accounts`)
	if err != nil {
		return fmt.Errorf("delete all accounts: %w", err)
	}
	return nil
}
