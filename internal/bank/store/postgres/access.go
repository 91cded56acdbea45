package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"girobank/internal/bank"
	"girobank/pkg/platform/sentinel"
)

// AccessStore persists access grants in the account_accesses table. Reads
// join clients and accounts so the returned grants carry fully rehydrated
// entities.
type AccessStore struct {
	pool *pgxpool.Pool
}

// NewAccessStore creates an AccessStore on the pool.
func NewAccessStore(pool *pgxpool.Pool) *AccessStore {
	return &AccessStore{pool: pool}
}

const accessColumns = `
	aa.id, aa.is_owner,
	c.id, c.username, c.birth_date,
	a.id, a.name, a.balance_cents
FROM account_accesses aa
JOIN clients c ON c.id = aa.client_id
JOIN accounts a ON a.id = aa.account_id`

func (s *AccessStore) Save(ctx context.Context, access *bank.AccountAccess) error {
	db := q(ctx, s.pool)
	if !access.Saved() {
		var id int64
		err := db.QueryRow(ctx,
			`INSERT INTO account_accesses (client_id, account_id, is_owner)
			 VALUES ($1, $2, $3) RETURNING id`,
			access.Client().ID(), access.Account().ID(), access.IsOwner()).Scan(&id)
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("insert access: %w", err)
		}
		return access.AssignID(id)
	}
	_, err := db.Exec(ctx,
		`UPDATE account_accesses SET is_owner = $2 WHERE id = $1`,
		access.ID(), access.IsOwner())
	if err != nil {
		return fmt.Errorf("update access: %w", err)
	}
	return nil
}

func (s *AccessStore) Delete(ctx context.Context, access *bank.AccountAccess) error {
	_, err := q(ctx, s.pool).Exec(ctx,
		`DELETE FROM account_accesses WHERE id = $1`, access.ID())
	if err != nil {
		return fmt.Errorf("delete access: %w", err)
	}
	return nil
}

func (s *AccessStore) Find(ctx context.Context, client *bank.Client, account *bank.Account) (*bank.AccountAccess, error) {
	row := q(ctx, s.pool).QueryRow(ctx,
		`SELECT`+accessColumns+`
		 WHERE aa.client_id = $1 AND aa.account_id = $2`,
		client.ID(), account.ID())
	access, err := scanAccess(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	return access, err
}

func (s *AccessStore) FindManagedBy(ctx context.Context, client *bank.Client, ownerOnly bool) ([]*bank.AccountAccess, error) {
	query := `SELECT` + accessColumns + ` WHERE aa.client_id = $1`
	if ownerOnly {
		query += ` AND aa.is_owner`
	}
	query += ` ORDER BY aa.id DESC`
	return s.findMany(ctx, query, client.ID())
}

func (s *AccessStore) FindWithBalanceAtLeast(ctx context.Context, min bank.Amount) ([]*bank.AccountAccess, error) {
	return s.findMany(ctx,
		`SELECT`+accessColumns+`
		 WHERE a.balance_cents >= $1
		 ORDER BY a.balance_cents DESC, aa.client_id DESC`,
		min.Cents())
}

func (s *AccessStore) findMany(ctx context.Context, query string, args ...any) ([]*bank.AccountAccess, error) {
	rows, err := q(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accesses: %w", err)
	}
	defer rows.Close()

	var accesses []*bank.AccountAccess
	for rows.Next() {
		access, err := scanAccess(rows)
		if err != nil {
			return nil, err
		}
		accesses = append(accesses, access)
	}
	return accesses, rows.Err()
}

func scanAccess(row pgx.Row) (*bank.AccountAccess, error) {
	var (
		id, clientID, accountID int64
		isOwner                 bool
		username, name          string
		birthDate               time.Time
		cents                   int64
	)
	err := row.Scan(&id, &isOwner, &clientID, &username, &birthDate, &accountID, &name, &cents)
	if err != nil {
		return nil, err
	}
	balance, err := bank.AmountFromCents(cents)
	if err != nil {
		return nil, fmt.Errorf("stored balance out of range: %w", err)
	}
	client := bank.RehydrateClient(clientID, username, birthDate)
	account := bank.RehydrateAccount(accountID, name, balance)
	return bank.RehydrateAccountAccess(id, client, isOwner, account), nil
}

func (s *AccessStore) DeleteAll(ctx context.Context) error {
	_, err := q(ctx, s.pool).Exec(ctx, `DELETE FROM account_accesses`)
	if err != nil {
		return fmt.Errorf("delete all accesses: %w", err)
	}
	return nil
}
