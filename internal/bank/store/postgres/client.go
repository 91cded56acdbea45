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

// ClientStore persists clients in the clients table.
type ClientStore struct {
	pool *pgxpool.Pool
}

// NewClientStore creates a ClientStore on the pool.
func NewClientStore(pool *pgxpool.Pool) *ClientStore {
	return &ClientStore{pool: pool}
}

func (s *ClientStore) Save(ctx context.Context, client *bank.Client) error {
	db := q(ctx, s.pool)
	if !client.Saved() {
		var id int64
		err := db.QueryRow(ctx,
			`INSERT INTO clients (username, birth_date) VALUES ($1, $2) RETURNING id`,
			client.Username(), client.BirthDate()).Scan(&id)
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		if err != nil {
			return fmt.Errorf("insert client: %w", err)
		}
		return client.AssignID(id)
	}
	_, err := db.Exec(ctx,
		`UPDATE clients SET username = $2, birth_date = $3 WHERE id = $1`,
		client.ID(), client.Username(), client.BirthDate())
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

func (s *ClientStore) Delete(ctx context.Context, client *bank.Client) error {
	_, err := q(ctx, s.pool).Exec(ctx, `DELETE FROM clients WHERE id = $1`, client.ID())
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

func (s *ClientStore) FindByID(ctx context.Context, id int64) (*bank.Client, error) {
	return s.findOne(ctx, `SELECT id, username, birth_date FROM clients WHERE id = $1`, id)
}

func (s *ClientStore) FindByUsername(ctx context.Context, username string) (*bank.Client, error) {
	return s.findOne(ctx, `SELECT id, username, birth_date FROM clients WHERE username = $1`, username)
}

func (s *ClientStore) findOne(ctx context.Context, query string, arg any) (*bank.Client, error) {
	var (
		id        int64
		username  string
		birthDate time.Time
	)
	err := q(ctx, s.pool).QueryRow(ctx, query, arg).Scan(&id, &username, &birthDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return bank.RehydrateClient(id, username, birthDate), nil
}

func (s *ClientStore) FindAll(ctx context.Context) ([]*bank.Client, error) {
	return s.findMany(ctx,
		`SELECT id, username, birth_date FROM clients ORDER BY id DESC`)
}

func (s *ClientStore) FindAllBornFrom(ctx context.Context, minDate time.Time) ([]*bank.Client, error) {
	return s.findMany(ctx,
		`SELECT id, username, birth_date FROM clients
		 WHERE birth_date >= $1 ORDER BY birth_date DESC, id DESC`, minDate)
}

func (s *ClientStore) findMany(ctx context.Context, query string, args ...any) ([]*bank.Client, error) {
	rows, err := q(ctx, s.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var clients []*bank.Client
	for rows.Next() {
		var (
			id        int64
			username  string
			birthDate time.Time
		)
		if err := rows.Scan(&id, &username, &birthDate); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, bank.RehydrateClient(id, username, birthDate))
	}
	return clients, rows.Err()
}

func (s *ClientStore) DeleteAll(ctx context.Context) error {
	_, err := q(ctx, s.pool).Exec(ctx, `DELETE FROM clients`)
	if err != nil {
		return fmt.Errorf("delete all clients: %w", err)
	}
	return nil
}
