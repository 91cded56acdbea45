package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"girobank/internal/platform/metrics"
	"girobank/pkg/platform/sentinel"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]{0,30}$`)

// Bank handles the client lifecycle and the cross-client queries a bank
// clerk needs.
type Bank struct {
	clients  ClientStore
	accesses AccessStore
	tx       TxRunner
	log      *slog.Logger
	metrics  *metrics.Metrics
}

type BankOption func(*Bank)

func WithBankLogger(log *slog.Logger) BankOption {
	return func(b *Bank) { b.log = log }
}

func WithBankMetrics(m *metrics.Metrics) BankOption {
	return func(b *Bank) { b.metrics = m }
}

// NewBank constructs a Bank on the given stores and transaction runner.
func NewBank(clients ClientStore, accesses AccessStore, tx TxRunner, opts ...BankOption) *Bank {
	b := &Bank{clients: clients, accesses: accesses, tx: tx, log: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateClient registers a new client under a unique username and returns
// it with its identity assigned.
func (b *Bank) CreateClient(ctx context.Context, username string, birthDate time.Time) (*Client, error) {
	if !usernamePattern.MatchString(username) {
		return nil, UsernameError{Username: username}
	}
	client := NewClient(username, birthDate)
	if err := b.clients.Save(ctx, client); err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}
	b.log.InfoContext(ctx, "client created", "username", username, "id", client.ID())
	if b.metrics != nil {
		b.metrics.ClientsCreated.Inc()
	}
	return client, nil
}

// DeleteClient removes the client and its manager grants. A client still
// owning an account cannot be deleted; the whole access set is checked
// before anything is removed, so a refusal leaves no partial deletion.
func (b *Bank) DeleteClient(ctx context.Context, client *Client) error {
	err := b.tx.Within(ctx, func(ctx context.Context) error {
		accesses, err := b.accesses.FindManagedBy(ctx, client, false)
		if err != nil {
			return fmt.Errorf("list accesses: %w", err)
		}
		for _, access := range accesses {
			if access.IsOwner() {
				return StillOwnerError{Username: client.Username(), AccountID: access.Account().ID()}
			}
		}
		for _, access := range accesses {
			if err := b.accesses.Delete(ctx, access); err != nil {
				return fmt.Errorf("delete access: %w", err)
			}
		}
		if err := b.clients.Delete(ctx, client); err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	b.log.InfoContext(ctx, "client deleted", "username", client.Username())
	return nil
}

// FindClient resolves a username to its client.
func (b *Bank) FindClient(ctx context.Context, username string) (*Client, error) {
	client, err := b.clients.FindByUsername(ctx, username)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, ClientNotFoundError{Username: username}
	}
	if err != nil {
		return nil, fmt.Errorf("find client: %w", err)
	}
	return client, nil
}

// FindAllClients returns every client, newest first.
func (b *Bank) FindAllClients(ctx context.Context) ([]*Client, error) {
	return b.clients.FindAll(ctx)
}

// FindYoungClients returns clients born on fromBirth or later, youngest
// first, ties broken by descending identity.
func (b *Bank) FindYoungClients(ctx context.Context, fromBirth time.Time) ([]*Client, error) {
	return b.clients.FindAllBornFrom(ctx, fromBirth)
}

// FindRichClients returns the distinct clients having at least one account
// with a balance of minBalance or more, ordered by the descending balance
// of the qualifying account, then by descending client identity. A client
// with several qualifying accounts appears once, at its first position.
func (b *Bank) FindRichClients(ctx context.Context, minBalance Amount) ([]*Client, error) {
	accesses, err := b.accesses.FindWithBalanceAtLeast(ctx, minBalance)
	if err != nil {
		return nil, fmt.Errorf("list full accounts: %w", err)
	}
	seen := make(map[int64]bool, len(accesses))
	clients := make([]*Client, 0, len(accesses))
	for _, access := range accesses {
		client := access.Client()
		if seen[client.ID()] {
			continue
		}
		seen[client.ID()] = true
		clients = append(clients, client)
	}
	return clients, nil
}
