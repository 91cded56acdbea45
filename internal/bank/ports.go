package bank

import (
	"context"
	"time"
)

// Store ports consumed by the services in this package, implemented by
// internal/bank/store/{memory,postgres}. Find methods return
// sentinel.ErrNotFound on a miss; the services translate that into the
// typed domain errors of this package.

// ClientStore persists Client entities.
type ClientStore interface {
	// Save assigns a unique, increasing identity on first save.
	Save(ctx context.Context, client *Client) error
	Delete(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id int64) (*Client, error)
	FindByUsername(ctx context.Context, username string) (*Client, error)
	// FindAll returns all clients ordered by descending identity,
	// newest first.
	FindAll(ctx context.Context) ([]*Client, error)
	// FindAllBornFrom returns clients born on minDate or later, ordered
	// by descending birth date, then descending identity.
	FindAllBornFrom(ctx context.Context, minDate time.Time) ([]*Client, error)
	// DeleteAll resets the store. Test scenarios only.
	DeleteAll(ctx context.Context) error
}

// AccountStore persists Account entities.
type AccountStore interface {
	Save(ctx context.Context, account *Account) error
	FindByNo(ctx context.Context, no AccountNo) (*Account, error)
	DeleteAll(ctx context.Context) error
}

// AccessStore persists AccountAccess grants.
type AccessStore interface {
	Save(ctx context.Context, access *AccountAccess) error
	Delete(ctx context.Context, access *AccountAccess) error
	// Find returns the at most one grant for the (client, account) pair.
	Find(ctx context.Context, client *Client, account *Account) (*AccountAccess, error)
	// FindManagedBy returns the client's grants, newest access first.
	// With ownerOnly set, manager grants are filtered out.
	FindManagedBy(ctx context.Context, client *Client, ownerOnly bool) ([]*AccountAccess, error)
	// FindWithBalanceAtLeast returns grants on accounts holding at least
	// min, ordered by descending balance, then descending client identity.
	FindWithBalanceAtLeast(ctx context.Context, min Amount) ([]*AccountAccess, error)
	DeleteAll(ctx context.Context) error
}

// TxRunner is the unit-of-work boundary: every write the callback performs
// commits together or not at all. The stores joining the transaction read
// it from the context.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}
