package bank

import (
	"errors"
	"fmt"
)

// ErrNotYetSaved is returned when an operation needs an entity identity that
// the store has not assigned yet.
var ErrNotYetSaved = errors.New("entity has not been saved yet")

// ErrAlreadySaved is returned when a store tries to assign an identity twice.
var ErrAlreadySaved = errors.New("entity already has an identity")

const minimumBalanceCents int64 = -100_000

// MinimumBalance returns the floor no account balance may fall below
// through a ledger operation: -1000.00 euros.
func MinimumBalance() Amount {
	return Amount{cents: minimumBalanceCents}
}

// Account is a bank account a client can own or manage. The balance can only
// be changed by the ledger operations in this package; there is no exported
// setter to bypass the invariant checks with.
type Account struct {
	id      int64
	name    string
	balance Amount
}

// NewAccount creates an unsaved account with a zero balance. The name is a
// mnemonic for the purpose of the account, not an identifier.
func NewAccount(name string) *Account {
	return &Account{name: name}
}

// RehydrateAccount reconstructs a persisted account from store state.
func RehydrateAccount(id int64, name string, balance Amount) *Account {
	return &Account{id: id, name: name, balance: balance}
}

// ID returns the store-assigned identity, 0 while unsaved.
func (a *Account) ID() int64 { return a.id }

// Saved reports whether the store has assigned an identity.
func (a *Account) Saved() bool { return a.id != 0 }

// AssignID is called by stores on first save.
func (a *Account) AssignID(id int64) error {
	if a.id != 0 {
		return ErrAlreadySaved
	}
	a.id = id
	return nil
}

// AccountNo derives the externally visible account number from the identity.
// It fails with ErrNotYetSaved before the first save.
func (a *Account) AccountNo() (AccountNo, error) {
	if a.id == 0 {
		return AccountNo{}, ErrNotYetSaved
	}
	return AccountNo{number: a.id}, nil
}

func (a *Account) Name() string { return a.name }

func (a *Account) Balance() Amount { return a.balance }

// setBalance is deliberately unexported: only the ledger operations in this
// package may move a balance, and they validate the floor first.
func (a *Account) setBalance(balance Amount) {
	a.balance = balance
}

func (a *Account) String() string {
	return fmt.Sprintf("Account{id=%d, name=%q, balance=%s}", a.id, a.name, a.balance)
}
