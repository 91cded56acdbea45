package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/message"

	"girobank/internal/platform/metrics"
	"girobank/pkg/platform/sentinel"
)

// Ledger performs the account operations a client may trigger: opening
// accounts, depositing, transferring, and granting manager access. Every
// mutating operation runs inside a single unit of work.
type Ledger struct {
	accounts AccountStore
	accesses AccessStore
	tx       TxRunner
	log      *slog.Logger
	metrics  *metrics.Metrics
}

type LedgerOption func(*Ledger)

func WithLedgerLogger(log *slog.Logger) LedgerOption {
	return func(l *Ledger) { l.log = log }
}

func WithLedgerMetrics(m *metrics.Metrics) LedgerOption {
	return func(l *Ledger) { l.metrics = m }
}

// NewLedger constructs a Ledger on the given stores and transaction runner.
func NewLedger(accounts AccountStore, accesses AccessStore, tx TxRunner, opts ...LedgerOption) *Ledger {
	l := &Ledger{accounts: accounts, accesses: accesses, tx: tx, log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Ledger) reject(operation string) {
	if l.metrics != nil {
		l.metrics.RejectedOps.WithLabelValues(operation).Inc()
	}
}

// CreateAccount opens an account with the given name and a zero balance for
// the owner and returns the owner access grant.
func (l *Ledger) CreateAccount(ctx context.Context, owner *Client, name string) (*AccountAccess, error) {
	var access *AccountAccess
	err := l.tx.Within(ctx, func(ctx context.Context) error {
		account := NewAccount(name)
		if err := l.accounts.Save(ctx, account); err != nil {
			return fmt.Errorf("save account: %w", err)
		}
		access = NewAccountAccess(owner, true, account)
		if err := l.accesses.Save(ctx, access); err != nil {
			return fmt.Errorf("save owner access: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.InfoContext(ctx, "account created",
		"owner", owner.Username(), "account", access.Account().ID(), "name", name)
	if l.metrics != nil {
		l.metrics.AccountsCreated.Inc()
	}
	return access, nil
}

// Deposit credits the amount to the destination account. There is no access
// check here: crediting an account is never harmful to its owner, so anyone
// holding an account number may deposit.
func (l *Ledger) Deposit(ctx context.Context, destination AccountNo, amount Amount) error {
	if amount.Cmp(Zero) <= 0 {
		l.reject("deposit")
		return AmountError{Amount: amount}
	}
	err := l.tx.Within(ctx, func(ctx context.Context) error {
		account, err := l.accounts.FindByNo(ctx, destination)
		if errors.Is(err, sentinel.ErrNotFound) {
			return DestinationNotFoundError{Destination: destination}
		}
		if err != nil {
			return DepositFailedError{Amount: amount, Destination: destination, Err: err}
		}
		newBalance, err := account.Balance().Plus(amount)
		if err != nil {
			return DepositFailedError{Amount: amount, Destination: destination, Err: err}
		}
		account.setBalance(newBalance)
		if err := l.accounts.Save(ctx, account); err != nil {
			return DepositFailedError{Amount: amount, Destination: destination, Err: err}
		}
		return nil
	})
	if err != nil {
		l.reject("deposit")
		return err
	}
	l.log.InfoContext(ctx, "deposit", "destination", destination, "amount", amount)
	if l.metrics != nil {
		l.metrics.Deposits.Inc()
	}
	return nil
}

// Transfer moves the amount from the source account to the destination
// account. The sender must hold an access grant on the source, and the
// source balance may not fall below MinimumBalance. Debit and credit commit
// together or not at all.
func (l *Ledger) Transfer(ctx context.Context, sender *Client, source *Account, destination AccountNo, amount Amount) error {
	if amount.Cmp(Zero) <= 0 {
		l.reject("transfer")
		return AmountError{Amount: amount}
	}
	err := l.tx.Within(ctx, func(ctx context.Context) error {
		if _, err := l.accesses.Find(ctx, sender, source); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return WithoutRightError{ClientID: sender.ID(), AccountID: source.ID()}
			}
			return fmt.Errorf("find access: %w", err)
		}
		sourceNo, err := source.AccountNo()
		if err != nil {
			return err
		}
		// Re-read the source inside the transaction: the caller's handle may
		// be a stale snapshot, and the in-tx read locks the row.
		src, err := l.accounts.FindByNo(ctx, sourceNo)
		if err != nil {
			return fmt.Errorf("find source: %w", err)
		}
		newBalance, err := src.Balance().Minus(amount)
		if err != nil {
			return err
		}
		if newBalance.Cmp(MinimumBalance()) < 0 {
			return BelowMinimumBalanceError{NewBalance: newBalance, Minimum: MinimumBalance()}
		}
		target, err := l.accounts.FindByNo(ctx, destination)
		if errors.Is(err, sentinel.ErrNotFound) {
			return DestinationNotFoundError{Destination: destination}
		}
		if err != nil {
			return fmt.Errorf("find destination: %w", err)
		}
		if target.ID() == src.ID() {
			// Debit and credit cancel out; nothing to write.
			source.setBalance(src.Balance())
			return nil
		}
		credited, err := target.Balance().Plus(amount)
		if err != nil {
			return err
		}
		src.setBalance(newBalance)
		target.setBalance(credited)
		if err := l.accounts.Save(ctx, src); err != nil {
			return fmt.Errorf("save source: %w", err)
		}
		if err := l.accounts.Save(ctx, target); err != nil {
			return fmt.Errorf("save destination: %w", err)
		}
		// Keep the caller's handle current so it reflects the committed state.
		source.setBalance(newBalance)
		return nil
	})
	if err != nil {
		l.reject("transfer")
		return err
	}
	l.log.InfoContext(ctx, "transfer",
		"sender", sender.Username(), "source", source.ID(), "destination", destination, "amount", amount)
	if l.metrics != nil {
		l.metrics.Transfers.Inc()
	}
	return nil
}

// AddAccountManager grants the manager client manager (not owner) access to
// the account. Only the owner may grant access, and a client can hold at
// most one grant per account.
func (l *Ledger) AddAccountManager(ctx context.Context, owner *Client, account *Account, manager *Client) (*AccountAccess, error) {
	var access *AccountAccess
	err := l.tx.Within(ctx, func(ctx context.Context) error {
		ownerAccess, err := l.accesses.Find(ctx, owner, account)
		if errors.Is(err, sentinel.ErrNotFound) {
			return NotOwnerError{ClientID: owner.ID(), AccountID: account.ID()}
		}
		if err != nil {
			return fmt.Errorf("find owner access: %w", err)
		}
		if !ownerAccess.IsOwner() {
			return NotOwnerError{ClientID: owner.ID(), AccountID: account.ID()}
		}
		if _, err := l.accesses.Find(ctx, manager, account); err == nil {
			return DoubleManagerError{ManagerID: manager.ID(), AccountID: account.ID()}
		} else if !errors.Is(err, sentinel.ErrNotFound) {
			return fmt.Errorf("find manager access: %w", err)
		}
		access = NewAccountAccess(manager, false, account)
		if err := l.accesses.Save(ctx, access); err != nil {
			return fmt.Errorf("save manager access: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.log.InfoContext(ctx, "manager added",
		"owner", owner.Username(), "account", account.ID(), "manager", manager.Username())
	return access, nil
}

// FindOwnAccount resolves an account number for the client. A missing
// account and an account the client has no grant on produce the same error.
func (l *Ledger) FindOwnAccount(ctx context.Context, client *Client, no AccountNo) (*Account, error) {
	account, err := l.accounts.FindByNo(ctx, no)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, NotManagedAccountError{ClientID: client.ID(), AccountNo: no}
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	if _, err := l.accesses.Find(ctx, client, account); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, NotManagedAccountError{ClientID: client.ID(), AccountNo: no}
		}
		return nil, fmt.Errorf("find access: %w", err)
	}
	return account, nil
}

// AccountsReport lists every account the client owns or manages, newest
// access first: account number, role, balance in the printer's locale, and
// account name.
func (l *Ledger) AccountsReport(ctx context.Context, client *Client, p *message.Printer) (string, error) {
	accesses, err := l.accesses.FindManagedBy(ctx, client, false)
	if err != nil {
		return "", fmt.Errorf("list accesses: %w", err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Accounts of client: %s\n", client.Username())
	for _, access := range accesses {
		role := "manages"
		if access.IsOwner() {
			role = "isOwner"
		}
		account := access.Account()
		no, err := account.AccountNo()
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\n", no, role, account.Balance().Format(p), account.Name())
	}
	return b.String(), nil
}
