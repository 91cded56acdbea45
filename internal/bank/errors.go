package bank

import "fmt"

// Every business-rule failure in this package is a typed error carrying the
// identifiers and amounts a caller needs to build a precise message. The
// transport layer matches them with errors.As and never sees raw store
// errors from the ledger paths.

// AmountError rejects a non-positive deposit or transfer amount.
type AmountError struct {
	Amount Amount
}

func (e AmountError) Error() string {
	return fmt.Sprintf("amount of %s euros is illegal: must be greater than 0", e.Amount)
}

// WithoutRightError rejects a transfer by a client who is neither owner nor
// manager of the source account.
type WithoutRightError struct {
	ClientID  int64
	AccountID int64
}

func (e WithoutRightError) Error() string {
	return fmt.Sprintf("client %d is neither owner nor manager of account %d", e.ClientID, e.AccountID)
}

// BelowMinimumBalanceError rejects a transfer that would push the source
// balance below the floor.
type BelowMinimumBalanceError struct {
	NewBalance Amount
	Minimum    Amount
}

func (e BelowMinimumBalanceError) Error() string {
	return fmt.Sprintf("new balance of %s euros would fall below the minimum balance of %s euros",
		e.NewBalance, e.Minimum)
}

// DestinationNotFoundError reports an unknown destination account number.
type DestinationNotFoundError struct {
	Destination AccountNo
}

func (e DestinationNotFoundError) Error() string {
	return fmt.Sprintf("destination account %s not found", e.Destination)
}

// NotOwnerError rejects a manager grant by a client who does not own the
// account.
type NotOwnerError struct {
	ClientID  int64
	AccountID int64
}

func (e NotOwnerError) Error() string {
	return fmt.Sprintf("client %d is not owner of account %d", e.ClientID, e.AccountID)
}

// DoubleManagerError rejects a second access grant for the same client and
// account.
type DoubleManagerError struct {
	ManagerID int64
	AccountID int64
}

func (e DoubleManagerError) Error() string {
	return fmt.Sprintf("client %d already has access to account %d", e.ManagerID, e.AccountID)
}

// NotManagedAccountError reports that an account does not exist or is not
// accessible to the requesting client. The two cases are indistinguishable
// on purpose, so callers cannot probe for foreign accounts.
type NotManagedAccountError struct {
	ClientID  int64
	AccountNo AccountNo
}

func (e NotManagedAccountError) Error() string {
	return fmt.Sprintf("client %d has no account with number %s", e.ClientID, e.AccountNo)
}

// DepositFailedError wraps an unexpected store failure during a deposit.
type DepositFailedError struct {
	Amount      Amount
	Destination AccountNo
	Err         error
}

func (e DepositFailedError) Error() string {
	return fmt.Sprintf("amount of %s euros could not be deposited into account %s: %v",
		e.Amount, e.Destination, e.Err)
}

func (e DepositFailedError) Unwrap() error { return e.Err }

// UsernameError rejects a username that does not match the required pattern.
type UsernameError struct {
	Username string
}

func (e UsernameError) Error() string {
	return fmt.Sprintf("illegal username %q: must have 1..31 characters, start with a letter or underscore, and contain only english letters, underscores, and decimal digits", e.Username)
}

// ClientNotFoundError reports an unknown username.
type ClientNotFoundError struct {
	Username string
}

func (e ClientNotFoundError) Error() string {
	return fmt.Sprintf("no client found for username %q", e.Username)
}

// StillOwnerError refuses to delete a client who still owns an account.
type StillOwnerError struct {
	Username  string
	AccountID int64
}

func (e StillOwnerError) Error() string {
	return fmt.Sprintf("cannot delete client %q: still owns account %d", e.Username, e.AccountID)
}
