package bank

import "fmt"

// AccountAccess links a Client to an Account, either as its owner or as a
// manager. For a given (client, account) pair at most one row exists. The
// owner row is created together with the account and is never revoked.
type AccountAccess struct {
	id      int64
	client  *Client
	owner   bool
	account *Account
}

// NewAccountAccess creates an unsaved access grant.
func NewAccountAccess(client *Client, owner bool, account *Account) *AccountAccess {
	return &AccountAccess{client: client, owner: owner, account: account}
}

// RehydrateAccountAccess reconstructs a persisted access grant.
func RehydrateAccountAccess(id int64, client *Client, owner bool, account *Account) *AccountAccess {
	return &AccountAccess{id: id, client: client, owner: owner, account: account}
}

// ID returns the store-assigned identity, 0 while unsaved.
func (aa *AccountAccess) ID() int64 { return aa.id }

// Saved reports whether the store has assigned an identity.
func (aa *AccountAccess) Saved() bool { return aa.id != 0 }

// AssignID is called by stores on first save.
func (aa *AccountAccess) AssignID(id int64) error {
	if aa.id != 0 {
		return ErrAlreadySaved
	}
	aa.id = id
	return nil
}

// Client returns the client holding this access.
func (aa *AccountAccess) Client() *Client { return aa.client }

// IsOwner reports whether the client owns the account rather than merely
// managing it.
func (aa *AccountAccess) IsOwner() bool { return aa.owner }

// Account returns the account this access grants rights on.
func (aa *AccountAccess) Account() *Account { return aa.account }

func (aa *AccountAccess) String() string {
	return fmt.Sprintf("AccountAccess{client=%q, isOwner=%t, account=%q}",
		aa.client.Username(), aa.owner, aa.account.Name())
}
