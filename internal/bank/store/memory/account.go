package memory

import (
	"context"
	"sync"

	"girobank/internal/bank"
	"girobank/pkg/platform/sentinel"
)

// AccountStore keeps accounts in a map guarded by a mutex.
type AccountStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*bank.Account
}

// NewAccountStore creates an empty in-memory account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{byID: make(map[int64]*bank.Account)}
}

func (s *AccountStore) Save(ctx context.Context, account *bank.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !account.Saved() {
		s.nextID++
		if err := account.AssignID(s.nextID); err != nil {
			return err
		}
	}
	s.byID[account.ID()] = account
	return nil
}

func (s *AccountStore) FindByNo(ctx context.Context, no bank.AccountNo) (*bank.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.byID[no.Int64()]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return account, nil
}

func (s *AccountStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int64]*bank.Account)
	return nil
}
