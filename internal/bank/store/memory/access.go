package memory

import (
	"context"
	"sort"
	"sync"

	"girobank/internal/bank"
	"girobank/pkg/platform/sentinel"
)

// AccessStore keeps access grants in a map guarded by a mutex. The
// (client, account) pair is unique; identities increase monotonically so
// descending id order equals newest-access-first.
type AccessStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*bank.AccountAccess
}

// NewAccessStore creates an empty in-memory access store.
func NewAccessStore() *AccessStore {
	return &AccessStore{byID: make(map[int64]*bank.AccountAccess)}
}

func (s *AccessStore) Save(ctx context.Context, access *bank.AccountAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.ID() != access.ID() &&
			existing.Client().ID() == access.Client().ID() &&
			existing.Account().ID() == access.Account().ID() {
			return sentinel.ErrConflict
		}
	}
	if !access.Saved() {
		s.nextID++
		if err := access.AssignID(s.nextID); err != nil {
			return err
		}
	}
	s.byID[access.ID()] = access
	return nil
}

func (s *AccessStore) Delete(ctx context.Context, access *bank.AccountAccess) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, access.ID())
	return nil
}

func (s *AccessStore) Find(ctx context.Context, client *bank.Client, account *bank.Account) (*bank.AccountAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, access := range s.byID {
		if access.Client().ID() == client.ID() && access.Account().ID() == account.ID() {
			return access, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *AccessStore) FindManagedBy(ctx context.Context, client *bank.Client, ownerOnly bool) ([]*bank.AccountAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accesses []*bank.AccountAccess
	for _, access := range s.byID {
		if access.Client().ID() != client.ID() {
			continue
		}
		if ownerOnly && !access.IsOwner() {
			continue
		}
		accesses = append(accesses, access)
	}
	sort.Slice(accesses, func(i, j int) bool { return accesses[i].ID() > accesses[j].ID() })
	return accesses, nil
}

func (s *AccessStore) FindWithBalanceAtLeast(ctx context.Context, min bank.Amount) ([]*bank.AccountAccess, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var accesses []*bank.AccountAccess
	for _, access := range s.byID {
		if access.Account().Balance().Cmp(min) >= 0 {
			accesses = append(accesses, access)
		}
	}
	sort.Slice(accesses, func(i, j int) bool {
		bi, bj := accesses[i].Account().Balance(), accesses[j].Account().Balance()
		if c := bi.Cmp(bj); c != 0 {
			return c > 0
		}
		return accesses[i].Client().ID() > accesses[j].Client().ID()
	})
	return accesses, nil
}

func (s *AccessStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int64]*bank.AccountAccess)
	return nil
}
