// Package memory provides in-memory store implementations backing the bank
// services in tests and in development runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"girobank/internal/bank"
	"girobank/pkg/platform/sentinel"
)

// ClientStore keeps clients in a map guarded by a mutex. Identities are
// assigned from a monotonically increasing counter, so descending id order
// equals newest-first.
type ClientStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*bank.Client
}

// NewClientStore creates an empty in-memory client store.
func NewClientStore() *ClientStore {
	return &ClientStore{byID: make(map[int64]*bank.Client)}
}

func (s *ClientStore) Save(ctx context.Context, client *bank.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.byID {
		if existing.Username() == client.Username() && existing.ID() != client.ID() {
			return sentinel.ErrConflict
		}
	}
	if !client.Saved() {
		s.nextID++
		if err := client.AssignID(s.nextID); err != nil {
			return err
		}
	}
	s.byID[client.ID()] = client
	return nil
}

func (s *ClientStore) Delete(ctx context.Context, client *bank.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, client.ID())
	return nil
}

func (s *ClientStore) FindByID(ctx context.Context, id int64) (*bank.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	client, ok := s.byID[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return client, nil
}

func (s *ClientStore) FindByUsername(ctx context.Context, username string) (*bank.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.byID {
		if client.Username() == username {
			return client, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (s *ClientStore) FindAll(ctx context.Context) ([]*bank.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clients := make([]*bank.Client, 0, len(s.byID))
	for _, client := range s.byID {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].ID() > clients[j].ID() })
	return clients, nil
}

func (s *ClientStore) FindAllBornFrom(ctx context.Context, minDate time.Time) ([]*bank.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var clients []*bank.Client
	for _, client := range s.byID {
		if !client.BirthDate().Before(minDate) {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		bi, bj := clients[i].BirthDate(), clients[j].BirthDate()
		if !bi.Equal(bj) {
			return bi.After(bj)
		}
		return clients[i].ID() > clients[j].ID()
	})
	return clients, nil
}

func (s *ClientStore) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID = make(map[int64]*bank.Client)
	return nil
}
