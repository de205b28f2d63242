package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/RDias-31/presenteperfeito/internal/domain"
)

// MemoryStore is a thread-safe in-memory CreditsLedger for local development and tests.
// Balances are lost on restart.
type MemoryStore struct {
	credits map[string]int
	mutex   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory ledger
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		credits: make(map[string]int),
	}
}

// GetCredits retrieves a user's balance
func (s *MemoryStore) GetCredits(ctx context.Context, userID string) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	credits, exists := s.credits[userID]
	if !exists {
		return 0, domain.ErrUserNotFound
	}
	return credits, nil
}

// SetCredits overwrites the balance of an existing user
func (s *MemoryStore) SetCredits(ctx context.Context, userID string, credits int) error {
	if credits < 0 {
		return fmt.Errorf("credits must not be negative, got %d", credits)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.credits[userID]; !exists {
		return domain.ErrUserNotFound
	}
	s.credits[userID] = credits
	return nil
}

// CreateCredits adds a user unless they already exist
func (s *MemoryStore) CreateCredits(ctx context.Context, userID string, credits int) (bool, error) {
	if credits < 0 {
		return false, fmt.Errorf("credits must not be negative, got %d", credits)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.credits[userID]; exists {
		return false, nil
	}
	s.credits[userID] = credits
	return true, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Size returns the number of users in the ledger
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.credits)
}
