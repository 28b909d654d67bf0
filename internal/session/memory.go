package session

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/utils"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is a concurrency-safe in-memory session store
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	clock    utils.Clock
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(clock utils.Clock) *MemoryStore {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &MemoryStore{sessions: make(map[string]Session), clock: clock}
}

func (s *MemoryStore) Create(userID string, ttl time.Duration) (Session, error) {
	now := s.clock.Now().UTC()
	sess := Session{
		Token:     utils.GenerateToken(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return sess, nil
}

func (s *MemoryStore) Get(token string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[token]
	if !ok || sess.Expired(s.clock.Now()) {
		return Session{}, fmt.Errorf("get session: %w", biddingerrors.ErrSessionNotFound)
	}
	return sess, nil
}

func (s *MemoryStore) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) PurgeExpired() (int, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

func (s *MemoryStore) Close() error { return nil }
