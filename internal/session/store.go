// Package session keeps web sessions in memory for the host application's
// session middleware. Entries expire after a fixed TTL and the store evicts
// the least recently used session once it reaches capacity.
package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"

	"kakeibo/internal/log"
)

// PruneInterval is how often the janitor sweeps expired sessions.
const PruneInterval = 24 * time.Hour

// Session is one authenticated presence. Data is opaque to the store; what
// it encodes belongs to the caller.
type Session struct {
	Token     string
	Data      []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store holds sessions with TTL and size-based eviction. New starts a
// janitor goroutine that prunes expired entries once per PruneInterval;
// Stop ends it.
type Store struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	items   map[string]*list.Element
	lru     *list.List

	logger   *log.Logger
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a session store and starts its janitor.
func New(ttl time.Duration, maxSize int, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Store{
		maxSize: maxSize,
		ttl:     ttl,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		logger:  logger,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create mints a session holding data and returns it.
func (s *Store) Create(data []byte) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := &Session{
		Token:     uuid.NewString(),
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	elem := s.lru.PushFront(sess)
	s.items[sess.Token] = elem

	// Evict if over capacity
	if s.lru.Len() > s.maxSize {
		if oldest := s.lru.Back(); oldest != nil {
			s.removeElement(oldest)
		}
	}

	return *sess
}

// Find returns the session for token if it exists and has not expired.
func (s *Store) Find(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, exists := s.items[token]
	if !exists {
		return Session{}, false
	}

	sess := elem.Value.(*Session)

	if time.Now().After(sess.ExpiresAt) {
		s.removeElement(elem)
		return Session{}, false
	}

	// Move to front (most recently used)
	s.lru.MoveToFront(elem)
	return *sess, true
}

// Renew pushes a live session's expiry out by a full TTL from now and
// reports whether the session was still live.
func (s *Store) Renew(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, exists := s.items[token]
	if !exists {
		return false
	}

	sess := elem.Value.(*Session)
	if time.Now().After(sess.ExpiresAt) {
		s.removeElement(elem)
		return false
	}

	sess.ExpiresAt = time.Now().Add(s.ttl)
	s.lru.MoveToFront(elem)
	return true
}

// Delete removes a session by token.
func (s *Store) Delete(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, exists := s.items[token]; exists {
		s.removeElement(elem)
	}
}

func (s *Store) removeElement(elem *list.Element) {
	sess := elem.Value.(*Session)
	delete(s.items, sess.Token)
	s.lru.Remove(elem)
}

// CleanExpired removes all expired sessions and returns how many it removed.
func (s *Store) CleanExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var toRemove []*list.Element

	for elem := s.lru.Front(); elem != nil; elem = elem.Next() {
		sess := elem.Value.(*Session)
		if now.After(sess.ExpiresAt) {
			toRemove = append(toRemove, elem)
		}
	}

	for _, elem := range toRemove {
		s.removeElement(elem)
	}

	return len(toRemove)
}

// Size returns the current number of sessions, expired ones included.
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Stop ends the janitor goroutine. Safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) janitor() {
	ticker := time.NewTicker(PruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := s.CleanExpired()
			s.logger.Info("Expired sessions pruned",
				log.FieldOperation, log.OpPrune,
				log.FieldCount, removed)
		case <-s.done:
			return
		}
	}
}
