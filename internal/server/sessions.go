package server

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// sessionTTL matches the token lifetime admins were promised.
const sessionTTL = 7 * 24 * time.Hour

type adminSession struct {
	Token     string
	Username  string
	ExpiresAt time.Time
}

// SessionStore holds issued bearer tokens in memory. A restart logs
// every admin out, which is acceptable for a single-operator tool.
type SessionStore struct {
	mu     sync.Mutex
	tokens map[string]adminSession
	now    func() time.Time
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		tokens: map[string]adminSession{},
		now:    time.Now,
	}
}

// Create issues an opaque token for the named admin.
func (s *SessionStore) Create(username string) adminSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := adminSession{
		Token:     newToken(),
		Username:  username,
		ExpiresAt: s.now().Add(sessionTTL),
	}
	s.tokens[sess.Token] = sess
	return sess
}

// Lookup resolves a token, dropping it once expired.
func (s *SessionStore) Lookup(token string) (adminSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.tokens[token]
	if !ok {
		return adminSession{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.tokens, token)
		return adminSession{}, false
	}
	return sess, true
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
