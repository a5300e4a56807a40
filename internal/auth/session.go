package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token is the opaque handle a caller presents to act as a logged-in user.
type Token string

type Session struct {
	Token     Token
	UserID    string
	CreatedAt time.Time
}

// Sessions is the arena of live sessions keyed by token. A user may hold any
// number of sessions; sessions are only ever removed by Revoke.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[Token]Session
	now      func() time.Time
}

func NewSessions() *Sessions {
	return &Sessions{
		sessions: make(map[Token]Session),
		now:      time.Now,
	}
}

// Start opens a session for userID and returns its token.
func (s *Sessions) Start(userID string) Session {
	sess := Session{
		Token:     Token(uuid.New().String()),
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

// Lookup returns the session for token, if any.
func (s *Sessions) Lookup(token Token) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[token]
	return sess, ok
}

// Revoke drops the session for token. Unknown tokens are ignored.
func (s *Sessions) Revoke(token Token) {
	if token == "" {
		return
	}
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
