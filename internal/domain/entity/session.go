package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the single in-process login session. LastActivity is refreshed
// on every accepted input line and drives the inactivity timeout.
type Session struct {
	ID           uuid.UUID
	UserID       int
	Username     string
	Role         Role
	LastActivity time.Time
}

// NewSession starts a session for an authenticated user
func NewSession(user *User, now time.Time) *Session {
	return &Session{
		ID:           uuid.New(),
		UserID:       user.ID,
		Username:     user.Username,
		Role:         user.Role,
		LastActivity: now,
	}
}

// Touch records input activity
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}

// ExpiredAt reports whether the session has been idle strictly longer than
// timeout as of now. Idle for exactly timeout is still alive.
func (s *Session) ExpiredAt(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// Can checks a capability against the session's role
func (s *Session) Can(c Capability) bool {
	return s.Role.Can(c)
}
