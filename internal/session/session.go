// Package session keeps server-side login sessions referenced by a cookie token.
package session

import (
	"time"
)

// Session binds an opaque token to a user until it expires
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions. Get returns biddingerrors.ErrSessionNotFound for
// unknown or expired tokens.
type Store interface {
	Create(userID string, ttl time.Duration) (Session, error)
	Get(token string) (Session, error)
	Delete(token string) error
	PurgeExpired() (int, error)
	Close() error
}
