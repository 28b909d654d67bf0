// Package accounts is the user directory: registration, login sessions and
// administrative approval of bidders.
package accounts

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/internal/models"
	"casse-auctions/internal/session"
	"casse-auctions/utils"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// Service manages users and their sessions
type Service struct {
	users      *UserStore
	sessions   session.Store
	clock      utils.Clock
	sessionTTL time.Duration
}

// NewService creates an accounts service
func NewService(users *UserStore, sessions session.Store, clock utils.Clock, sessionTTL time.Duration) *Service {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &Service{users: users, sessions: sessions, clock: clock, sessionTTL: sessionTTL}
}

// Register creates a pending Staff account. It cannot bid until an admin approves it.
func (s *Service) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return s.createUser(ctx, name, email, password, models.RoleStaff, models.StatusPending)
}

// EnsureAdmin creates an approved Admin account unless one with this email exists.
// It reports whether a user was created.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, password string) (models.User, bool, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, biddingerrors.ErrUserNotFound) {
		return models.User{}, false, fmt.Errorf("accounts: ensure admin: %w", err)
	}

	u, err := s.createUser(ctx, name, email, password, models.RoleAdmin, models.StatusApproved)
	if err != nil {
		return models.User{}, false, err
	}
	return u, true, nil
}

func (s *Service) createUser(ctx context.Context, name, email, password string, role models.Role, status models.Status) (models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" {
		return models.User{}, fmt.Errorf("accounts: %w - name is required", biddingerrors.ErrInvalidUser)
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return models.User{}, fmt.Errorf("accounts: %w - invalid email", biddingerrors.ErrInvalidUser)
	}
	if len(password) < minPasswordLength {
		return models.User{}, fmt.Errorf("accounts: %w - password must have at least %d characters", biddingerrors.ErrInvalidUser, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("accounts: hash password: %w", err)
	}

	u := models.User{
		ID:           utils.GenerateID(),
		Name:         name,
		Email:        email,
		Role:         role,
		Status:       status,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("accounts: %w", err)
	}
	return u, nil
}

// Login checks credentials and opens a session
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrUserNotFound) {
			return session.Session{}, models.User{}, fmt.Errorf("accounts: login: %w", biddingerrors.ErrInvalidCredentials)
		}
		return session.Session{}, models.User{}, fmt.Errorf("accounts: login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return session.Session{}, models.User{}, fmt.Errorf("accounts: login: %w", biddingerrors.ErrInvalidCredentials)
	}

	sess, err := s.sessions.Create(u.ID, s.sessionTTL)
	if err != nil {
		return session.Session{}, models.User{}, fmt.Errorf("accounts: login: %w", err)
	}
	return sess, u, nil
}

// Logout closes a session
func (s *Service) Logout(_ context.Context, token string) error {
	if err := s.sessions.Delete(token); err != nil {
		return fmt.Errorf("accounts: logout: %w", err)
	}
	return nil
}

// Identify resolves a session token to the caller's current identity.
// Unknown, expired or orphaned sessions yield ErrUnauthorized.
func (s *Service) Identify(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, fmt.Errorf("accounts: identify: %w", biddingerrors.ErrUnauthorized)
	}

	sess, err := s.sessions.Get(token)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrSessionNotFound) {
			return models.Identity{}, fmt.Errorf("accounts: identify: %w", biddingerrors.ErrUnauthorized)
		}
		return models.Identity{}, fmt.Errorf("accounts: identify: %w", err)
	}

	u, err := s.users.Get(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrUserNotFound) {
			return models.Identity{}, fmt.Errorf("accounts: identify: %w", biddingerrors.ErrUnauthorized)
		}
		return models.Identity{}, fmt.Errorf("accounts: identify: %w", err)
	}
	return u.Identity(), nil
}

// GetUser returns a user by id
func (s *Service) GetUser(ctx context.Context, userID string) (models.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("accounts: %w", err)
	}
	return u, nil
}

// ListUsers returns every registered user
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("accounts: %w", err)
	}
	return users, nil
}

// SetStatus approves or suspends a user
func (s *Service) SetStatus(ctx context.Context, userID string, status models.Status) (models.User, error) {
	if status != models.StatusApproved && status != models.StatusPending {
		return models.User{}, fmt.Errorf("accounts: %w - unknown status %q", biddingerrors.ErrInvalidUser, status)
	}
	if err := s.users.SetStatus(ctx, userID, status); err != nil {
		return models.User{}, fmt.Errorf("accounts: %w", err)
	}
	return s.GetUser(ctx, userID)
}

// SetRole changes the role of a user
func (s *Service) SetRole(ctx context.Context, userID string, role models.Role) (models.User, error) {
	if role != models.RoleAdmin && role != models.RoleStaff {
		return models.User{}, fmt.Errorf("accounts: %w - unknown role %q", biddingerrors.ErrInvalidUser, role)
	}
	if err := s.users.SetRole(ctx, userID, role); err != nil {
		return models.User{}, fmt.Errorf("accounts: %w", err)
	}
	return s.GetUser(ctx, userID)
}

// PurgeSessions drops expired sessions
func (s *Service) PurgeSessions() (int, error) {
	n, err := s.sessions.PurgeExpired()
	if err != nil {
		return 0, fmt.Errorf("accounts: %w", err)
	}
	return n, nil
}
