package accounts

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/internal/database/sqlc"
	"casse-auctions/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// UserStore persists registered users
type UserStore struct {
	queries *sqlc.Queries
}

// NewUserStore wraps a migrated database connection
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{queries: sqlc.New(db)}
}

// Create inserts a user; emails are unique
func (s *UserStore) Create(ctx context.Context, u models.User) error {
	err := s.queries.InsertUser(ctx, sqlc.InsertUserParams{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
		CreatedAt:    u.CreatedAt.UTC(),
	})
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("create user %s: %w", u.Email, biddingerrors.ErrEmailTaken)
		}
		return fmt.Errorf("create user %s: %w", u.Email, err)
	}
	return nil
}

// Get returns a user by id
func (s *UserStore) Get(ctx context.Context, userID string) (models.User, error) {
	row, err := s.queries.GetUser(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("get user %s: %w", userID, notFound(err))
	}
	return toUser(row), nil
}

// GetByEmail returns a user by email, case-insensitively
func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return models.User{}, fmt.Errorf("get user by email: %w", notFound(err))
	}
	return toUser(row), nil
}

// List returns all users, oldest first
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, toUser(row))
	}
	return users, nil
}

// SetStatus changes the approval status of a user
func (s *UserStore) SetStatus(ctx context.Context, userID string, status models.Status) error {
	n, err := s.queries.UpdateUserStatus(ctx, sqlc.UpdateUserStatusParams{Status: string(status), ID: userID})
	return checkUpdated("status", userID, n, err)
}

// SetRole changes the role of a user
func (s *UserStore) SetRole(ctx context.Context, userID string, role models.Role) error {
	n, err := s.queries.UpdateUserRole(ctx, sqlc.UpdateUserRoleParams{Role: string(role), ID: userID})
	return checkUpdated("role", userID, n, err)
}

func checkUpdated(column, userID string, n int64, err error) error {
	if err != nil {
		return fmt.Errorf("update %s of user %s: %w", column, userID, err)
	}
	if n == 0 {
		return fmt.Errorf("update %s of user %s: %w", column, userID, biddingerrors.ErrUserNotFound)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return biddingerrors.ErrUserNotFound
	}
	return err
}

func toUser(row sqlc.User) models.User {
	return models.User{
		ID:           row.ID,
		Name:         row.Name,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         models.Role(row.Role),
		Status:       models.Status(row.Status),
		CreatedAt:    row.CreatedAt.UTC(),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
