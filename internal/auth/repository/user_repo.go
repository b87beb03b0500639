package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/project-tracker/internal/auth/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/storage/postgres"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email. Emails are stored lowercased.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// Create inserts a user with an already hashed password
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns + `
	`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, name, email, passwordHash))
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
