// Package repository provides admin account persistence.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"modtok/platform/apperr"
)

// Admin is an administrator account row.
type Admin struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Roles        []string
	CreatedAt    string
	UpdatedAt    string
}

// Repository is the admin account persistence interface.
type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (Admin, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (Admin, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

const adminColumns = `id, email, name, password_hash, roles, created_at, updated_at`

// Repo implements Repository against Postgres.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

// GetAdminByEmail retrieves an admin account by email.
func (r *Repo) GetAdminByEmail(ctx context.Context, email string) (Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE lower(email) = lower($1)`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, apperr.NotFound("admin not found")
		}
		return Admin{}, fmt.Errorf("get admin by email: %w", err)
	}
	return admin, nil
}

// GetAdminByID retrieves an admin account.
func (r *Repo) GetAdminByID(ctx context.Context, id uuid.UUID) (Admin, error) {
	query := `SELECT ` + adminColumns + ` FROM admins WHERE id = $1`

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, apperr.NotFound("admin not found")
		}
		return Admin{}, fmt.Errorf("get admin by id: %w", err)
	}
	return admin, nil
}

// UpdatePassword stores a new password hash.
func (r *Repo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE admins SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("admin not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdmin(row rowScanner) (Admin, error) {
	var admin Admin
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash, &admin.Roles,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return Admin{}, err
	}
	admin.CreatedAt = createdAt.Format(time.RFC3339)
	admin.UpdatedAt = updatedAt.Format(time.RFC3339)
	return admin, nil
}
