// Copyright (c) 2026 Vidora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account (Postgres) implements the storage layer for user profiles.

It provides the PostgreSQL implementation for reading and updating user
profile rows, including the linked media asset columns.

# Schema Table Mapping
  - users.account: Master identity, profile data, and media asset links.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidora/internal/platform/apperr"
	"github.com/taibuivan/vidora/internal/platform/database/schema"
	"github.com/taibuivan/vidora/internal/platform/dberr"
	"github.com/taibuivan/vidora/internal/users/auth"
)

// # Repository Implementations

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new Postgres implementation for profile management.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// # AccountRepository Methods

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s,
		       COALESCE(%s, ''), COALESCE(%s, ''),
		       COALESCE(%s, ''), COALESCE(%s, ''),
		       COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.Password, schema.UserAccount.Role,
		schema.UserAccount.AvatarID, schema.UserAccount.AvatarURL,
		schema.UserAccount.CoverImageID, schema.UserAccount.CoverImageURL,
		schema.UserAccount.RefreshTokenHash,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	user := &auth.User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.Role,
		&user.Avatar.ID,
		&user.Avatar.URL,
		&user.CoverImage.ID,
		&user.CoverImage.URL,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Account")
		}
		return nil, fmt.Errorf("postgres_account_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
UpdateDetails modifies the textual profile metadata of a user.

Description: This method specifically syncs the FullName and Email fields,
while refreshing the updatedat timestamp. A unique-constraint collision on
email surfaces as apperr.Conflict.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: apperr.Conflict or update failures
*/
func (repository *PostgresAccountRepository) UpdateDetails(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.FullName, schema.UserAccount.Email, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FullName,
		user.Email,
		time.Now(),
	)

	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("Email is already registered")
		}
		return fmt.Errorf("postgres_account_repo_update_details_failed: %w", err)
	}

	return nil
}

/*
UpdateAvatar replaces the stored avatar identifier and URL pair.

Parameters:
  - context: context.Context
  - user: *auth.User (Avatar fields hold the new asset)

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) UpdateAvatar(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.AvatarID, schema.UserAccount.AvatarURL, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Avatar.ID,
		user.Avatar.URL,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_avatar_failed: %w", err)
	}

	return nil
}

/*
UpdateCoverImage replaces the stored cover image identifier and URL pair.

Parameters:
  - context: context.Context
  - user: *auth.User (CoverImage fields hold the new asset)

Returns:
  - error: Update failures
*/
func (repository *PostgresAccountRepository) UpdateCoverImage(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1 AND %s IS NULL`,
		schema.UserAccount.Table,
		schema.UserAccount.CoverImageID, schema.UserAccount.CoverImageURL, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DeletedAt,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.CoverImage.ID,
		user.CoverImage.URL,
		time.Now(),
	)

	if err != nil {
		return fmt.Errorf("postgres_account_repo_update_cover_failed: %w", err)
	}

	return nil
}
