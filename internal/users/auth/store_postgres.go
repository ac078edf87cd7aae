// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/hms/internal/platform/database/schema"
	"github.com/taibuivan/hms/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] on the users.account table.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// userColumns follows the scan order of findOne.
var userColumns = strings.Join(schema.UserAccount.Columns(), ", ")

/*
Create persists a new user record into the users.account table.

Description: Initializes timestamps when the caller left them zero. The unique
index on email turns a duplicate registration into dberr.ErrConflict.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: dberr.ErrConflict or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := `
		INSERT INTO users.account (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Name,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return dberr.Wrap(err, "postgres_user_repo_create")
}

// FindByID retrieves a user record by primary key.
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE id = $1`
	return repository.findOne(context, query, id, "postgres_user_repo_find_by_id")
}

// FindByEmail retrieves a user record by their unique email address.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users.account WHERE email = $1`
	return repository.findOne(context, query, email, "postgres_user_repo_find_by_email")
}

func (repository *PostgresUserRepository) findOne(context context.Context, query, arg, action string) (*User, error) {
	user := &User{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return user, nil
}

// # Reset Token Repository

// PostgresResetTokenRepository implements [ResetTokenRepository] on the
// users.passwordresettoken table.
type PostgresResetTokenRepository struct {
	pool *pgxpool.Pool
}

// NewResetTokenRepository creates a new PostgreSQL implementation of the ResetTokenRepository.
func NewResetTokenRepository(pool *pgxpool.Pool) *PostgresResetTokenRepository {
	return &PostgresResetTokenRepository{pool: pool}
}

/*
Issue replaces every unused token of the owner with the new one.

Description: The delete and the insert share one transaction so two concurrent
requests for the same user cannot both leave a live link behind.

Parameters:
  - context: context.Context
  - token: *PasswordResetToken

Returns:
  - error: Transactional or database failures
*/
func (repository *PostgresResetTokenRepository) Issue(context context.Context, token *PasswordResetToken) error {

	// Establish Transactional Boundary
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_issue_reset_token_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Lock the owner row so concurrent issues for one user serialize
	const lockQuery = `SELECT id FROM users.account WHERE id = $1 FOR UPDATE`
	var ownerID string
	if err := transaction.QueryRow(context, lockQuery, token.UserID).Scan(&ownerID); err != nil {
		return dberr.Wrap(err, "lock_reset_token_owner")
	}

	// Step 2: Drop older live links
	const deleteQuery = `
		DELETE FROM users.passwordresettoken
		WHERE userid = $1 AND usedat IS NULL`
	if _, err := transaction.Exec(context, deleteQuery, token.UserID); err != nil {
		return dberr.Wrap(err, "delete_unused_reset_tokens")
	}

	// Step 3: Persist the new token
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	const insertQuery = `
		INSERT INTO users.passwordresettoken (id, token, userid, expiresat, usedat, createdat)
		VALUES ($1, $2, $3, $4, NULL, $5)`
	_, err = transaction.Exec(context, insertQuery,
		token.ID,
		token.Token,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "insert_reset_token")
	}

	return transaction.Commit(context)
}

// FindByToken retrieves a token record by its secret value.
func (repository *PostgresResetTokenRepository) FindByToken(context context.Context, token string) (*PasswordResetToken, error) {
	const query = `
		SELECT id, token, userid, expiresat, usedat, createdat
		FROM users.passwordresettoken
		WHERE token = $1`

	record := &PasswordResetToken{}
	err := repository.pool.QueryRow(context, query, token).Scan(
		&record.ID,
		&record.Token,
		&record.UserID,
		&record.ExpiresAt,
		&record.UsedAt,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_reset_token_find")
	}
	return record, nil
}

/*
Consume marks the token used and sets the new password hash.

Description: The token update is guarded on "unused and unexpired" so a token
consumed by a concurrent request matches no row; the transaction then rolls
back without touching the password.

Parameters:
  - context: context.Context
  - tokenID: string
  - userID: string
  - passwordHash: string

Returns:
  - error: ErrTokenUnusable, or transactional and database failures
*/
func (repository *PostgresResetTokenRepository) Consume(context context.Context, tokenID, userID, passwordHash string) error {

	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_consume_reset_token_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Claim the token
	const claimQuery = `
		UPDATE users.passwordresettoken
		SET usedat = NOW()
		WHERE id = $1 AND userid = $2 AND usedat IS NULL AND expiresat > NOW()`
	result, err := transaction.Exec(context, claimQuery, tokenID, userID)
	if err != nil {
		return dberr.Wrap(err, "claim_reset_token")
	}
	if result.RowsAffected() == 0 {
		return ErrTokenUnusable
	}

	// Step 2: Replace the password hash
	const passwordQuery = `
		UPDATE users.account
		SET passwordhash = $2, updatedat = NOW()
		WHERE id = $1`
	result, err = transaction.Exec(context, passwordQuery, userID, passwordHash)
	if err != nil {
		return dberr.Wrap(err, "update_password_hash")
	}
	if result.RowsAffected() == 0 {
		return ErrTokenUnusable
	}

	return transaction.Commit(context)
}
