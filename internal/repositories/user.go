package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-inventory-store/internal/models"
)

const getUserByID = `-- name: GetUserByID :one
SELECT id, public_id, email, username, display_name, created_at, updated_at, deleted_at FROM users
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`

const getUserByPublicID = `-- name: GetUserByPublicID :one
SELECT id, public_id, email, username, display_name, created_at, updated_at, deleted_at FROM users
WHERE public_id = $1 AND deleted_at IS NULL
LIMIT 1`

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT id, public_id, email, username, display_name, created_at, updated_at, deleted_at FROM users
WHERE email = $1 AND deleted_at IS NULL
LIMIT 1`

const getUserByUsername = `-- name: GetUserByUsername :one
SELECT id, public_id, email, username, display_name, created_at, updated_at, deleted_at FROM users
WHERE username = $1 AND deleted_at IS NULL
LIMIT 1`

const listUsers = `-- name: ListUsers :many
SELECT id, public_id, email, username, display_name, created_at, updated_at, deleted_at FROM users
WHERE deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

const countUsers = `-- name: CountUsers :one
SELECT COUNT(*) FROM users
WHERE deleted_at IS NULL`

const createUser = `-- name: CreateUser :one
INSERT INTO users (
    email,
    username,
    display_name
) VALUES (
    $1, $2, $3
) RETURNING id, public_id, email, username, display_name, created_at, updated_at, deleted_at`

const updateUser = `-- name: UpdateUser :one
UPDATE users
SET
    email = COALESCE($2, email),
    username = COALESCE($3, username),
    display_name = COALESCE($4, display_name)
WHERE id = $1 AND deleted_at IS NULL
RETURNING id, public_id, email, username, display_name, created_at, updated_at, deleted_at`

const softDeleteUser = `-- name: SoftDeleteUser :exec
UPDATE users
SET deleted_at = NOW()
WHERE id = $1 AND deleted_at IS NULL`

const hardDeleteUser = `-- name: HardDeleteUser :exec
DELETE FROM users
WHERE id = $1`

// UserRepository runs the users statements. Every read and the partial
// update skip soft-deleted rows; HardDelete does not.
type UserRepository struct {
	base
}

// NewUserRepository creates a UserRepository. txGetter may be nil.
func NewUserRepository(db sqlx.ExtContext, txGetter TxGetter) *UserRepository {
	return &UserRepository{base{db: db, txGetter: txGetter}}
}

func (r *UserRepository) GetByID(ctx context.Context, arg models.GetUserByIDParams) (*models.User, error) {
	return queryOne(ctx, r.executor(ctx), getUserByID, scanUser, arg.ID)
}

func (r *UserRepository) GetByPublicID(ctx context.Context, arg models.GetUserByPublicIDParams) (*models.User, error) {
	return queryOne(ctx, r.executor(ctx), getUserByPublicID, scanUser, arg.PublicID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, arg models.GetUserByEmailParams) (*models.User, error) {
	return queryOne(ctx, r.executor(ctx), getUserByEmail, scanUser, arg.Email)
}

func (r *UserRepository) GetByUsername(ctx context.Context, arg models.GetUserByUsernameParams) (*models.User, error) {
	return queryOne(ctx, r.executor(ctx), getUserByUsername, scanUser, arg.Username)
}

// List returns a page of live users, newest first.
func (r *UserRepository) List(ctx context.Context, arg models.ListUsersParams) ([]models.User, error) {
	return queryMany(ctx, r.executor(ctx), listUsers, scanUser, arg.Limit, arg.Offset)
}

func (r *UserRepository) Count(ctx context.Context) (*models.Count, error) {
	return queryOne(ctx, r.executor(ctx), countUsers, scanCount)
}

func (r *UserRepository) Create(ctx context.Context, arg models.CreateUserParams) (*models.User, error) {
	return queryOne(ctx, r.executor(ctx), createUser, scanUser,
		arg.Email,
		arg.Username,
		arg.DisplayName,
	)
}

// Update applies a partial update to a live user. Nil fields keep their
// stored values; a soft-deleted user yields nil.
func (r *UserRepository) Update(ctx context.Context, arg models.UpdateUserParams) (*models.User, error) {
	return queryOne(ctx, r.executor(ctx), updateUser, scanUser,
		arg.ID,
		arg.Email,
		arg.Username,
		arg.DisplayName,
	)
}

// SoftDelete stamps deleted_at on a live user.
func (r *UserRepository) SoftDelete(ctx context.Context, arg models.SoftDeleteUserParams) error {
	return execNoResult(ctx, r.executor(ctx), softDeleteUser, arg.ID)
}

// HardDelete removes the row whether or not it was soft-deleted.
func (r *UserRepository) HardDelete(ctx context.Context, arg models.HardDeleteUserParams) error {
	return execNoResult(ctx, r.executor(ctx), hardDeleteUser, arg.ID)
}
