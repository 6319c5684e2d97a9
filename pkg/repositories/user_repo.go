package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nimeshabuddhika/resilient-antifraud/pkg/models"
)

// UserRepository defines the interface for user repository.
type UserRepository interface {
	// Create creates a new user. Existing usernames are left untouched.
	Create(ctx context.Context, tx pgx.Tx, user models.User) (pgconn.CommandTag, error)
	FindByUsername(ctx context.Context, q Querier, username string) (models.User, error)
	UpdateLocked(ctx context.Context, tx pgx.Tx, username string, locked bool) (int64, error)
}

type UserRepositoryImpl struct {
}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (u UserRepositoryImpl) Create(ctx context.Context, tx pgx.Tx, user models.User) (pgconn.CommandTag, error) {
	return tx.Exec(ctx, `INSERT INTO users (username, name, role, locked, created_at, updated_at) 
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (username) DO NOTHING`,
		user.Username,
		user.Name,
		string(user.Role),
		user.Locked,
		user.CreatedAt,
		user.UpdatedAt,
	)
}

func (u UserRepositoryImpl) FindByUsername(ctx context.Context, q Querier, username string) (models.User, error) {
	var (
		user models.User
		role string
	)
	err := q.QueryRow(ctx, `SELECT id, username, name, role, locked, created_at, updated_at FROM users WHERE username = $1`, username).
		Scan(&user.ID, &user.Username, &user.Name, &role, &user.Locked, &user.CreatedAt, &user.UpdatedAt)
	user.Role = models.Role(role)
	return user, err
}

func (u UserRepositoryImpl) UpdateLocked(ctx context.Context, tx pgx.Tx, username string, locked bool) (int64, error) {
	tag, err := tx.Exec(ctx, `UPDATE users SET locked = $1, updated_at = NOW() WHERE username = $2`, locked, username)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
