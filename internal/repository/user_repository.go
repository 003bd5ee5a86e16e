package repository

import (
	"context"
	"strconv"

	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/persistence"
)

type userRepository struct {
	db persistence.Queryer
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db persistence.Queryer) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, password_hash, role, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	return translatePgError(err, "user", user.Username)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, role, active, created_at
        FROM users WHERE username=$1`

	var (
		user domain.User
		role string
	)
	if err := persistence.QueryerFromContext(ctx, r.db).QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&user.Active,
		&user.CreatedAt,
	); err != nil {
		return nil, translatePgError(err, "user", username)
	}
	user.Role = domain.UserRole(role)
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	cmd, err := persistence.QueryerFromContext(ctx, r.db).Exec(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return notFound("user", strconv.FormatInt(id, 10))
	}
	return nil
}
