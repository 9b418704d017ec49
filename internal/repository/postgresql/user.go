package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/hrms-core/hrms-backend-go/internal/domain/user"
	"github.com/hrms-core/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, email, password_hash, role, employee_id, oauth_provider, oauth_provider_id, is_active, created_at, updated_at`

func (r *userRepositoryImpl) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, role, employee_id, oauth_provider, oauth_provider_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	var created user.User
	err := q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.Role, u.EmployeeID, u.OAuthProvider, u.OAuthProviderID, u.IsActive,
	).Scan(
		&created.ID, &created.Email, &created.PasswordHash, &created.Role, &created.EmployeeID,
		&created.OAuthProvider, &created.OAuthProviderID, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepositoryImpl) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE oauth_provider = $1 AND oauth_provider_id = $2`, provider, providerID)
}

func (r *userRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update user active flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *userRepositoryImpl) getOne(ctx context.Context, query string, args ...interface{}) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	var u user.User
	err := q.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.EmployeeID,
		&u.OAuthProvider, &u.OAuthProviderID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, user.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
