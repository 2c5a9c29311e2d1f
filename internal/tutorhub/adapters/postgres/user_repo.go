// Package postgres содержит репозитории tutorhub поверх pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/pkg/logger"
)

// PgxPoolInterface - часть pgxpool.Pool, которую используют репозитории.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

const (
	queryFindUser = `
        SELECT id::text, email, name, password_hash, user_type, created_at
        FROM users
        WHERE email = $1 AND user_type = $2
    `

	queryCreateUser = `
        INSERT INTO users (email, name, password_hash, user_type)
        VALUES ($1, $2, $3, $4)
        RETURNING id::text, email, name, password_hash, user_type, created_at
    `
)

// UserRepository реализует repositories.UserRepository для Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(pool PgxPoolInterface) *UserRepository {
	return &UserRepository{pool: pool}
}

// FindOne находит пользователя по паре (email, тип).
func (r *UserRepository) FindOne(ctx context.Context, email string, userType entities.UserType) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindOne"))

	user, err := scanUser(r.pool.QueryRow(ctx, queryFindUser, email, userType.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("email", email), zap.String("userType", userType.String()))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", zap.Error(err))
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	return user, nil
}

// Create сохраняет нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created, err := scanUser(r.pool.QueryRow(ctx, queryCreateUser,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.UserType.String(),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			log.Debug(ctx, "user already exists", zap.String("email", user.Email), zap.String("constraint", pgErr.ConstraintName))
			return nil, entities.ErrUserAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var (
		user     entities.User
		userType string
	)

	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&userType,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := entities.ParseUserType(userType)
	if err != nil {
		return nil, fmt.Errorf("stored user type: %w", err)
	}
	user.UserType = parsed

	return &user, nil
}
