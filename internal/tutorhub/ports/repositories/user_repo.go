// Package repositories определяет порты хранилищ.
package repositories

import (
	"context"

	"tutorhub/internal/tutorhub/domain/entities"
)

// UserRepository - хранилище пользователей.
type UserRepository interface {
	// FindOne возвращает entities.ErrUserNotFound, если пары (email, тип) нет.
	FindOne(ctx context.Context, email string, userType entities.UserType) (*entities.User, error)

	// Create возвращает entities.ErrUserAlreadyExists при нарушении уникальности.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
}
