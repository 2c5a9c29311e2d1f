// Package services определяет порты сервисов паролей и токенов.
package services

import "context"

// PasswordService хэширует и проверяет пароли.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	// Verify сравнивает за постоянное время и никогда не возвращает ошибку:
	// поврежденный хэш просто не совпадает.
	Verify(ctx context.Context, password, hash string) bool
}
