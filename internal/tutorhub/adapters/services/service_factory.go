// Package services содержит реализации сервисов паролей и токенов.
package services

import (
	"tutorhub/internal/tutorhub/domain/services"
	ports "tutorhub/internal/tutorhub/ports/services"
)

// ServiceFactory создает сервисы аутентификации из конфигурации.
type ServiceFactory struct {
	passwordService ports.PasswordService
	tokenService    ports.TokenService
}

// NewServiceFactory создает фабрику. Ошибка конфигурации токенов фатальна для процесса.
func NewServiceFactory(jwtConfig services.JWTConfig, bcryptCost int, opts ...Option) (*ServiceFactory, error) {
	tokenService, err := NewJWT(jwtConfig, opts...)
	if err != nil {
		return nil, err
	}

	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    tokenService,
	}, nil
}

// PasswordService возвращает сервис паролей.
func (f *ServiceFactory) PasswordService() ports.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис токенов.
func (f *ServiceFactory) TokenService() ports.TokenService {
	return f.tokenService
}
