package services

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"tutorhub/internal/tutorhub/domain/services"
)

const (
	errMsgFailedToGenerateHash = "failed to generate password hash"
	errMsgPasswordTooLong      = "password exceeds 72 bytes"

	dummyPassword = "tutorhub-timing-equalizer"
)

// ServiceBcrypt реализует PasswordService на bcrypt.
type ServiceBcrypt struct {
	cost      int
	dummyHash []byte
}

// NewBcrypt создает сервис bcrypt. Стоимость вне допустимого диапазона заменяется на bcrypt.DefaultCost.
func NewBcrypt(cost int) *ServiceBcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		dummy = nil
	}

	return &ServiceBcrypt{cost: cost, dummyHash: dummy}
}

// Cost возвращает используемую стоимость.
func (s *ServiceBcrypt) Cost() int {
	return s.cost
}

// Hash хэширует пароль с солью.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if password == "" {
		return "", services.ErrInvalidPassword
	}
	if len(password) > services.MaxPasswordBytes {
		return "", fmt.Errorf("%s: %w", errMsgPasswordTooLong, services.ErrInvalidPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgFailedToGenerateHash, services.ErrHashingFailed, err)
	}

	return string(hashed), nil
}

// Verify проверяет пароль. Пустой хэш и пароль длиннее 72 байт сравниваются с фиктивным хэшем,
// чтобы время ответа не отличалось. bcrypt учитывает только первые 72 байта, поэтому длинный пароль
// никогда не считается совпавшим.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) bool {
	if hash == "" || len(password) > services.MaxPasswordBytes {
		s.compareDummy(password)
		return false
	}
	if password == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *ServiceBcrypt) compareDummy(password string) {
	if s.dummyHash == nil {
		return
	}
	if len(password) > services.MaxPasswordBytes {
		password = password[:services.MaxPasswordBytes]
	}
	_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
}
