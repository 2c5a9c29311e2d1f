// Package entities содержит сущности предметной области tutorhub.
package entities

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Ошибки домена пользователя.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrEmptyPassword      = errors.New("password cannot be empty")
	ErrInvalidUserType    = errors.New("invalid user type")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmptyUserTypeValue = errors.New("user type cannot be empty")
)

// UserType - роль пользователя. Пара (email, тип) уникальна.
type UserType string

// Поддерживаемые роли.
const (
	UserTypeClient UserType = "CLIENT"
	UserTypeTutor  UserType = "TUTOR"
)

// tuteeAlias - устаревшее название клиента, которое присылает фронтенд.
const tuteeAlias = "TUTEE"

// ParseUserType разбирает роль без учета регистра.
func ParseUserType(raw string) (UserType, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return "", ErrEmptyUserTypeValue
	}
	if value == tuteeAlias {
		value = string(UserTypeClient)
	}

	switch UserType(value) {
	case UserTypeClient, UserTypeTutor:
		return UserType(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUserType, raw)
	}
}

// Valid сообщает, является ли значение известной ролью.
func (t UserType) Valid() bool {
	return t == UserTypeClient || t == UserTypeTutor
}

func (t UserType) String() string {
	return string(t)
}

// User - учетная запись пользователя.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	UserType     UserType
	CreatedAt    time.Time
}

// NormalizeEmail приводит адрес к каноническому виду.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail проверяет формат адреса.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return ErrInvalidEmail
	}
	return nil
}
