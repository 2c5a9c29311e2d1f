package logger

import (
	"context"

	"github.com/google/uuid"
)

// MaxRequestIDLength ограничивает длину идентификатора, принятого из заголовка клиента.
const MaxRequestIDLength = 128

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет идентификатор запроса в контекст, генерируя новый при пустом значении.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

// NormalizeRequestID возвращает идентификатор из заголовка, если он безопасен для логов,
// иначе генерирует новый.
func NormalizeRequestID(raw string) string {
	if raw == "" || len(raw) > MaxRequestIDLength {
		return GenerateRequestID()
	}
	for _, r := range raw {
		if !isRequestIDRune(r) {
			return GenerateRequestID()
		}
	}
	return raw
}

func isRequestIDRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.' || r == ':':
		return true
	default:
		return false
	}
}
