package services

import (
	"context"
	"time"

	"tutorhub/internal/tutorhub/domain/services"
)

// TokenService выпускает и проверяет подписанные токены.
type TokenService interface {
	IssueAccess(ctx context.Context, identity services.Identity) (string, time.Time, error)

	IssueRefresh(ctx context.Context, identity services.Identity) (string, time.Time, error)

	Verify(ctx context.Context, token string) (*services.TokenClaims, error)

	IssuePair(ctx context.Context, identity services.Identity) (*services.TokenPair, error)

	Refresh(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}
