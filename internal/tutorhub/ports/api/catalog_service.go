package api

import (
	"context"

	"tutorhub/internal/tutorhub/domain/entities"
)

// CatalogUseCase отдает публичные сводки.
type CatalogUseCase interface {
	CourseSummaries(ctx context.Context) ([]entities.CourseSummary, error)

	TutorSummaries(ctx context.Context) ([]entities.TutorSummary, error)

	Health(ctx context.Context) error
}
