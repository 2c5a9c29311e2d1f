package repositories

import (
	"context"

	"tutorhub/internal/tutorhub/domain/entities"
)

// CatalogRepository отдает публичные сводки курсов и преподавателей.
type CatalogRepository interface {
	CourseSummaries(ctx context.Context) ([]entities.CourseSummary, error)

	TutorSummaries(ctx context.Context) ([]entities.TutorSummary, error)

	Ping(ctx context.Context) error
}
