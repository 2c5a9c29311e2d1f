package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/pkg/logger"
)

const (
	queryCourseSummaries = `
        SELECT c.id::text, c.title, c.subject, COALESCE(c.description, ''), u.name, c.created_at
        FROM courses c
        JOIN users u ON u.id = c.tutor_id
        ORDER BY c.created_at DESC
    `

	queryTutorSummaries = `
        SELECT u.id::text, u.name, u.email, COUNT(c.id)
        FROM users u
        LEFT JOIN courses c ON c.tutor_id = u.id
        WHERE u.user_type = 'TUTOR'
        GROUP BY u.id, u.name, u.email
        ORDER BY u.name
    `
)

// CatalogRepository реализует repositories.CatalogRepository для Postgres.
type CatalogRepository struct {
	pool PgxPoolInterface
}

// NewCatalogRepository создает репозиторий каталога.
func NewCatalogRepository(pool PgxPoolInterface) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// CourseSummaries возвращает курсы, новые первыми.
func (r *CatalogRepository) CourseSummaries(ctx context.Context) ([]entities.CourseSummary, error) {
	log := logger.Log(ctx).With(zap.String("repository", "catalog"), zap.String("method", "CourseSummaries"))

	rows, err := r.pool.Query(ctx, queryCourseSummaries)
	if err != nil {
		log.Error(ctx, "error querying courses", zap.Error(err))
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := make([]entities.CourseSummary, 0)
	for rows.Next() {
		var course entities.CourseSummary
		if err := rows.Scan(
			&course.ID,
			&course.Title,
			&course.Subject,
			&course.Description,
			&course.TutorName,
			&course.CreatedAt,
		); err != nil {
			log.Error(ctx, "error scanning course", zap.Error(err))
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating courses", zap.Error(err))
		return nil, fmt.Errorf("error iterating courses: %w", err)
	}

	log.Debug(ctx, "courses loaded", zap.Int("count", len(courses)))
	return courses, nil
}

// TutorSummaries возвращает преподавателей с числом их курсов.
func (r *CatalogRepository) TutorSummaries(ctx context.Context) ([]entities.TutorSummary, error) {
	log := logger.Log(ctx).With(zap.String("repository", "catalog"), zap.String("method", "TutorSummaries"))

	rows, err := r.pool.Query(ctx, queryTutorSummaries)
	if err != nil {
		log.Error(ctx, "error querying tutors", zap.Error(err))
		return nil, fmt.Errorf("error querying tutors: %w", err)
	}
	defer rows.Close()

	tutors := make([]entities.TutorSummary, 0)
	for rows.Next() {
		var (
			tutor entities.TutorSummary
			count int64
		)
		if err := rows.Scan(&tutor.ID, &tutor.Name, &tutor.Email, &count); err != nil {
			log.Error(ctx, "error scanning tutor", zap.Error(err))
			return nil, fmt.Errorf("error scanning tutor: %w", err)
		}
		tutor.CourseCount = int(count)
		tutors = append(tutors, tutor)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating tutors", zap.Error(err))
		return nil, fmt.Errorf("error iterating tutors: %w", err)
	}

	log.Debug(ctx, "tutors loaded", zap.Int("count", len(tutors)))
	return tutors, nil
}

// Ping проверяет доступность базы.
func (r *CatalogRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("error pinging database: %w", err)
	}
	return nil
}
