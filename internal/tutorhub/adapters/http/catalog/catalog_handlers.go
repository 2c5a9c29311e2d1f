// Package catalog содержит публичные HTTP обработчики курсов и преподавателей.
package catalog

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"tutorhub/internal/tutorhub/adapters/http/dto"
	"tutorhub/internal/tutorhub/adapters/http/middleware"
	"tutorhub/internal/tutorhub/domain/entities"
	"tutorhub/internal/tutorhub/ports/api"
	"tutorhub/pkg/logger"
	"tutorhub/pkg/reporting"
)

// Константы для логирования и ответов.
const (
	LogHandlerCourses = "catalog handler: courses"
	LogHandlerTutors  = "catalog handler: tutors"
	LogHandlerHealth  = "catalog handler: health"

	ErrorInternal     = "Internal Server Error"
	ErrorDatabaseDown = "database unavailable"
	StatusHealthy     = "ok"
	StatusUnhealthy   = "unavailable"
)

// HealthResponse - ответ проверки готовности.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Handler содержит обработчики каталога.
type Handler struct {
	catalog api.CatalogUseCase
}

// NewHandler создает обработчик каталога.
func NewHandler(catalog api.CatalogUseCase) *Handler {
	return &Handler{catalog: catalog}
}

// Root отвечает приветствием.
func (h *Handler) Root(ctx fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"Hello": "World"})
}

// Courses возвращает список курсов.
func (h *Handler) Courses(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "courses"))
	log.Debug(requestCtx, LogHandlerCourses)

	courses, err := h.catalog.CourseSummaries(requestCtx)
	if err != nil {
		return internalError(ctx, log, "courses", err)
	}
	if courses == nil {
		courses = []entities.CourseSummary{}
	}

	return ctx.Status(fiber.StatusOK).JSON(courses)
}

// Tutors возвращает список преподавателей с количеством курсов.
func (h *Handler) Tutors(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "tutors"))
	log.Debug(requestCtx, LogHandlerTutors)

	tutors, err := h.catalog.TutorSummaries(requestCtx)
	if err != nil {
		return internalError(ctx, log, "tutors", err)
	}
	if tutors == nil {
		tutors = []entities.TutorSummary{}
	}

	return ctx.Status(fiber.StatusOK).JSON(tutors)
}

// Health проверяет доступность базы данных.
func (h *Handler) Health(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "health"))
	log.Debug(requestCtx, LogHandlerHealth)

	if err := h.catalog.Health(requestCtx); err != nil {
		log.Warn(requestCtx, ErrorDatabaseDown, zap.Error(err))
		return ctx.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:   StatusUnhealthy,
			Database: StatusUnhealthy,
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(HealthResponse{
		Status:   StatusHealthy,
		Database: StatusHealthy,
	})
}

func internalError(ctx fiber.Ctx, log *logger.Logger, handler string, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	log.Error(requestCtx, "failed to serve request", zap.Error(err))
	reporting.CaptureError(requestCtx, err, map[string]string{
		"handler":    handler,
		"request_id": middleware.RequestID(ctx),
	})
	return ctx.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Detail: ErrorInternal})
}
