package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JayDev810/working-project-list/internal/application/services"
	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
)

// MigrationHandler triggers the one-shot local-to-cloud migration.
type MigrationHandler struct {
	migration *services.MigrationService
	logger    *logger.Logger
}

// NewMigrationHandler creates a new migration handler
func NewMigrationHandler(migration *services.MigrationService, log *logger.Logger) *MigrationHandler {
	return &MigrationHandler{
		migration: migration,
		logger:    log,
	}
}

// Migrate copies all local records into the cloud store and reports the
// migrated count. Safe to re-run; local data stays in place.
func (h *MigrationHandler) Migrate(c echo.Context) error {
	count, err := h.migration.Migrate(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Migration failed", "error", err)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]int{"migrated": count})
}

// domainError maps the domain error taxonomy onto HTTP status codes.
// Configuration states must surface as such, never as generic faults.
func domainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrNotConfigured), errors.Is(err, entities.ErrSchemaMissing):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, entities.ErrDuplicateDate):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrRecordNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidDate),
		errors.Is(err, entities.ErrEmptyDeveloper),
		errors.Is(err, entities.ErrNoActiveProjects),
		errors.Is(err, entities.ErrTooManyProjects),
		errors.Is(err, entities.ErrIncompleteProject),
		errors.Is(err, entities.ErrNegativeHours):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
