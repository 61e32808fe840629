package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JayDev810/working-project-list/internal/application/reports"
	"github.com/JayDev810/working-project-list/internal/application/services"
	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// RecordHandler handles work record requests. Endpoints that need the
// change channel or bulk remote operations answer 503 when no cloud store
// is configured.
type RecordHandler struct {
	records *services.RecordService
	cloud   ports.CloudRecordStore
	logger  *logger.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records *services.RecordService, cloud ports.CloudRecordStore, log *logger.Logger) *RecordHandler {
	return &RecordHandler{
		records: records,
		cloud:   cloud,
		logger:  log,
	}
}

// ListRecords returns the collection, optionally narrowed by ?month= and
// repeated ?developer= filters, newest date first.
func (h *RecordHandler) ListRecords(c echo.Context) error {
	records, err := h.records.ListRecords(c.Request().Context())
	if err != nil {
		h.logger.Errorw("List records failed", "error", err)
		return domainError(err)
	}

	// A single developer restricted to one month is the member dashboard;
	// everything else is the admin view.
	filter := filterFromQuery(c)
	var filtered []entities.WorkRecord
	if filter.Month != "" && len(filter.Developers) == 1 {
		filtered = reports.MemberView(records, filter.Developers[0], filter.Month)
	} else {
		filtered = reports.AdminView(records, filter)
	}
	return c.JSON(http.StatusOK, filtered)
}

// SaveRecord creates or replaces a record from a full submission.
func (h *RecordHandler) SaveRecord(c echo.Context) error {
	var req services.SaveRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	record, err := h.records.SaveRecord(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Save record failed", "error", err, "developer", req.DeveloperName, "date", req.Date)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, record)
}

// DeleteRecord removes one record; deleting an unknown id succeeds.
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	id := c.Param("id")

	if err := h.records.DeleteRecord(c.Request().Context(), id); err != nil {
		h.logger.Errorw("Delete record failed", "error", err, "record_id", id)
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteByOwner removes every record of one developer from the cloud store.
func (h *RecordHandler) DeleteByOwner(c echo.Context) error {
	if h.cloud == nil || !h.cloud.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, entities.ErrNotConfigured.Error())
	}

	developer := c.Param("developer")
	if err := h.cloud.DeleteByOwner(c.Request().Context(), developer); err != nil {
		h.logger.Errorw("Delete by owner failed", "error", err, "developer", developer)
		return domainError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetStats returns the admin statistics over the filtered set.
func (h *RecordHandler) GetStats(c echo.Context) error {
	records, err := h.records.ListRecords(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Stats failed", "error", err)
		return domainError(err)
	}

	filtered := reports.AdminView(records, filterFromQuery(c))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"stats":      reports.Summarize(filtered),
		"developers": reports.Developers(records),
	})
}

// ExportCSV streams the filtered set as a CSV download with the export
// date embedded in the filename.
func (h *RecordHandler) ExportCSV(c echo.Context) error {
	records, err := h.records.ListRecords(c.Request().Context())
	if err != nil {
		h.logger.Errorw("Export failed", "error", err)
		return domainError(err)
	}

	filtered := reports.AdminView(records, filterFromQuery(c))

	filename := reports.ExportFilename(time.Now())
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	c.Response().WriteHeader(http.StatusOK)

	return reports.WriteCSV(c.Response(), filtered)
}

// StreamRecords serves the change-notification feed as server-sent events:
// one full collection snapshot per delivery, errors as "error" events.
func (h *RecordHandler) StreamRecords(c echo.Context) error {
	if h.cloud == nil || !h.cloud.IsConfigured() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, entities.ErrNotConfigured.Error())
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	ctx := c.Request().Context()
	events := make(chan string, 8)

	unsubscribe := h.cloud.Subscribe(ctx,
		func(records []entities.WorkRecord) {
			data, err := json.Marshal(records)
			if err != nil {
				return
			}
			select {
			case events <- fmt.Sprintf("data: %s\n\n", data):
			case <-ctx.Done():
			}
		},
		func(err error) {
			select {
			case events <- fmt.Sprintf("event: error\ndata: %s\n\n", err.Error()):
			case <-ctx.Done():
			}
		},
	)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-events:
			if _, err := fmt.Fprint(c.Response(), msg); err != nil {
				return nil
			}
			c.Response().Flush()
		}
	}
}

func filterFromQuery(c echo.Context) ports.RecordFilter {
	return ports.RecordFilter{
		Month:      c.QueryParam("month"),
		Developers: c.QueryParams()["developer"],
	}
}
