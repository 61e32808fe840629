package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JayDev810/working-project-list/internal/domain/entities"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
)

// SessionRequest is the login form: just a display name.
type SessionRequest struct {
	Name string `json:"name" validate:"required"`
}

// SessionHandler resolves a display name into an ephemeral session user.
// The admin role comes from an exact match against the configured admin
// name; this is a convenience gate, not an authentication boundary.
type SessionHandler struct {
	adminName string
	logger    *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(adminName string, log *logger.Logger) *SessionHandler {
	return &SessionHandler{
		adminName: adminName,
		logger:    log,
	}
}

// CreateSession returns the user for the submitted name.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req SessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user := entities.NewUser(req.Name, h.adminName)
	h.logger.Infow("Session created", "name", user.Name, "role", user.Role)

	return c.JSON(http.StatusOK, user)
}
