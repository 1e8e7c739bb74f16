package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-automation/api/internal/repository"
	"github.com/octobees/sales-automation/api/internal/service"
)

// AnalyticsHandler exposes campaign reporting endpoints.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler instance.
func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// EmailStats handles GET /campaigns/:id/email-stats requests.
func (h *AnalyticsHandler) EmailStats(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	stats, err := h.service.EmailStats(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to compute email stats")
	}
	return Success(c, http.StatusOK, "email stats retrieved", stats)
}
