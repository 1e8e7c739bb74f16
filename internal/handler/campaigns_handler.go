package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-automation/api/internal/dto"
	"github.com/octobees/sales-automation/api/internal/repository"
	"github.com/octobees/sales-automation/api/internal/service"
)

// CampaignsHandler exposes campaign CRUD and execution endpoints.
type CampaignsHandler struct {
	service *service.CampaignsService
}

// NewCampaignsHandler creates a new handler instance.
func NewCampaignsHandler(service *service.CampaignsService) *CampaignsHandler {
	return &CampaignsHandler{service: service}
}

// Create handles POST /campaigns requests.
func (h *CampaignsHandler) Create(c echo.Context) error {
	var req dto.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	campaign, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusCreated, "campaign created", campaign)
}

// Get handles GET /campaigns/:id requests.
func (h *CampaignsHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	campaign, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch campaign")
	}
	return Success(c, http.StatusOK, "campaign retrieved", campaign)
}

// List handles GET /campaigns requests.
func (h *CampaignsHandler) List(c echo.Context) error {
	filter := dto.CampaignListFilter{
		Status:  strings.TrimSpace(c.QueryParam("status")),
		Page:    parseIntDefault(c.QueryParam("page"), 1),
		PerPage: parseIntDefault(c.QueryParam("per_page"), 20),
	}

	campaigns, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusOK, "campaigns retrieved", campaigns)
}

// Update handles PATCH /campaigns/:id requests.
func (h *CampaignsHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	var req dto.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	campaign, err := h.service.Update(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusOK, "campaign updated", campaign)
}

// Delete handles DELETE /campaigns/:id requests.
func (h *CampaignsHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to delete campaign")
	}
	return Success(c, http.StatusOK, "campaign deleted", nil)
}

// Run handles POST /campaigns/:id/run requests. The pipeline executes
// synchronously; the response carries the run counters.
func (h *CampaignsHandler) Run(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	result, err := h.service.Run(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "campaign run failed")
	}
	return Success(c, http.StatusOK, "campaign executed", result)
}

// RunFollowUps handles POST /campaigns/:id/follow-ups requests.
func (h *CampaignsHandler) RunFollowUps(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid campaign id")
	}

	result, err := h.service.RunFollowUps(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCampaignNotFound) {
			return Error(c, http.StatusNotFound, "campaign not found")
		}
		return Error(c, http.StatusInternalServerError, "follow-up run failed")
	}
	return Success(c, http.StatusOK, "follow-ups executed", result)
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
