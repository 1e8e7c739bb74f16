package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-automation/api/internal/repository"
	"github.com/octobees/sales-automation/api/internal/service"
)

// UnsubscribeHandler serves the public opt-out endpoint linked from every
// outbound email. It renders plain HTML because recipients open it in a
// browser, not an API client.
type UnsubscribeHandler struct {
	service *service.LeadsService
}

// NewUnsubscribeHandler creates a new handler instance.
func NewUnsubscribeHandler(service *service.LeadsService) *UnsubscribeHandler {
	return &UnsubscribeHandler{service: service}
}

const unsubscribePage = `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: sans-serif; max-width: 480px; margin: 80px auto; text-align: center;">
<h2>%s</h2>
<p>%s</p>
</body>
</html>`

// Unsubscribe handles GET /unsubscribe/:token requests. Repeat visits with a
// valid token always succeed.
func (h *UnsubscribeHandler) Unsubscribe(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return page(c, http.StatusBadRequest, "Invalid link", "This unsubscribe link is not valid.")
	}

	_, already, err := h.service.Unsubscribe(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			return page(c, http.StatusNotFound, "Invalid link", "This unsubscribe link is not valid or has expired.")
		}
		return page(c, http.StatusInternalServerError, "Something went wrong", "Please try again later.")
	}

	if already {
		return page(c, http.StatusOK, "Already unsubscribed",
			"You were already unsubscribed. You will not receive further emails from us.")
	}
	return page(c, http.StatusOK, "Unsubscribed",
		"You have been unsubscribed and will not receive further emails from us.")
}

func page(c echo.Context, status int, title, body string) error {
	return c.HTML(status, fmt.Sprintf(unsubscribePage, title, title, body))
}
