package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sales-automation/api/internal/auth"
	"github.com/octobees/sales-automation/api/internal/config"
	"github.com/octobees/sales-automation/api/internal/handler"
	middlewarepkg "github.com/octobees/sales-automation/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Campaigns   *handler.CampaignsHandler
	Leads       *handler.LeadsHandler
	Analytics   *handler.AnalyticsHandler
	Unsubscribe *handler.UnsubscribeHandler
}

// Register wires all HTTP routes for the API. The unsubscribe endpoint stays
// public because recipients follow it straight from an email.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	e.GET("/api/v1/unsubscribe/:token", handlers.Unsubscribe.Unsubscribe)

	secured := e.Group("/api/v1")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.POST("/campaigns", handlers.Campaigns.Create)
	secured.GET("/campaigns", handlers.Campaigns.List)
	secured.GET("/campaigns/:id", handlers.Campaigns.Get)
	secured.PATCH("/campaigns/:id", handlers.Campaigns.Update)
	secured.DELETE("/campaigns/:id", handlers.Campaigns.Delete, middlewarepkg.RequireRole("admin"))
	secured.POST("/campaigns/:id/run", handlers.Campaigns.Run, middlewarepkg.RunRateLimiter(cfg.RateLimitRun))
	secured.POST("/campaigns/:id/follow-ups", handlers.Campaigns.RunFollowUps, middlewarepkg.RunRateLimiter(cfg.RateLimitRun))
	secured.GET("/campaigns/:id/email-stats", handlers.Analytics.EmailStats)

	secured.GET("/leads", handlers.Leads.List)
	secured.GET("/leads/:id", handlers.Leads.Get)
	secured.PATCH("/leads/:id", handlers.Leads.Update)
	secured.POST("/leads/:id/track", handlers.Leads.Track)
}
