package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/sales-automation/api/internal/auth"
	"github.com/octobees/sales-automation/api/internal/config"
	"github.com/octobees/sales-automation/api/internal/contact"
	"github.com/octobees/sales-automation/api/internal/database"
	"github.com/octobees/sales-automation/api/internal/gemini"
	"github.com/octobees/sales-automation/api/internal/handler"
	"github.com/octobees/sales-automation/api/internal/mailer"
	middlewarepkg "github.com/octobees/sales-automation/api/internal/middleware"
	"github.com/octobees/sales-automation/api/internal/pipeline"
	"github.com/octobees/sales-automation/api/internal/repository"
	"github.com/octobees/sales-automation/api/internal/router"
	"github.com/octobees/sales-automation/api/internal/search"
	"github.com/octobees/sales-automation/api/internal/service"
	"github.com/octobees/sales-automation/api/internal/webscraper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	campaignsRepo := repository.NewPGXCampaignsRepository(pool)
	leadsRepo := repository.NewPGXLeadsRepository(pool)
	emailsRepo := repository.NewPGXEmailsRepository(pool)

	var generator gemini.Generator = gemini.Unavailable{}
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("failed to create gemini client: %v", err)
		}
		generator = client
	} else {
		log.Printf("level=warn msg=\"GEMINI_API_KEY not set, using template fallbacks\"")
	}

	scraper := webscraper.New(cfg.ScrapingDelay, cfg.MaxConcurrentScrapes, cfg.UserAgent)

	synthetic := search.NewSyntheticProvider()
	var provider search.Provider = synthetic
	if cfg.UseRealSearch && cfg.SerpAPIKey != "" {
		provider = search.NewSerpAPIProvider(cfg.SerpAPIKey)
	}

	resolver := contact.BuildChain(contact.ChainConfig{
		UseProviders: cfg.UseRealEmails,
		ApolloAPIKey: cfg.ApolloAPIKey,
		SnovAPIKey:   cfg.SnovAPIKey,
		HunterAPIKey: cfg.HunterAPIKey,
	}, scraper)

	sender := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.User,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})

	discoverer := pipeline.NewDiscoverer(generator, provider, synthetic, scraper, cfg.MaxResearchResults)
	qualifier := pipeline.NewQualifier(generator, cfg.QualificationThreshold)
	personalizer := pipeline.NewPersonalizer(generator)
	orchestrator := pipeline.NewOrchestrator(
		campaignsRepo, leadsRepo, emailsRepo,
		discoverer, qualifier, resolver, personalizer, sender,
		cfg.BaseURL, cfg.UseRealSearch,
	)

	authService := service.NewAuthService(usersRepo, jwtManager)
	campaignsService := service.NewCampaignsService(campaignsRepo, orchestrator)
	leadsService := service.NewLeadsService(leadsRepo, cfg.DefaultPhoneRegion)
	analyticsService := service.NewAnalyticsService(campaignsRepo, leadsRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Campaigns:   handler.NewCampaignsHandler(campaignsService),
		Leads:       handler.NewLeadsHandler(leadsService),
		Analytics:   handler.NewAnalyticsHandler(analyticsService),
		Unsubscribe: handler.NewUnsubscribeHandler(leadsService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
