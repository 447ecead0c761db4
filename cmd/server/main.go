// Package main is the entry point for the EmployArmor server.
// It initializes configuration, the database pool, migrations, the security
// suite, the background reconciler, and all HTTP routes.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"

	"github.com/dbartell/employarmor-sub001/internal/config"
	"github.com/dbartell/employarmor-sub001/internal/database"
	"github.com/dbartell/employarmor-sub001/internal/generator"
	"github.com/dbartell/employarmor-sub001/internal/handlers"
	"github.com/dbartell/employarmor-sub001/internal/middleware"
	"github.com/dbartell/employarmor-sub001/internal/reconcile"
	"github.com/dbartell/employarmor-sub001/internal/security"
	"github.com/dbartell/employarmor-sub001/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Establish the connection pool and bring the schema current before
	// accepting any traffic.
	database.MustConnect(cfg.Database)
	defer database.Close()

	if err := database.RunMigrations(cfg.Database.URL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Security suite: config, structured JSON logger, middleware.
	securityConfig := security.DefaultSecurityConfig()
	securityConfig.SessionTimeout = cfg.Session.Expiration
	securityConfig.SessionCookieName = cfg.Session.CookieName
	securityConfig.SessionSecure = cfg.Session.Secure

	securityLogger := security.NewLogger()
	securityMiddleware := middleware.NewSecurityMiddleware(securityLogger, securityConfig)

	// Per-endpoint token buckets. Refill rate spreads the per-minute budget
	// evenly across the window.
	scanRateLimiter := security.NewRateLimiter(
		securityConfig.RateLimitScan,
		time.Minute/time.Duration(securityConfig.RateLimitScan),
	)
	defer scanRateLimiter.Stop()

	leadRateLimiter := security.NewRateLimiter(
		securityConfig.RateLimitLead,
		time.Minute/time.Duration(securityConfig.RateLimitLead),
	)
	defer leadRateLimiter.Stop()

	generateRateLimiter := security.NewRateLimiter(
		securityConfig.RateLimitGenerate,
		time.Minute/time.Duration(securityConfig.RateLimitGenerate),
	)
	defer generateRateLimiter.Stop()

	// Background repair loop for bookkeeping writes missed during
	// generation. Stops with the server.
	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	defer stopReconciler()
	go reconcile.New(securityLogger, reconcile.DefaultInterval).Run(reconcilerCtx)

	// Server-rendered pages use the HTML template engine; reload only
	// outside production.
	engine := html.New("./web/templates", ".html")
	engine.Reload(!cfg.IsProduction())

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
	})

	// Panic recovery first, then logging, headers, and injection screening
	// on everything.
	app.Use(recover.New())
	app.Use(securityMiddleware.RequestLogger())
	app.Use(securityMiddleware.SecureHeaders())
	app.Use(securityMiddleware.InputValidation())

	app.Static("/static", "./web/static")

	store := session.New(session.Config{
		Expiration:     cfg.Session.Expiration,
		CookieSecure:   cfg.Session.Secure,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieName:     cfg.Session.CookieName,
		CookiePath:     "/",
	})

	app.Use(securityMiddleware.SetCSRFToken(store))

	// Handlers.
	gen := generator.New(securityLogger, cfg.BaseURL)
	agentKeys := services.NewAgentKeyService()

	authHandler := handlers.NewAuthHandler(store, securityMiddleware, securityConfig, securityLogger)
	scanHandler := handlers.NewScanHandler(securityConfig, securityLogger, cfg.BaseURL)
	agentHandler := handlers.NewAgentHandler(gen, agentKeys, securityConfig, securityLogger, cfg.BaseURL)
	documentHandler := handlers.NewDocumentHandler(securityLogger)
	assessmentHandler := handlers.NewAssessmentHandler(securityLogger)
	pageHandler := handlers.NewPageHandler(store, securityLogger)

	// Public pages.
	app.Get("/", pageHandler.Home)
	app.Get("/tools", pageHandler.ToolDirectory)
	app.Get("/states", pageHandler.StateGuides)
	app.Get("/states/:code", pageHandler.StateGuide)
	app.Get("/scan", pageHandler.ScanPage)

	// Browser auth.
	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login", authHandler.Login)
	app.Get("/signup", authHandler.ShowSignup)
	app.Post("/signup", authHandler.Signup)
	app.Get("/logout", authHandler.Logout)

	// Public APIs.
	app.Post("/api/v1/scan",
		securityMiddleware.RateLimit(scanRateLimiter, "scan"),
		scanHandler.Scan,
	)
	app.Post("/api/scan",
		securityMiddleware.RateLimit(leadRateLimiter, "lead"),
		scanHandler.SaveLead,
	)
	app.Get("/api/disclosure/:id", documentHandler.GetDisclosure)

	// Agent API: bearer-key auth, then per-agent rate limiting.
	agentAPI := app.Group("/api/v1/agent",
		middleware.AgentAuth(agentKeys, securityLogger),
		securityMiddleware.RateLimit(generateRateLimiter, "generate"),
	)
	agentAPI.Post("/organizations", agentHandler.Provision)
	agentAPI.Get("/organizations/:id/package", agentHandler.Package)
	agentAPI.Post("/organizations/:id/generate", agentHandler.Generate)

	// Authenticated dashboard surface. Session auth plus CSRF on the
	// state-changing calls.
	authRequired := middleware.AuthRequired(store)
	csrf := securityMiddleware.CSRFProtection(store)

	app.Get("/dashboard", authRequired, pageHandler.Dashboard)
	app.Get("/api/documents", authRequired, documentHandler.List)
	app.Get("/api/assessments", authRequired, assessmentHandler.List)
	app.Get("/api/assessments/:id", authRequired, assessmentHandler.Get)
	app.Post("/api/assessments/draft", authRequired, csrf, assessmentHandler.SaveDraft)
	app.Post("/api/assessments/:id/complete", authRequired, csrf, assessmentHandler.Complete)

	securityLogger.Info("EmployArmor server starting on port " + cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		securityLogger.Critical("Failed to start server", err)
		log.Fatalf("Failed to start server: %v", err)
	}
}
