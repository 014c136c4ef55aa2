package handlers

import (
	"context"
	"time"

	"github.com/arzan03/newsroom/internal/auth"
	"github.com/arzan03/newsroom/internal/middleware"
	"github.com/arzan03/newsroom/internal/models"
	"github.com/arzan03/newsroom/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services are the business components the routes dispatch to.
type Services struct {
	Auth     *services.AuthService
	Reset    *services.ResetService
	Articles *services.ArticleService
	Settings *services.SettingsService
	Users    *services.UserService
	Contacts *services.ContactService
	Uploads  *services.UploadService
}

// RouteOptions carries the cross-cutting route dependencies.
type RouteOptions struct {
	Tokens *auth.TokenIssuer
	// AuthRateLimit is the per-IP budget per minute for credential endpoints;
	// zero disables limiting.
	AuthRateLimit int
	// Ping reports storage health for /healthz.
	Ping func(ctx context.Context) error
}

// SetupRoutes mounts every endpoint on app.
func SetupRoutes(app *fiber.App, svc Services, opts RouteOptions) {
	authHandler := NewAuthHandler(svc.Auth, svc.Reset)
	articleHandler := NewArticleHandler(svc.Articles)
	settingsHandler := NewSettingsHandler(svc.Settings)
	adminHandler := NewAdminHandler(svc.Users, svc.Contacts)
	contactHandler := NewContactHandler(svc.Contacts)
	uploadHandler := NewUploadHandler(svc.Uploads)

	requireAuth := middleware.AuthMiddleware(opts.Tokens)
	editors := middleware.RequireRole(models.RoleAdmin, models.RoleEmployee)
	admins := middleware.RequireRole(models.RoleAdmin)
	throttle := rateLimit(opts.AuthRateLimit)

	app.Get("/healthz", healthz(opts.Ping))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Auth Routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", throttle, authHandler.Login)
	authGroup.Post("/forgot-password", throttle, authHandler.ForgotPassword)
	authGroup.Post("/reset-password/:token", throttle, authHandler.ResetPassword)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Put("/password", requireAuth, authHandler.ChangePassword)

	// Article Routes
	articles := app.Group("/articles")
	articles.Get("/", articleHandler.List)
	articles.Get("/:idOrSlug", articleHandler.Get)
	articles.Post("/", requireAuth, editors, articleHandler.Create)
	articles.Put("/:id", requireAuth, editors, articleHandler.Update)
	articles.Delete("/:id", requireAuth, editors, articleHandler.Delete)

	// Settings Routes
	app.Get("/settings", settingsHandler.Get)
	app.Put("/settings", requireAuth, editors, settingsHandler.Update)

	// User administration
	users := app.Group("/users", requireAuth, admins)
	users.Get("/", adminHandler.ListUsers)
	users.Put("/:id/suspend", adminHandler.ToggleSuspend)
	users.Delete("/:id", adminHandler.DeleteUser)

	// Contact form
	app.Post("/contact", contactHandler.Submit)
	app.Get("/contact", requireAuth, admins, adminHandler.ListContactMessages)

	// Uploads
	app.Post("/uploads", requireAuth, uploadHandler.UploadImage)
}

func rateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many requests, try again later"})
		},
	})
}

func healthz(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
