package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/http/handlers"
	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Products        *handlers.ProductsHandler
	Cart            *handlers.CartHandler
	Recommendations *handlers.RecommendationsHandler
	Resume          *handlers.ResumeHandler
	Analytics       *handlers.AnalyticsHandler
	Contact         *handlers.ContactHandler
	CppTools        *handlers.CppToolsHandler
	Tasks           *handlers.TasksHandler
	Admin           *handlers.AdminHandler
	Sessions        *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Every /api route sees the caller's session, if any;
// only cart and admin routes reject anonymous callers up front.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.Sessions.Handle)

	api.Get("/auth", cfg.Auth.Session)
	api.Post("/auth", cfg.Auth.Dispatch)

	api.Get("/products", cfg.Products.List)

	cart := api.Group("/cart", auth.RequireAuth())
	cart.Get("", cfg.Cart.List)
	cart.Post("", cfg.Cart.Add)
	cart.Put("", cfg.Cart.Update)
	cart.Delete("", cfg.Cart.Remove)

	api.Post("/recommendations", cfg.Recommendations.Recommend)
	api.Post("/resume/analyze", cfg.Resume.Analyze)
	api.Get("/analytics", cfg.Analytics.Get)
	api.Post("/contact", cfg.Contact.Submit)
	api.Post("/cpp-tools", cfg.CppTools.Run)

	api.Get("/tasks", cfg.Tasks.List)
	api.Post("/tasks", cfg.Tasks.Create)
	api.Put("/tasks", cfg.Tasks.Update)
	api.Delete("/tasks", cfg.Tasks.Delete)

	admin := api.Group("/admin", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/contacts", cfg.Admin.Contacts)
	admin.Get("/metrics", cfg.Admin.Metrics)
}
