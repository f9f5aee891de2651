package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aayushmishra321/Interview-Ai-sub001/internal/auth/middleware"
	"github.com/aayushmishra321/Interview-Ai-sub001/internal/interview"
)

// Middlewares groups the request-scoped middleware the routes compose with.
type Middlewares struct {
	Auth      *middleware.Authenticator
	UserLimit *middleware.UserRateLimiter
	TierLimit fiber.Handler
	Admin     fiber.Handler
}

func RegisterRoutes(app *fiber.App, h *AuthHandler, adminH *AdminHandler, ivH *interview.Handler, mw Middlewares) {
	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/refresh", h.Refresh)
	auth.Post("/create-profile", h.CreateProfile)
	auth.Post("/logout", mw.Auth.RequireAuth, h.Logout)
	auth.Get("/session", mw.Auth.OptionalAuth, h.Session)

	user := app.Group("/api/user", mw.Auth.RequireAuth, mw.UserLimit.Handle, mw.TierLimit)
	user.Get("/profile", h.GetProfile)
	user.Put("/profile", h.UpdateProfile)

	iv := app.Group("/api/interview", mw.Auth.RequireAuth, mw.UserLimit.Handle, mw.TierLimit)
	iv.Post("/", ivH.Create)
	iv.Get("/", ivH.List)
	iv.Get("/:id", ivH.Get)
	iv.Post("/:id/complete", ivH.Complete)

	admin := app.Group("/api/admin", mw.Auth.RequireAuth, mw.Admin)
	admin.Get("/users", adminH.GetAllUsers)
	admin.Patch("/users/:id/role", adminH.UpdateUserRole)
}
