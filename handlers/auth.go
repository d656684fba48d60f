package handlers

import (
	"ghazaltech-backend/middleware"
	"ghazaltech-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService) {
	// 🔓 Public
	auth := app.Group("/auth")
	auth.Post("/register", authService.Register)
	auth.Post("/login", authService.Login)
	auth.Post("/magic/consume", authService.ConsumeMagicLogin)

	// 🔐 Authenticated
	auth.Get("/me", middleware.SessionMiddleware(), authService.Me)

	// 🔒 Staff-only
	app.Post("/admin/users/:user_id/magic-login",
		middleware.SessionMiddleware(), middleware.RequireStaff(), authService.IssueMagicLogin)
}
