package handlers

import (
	"ghazaltech-backend/middleware"
	"ghazaltech-backend/services"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App, contentService *services.ContentService) {
	// 🔓 Public marketing surface (localized via ?lang= / Accept-Language)
	app.Get("/services", contentService.ListServices)
	app.Get("/blog", contentService.ListPosts)
	app.Get("/blog/:slug", contentService.GetPostBySlug)
	app.Get("/portfolio", contentService.ListPortfolio)
	app.Get("/faq", contentService.ListFAQ)

	// 🔒 Staff-only content management
	admin := app.Group("/admin", middleware.SessionMiddleware(), middleware.RequireStaff())
	admin.Post("/services", contentService.CreateService)
	admin.Put("/services/:id", contentService.UpdateService)
	admin.Post("/blog", contentService.CreatePost)
	admin.Post("/blog/:id/publish", contentService.PublishPost)
	admin.Post("/portfolio", contentService.CreatePortfolioItem)
	admin.Post("/portfolio/:id/publish", contentService.PublishPortfolioItem)
	admin.Post("/faq", contentService.CreateFAQEntry)
}
