package handlers

import (
	"ghazaltech-backend/middleware"
	"ghazaltech-backend/services"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes wires the client/admin dashboard: orders, projects
// with phases and comments, milestone payments, change requests, quotes and
// the referral ledger. The session guard is scoped to each prefix so
// unmatched paths still 404.
func SetupDashboardRoutes(
	app *fiber.App,
	orderService *services.OrderService,
	projectService *services.ProjectService,
	paymentService *services.PaymentService,
	quoteService *services.QuoteService,
	referralService *services.ReferralService,
) {
	session := middleware.SessionMiddleware()

	// 🔐 Orders
	orders := app.Group("/orders", session)
	orders.Post("/", orderService.CreateOrder)
	orders.Get("/", orderService.GetMyOrders)

	// 🔐 Projects (access guard inside the service for mixed-role routes)
	projects := app.Group("/projects", session)
	projects.Get("/", projectService.GetMyProjects)
	projects.Get("/:id", projectService.GetProject)
	projects.Post("/:id/phases/:phase_id/comments", projectService.AddPhaseComment)
	projects.Post("/:id/review", projectService.SubmitReview)
	projects.Post("/:id/change-requests", paymentService.CreateChangeRequest)

	// 🔐 Payments
	payments := app.Group("/payments", session)
	payments.Post("/:payment_id/proof", paymentService.SubmitPaymentProof)

	// 🔐 Quotes
	requests := app.Group("/requests", session)
	requests.Post("/", quoteService.SubmitRequest)
	requests.Get("/", quoteService.GetRequests)

	quotes := app.Group("/quotes", session)
	quotes.Post("/:quote_id/decide", quoteService.DecideQuote)

	// 🔐 Referrals
	referrals := app.Group("/referrals", session)
	referrals.Get("/summary", referralService.GetMySummary)

	// 🔒 Staff-only management
	admin := app.Group("/admin", session, middleware.RequireStaff())

	admin.Get("/orders", orderService.GetAllOrders)
	admin.Post("/orders/:id/payments", orderService.RecordPayment)
	admin.Post("/orders/:id/complete", orderService.CompleteOrder)

	admin.Patch("/projects/:id/status", projectService.UpdateProjectStatus)
	admin.Patch("/projects/:id/archive", projectService.ArchiveProject)
	admin.Post("/projects/:id/phases", projectService.CreatePhase)
	admin.Put("/projects/:id/phases/:phase_id", projectService.UpdatePhase)
	admin.Delete("/projects/:id/phases/:phase_id", projectService.DeletePhase)
	admin.Post("/projects/:id/phases/:phase_id/deliverables", projectService.UploadDeliverable)

	admin.Post("/projects/:id/milestone-payments", paymentService.CreateMilestonePayment)
	admin.Patch("/milestone-payments/:payment_id/review", paymentService.ReviewMilestonePayment)
	admin.Post("/projects/:id/invoices", paymentService.CreateInvoice)
	admin.Patch("/invoices/:invoice_id/status", paymentService.UpdateInvoiceStatus)

	admin.Post("/requests/:id/quotes", quoteService.DraftQuote)
	admin.Post("/quotes/:quote_id/send", quoteService.SendQuote)

	admin.Get("/referrals", referralService.GetAllTracking)
	admin.Post("/referrals/:id/payout", referralService.PayoutCommission)
}
