package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ghazaltech-backend/handlers"
	"ghazaltech-backend/models"
	"ghazaltech-backend/services"
	"ghazaltech-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ghazaltech-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 50 * 1024 * 1024, // 50MB — payment proofs and deliverables
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Accept-Language, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ReferralTracking{},
		&models.ServiceItem{},
		&models.Order{},
		&models.Project{},
		&models.ProjectPhase{},
		&models.PhaseDeliverable{},
		&models.PhaseComment{},
		&models.CommentAttachment{},
		&models.MilestonePayment{},
		&models.ChangeRequest{},
		&models.Invoice{},
		&models.Review{},
		&models.CustomProjectRequest{},
		&models.Quote{},
		&models.BlogPost{},
		&models.PortfolioItem{},
		&models.FAQEntry{},
		&models.AuditLog{},
		&models.Notification{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	notificationService := services.NewNotificationService(db)
	referralService := services.NewReferralService(db)
	authService := services.NewAuthService(db, referralService)
	orderService := services.NewOrderService(db, referralService)
	projectService := services.NewProjectService(db, notificationService)
	paymentService := services.NewPaymentService(db, notificationService)
	quoteService := services.NewQuoteService(db, notificationService)
	contentService := services.NewContentService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notificationWorker := workers.NewNotificationWorker(db)
	go workers.PollNotifications(ctx, notificationWorker, 15*time.Second)

	projectService.StartMaintenanceScheduler()

	handlers.SetupContentRoutes(app, contentService)
	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupDashboardRoutes(app, orderService, projectService, paymentService, quoteService, referralService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Notification outbox polling running (every 15s)")
	log.Println("✅ Maintenance scheduler running")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
