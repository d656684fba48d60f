package services

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

type QuoteService struct {
	DB       *gorm.DB
	Notifier *NotificationService
}

func NewQuoteService(db *gorm.DB, notifier *NotificationService) *QuoteService {
	return &QuoteService{DB: db, Notifier: notifier}
}

// SubmitRequest files a custom project request for the caller.
func (s *QuoteService) SubmitRequest(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		Title  string   `json:"title"`
		Brief  string   `json:"brief"`
		Budget *float64 `json:"budget"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Brief) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title and brief are required"})
	}

	request := &models.CustomProjectRequest{
		ID:     uuid.NewString(),
		UserID: sess.UserID,
		Title:  strings.TrimSpace(req.Title),
		Brief:  strings.TrimSpace(req.Brief),
		Budget: req.Budget,
		Status: models.RequestStatusNew,
	}
	if err := s.DB.Create(request).Error; err != nil {
		log.Printf("DB error creating project request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to submit request"})
	}

	s.Notifier.Queue("New custom project request: "+request.Title, request.Brief)

	return c.Status(fiber.StatusCreated).JSON(request)
}

// GetRequests lists custom project requests: staff see all, clients their own.
func (s *QuoteService) GetRequests(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	query := s.DB.Order("created_at DESC")
	if !sess.Role.IsStaff() {
		query = query.Where("user_id = ?", sess.UserID)
	}

	var requests []models.CustomProjectRequest
	if err := query.Find(&requests).Error; err != nil {
		log.Printf("DB error listing project requests: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list requests"})
	}
	return c.JSON(requests)
}

// DraftQuote (staff) attaches a priced quote to a request.
func (s *QuoteService) DraftQuote(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		Amount     any        `json:"amount"`
		Notes      string     `json:"notes"`
		ValidUntil *time.Time `json:"valid_until"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	amount := utils.ToNumber(req.Amount)
	if amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
	}

	var request models.CustomProjectRequest
	if err := s.DB.First(&request, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	quote := &models.Quote{
		ID:          uuid.NewString(),
		RequestID:   request.ID,
		Amount:      utils.RoundFloat(amount, 2),
		Notes:       req.Notes,
		ValidUntil:  req.ValidUntil,
		Status:      models.QuoteStatusDraft,
		CreatedByID: sess.UserID,
	}
	if err := s.DB.Create(quote).Error; err != nil {
		log.Printf("DB error creating quote: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create quote"})
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// SendQuote (staff) marks a quote SENT and its request QUOTED, and writes
// the audit row — all three succeed or fail together.
func (s *QuoteService) SendQuote(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var quote models.Quote
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, "id = ?", c.Params("quote_id")).Error; err != nil {
			return err
		}
		if quote.Status != models.QuoteStatusDraft {
			return errConflict("quote already sent or decided")
		}

		var request models.CustomProjectRequest
		if err := tx.First(&request, "id = ?", quote.RequestID).Error; err != nil {
			return err
		}

		now := time.Now()
		quote.Status = models.QuoteStatusSent
		quote.SentAt = &now
		if err := tx.Save(&quote).Error; err != nil {
			return err
		}

		request.Status = models.RequestStatusQuoted
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		return models.WriteAudit(tx, sess.UserID, models.AuditActionQuoteSent, "quote", quote.ID,
			models.QuoteSentAudit{QuoteID: quote.ID, RequestID: request.ID, Amount: quote.Amount})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quote not found"})
		}
		var ce *conflictError
		if errors.As(err, &ce) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Error()})
		}
		log.Printf("DB error sending quote: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send quote"})
	}

	return c.JSON(fiber.Map{"message": "quote sent", "quote": quote})
}

// DecideQuote lets the requesting client accept or reject a sent quote.
// Accepting spawns a PENDING order priced at the quote amount. A quote
// that was already decided fails with a conflict error.
func (s *QuoteService) DecideQuote(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		Accept bool `json:"accept"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var quote models.Quote
	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, "id = ?", c.Params("quote_id")).Error; err != nil {
			return err
		}

		var request models.CustomProjectRequest
		if err := tx.First(&request, "id = ?", quote.RequestID).Error; err != nil {
			return err
		}
		if !sess.Role.IsStaff() && request.UserID != sess.UserID {
			return errForbidden("you do not have access to this quote")
		}
		if quote.Status != models.QuoteStatusSent {
			return errConflict("quote already accepted or rejected")
		}
		if quote.ValidUntil != nil && time.Now().After(*quote.ValidUntil) {
			return errConflict("quote expired")
		}

		now := time.Now()
		quote.DecidedAt = &now
		if req.Accept {
			quote.Status = models.QuoteStatusAccepted
			request.Status = models.RequestStatusAccepted
		} else {
			quote.Status = models.QuoteStatusRejected
			request.Status = models.RequestStatusRejected
		}
		if err := tx.Save(&quote).Error; err != nil {
			return err
		}
		if err := tx.Save(&request).Error; err != nil {
			return err
		}

		if req.Accept {
			order = &models.Order{
				ID:          uuid.NewString(),
				UserID:      request.UserID,
				QuoteID:     &quote.ID,
				Status:      models.OrderStatusPending,
				TotalAmount: quote.Amount,
			}
			return tx.Create(order).Error
		}
		return nil
	})
	if respondAccessError(c, err) {
		return nil
	}

	resp := fiber.Map{"quote": quote}
	if order != nil {
		resp["order"] = order
	}
	return c.JSON(resp)
}
