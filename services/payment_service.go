package services

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

type PaymentService struct {
	DB       *gorm.DB
	Notifier *NotificationService
}

func NewPaymentService(db *gorm.DB, notifier *NotificationService) *PaymentService {
	return &PaymentService{DB: db, Notifier: notifier}
}

// --- Milestone payments ---

// CreateMilestonePayment (staff) adds a billable checkpoint to a project.
func (s *PaymentService) CreateMilestonePayment(c *fiber.Ctx) error {
	var req struct {
		Label           string     `json:"label"`
		Amount          any        `json:"amount"`
		DueDate         *time.Time `json:"due_date"`
		PhaseID         *string    `json:"phase_id"`
		ChangeRequestID *string    `json:"change_request_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	amount := utils.ToNumber(req.Amount)
	if req.Label == "" || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "label and a positive amount are required"})
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	payment := &models.MilestonePayment{
		ID:              uuid.NewString(),
		ProjectID:       project.ID,
		Label:           req.Label,
		Amount:          utils.RoundFloat(amount, 2),
		Status:          models.PaymentStatusPending,
		DueDate:         req.DueDate,
		PhaseID:         req.PhaseID,
		ChangeRequestID: req.ChangeRequestID,
	}
	if err := s.DB.Create(payment).Error; err != nil {
		log.Printf("DB error creating milestone payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create payment"})
	}
	return c.Status(fiber.StatusCreated).JSON(payment)
}

// ReviewMilestonePayment (staff only) moves a payment through review.
// Requires a status or an archive flag. A status change stamps the reviewer
// and timestamp; a note supplied together with a status is appended to the
// audit log in the same transaction.
func (s *PaymentService) ReviewMilestonePayment(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		Status   *models.PaymentStatus `json:"status"`
		Archived *bool                 `json:"archived"`
		Note     string                `json:"note"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Status == nil && req.Archived == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "status or archived flag is required"})
	}
	if req.Status != nil && !models.ValidPaymentStatus(*req.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid payment status"})
	}

	var payment models.MilestonePayment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "id = ?", c.Params("payment_id")).Error; err != nil {
			return err
		}

		if req.Status != nil {
			now := time.Now()
			payment.Status = *req.Status
			payment.ReviewedByID = &sess.UserID
			payment.ReviewedAt = &now
		}
		if req.Archived != nil {
			if *req.Archived {
				now := time.Now()
				payment.ArchivedAt = &now
			} else {
				payment.ArchivedAt = nil
			}
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if req.Note != "" && req.Status != nil {
			return models.WriteAudit(tx, sess.UserID, models.AuditActionPaymentReview, "milestone_payment", payment.ID,
				models.PaymentReviewAudit{Status: *req.Status, Note: req.Note})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		log.Printf("DB error reviewing payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to review payment"})
	}

	payment.Amount = utils.RoundFloat(payment.Amount, 2)
	return c.JSON(payment)
}

// applyProofUpload records a freshly uploaded proof and forces the payment
// back to UNDER_REVIEW whatever its prior status — a re-upload over an
// APPROVED payment reopens the review.
func applyProofUpload(payment *models.MilestonePayment, proofURL string) {
	payment.ProofURL = &proofURL
	payment.Status = models.PaymentStatusUnderReview
}

// SubmitPaymentProof lets the project's owner (or staff) upload a proof of
// payment. The file goes to R2; the payment is forced to UNDER_REVIEW
// regardless of its prior status, APPROVED included.
func (s *PaymentService) SubmitPaymentProof(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var payment models.MilestonePayment
	if err := s.DB.First(&payment, "id = ?", c.Params("payment_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	if _, err := projectForCaller(s.DB, payment.ProjectID, sess); err != nil {
		respondAccessError(c, err)
		return nil
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	key := fmt.Sprintf("payment-proofs/%s/%s%s", payment.ID, uuid.NewString(), filepath.Ext(file.Filename))
	upload, err := utils.UploadFileToR2(file, key)
	if err != nil {
		log.Printf("R2 upload failed for payment proof: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to upload proof"})
	}

	applyProofUpload(&payment, upload.URL)
	if err := s.DB.Save(&payment).Error; err != nil {
		log.Printf("DB error saving payment proof: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save proof"})
	}

	s.Notifier.Queue(
		fmt.Sprintf("Payment proof uploaded for %s", payment.Label),
		fmt.Sprintf("Payment: %s\nProject: %s\nUploaded by: %s\nProof: %s",
			payment.Label, payment.ProjectID, sess.UserID, upload.URL),
	)

	return c.JSON(payment)
}

// --- Change requests ---

// normalizeChangeRequest applies the role-dependent validation rules: staff
// must price the request (amount > 0, description optional); clients must
// describe it (amount forced to 0).
func normalizeChangeRequest(role models.UserRole, title, description string, amount float64) (string, *string, float64, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, 0, errValidation("title is required")
	}
	description = strings.TrimSpace(description)

	if role.IsStaff() {
		if amount <= 0 {
			return "", nil, 0, errValidation("amount must be positive")
		}
		var desc *string
		if description != "" {
			desc = &description
		}
		return title, desc, utils.RoundFloat(amount, 2), nil
	}

	if description == "" {
		return "", nil, 0, errValidation("description is required")
	}
	return title, &description, 0, nil
}

// CreateChangeRequest files an out-of-scope work request on a project.
func (s *PaymentService) CreateChangeRequest(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Amount      any    `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	project, err := projectForCaller(s.DB, c.Params("id"), sess)
	if respondAccessError(c, err) {
		return nil
	}

	title, description, amount, err := normalizeChangeRequest(sess.Role, req.Title, req.Description, utils.ToNumber(req.Amount))
	if respondAccessError(c, err) {
		return nil
	}

	cr := &models.ChangeRequest{
		ID:          uuid.NewString(),
		ProjectID:   project.ID,
		Title:       title,
		Description: description,
		Amount:      amount,
		CreatedByID: sess.UserID,
	}
	if err := s.DB.Create(cr).Error; err != nil {
		log.Printf("DB error creating change request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create change request"})
	}
	return c.Status(fiber.StatusCreated).JSON(cr)
}

// --- Invoices ---

// CreateInvoice (staff) issues an invoice on a project.
func (s *PaymentService) CreateInvoice(c *fiber.Ctx) error {
	var req struct {
		Number  string     `json:"number"`
		Amount  any        `json:"amount"`
		DueDate *time.Time `json:"due_date"`
		PdfURL  *string    `json:"pdf_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	amount := utils.ToNumber(req.Amount)
	if req.Number == "" || amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "number and a positive amount are required"})
	}

	var project models.Project
	if err := s.DB.First(&project, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Project not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	invoice := &models.Invoice{
		ID:        uuid.NewString(),
		ProjectID: project.ID,
		Number:    req.Number,
		Amount:    utils.RoundFloat(amount, 2),
		Status:    models.InvoiceStatusDraft,
		DueDate:   req.DueDate,
		PdfURL:    req.PdfURL,
	}
	if err := s.DB.Create(invoice).Error; err != nil {
		log.Printf("DB error creating invoice: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create invoice"})
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

// UpdateInvoiceStatus (staff) moves an invoice between DRAFT/SENT/PAID.
func (s *PaymentService) UpdateInvoiceStatus(c *fiber.Ctx) error {
	var req struct {
		Status models.InvoiceStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	switch req.Status {
	case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusPaid:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid invoice status"})
	}

	var invoice models.Invoice
	if err := s.DB.First(&invoice, "id = ?", c.Params("invoice_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invoice not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	invoice.Status = req.Status
	if err := s.DB.Save(&invoice).Error; err != nil {
		log.Printf("DB error updating invoice: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update invoice"})
	}
	return c.JSON(invoice)
}
