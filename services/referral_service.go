package services

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

type ReferralService struct {
	DB *gorm.DB
}

func NewReferralService(db *gorm.DB) *ReferralService {
	return &ReferralService{DB: db}
}

// CommissionBreakdown splits a referral row's commission into what can be
// paid out now, what is still pending, and what was already paid.
type CommissionBreakdown struct {
	Available float64 `json:"available"`
	Pending   float64 `json:"pending"`
	PaidOut   float64 `json:"paid_out"`
}

// CalculateCommissionBreakdown prorates commission availability by how much
// of the order has been paid. The payment ratio is clamped to [0,1] so an
// overpaid order never inflates available commission beyond the full amount.
// Pure — no side effects.
func CalculateCommissionBreakdown(commissionAmount, commissionPaidOut, orderTotal, paidAmount float64) CommissionBreakdown {
	ratio := 0.0
	if orderTotal > 0 {
		ratio = paidAmount / orderTotal
		if ratio > 1 {
			ratio = 1
		}
	}

	availableTotal := commissionAmount * ratio
	available := availableTotal - commissionPaidOut
	if available < 0 {
		available = 0
	}
	pending := commissionAmount - availableTotal
	if pending < 0 {
		pending = 0
	}

	return CommissionBreakdown{
		Available: available,
		Pending:   pending,
		PaidOut:   commissionPaidOut,
	}
}

// EnsureReferralSignup records that referredUserID signed up via
// referrerID's code. Idempotent: an existing PENDING, order-less row for the
// pair is returned unchanged. Self-referrals return nil without writing.
func (s *ReferralService) EnsureReferralSignup(tx *gorm.DB, referrerID, referredUserID string) (*models.ReferralTracking, error) {
	if referrerID == "" || referrerID == referredUserID {
		return nil, nil
	}

	var existing models.ReferralTracking
	err := tx.Where("referrer_id = ? AND referred_user_id = ? AND order_id IS NULL AND status = ?",
		referrerID, referredUserID, models.ReferralStatusPending).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var referrer models.User
	if err := tx.First(&referrer, "id = ?", referrerID).Error; err != nil {
		return nil, err
	}

	tracking := &models.ReferralTracking{
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		CommissionRate: referrer.EffectiveCommissionRate(),
		Status:         models.ReferralStatusPending,
	}
	if err := tx.Create(tracking).Error; err != nil {
		return nil, err
	}
	return tracking, nil
}

// CreateReferralCommissionForOrder creates the EARNED row for a finalized
// order placed by a referred user. Returns (nil, nil) when the buyer has no
// referrer, the referrer is the buyer, the referrer record is gone, or a row
// for this order already exists — exactly one tracking row per order, ever.
func (s *ReferralService) CreateReferralCommissionForOrder(tx *gorm.DB, orderID, userID string, orderTotal float64) (*models.ReferralTracking, error) {
	var buyer models.User
	if err := tx.First(&buyer, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	if buyer.ReferredByID == nil || *buyer.ReferredByID == userID {
		return nil, nil
	}

	var existing models.ReferralTracking
	err := tx.Where("order_id = ?", orderID).First(&existing).Error
	if err == nil {
		return nil, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var referrer models.User
	if err := tx.First(&referrer, "id = ?", *buyer.ReferredByID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	rate := referrer.EffectiveCommissionRate()
	tracking := &models.ReferralTracking{
		ReferrerID:       referrer.ID,
		ReferredUserID:   userID,
		OrderID:          &orderID,
		CommissionAmount: utils.RoundFloat(orderTotal*rate, 2),
		CommissionRate:   rate,
		Status:           models.ReferralStatusEarned,
	}
	if err := tx.Create(tracking).Error; err != nil {
		return nil, err
	}
	return tracking, nil
}

// --- Handlers ---

type referralRowSummary struct {
	Tracking  models.ReferralTracking `json:"tracking"`
	Breakdown CommissionBreakdown     `json:"breakdown"`
}

// GetMySummary returns the authenticated user's referral ledger: every
// tracking row they earned plus aggregate earned/available/pending figures.
func (s *ReferralService) GetMySummary(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var rows []models.ReferralTracking
	if err := s.DB.Where("referrer_id = ?", sess.UserID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		log.Printf("DB error loading referral rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load referrals"})
	}

	summaries := make([]referralRowSummary, 0, len(rows))
	var totalEarned, totalAvailable, totalPending, totalPaidOut float64
	for _, row := range rows {
		bd := CommissionBreakdown{PaidOut: row.PaidOut}
		if row.OrderID != nil {
			var order models.Order
			if err := s.DB.First(&order, "id = ?", *row.OrderID).Error; err != nil {
				log.Printf("DB error loading order %s for referral row: %v", *row.OrderID, err)
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load referrals"})
			}
			bd = CalculateCommissionBreakdown(row.CommissionAmount, row.PaidOut, order.TotalAmount, order.PaidAmount)
		}
		totalEarned += row.CommissionAmount
		totalAvailable += bd.Available
		totalPending += bd.Pending
		totalPaidOut += row.PaidOut
		summaries = append(summaries, referralRowSummary{Tracking: row, Breakdown: bd})
	}

	var signupCount int64
	s.DB.Model(&models.ReferralTracking{}).
		Where("referrer_id = ? AND order_id IS NULL", sess.UserID).
		Count(&signupCount)

	return c.JSON(fiber.Map{
		"rows":          summaries,
		"signups":       signupCount,
		"total_earned":  utils.RoundFloat(totalEarned, 2),
		"available":     utils.RoundFloat(totalAvailable, 2),
		"pending":       utils.RoundFloat(totalPending, 2),
		"paid_out":      utils.RoundFloat(totalPaidOut, 2),
	})
}

// GetAllTracking lists every referral row (staff view), newest first.
func (s *ReferralService) GetAllTracking(c *fiber.Ctx) error {
	var rows []models.ReferralTracking
	query := s.DB.Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if referrer := c.Query("referrer_id"); referrer != "" {
		query = query.Where("referrer_id = ?", referrer)
	}
	if err := query.Find(&rows).Error; err != nil {
		log.Printf("DB error listing referral tracking: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list referrals"})
	}
	return c.JSON(rows)
}

// PayoutCommission records a payout against a referral row (staff only).
// The amount is capped at what the breakdown says is available; a fully
// paid-out row on a fully paid order flips to PAID. Audited.
func (s *ReferralService) PayoutCommission(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	id := c.Params("id")

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
	}

	var updated models.ReferralTracking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var row models.ReferralTracking
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}
		if row.OrderID == nil {
			return errValidation("signup rows carry no payable commission")
		}

		var order models.Order
		if err := tx.First(&order, "id = ?", *row.OrderID).Error; err != nil {
			return err
		}

		bd := CalculateCommissionBreakdown(row.CommissionAmount, row.PaidOut, order.TotalAmount, order.PaidAmount)
		if req.Amount > bd.Available {
			return errValidation("amount exceeds available commission")
		}

		row.PaidOut = utils.RoundFloat(row.PaidOut+req.Amount, 2)
		if row.PaidOut >= row.CommissionAmount {
			row.Status = models.ReferralStatusPaid
		}
		if err := tx.Save(&row).Error; err != nil {
			return err
		}

		if err := models.WriteAudit(tx, sess.UserID, models.AuditActionPayout, "referral_tracking", row.ID,
			models.PayoutAudit{ReferrerID: row.ReferrerID, Amount: req.Amount}); err != nil {
			return err
		}
		updated = row
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referral row not found"})
		}
		var ve *validationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
		}
		log.Printf("DB error recording payout: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record payout"})
	}

	return c.JSON(fiber.Map{"message": "payout recorded", "tracking": updated})
}
