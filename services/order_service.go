package services

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

type OrderService struct {
	DB       *gorm.DB
	Referral *ReferralService
}

func NewOrderService(db *gorm.DB, referral *ReferralService) *OrderService {
	return &OrderService{DB: db, Referral: referral}
}

// CreateOrder places an order for a catalog service on behalf of the caller.
func (s *OrderService) CreateOrder(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var req struct {
		ServiceID string `json:"service_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.ServiceID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "service_id is required"})
	}

	var item models.ServiceItem
	if err := s.DB.First(&item, "id = ? AND active = ?", req.ServiceID, true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Service not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}

	order := &models.Order{
		ID:          uuid.NewString(),
		UserID:      sess.UserID,
		ServiceID:   &item.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: item.Price,
	}
	if err := s.DB.Create(order).Error; err != nil {
		log.Printf("DB error creating order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetMyOrders lists the caller's orders, newest first.
func (s *OrderService) GetMyOrders(c *fiber.Ctx) error {
	sess := middleware.SessionFromCtx(c)
	if sess == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}

	var orders []models.Order
	if err := s.DB.Where("user_id = ?", sess.UserID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		log.Printf("DB error listing orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}
	return c.JSON(orders)
}

// GetAllOrders lists every order (staff view) with optional status filter.
func (s *OrderService) GetAllOrders(c *fiber.Ctx) error {
	query := s.DB.Preload("User").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		log.Printf("DB error listing all orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list orders"})
	}
	return c.JSON(orders)
}

// RecordPayment (staff) registers money received against an order. The
// paid amount is capped at the total; a fully paid order moves to PAID.
func (s *OrderService) RecordPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		Amount any `json:"amount"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	amount := utils.ToNumber(req.Amount)
	if amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "amount must be positive"})
	}

	var order models.Order
	if err := s.DB.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "DB error"})
	}
	if order.Status == models.OrderStatusCancelled {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "order is cancelled"})
	}

	order.PaidAmount = utils.RoundFloat(order.PaidAmount+amount, 2)
	if order.PaidAmount >= order.TotalAmount {
		order.PaidAmount = order.TotalAmount
		if order.Status == models.OrderStatusPending {
			order.Status = models.OrderStatusPaid
		}
	}
	if err := s.DB.Save(&order).Error; err != nil {
		log.Printf("DB error recording order payment: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record payment"})
	}

	return c.JSON(order)
}

// defaultPhases seeds every new project with the standard delivery pipeline.
var defaultPhases = []struct {
	Group string
	Title string
}{
	{"discovery", "Discovery & Requirements"},
	{"design", "Design"},
	{"development", "Development"},
	{"delivery", "Review & Delivery"},
}

// CompleteOrder (staff) finalizes an order: marks it COMPLETED, spawns its
// fulfillment project with the default phases, and creates the referral
// commission row for referred buyers — all in one transaction.
func (s *OrderService) CompleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var req struct {
		ProjectTitle string `json:"project_title"`
	}
	_ = c.BodyParser(&req)

	var project models.Project
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			return err
		}
		if order.Status == models.OrderStatusCompleted {
			return errConflict("order already completed")
		}
		if order.Status == models.OrderStatusCancelled {
			return errConflict("order is cancelled")
		}

		order.Status = models.OrderStatusCompleted
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		title := req.ProjectTitle
		if title == "" {
			title = "Project for order " + order.ID[:8]
		}
		project = models.Project{
			ID:      uuid.NewString(),
			OrderID: order.ID,
			Title:   title,
			Status:  models.ProjectStatusPlanning,
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		for i, p := range defaultPhases {
			phase := models.ProjectPhase{
				ID:          uuid.NewString(),
				ProjectID:   project.ID,
				StatusGroup: p.Group,
				Title:       p.Title,
				Status:      models.PhaseStatusPending,
				SortOrder:   i,
			}
			if err := tx.Create(&phase).Error; err != nil {
				return err
			}
		}

		_, err := s.Referral.CreateReferralCommissionForOrder(tx, order.ID, order.UserID, order.TotalAmount)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		var ce *conflictError
		if errors.As(err, &ce) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Error()})
		}
		log.Printf("DB error completing order: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to complete order"})
	}

	return c.JSON(fiber.Map{"message": "order completed", "project": project})
}
