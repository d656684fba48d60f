package services

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"ghazaltech-backend/middleware"
	"ghazaltech-backend/models"
)

// projectForCaller resolves a project and enforces the shared access guard:
// staff may touch any project, a client only the chain hanging off their own
// order. Returns gorm.ErrRecordNotFound or a forbiddenError otherwise.
func projectForCaller(db *gorm.DB, projectID string, sess *middleware.Session) (*models.Project, error) {
	var project models.Project
	if err := db.Preload("Order").First(&project, "id = ?", projectID).Error; err != nil {
		return nil, err
	}
	if sess.Role.IsStaff() {
		return &project, nil
	}
	if project.Order != nil && project.Order.UserID == sess.UserID {
		return &project, nil
	}
	return nil, errForbidden("you do not have access to this project")
}

// respondAccessError maps guard/transaction failures onto the HTTP error
// taxonomy. Returns false when err was nil and no response was written.
func respondAccessError(c *fiber.Ctx, err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
		return true
	}
	var fe *forbiddenError
	if errors.As(err, &fe) {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": fe.Error()})
		return true
	}
	var ve *validationError
	if errors.As(err, &ve) {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error()})
		return true
	}
	var ce *conflictError
	if errors.As(err, &ce) {
		c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": ce.Error()})
		return true
	}
	c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	return true
}
