package services

import (
	"log"

	"gorm.io/gorm"

	"ghazaltech-backend/models"
)

// NotificationService queues admin notifications into the outbox table.
// Delivery happens asynchronously in the notification worker; queueing is
// best-effort and never fails the calling request.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

func (n *NotificationService) Queue(subject, body string) {
	row := &models.Notification{
		Subject: subject,
		Body:    body,
		Status:  models.NotificationStatusPending,
	}
	if err := n.DB.Create(row).Error; err != nil {
		log.Printf("failed to queue notification %q: %v", subject, err)
	}
}
