package workers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"ghazaltech-backend/models"
	"ghazaltech-backend/utils"
)

// maxNotificationAttempts is how many delivery failures a notification
// survives before it is marked FAILED.
const maxNotificationAttempts = 5

// NotificationSender delivers one notification. Swappable in tests.
type NotificationSender func(subject, body string) error

// NotificationWorker drains the notification outbox and sends each row to
// the configured admin address.
type NotificationWorker struct {
	DB   *gorm.DB
	Send NotificationSender
}

func NewNotificationWorker(db *gorm.DB) *NotificationWorker {
	return &NotificationWorker{
		DB:   db,
		Send: utils.SendAdminEmail,
	}
}

// PollNotifications drains the outbox on a fixed interval until ctx is
// cancelled.
func PollNotifications(ctx context.Context, w *NotificationWorker, pollInterval time.Duration) {
	log.Println("Starting notification outbox polling...")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Notification polling stopped.")
			return
		case <-ticker.C:
			if err := w.DrainOnce(); err != nil {
				log.Printf("❌ Error draining notification outbox: %v", err)
			}
		}
	}
}

// DrainOnce sends every PENDING notification, oldest first. Each row is
// updated individually so one failure never blocks the rest of the batch.
func (w *NotificationWorker) DrainOnce() error {
	var pending []models.Notification
	if err := w.DB.Where("status = ?", models.NotificationStatusPending).
		Order("created_at ASC").
		Limit(50).
		Find(&pending).Error; err != nil {
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	for _, n := range pending {
		if err := w.Send(n.Subject, n.Body); err != nil {
			n.Attempts++
			if n.Attempts >= maxNotificationAttempts {
				n.Status = models.NotificationStatusFailed
				log.Printf("❌ Notification %s failed permanently after %d attempts: %v", n.ID, n.Attempts, err)
			} else {
				log.Printf("⚠️ Notification %s delivery failed (attempt %d): %v", n.ID, n.Attempts, err)
			}
			if err := w.DB.Save(&n).Error; err != nil {
				log.Printf("DB error updating notification %s: %v", n.ID, err)
			}
			continue
		}

		now := time.Now()
		n.Status = models.NotificationStatusSent
		n.SentAt = &now
		if err := w.DB.Save(&n).Error; err != nil {
			log.Printf("DB error marking notification %s sent: %v", n.ID, err)
		}
	}
	return nil
}
