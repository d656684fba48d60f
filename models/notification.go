package models

import "time"

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
	NotificationStatusFailed  NotificationStatus = "FAILED"
)

// Notification is an outbox row delivered best-effort to the configured
// admin address by the notification worker.
type Notification struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Subject string `gorm:"not null" json:"subject"`
	Body    string `gorm:"type:text" json:"body"`

	Status   NotificationStatus `gorm:"not null;default:'PENDING';index" json:"status"`
	Attempts int                `gorm:"default:0" json:"attempts"`
	SentAt   *time.Time         `json:"sent_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
