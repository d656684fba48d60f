package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a purchase of a Service by a User. Completion may spawn a Project
// and, when the buyer was referred, an EARNED referral row.
type Order struct {
	ID        string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string  `gorm:"index;not null" json:"user_id"`
	User      *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ServiceID *string `gorm:"index" json:"service_id,omitempty"`
	// QuoteID links orders spawned from an accepted quote.
	QuoteID *string `gorm:"index" json:"quote_id,omitempty"`

	Status      OrderStatus `gorm:"not null;default:'PENDING';index" json:"status"`
	TotalAmount float64     `gorm:"not null" json:"total_amount"`
	PaidAmount  float64     `gorm:"default:0" json:"paid_amount"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
