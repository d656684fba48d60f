package models

import "time"

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "DRAFT"
	InvoiceStatusSent  InvoiceStatus = "SENT"
	InvoiceStatusPaid  InvoiceStatus = "PAID"
)

type Invoice struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ProjectID string `gorm:"index;not null" json:"project_id"`

	Number  string        `gorm:"uniqueIndex;not null" json:"number"`
	Amount  float64       `gorm:"not null" json:"amount"`
	Status  InvoiceStatus `gorm:"not null;default:'DRAFT'" json:"status"`
	DueDate *time.Time    `json:"due_date,omitempty"`
	PdfURL  *string       `gorm:"type:text" json:"pdf_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
