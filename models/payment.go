package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "PENDING"
	PaymentStatusUnderReview PaymentStatus = "UNDER_REVIEW"
	PaymentStatusApproved    PaymentStatus = "APPROVED"
	PaymentStatusRejected    PaymentStatus = "REJECTED"
)

// ValidPaymentStatus reports whether s is one of the fixed payment statuses.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusUnderReview, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// MilestonePayment is a billable checkpoint on a project. Clients upload a
// proof of payment which forces the status to UNDER_REVIEW; only staff may
// move it to APPROVED/REJECTED, which stamps the reviewer.
type MilestonePayment struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ProjectID string `gorm:"index;not null" json:"project_id"`

	Label  string        `gorm:"not null" json:"label"`
	Amount float64       `gorm:"not null" json:"amount"`
	Status PaymentStatus `gorm:"not null;default:'PENDING';index" json:"status"`

	ProofURL *string    `gorm:"type:text" json:"proof_url,omitempty"`
	DueDate  *time.Time `json:"due_date,omitempty"`

	// Optional links to what triggered this payment.
	PhaseID         *string `gorm:"index" json:"phase_id,omitempty"`
	ChangeRequestID *string `gorm:"index" json:"change_request_id,omitempty"`

	ArchivedAt   *time.Time `gorm:"index" json:"archived_at,omitempty"`
	ReviewedByID *string    `json:"reviewed_by_id,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ChangeRequest is an out-of-scope work request on a project. Staff must
// supply a positive amount; clients must supply a description and always
// get amount 0.
type ChangeRequest struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ProjectID string `gorm:"index;not null" json:"project_id"`

	Title       string  `gorm:"not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Amount      float64 `gorm:"default:0" json:"amount"`

	CreatedByID string `gorm:"index;not null" json:"created_by_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
