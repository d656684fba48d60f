package models

import (
	"time"

	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestStatusNew      RequestStatus = "NEW"
	RequestStatusQuoted   RequestStatus = "QUOTED"
	RequestStatusAccepted RequestStatus = "ACCEPTED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// CustomProjectRequest is a client's brief for work outside the catalog.
type CustomProjectRequest struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"index;not null" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title  string        `gorm:"not null" json:"title"`
	Brief  string        `gorm:"type:text;not null" json:"brief"`
	Budget *float64      `json:"budget,omitempty"`
	Status RequestStatus `gorm:"not null;default:'NEW';index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "DRAFT"
	QuoteStatusSent     QuoteStatus = "SENT"
	QuoteStatusAccepted QuoteStatus = "ACCEPTED"
	QuoteStatusRejected QuoteStatus = "REJECTED"
)

// Quote is staff's priced answer to a custom project request. Sending a
// quote updates the request status and writes an audit row in one
// transaction.
type Quote struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequestID string `gorm:"index;not null" json:"request_id"`

	Amount     float64     `gorm:"not null" json:"amount"`
	Notes      string      `gorm:"type:text" json:"notes"`
	ValidUntil *time.Time  `json:"valid_until,omitempty"`
	Status     QuoteStatus `gorm:"not null;default:'DRAFT';index" json:"status"`

	CreatedByID string     `json:"created_by_id"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
