package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Audit actions. Each action has a typed payload struct below; Data holds
// its JSON encoding.
const (
	AuditActionPaymentReview = "payment_review"
	AuditActionQuoteSent     = "quote_sent"
	AuditActionMagicLogin    = "magic_login_token"
	AuditActionPayout        = "referral_payout"
)

// AuditLog is an append-only record of sensitive actions.
type AuditLog struct {
	ID         string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ActorID    string `gorm:"index;not null" json:"actor_id"`
	Action     string `gorm:"index;not null" json:"action"`
	TargetType string `gorm:"size:50;not null" json:"target_type"`
	TargetID   string `gorm:"index;not null" json:"target_id"`
	Data       string `gorm:"type:text" json:"data"`

	CreatedAt time.Time `json:"created_at"`
}

// PaymentReviewAudit records the note a reviewer left alongside a status
// change on a milestone payment.
type PaymentReviewAudit struct {
	Status PaymentStatus `json:"status"`
	Note   string        `json:"note"`
}

// QuoteSentAudit records a quote leaving the building.
type QuoteSentAudit struct {
	QuoteID   string  `json:"quote_id"`
	RequestID string  `json:"request_id"`
	Amount    float64 `json:"amount"`
}

// MagicLoginAudit persists the token hash, never the raw token. Used marks
// single-use consumption.
type MagicLoginAudit struct {
	TokenHash string    `json:"token_hash"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

// PayoutAudit records a commission payout against a referral row.
type PayoutAudit struct {
	ReferrerID string  `json:"referrer_id"`
	Amount     float64 `json:"amount"`
}

// WriteAudit appends an audit row with the payload encoded as JSON. It runs
// inside whatever transaction tx carries, so a failed parent commit also
// discards the audit row.
func WriteAudit(tx *gorm.DB, actorID, action, targetType, targetID string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Create(&AuditLog{
		ActorID:    actorID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Data:       string(data),
	}).Error
}

// LatestAudit loads the most recent audit row for (action, targetID) and
// decodes its payload into out. Returns gorm.ErrRecordNotFound when no row
// exists.
func LatestAudit(tx *gorm.DB, action, targetID string, out any) (*AuditLog, error) {
	var row AuditLog
	err := tx.Where("action = ? AND target_id = ?", action, targetID).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	if out != nil {
		if err := json.Unmarshal([]byte(row.Data), out); err != nil {
			return nil, err
		}
	}
	return &row, nil
}
