package models

import "time"

// ReferralStatus tracks a referral row's lifecycle: PENDING at signup,
// EARNED once a referred order is finalized, PAID when fully paid out.
type ReferralStatus string

const (
	ReferralStatusPending ReferralStatus = "PENDING"
	ReferralStatusEarned  ReferralStatus = "EARNED"
	ReferralStatusPaid    ReferralStatus = "PAID"
)

// ReferralTracking is one row per referral relationship-event. A signup row
// has a nil OrderID and amount 0; an order row snapshots the commission at
// the moment the order was finalized.
//
// Uniqueness backing the idempotency guarantees, enforced by the database
// so concurrent retries cannot slip past the read-before-write checks:
//   - at most one signup row per (referrer, referred) pair, via a partial
//     unique index over rows with no order
//   - at most one row per order
type ReferralTracking struct {
	ID             string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ReferrerID     string  `gorm:"index:idx_referral_pair;uniqueIndex:uniq_referral_signup_pair,where:order_id IS NULL;not null" json:"referrer_id"`
	ReferredUserID string  `gorm:"index:idx_referral_pair;uniqueIndex:uniq_referral_signup_pair;not null" json:"referred_user_id"`
	OrderID        *string `gorm:"uniqueIndex" json:"order_id,omitempty"`

	// CommissionAmount is the full commission earned on the linked order,
	// rounded to 2 decimals. Zero for signup rows.
	CommissionAmount float64 `gorm:"default:0" json:"commission_amount"`
	// CommissionRate is a snapshot of the referrer's rate at creation time.
	CommissionRate float64 `json:"commission_rate"`
	// PaidOut accumulates lifetime payouts against this row.
	PaidOut float64 `gorm:"default:0" json:"paid_out"`

	Status ReferralStatus `gorm:"not null;default:'PENDING';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
