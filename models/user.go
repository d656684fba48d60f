package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the closed set of dashboard roles.
type UserRole string

const (
	RoleClient  UserRole = "CLIENT"
	RoleAdmin   UserRole = "ADMIN"
	RolePartner UserRole = "PARTNER"
)

// IsStaff reports whether the role grants elevated read/write rights
// over any client's records.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RolePartner
}

// DefaultCommissionRate applies when a user record carries no explicit rate.
const DefaultCommissionRate = 0.10

type User struct {
	ID           string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name         string   `gorm:"not null" json:"name"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"not null;default:'CLIENT';index" json:"role"`

	// ReferralCode is the code this user hands out to others.
	ReferralCode string `gorm:"uniqueIndex;not null" json:"referral_code"`
	// ReferredByID links to the user who referred this one. Set at most once,
	// at signup or on first order.
	ReferredByID *string `gorm:"index" json:"referred_by_id,omitempty"`
	// CommissionRate is the fraction of a referred order's total this user
	// earns as referrer. Zero means "use DefaultCommissionRate".
	CommissionRate float64 `gorm:"default:0.1" json:"commission_rate"`

	// Locale is the user's preferred content language (en, ar, tr).
	Locale string `gorm:"size:5;default:'en'" json:"locale"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// EffectiveCommissionRate returns the rate used for new referral rows.
func (u *User) EffectiveCommissionRate() float64 {
	if u.CommissionRate > 0 {
		return u.CommissionRate
	}
	return DefaultCommissionRate
}
