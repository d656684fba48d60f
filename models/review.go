package models

import "time"

// Review is the single client review of a delivered project. Once the
// project is referenced by a PUBLISHED portfolio item the review is locked
// and can no longer be changed.
type Review struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ProjectID string `gorm:"uniqueIndex;not null" json:"project_id"`
	AuthorID  string `gorm:"index;not null" json:"author_id"`

	Rating  int     `gorm:"not null" json:"rating"` // 1..5
	Comment *string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
