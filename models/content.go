package models

import (
	"time"

	"gorm.io/gorm"
)

// Localized is the set of per-language text columns used by marketing
// content. The dashboard serves English, Arabic and Turkish.
type Localized struct {
	En string `gorm:"type:text" json:"en"`
	Ar string `gorm:"type:text" json:"ar"`
	Tr string `gorm:"type:text" json:"tr"`
}

// Pick returns the text for a locale, falling back to English.
func (l Localized) Pick(locale string) string {
	switch locale {
	case "ar":
		if l.Ar != "" {
			return l.Ar
		}
	case "tr":
		if l.Tr != "" {
			return l.Tr
		}
	}
	return l.En
}

// ServiceItem is a catalog entry clients order from.
type ServiceItem struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title       Localized `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Description Localized `gorm:"embedded;embeddedPrefix:description_" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Active      bool      `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "DRAFT"
	ContentStatusPublished ContentStatus = "PUBLISHED"
)

// BlogPost is a localized marketing article.
type BlogPost struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title    Localized `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Body     Localized `gorm:"embedded;embeddedPrefix:body_" json:"body"`
	CoverURL string    `gorm:"type:text" json:"cover_url"`
	AuthorID string    `gorm:"index" json:"author_id"`

	Status      ContentStatus `gorm:"not null;default:'DRAFT';index" json:"status"`
	PublishedAt *time.Time    `json:"published_at,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PortfolioItem is a published case study built from a delivered project.
// Publishing one locks the project's review.
type PortfolioItem struct {
	ID        string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ProjectID *string `gorm:"index" json:"project_id,omitempty"`

	Slug     string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title    Localized `gorm:"embedded;embeddedPrefix:title_" json:"title"`
	Summary  Localized `gorm:"embedded;embeddedPrefix:summary_" json:"summary"`
	CoverURL string    `gorm:"type:text" json:"cover_url"`

	Status ContentStatus `gorm:"not null;default:'DRAFT';index" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// FAQEntry is a localized question/answer pair shown on the marketing site.
type FAQEntry struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Question  Localized `gorm:"embedded;embeddedPrefix:question_" json:"question"`
	Answer    Localized `gorm:"embedded;embeddedPrefix:answer_" json:"answer"`
	SortOrder int       `gorm:"default:0" json:"sort_order"`
	Active    bool      `gorm:"default:true;index" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
