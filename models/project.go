package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectStatus mirrors the delivery pipeline. DELIVERED is terminal.
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "PLANNING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusReview     ProjectStatus = "REVIEW"
	ProjectStatusDelivered  ProjectStatus = "DELIVERED"
	ProjectStatusOnHold     ProjectStatus = "ON_HOLD"
)

// PhaseStatus is independent of the owning project's status. Any value in
// the set is freely settable by staff.
type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "PENDING"
	PhaseStatusInProgress PhaseStatus = "IN_PROGRESS"
	PhaseStatusCompleted  PhaseStatus = "COMPLETED"
	PhaseStatusBlocked    PhaseStatus = "BLOCKED"
)

// Project is the fulfillment unit for an order. A client may only touch the
// chain Project -> Order -> their own User; staff may touch any.
type Project struct {
	ID      string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	OrderID string `gorm:"uniqueIndex;not null" json:"order_id"`
	Order   *Order `gorm:"foreignKey:OrderID" json:"order,omitempty"`

	Title      string        `gorm:"not null" json:"title"`
	Status     ProjectStatus `gorm:"not null;default:'PLANNING';index" json:"status"`
	DueDate    *time.Time    `json:"due_date,omitempty"`
	ArchivedAt *time.Time    `gorm:"index" json:"archived_at,omitempty"`

	Phases         []ProjectPhase     `gorm:"foreignKey:ProjectID" json:"phases,omitempty"`
	Payments       []MilestonePayment `gorm:"foreignKey:ProjectID" json:"payments,omitempty"`
	Invoices       []Invoice          `gorm:"foreignKey:ProjectID" json:"invoices,omitempty"`
	ChangeRequests []ChangeRequest    `gorm:"foreignKey:ProjectID" json:"change_requests,omitempty"`
	Review         *Review            `gorm:"foreignKey:ProjectID" json:"review,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// ProjectPhase is an ordered step of a project's delivery pipeline.
// SortOrder is display-only; no cross-phase ordering invariant is enforced.
type ProjectPhase struct {
	ID        string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ProjectID string `gorm:"index;not null" json:"project_id"`

	StatusGroup string      `gorm:"not null" json:"status_group"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	DueDate     *time.Time  `json:"due_date,omitempty"`
	Status      PhaseStatus `gorm:"not null;default:'PENDING'" json:"status"`
	SortOrder   int         `gorm:"default:0" json:"sort_order"`

	Deliverables []PhaseDeliverable `gorm:"foreignKey:PhaseID" json:"deliverables,omitempty"`
	Comments     []PhaseComment     `gorm:"foreignKey:PhaseID" json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PhaseDeliverable is an asset attached to a phase by staff.
type PhaseDeliverable struct {
	ID           string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PhaseID      string    `gorm:"index;not null" json:"phase_id"`
	Title        string    `json:"title"`
	FileURL      string    `gorm:"type:text;not null" json:"file_url"`
	UploadedByID string    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// PhaseComment is a comment on a phase, optionally with one attachment.
type PhaseComment struct {
	ID       string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PhaseID  string `gorm:"index;not null" json:"phase_id"`
	AuthorID string `gorm:"index;not null" json:"author_id"`
	Author   *User  `gorm:"foreignKey:AuthorID" json:"author,omitempty"`

	Body string `gorm:"type:text" json:"body"`

	Attachment *CommentAttachment `gorm:"foreignKey:CommentID" json:"attachment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type CommentAttachment struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CommentID string    `gorm:"uniqueIndex;not null" json:"comment_id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	StorageKey string   `json:"storage_key"`
	CreatedAt time.Time `json:"created_at"`
}
