package models

import "time"

type ItemStatus string

const (
	ItemStatusSubmitted ItemStatus = "submitted"
	ItemStatusApproved  ItemStatus = "approved"
	ItemStatusRejected  ItemStatus = "rejected"
)

// IsDecision reports whether the status is a valid validation outcome.
func (s ItemStatus) IsDecision() bool {
	return s == ItemStatusApproved || s == ItemStatusRejected
}

type KnowledgeItem struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	AuthorID    uint64     `gorm:"not null" json:"author_id"`
	Tags        string     `gorm:"type:text" json:"tags"`
	ProjectLink string     `json:"project_link"`
	Filename    string     `json:"filename"`
	Status      ItemStatus `gorm:"type:varchar(20);not null;default:'submitted'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Author      User               `gorm:"foreignKey:AuthorID" json:"-"`
	Validations []ValidationRecord `gorm:"foreignKey:ItemID" json:"-"`
}
