package models

import "time"

// ValidationRecord is an append-only audit entry for a leader's decision on an item.
type ValidationRecord struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ItemID      uint64     `gorm:"not null" json:"item_id"`
	ValidatorID uint64     `gorm:"not null" json:"validator_id"`
	Decision    ItemStatus `gorm:"type:varchar(20);not null" json:"decision"`
	Comments    string     `gorm:"type:text" json:"comments"`
	Timestamp   time.Time  `gorm:"autoCreateTime" json:"timestamp"`

	// Relations
	Item      KnowledgeItem `gorm:"foreignKey:ItemID" json:"-"`
	Validator User          `gorm:"foreignKey:ValidatorID" json:"-"`
}
