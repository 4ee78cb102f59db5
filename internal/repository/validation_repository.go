package repository

import (
	"context"

	"github.com/yukikurage/knowledge-share-api/internal/models"
	"gorm.io/gorm"
)

// GormValidationRepository is a GORM implementation of ValidationRepository
type GormValidationRepository struct {
	db *gorm.DB
}

// NewValidationRepository creates a new ValidationRepository
func NewValidationRepository(db *gorm.DB) ValidationRepository {
	return &GormValidationRepository{db: db}
}

// Record appends the audit entry and updates the item status in one transaction
func (r *GormValidationRepository) Record(ctx context.Context, record *models.ValidationRecord) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		// callers check the item exists; RowsAffected is not reliable on MySQL
		// when the row is left unchanged
		return tx.Model(&models.KnowledgeItem{}).
			Where("id = ?", record.ItemID).
			Update("status", record.Decision).Error
	})
}

// ListByItem lists every record for an item, oldest first
func (r *GormValidationRepository) ListByItem(ctx context.Context, itemID uint64) ([]models.ValidationRecord, error) {
	records := []models.ValidationRecord{}
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("timestamp ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
