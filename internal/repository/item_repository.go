package repository

import (
	"context"

	"github.com/yukikurage/knowledge-share-api/internal/models"
	"gorm.io/gorm"
)

// GormItemRepository is a GORM implementation of ItemRepository
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &GormItemRepository{db: db}
}

// Create creates a new knowledge item
func (r *GormItemRepository) Create(ctx context.Context, item *models.KnowledgeItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// FindByID finds a knowledge item by ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uint64) (*models.KnowledgeItem, error) {
	var item models.KnowledgeItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns items matching the filter in storage order
func (r *GormItemRepository) List(ctx context.Context, filter ItemFilter) ([]models.KnowledgeItem, error) {
	query := r.db.WithContext(ctx).Model(&models.KnowledgeItem{})

	if filter.TitleOrTags != "" {
		pattern := "%" + filter.TitleOrTags + "%"
		query = query.Where("title LIKE ? OR tags LIKE ?", pattern, pattern)
	}
	if filter.TagsContain != "" {
		query = query.Where("tags LIKE ?", "%"+filter.TagsContain+"%")
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	items := []models.KnowledgeItem{}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// TagsByAuthor returns the non-empty tag strings of every item an author wrote
func (r *GormItemRepository) TagsByAuthor(ctx context.Context, authorID uint64) ([]string, error) {
	var tags []string
	err := r.db.WithContext(ctx).
		Model(&models.KnowledgeItem{}).
		Where("author_id = ? AND tags IS NOT NULL AND tags <> ''", authorID).
		Pluck("tags", &tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
