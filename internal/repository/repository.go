package repository

import (
	"context"

	"github.com/yukikurage/knowledge-share-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by exact username
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

// ItemRepository defines the interface for knowledge item data access
type ItemRepository interface {
	// Create creates a new knowledge item
	Create(ctx context.Context, item *models.KnowledgeItem) error

	// FindByID finds a knowledge item by ID
	FindByID(ctx context.Context, id uint64) (*models.KnowledgeItem, error)

	// List returns items matching the filter in storage order
	List(ctx context.Context, filter ItemFilter) ([]models.KnowledgeItem, error)

	// TagsByAuthor returns the non-empty tag strings of every item an author wrote
	TagsByAuthor(ctx context.Context, authorID uint64) ([]string, error)
}

// ItemFilter holds filtering options for listing knowledge items.
// Zero values disable the corresponding condition.
type ItemFilter struct {
	// TitleOrTags matches items whose title or tags contain the text
	TitleOrTags string
	// TagsContain matches items whose tags contain the text
	TagsContain string
	Status      *models.ItemStatus
	Limit       int
}

// ValidationRepository defines the interface for the validation audit log
type ValidationRepository interface {
	// Record appends a validation record and applies its decision to the item
	Record(ctx context.Context, record *models.ValidationRecord) error

	// ListByItem lists every record for an item, oldest first
	ListByItem(ctx context.Context, itemID uint64) ([]models.ValidationRecord, error)
}
