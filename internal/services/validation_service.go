package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound    = errors.New("item not found")
	ErrInvalidDecision = errors.New("decision must be approved or rejected")
	ErrNotTeamLeader   = errors.New("only team leaders can validate items")
)

// ValidationService handles the review queue and leader decisions
type ValidationService struct {
	itemRepo       repository.ItemRepository
	validationRepo repository.ValidationRepository
	now            func() time.Time
}

// NewValidationService creates a new ValidationService
func NewValidationService(itemRepo repository.ItemRepository, validationRepo repository.ValidationRepository) *ValidationService {
	return &ValidationService{
		itemRepo:       itemRepo,
		validationRepo: validationRepo,
		now:            time.Now,
	}
}

// ValidateInput represents a leader's decision on an item
type ValidateInput struct {
	ItemID    uint64
	Validator *models.User
	Decision  models.ItemStatus
	Comments  string
}

// ListPending returns every item still awaiting review
func (s *ValidationService) ListPending(ctx context.Context) ([]models.KnowledgeItem, error) {
	status := models.ItemStatusSubmitted
	items, err := s.itemRepo.List(ctx, repository.ItemFilter{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending items: %w", err)
	}
	return items, nil
}

// Validate appends an audit record and moves the item to the decided status.
// Re-validating an item is allowed; each call adds a record.
func (s *ValidationService) Validate(ctx context.Context, input ValidateInput) (*models.ValidationRecord, error) {
	if input.Validator == nil || input.Validator.Role != models.RoleTeamLeader {
		return nil, ErrNotTeamLeader
	}
	if !input.Decision.IsDecision() {
		return nil, ErrInvalidDecision
	}

	if _, err := s.itemRepo.FindByID(ctx, input.ItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	record := &models.ValidationRecord{
		ItemID:      input.ItemID,
		ValidatorID: input.Validator.ID,
		Decision:    input.Decision,
		Comments:    input.Comments,
		Timestamp:   s.now().UTC(),
	}

	if err := s.validationRepo.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record validation: %w", err)
	}

	return record, nil
}

// History lists the validation records of an item, oldest first
func (s *ValidationService) History(ctx context.Context, itemID uint64) ([]models.ValidationRecord, error) {
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	records, err := s.validationRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list validation records: %w", err)
	}
	return records, nil
}
