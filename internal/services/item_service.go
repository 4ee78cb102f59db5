package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yukikurage/knowledge-share-api/internal/constants"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/repository"
	"github.com/yukikurage/knowledge-share-api/internal/storage"
	"github.com/yukikurage/knowledge-share-api/internal/utils"
)

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrInvalidFileName   = errors.New("invalid file name")
	ErrFailedToStoreFile = errors.New("failed to store file")
)

// ItemService handles knowledge item uploads, search and recommendations
type ItemService struct {
	itemRepo repository.ItemRepository
	store    storage.Store
	now      func() time.Time
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo repository.ItemRepository, store storage.Store) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		store:    store,
		now:      time.Now,
	}
}

// UploadFile is an optional attachment for an upload
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Content     io.Reader
}

// UploadInput represents input for creating a knowledge item
type UploadInput struct {
	AuthorID    uint64
	Title       string
	Description string
	Tags        string
	ProjectLink string
	File        *UploadFile
}

// Upload stores the optional file under its client-supplied name and creates a
// submitted item. An existing file with the same name is replaced.
func (s *ItemService) Upload(ctx context.Context, input UploadInput) (*models.KnowledgeItem, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	var filename string
	if input.File != nil && input.File.Name != "" {
		name, err := storage.CleanName(input.File.Name)
		if err != nil {
			return nil, ErrInvalidFileName
		}
		if err := s.store.Save(ctx, name, input.File.Content, input.File.Size, input.File.ContentType); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToStoreFile, err)
		}
		filename = name
	}

	now := s.now().UTC()
	item := &models.KnowledgeItem{
		Title:       input.Title,
		Description: input.Description,
		AuthorID:    input.AuthorID,
		Tags:        input.Tags,
		ProjectLink: input.ProjectLink,
		Filename:    filename,
		Status:      models.ItemStatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return item, nil
}

// Search returns items whose title or tags contain the query, or every item when it is empty
func (s *ItemService) Search(ctx context.Context, query string) ([]models.KnowledgeItem, error) {
	items, err := s.itemRepo.List(ctx, repository.ItemFilter{TitleOrTags: query})
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	return items, nil
}

// Recommend matches items against the first tag keyword the user has used.
// Users without tags get an unfiltered, capped list.
func (s *ItemService) Recommend(ctx context.Context, userID uint64) ([]models.KnowledgeItem, error) {
	tags, err := s.itemRepo.TagsByAuthor(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user tags: %w", err)
	}

	filter := repository.ItemFilter{Limit: constants.RecommendationFallbackLimit}
	if keywords := utils.TagKeywords(tags...); len(keywords) > 0 {
		filter = repository.ItemFilter{TagsContain: keywords[0]}
	}

	items, err := s.itemRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return items, nil
}

// OpenFile streams a previously uploaded file
func (s *ItemService) OpenFile(ctx context.Context, name string) (io.ReadCloser, storage.Object, error) {
	return s.store.Open(ctx, name)
}
