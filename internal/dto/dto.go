package dto

import (
	"net/url"
	"time"

	"github.com/yukikurage/knowledge-share-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64          `json:"id"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
}

// KnowledgeItemDTO represents a knowledge item in API responses
type KnowledgeItemDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	AuthorID    uint64            `json:"author_id"`
	Tags        string            `json:"tags"`
	ProjectLink string            `json:"project_link"`
	Filename    string            `json:"filename"`
	FileURL     string            `json:"file_url,omitempty"`
	Status      models.ItemStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ValidationRecordDTO represents an audit entry in API responses
type ValidationRecordDTO struct {
	ID          uint64            `json:"id"`
	ItemID      uint64            `json:"item_id"`
	ValidatorID uint64            `json:"validator_id"`
	Decision    models.ItemStatus `json:"decision"`
	Comments    string            `json:"comments"`
	Timestamp   time.Time         `json:"timestamp"`
}

// CheckAuthResponse is returned by GET /api/check-auth
type CheckAuthResponse struct {
	Authenticated bool     `json:"authenticated"`
	User          *UserDTO `json:"user,omitempty"`
}

// RegisterResponse is returned by POST /api/register
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  uint64 `json:"user_id"`
}

// LoginResponse is returned by POST /api/login
type LoginResponse struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

// MessageResponse carries a human readable outcome
type MessageResponse struct {
	Message string `json:"message"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
}

// ToKnowledgeItemDTO converts a KnowledgeItem model to KnowledgeItemDTO
func ToKnowledgeItemDTO(item models.KnowledgeItem) KnowledgeItemDTO {
	dto := KnowledgeItemDTO{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		AuthorID:    item.AuthorID,
		Tags:        item.Tags,
		ProjectLink: item.ProjectLink,
		Filename:    item.Filename,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}

	if item.Filename != "" {
		dto.FileURL = UploadURL(item.Filename)
	}

	return dto
}

// ToKnowledgeItemDTOs converts items, always returning a non-nil slice
func ToKnowledgeItemDTOs(items []models.KnowledgeItem) []KnowledgeItemDTO {
	dtos := make([]KnowledgeItemDTO, len(items))
	for i, item := range items {
		dtos[i] = ToKnowledgeItemDTO(item)
	}
	return dtos
}

// ToValidationRecordDTOs converts audit records
func ToValidationRecordDTOs(records []models.ValidationRecord) []ValidationRecordDTO {
	dtos := make([]ValidationRecordDTO, len(records))
	for i, record := range records {
		dtos[i] = ValidationRecordDTO{
			ID:          record.ID,
			ItemID:      record.ItemID,
			ValidatorID: record.ValidatorID,
			Decision:    record.Decision,
			Comments:    record.Comments,
			Timestamp:   record.Timestamp,
		}
	}
	return dtos
}

// UploadURL is the public path of an uploaded file
func UploadURL(filename string) string {
	return "/static/uploads/" + url.PathEscape(filename)
}
