package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/knowledge-share-api/internal/dto"
	apierrors "github.com/yukikurage/knowledge-share-api/internal/errors"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
	"github.com/yukikurage/knowledge-share-api/internal/middleware"
	"github.com/yukikurage/knowledge-share-api/internal/services"
	"github.com/yukikurage/knowledge-share-api/internal/storage"
)

type ItemHandler struct {
	itemService *services.ItemService
}

func NewItemHandler(itemService *services.ItemService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
	}
}

// Upload creates a knowledge item from a multipart form with an optional file
func (h *ItemHandler) Upload(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	title, ok := c.GetPostForm("title")
	if !ok {
		apierrors.MissingField(c, "title")
		return
	}

	input := services.UploadInput{
		AuthorID:    userID,
		Title:       title,
		Description: c.PostForm("description"),
		Tags:        c.PostForm("tags"),
		ProjectLink: c.PostForm("project_link"),
	}

	fileHeader, err := c.FormFile("file")
	switch {
	case err == nil:
		file, err := fileHeader.Open()
		if err != nil {
			apierrors.BadRequest(c, "Failed to read uploaded file")
			return
		}
		defer file.Close()

		input.File = &services.UploadFile{
			Name:        fileHeader.Filename,
			Size:        fileHeader.Size,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     file,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// no attachment
	default:
		apierrors.BadRequest(c, "Invalid multipart form")
		return
	}

	item, err := h.itemService.Upload(c.Request.Context(), input)
	if err != nil {
		respondItemError(c, err)
		return
	}

	logging.Info().Uint64("item_id", item.ID).Uint64("author_id", userID).Str("filename", item.Filename).Msg("knowledge item uploaded")
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Upload successful"})
}

// Search lists items whose title or tags contain ?q, or all items without it
func (h *ItemHandler) Search(c *gin.Context) {
	items, err := h.itemService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToKnowledgeItemDTOs(items))
}

// Recommendations lists items related to the current user's first tag
func (h *ItemHandler) Recommendations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	items, err := h.itemService.Recommend(c.Request.Context(), userID)
	if err != nil {
		respondItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToKnowledgeItemDTOs(items))
}

// ServeUpload streams an uploaded file by name
func (h *ItemHandler) ServeUpload(c *gin.Context) {
	rc, obj, err := h.itemService.OpenFile(c.Request.Context(), c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidName) {
			apierrors.NotFound(c, "File not found")
			return
		}
		logging.Error().Err(err).Str("filename", c.Param("filename")).Msg("failed to open upload")
		apierrors.InternalError(c, "")
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, rc, nil)
}

func respondItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.MissingField(c, "title")
	case errors.Is(err, services.ErrInvalidFileName):
		apierrors.BadRequest(c, err.Error())
	default:
		logging.Error().Err(err).Msg("knowledge item request failed")
		apierrors.InternalError(c, "")
	}
}
