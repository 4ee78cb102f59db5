package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/knowledge-share-api/internal/dto"
	apierrors "github.com/yukikurage/knowledge-share-api/internal/errors"
	"github.com/yukikurage/knowledge-share-api/internal/logging"
	"github.com/yukikurage/knowledge-share-api/internal/middleware"
	"github.com/yukikurage/knowledge-share-api/internal/models"
	"github.com/yukikurage/knowledge-share-api/internal/services"
)

type ValidationHandler struct {
	validationService *services.ValidationService
}

func NewValidationHandler(validationService *services.ValidationService) *ValidationHandler {
	return &ValidationHandler{
		validationService: validationService,
	}
}

// ListPending returns the review queue
func (h *ValidationHandler) ListPending(c *gin.Context) {
	items, err := h.validationService.ListPending(c.Request.Context())
	if err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToKnowledgeItemDTOs(items))
}

// Validate records a team leader's decision on an item
func (h *ValidationHandler) Validate(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	// item_id may be sent as a number or a numeric string
	type ValidateRequest struct {
		ItemID   json.Number `json:"item_id" binding:"required"`
		Decision string      `json:"decision" binding:"required"`
		Comments string      `json:"comments"`
	}

	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	itemID, err := strconv.ParseUint(req.ItemID.String(), 10, 64)
	if err != nil {
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInvalidFormat, "Invalid item ID"))
		return
	}

	record, err := h.validationService.Validate(c.Request.Context(), services.ValidateInput{
		ItemID:    itemID,
		Validator: user,
		Decision:  models.ItemStatus(req.Decision),
		Comments:  req.Comments,
	})
	if err != nil {
		respondValidationError(c, err)
		return
	}

	logging.Info().
		Uint64("item_id", record.ItemID).
		Uint64("validator_id", record.ValidatorID).
		Str("decision", string(record.Decision)).
		Msg("item validated")
	c.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Item %s", record.Decision)})
}

// History lists the validation records of an item
func (h *ValidationHandler) History(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.RespondWithError(c, http.StatusBadRequest, apierrors.NewAPIError(apierrors.ErrCodeInvalidFormat, "Invalid item ID"))
		return
	}

	records, err := h.validationService.History(c.Request.Context(), itemID)
	if err != nil {
		respondValidationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationRecordDTOs(records))
}

func respondValidationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotTeamLeader):
		apierrors.Forbidden(c, "")
	case errors.Is(err, services.ErrInvalidDecision):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrItemNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		logging.Error().Err(err).Msg("validation request failed")
		apierrors.InternalError(c, "")
	}
}
