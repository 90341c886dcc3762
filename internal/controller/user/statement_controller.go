package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/middleware"
	"github.com/lambourne/crownprep/internal/service"
	"github.com/rs/zerolog/log"
)

type StatementController struct {
	statementService service.StatementService
}

func NewStatementController(statementService service.StatementService) *StatementController {
	return &StatementController{statementService: statementService}
}

func statementError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrNotOwner) {
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
}

// CreateDraft godoc
// @Summary Create a behaviour statement draft
// @Description Saves a STAR-method draft against a behaviour and returns it with heuristic feedback.
// @Tags Statements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draft body dto.StatementDraftRequest true "Draft sections"
// @Success 201 {object} dto.StatementDraftDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Behaviour not found"
// @Router /statements [post]
func (c *StatementController) CreateDraft(ctx *gin.Context) {
	var req dto.StatementDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.statementService.CreateDraft(userID, req)
	if err != nil {
		log.Warn().Err(err).Str("userID", userID).Msg("CreateDraft: service error")
		statementError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateDraft godoc
// @Summary Update a statement draft
// @Tags Statements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draft_id path string true "Draft ID"
// @Param draft body dto.StatementDraftRequest true "Draft sections"
// @Success 200 {object} dto.StatementDraftDTO
// @Failure 403 {object} dto.ErrorResponse "Draft belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Draft not found"
// @Router /statements/{draft_id} [put]
func (c *StatementController) UpdateDraft(ctx *gin.Context) {
	var req dto.StatementDraftRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.statementService.UpdateDraft(ctx.Param("draft_id"), userID, req)
	if err != nil {
		statementError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetDraft godoc
// @Summary Get a statement draft with feedback
// @Tags Statements
// @Produce json
// @Security BearerAuth
// @Param draft_id path string true "Draft ID"
// @Success 200 {object} dto.StatementDraftDTO
// @Failure 403 {object} dto.ErrorResponse "Draft belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Draft not found"
// @Router /statements/{draft_id} [get]
func (c *StatementController) GetDraft(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.statementService.GetDraft(ctx.Param("draft_id"), userID)
	if err != nil {
		statementError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListDrafts godoc
// @Summary List the caller's statement drafts
// @Tags Statements
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.StatementDraftDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /statements [get]
func (c *StatementController) ListDrafts(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.statementService.ListDrafts(userID)
	if err != nil {
		log.Error().Err(err).Msg("ListDrafts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve drafts"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteDraft godoc
// @Summary Delete a statement draft
// @Tags Statements
// @Produce json
// @Security BearerAuth
// @Param draft_id path string true "Draft ID"
// @Success 204 "Draft deleted"
// @Failure 403 {object} dto.ErrorResponse "Draft belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Draft not found"
// @Router /statements/{draft_id} [delete]
func (c *StatementController) DeleteDraft(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	if err := c.statementService.DeleteDraft(ctx.Param("draft_id"), userID); err != nil {
		statementError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
