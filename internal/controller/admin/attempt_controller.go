package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/middleware"
	"github.com/lambourne/crownprep/internal/service"
	"github.com/rs/zerolog/log"
)

// AttemptController is the marking side: admins can inspect any submitted
// attempt and manually score answers the engine deferred.
type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// Results godoc
// @Summary (Admin) Get any attempt's results with the full audit trail
// @Tags Admin - Marking
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt has not been submitted"
// @Router /admin/attempts/{attempt_id}/results [get]
func (c *AttemptController) Results(ctx *gin.Context) {
	requesterID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.attemptService.Results(ctx.Param("attempt_id"), requesterID, true, true)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
		case errors.Is(err, service.ErrResultsNotReady):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		default:
			log.Error().Err(err).Msg("Admin Results: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
		}
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// OverrideAnswer godoc
// @Summary (Admin) Manually score one answer of a submitted attempt
// @Description Sets a manual score on the answer (clamped to its max marks) and recomputes the attempt totals. Intended for TECHNICAL questions awaiting review.
// @Tags Admin - Marking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Param question_id path string true "Question ID"
// @Param override body dto.OverrideAnswerRequest true "Manual score"
// @Success 200 {object} dto.AttemptResultDTO "Recomputed results"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Attempt or answer not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt has not been submitted"
// @Router /admin/attempts/{attempt_id}/answers/{question_id}/override [put]
func (c *AttemptController) OverrideAnswer(ctx *gin.Context) {
	var req dto.OverrideAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.attemptService.OverrideAnswer(ctx.Param("attempt_id"), ctx.Param("question_id"), req.Score)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
		case errors.Is(err, service.ErrResultsNotReady):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
		default:
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		}
		return
	}
	log.Info().Str("attemptID", ctx.Param("attempt_id")).Str("questionID", ctx.Param("question_id")).Float64("score", req.Score).Msg("Answer manually scored")
	ctx.JSON(http.StatusOK, resp)
}
