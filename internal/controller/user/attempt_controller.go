package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/engine"
	"github.com/lambourne/crownprep/internal/middleware"
	"github.com/lambourne/crownprep/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// attemptError maps attempt lifecycle errors onto HTTP statuses shared by
// every handler in this controller.
func attemptError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrAttemptNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Attempt not found"})
	case errors.Is(err, service.ErrNotOwner):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, engine.ErrAttemptExpired):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Attempt time limit has expired"})
	case errors.Is(err, engine.ErrAttemptNotActive):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Attempt is no longer in progress"})
	case errors.Is(err, service.ErrResultsNotReady):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Msg("Attempt handler: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

// StartTest godoc
// @Summary Start a test attempt
// @Description Creates an attempt against a published test, freezing the test content and question order at this moment.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 201 {object} dto.StartAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Test not found or unpublished"
// @Router /tests/{test_id}/attempts [post]
func (c *AttemptController) StartTest(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.attemptService.StartTest(ctx.Param("test_id"), userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	log.Info().Str("attemptID", resp.AttemptID).Str("userID", userID).Msg("Attempt started")
	ctx.JSON(http.StatusCreated, resp)
}

// SaveAnswer godoc
// @Summary Save or replace an answer
// @Description Upserts the answer for one question of an in-progress attempt. Saving again overwrites the previous response.
// @Tags Attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Param answer body dto.SaveAnswerRequest true "Question ID and response"
// @Success 204 "Answer saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or unknown question"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt expired or not in progress"
// @Router /attempts/{attempt_id}/answers [put]
func (c *AttemptController) SaveAnswer(ctx *gin.Context) {
	var req dto.SaveAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	userID := ctx.GetString(middleware.ContextUserID)
	if err := c.attemptService.SaveAnswer(ctx.Param("attempt_id"), userID, req); err != nil {
		attemptError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// TimeRemaining godoc
// @Summary Get the attempt countdown
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.TimeRemainingDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/time [get]
func (c *AttemptController) TimeRemaining(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.attemptService.TimeRemaining(ctx.Param("attempt_id"), userID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Resume godoc
// @Summary Resume an in-progress attempt
// @Description Returns everything a client needs to restore the attempt screen: question order, saved answers and the remaining time.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.ResumeAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt is no longer in progress"
// @Router /attempts/{attempt_id}/resume [get]
func (c *AttemptController) Resume(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.attemptService.Resume(ctx.Param("attempt_id"), userID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Submit godoc
// @Summary Submit an attempt for scoring
// @Description Scores every question, aggregates behaviour performance and returns the full result. Unanswered questions score zero.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt already submitted or abandoned"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) Submit(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.attemptService.Submit(ctx.Param("attempt_id"), userID)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	log.Info().Str("attemptID", resp.AttemptID).Float64("percentage", resp.Percentage).Msg("Attempt submitted")
	ctx.JSON(http.StatusOK, resp)
}

// Abandon godoc
// @Summary Abandon an in-progress attempt
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 204 "Attempt abandoned"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt is no longer in progress"
// @Router /attempts/{attempt_id} [delete]
func (c *AttemptController) Abandon(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	if err := c.attemptService.Abandon(ctx.Param("attempt_id"), userID); err != nil {
		attemptError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListAttempts godoc
// @Summary List the caller's attempts
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (IN_PROGRESS, SUBMITTED, ABANDONED, EXPIRED)"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page size, max 100"
// @Success 200 {object} dto.AttemptListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	var status *string
	if v := ctx.Query("status"); v != "" {
		status = &v
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.attemptService.ListAttempts(userID, status, page, pageSize)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Results godoc
// @Summary Get the results of a submitted attempt
// @Description Returns the total score, behaviour breakdown and per-question audit for the caller's own attempt.
// @Tags Attempts
// @Produce json
// @Security BearerAuth
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt has not been submitted"
// @Router /attempts/{attempt_id}/results [get]
func (c *AttemptController) Results(ctx *gin.Context) {
	userID := ctx.GetString(middleware.ContextUserID)
	resp, err := c.attemptService.Results(ctx.Param("attempt_id"), userID, false, true)
	if err != nil {
		attemptError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
