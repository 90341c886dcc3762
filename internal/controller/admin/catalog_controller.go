package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/service"
	"github.com/rs/zerolog/log"
)

// CatalogController is the authoring surface: behaviours, questions and
// tests, answer keys included. Every route here sits behind RequireAdmin.
type CatalogController struct {
	adminService service.AdminCatalogService
}

func NewCatalogController(adminService service.AdminCatalogService) *CatalogController {
	return &CatalogController{adminService: adminService}
}

// CreateBehaviour godoc
// @Summary (Admin) Create a behaviour
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param behaviour body dto.BehaviourCreateDTO true "Behaviour definition, ID is the slug"
// @Success 201 {object} dto.BehaviourDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or duplicate ID"
// @Router /admin/behaviours [post]
func (c *CatalogController) CreateBehaviour(ctx *gin.Context) {
	var req dto.BehaviourCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.adminService.CreateBehaviour(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// UpdateBehaviour godoc
// @Summary (Admin) Update a behaviour
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param behaviour_id path string true "Behaviour ID"
// @Param behaviour body dto.BehaviourCreateDTO true "Updated behaviour"
// @Success 200 {object} dto.BehaviourDTO
// @Failure 404 {object} dto.ErrorResponse "Behaviour not found"
// @Router /admin/behaviours/{behaviour_id} [put]
func (c *CatalogController) UpdateBehaviour(ctx *gin.Context) {
	var req dto.BehaviourCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.adminService.UpdateBehaviour(ctx.Param("behaviour_id"), req)
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteBehaviour godoc
// @Summary (Admin) Delete a behaviour
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param behaviour_id path string true "Behaviour ID"
// @Success 204 "Behaviour deleted"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/behaviours/{behaviour_id} [delete]
func (c *CatalogController) DeleteBehaviour(ctx *gin.Context) {
	if err := c.adminService.DeleteBehaviour(ctx.Param("behaviour_id")); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateQuestion godoc
// @Summary (Admin) Create a question
// @Description Validates the answer key against the question type before saving.
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question body dto.QuestionCreateDTO true "Question definition"
// @Success 201 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input, bad answer key or unknown behaviour"
// @Router /admin/questions [post]
func (c *CatalogController) CreateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.adminService.CreateQuestion(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// GetQuestion godoc
// @Summary (Admin) Get a question with its answer key
// @Tags Admin - Catalog
// @Produce json
// @Security BearerAuth
// @Param question_id path string true "Question ID"
// @Success 200 {object} dto.QuestionAdminDTO
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [get]
func (c *CatalogController) GetQuestion(ctx *gin.Context) {
	resp, err := c.adminService.GetQuestion(ctx.Param("question_id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListQuestions godoc
// @Summary (Admin) List questions
// @Tags Admin - Catalog
// @Produce json
// @Security BearerAuth
// @Param grade_id query string false "Filter by grade"
// @Param type query string false "Filter by question type"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page size, max 100"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions [get]
func (c *CatalogController) ListQuestions(ctx *gin.Context) {
	var gradeID, questionType *string
	if v := ctx.Query("grade_id"); v != "" {
		gradeID = &v
	}
	if v := ctx.Query("type"); v != "" {
		questionType = &v
	}
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "20"))

	resp, err := c.adminService.ListQuestions(gradeID, questionType, page, pageSize)
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve questions"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UpdateQuestion godoc
// @Summary (Admin) Update a question
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param question_id path string true "Question ID"
// @Param question body dto.QuestionCreateDTO true "Updated question"
// @Success 200 {object} dto.QuestionAdminDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or bad answer key"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /admin/questions/{question_id} [put]
func (c *CatalogController) UpdateQuestion(ctx *gin.Context) {
	var req dto.QuestionCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.adminService.UpdateQuestion(ctx.Param("question_id"), req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param question_id path string true "Question ID"
// @Success 204 "Question deleted"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/questions/{question_id} [delete]
func (c *CatalogController) DeleteQuestion(ctx *gin.Context) {
	if err := c.adminService.DeleteQuestion(ctx.Param("question_id")); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateTest godoc
// @Summary (Admin) Create a test
// @Description Assembles questions into an ordered test. Positions must be unique and every question must exist. Tests are created unpublished.
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input, duplicate position or unknown question"
// @Router /admin/tests [post]
func (c *CatalogController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.adminService.CreateTest(req)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}
	log.Info().Str("testID", resp.ID).Str("name", resp.Name).Msg("Test created")
	ctx.JSON(http.StatusCreated, resp)
}

// ListTests godoc
// @Summary (Admin) List all tests including unpublished
// @Tags Admin - Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests [get]
func (c *CatalogController) ListTests(ctx *gin.Context) {
	resp, err := c.adminService.ListTests()
	if err != nil {
		log.Error().Err(err).Msg("Admin ListTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// PublishTest godoc
// @Summary (Admin) Publish a test
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 204 "Test published"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/publish [post]
func (c *CatalogController) PublishTest(ctx *gin.Context) {
	if err := c.adminService.SetTestPublished(ctx.Param("test_id"), true); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UnpublishTest godoc
// @Summary (Admin) Unpublish a test
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 204 "Test unpublished"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /admin/tests/{test_id}/publish [delete]
func (c *CatalogController) UnpublishTest(ctx *gin.Context) {
	if err := c.adminService.SetTestPublished(ctx.Param("test_id"), false); err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteTest godoc
// @Summary (Admin) Delete a test
// @Tags Admin - Catalog
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 204 "Test deleted"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/tests/{test_id} [delete]
func (c *CatalogController) DeleteTest(ctx *gin.Context) {
	if err := c.adminService.DeleteTest(ctx.Param("test_id")); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Analytics godoc
// @Summary (Admin) Platform headline figures
// @Tags Admin - Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AnalyticsDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/analytics [get]
func (c *CatalogController) Analytics(ctx *gin.Context) {
	resp, err := c.adminService.Analytics()
	if err != nil {
		log.Error().Err(err).Msg("Analytics: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to compute analytics"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
