package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lambourne/crownprep/internal/dto"
	"github.com/lambourne/crownprep/internal/service"
	"github.com/rs/zerolog/log"
)

// CatalogController serves the learner-facing, published-only view of the
// content catalog. Answer keys never leave this surface.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// ListTests godoc
// @Summary List published tests
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *CatalogController) ListTests(ctx *gin.Context) {
	tests, err := c.catalogService.ListTests()
	if err != nil {
		log.Error().Err(err).Msg("ListTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests"})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get a published test with its questions
// @Description Questions are returned in test order with answer keys stripped.
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param test_id path string true "Test ID"
// @Success 200 {object} dto.TestDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Test not found or unpublished"
// @Router /tests/{test_id} [get]
func (c *CatalogController) GetTestDetails(ctx *gin.Context) {
	details, err := c.catalogService.GetTestDetails(ctx.Param("test_id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// ListBehaviours godoc
// @Summary List Success Profile behaviours
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param grade_id query string false "Filter by grade"
// @Success 200 {array} dto.BehaviourDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /behaviours [get]
func (c *CatalogController) ListBehaviours(ctx *gin.Context) {
	var gradeID *string
	if v := ctx.Query("grade_id"); v != "" {
		gradeID = &v
	}
	behaviours, err := c.catalogService.ListBehaviours(gradeID)
	if err != nil {
		log.Error().Err(err).Msg("ListBehaviours: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve behaviours"})
		return
	}
	ctx.JSON(http.StatusOK, behaviours)
}

// GetBehaviour godoc
// @Summary Get one behaviour with its success criteria
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param behaviour_id path string true "Behaviour ID"
// @Success 200 {object} dto.BehaviourDTO
// @Failure 404 {object} dto.ErrorResponse "Behaviour not found"
// @Router /behaviours/{behaviour_id} [get]
func (c *CatalogController) GetBehaviour(ctx *gin.Context) {
	behaviour, err := c.catalogService.GetBehaviour(ctx.Param("behaviour_id"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, behaviour)
}

// ListGrades godoc
// @Summary List civil service grades
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.GradeDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /grades [get]
func (c *CatalogController) ListGrades(ctx *gin.Context) {
	grades, err := c.catalogService.ListGrades()
	if err != nil {
		log.Error().Err(err).Msg("ListGrades: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve grades"})
		return
	}
	ctx.JSON(http.StatusOK, grades)
}
