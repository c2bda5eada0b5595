package professor

import (
	"net/http"
	"strconv"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/middleware"
	"github.com/devly/devly/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type TestController struct {
	authoringService service.AuthoringService
	questionService  service.QuestionService
}

func NewTestController(authoringService service.AuthoringService, questionService service.QuestionService) *TestController {
	return &TestController{
		authoringService: authoringService,
		questionService:  questionService,
	}
}

// ListTests godoc
// @Summary (Professor) List own tests
// @Description Get all tests created by the authenticated professor, with live-computed status.
// @Tags Professor - Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TestProfessorDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tests [get]
func (c *TestController) ListTests(ctx *gin.Context) {
	professorID := middleware.PrincipalID(ctx)

	tests, err := c.authoringService.ListTests(professorID)
	if err != nil {
		log.Error().Err(err).Uint("professorID", professorID).Msg("ListTests: service error")
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tests": tests})
}

// CreateTest godoc
// @Summary (Professor) Schedule a new test
// @Description Create a test; the exam paper is sampled from the question bank matching subject and difficulty.
// @Tags Professor - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param test body dto.TestCreateDTO true "Test definition"
// @Success 201 {object} dto.TestProfessorDTO
// @Failure 400 {object} dto.ErrorResponse "Missing fields or insufficient question pool"
// @Failure 401 {object} dto.ErrorResponse
// @Router /tests [post]
func (c *TestController) CreateTest(ctx *gin.Context) {
	professorID := middleware.PrincipalID(ctx)

	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Missing required fields", Details: []string{err.Error()}})
		return
	}

	test, err := c.authoringService.CreateTest(professorID, req)
	if err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Test created successfully", "test": test})
}

// UpdateTest godoc
// @Summary (Professor) Update a Pending test
// @Description Patch test fields; changing subject, difficulty or question count resamples the paper. Rejected once the test is Active or Completed.
// @Tags Professor - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Param test body dto.TestUpdateDTO true "Fields to patch"
// @Success 200 {object} dto.TestProfessorDTO
// @Failure 400 {object} dto.ErrorResponse "Not Pending, or insufficient pool after resample"
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id} [put]
func (c *TestController) UpdateTest(ctx *gin.Context) {
	professorID := middleware.PrincipalID(ctx)
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID"})
		return
	}

	var req dto.TestUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	test, err := c.authoringService.UpdateTest(professorID, uint(testID), req)
	if err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Test updated successfully", "test": test})
}

// DeleteTest godoc
// @Summary (Professor) Delete a Pending test
// @Tags Professor - Tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse "Test is Active or Completed"
// @Failure 404 {object} dto.ErrorResponse
// @Router /tests/{id} [delete]
func (c *TestController) DeleteTest(ctx *gin.Context) {
	professorID := middleware.PrincipalID(ctx)
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID"})
		return
	}

	if err := c.authoringService.DeleteTest(professorID, uint(testID)); err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}

// ImportQuestions godoc
// @Summary (Professor) Bulk-import bank questions
// @Tags Professor - Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param questions body dto.QuestionImportDTO true "Questions to import"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Router /questions/import [post]
func (c *TestController) ImportQuestions(ctx *gin.Context) {
	var req dto.QuestionImportDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	count, err := c.questionService.Import(req)
	if err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Questions imported successfully", "count": count})
}
