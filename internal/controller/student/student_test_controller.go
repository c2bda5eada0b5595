package student

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
	sessionService service.SessionService
}

func NewTestController(sessionService service.SessionService) *TestController {
	return &TestController{sessionService: sessionService}
}

// AvailableTests godoc
// @Summary (Student) List available tests
// @Description All scheduled tests with live status, the student's prior attempt if any, and IST display times.
// @Tags Student - Tests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AvailableTestDTO
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /student-tests/available [get]
func (c *TestController) AvailableTests(ctx *gin.Context) {
	studentID := middleware.PrincipalID(ctx)

	tests, err := c.sessionService.AvailableTests(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("AvailableTests: service error")
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"tests": tests})
}

// GetTest godoc
// @Summary (Student) Fetch a test for taking
// @Description Only Active tests are served, and only to students without a prior attempt. Answer keys are stripped.
// @Tags Student - Tests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Success 200 {object} dto.AttemptTestDTO
// @Failure 400 {object} dto.ErrorResponse "Not started yet or already ended"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Already attempted"
// @Router /student-tests/{id} [get]
func (c *TestController) GetTest(ctx *gin.Context) {
	studentID := middleware.PrincipalID(ctx)
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID"})
		return
	}

	test, err := c.sessionService.TestForAttempt(studentID, uint(testID))
	if err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"test": test})
}

// SubmitTest godoc
// @Summary (Student) Submit answers for a test
// @Description Grades against the server-held answer key and persists exactly one result per student and test.
// @Tags Student - Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Test ID"
// @Param submission body dto.TestSubmitDTO true "Answers and elapsed minutes"
// @Success 201 {object} dto.SubmitResultDTO
// @Failure 400 {object} dto.ErrorResponse "Count mismatch or unknown question"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Duplicate submission"
// @Router /student-tests/{id}/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	studentID := middleware.PrincipalID(ctx)
	testID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test ID"})
		return
	}

	var req dto.TestSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.sessionService.Submit(studentID, uint(testID), req)
	if err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message": "Test submitted successfully", "result": result})
}
