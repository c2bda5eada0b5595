package controller

import (
	"net/http"

	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary Authenticate and receive a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "Email and password"
// @Success 200 {object} dto.LoginResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Login(req)
	if err != nil {
		status, body := apperr.Body(err)
		ctx.JSON(status, body)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
