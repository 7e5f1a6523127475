package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/hostelmess/internal/app/models"
	"github.com/yigit/hostelmess/internal/app/models/dto"
	"github.com/yigit/hostelmess/internal/app/services"
	"github.com/yigit/hostelmess/internal/middleware"
)

// AuthController handles the demo role login.
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// DemoCredentials returns the pre-filled login values for a role
// @Summary Demo credentials
// @Tags auth
// @Produce json
// @Param role query string true "student or committee"
// @Success 200 {object} dto.APIResponse{data=dto.DemoCredentials}
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/demo-credentials [get]
func (c *AuthController) DemoCredentials(ctx *gin.Context) {
	creds, err := c.authService.DemoCredentials(models.Role(ctx.Query("role")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(creds))
}

// Login signs in as the selected role
// @Summary Role login
// @Description Credentials are not verified; the role decides the session user.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login form"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}
