package controller

import (
	"errors"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

type LoginRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

// Login godoc
// @Summary Sign in with the shared access code
// @Description Validates the access code and returns a token. The first successful login creates the default learner profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Access code"
// @Success 200 {object} util.Response{data=object} "Token and user"
// @Failure 400 {object} util.Response "Missing access code"
// @Failure 401 {object} util.Response "Wrong access code"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.AccessCode)
	if err != nil {
		if errors.Is(err, util.ErrInvalidAccessCode) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token, "user": user})
}

// Logout godoc
// @Summary Sign out
// @Description Clears the server-side session flag. User data and lessons are retained.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if err := c.AuthService.Logout(claims.UserID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
