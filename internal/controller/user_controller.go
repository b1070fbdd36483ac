package controller

import (
	"errors"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary Current learner profile
// @Description Returns the stored user with completed lessons and recent activity. A missing record yields the zero-state profile, never an error.
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Profile}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.UserService.GetProfile(claims.UserID))
}

type SubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// UpdateSubscription godoc
// @Summary Change the subscription plan
// @Description Upgrades the learner to pro or immersion.
// @Tags user
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubscriptionRequest true "Target plan"
// @Success 200 {object} util.Response{data=model.User}
// @Failure 400 {object} util.Response "Unknown plan"
// @Failure 401 {object} util.Response
// @Router /api/subscription [put]
func (c *UserController) UpdateSubscription(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateSubscription(claims.UserID, model.SubscriptionPlan(req.Plan))
	if err != nil {
		if errors.Is(err, util.ErrInvalidPlan) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}
