package controller

import (
	"errors"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type ActivityRequest struct {
	Type     string  `json:"type" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Score    float64 `json:"score"`
	LessonID string  `json:"lessonId"`
}

// RecordActivity godoc
// @Summary Record a completed activity
// @Description Single integration point for quiz, voice, culture and vocab results. Awards XP, recomputes the level, maintains the streak and marks the lesson completed when a lessonId is given.
// @Tags progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ActivityRequest true "Activity result"
// @Success 200 {object} util.Response{data=model.User} "Updated user"
// @Failure 400 {object} util.Response "Unknown type or negative score"
// @Failure 401 {object} util.Response
// @Router /api/progress/activity [post]
func (c *ProgressController) RecordActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.ProgressService.SaveActivity(claims.UserID, model.ActivityType(req.Type), req.Title, req.Score, req.LessonID)
	if err != nil {
		if errors.Is(err, util.ErrInvalidActivity) || errors.Is(err, util.ErrNegativeScore) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, user)
}

// RecentActivity godoc
// @Summary Recent activity log
// @Description Returns the newest-first activity entries, capped at fifty.
// @Tags progress
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.ActivityLog}
// @Failure 401 {object} util.Response
// @Router /api/progress/activity [get]
func (c *ProgressController) RecentActivity(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.ProgressService.RecentActivity(claims.UserID))
}
