package controller

import (
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LiveController struct {
	Hub *service.LiveHub
}

func NewLiveController(hub *service.LiveHub) *LiveController {
	return &LiveController{Hub: hub}
}

// Voice godoc
// @Summary Open a realtime voice session
// @Description Upgrades to a websocket that streams microphone audio up and tutor speech plus transcripts down. Pass the token as a query parameter.
// @Tags live
// @Security BearerAuth
// @Param token query string true "JWT"
// @Success 101 {string} string "Switching protocols"
// @Failure 401 {object} util.Response
// @Router /api/live/voice [get]
func (c *LiveController) Voice(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	service.ServeVoice(c.Hub, ctx.Writer, ctx.Request, claims.UserID)
}
