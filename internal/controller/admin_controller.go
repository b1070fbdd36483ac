package controller

import (
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService *service.AdminService
}

func NewAdminController(adminService *service.AdminService) *AdminController {
	return &AdminController{AdminService: adminService}
}

// Snapshot godoc
// @Summary Raw diagnostic snapshot
// @Description Unredacted dump of the current user record, custom lessons, session flags and storage usage.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Snapshot}
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/snapshot [get]
func (c *AdminController) Snapshot(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, c.AdminService.RawSnapshot(ctx.Request.Context(), claims.UserID))
}

// Reset godoc
// @Summary Factory reset
// @Description Wipes all user progress and custom lessons and flushes caches. Built-in lessons survive.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/admin/reset [post]
func (c *AdminController) Reset(ctx *gin.Context) {
	if err := c.AdminService.ResetAll(ctx.Request.Context()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
