package controller

import (
	"errors"
	"linguist_ai_backend/internal/model"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// List godoc
// @Summary Lesson catalog
// @Description Returns built-in lessons followed by custom ones in creation order.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Lesson}
// @Router /api/lessons [get]
func (c *LessonController) List(ctx *gin.Context) {
	lessons, err := c.LessonService.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// Get godoc
// @Summary Fetch one lesson
// @Description Looks the lesson up by id first, then by slug.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lesson id or slug"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) Get(ctx *gin.Context) {
	lesson, err := c.LessonService.Get(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// Create godoc
// @Summary Create a custom lesson
// @Description Adds a user-defined lesson to the catalog. The slug is derived from the title; ids are generated.
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateLessonRequest true "Lesson fields"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "Empty title"
// @Router /api/lessons [post]
func (c *LessonController) Create(ctx *gin.Context) {
	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.LessonService.Create(service.CreateLessonInput{
		Title:       req.Title,
		Level:       model.ProficiencyLevel(req.Level),
		Category:    req.Category,
		Icon:        req.Icon,
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, util.ErrEmptyLessonTitle) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, lesson)
}

// UploadVideo godoc
// @Summary Attach a video to a lesson
// @Description Stores the uploaded file, probes its duration and generates a thumbnail.
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lesson id or slug"
// @Param video formData file true "Video file"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response "Missing or unsupported file"
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	lesson, err := c.LessonService.AttachVideo(ctx.Request.Context(), ctx.Param("id"), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrLessonNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnsupportedMedia):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}
