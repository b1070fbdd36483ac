package controller

import (
	"bytes"
	"encoding/base64"
	"linguist_ai_backend/internal/audio"
	"linguist_ai_backend/internal/service"
	"linguist_ai_backend/internal/util"
	"linguist_ai_backend/pkg/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AIController exposes the generative endpoints. Provider failures
// degrade to empty payloads with a warning log; the HTTP status stays
// 200 so the frontend renders its own fallback content.
type AIController struct {
	Gemini  *service.GeminiService
	Storage *service.StorageService
}

func NewAIController(gemini *service.GeminiService, storage *service.StorageService) *AIController {
	return &AIController{Gemini: gemini, Storage: storage}
}

// degrade logs a provider failure and answers with the fallback value.
func degrade(ctx *gin.Context, err error, fallback interface{}) {
	logger.Log.Warn("Generative call failed", zap.Error(err), zap.String("path", ctx.FullPath()))
	util.Success(ctx, fallback)
}

type GenerateLessonRequest struct {
	Topic   string `json:"topic" binding:"required"`
	Level   string `json:"level" binding:"required"`
	Context string `json:"context"`
}

// GenerateLesson godoc
// @Summary Generate a full lesson
// @Description Produces theory text plus a quiz for a topic at the requested proficiency level.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GenerateLessonRequest true "Topic and level"
// @Success 200 {object} util.Response{data=service.GeneratedLesson}
// @Failure 400 {object} util.Response
// @Router /api/ai/lesson [post]
func (c *AIController) GenerateLesson(ctx *gin.Context) {
	var req GenerateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.Gemini.GenerateFullLesson(ctx.Request.Context(), req.Topic, req.Level, req.Context)
	if err != nil {
		degrade(ctx, err, &service.GeneratedLesson{})
		return
	}
	util.Success(ctx, lesson)
}

type GrammarRequest struct {
	Text string `json:"text" binding:"required"`
}

// GrammarFeedback godoc
// @Summary Correct an English text
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body GrammarRequest true "Text to correct"
// @Success 200 {object} util.Response{data=service.GrammarFeedback}
// @Failure 400 {object} util.Response
// @Router /api/ai/grammar [post]
func (c *AIController) GrammarFeedback(ctx *gin.Context) {
	var req GrammarRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.Gemini.GenerateGrammarFeedback(ctx.Request.Context(), req.Text)
	if err != nil {
		degrade(ctx, err, &service.GrammarFeedback{})
		return
	}
	util.Success(ctx, feedback)
}

type VocabularyRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// Vocabulary godoc
// @Summary Generate vocabulary cards
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body VocabularyRequest true "Topic"
// @Success 200 {object} util.Response{data=[]service.VocabularyItem}
// @Failure 400 {object} util.Response
// @Router /api/ai/vocabulary [post]
func (c *AIController) Vocabulary(ctx *gin.Context) {
	var req VocabularyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	items, err := c.Gemini.GenerateVocabulary(ctx.Request.Context(), req.Topic)
	if err != nil {
		degrade(ctx, err, []service.VocabularyItem{})
		return
	}
	util.Success(ctx, items)
}

type WordImageRequest struct {
	Word string `json:"word" binding:"required"`
}

// WordImage godoc
// @Summary Illustrate a vocabulary word
// @Description Generates an image for the word, stores it and returns both the stored URL and an inline data URL.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body WordImageRequest true "Word"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Router /api/ai/vocabulary/image [post]
func (c *AIController) WordImage(ctx *gin.Context) {
	var req WordImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	dataURL, err := c.Gemini.GenerateWordImage(ctx.Request.Context(), req.Word)
	if err != nil || dataURL == "" {
		if err != nil {
			degrade(ctx, err, gin.H{"url": "", "dataUrl": ""})
			return
		}
		util.Success(ctx, gin.H{"url": "", "dataUrl": ""})
		return
	}

	url := c.storeWordImage(ctx, req.Word, dataURL)
	util.Success(ctx, gin.H{"url": url, "dataUrl": dataURL})
}

// storeWordImage persists the generated image; failures only cost the
// stored URL, the inline data URL is still returned.
func (c *AIController) storeWordImage(ctx *gin.Context, word, dataURL string) string {
	idx := strings.Index(dataURL, ";base64,")
	if !strings.HasPrefix(dataURL, "data:") || idx < 0 {
		return ""
	}
	if !util.IsImage(strings.TrimPrefix(dataURL[:idx], "data:")) {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[idx+len(";base64,"):])
	if err != nil {
		return ""
	}

	name := "images/words/" + util.Slugify(word) + ".png"
	url, err := c.Storage.Upload(ctx.Request.Context(), name, bytes.NewReader(raw), int64(len(raw)), util.MimePNG)
	if err != nil {
		logger.Log.Warn("Word image store failed", zap.Error(err), zap.String("word", word))
		return ""
	}
	return url
}

type ScenarioRequest struct {
	Level    string `json:"level" binding:"required"`
	Scenario string `json:"scenario" binding:"required"`
	Culture  string `json:"culture" binding:"required"`
}

// Scenario godoc
// @Summary Generate a cultural scenario exercise
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ScenarioRequest true "Scenario parameters"
// @Success 200 {object} util.Response{data=service.ScenarioExercise}
// @Failure 400 {object} util.Response
// @Router /api/ai/scenario [post]
func (c *AIController) Scenario(ctx *gin.Context) {
	var req ScenarioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercise, err := c.Gemini.GenerateScenario(ctx.Request.Context(), req.Level, req.Scenario, req.Culture)
	if err != nil {
		degrade(ctx, err, &service.ScenarioExercise{})
		return
	}
	util.Success(ctx, exercise)
}

type InterviewRequest struct {
	JobRole  string `json:"jobRole" binding:"required"`
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

// Interview godoc
// @Summary Evaluate a mock interview answer
// @Description Scores the answer with the STAR method and returns the next question.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body InterviewRequest true "Interview exchange"
// @Success 200 {object} util.Response{data=service.InterviewEvaluation}
// @Failure 400 {object} util.Response
// @Router /api/ai/interview [post]
func (c *AIController) Interview(ctx *gin.Context) {
	var req InterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	eval, err := c.Gemini.EvaluateInterviewAnswer(ctx.Request.Context(), req.JobRole, req.Question, req.Answer)
	if err != nil {
		degrade(ctx, err, &service.InterviewEvaluation{})
		return
	}
	util.Success(ctx, eval)
}

type SpeakRequest struct {
	Text string `json:"text" binding:"required"`
}

// Speak godoc
// @Summary Text to speech
// @Description Synthesizes the text and returns a playable WAV. Provider failures return a silent WAV rather than an error.
// @Tags ai
// @Accept json
// @Produce audio/wav
// @Security BearerAuth
// @Param body body SpeakRequest true "Text to speak"
// @Success 200 {file} binary "WAV audio"
// @Failure 400 {object} util.Response
// @Router /api/ai/speak [post]
func (c *AIController) Speak(ctx *gin.Context) {
	var req SpeakRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	pcm, err := c.Gemini.Synthesize(ctx.Request.Context(), req.Text)
	if err != nil {
		logger.Log.Warn("Speech synthesis failed", zap.Error(err))
		pcm = nil
	}
	ctx.Data(http.StatusOK, util.MimeWAV, audio.WrapWAV(pcm, audio.PlaybackSampleRate))
}
