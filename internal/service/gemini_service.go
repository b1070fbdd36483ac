package service

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"linguist_ai_backend/internal/config"
	"linguist_ai_backend/pkg/logger"
	"linguist_ai_backend/pkg/monitoring"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// GeminiService wraps the generateContent REST surface of the Gemini API.
// Every structured call constrains the response with a JSON schema and
// degrades to an empty payload when the model returns garbage, so callers
// never have to deal with half-parsed output.
type GeminiService struct {
	Redis  *redis.Client
	Client *http.Client

	cfgMu sync.RWMutex
	cfg   config.GeminiConfig
}

func NewGeminiService(cfg config.GeminiConfig, redisClient *redis.Client) *GeminiService {
	return &GeminiService{
		cfg:    cfg,
		Redis:  redisClient,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

// UpdateConfig swaps the API settings; in-flight requests keep the
// snapshot they started with.
func (s *GeminiService) UpdateConfig(cfg config.GeminiConfig) {
	s.cfgMu.Lock()
	s.cfg = cfg
	s.cfgMu.Unlock()
}

func (s *GeminiService) settings() config.GeminiConfig {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}

const genAICacheTTL = 6 * time.Hour

// --- result payloads ---

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

type GeneratedLesson struct {
	Theory string         `json:"theory"`
	Quiz   []QuizQuestion `json:"quiz"`
}

type GrammarFeedback struct {
	CorrectedText string   `json:"correctedText"`
	Explanations  []string `json:"explanations"`
	UsageExamples []string `json:"usageExamples"`
	Suggestions   []string `json:"suggestions"`
}

type VocabularyItem struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

type ScenarioExercise struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	CorrectAnswer   int      `json:"correctAnswer"`
	Explanation     string   `json:"explanation"`
	CulturalInsight string   `json:"culturalInsight"`
}

type InterviewEvaluation struct {
	Score         float64 `json:"score"`
	Feedback      string  `json:"feedback"`
	BetterVersion string  `json:"betterVersion"`
	NextQuestion  string  `json:"nextQuestion"`
}

// --- wire format ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiSchema struct {
	Type       string                   `json:"type"`
	Properties map[string]*geminiSchema `json:"properties,omitempty"`
	Items      *geminiSchema            `json:"items,omitempty"`
}

type geminiSpeechConfig struct {
	VoiceConfig struct {
		PrebuiltVoiceConfig struct {
			VoiceName string `json:"voiceName"`
		} `json:"prebuiltVoiceConfig"`
	} `json:"voiceConfig"`
}

type geminiGenerationConfig struct {
	ResponseMimeType   string              `json:"responseMimeType,omitempty"`
	ResponseSchema     *geminiSchema       `json:"responseSchema,omitempty"`
	ResponseModalities []string            `json:"responseModalities,omitempty"`
	SpeechConfig       *geminiSpeechConfig `json:"speechConfig,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func str() *geminiSchema { return &geminiSchema{Type: "STRING"} }

func strArray() *geminiSchema {
	return &geminiSchema{Type: "ARRAY", Items: str()}
}

func (s *GeminiService) generateContent(ctx context.Context, function, model, prompt string, genCfg *geminiGenerationConfig) (*geminiResponse, error) {
	reqBody := geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: genCfg,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	cfg := s.settings()
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", cfg.BaseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", cfg.APIKey)

	start := time.Now()
	resp, err := s.Client.Do(req)
	monitoring.GenAIRequestDuration.WithLabelValues(function).Observe(time.Since(start).Seconds())
	if err != nil {
		monitoring.GenAIRequestCounter.WithLabelValues(function, "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		monitoring.GenAIRequestCounter.WithLabelValues(function, "error").Inc()
		return nil, fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		monitoring.GenAIRequestCounter.WithLabelValues(function, "error").Inc()
		return nil, err
	}
	if result.Error != nil {
		monitoring.GenAIRequestCounter.WithLabelValues(function, "error").Inc()
		return nil, fmt.Errorf("gemini API error: %s", result.Error.Message)
	}

	monitoring.GenAIRequestCounter.WithLabelValues(function, "ok").Inc()
	return &result, nil
}

// firstText joins the text parts of the first candidate.
func firstText(resp *geminiResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

// firstInlineData returns the first binary part of the first candidate.
func firstInlineData(resp *geminiResponse) *geminiInlineData {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return p.InlineData
		}
	}
	return nil
}

// decodeJSON parses the model's text into out, tolerating failure:
// malformed or empty text leaves out at its zero value.
func decodeJSON(text string, out interface{}) {
	if text == "" {
		return
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		logger.Log.Warn("Discarding malformed model JSON", zap.Error(err))
	}
}

// GenerateFullLesson builds a theory text plus quiz for a topic at the
// given proficiency level. Extra context (e.g. the lesson description)
// is appended to the prompt when present. Results are cached by
// topic+level so re-opening a lesson does not re-bill the API.
func (s *GeminiService) GenerateFullLesson(ctx context.Context, topic, level, extra string) (*GeneratedLesson, error) {
	cacheKey := fmt.Sprintf("genai:lesson:%x", sha1.Sum([]byte(strings.ToLower(topic+"|"+level+"|"+extra))))
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			lesson := &GeneratedLesson{}
			if json.Unmarshal([]byte(cached), lesson) == nil {
				return lesson, nil
			}
		}
	}

	prompt := fmt.Sprintf(`Actúa como un profesor de inglés experto. Crea una lección completa sobre "%s" para nivel %s. %s. Responde solo en JSON.`, topic, level, extra)
	schema := &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"theory": str(),
			"quiz": {
				Type: "ARRAY",
				Items: &geminiSchema{
					Type: "OBJECT",
					Properties: map[string]*geminiSchema{
						"question":      str(),
						"options":       strArray(),
						"correctAnswer": str(),
						"explanation":   str(),
					},
				},
			},
		},
	}

	resp, err := s.generateContent(ctx, "full_lesson", s.settings().ProModel, prompt, &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	lesson := &GeneratedLesson{}
	decodeJSON(firstText(resp), lesson)

	if s.Redis != nil && lesson.Theory != "" {
		if data, err := json.Marshal(lesson); err == nil {
			s.Redis.Set(ctx, cacheKey, data, genAICacheTTL)
		}
	}
	return lesson, nil
}

// GenerateGrammarFeedback corrects a free-form English text.
func (s *GeminiService) GenerateGrammarFeedback(ctx context.Context, text string) (*GrammarFeedback, error) {
	prompt := fmt.Sprintf(`Correct this English text: "%s". JSON.`, text)
	schema := &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"correctedText": str(),
			"explanations":  strArray(),
			"usageExamples": strArray(),
			"suggestions":   strArray(),
		},
	}

	resp, err := s.generateContent(ctx, "grammar_feedback", s.settings().FlashModel, prompt, &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	fb := &GrammarFeedback{}
	decodeJSON(firstText(resp), fb)
	return fb, nil
}

// GenerateVocabulary returns word cards for a topic. Results are cached
// in Redis so repeated lookups of popular topics skip the API.
func (s *GeminiService) GenerateVocabulary(ctx context.Context, topic string) ([]VocabularyItem, error) {
	cacheKey := fmt.Sprintf("genai:vocab:%x", sha1.Sum([]byte(strings.ToLower(topic))))
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var items []VocabularyItem
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	prompt := fmt.Sprintf(`Vocab for "%s". JSON array of {word, definition, example}.`, topic)
	schema := &geminiSchema{
		Type: "ARRAY",
		Items: &geminiSchema{
			Type: "OBJECT",
			Properties: map[string]*geminiSchema{
				"word":       str(),
				"definition": str(),
				"example":    str(),
			},
		},
	}

	resp, err := s.generateContent(ctx, "vocabulary", s.settings().FlashModel, prompt, &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	items := []VocabularyItem{}
	decodeJSON(firstText(resp), &items)

	if s.Redis != nil && len(items) > 0 {
		if data, err := json.Marshal(items); err == nil {
			s.Redis.Set(ctx, cacheKey, data, genAICacheTTL)
		}
	}
	return items, nil
}

// GenerateWordImage renders an illustration for a vocabulary word and
// returns it as a data URL, or "" when the model produced no image.
func (s *GeminiService) GenerateWordImage(ctx context.Context, word string) (string, error) {
	cacheKey := fmt.Sprintf("genai:img:%x", sha1.Sum([]byte(strings.ToLower(word))))
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	prompt := fmt.Sprintf("High quality educational illustration of the word: %s.", word)
	resp, err := s.generateContent(ctx, "word_image", s.settings().ImageModel, prompt, nil)
	if err != nil {
		return "", err
	}

	inline := firstInlineData(resp)
	if inline == nil {
		return "", nil
	}
	mime := inline.MimeType
	if mime == "" {
		mime = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mime, inline.Data)

	if s.Redis != nil {
		s.Redis.Set(ctx, cacheKey, dataURL, genAICacheTTL)
	}
	return dataURL, nil
}

// GenerateScenario produces a multiple-choice situational exercise set
// in a given culture. CorrectAnswer indexes into Options.
func (s *GeminiService) GenerateScenario(ctx context.Context, level, scenario, culture string) (*ScenarioExercise, error) {
	prompt := fmt.Sprintf("Create scenario: %s in %s for %s. JSON.", scenario, culture, level)
	schema := &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"question":        str(),
			"options":         strArray(),
			"correctAnswer":   {Type: "INTEGER"},
			"explanation":     str(),
			"culturalInsight": str(),
		},
	}

	resp, err := s.generateContent(ctx, "scenario", s.settings().FlashModel, prompt, &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	exercise := &ScenarioExercise{}
	decodeJSON(firstText(resp), exercise)
	return exercise, nil
}

// EvaluateInterviewAnswer scores an interview answer with the STAR
// method and supplies the next question to keep the mock going.
func (s *GeminiService) EvaluateInterviewAnswer(ctx context.Context, jobRole, question, answer string) (*InterviewEvaluation, error) {
	prompt := fmt.Sprintf("Job: %s. Question: %s. Answer: %s. Evalua usando STAR. JSON.", jobRole, question, answer)
	schema := &geminiSchema{
		Type: "OBJECT",
		Properties: map[string]*geminiSchema{
			"score":         {Type: "NUMBER"},
			"feedback":      str(),
			"betterVersion": str(),
			"nextQuestion":  str(),
		},
	}

	resp, err := s.generateContent(ctx, "interview_eval", s.settings().FlashModel, prompt, &geminiGenerationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return nil, err
	}

	eval := &InterviewEvaluation{}
	decodeJSON(firstText(resp), eval)
	return eval, nil
}

// Synthesize converts text to speech and returns raw 24kHz mono PCM16.
func (s *GeminiService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	cfg := s.settings()
	speech := &geminiSpeechConfig{}
	speech.VoiceConfig.PrebuiltVoiceConfig.VoiceName = cfg.Voice

	resp, err := s.generateContent(ctx, "tts", cfg.TTSModel, text, &geminiGenerationConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig:       speech,
	})
	if err != nil {
		return nil, err
	}

	inline := firstInlineData(resp)
	if inline == nil {
		return nil, fmt.Errorf("tts returned no audio")
	}
	return base64.StdEncoding.DecodeString(inline.Data)
}
