package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"linguist_ai_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGeminiServer fakes the generateContent endpoint with a canned
// response body. The returned service has no cache attached.
func newGeminiServer(t *testing.T, status int, body interface{}) (*GeminiService, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	svc := NewGeminiService(config.GeminiConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		ProModel:   "pro-model",
		FlashModel: "flash-model",
		TTSModel:   "tts-model",
		ImageModel: "image-model",
		Voice:      "Kore",
	}, nil)
	return svc, srv
}

func textResponse(text string) geminiResponse {
	return geminiResponse{
		Candidates: []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Role: "model", Parts: []geminiPart{{Text: text}}}},
		},
	}
}

func inlineResponse(mime, data string) geminiResponse {
	return geminiResponse{
		Candidates: []struct {
			Content geminiContent `json:"content"`
		}{
			{Content: geminiContent{Parts: []geminiPart{{InlineData: &geminiInlineData{MimeType: mime, Data: data}}}}},
		},
	}
}

func TestGenerateGrammarFeedback(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse(
		`{"correctedText":"She goes to school.","explanations":["third person s"],"usageExamples":[],"suggestions":[]}`,
	))

	fb, err := svc.GenerateGrammarFeedback(context.Background(), "She go to school.")
	require.NoError(t, err)
	assert.Equal(t, "She goes to school.", fb.CorrectedText)
	assert.Equal(t, []string{"third person s"}, fb.Explanations)
}

func TestMalformedModelTextDegrades(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse(`{"correctedText": not-json`))

	fb, err := svc.GenerateGrammarFeedback(context.Background(), "hola")
	require.NoError(t, err)
	assert.Empty(t, fb.CorrectedText) // garbage text yields the zero value, not an error
}

func TestGenerateFullLesson(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse(
		`{"theory":"El presente continuo se usa para...","quiz":[{"question":"Pick one","options":["a","b"],"correctAnswer":"a","explanation":"because"}]}`,
	))

	lesson, err := svc.GenerateFullLesson(context.Background(), "Present Continuous", "A1", "")
	require.NoError(t, err)
	assert.NotEmpty(t, lesson.Theory)
	require.Len(t, lesson.Quiz, 1)
	assert.Equal(t, "a", lesson.Quiz[0].CorrectAnswer)
}

func TestGenerateVocabulary(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse(
		`[{"word":"luggage","definition":"bags","example":"My luggage is lost."}]`,
	))

	items, err := svc.GenerateVocabulary(context.Background(), "travel")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "luggage", items[0].Word)
}

func TestUpstreamErrorStatus(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusTooManyRequests, map[string]string{"error": "quota"})

	_, err := svc.GenerateVocabulary(context.Background(), "travel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestAPIErrorObject(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, map[string]interface{}{
		"error": map[string]interface{}{"code": 400, "message": "invalid schema"},
	})

	_, err := svc.GenerateGrammarFeedback(context.Background(), "hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
}

func TestGenerateWordImage(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	svc, _ := newGeminiServer(t, http.StatusOK, inlineResponse("image/png", encoded))

	dataURL, err := svc.GenerateWordImage(context.Background(), "luggage")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+encoded, dataURL)
}

func TestGenerateWordImageNoImage(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse("I cannot draw that."))

	dataURL, err := svc.GenerateWordImage(context.Background(), "luggage")
	require.NoError(t, err)
	assert.Empty(t, dataURL)
}

func TestSynthesize(t *testing.T) {
	pcm := []byte{0, 1, 2, 3, 4, 5}
	svc, _ := newGeminiServer(t, http.StatusOK, inlineResponse(
		"audio/pcm;rate=24000", base64.StdEncoding.EncodeToString(pcm),
	))

	got, err := svc.Synthesize(context.Background(), "Hello there")
	require.NoError(t, err)
	assert.Equal(t, pcm, got)
}

func TestSynthesizeNoAudio(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse("no audio"))

	_, err := svc.Synthesize(context.Background(), "Hello there")
	require.Error(t, err)
}

func TestUpdateConfigSwitchesEndpoint(t *testing.T) {
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse(`{"correctedText":"old"}`))

	next := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rotated-key", r.Header.Get("x-goog-api-key"))
		json.NewEncoder(w).Encode(textResponse(`{"correctedText":"new"}`))
	}))
	t.Cleanup(next.Close)

	cfg := svc.settings()
	cfg.BaseURL = next.URL
	cfg.APIKey = "rotated-key"
	svc.UpdateConfig(cfg)

	fb, err := svc.GenerateGrammarFeedback(context.Background(), "hola")
	require.NoError(t, err)
	assert.Equal(t, "new", fb.CorrectedText)
}

func TestUpdateConfigDuringRequests(t *testing.T) {
	// A config swap mid-flight must never race with request handling;
	// run with -race to verify.
	svc, _ := newGeminiServer(t, http.StatusOK, textResponse(`{"correctedText":"ok"}`))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			cfg := svc.settings()
			cfg.APIKey = "test-key"
			svc.UpdateConfig(cfg)
		}
	}()

	for i := 0; i < 20; i++ {
		_, err := svc.GenerateGrammarFeedback(context.Background(), "hola")
		require.NoError(t, err)
	}
	<-done
}
