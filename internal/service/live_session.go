package service

import (
	"encoding/json"
	"fmt"
	"linguist_ai_backend/internal/audio"
	"linguist_ai_backend/pkg/logger"
	"linguist_ai_backend/pkg/monitoring"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Session lifecycle states, reported to the client as status messages.
const (
	StateIdle       = "idle"
	StateConnecting = "connecting"
	StateLive       = "live"
	StateEnded      = "ended"
	StateErrored    = "errored"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10

	upstreamDialTimeout = 15 * time.Second
)

var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// liveClientMessage is what the browser sends: microphone frames and a
// stop signal.
type liveClientMessage struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"` // base64 PCM16 @16kHz
}

// liveServerMessage is what the browser receives.
type liveServerMessage struct {
	Type    string `json:"type"`
	State   string `json:"state,omitempty"`
	Data    string `json:"data,omitempty"` // base64 PCM16 @24kHz
	StartMS int64  `json:"startMs,omitempty"`
	Role    string `json:"role,omitempty"`
	Text    string `json:"text,omitempty"`
	Message string `json:"message,omitempty"`
}

// --- upstream bidiGenerateContent wire format ---

type bidiSetup struct {
	Setup struct {
		Model            string `json:"model"`
		GenerationConfig struct {
			ResponseModalities []string           `json:"responseModalities"`
			SpeechConfig       geminiSpeechConfig `json:"speechConfig"`
		} `json:"generationConfig"`
		SystemInstruction        *geminiContent `json:"systemInstruction,omitempty"`
		OutputAudioTranscription struct{}       `json:"outputAudioTranscription"`
		InputAudioTranscription  struct{}       `json:"inputAudioTranscription"`
	} `json:"setup"`
}

type bidiRealtimeInput struct {
	RealtimeInput struct {
		MediaChunks []geminiInlineData `json:"mediaChunks"`
	} `json:"realtimeInput"`
}

type bidiServerMessage struct {
	SetupComplete *struct{} `json:"setupComplete,omitempty"`
	ServerContent *struct {
		ModelTurn *struct {
			Parts []geminiPart `json:"parts"`
		} `json:"modelTurn,omitempty"`
		OutputTranscription *struct {
			Text string `json:"text"`
		} `json:"outputTranscription,omitempty"`
		InputTranscription *struct {
			Text string `json:"text"`
		} `json:"inputTranscription,omitempty"`
		Interrupted  bool `json:"interrupted,omitempty"`
		TurnComplete bool `json:"turnComplete,omitempty"`
	} `json:"serverContent,omitempty"`
}

// TranscriptEntry is one ordered fragment of the session transcript.
type TranscriptEntry struct {
	Role string `json:"role"` // tutor or user
	Text string `json:"text"`
}

// LiveSession bridges one browser websocket to one upstream realtime
// audio socket. Client frames flow up in capture order; model audio and
// transcript fragments flow down. The downstream pump is the only
// writer of the playback scheduler and the transcript.
type LiveSession struct {
	Hub    *LiveHub
	UserID uint

	client   *websocket.Conn
	upstream *websocket.Conn

	send      chan liveServerMessage
	limiter   *rate.Limiter
	scheduler *audio.PlaybackScheduler

	startedAt time.Time

	transcriptMu sync.Mutex
	transcript   []TranscriptEntry

	upstreamMu sync.Mutex // serializes upstream writes
	stateMu    sync.Mutex
	state      string

	endOnce sync.Once
	done    chan struct{}
}

// ServeVoice upgrades the request and runs a session to completion in
// the background.
func ServeVoice(hub *LiveHub, w http.ResponseWriter, r *http.Request, userID uint) {
	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Voice websocket upgrade failed", zap.Error(err), zap.Uint("userId", userID))
		return
	}

	live := hub.Config.LiveSettings()
	limit := rate.Limit(live.FrameLimit)
	if limit <= 0 {
		limit = 50
	}
	burst := live.FrameBurst
	if burst <= 0 {
		burst = 100
	}

	s := &LiveSession{
		Hub:       hub,
		UserID:    userID,
		client:    conn,
		send:      make(chan liveServerMessage, 256),
		limiter:   rate.NewLimiter(limit, burst),
		scheduler: audio.NewPlaybackScheduler(audio.PlaybackSampleRate),
		startedAt: time.Now(),
		state:     StateIdle,
		done:      make(chan struct{}),
	}

	if !hub.register(s) {
		s.writeDirect(liveServerMessage{Type: "error", Message: "too many open sessions"})
		conn.Close()
		return
	}

	go s.clientWritePump()
	go s.run()
}

func (s *LiveSession) setState(state string) {
	s.stateMu.Lock()
	s.state = state
	s.stateMu.Unlock()
	s.push(liveServerMessage{Type: "status", State: state})
}

func (s *LiveSession) State() string {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	return s.state
}

// push queues a message for the client, dropping it if the client
// cannot keep up.
func (s *LiveSession) push(msg liveServerMessage) {
	select {
	case s.send <- msg:
	case <-s.done:
	default:
	}
}

// writeDirect bypasses the send queue; only used before the write pump
// starts or from end().
func (s *LiveSession) writeDirect(msg liveServerMessage) {
	payload, _ := json.Marshal(msg)
	s.client.SetWriteDeadline(time.Now().Add(liveWriteWait))
	s.client.WriteMessage(websocket.TextMessage, payload)
}

func (s *LiveSession) run() {
	s.setState(StateConnecting)

	if err := s.dialUpstream(); err != nil {
		logger.Log.Error("Upstream dial failed", zap.Error(err), zap.Uint("userId", s.UserID))
		s.end(StateErrored, "could not reach the voice service")
		return
	}

	s.setState(StateLive)
	go s.upstreamReadPump()
	s.clientReadPump()
}

func (s *LiveSession) dialUpstream() error {
	cfg := s.Hub.Config.GeminiSettings()
	url := fmt.Sprintf("%s?key=%s", cfg.LiveURL, cfg.APIKey)

	dialer := websocket.Dialer{HandshakeTimeout: upstreamDialTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return err
	}

	setup := bidiSetup{}
	setup.Setup.Model = "models/" + cfg.LiveModel
	setup.Setup.GenerationConfig.ResponseModalities = []string{"AUDIO"}
	setup.Setup.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName = cfg.Voice
	if prompt := s.Hub.Config.LiveSettings().SystemPrompt; prompt != "" {
		setup.Setup.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: prompt}}}
	}
	if err := conn.WriteJSON(setup); err != nil {
		conn.Close()
		return fmt.Errorf("send setup: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(upstreamDialTimeout))
	var first bidiServerMessage
	if err := conn.ReadJSON(&first); err != nil {
		conn.Close()
		return fmt.Errorf("read setup ack: %w", err)
	}
	conn.SetReadDeadline(time.Time{})
	if first.SetupComplete == nil {
		conn.Close()
		return fmt.Errorf("unexpected first upstream frame")
	}

	s.upstream = conn
	return nil
}

// clientReadPump consumes microphone frames from the browser and
// forwards them upstream in arrival order.
func (s *LiveSession) clientReadPump() {
	defer s.end(StateEnded, "")

	maxFrame := s.Hub.Config.LiveSettings().MaxFrameBytes
	if maxFrame <= 0 {
		maxFrame = 64 * 1024
	}
	s.client.SetReadLimit(maxFrame)
	s.client.SetReadDeadline(time.Now().Add(livePongWait))
	s.client.SetPongHandler(func(string) error {
		s.client.SetReadDeadline(time.Now().Add(livePongWait))
		return nil
	})

	for {
		_, raw, err := s.client.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Log.Error("Voice websocket unexpected close", zap.Error(err), zap.Uint("userId", s.UserID))
			}
			return
		}

		var msg liveClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "audio":
			if !s.limiter.Allow() {
				continue
			}
			if err := s.forwardAudio(msg.Data); err != nil {
				logger.Log.Error("Upstream write failed", zap.Error(err), zap.Uint("userId", s.UserID))
				s.end(StateErrored, "voice service connection lost")
				return
			}
		case "stop":
			return
		}
	}
}

func (s *LiveSession) forwardAudio(frame string) error {
	// Round-trip through decode keeps oversized or corrupt frames out
	// of the upstream socket.
	pcm, err := audio.DecodeFrame(frame)
	if err != nil || len(pcm) == 0 {
		return nil
	}

	input := bidiRealtimeInput{}
	input.RealtimeInput.MediaChunks = []geminiInlineData{{
		MimeType: fmt.Sprintf("audio/pcm;rate=%d", audio.CaptureSampleRate),
		Data:     audio.EncodeFrame(pcm),
	}}

	s.upstreamMu.Lock()
	defer s.upstreamMu.Unlock()
	s.upstream.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := s.upstream.WriteJSON(input); err != nil {
		return err
	}
	monitoring.LiveAudioFrames.WithLabelValues("up").Inc()
	return nil
}

// upstreamReadPump relays model audio and transcript fragments down to
// the client. It is the sole writer of the scheduler and transcript.
func (s *LiveSession) upstreamReadPump() {
	for {
		var msg bidiServerMessage
		if err := s.upstream.ReadJSON(&msg); err != nil {
			select {
			case <-s.done:
			default:
				logger.Log.Error("Upstream read failed", zap.Error(err), zap.Uint("userId", s.UserID))
				s.end(StateErrored, "voice service connection lost")
			}
			return
		}

		content := msg.ServerContent
		if content == nil {
			continue
		}

		if content.Interrupted {
			// Model cut itself off: drop the scheduled backlog so the
			// client can flush its queue.
			s.scheduler.Reset()
			s.push(liveServerMessage{Type: "interrupted"})
		}

		if content.ModelTurn != nil {
			for _, part := range content.ModelTurn.Parts {
				if part.InlineData == nil || part.InlineData.Data == "" {
					continue
				}
				pcm, err := audio.DecodeFrame(part.InlineData.Data)
				if err != nil {
					continue
				}
				start := s.scheduler.Schedule(len(pcm), time.Now())
				s.push(liveServerMessage{
					Type:    "audio",
					Data:    part.InlineData.Data,
					StartMS: start.Sub(s.startedAt).Milliseconds(),
				})
				monitoring.LiveAudioFrames.WithLabelValues("down").Inc()
			}
		}

		if t := content.OutputTranscription; t != nil && t.Text != "" {
			s.appendTranscript(TranscriptEntry{Role: "tutor", Text: t.Text})
			s.push(liveServerMessage{Type: "transcript", Role: "tutor", Text: t.Text})
		}
		if t := content.InputTranscription; t != nil && t.Text != "" {
			s.appendTranscript(TranscriptEntry{Role: "user", Text: t.Text})
			s.push(liveServerMessage{Type: "transcript", Role: "user", Text: t.Text})
		}

		if content.TurnComplete {
			s.push(liveServerMessage{Type: "turnComplete"})
		}
	}
}

func (s *LiveSession) clientWritePump() {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		s.client.Close()
	}()

	timeout := s.Hub.Config.LiveSettings().SessionTimeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case msg := <-s.send:
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			s.client.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := s.client.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			s.client.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := s.client.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-deadline.C:
			s.end(StateEnded, "session timed out")
		case <-s.done:
			s.drain()
			return
		}
	}
}

// drain flushes queued messages (final status included) before the
// write pump exits.
func (s *LiveSession) drain() {
	for {
		select {
		case msg := <-s.send:
			payload, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			s.client.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if s.client.WriteMessage(websocket.TextMessage, payload) != nil {
				return
			}
		default:
			return
		}
	}
}

// end tears the session down exactly once. Audio already relayed to the
// client keeps playing there; only the upstream socket and server-side
// state are released.
func (s *LiveSession) end(state, message string) {
	s.endOnce.Do(func() {
		s.stateMu.Lock()
		s.state = state
		s.stateMu.Unlock()

		if s.upstream != nil {
			s.upstream.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(2*time.Second))
			s.upstream.Close()
		}

		if state == StateErrored && message != "" {
			s.push(liveServerMessage{Type: "error", Message: message})
		}
		s.push(liveServerMessage{Type: "status", State: state, Message: message})

		// The write pump drains the queue and closes the socket.
		close(s.done)
		s.Hub.unregister(s)

		logger.Log.Info("Voice session closed",
			zap.Uint("userId", s.UserID),
			zap.String("state", state),
			zap.Duration("duration", time.Since(s.startedAt)),
			zap.Int("transcriptFragments", len(s.Transcript())))
	})
}

func (s *LiveSession) appendTranscript(entry TranscriptEntry) {
	s.transcriptMu.Lock()
	s.transcript = append(s.transcript, entry)
	s.transcriptMu.Unlock()
}

// Transcript returns a copy of the fragments accumulated so far.
func (s *LiveSession) Transcript() []TranscriptEntry {
	s.transcriptMu.Lock()
	defer s.transcriptMu.Unlock()
	out := make([]TranscriptEntry, len(s.transcript))
	copy(out, s.transcript)
	return out
}
