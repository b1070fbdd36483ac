package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// GenAIRequestCounter counts generative API calls per function and outcome.
	GenAIRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genai_requests_total",
			Help: "Total generative API requests",
		},
		[]string{"function", "outcome"},
	)

	GenAIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "genai_request_duration_seconds",
			Help:    "Duration of generative API requests",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
		[]string{"function"},
	)

	// LiveSessions tracks concurrently open voice-lab sessions.
	LiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "live_voice_sessions",
			Help: "Currently open voice lab sessions",
		},
	)

	// LiveAudioFrames counts relayed realtime audio frames by direction.
	LiveAudioFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "live_audio_frames_total",
			Help: "Relayed realtime audio frames",
		},
		[]string{"direction"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(GenAIRequestCounter)
	prometheus.MustRegister(GenAIRequestDuration)
	prometheus.MustRegister(LiveSessions)
	prometheus.MustRegister(LiveAudioFrames)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
