package config

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	defaultListenAddr     = ":8080"
	defaultDBPath         = "reelforge.db"
	defaultUploadDir      = "uploads"
	defaultMaxUploadBytes = 100 << 20 // 100 MB
	defaultWorkScale      = 10
	defaultMaxWorkSeconds = 5
	defaultUploadRPS      = 2.0
	defaultUploadBurst    = 5

	envListenAddr     = "REELFORGE_LISTEN_ADDR"
	envDBPath         = "REELFORGE_DB_PATH"
	envLogLevel       = "REELFORGE_LOG_LEVEL"
	envUploadDir      = "REELFORGE_UPLOAD_DIR"
	envMaxUploadBytes = "REELFORGE_MAX_UPLOAD_BYTES"
	envWorkScale      = "REELFORGE_WORK_SCALE"
	envMaxWorkSeconds = "REELFORGE_MAX_WORK_SECONDS"
	envFailureRate    = "REELFORGE_FAILURE_RATE"
	envUploadRPS      = "REELFORGE_UPLOAD_RPS"
	envUploadBurst    = "REELFORGE_UPLOAD_BURST"

	envOpenAIKey     = "REELFORGE_OPENAI_API_KEY"
	envMidjourneyKey = "REELFORGE_MIDJOURNEY_API_KEY"
	envRunwayKey     = "REELFORGE_RUNWAY_API_KEY"
	envElevenLabsKey = "REELFORGE_ELEVENLABS_API_KEY"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	ListenAddr     string
	DBPath         string
	LogLevel       slog.Level
	UploadDir      string
	MaxUploadBytes int64

	// Executor tuning. WorkScale divides the per-generation duration
	// estimate so simulated work finishes quickly; MaxWorkSeconds caps the
	// scaled wait. FailureRate in [0,1] injects synthetic failures.
	WorkScale      int
	MaxWorkSeconds int
	FailureRate    float64

	// Upload endpoint rate limiting.
	UploadRPS   float64
	UploadBurst int

	// Provider API keys. Empty means the provider is unconfigured.
	OpenAIKey     string
	MidjourneyKey string
	RunwayKey     string
	ElevenLabsKey string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg := Config{
		ListenAddr:     defaultListenAddr,
		DBPath:         defaultDBPath,
		LogLevel:       slog.LevelInfo,
		UploadDir:      defaultUploadDir,
		MaxUploadBytes: defaultMaxUploadBytes,
		WorkScale:      defaultWorkScale,
		MaxWorkSeconds: defaultMaxWorkSeconds,
		UploadRPS:      defaultUploadRPS,
		UploadBurst:    defaultUploadBurst,
	}

	if v := os.Getenv(envListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(envDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv(envUploadDir); v != "" {
		cfg.UploadDir = v
	}
	if v, ok := parseInt64(os.Getenv(envMaxUploadBytes)); ok && v > 0 {
		cfg.MaxUploadBytes = v
	}
	if v, ok := parseInt(os.Getenv(envWorkScale)); ok && v > 0 {
		cfg.WorkScale = v
	}
	if v, ok := parseInt(os.Getenv(envMaxWorkSeconds)); ok && v > 0 {
		cfg.MaxWorkSeconds = v
	}
	if v, ok := parseFloat(os.Getenv(envFailureRate)); ok && v >= 0 && v <= 1 {
		cfg.FailureRate = v
	}
	if v, ok := parseFloat(os.Getenv(envUploadRPS)); ok && v > 0 {
		cfg.UploadRPS = v
	}
	if v, ok := parseInt(os.Getenv(envUploadBurst)); ok && v > 0 {
		cfg.UploadBurst = v
	}

	cfg.OpenAIKey = os.Getenv(envOpenAIKey)
	cfg.MidjourneyKey = os.Getenv(envMidjourneyKey)
	cfg.RunwayKey = os.Getenv(envRunwayKey)
	cfg.ElevenLabsKey = os.Getenv(envElevenLabsKey)

	return cfg
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseInt64(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// NewLogger creates a structured JSON logger writing to w at the configured level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
