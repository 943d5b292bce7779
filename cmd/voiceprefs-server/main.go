// Package main is the entry point for the voiceprefs-server application.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/zerotts/voiceprefs"
	"github.com/zerotts/voiceprefs/api"
	"github.com/zerotts/voiceprefs/elevenlabs"
)

// config is populated from the environment. A .env file in the working
// directory is honored when present.
type config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	APIKey     string `env:"ELEVENLABS_API_KEY"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	PreferenceTTL time.Duration `env:"USER_DATA_TTL" envDefault:"24h"`
	CatalogTTL    time.Duration `env:"VOICE_CACHE_TTL" envDefault:"1h"`
	QuotaTTL      time.Duration `env:"QUOTA_CACHE_TTL" envDefault:"5m"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	// Longest text accepted for a single synthesis request. Synthesis
	// happens in the bot front-end; the limit is surfaced here so both
	// sides read the same knob.
	MaxTTSChars int `env:"MAX_TTS_CHARS" envDefault:"1200"`
}

func logLevelFromString(s string) voiceprefs.LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return voiceprefs.LogLevelDebug
	case "warn":
		return voiceprefs.LogLevelWarn
	case "error":
		return voiceprefs.LogLevelError
	}
	return voiceprefs.LogLevelInfo
}

func main() {
	// Optional: load from .env if present.
	_ = godotenv.Load()

	var cfg config
	logger := voiceprefs.NewDefaultLogger()
	if err := env.Parse(&cfg); err != nil {
		logger.Error("Failed to parse environment", "error", err)
		os.Exit(1)
	}
	logger.SetLevel(logLevelFromString(cfg.LogLevel))
	logger.Info("voiceprefs server starting up", "max_tts_chars", cfg.MaxTTSChars)

	client, err := elevenlabs.New(cfg.APIKey)
	if err != nil {
		logger.Error("Failed to create provider client", "error", err)
		os.Exit(1)
	}

	mgr, err := voiceprefs.New(
		voiceprefs.WithCatalogProvider(client),
		voiceprefs.WithQuotaProvider(client),
		voiceprefs.WithLogger(logger),
		voiceprefs.WithPreferenceTTL(cfg.PreferenceTTL),
		voiceprefs.WithCatalogTTL(cfg.CatalogTTL),
		voiceprefs.WithQuotaTTL(cfg.QuotaTTL),
		voiceprefs.WithRateLimit(cfg.RateLimitMax, cfg.RateLimitWindow),
	)
	if err != nil {
		logger.Error("Failed to create manager", "error", err)
		os.Exit(1)
	}

	apiServer, err := api.NewServer(api.Config{
		ListenAddress: cfg.ListenAddr,
		Manager:       mgr,
		Logger:        logger,
	})
	if err != nil {
		logger.Error("Failed to create API server", "error", err)
		os.Exit(1)
	}

	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("API server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Stop(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}
