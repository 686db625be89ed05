package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	FxBaseURL        string
	FxTimeout        time.Duration
	FxMaxRetries     int
	FxRetryBaseDelay time.Duration
	JaegerEndpoint   string
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fxBaseURL := os.Getenv("FX_BASE_URL")
	if fxBaseURL == "" {
		fxBaseURL = "http://localhost:4000"
	}

	return &Config{
		Port:             port,
		FxBaseURL:        fxBaseURL,
		FxTimeout:        time.Duration(intEnv("FX_TIMEOUT_SECONDS", 3)) * time.Second,
		FxMaxRetries:     intEnv("FX_MAX_RETRIES", 3),
		FxRetryBaseDelay: time.Duration(intEnv("FX_RETRY_BASE_DELAY_MS", 200)) * time.Millisecond,
		JaegerEndpoint:   os.Getenv("JAEGER_ENDPOINT"),
	}
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
