package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port        string
	OpenAIKey   string
	VisionModel string
	TTSModel    string
	DatabaseURL string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		VisionModel: getEnv("OPENAI_VISION_MODEL", "gpt-4o-mini"),
		TTSModel:    getEnv("OPENAI_TTS_MODEL", "tts-1"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}

	// Both the description and the speech provider default to OpenAI,
	// so the key is required at startup rather than at first request
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required. Please set it as environment variable:\n  Linux/Mac: export OPENAI_API_KEY=\"your_key\"\n  Windows PowerShell: $env:OPENAI_API_KEY=\"your_key\"")
	}

	// DATABASE_URL is optional: without it history is kept in memory only

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
