package tts

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates a TTS provider based on environment configuration
func CreateProvider() (Provider, error) {
	providerName := strings.ToLower(os.Getenv("TTS_PROVIDER"))

	if providerName == "" {
		providerName = "openai"
		log.Printf("[TTS Factory] TTS_PROVIDER not set, defaulting to 'openai'")
	}

	switch providerName {
	case "openai":
		return createOpenAIProvider()
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s. Supported: openai", providerName)
	}
}

func createOpenAIProvider() (Provider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_TTS_MODEL")
	if model == "" {
		log.Printf("[TTS Factory] OPENAI_TTS_MODEL not set, using default")
	}

	log.Printf("[TTS Factory] Creating OpenAI TTS provider")
	return NewOpenAIProvider(apiKey, model), nil
}
