package vision

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// CreateProvider creates a vision provider based on environment configuration
func CreateProvider() (Provider, error) {
	providerName := strings.ToLower(os.Getenv("VISION_PROVIDER"))

	if providerName == "" {
		providerName = "openai"
		log.Printf("[Vision Factory] VISION_PROVIDER not set, defaulting to 'openai'")
	}

	switch providerName {
	case "openai":
		return createOpenAIProvider()
	default:
		return nil, fmt.Errorf("unsupported vision provider: %s. Supported: openai", providerName)
	}
}

func createOpenAIProvider() (Provider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	model := os.Getenv("OPENAI_VISION_MODEL")
	if model == "" {
		log.Printf("[Vision Factory] OPENAI_VISION_MODEL not set, using default")
	}

	log.Printf("[Vision Factory] Creating OpenAI vision provider")
	return NewOpenAIProvider(apiKey, model), nil
}
