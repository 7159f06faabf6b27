package tts

import "context"

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize renders text as raw linear PCM using the given
	// provider voice identifier
	Synthesize(ctx context.Context, text, voiceID string) (*RawAudio, error)

	// Name returns the name of the provider (e.g., "openai")
	Name() string
}
