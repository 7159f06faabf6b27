package tts

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"
)

// OpenAI's pcm response format is headerless 16-bit mono at 24 kHz.
const (
	openaiPCMChannels      = 1
	openaiPCMSampleRate    = 24000
	openaiPCMBitsPerSample = 16
)

// OpenAIProvider implements TTS using the OpenAI speech API
type OpenAIProvider struct {
	client *openai.Client
	model  openai.SpeechModel
}

// NewOpenAIProvider creates a new OpenAI TTS provider
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	speechModel := openai.TTSModel1
	if model != "" {
		speechModel = openai.SpeechModel(model)
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  speechModel,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Synthesize renders text as raw PCM via the speech endpoint
func (p *OpenAIProvider) Synthesize(ctx context.Context, text, voiceID string) (*RawAudio, error) {
	if text == "" {
		return nil, fmt.Errorf("text is empty")
	}

	if voiceID == "" {
		return nil, fmt.Errorf("voice ID is empty")
	}

	startTime := time.Now()
	log.Printf("[OpenAI TTS] Synthesizing: voice=%s, model=%s, text length=%d", voiceID, p.model, len(text))

	resp, err := p.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          p.model,
		Input:          text,
		Voice:          openai.SpeechVoice(voiceID),
		ResponseFormat: openai.SpeechResponseFormatPcm,
	})
	if err != nil {
		log.Printf("[OpenAI TTS] API error: %v", err)
		return nil, fmt.Errorf("OpenAI speech API error: %w", err)
	}
	defer resp.Close()

	pcm, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech response: %w", err)
	}

	if len(pcm) == 0 {
		return nil, fmt.Errorf("speech API returned no audio")
	}

	log.Printf("[OpenAI TTS] Synthesis successful: %d PCM bytes, duration=%v", len(pcm), time.Since(startTime))

	return &RawAudio{
		PCM:           pcm,
		Channels:      openaiPCMChannels,
		SampleRate:    openaiPCMSampleRate,
		BitsPerSample: openaiPCMBitsPerSample,
		Provider:      p.Name(),
	}, nil
}
