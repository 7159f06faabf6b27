// Package scan sequences one scene-description call and one
// text-to-speech call into a single scan operation.
//
// Synthesis failure policy: a failed speech call does not fail the scan.
// The result is returned with an empty AudioDataURI and the error is
// logged, so the user still gets the description text.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log"

	"scenespeak/internal/audio"
	"scenespeak/internal/tts"
	"scenespeak/internal/vision"
)

var (
	// ErrDescriptionUnavailable means the vision provider returned no
	// usable text. The scan fails and no speech call is made.
	ErrDescriptionUnavailable = errors.New("scene description unavailable")

	// ErrInvalidVoice means the voice selector is not a supported value.
	ErrInvalidVoice = errors.New("invalid voice selector")

	// ErrAudioGenerationFailed wraps speech-synthesis and encoding
	// failures. It is logged, never returned: the scan still succeeds
	// with empty audio.
	ErrAudioGenerationFailed = errors.New("audio generation failed")
)

// Voice is the client-facing voice selector.
type Voice string

const (
	VoiceMale   Voice = "male"
	VoiceFemale Voice = "female"
)

// voiceTable maps selectors to provider voice identifiers. The mapping
// is fixed: the same selector always resolves to the same voice.
var voiceTable = map[Voice]string{
	VoiceMale:   "onyx",
	VoiceFemale: "nova",
}

// MapVoice resolves a selector to a provider voice identifier. An empty
// selector defaults to female; anything outside the table is rejected.
func MapVoice(v Voice) (string, error) {
	if v == "" {
		v = VoiceFemale
	}
	id, ok := voiceTable[v]
	if !ok {
		return "", fmt.Errorf("%w: %q (supported: male, female)", ErrInvalidVoice, v)
	}
	return id, nil
}

// Request describes one scan.
type Request struct {
	Image  vision.Image
	Coords *vision.Coordinates
	Voice  Voice
}

// Result is the outcome of a successful scan. AudioDataURI is empty when
// speech synthesis failed.
type Result struct {
	Description          string
	LocationLabel        string
	AudioDataURI         string
	AudioDurationSeconds float64
}

// Scanner orchestrates the describe -> synthesize -> encode flow. It
// holds no mutable state, so concurrent scans do not interact.
type Scanner struct {
	vision vision.Provider
	tts    tts.Provider
}

// NewScanner creates a scanner over the given providers.
func NewScanner(visionProvider vision.Provider, ttsProvider tts.Provider) *Scanner {
	return &Scanner{
		vision: visionProvider,
		tts:    ttsProvider,
	}
}

// Scan runs one full scan. The two provider calls are sequential; the
// speech call only happens once description text is available. No
// retries are performed: a failed scan is reported once and the caller
// may re-invoke the whole flow.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Result, error) {
	voiceID, err := MapVoice(req.Voice)
	if err != nil {
		return nil, err
	}

	scene, err := s.vision.Describe(ctx, req.Image, req.Coords)
	if err != nil {
		log.Printf("[Scan] Description failed (provider: %s): %v", s.vision.Name(), err)
		return nil, fmt.Errorf("%w: %v", ErrDescriptionUnavailable, err)
	}
	if scene.Description == "" {
		return nil, ErrDescriptionUnavailable
	}

	result := &Result{
		Description:   scene.Description,
		LocationLabel: scene.LocationLabel,
	}

	audioURI, duration, err := s.generateAudio(ctx, scene.Description, voiceID)
	if err != nil {
		// Synthesis failure is not fatal: return the description with
		// empty audio so the client can still show and re-read the text.
		log.Printf("[Scan] %v (provider: %s)", err, s.tts.Name())
		return result, nil
	}

	result.AudioDataURI = audioURI
	result.AudioDurationSeconds = duration
	return result, nil
}

// generateAudio synthesizes the description and wraps the PCM in a WAV
// data URI.
func (s *Scanner) generateAudio(ctx context.Context, text, voiceID string) (string, float64, error) {
	raw, err := s.tts.Synthesize(ctx, text, voiceID)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrAudioGenerationFailed, err)
	}

	wav, err := audio.EncodeWAV(raw.PCM, raw.Channels, raw.SampleRate, raw.BitsPerSample)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrAudioGenerationFailed, err)
	}

	duration, err := audio.Duration(wav)
	if err != nil {
		duration = 0
	}

	return audio.DataURI(wav), duration, nil
}
