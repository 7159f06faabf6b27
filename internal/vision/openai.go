package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements scene description using an OpenAI
// vision-capable chat model.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI vision provider
func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// sceneResponse is the JSON shape the model is instructed to return
type sceneResponse struct {
	Description   string `json:"description"`
	LocationLabel string `json:"location_label,omitempty"`
}

// Describe sends the image to the chat completion API and parses the
// JSON response. An empty description field is treated as an error so
// the caller can fail the scan without a partial result.
func (p *OpenAIProvider) Describe(ctx context.Context, image Image, coords *Coordinates) (*Result, error) {
	if len(image.Data) == 0 {
		return nil, fmt.Errorf("image data is empty")
	}

	mimeType := image.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	systemPrompt, userPrompt := BuildScenePrompt(coords)
	imageURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image.Data))

	log.Printf("[OpenAI Vision] Describing image: %d bytes, mime=%s, coords=%v, model=%s",
		len(image.Data), mimeType, coords != nil, p.model)

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: userPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    imageURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
		Temperature: 0.3, // Low temperature for factual output
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Printf("[OpenAI Vision] API error: %v", err)
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		log.Printf("[OpenAI Vision] API returned no choices")
		return nil, fmt.Errorf("OpenAI returned no choices")
	}

	content := resp.Choices[0].Message.Content
	log.Printf("[OpenAI Vision] Response received: %d chars, tokens=%d", len(content), resp.Usage.TotalTokens)

	var scene sceneResponse
	if err := json.Unmarshal([]byte(content), &scene); err != nil {
		// Some models wrap JSON in markdown fences despite the response format
		extracted := extractJSONFromMarkdown(content)
		if err := json.Unmarshal([]byte(extracted), &scene); err != nil {
			log.Printf("[OpenAI Vision] Failed to parse response as JSON. Raw: %s", content)
			return nil, fmt.Errorf("failed to parse OpenAI response as JSON: %w", err)
		}
	}

	scene.Description = strings.TrimSpace(scene.Description)
	if scene.Description == "" {
		log.Printf("[OpenAI Vision] Empty description in response")
		return nil, fmt.Errorf("empty description returned")
	}

	return &Result{
		Description:   scene.Description,
		LocationLabel: strings.TrimSpace(scene.LocationLabel),
	}, nil
}

// extractJSONFromMarkdown extracts JSON from markdown code blocks
func extractJSONFromMarkdown(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
