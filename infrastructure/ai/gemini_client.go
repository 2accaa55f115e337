package ai

import (
	"context"
	"fmt"

	"account_connector/domain/entities"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

const defaultModel = "gemini-1.5-pro"

type GeminiClient struct {
	client *genai.Client
	logger *logrus.Logger
	model  string
}

func NewGeminiClient(ctx context.Context, apiKey, model string, logger *logrus.Logger) (*GeminiClient, error) {
	return newGeminiClient(ctx, apiKey, model, "", logger)
}

// newGeminiClient points the client at baseURL when it is set
func newGeminiClient(ctx context.Context, apiKey, model, baseURL string, logger *logrus.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		logger: logger,
		model:  model,
	}, nil
}

// GenerateContent sends the prompt followed by the optional inline image
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, image *entities.InlineImage) (string, error) {
	parts := make([]*genai.Part, 0, 2)
	if prompt != "" {
		parts = append(parts, genai.NewPartFromText(prompt))
	}
	if image != nil {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MimeType))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("nothing to send")
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	c.logger.WithFields(logrus.Fields{
		"model": c.model,
		"parts": len(parts),
	}).Debug("Sending generate content request")

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
