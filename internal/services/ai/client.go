// Package ai wraps the Gemini API for repair-suggestion text. The model is
// an opaque external collaborator; its output is advisory text for the
// technician, nothing here feeds back into device state.
package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/lats-hub/repairgo/internal/utils"
	"google.golang.org/api/option"
)

// Client interacts with Google Gemini using the official SDK
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini API client
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is empty")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(modelName),
	}, nil
}

// Close closes the client connection
func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// SuggestRepair asks the model for likely causes and repair steps for a
// device, given its intake description and the technicians' remarks.
func (c *Client) SuggestRepair(ctx context.Context, brand, model, issue string, remarks []string) (string, error) {
	prompt := buildSuggestionPrompt(brand, model, issue, remarks)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var fullText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			fullText += string(txt)
		}
	}

	return utils.SanitizeAIText(fullText), nil
}
