package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Gemini is a ChatModel backed by the Gemini API. The client reads its API
// key from the environment (GEMINI_API_KEY).
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the Gemini client. It fails when no API key is
// configured, which callers treat as the advisor being disabled.
func NewGemini(ctx context.Context, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Generate implements ChatModel. Each call replays the prior turns, so the
// session state lives with the caller, not the client.
func (g *Gemini) Generate(ctx context.Context, systemInstruction string, history []Message, message string) (string, error) {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  m.Role,
			Parts: []*genai.Part{{Text: m.Text}},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: []*genai.Part{{Text: message}},
	})

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}
