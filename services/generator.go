package services

import (
	"context"
	"strings"

	"github.com/K-naman-T/techex-ai/models"

	"google.golang.org/genai"
)

// Generator produces a model response for a system instruction, normalized
// history, and a new user message.
type Generator interface {
	Generate(ctx context.Context, systemInstruction string, history []models.Turn, message string) (string, error)
}

// geminiGenerator drives a Gemini chat session per request.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Generator backed by the given Gemini model.
func NewGeminiGenerator(client *genai.Client, model string) Generator {
	return &geminiGenerator{client: client, model: model}
}

// systemContent wraps an instruction string as genai content.
func systemContent(instruction string) *genai.Content {
	contents := genai.Text(instruction)
	if len(contents) == 0 {
		return nil
	}
	return contents[0]
}

func historyContents(history []models.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		var role genai.Role = genai.RoleUser
		if turn.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return contents
}

func (g *geminiGenerator) Generate(ctx context.Context, systemInstruction string, history []models.Turn, message string) (string, error) {
	session, err := g.client.Chats.Create(ctx, g.model, &genai.GenerateContentConfig{
		SystemInstruction: systemContent(systemInstruction),
	}, historyContents(history))
	if err != nil {
		return "", classifyUpstreamError(err)
	}

	result, err := session.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", classifyUpstreamError(err)
	}

	if len(result.Candidates) == 0 || result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "I'm sorry, I couldn't generate a response.", nil
	}

	var responseText strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		if p.Text != "" {
			responseText.WriteString(p.Text)
		}
	}
	return responseText.String(), nil
}

// unconfiguredGenerator stands in when no API key is present; unlike
// embeddings, a chat request cannot degrade, so the error surfaces.
type unconfiguredGenerator struct{}

// NewUnconfiguredGenerator returns a Generator that always reports missing
// credentials.
func NewUnconfiguredGenerator() Generator {
	return unconfiguredGenerator{}
}

func (unconfiguredGenerator) Generate(context.Context, string, []models.Turn, string) (string, error) {
	return "", ErrMissingCredentials
}
