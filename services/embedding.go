package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Embedder produces a fixed-dimensionality embedding for a piece of text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// geminiEmbedder calls the Gemini embedding API.
type geminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an Embedder backed by the Gemini embedding model.
func NewGeminiEmbedder(client *genai.Client, model string) Embedder {
	return &geminiEmbedder{client: client, model: model}
}

func (g *geminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	result, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embedding call failed: %w", err)
	}
	if len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}
	return result.Embeddings[0].Values, nil
}

// unconfiguredEmbedder stands in when no API key is present. Every call fails,
// which the index degrades to sentinel vectors and empty retrieval results.
type unconfiguredEmbedder struct{}

// NewUnconfiguredEmbedder returns an Embedder that always reports missing
// credentials.
func NewUnconfiguredEmbedder() Embedder {
	return unconfiguredEmbedder{}
}

func (unconfiguredEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrMissingCredentials
}
