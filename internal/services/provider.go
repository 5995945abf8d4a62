package services

import (
	"context"
	"fmt"

	"resumatch/resume-analyzer/internal/config"
)

// TextGenerator is the capability every LLM-judged component depends on.
// Implementations are selected at construction time; scoring code never
// inspects provider identity.
type TextGenerator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
	GenerateWithRetry(ctx context.Context, systemInstruction, prompt string, maxRetries int) (string, error)
}

// Embedder turns text into vectors. Dimensionality is provider-defined and
// stays consistent within one pipeline run.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// NewProviders builds the generator and embedder for the configured provider.
func NewProviders(cfg config.LLMConfig) (TextGenerator, Embedder, error) {
	switch cfg.Provider {
	case "gemini", "":
		client, err := NewGeminiClient(cfg)
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	default:
		return nil, nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
