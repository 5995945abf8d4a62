package services

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"resumatch/resume-analyzer/internal/config"
)

// GeminiClient implements TextGenerator and Embedder on top of the Gemini API.
// It holds no per-request state and is safe to share across analyses.
type GeminiClient struct {
	client     *genai.Client
	modelName  string
	embedModel string
	timeout    time.Duration
}

const maxEmbedChars = 40000

func NewGeminiClient(cfg config.LLMConfig) (*GeminiClient, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:     client,
		modelName:  cfg.GeminiModel,
		embedModel: cfg.EmbedModel,
		timeout:    cfg.RequestTimeout,
	}, nil
}

// Generate implements TextGenerator. The call is bounded by the configured
// timeout; the generative API has no intrinsic deadline of its own.
func (g *GeminiClient) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	temperature := float32(0.3)
	generateConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 2500,
	}
	if systemInstruction != "" {
		generateConfig.SystemInstruction = genai.NewContentFromText(systemInstruction, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), generateConfig)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// GenerateWithRetry implements TextGenerator. Used only by the boundary-layer
// profile extraction; scoring components call Generate once and fall back.
func (g *GeminiClient) GenerateWithRetry(ctx context.Context, systemInstruction, prompt string, maxRetries int) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := g.Generate(ctx, systemInstruction, prompt)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// Embed implements Embedder.
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch implements Embedder.
func (g *GeminiClient) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		// Truncate to stay under the embedding token limit
		if len(text) > maxEmbedChars {
			text = text[:maxEmbedChars]
		}
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}

	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding result size mismatch")
	}

	vectors := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("empty embedding result at index %d", i)
		}
		vectors[i] = embedding.Values
	}

	return vectors, nil
}
