package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// stubGenerator returns a canned response (or error) and records calls.
type stubGenerator struct {
	response    string
	err         error
	calls       int
	lastPrompt  string
	lastSystem  string
	retriesSeen int
}

func (s *stubGenerator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	s.calls++
	s.lastSystem = systemInstruction
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) GenerateWithRetry(ctx context.Context, systemInstruction, prompt string, maxRetries int) (string, error) {
	s.retriesSeen = maxRetries
	return s.Generate(ctx, systemInstruction, prompt)
}

// stubEmbedder maps exact texts to fixed vectors, with a default for
// everything else.
type stubEmbedder struct {
	vectors      map[string][]float32
	defaultVec   []float32
	err          error
	batchCalls   int
	singleCalls  int
	lastBatchLen int
}

var errStubEmbed = errors.New("embedding unavailable")

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	s.singleCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.lookup(text), nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	s.lastBatchLen = len(texts)
	if s.err != nil {
		return nil, s.err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vectors[i] = s.lookup(text)
	}
	return vectors, nil
}

func (s *stubEmbedder) lookup(text string) []float32 {
	if vec, ok := s.vectors[text]; ok {
		return vec
	}
	if s.defaultVec != nil {
		return s.defaultVec
	}
	return []float32{1, 0, 0}
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func floatPtr(v float64) *float64 {
	return &v
}
