package services

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Match is one best-match search hit: the candidate's original index and its
// cosine score.
type Match struct {
	Index int
	Score float64
}

// SimilarityEngine computes semantic similarity over provider embeddings.
// A failed embed is reported as an error, never as a zero score; callers
// substitute their own neutral default.
type SimilarityEngine interface {
	Similarity(ctx context.Context, textA, textB string) (float64, error)
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)
	BestMatches(ctx context.Context, query string, candidates []string, k int) ([]Match, error)
}

type similarityEngine struct {
	embedder Embedder
	chunker  TextChunker
}

// Texts longer than this are embedded chunk-wise and mean-pooled.
const chunkEmbedThreshold = 8000

func NewSimilarityEngine(embedder Embedder) SimilarityEngine {
	return &similarityEngine{
		embedder: embedder,
		chunker:  NewTextChunker(),
	}
}

// Similarity implements SimilarityEngine. The result is clamped to [0,1].
func (s *similarityEngine) Similarity(ctx context.Context, textA, textB string) (float64, error) {
	vecA, err := s.EmbedDocument(ctx, textA)
	if err != nil {
		return 0, fmt.Errorf("failed to embed first text: %w", err)
	}

	vecB, err := s.EmbedDocument(ctx, textB)
	if err != nil {
		return 0, fmt.Errorf("failed to embed second text: %w", err)
	}

	return clampUnit(cosineSimilarity(vecA, vecB)), nil
}

// BatchEmbed implements SimilarityEngine.
func (s *similarityEngine) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	return s.embedder.EmbedBatch(ctx, texts)
}

// BestMatches implements SimilarityEngine. Results are sorted descending by
// score; ties keep original candidate order.
func (s *similarityEngine) BestMatches(ctx context.Context, query string, candidates []string, k int) ([]Match, error) {
	if len(candidates) == 0 || k <= 0 {
		return []Match{}, nil
	}

	queryVec, err := s.EmbedDocument(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	candidateVecs, err := s.embedder.EmbedBatch(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to embed candidates: %w", err)
	}

	matches := make([]Match, len(candidates))
	for i, vec := range candidateVecs {
		matches[i] = Match{
			Index: i,
			Score: clampUnit(cosineSimilarity(queryVec, vec)),
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Index < matches[j].Index
	})

	if k > len(matches) {
		k = len(matches)
	}

	return matches[:k], nil
}

// EmbedDocument implements SimilarityEngine, mean-pooling chunk embeddings
// for long inputs.
func (s *similarityEngine) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	if len(text) <= chunkEmbedThreshold {
		return s.embedder.Embed(ctx, text)
	}

	chunks := s.chunker.ChunkText(text, chunkEmbedThreshold, 200)
	if len(chunks) == 0 {
		return s.embedder.Embed(ctx, text)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return nil, err
	}

	return meanPool(vectors), nil
}

func meanPool(vectors [][]float32) []float32 {
	if len(vectors) == 0 {
		return nil
	}

	pooled := make([]float32, len(vectors[0]))
	for _, vec := range vectors {
		for i := range pooled {
			if i < len(vec) {
				pooled[i] += vec[i]
			}
		}
	}

	n := float32(len(vectors))
	for i := range pooled {
		pooled[i] /= n
	}

	return pooled
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
