package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityIdenticalVectors(t *testing.T) {
	embedder := &stubEmbedder{defaultVec: []float32{0.5, 0.5, 0}}
	engine := NewSimilarityEngine(embedder)

	score, err := engine.Similarity(context.Background(), "resume text", "job text")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 0.0001)
}

func TestSimilarityOrthogonalVectors(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {0, 1},
	}}
	engine := NewSimilarityEngine(embedder)

	score, err := engine.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 0.0001)
}

func TestSimilarityNegativeCosineClampedToZero(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {-1, 0},
	}}
	engine := NewSimilarityEngine(embedder)

	score, err := engine.Similarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestSimilarityEmbedFailureIsAnError(t *testing.T) {
	embedder := &stubEmbedder{err: errStubEmbed}
	engine := NewSimilarityEngine(embedder)

	_, err := engine.Similarity(context.Background(), "a", "b")
	assert.Error(t, err)
}

func TestBestMatchesOrderingAndTies(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"query": {1, 0},
		"best":  {1, 0},
		"tied1": {1, 1},
		"tied2": {1, 1},
		"worst": {0, 1},
	}}
	engine := NewSimilarityEngine(embedder)

	matches, err := engine.BestMatches(context.Background(), "query",
		[]string{"tied1", "worst", "best", "tied2"}, 4)
	require.NoError(t, err)
	require.Len(t, matches, 4)

	assert.Equal(t, 2, matches[0].Index) // best
	assert.Equal(t, 0, matches[1].Index) // tied1 before tied2
	assert.Equal(t, 3, matches[2].Index)
	assert.Equal(t, 1, matches[3].Index) // worst
	assert.True(t, matches[0].Score >= matches[1].Score)
	assert.True(t, matches[2].Score >= matches[3].Score)
}

func TestBestMatchesLimitsToK(t *testing.T) {
	embedder := &stubEmbedder{defaultVec: []float32{1, 0}}
	engine := NewSimilarityEngine(embedder)

	matches, err := engine.BestMatches(context.Background(), "q", []string{"a", "b", "c"}, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestBestMatchesEmptyCandidates(t *testing.T) {
	embedder := &stubEmbedder{}
	engine := NewSimilarityEngine(embedder)

	matches, err := engine.BestMatches(context.Background(), "q", nil, 3)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Zero(t, embedder.singleCalls)
	assert.Zero(t, embedder.batchCalls)
}

func TestMeanPool(t *testing.T) {
	pooled := meanPool([][]float32{
		{1, 0, 2},
		{3, 2, 0},
	})
	assert.Equal(t, []float32{2, 1, 1}, pooled)
}

func TestCosineSimilarityMismatchedLengths(t *testing.T) {
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, []float32{1}))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{0, 0}))
}
