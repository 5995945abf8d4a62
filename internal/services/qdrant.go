package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"resumatch/resume-analyzer/internal/models"
)

// JobIndexService keeps an embedding index of every analyzed job description
// so past analyses with similar roles can be surfaced.
type JobIndexService interface {
	InitCollection() error
	UpsertJob(ctx context.Context, analysisID uuid.UUID, jobText string, embedding []float32) error
	SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarJob, error)
}

type jobIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

// Gemini text-embedding-004 vectors.
const jobVectorSize = 768

// Snippet length stored in the index payload.
const jobSnippetChars = 300

func NewJobIndexService(urlStr, apiKey, collectionName string, logger *zap.Logger) (JobIndexService, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port, not the REST one
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &jobIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     jobVectorSize,
		logger:         logger,
	}, nil
}

// InitCollection implements JobIndexService.
func (q *jobIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		q.logger.Info("qdrant collection already exists", zap.String("collection", q.collectionName))
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant collection created", zap.String("collection", q.collectionName))
	return nil
}

// UpsertJob implements JobIndexService.
func (q *jobIndexService) UpsertJob(ctx context.Context, analysisID uuid.UUID, jobText string, embedding []float32) error {
	snippet := jobText
	if len(snippet) > jobSnippetChars {
		snippet = snippet[:jobSnippetChars]
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(analysisID.String()),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"analysis_id": analysisID.String(),
			"snippet":     snippet,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert job point: %w", err)
	}

	return nil
}

// SearchSimilar implements JobIndexService.
func (q *jobIndexService) SearchSimilar(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SimilarJob, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search similar jobs: %w", err)
	}

	results := make([]models.SimilarJob, 0, len(searchResult))
	for _, point := range searchResult {
		job := models.SimilarJob{Score: point.Score}

		if id, ok := point.Payload["analysis_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				job.AnalysisID = val.StringValue
			}
		}
		if snippet, ok := point.Payload["snippet"]; ok {
			if val, ok := snippet.GetKind().(*qdrant.Value_StringValue); ok {
				job.Snippet = val.StringValue
			}
		}

		results = append(results, job)
	}

	return results, nil
}
