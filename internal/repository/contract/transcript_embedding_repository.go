package contract

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredTranscriptChunk pairs a matched chunk with its source call title
// and cosine similarity against the query vector.
type ScoredTranscriptChunk struct {
	Embedding       *entity.TranscriptEmbedding
	TranscriptTitle string
	Similarity      float64
}

type TranscriptEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.TranscriptEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.TranscriptEmbedding) error
	DeleteByTranscriptId(ctx context.Context, transcriptId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptEmbedding, error)
	SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID) ([]*ScoredTranscriptChunk, error)
}
