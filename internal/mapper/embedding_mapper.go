package mapper

import (
	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EmbeddingMapper struct{}

func NewEmbeddingMapper() *EmbeddingMapper {
	return &EmbeddingMapper{}
}

func (m *EmbeddingMapper) ToEntity(e *model.TranscriptEmbedding) *entity.TranscriptEmbedding {
	if e == nil {
		return nil
	}
	return &entity.TranscriptEmbedding{
		Id:             e.Id,
		TranscriptId:   e.TranscriptId,
		ChunkIndex:     e.ChunkIndex,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
	}
}

func (m *EmbeddingMapper) ToModel(e *entity.TranscriptEmbedding) *model.TranscriptEmbedding {
	if e == nil {
		return nil
	}
	return &model.TranscriptEmbedding{
		Id:             e.Id,
		TranscriptId:   e.TranscriptId,
		ChunkIndex:     e.ChunkIndex,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
	}
}
