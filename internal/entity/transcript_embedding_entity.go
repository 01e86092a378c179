package entity

import (
	"time"

	"github.com/google/uuid"
)

type TranscriptEmbedding struct {
	Id             uuid.UUID
	TranscriptId   uuid.UUID
	ChunkIndex     int
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
}
