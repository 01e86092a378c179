package implementation

import (
	"context"

	"sales-intel-be/internal/entity"
	"sales-intel-be/internal/mapper"
	"sales-intel-be/internal/model"
	"sales-intel-be/internal/repository/contract"
	"sales-intel-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type TranscriptEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingMapper
}

func NewTranscriptEmbeddingRepository(db *gorm.DB) contract.TranscriptEmbeddingRepository {
	return &TranscriptEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingMapper(),
	}
}

func (r *TranscriptEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TranscriptEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.TranscriptEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *TranscriptEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.TranscriptEmbedding) error {
	models := make([]*model.TranscriptEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = r.mapper.ToModel(e)
	}

	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *TranscriptEmbeddingRepositoryImpl) DeleteByTranscriptId(ctx context.Context, transcriptId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("transcript_id = ?", transcriptId).Delete(&model.TranscriptEmbedding{}).Error
}

func (r *TranscriptEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranscriptEmbedding, error) {
	var models []*model.TranscriptEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.TranscriptEmbedding, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// SearchSimilar runs a cosine nearest-neighbour scan over the caller's own
// calls. The join with transcripts filters by owner and pulls the call title
// so hits can be rendered without a second round trip.
func (r *TranscriptEmbeddingRepositoryImpl) SearchSimilar(ctx context.Context, embedding []float32, limit int, userId uuid.UUID) ([]*contract.ScoredTranscriptChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.TranscriptEmbedding
		TranscriptTitle string
		Similarity      float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("transcript_embeddings").
		Select("transcript_embeddings.*, transcripts.title as transcript_title, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN transcripts ON transcripts.id = transcript_embeddings.transcript_id").
		Where("transcripts.user_id = ?", userId).
		Where("transcripts.deleted_at IS NULL").
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	chunks := make([]*contract.ScoredTranscriptChunk, len(results))
	for i, res := range results {
		chunks[i] = &contract.ScoredTranscriptChunk{
			Embedding:       r.mapper.ToEntity(&res.TranscriptEmbedding),
			TranscriptTitle: res.TranscriptTitle,
			Similarity:      res.Similarity,
		}
	}
	return chunks, nil
}
